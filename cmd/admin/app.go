package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/hongminglow/all-in-admin/internal/api"
	"github.com/hongminglow/all-in-admin/internal/auth"
	"github.com/hongminglow/all-in-admin/internal/logging"
	"github.com/hongminglow/all-in-admin/internal/models"
	"github.com/hongminglow/all-in-admin/internal/router"
	"github.com/hongminglow/all-in-admin/internal/services"
)

func newApp() *cli.App {
	app := &cli.App{
		Name:  "admin",
		Usage: "operate the all-in admin console from a terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "api-url", Usage: "REST backend base URL", EnvVars: []string{"API_BASE_URL"}},
			&cli.StringFlag{Name: "api-token", Usage: "bearer token for the backend", EnvVars: []string{"API_TOKEN"}},
			&cli.DurationFlag{Name: "timeout", Value: 10 * time.Second, EnvVars: []string{"API_TIMEOUT"}},
			&cli.StringFlag{Name: "jwt-secret", Usage: "session token secret", EnvVars: []string{"JWT_SECRET"}},
			&cli.StringFlag{Name: "jwt-issuer", Value: "all-in-admin", EnvVars: []string{"JWT_ISSUER"}},
			&cli.StringFlag{Name: "log-level", Value: "warn", EnvVars: []string{"LOG_LEVEL"}},
		},
		Commands: []*cli.Command{
			navigateCommand(),
			tokenCommand(),
		},
	}
	for _, def := range services.Definitions() {
		app.Commands = append(app.Commands, resourceCommand(def))
	}
	return app
}

func navigateCommand() *cli.Command {
	return &cli.Command{
		Name:      "navigate",
		Usage:     "show what the navigation guard decides for a path",
		ArgsUsage: "PATH",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "session", Usage: "session token to evaluate (empty means logged out)"},
		},
		Action: func(c *cli.Context) error {
			path := c.Args().First()
			if path == "" {
				return errors.New("navigate: PATH is required")
			}
			var sess auth.Session = auth.Anonymous{}
			if token := c.String("session"); token != "" {
				tokens, err := tokenManager(c, time.Hour)
				if err != nil {
					return err
				}
				sess = tokens.Session(token)
			}

			table := router.DefaultTable()
			decision, route := router.NewGuard(table, nil, nil).Navigate(path, sess)
			return printJSON(c.App.Writer, table.Describe(path, route, decision))
		},
	}
}

func tokenCommand() *cli.Command {
	return &cli.Command{
		Name:  "token",
		Usage: "mint a console session token for local development",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "role", Required: true, Usage: "admin or accountant"},
			&cli.StringFlag{Name: "username", Value: "dev"},
			&cli.StringFlag{Name: "email"},
			&cli.Int64Flag{Name: "id", Value: 1},
			&cli.DurationFlag{Name: "ttl", Value: time.Hour},
		},
		Action: func(c *cli.Context) error {
			role := models.Role(strings.TrimSpace(c.String("role")))
			if !role.Known() {
				return fmt.Errorf("token: unknown role %q", role)
			}
			tokens, err := tokenManager(c, c.Duration("ttl"))
			if err != nil {
				return err
			}
			signed, err := tokens.Generate(models.User{
				ID:       c.Int64("id"),
				Username: c.String("username"),
				Email:    c.String("email"),
				Role:     role,
			})
			if err != nil {
				return fmt.Errorf("token: %w", err)
			}
			_, err = fmt.Fprintln(c.App.Writer, signed)
			return err
		},
	}
}

func resourceCommand(def services.Definition) *cli.Command {
	run := func(fn func(c *cli.Context, rc *services.ResourceClient) error) cli.ActionFunc {
		return func(c *cli.Context) error {
			rc, err := resourceClient(c, def)
			if err != nil {
				return err
			}
			return fn(c, rc)
		}
	}

	return &cli.Command{
		Name:  def.Name,
		Usage: "manage " + strings.ReplaceAll(def.Name, "-", " "),
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list all records",
				Action: run(func(c *cli.Context, rc *services.ResourceClient) error {
					items, err := rc.List(c.Context)
					if err != nil {
						return err
					}
					return printJSON(c.App.Writer, items)
				}),
			},
			{
				Name:      "get",
				Usage:     "show one record",
				ArgsUsage: "ID",
				Action: run(func(c *cli.Context, rc *services.ResourceClient) error {
					item, err := rc.Get(c.Context, c.Args().First())
					if err != nil {
						return err
					}
					return printRaw(c.App.Writer, item)
				}),
			},
			{
				Name:      "create",
				Usage:     "create a record from a JSON document",
				ArgsUsage: "JSON",
				Action: run(func(c *cli.Context, rc *services.ResourceClient) error {
					payload, err := jsonArg(c, 0)
					if err != nil {
						return err
					}
					item, err := rc.Create(c.Context, payload)
					if err != nil {
						return err
					}
					return printRaw(c.App.Writer, item)
				}),
			},
			{
				Name:      "update",
				Usage:     "replace a record with a JSON document",
				ArgsUsage: "ID JSON",
				Action: run(func(c *cli.Context, rc *services.ResourceClient) error {
					payload, err := jsonArg(c, 1)
					if err != nil {
						return err
					}
					item, err := rc.Update(c.Context, c.Args().First(), payload)
					if err != nil {
						return err
					}
					return printRaw(c.App.Writer, item)
				}),
			},
			{
				Name:      "delete",
				Usage:     "delete a record",
				ArgsUsage: "ID",
				Action: run(func(c *cli.Context, rc *services.ResourceClient) error {
					if err := rc.Delete(c.Context, c.Args().First()); err != nil {
						return err
					}
					_, err := fmt.Fprintf(c.App.Writer, "deleted %s %s\n", def.Name, c.Args().First())
					return err
				}),
			},
		},
	}
}

func resourceClient(c *cli.Context, def services.Definition) (*services.ResourceClient, error) {
	log, err := cliLogger(c)
	if err != nil {
		return nil, err
	}
	client, err := api.New(api.Options{
		BaseURL: c.String("api-url"),
		Timeout: c.Duration("timeout"),
		Tokens:  api.StaticToken(c.String("api-token")),
		Logger:  log,
	})
	if err != nil {
		return nil, err
	}
	return services.NewResourceClient(client, def, log, nil), nil
}

func tokenManager(c *cli.Context, ttl time.Duration) (*auth.TokenManager, error) {
	secret := strings.TrimSpace(c.String("jwt-secret"))
	if secret == "" {
		return nil, errors.New("JWT_SECRET (or --jwt-secret) is required")
	}
	return auth.NewTokenManager(secret, c.String("jwt-issuer"), ttl), nil
}

func cliLogger(c *cli.Context) (*logrus.Logger, error) {
	return logging.NewWithOutput(c.App.ErrWriter, c.String("log-level"), "text")
}

func jsonArg(c *cli.Context, idx int) (json.RawMessage, error) {
	arg := c.Args().Get(idx)
	if !json.Valid([]byte(arg)) {
		return nil, fmt.Errorf("argument %d is not valid JSON", idx+1)
	}
	return json.RawMessage(arg), nil
}

func printJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

func printRaw(w io.Writer, raw json.RawMessage) error {
	if len(raw) == 0 {
		return nil
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, buf.String())
	return err
}
