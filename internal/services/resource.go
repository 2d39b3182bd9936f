package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/hongminglow/all-in-admin/internal/metrics"
	"github.com/hongminglow/all-in-admin/internal/models"
)

// ErrEmptyID is returned before any request is made when an id is blank.
var ErrEmptyID = errors.New("resource id is required")

// Backend is the shared HTTP client collaborator; *api.Client implements it.
type Backend interface {
	Get(ctx context.Context, path string) (json.RawMessage, error)
	Post(ctx context.Context, path string, body any) (json.RawMessage, error)
	Put(ctx context.Context, path string, body any) (json.RawMessage, error)
	Delete(ctx context.Context, path string) (json.RawMessage, error)
}

// ResourceClient performs list/get/create/update/delete against one REST
// collection. Failures are logged and handed back untouched.
type ResourceClient struct {
	name     string
	basePath string
	unwrap   Unwrap
	backend  Backend
	log      logrus.FieldLogger
	metrics  *metrics.Metrics
}

// Name is the resource name, e.g. "employees".
func (c *ResourceClient) Name() string { return c.name }

// BasePath is the collection path, e.g. "/employees".
func (c *ResourceClient) BasePath() string { return c.basePath }

// List fetches the collection and unwraps it per the resource's rule.
func (c *ResourceClient) List(ctx context.Context) ([]models.Resource, error) {
	body, err := c.backend.Get(ctx, c.basePath)
	if err != nil {
		return nil, c.fail("list", "", err)
	}
	items, err := c.unwrap(body)
	if err != nil {
		return nil, c.fail("list", "", err)
	}
	return items, nil
}

// Get fetches one record; the body is returned as the backend sent it.
func (c *ResourceClient) Get(ctx context.Context, id string) (models.Resource, error) {
	path, err := c.itemPath(id)
	if err != nil {
		return nil, c.fail("get", id, err)
	}
	body, err := c.backend.Get(ctx, path)
	if err != nil {
		return nil, c.fail("get", id, err)
	}
	return body, nil
}

// Create posts data to the collection and returns the created record.
func (c *ResourceClient) Create(ctx context.Context, data any) (models.Resource, error) {
	body, err := c.backend.Post(ctx, c.basePath, data)
	if err != nil {
		return nil, c.fail("create", "", err)
	}
	return body, nil
}

// Update replaces the record with data and returns the updated record.
func (c *ResourceClient) Update(ctx context.Context, id string, data any) (models.Resource, error) {
	path, err := c.itemPath(id)
	if err != nil {
		return nil, c.fail("update", id, err)
	}
	body, err := c.backend.Put(ctx, path, data)
	if err != nil {
		return nil, c.fail("update", id, err)
	}
	return body, nil
}

// Delete removes the record.
func (c *ResourceClient) Delete(ctx context.Context, id string) error {
	path, err := c.itemPath(id)
	if err != nil {
		return c.fail("delete", id, err)
	}
	if _, err := c.backend.Delete(ctx, path); err != nil {
		return c.fail("delete", id, err)
	}
	return nil
}

func (c *ResourceClient) itemPath(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", ErrEmptyID
	}
	return c.basePath + "/" + url.PathEscape(id), nil
}

func (c *ResourceClient) fail(op, id string, err error) error {
	fields := logrus.Fields{
		"resource": c.name,
		"op":       op,
	}
	if id != "" {
		fields["id"] = id
	}
	c.log.WithFields(fields).WithError(err).Errorf("error during %s %s", op, c.name)
	c.metrics.ObserveResourceError(c.name, op)
	return err
}
