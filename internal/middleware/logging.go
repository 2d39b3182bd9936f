package middleware

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/hongminglow/all-in-admin/internal/api"
)

// Logging writes one structured entry per request.
func Logging(log logrus.FieldLogger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(ww, r)
		log.WithFields(logrus.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.status,
			"duration":   time.Since(start).String(),
			"request_id": api.RequestID(r.Context()),
		}).Info("http")
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
