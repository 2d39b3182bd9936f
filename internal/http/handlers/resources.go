package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/hongminglow/all-in-admin/internal/api"
	"github.com/hongminglow/all-in-admin/internal/http/respond"
	"github.com/hongminglow/all-in-admin/internal/middleware"
	"github.com/hongminglow/all-in-admin/internal/services"
)

const maxPayloadBytes = 1 << 20

// ResourceHandler passes console CRUD calls through to the resource clients
// on behalf of the signed-in caller.
type ResourceHandler struct {
	registry *services.Registry
}

// NewResourceHandler constructs the handler.
func NewResourceHandler(registry *services.Registry) *ResourceHandler {
	return &ResourceHandler{registry: registry}
}

// Register attaches resource routes to the mux. Every route requires a session.
func (h *ResourceHandler) Register(mux *http.ServeMux) {
	mux.Handle("GET /api/resources/{resource}", middleware.RequireSession(http.HandlerFunc(h.handleList)))
	mux.Handle("POST /api/resources/{resource}", middleware.RequireSession(http.HandlerFunc(h.handleCreate)))
	mux.Handle("GET /api/resources/{resource}/{id}", middleware.RequireSession(http.HandlerFunc(h.handleGet)))
	mux.Handle("PUT /api/resources/{resource}/{id}", middleware.RequireSession(http.HandlerFunc(h.handleUpdate)))
	mux.Handle("DELETE /api/resources/{resource}/{id}", middleware.RequireSession(http.HandlerFunc(h.handleDelete)))
}

func (h *ResourceHandler) client(w http.ResponseWriter, r *http.Request) (*services.ResourceClient, bool) {
	client, ok := h.registry.Lookup(r.PathValue("resource"))
	if !ok {
		respond.Error(w, http.StatusNotFound, "unknown resource")
	}
	return client, ok
}

func (h *ResourceHandler) handleList(w http.ResponseWriter, r *http.Request) {
	client, ok := h.client(w, r)
	if !ok {
		return
	}
	items, err := client.List(r.Context())
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	body, err := json.Marshal(items)
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "failed to encode list")
		return
	}
	respond.Raw(w, http.StatusOK, body)
}

func (h *ResourceHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	client, ok := h.client(w, r)
	if !ok {
		return
	}
	item, err := client.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	respond.Raw(w, http.StatusOK, item)
}

func (h *ResourceHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	client, ok := h.client(w, r)
	if !ok {
		return
	}
	payload, ok := readPayload(w, r)
	if !ok {
		return
	}
	created, err := client.Create(r.Context(), payload)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	respond.Raw(w, http.StatusCreated, created)
}

func (h *ResourceHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	client, ok := h.client(w, r)
	if !ok {
		return
	}
	payload, ok := readPayload(w, r)
	if !ok {
		return
	}
	updated, err := client.Update(r.Context(), r.PathValue("id"), payload)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	respond.Raw(w, http.StatusOK, updated)
}

func (h *ResourceHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	client, ok := h.client(w, r)
	if !ok {
		return
	}
	if err := client.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeUpstreamError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func readPayload(w http.ResponseWriter, r *http.Request) (json.RawMessage, bool) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxPayloadBytes))
	if err != nil {
		respond.Error(w, http.StatusRequestEntityTooLarge, "payload too large")
		return nil, false
	}
	if !json.Valid(raw) {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return nil, false
	}
	return json.RawMessage(raw), true
}

// writeUpstreamError relays backend statuses and maps everything else to 502.
func writeUpstreamError(w http.ResponseWriter, err error) {
	var statusErr *api.StatusError
	switch {
	case errors.As(err, &statusErr):
		if json.Valid(statusErr.Body) {
			respond.Raw(w, statusErr.StatusCode, statusErr.Body)
			return
		}
		respond.Error(w, statusErr.StatusCode, http.StatusText(statusErr.StatusCode))
	case errors.Is(err, services.ErrEmptyID):
		respond.Error(w, http.StatusBadRequest, err.Error())
	default:
		respond.Error(w, http.StatusBadGateway, "backend request failed")
	}
}
