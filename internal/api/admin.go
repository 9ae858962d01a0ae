// Copyright (c) 2026 Touring. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api's admin surface exposes a handful of operator-facing endpoints
for cache maintenance and plugin introspection.

There is no series/chapter REST API here — that is the embedder's façade
to build against the Aggregator directly. This surface exists only for
operators running the aggregator as a standalone service.
*/
package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/5eus/touring/internal/platform/request"
	"github.com/5eus/touring/internal/platform/respond"
)

// # Data Structures

// PluginStatus summarizes one registered plugin slot for introspection.
type PluginStatus struct {
	Name  string `json:"name"`
	State string `json:"state"`
	Error string `json:"error,omitempty"`
}

// AdminService is the subset of Aggregator/Manager operations the admin
// surface depends on. Kept narrow so this package never imports the
// aggregator or pluginmanager packages directly.
type AdminService interface {
	// ClearCachePrefix deletes every search_cache row whose key starts with
	// prefix, returning the number of rows removed.
	ClearCachePrefix(ctx context.Context, prefix string) (int64, error)

	// Vacuum deletes every expired search_cache row.
	Vacuum(ctx context.Context) (int64, error)

	// ListPlugins reports the current state of every registered plugin slot.
	ListPlugins(ctx context.Context) []PluginStatus
}

// adminHandler implements the HTTP layer for operator-facing maintenance endpoints.
type adminHandler struct {
	service AdminService
}

// NewAdminHandler constructs a new admin [adminHandler].
func NewAdminHandler(service AdminService) *adminHandler {
	return &adminHandler{service: service}
}

// Routes returns a [chi.Router] configured with admin endpoints.
func (handler *adminHandler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/cache/clear", handler.clearCache)
	router.Post("/vacuum", handler.vacuum)
	router.Get("/plugins", handler.listPlugins)

	return router
}

// # Admin Endpoints

type clearCacheRequest struct {
	Prefix string `json:"prefix"`
}

/*
POST /admin/cache/clear.

Description: Deletes every search_cache row whose key starts with the
given prefix. An empty prefix clears the entire cache.

Request (Body):
  - prefix: string

Response:
  - 200: {"deleted": int64}
*/
func (handler *adminHandler) clearCache(writer http.ResponseWriter, request *http.Request) {
	var input clearCacheRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	deleted, err := handler.service.ClearCachePrefix(request.Context(), input.Prefix)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]int64{"deleted": deleted})
}

/*
POST /admin/vacuum.

Description: Deletes every expired search_cache row.

Response:
  - 200: {"deleted": int64}
*/
func (handler *adminHandler) vacuum(writer http.ResponseWriter, request *http.Request) {
	deleted, err := handler.service.Vacuum(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]int64{"deleted": deleted})
}

/*
GET /admin/plugins.

Description: Lists every registered plugin slot along with its current
lifecycle state (REGISTERED, LOADING, READY, LOAD_FAILED).

Response:
  - 200: []PluginStatus
*/
func (handler *adminHandler) listPlugins(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, handler.service.ListPlugins(request.Context()))
}
