// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler exposes the content pipeline over HTTP for preview
// and operational use. The real page layer lives outside this service.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"tenantpress/internal/catalog"
	"tenantpress/internal/middleware"
	"tenantpress/internal/model"
	"tenantpress/internal/seo"
	"tenantpress/internal/spin"
	"tenantpress/internal/tenant"
)

// Default page and field when the query omits them.
const (
	DefaultPage  = "home"
	DefaultField = "hero_title"
)

// PreviewHandler resolves tenants and renders single template fields.
type PreviewHandler struct {
	resolver *tenant.Resolver
	catalog  catalog.Catalog
}

// NewPreviewHandler creates a preview handler.
func NewPreviewHandler(resolver *tenant.Resolver, cat catalog.Catalog) *PreviewHandler {
	return &PreviewHandler{resolver: resolver, catalog: cat}
}

// resolveRequest maps the host/slug query parameters to a tenant.
func (h *PreviewHandler) resolveRequest(w http.ResponseWriter, r *http.Request) *model.Tenant {
	host := r.URL.Query().Get("host")
	slug := r.URL.Query().Get("slug")

	var (
		t   *model.Tenant
		err error
	)
	if slug != "" {
		t, err = h.resolver.ResolveByDomainAndSlug(r.Context(), host, slug)
	} else {
		t, err = h.resolver.ResolveByDomain(r.Context(), host)
	}
	if err != nil {
		slog.Error("tenant resolution failed", "host", host, "slug", slug, "error", err)
		middleware.WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Tenant store unavailable")
		return nil
	}
	if t == nil {
		middleware.WriteAPIError(w, http.StatusNotFound, "tenant_not_found", "No tenant matches this host and slug")
		return nil
	}
	return t
}

// Resolve handles GET /preview/resolve?host=&slug=.
func (h *PreviewHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	t := h.resolveRequest(w, r)
	if t == nil {
		return
	}
	respondJSON(w, http.StatusOK, t)
}

// renderResponse is the payload for a rendered field.
type renderResponse struct {
	TenantID int64  `json:"tenant_id"`
	Page     string `json:"page"`
	Field    string `json:"field"`
	SeedKey  string `json:"seed_key"`
	Text     string `json:"text"`
}

// Render handles GET /preview/render?host=&slug=&page=&field=.
// Extra vars may be supplied via the service and area query parameters.
func (h *PreviewHandler) Render(w http.ResponseWriter, r *http.Request) {
	t := h.resolveRequest(w, r)
	if t == nil {
		return
	}

	q := r.URL.Query()
	page := q.Get("page")
	if page == "" {
		page = DefaultPage
	}
	field := q.Get("field")
	if field == "" {
		field = DefaultField
	}

	tpl, err := h.catalog.Template(r.Context(), t.EffectiveCategory(), page, field)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			middleware.WriteAPIError(w, http.StatusNotFound, "template_not_found", "No template for this page and field")
			return
		}
		slog.Error("template lookup failed", "category", t.EffectiveCategory(), "page", page, "field", field, "error", err)
		middleware.WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Template catalog unavailable")
		return
	}

	extras := map[string]string{}
	if v := q.Get("service"); v != "" {
		extras["service_name"] = v
	}
	if v := q.Get("area"); v != "" {
		extras["area_name"] = v
	}

	seedKey := tenant.SeedKey(*t, page, field)
	text := spin.RenderStable(tpl, tenant.Bind(*t, extras), seedKey)

	respondJSON(w, http.StatusOK, renderResponse{
		TenantID: t.ID,
		Page:     page,
		Field:    field,
		SeedKey:  seedKey,
		Text:     text,
	})
}

// Meta handles GET /preview/meta?host=&slug=: the SEO meta block for a
// tenant's page, using the seo_title/seo_description catalog fields.
func (h *PreviewHandler) Meta(w http.ResponseWriter, r *http.Request) {
	t := h.resolveRequest(w, r)
	if t == nil {
		return
	}

	vars := tenant.Bind(*t, nil)
	title := h.renderOptionalField(r, t, "seo_title", vars)
	desc := h.renderOptionalField(r, t, "seo_description", vars)

	respondJSON(w, http.StatusOK, seo.BuildMeta(t, title, desc))
}

// renderOptionalField renders a home-page catalog field, treating a
// missing template as empty output.
func (h *PreviewHandler) renderOptionalField(r *http.Request, t *model.Tenant, field string, vars map[string]string) string {
	tpl, err := h.catalog.Template(r.Context(), t.EffectiveCategory(), DefaultPage, field)
	if err != nil {
		return ""
	}
	return spin.RenderStable(tpl, vars, tenant.SeedKey(*t, DefaultPage, field))
}

// respondJSON writes a JSON response body.
func respondJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding response", "error", err)
	}
}
