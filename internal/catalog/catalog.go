// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package catalog supplies template strings by (category, page, field).
// Templates are opaque spintax strings; the catalog neither parses nor
// renders them.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"tenantpress/internal/model"
	"tenantpress/internal/store"
)

// ErrNotFound is returned when no template exists for the requested
// (category, page, field), not even a built-in default.
var ErrNotFound = errors.New("catalog: template not found")

// Catalog supplies the current template string for a field.
type Catalog interface {
	Template(ctx context.Context, category, page, field string) (string, error)
}

// StoreCatalog reads templates from the tenant store, falling back to the
// built-in default set for the category and then to the generic set.
type StoreCatalog struct {
	queries *store.Queries
}

// NewStoreCatalog creates a store-backed catalog.
func NewStoreCatalog(db *sql.DB) *StoreCatalog {
	return &StoreCatalog{queries: store.New(db)}
}

// Template implements Catalog.
func (c *StoreCatalog) Template(ctx context.Context, category, page, field string) (string, error) {
	if category == "" {
		category = model.CategoryGeneric
	}

	row, err := c.queries.GetTemplate(ctx, store.GetTemplateParams{Category: category, Page: page, Field: field})
	if err == nil {
		return row.Body, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("loading template %s/%s/%s: %w", category, page, field, err)
	}

	if body, ok := defaultTemplate(category, page, field); ok {
		return body, nil
	}
	return "", ErrNotFound
}

// defaultTemplate looks up the built-in set for a category, then the
// generic set.
func defaultTemplate(category, page, field string) (string, bool) {
	if pages, ok := defaults[category]; ok {
		if body, ok := pages[page][field]; ok {
			return body, true
		}
	}
	if category != model.CategoryGeneric {
		if body, ok := defaults[model.CategoryGeneric][page][field]; ok {
			return body, true
		}
	}
	return "", false
}

// defaults holds the built-in template sets, keyed category -> page -> field.
var defaults = map[string]map[string]map[string]string{
	model.CategoryGeneric: {
		"home": {
			"hero_title": "{{business_name}} | {Serving|Proudly Serving} {{city}}, {{state}}",
			"hero_body": "{Welcome to|Thanks for visiting} {{business_name}}. " +
				"We {serve|work throughout} {{city}} and the surrounding area. " +
				"{Call|Contact} us at {{phone}}.",
			"seo_title":       "{{business_name}} | {{city}}, {{state}}",
			"seo_description": "{{business_name}} {serves|is based in} {{city}}, {{state}}. Call {{phone}}.",
		},
		"service": {
			"hero_title": "{{service_name}} in {{city}} | {{business_name}}",
			"hero_body": "{Looking for|Need} {{service_name}} in {{city}}? " +
				"{{business_name}} {can help|is ready to help}. {Call|Reach us at} {{phone}}.",
		},
		"area": {
			"hero_title": "{{business_name}} {in|serving} {{area_name}}",
			"hero_body": "{{business_name}} {proudly serves|serves|covers} {{area_name}} " +
				"and {nearby communities|the surrounding area}.",
		},
	},
	model.CategoryContractor: {
		"home": {
			"hero_title": "{{business_name}} | {Licensed|Trusted|Top-Rated} {Contractors|Pros} in {{city}}",
			"hero_body": "{{business_name}} {has served|proudly serves} {{city}}, {{state}} " +
				"{with upfront pricing|with same-day service}. {Call|Reach} us at {{phone}}.",
		},
	},
	model.CategoryMedical: {
		"home": {
			"hero_title": "{{business_name}} | {Compassionate|Modern|Family-Friendly} Care in {{city}}",
			"hero_body": "{The team at|Everyone at} {{business_name}} {welcomes|is ready to welcome} " +
				"new patients {across|throughout} the {{city}} area. {Schedule|Book} a visit at {{phone}}.",
		},
	},
	model.CategoryLegal: {
		"home": {
			"hero_title": "{{business_name}} | {Experienced|Dedicated} Attorneys in {{city}}",
			"hero_body": "{{business_name}} {represents|serves} clients {across|throughout} " +
				"{{city}}, {{state}}. {Call|Contact} {{phone}} for a consultation.",
		},
	},
}
