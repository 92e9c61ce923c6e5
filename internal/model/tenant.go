// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the typed entities produced by the content core.
package model

import "time"

// Tenant categories select which default template set applies when a
// tenant has no catalog overrides of its own.
const (
	CategoryGeneric    = "generic"
	CategoryContractor = "contractor"
	CategoryMedical    = "medical"
	CategoryLegal      = "legal"
)

// HomeSlug is the slug value treated as equivalent to an empty slug when
// resolving the primary page of a domain.
const HomeSlug = "home"

// Tenant is one independently-addressable business/site instance, fully
// assembled from its stored row: free-text columns parsed into typed
// collections and the phone number formatted for display.
type Tenant struct {
	ID        int64  `json:"id"`
	UUID      string `json:"uuid"`
	Slug      string `json:"slug"`
	Name      string `json:"name"`
	Domain    string `json:"domain"`
	IsPrimary bool   `json:"is_primary"`

	Phone        string `json:"phone"`         // raw stored value
	DisplayPhone string `json:"display_phone"` // formatted for page output, may equal Phone
	Email        string `json:"email"`
	Address      string `json:"address"`
	City         string `json:"city"`
	State        string `json:"state"`
	Zip          string `json:"zip"`

	Category string `json:"category"`

	ServiceAreas []ServiceArea `json:"service_areas"`
	Links        []SiteLink    `json:"links"`
	SocialLinks  []SiteLink    `json:"social_links"`

	SEOTitle       string `json:"seo_title,omitempty"`
	SEODescription string `json:"seo_description,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ServiceArea is a place or region a tenant serves. Derived from the
// tenant's free-text field on every read, never stored independently.
type ServiceArea struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// SiteLink is an outbound or internal link with a visible label.
type SiteLink struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

// EffectiveCategory returns the tenant's category tag, defaulting to the
// generic template set when the column is empty.
func (t *Tenant) EffectiveCategory() string {
	if t.Category == "" {
		return CategoryGeneric
	}
	return t.Category
}

// IsHome reports whether the tenant addresses the primary page of its
// domain (empty slug or the literal "home").
func (t *Tenant) IsHome() bool {
	return t.Slug == "" || t.Slug == HomeSlug
}
