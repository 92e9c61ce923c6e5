// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package seo builds meta tag data for tenant pages with proper
// override fallbacks.
package seo

import (
	"strings"

	"tenantpress/internal/domain"
	"tenantpress/internal/model"
)

// MaxDescriptionLength is the cutoff for meta descriptions.
const MaxDescriptionLength = 160

// Meta holds the SEO meta tag data for one tenant page.
type Meta struct {
	Title       string // Page title (for <title> tag)
	Description string // Meta description
	Canonical   string // Canonical URL
	Robots      string // Robots directive
}

// BuildMeta assembles meta data for a tenant page. Tenant-level SEO
// overrides win over the rendered template output; the rendered output
// wins over bare tenant fields.
func BuildMeta(t *model.Tenant, renderedTitle, renderedDescription string) *Meta {
	meta := &Meta{Robots: "index,follow"}

	// Title: tenant override → rendered template → business name
	switch {
	case t.SEOTitle != "":
		meta.Title = t.SEOTitle
	case renderedTitle != "":
		meta.Title = renderedTitle
	default:
		meta.Title = t.Name
	}

	// Description: tenant override → rendered template, truncated either way
	desc := t.SEODescription
	if desc == "" {
		desc = renderedDescription
	}
	meta.Description = truncateText(desc, MaxDescriptionLength)

	meta.Canonical = canonicalURL(t)

	return meta
}

// canonicalURL derives the canonical page URL from the tenant's
// normalized domain and slug.
func canonicalURL(t *model.Tenant) string {
	key := domain.Normalize(t.Domain)
	if key == "" {
		return ""
	}
	u := "https://" + key
	if !t.IsHome() {
		u += "/" + t.Slug
	}
	return u
}

// truncateText truncates text to maxLen characters at word boundary.
func truncateText(text string, maxLen int) string {
	text = strings.TrimSpace(text)
	if len(text) <= maxLen {
		return text
	}

	truncated := text[:maxLen]
	lastSpace := strings.LastIndex(truncated, " ")
	if lastSpace > maxLen/2 {
		truncated = truncated[:lastSpace]
	}

	return strings.TrimSpace(truncated) + "..."
}
