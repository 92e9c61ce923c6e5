// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package tenant resolves requests to tenant records and assembles the
// raw stored rows into typed entities ready for template rendering.
package tenant

import (
	"encoding/json"
	"strings"

	"tenantpress/internal/model"
	"tenantpress/internal/store"
	"tenantpress/internal/util"
)

// Assemble converts a raw tenant row into a typed Tenant. Stored
// free-text columns are parsed with a structured-first, text-fallback
// strategy; malformed data degrades to empty collections and is never an
// error, since content completeness is enforced by the page layer.
func Assemble(row store.TenantRow) model.Tenant {
	t := model.Tenant{
		ID:             row.ID,
		UUID:           row.UUID,
		Slug:           util.StringOrEmpty(row.Slug),
		Name:           row.Name,
		Domain:         row.Domain,
		IsPrimary:      row.IsPrimary,
		Phone:          row.Phone,
		DisplayPhone:   FormatPhone(row.Phone),
		Email:          row.Email,
		Address:        row.Address,
		City:           row.City,
		State:          row.State,
		Zip:            row.Zip,
		Category:       row.Category,
		SEOTitle:       row.SEOTitle,
		SEODescription: row.SEODescription,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}

	t.ServiceAreas = ParseServiceAreas(row.ServiceAreas)
	t.Links = ParseLinks(row.Links)
	t.SocialLinks = mergeSocialLinks(row)

	return t
}

// areaEntry is the JSON object form of a service area.
type areaEntry struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// ParseServiceAreas parses the service-area free-text column. JSON-shaped
// input (starting with '[' or '{') is parsed as JSON, where items are
// plain strings or {name, slug} objects; anything else, or a failed JSON
// parse, falls back to line/comma splitting with an optional "name|slug"
// pipe syntax. Unparseable input yields an empty list.
func ParseServiceAreas(raw string) []model.ServiceArea {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	if strings.HasPrefix(raw, "[") || strings.HasPrefix(raw, "{") {
		if areas, ok := parseAreasJSON(raw); ok {
			return areas
		}
	}

	return parseAreasText(raw)
}

func parseAreasJSON(raw string) ([]model.ServiceArea, bool) {
	var items []json.RawMessage
	if strings.HasPrefix(raw, "{") {
		// A single object is accepted as a one-element list
		items = []json.RawMessage{json.RawMessage(raw)}
	} else if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, false
	}

	areas := make([]model.ServiceArea, 0, len(items))
	for _, item := range items {
		var name string
		if err := json.Unmarshal(item, &name); err == nil {
			if name = strings.TrimSpace(name); name != "" {
				areas = append(areas, model.ServiceArea{Name: name, Slug: util.Slugify(name)})
			}
			continue
		}

		var entry areaEntry
		if err := json.Unmarshal(item, &entry); err != nil {
			return nil, false
		}
		entry.Name = strings.TrimSpace(entry.Name)
		if entry.Name == "" {
			continue
		}
		slug := strings.TrimSpace(entry.Slug)
		if slug == "" {
			slug = util.Slugify(entry.Name)
		}
		areas = append(areas, model.ServiceArea{Name: entry.Name, Slug: slug})
	}
	return areas, true
}

func parseAreasText(raw string) []model.ServiceArea {
	var areas []model.ServiceArea
	for _, line := range strings.Split(raw, "\n") {
		for _, part := range strings.Split(line, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}

			name, slug := part, ""
			if idx := strings.Index(part, "|"); idx != -1 {
				name = strings.TrimSpace(part[:idx])
				slug = strings.TrimSpace(part[idx+1:])
			}
			if name == "" {
				continue
			}
			if slug == "" {
				slug = util.Slugify(name)
			}
			areas = append(areas, model.ServiceArea{Name: name, Slug: slug})
		}
	}
	return areas
}

// ParseLinks parses a link-list column: either a JSON array of
// {label, href} objects or newline-delimited "label|href" lines. A line
// without a pipe is treated as a bare href labeled by itself. Malformed
// input yields an empty list.
func ParseLinks(raw string) []model.SiteLink {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	if strings.HasPrefix(raw, "[") {
		var links []model.SiteLink
		if err := json.Unmarshal([]byte(raw), &links); err == nil {
			out := links[:0]
			for _, l := range links {
				l.Label = strings.TrimSpace(l.Label)
				l.Href = strings.TrimSpace(l.Href)
				if l.Href == "" {
					continue
				}
				if l.Label == "" {
					l.Label = l.Href
				}
				out = append(out, l)
			}
			return out
		}
	}

	var links []model.SiteLink
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		label, href := line, line
		if idx := strings.Index(line, "|"); idx != -1 {
			label = strings.TrimSpace(line[:idx])
			href = strings.TrimSpace(line[idx+1:])
		}
		if href == "" {
			continue
		}
		if label == "" {
			label = href
		}
		links = append(links, model.SiteLink{Label: label, Href: href})
	}
	return links
}

// mergeSocialLinks combines the dedicated social columns with any links
// found in the generic free-text field, deduplicating by normalized href
// and preserving first-seen order.
func mergeSocialLinks(row store.TenantRow) []model.SiteLink {
	var merged []model.SiteLink
	seen := make(map[string]struct{})

	add := func(l model.SiteLink) {
		key := strings.ToLower(strings.TrimSpace(l.Href))
		if key == "" {
			return
		}
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		merged = append(merged, l)
	}

	if row.GoogleBusinessURL != "" {
		add(model.SiteLink{Label: "Google Business Profile", Href: row.GoogleBusinessURL})
	}
	if row.YouTubeURL != "" {
		add(model.SiteLink{Label: "YouTube", Href: row.YouTubeURL})
	}
	for _, l := range ParseLinks(row.SocialLinks) {
		add(l)
	}

	return merged
}

// FormatPhone renders a raw phone field for display: exactly 10 digits
// become "(XXX) XXX-XXXX", 11 digits with a leading 1 the same after
// dropping it, and anything else passes through unchanged.
func FormatPhone(raw string) string {
	var digits []byte
	for i := 0; i < len(raw); i++ {
		if raw[i] >= '0' && raw[i] <= '9' {
			digits = append(digits, raw[i])
		}
	}

	if len(digits) == 11 && digits[0] == '1' {
		digits = digits[1:]
	}
	if len(digits) != 10 {
		return raw
	}

	d := string(digits)
	return "(" + d[:3] + ") " + d[3:6] + "-" + d[6:]
}
