// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"tenantpress/internal/model"
	"tenantpress/internal/util"
)

// Seed populates demo tenants and a starter template catalog.
// It is a no-op when the store already holds tenants.
func Seed(ctx context.Context, db *sql.DB) error {
	queries := New(db)

	count, err := queries.CountTenants(ctx)
	if err != nil {
		return fmt.Errorf("counting tenants: %w", err)
	}
	if count > 0 {
		slog.Info("tenant store already populated, skipping seed", "tenants", count)
		return nil
	}

	now := time.Now()

	demoTenants := []CreateTenantParams{
		{
			UUID:              uuid.NewString(),
			Slug:              sql.NullString{String: "", Valid: true},
			Name:              "Acme Plumbing & Heating",
			Domain:            "acmeplumbing.example.com",
			IsPrimary:         true,
			Phone:             "3035550142",
			Email:             "office@acmeplumbing.example.com",
			Address:           "1200 Market St",
			City:              "Denver",
			State:             "CO",
			Zip:               "80202",
			Category:          model.CategoryContractor,
			ServiceAreas:      `["Denver", "Aurora", {"name": "Park Hill & Five Points", "slug": "park-hill-five-points"}]`,
			Links:             "Emergency Service|/emergency\nWater Heaters|/services/water-heaters",
			GoogleBusinessURL: "https://maps.google.com/?cid=demo-acme",
			YouTubeURL:        "https://youtube.com/@acmeplumbingdemo",
			CreatedAt:         now,
			UpdatedAt:         now,
		},
		{
			UUID:         uuid.NewString(),
			Slug:         util.NullStringFromValue("lakewood"),
			Name:         "Acme Plumbing of Lakewood",
			Domain:       "acmeplumbing.example.com",
			IsPrimary:    false,
			Phone:        "13035550177",
			Email:        "lakewood@acmeplumbing.example.com",
			City:         "Lakewood",
			State:        "CO",
			Category:     model.CategoryContractor,
			ServiceAreas: "Lakewood, Golden, Wheat Ridge",
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		{
			UUID:      uuid.NewString(),
			Slug:      util.NullStringFromValue("home"),
			Name:      "Summit Family Dental",
			Domain:    "https://www.summitdental.example.com/",
			IsPrimary: false,
			Phone:     "720-555-0199",
			Email:     "hello@summitdental.example.com",
			City:      "Boulder",
			State:     "CO",
			Category:  model.CategoryMedical,
			Links:     `[{"label": "Patient Portal", "href": "/portal"}]`,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	for _, p := range demoTenants {
		tenant, err := queries.CreateTenant(ctx, p)
		if err != nil {
			return fmt.Errorf("creating demo tenant %q: %w", p.Name, err)
		}
		slog.Info("created demo tenant", "id", tenant.ID, "name", tenant.Name, "domain", tenant.Domain)
	}

	for _, tpl := range starterTemplates {
		if err := queries.UpsertTemplate(ctx, tpl); err != nil {
			return fmt.Errorf("seeding template %s/%s/%s: %w", tpl.Category, tpl.Page, tpl.Field, err)
		}
	}
	slog.Info("seeded starter template catalog", "templates", len(starterTemplates))

	return nil
}

// starterTemplates is the demo catalog. Real deployments manage templates
// through the (out of scope) admin surface.
var starterTemplates = []UpsertTemplateParams{
	{
		Category: model.CategoryContractor,
		Page:     "home",
		Field:    "hero_title",
		Body:     "{{business_name}} | {Trusted|Top-Rated|Dependable} {Service|Contractors} in {{city}}",
	},
	{
		Category: model.CategoryContractor,
		Page:     "home",
		Field:    "hero_body",
		Body: "{{business_name}} {proudly serves|has served|is proud to serve} {{city}}, {{state}} " +
			"{with honest, upfront pricing|with same-day appointments|seven days a week}. " +
			"{Call|Reach} us at {{phone}} {today|now|anytime}.",
	},
	{
		Category: model.CategoryMedical,
		Page:     "home",
		Field:    "hero_title",
		Body:     "{{business_name}} | {Compassionate|Modern|Family-Friendly} Care in {{city}}",
	},
	{
		Category: model.CategoryMedical,
		Page:     "home",
		Field:    "hero_body",
		Body: "{The team at|Everyone at} {{business_name}} {welcomes|is ready to welcome} new patients " +
			"{across|throughout} the {{city}} area. {Schedule|Book} a visit at {{phone}}.",
	},
}
