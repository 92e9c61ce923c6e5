// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package tenant

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sort"

	"tenantpress/internal/domain"
	"tenantpress/internal/model"
	"tenantpress/internal/store"
)

// Resolver maps a (domain, optional slug) request to exactly one tenant
// through an ordered chain of lookup strategies. Resolution is total and
// deterministic: for fixed stored data, the same inputs always select
// the same tenant, even when the data is ambiguous. A nil tenant with a
// nil error is the NotFound result; only datastore failures are errors.
type Resolver struct {
	queries        *store.Queries
	fallbackDomain string
}

// NewResolver creates a Resolver. fallbackDomain, when non-empty, is the
// operator-configured domain retried when resolution against the request
// host finds nothing (e.g. behind a generic preview hostname).
func NewResolver(db *sql.DB, fallbackDomain string) *Resolver {
	return &Resolver{
		queries:        store.New(db),
		fallbackDomain: domain.Normalize(fallbackDomain),
	}
}

// strategy is one step of the resolution chain. Each step queries the
// store scoped to the candidate domain set and returns matching rows in
// its preferred order.
type strategy struct {
	name string
	run  func(ctx context.Context, candidates []string) ([]store.TenantRow, error)
}

// chain returns the ordered strategy list. The slug strategy is only
// appended when the caller supplied a slug.
func (r *Resolver) chain(slug string) []strategy {
	strategies := []strategy{
		{
			name: "primary",
			run: func(ctx context.Context, candidates []string) ([]store.TenantRow, error) {
				return r.queries.ListPrimaryTenantsByDomains(ctx, candidates)
			},
		},
		{
			name: "home-slug",
			run: func(ctx context.Context, candidates []string) ([]store.TenantRow, error) {
				return r.queries.ListHomeTenantsByDomains(ctx, candidates)
			},
		},
		{
			name: "legacy-null-slug",
			run: func(ctx context.Context, candidates []string) ([]store.TenantRow, error) {
				return r.queries.ListLegacyTenantsByDomains(ctx, candidates)
			},
		},
	}

	if slug != "" {
		strategies = append(strategies, strategy{
			name: "slug-match",
			run: func(ctx context.Context, candidates []string) ([]store.TenantRow, error) {
				return r.queries.ListTenantsByDomainsAndSlug(ctx, candidates, slug)
			},
		})
	}

	return strategies
}

// ResolveByDomain resolves the primary tenant for a domain.
func (r *Resolver) ResolveByDomain(ctx context.Context, domainKey string) (*model.Tenant, error) {
	return r.resolve(ctx, domainKey, "")
}

// ResolveByDomainAndSlug resolves a tenant for a domain, consulting the
// supplied slug after the domain-level strategies have been exhausted.
func (r *Resolver) ResolveByDomainAndSlug(ctx context.Context, domainKey, slug string) (*model.Tenant, error) {
	return r.resolve(ctx, domainKey, slug)
}

// ResolveBySlug resolves a tenant by slug scoped to the preferred
// domain's candidate set. The lookup never leaves that scope, so a
// same-named slug on a foreign domain cannot be returned.
func (r *Resolver) ResolveBySlug(ctx context.Context, slug, preferredDomainKey string) (*model.Tenant, error) {
	if slug == "" {
		return nil, nil
	}

	for _, key := range r.domainKeys(preferredDomainKey) {
		candidates := domain.Candidates(key)
		if len(candidates) == 0 {
			continue
		}
		rows, err := r.queries.ListTenantsByDomainsAndSlug(ctx, candidates, slug)
		if err != nil {
			return nil, fmt.Errorf("resolving tenant by slug %q: %w", slug, err)
		}
		if row := pickSlugMatch(rows); row != nil {
			t := Assemble(*row)
			return &t, nil
		}
	}

	return nil, nil
}

// resolve runs the strategy chain against the request domain and, when
// nothing matches, once more against the configured fallback domain.
func (r *Resolver) resolve(ctx context.Context, domainKey, slug string) (*model.Tenant, error) {
	strategies := r.chain(slug)

	for _, key := range r.domainKeys(domainKey) {
		candidates := domain.Candidates(key)
		if len(candidates) == 0 {
			continue
		}

		for _, s := range strategies {
			rows, err := s.run(ctx, candidates)
			if err != nil {
				return nil, fmt.Errorf("resolving tenant (%s) for %q: %w", s.name, key, err)
			}
			var row *store.TenantRow
			if s.name == "slug-match" {
				row = pickSlugMatch(rows)
			} else {
				row = pickLowestID(rows)
			}
			if row != nil {
				slog.Debug("tenant resolved", "strategy", s.name, "domain", key, "tenant_id", row.ID)
				t := Assemble(*row)
				return &t, nil
			}
		}
	}

	return nil, nil
}

// domainKeys returns the request domain followed by the fallback domain,
// skipping empties and a fallback equal to the request.
func (r *Resolver) domainKeys(domainKey string) []string {
	key := domain.Normalize(domainKey)

	var keys []string
	if key != "" {
		keys = append(keys, key)
	}
	if r.fallbackDomain != "" && r.fallbackDomain != key {
		keys = append(keys, r.fallbackDomain)
	}
	return keys
}

// pickLowestID selects the row with the lowest identifier. The queries
// already order by id, but the resolver re-sorts rather than trusting
// store ordering.
func pickLowestID(rows []store.TenantRow) *store.TenantRow {
	if len(rows) == 0 {
		return nil
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
	return &rows[0]
}

// pickSlugMatch selects a slug-strategy row: primary rows win, then the
// lowest identifier.
func pickSlugMatch(rows []store.TenantRow) *store.TenantRow {
	if len(rows) == 0 {
		return nil
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].IsPrimary != rows[j].IsPrimary {
			return rows[i].IsPrimary
		}
		return rows[i].ID < rows[j].ID
	})
	return &rows[0]
}
