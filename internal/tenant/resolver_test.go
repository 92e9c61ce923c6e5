// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package tenant

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"

	"tenantpress/internal/store"
	"tenantpress/internal/testutil"
)

func seedTenant(t *testing.T, db *sql.DB, p store.CreateTenantParams) store.TenantRow {
	t.Helper()

	if p.UUID == "" {
		p.UUID = uuid.NewString()
	}
	now := time.Now()
	p.CreatedAt, p.UpdatedAt = now, now

	row, err := store.New(db).CreateTenant(context.Background(), p)
	if err != nil {
		t.Fatalf("CreateTenant: %v", err)
	}
	return row
}

func validSlug(s string) sql.NullString {
	return sql.NullString{String: s, Valid: true}
}

func TestResolveByDomainPrimaryWins(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	ctx := context.Background()

	seedTenant(t, db, store.CreateTenantParams{Name: "Sub", Domain: "acme.example.com", Slug: validSlug("")})
	primary := seedTenant(t, db, store.CreateTenantParams{
		Name: "Main", Domain: "acme.example.com", IsPrimary: true, Slug: validSlug("home"),
	})

	r := NewResolver(db, "")
	got, err := r.ResolveByDomain(ctx, "acme.example.com")
	if err != nil {
		t.Fatalf("ResolveByDomain: %v", err)
	}
	if got == nil || got.ID != primary.ID {
		t.Fatalf("got %+v, want tenant %d", got, primary.ID)
	}
}

func TestResolveByDomainFormatTolerant(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	ctx := context.Background()

	// Stored domain uses scheme, www and trailing slash
	row := seedTenant(t, db, store.CreateTenantParams{
		Name: "Messy Domain", Domain: "https://www.messy.example.com/", IsPrimary: true,
	})

	r := NewResolver(db, "")
	for _, req := range []string{"messy.example.com", "WWW.Messy.example.com", "http://messy.example.com/page"} {
		got, err := r.ResolveByDomain(ctx, req)
		if err != nil {
			t.Fatalf("ResolveByDomain(%q): %v", req, err)
		}
		if got == nil || got.ID != row.ID {
			t.Errorf("ResolveByDomain(%q) = %+v, want tenant %d", req, got, row.ID)
		}
	}
}

func TestResolveByDomainHomeSlugFallback(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	ctx := context.Background()

	// No primary flag anywhere; the empty/home slug rows decide it
	home := seedTenant(t, db, store.CreateTenantParams{Name: "Home", Domain: "h.example.com", Slug: validSlug("home")})
	seedTenant(t, db, store.CreateTenantParams{Name: "Later", Domain: "h.example.com", Slug: validSlug("")})

	r := NewResolver(db, "")
	got, err := r.ResolveByDomain(ctx, "h.example.com")
	if err != nil {
		t.Fatalf("ResolveByDomain: %v", err)
	}
	if got == nil || got.ID != home.ID {
		t.Fatalf("got %+v, want lowest-id home tenant %d", got, home.ID)
	}
}

func TestResolveByDomainLegacyNullSlug(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	ctx := context.Background()

	// Only legacy rows with NULL slugs
	legacy := seedTenant(t, db, store.CreateTenantParams{Name: "Old A", Domain: "old.example.com"})
	seedTenant(t, db, store.CreateTenantParams{Name: "Old B", Domain: "old.example.com"})

	r := NewResolver(db, "")
	got, err := r.ResolveByDomain(ctx, "old.example.com")
	if err != nil {
		t.Fatalf("ResolveByDomain: %v", err)
	}
	if got == nil || got.ID != legacy.ID {
		t.Fatalf("got %+v, want tenant %d", got, legacy.ID)
	}
}

func TestResolveByDomainDeterministicUnderAmbiguity(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	ctx := context.Background()

	// Two rows, neither marked primary, both with empty slugs
	first := seedTenant(t, db, store.CreateTenantParams{Name: "A", Domain: "tie.example.com", Slug: validSlug("")})
	seedTenant(t, db, store.CreateTenantParams{Name: "B", Domain: "tie.example.com", Slug: validSlug("")})

	r := NewResolver(db, "")
	for i := 0; i < 10; i++ {
		got, err := r.ResolveByDomain(ctx, "tie.example.com")
		if err != nil {
			t.Fatalf("ResolveByDomain: %v", err)
		}
		if got == nil || got.ID != first.ID {
			t.Fatalf("call %d: got %+v, want lower-id tenant %d", i, got, first.ID)
		}
	}
}

func TestResolveByDomainAndSlug(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	ctx := context.Background()

	// No primary and no home rows on this domain, so the slug decides
	sub := seedTenant(t, db, store.CreateTenantParams{
		Name: "Lakewood", Domain: "multi.example.com", Slug: validSlug("lakewood"),
	})
	seedTenant(t, db, store.CreateTenantParams{
		Name: "Foreign", Domain: "foreign.example.com", Slug: validSlug("lakewood"),
	})

	r := NewResolver(db, "")
	got, err := r.ResolveByDomainAndSlug(ctx, "multi.example.com", "LAKEWOOD")
	if err != nil {
		t.Fatalf("ResolveByDomainAndSlug: %v", err)
	}
	if got == nil || got.ID != sub.ID {
		t.Fatalf("got %+v, want tenant %d", got, sub.ID)
	}
}

func TestResolveByDomainAndSlugNeverCrossesDomains(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	ctx := context.Background()

	seedTenant(t, db, store.CreateTenantParams{
		Name: "Foreign", Domain: "foreign.example.com", Slug: validSlug("denver"),
	})

	r := NewResolver(db, "")
	got, err := r.ResolveByDomainAndSlug(ctx, "empty.example.com", "denver")
	if err != nil {
		t.Fatalf("ResolveByDomainAndSlug: %v", err)
	}
	if got != nil {
		t.Fatalf("slug lookup crossed domains: got %+v", got)
	}
}

func TestResolveBySlugScopedToPreferredDomain(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	ctx := context.Background()

	want := seedTenant(t, db, store.CreateTenantParams{
		Name: "Ours", Domain: "scoped.example.com", Slug: validSlug("denver"),
	})
	seedTenant(t, db, store.CreateTenantParams{
		Name: "Theirs", Domain: "other.example.com", Slug: validSlug("denver"),
	})

	r := NewResolver(db, "")
	got, err := r.ResolveBySlug(ctx, "denver", "scoped.example.com")
	if err != nil {
		t.Fatalf("ResolveBySlug: %v", err)
	}
	if got == nil || got.ID != want.ID {
		t.Fatalf("got %+v, want tenant %d", got, want.ID)
	}

	if got, _ := r.ResolveBySlug(ctx, "", "scoped.example.com"); got != nil {
		t.Errorf("empty slug should resolve to nothing, got %+v", got)
	}
}

func TestResolveFallbackDomain(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	ctx := context.Background()

	main := seedTenant(t, db, store.CreateTenantParams{
		Name: "Canonical", Domain: "real.example.com", IsPrimary: true,
	})

	r := NewResolver(db, "real.example.com")

	// A preview hostname with no tenant rows of its own
	got, err := r.ResolveByDomain(ctx, "deploy-preview-42.netlify.app")
	if err != nil {
		t.Fatalf("ResolveByDomain: %v", err)
	}
	if got == nil || got.ID != main.ID {
		t.Fatalf("fallback domain not consulted: got %+v, want tenant %d", got, main.ID)
	}

	// An empty host also lands on the fallback
	got, err = r.ResolveByDomain(ctx, "")
	if err != nil {
		t.Fatalf("ResolveByDomain(\"\"): %v", err)
	}
	if got == nil || got.ID != main.ID {
		t.Fatalf("empty host did not use fallback: got %+v", got)
	}
}

func TestResolveNotFoundIsNotAnError(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	r := NewResolver(db, "")
	got, err := r.ResolveByDomain(context.Background(), "nothing.example.com")
	if err != nil {
		t.Fatalf("not-found must not be an error, got %v", err)
	}
	if got != nil {
		t.Fatalf("got %+v, want nil", got)
	}
}

func TestResolveReturnsAssembledTenant(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	ctx := context.Background()

	seedTenant(t, db, store.CreateTenantParams{
		Name: "Assembled", Domain: "asm.example.com", IsPrimary: true,
		Phone: "3035550142", ServiceAreas: "Denver, Aurora",
	})

	r := NewResolver(db, "")
	got, err := r.ResolveByDomain(ctx, "asm.example.com")
	if err != nil {
		t.Fatalf("ResolveByDomain: %v", err)
	}
	if got == nil {
		t.Fatal("no tenant resolved")
	}
	if got.DisplayPhone != "(303) 555-0142" {
		t.Errorf("DisplayPhone = %q", got.DisplayPhone)
	}
	if len(got.ServiceAreas) != 2 {
		t.Errorf("ServiceAreas = %v", got.ServiceAreas)
	}
}
