package store

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
)

// testDB creates a temporary test database.
func testDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()

	// Create temp file for test database
	f, err := os.CreateTemp("", "tenantpress-test-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	dbPath := f.Name()
	f.Close()

	// Open database
	db, err := NewDB(dbPath)
	if err != nil {
		os.Remove(dbPath)
		t.Fatalf("NewDB: %v", err)
	}

	// Run migrations
	if err := Migrate(db); err != nil {
		db.Close()
		os.Remove(dbPath)
		t.Fatalf("Migrate: %v", err)
	}

	// Return cleanup function
	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}

	return db, cleanup
}

func createTenant(t *testing.T, q *Queries, p CreateTenantParams) TenantRow {
	t.Helper()

	if p.UUID == "" {
		p.UUID = uuid.NewString()
	}
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = now
	}

	row, err := q.CreateTenant(context.Background(), p)
	if err != nil {
		t.Fatalf("CreateTenant: %v", err)
	}
	return row
}

func TestCreateTenant(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	q := New(db)
	row := createTenant(t, q, CreateTenantParams{
		Slug:      sql.NullString{String: "home", Valid: true},
		Name:      "Test Business",
		Domain:    "test.example.com",
		IsPrimary: true,
		City:      "Denver",
	})

	if row.ID == 0 {
		t.Error("row.ID should not be 0")
	}
	if row.Name != "Test Business" {
		t.Errorf("Name = %q, want %q", row.Name, "Test Business")
	}
	if !row.IsPrimary {
		t.Error("IsPrimary should be true")
	}
	if row.UUID == "" {
		t.Error("UUID should not be empty")
	}
}

func TestListTenantsByDomains(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	q := New(db)
	ctx := context.Background()

	createTenant(t, q, CreateTenantParams{Name: "A", Domain: "a.example.com"})
	createTenant(t, q, CreateTenantParams{Name: "B", Domain: "www.a.example.com"})
	createTenant(t, q, CreateTenantParams{Name: "C", Domain: "other.example.com"})

	rows, err := q.ListTenantsByDomains(ctx, []string{"a.example.com", "www.a.example.com"})
	if err != nil {
		t.Fatalf("ListTenantsByDomains: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].ID > rows[1].ID {
		t.Error("rows not ordered by id")
	}

	rows, err = q.ListTenantsByDomains(ctx, nil)
	if err != nil {
		t.Fatalf("ListTenantsByDomains(nil): %v", err)
	}
	if rows != nil {
		t.Errorf("empty candidate set should return nil, got %v", rows)
	}
}

func TestListPrimaryTenantsByDomains(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	q := New(db)
	ctx := context.Background()

	createTenant(t, q, CreateTenantParams{Name: "Secondary", Domain: "p.example.com"})
	primary := createTenant(t, q, CreateTenantParams{Name: "Primary", Domain: "p.example.com", IsPrimary: true})

	rows, err := q.ListPrimaryTenantsByDomains(ctx, []string{"p.example.com"})
	if err != nil {
		t.Fatalf("ListPrimaryTenantsByDomains: %v", err)
	}
	if len(rows) != 1 || rows[0].ID != primary.ID {
		t.Fatalf("got %v, want only tenant %d", rows, primary.ID)
	}
}

func TestListHomeTenantsByDomains(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	q := New(db)
	ctx := context.Background()

	createTenant(t, q, CreateTenantParams{
		Name: "Sub", Domain: "h.example.com",
		Slug: sql.NullString{String: "locations", Valid: true},
	})
	empty := createTenant(t, q, CreateTenantParams{
		Name: "Empty", Domain: "h.example.com",
		Slug: sql.NullString{String: "", Valid: true},
	})
	home := createTenant(t, q, CreateTenantParams{
		Name: "Home", Domain: "h.example.com",
		Slug: sql.NullString{String: "home", Valid: true},
	})

	rows, err := q.ListHomeTenantsByDomains(ctx, []string{"h.example.com"})
	if err != nil {
		t.Fatalf("ListHomeTenantsByDomains: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].ID != empty.ID || rows[1].ID != home.ID {
		t.Errorf("got ids %d,%d want %d,%d", rows[0].ID, rows[1].ID, empty.ID, home.ID)
	}
}

func TestListLegacyTenantsByDomains(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	q := New(db)
	ctx := context.Background()

	createTenant(t, q, CreateTenantParams{
		Name: "Modern", Domain: "l.example.com",
		Slug: sql.NullString{String: "", Valid: true},
	})
	legacy := createTenant(t, q, CreateTenantParams{Name: "Legacy", Domain: "l.example.com"})

	rows, err := q.ListLegacyTenantsByDomains(ctx, []string{"l.example.com"})
	if err != nil {
		t.Fatalf("ListLegacyTenantsByDomains: %v", err)
	}
	if len(rows) != 1 || rows[0].ID != legacy.ID {
		t.Fatalf("got %v, want only tenant %d", rows, legacy.ID)
	}
}

func TestListTenantsByDomainsAndSlug(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	q := New(db)
	ctx := context.Background()

	plain := createTenant(t, q, CreateTenantParams{
		Name: "Plain", Domain: "s.example.com",
		Slug: sql.NullString{String: "denver", Valid: true},
	})
	primary := createTenant(t, q, CreateTenantParams{
		Name: "Primary", Domain: "s.example.com", IsPrimary: true,
		Slug: sql.NullString{String: "Denver", Valid: true},
	})
	createTenant(t, q, CreateTenantParams{
		Name: "Foreign domain", Domain: "elsewhere.example.com",
		Slug: sql.NullString{String: "denver", Valid: true},
	})

	rows, err := q.ListTenantsByDomainsAndSlug(ctx, []string{"s.example.com"}, "DENVER")
	if err != nil {
		t.Fatalf("ListTenantsByDomainsAndSlug: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	// Primary first, then lowest id
	if rows[0].ID != primary.ID || rows[1].ID != plain.ID {
		t.Errorf("got ids %d,%d want %d,%d", rows[0].ID, rows[1].ID, primary.ID, plain.ID)
	}
}

func TestTemplateRoundTrip(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	q := New(db)
	ctx := context.Background()

	err := q.UpsertTemplate(ctx, UpsertTemplateParams{
		Category: "generic",
		Page:     "home",
		Field:    "hero_title",
		Body:     "{{business_name}} in {{city}}",
	})
	if err != nil {
		t.Fatalf("UpsertTemplate: %v", err)
	}

	got, err := q.GetTemplate(ctx, GetTemplateParams{Category: "generic", Page: "home", Field: "hero_title"})
	if err != nil {
		t.Fatalf("GetTemplate: %v", err)
	}
	if got.Body != "{{business_name}} in {{city}}" {
		t.Errorf("Body = %q", got.Body)
	}

	// Upsert replaces
	err = q.UpsertTemplate(ctx, UpsertTemplateParams{
		Category: "generic",
		Page:     "home",
		Field:    "hero_title",
		Body:     "updated",
	})
	if err != nil {
		t.Fatalf("UpsertTemplate(update): %v", err)
	}
	got, err = q.GetTemplate(ctx, GetTemplateParams{Category: "generic", Page: "home", Field: "hero_title"})
	if err != nil {
		t.Fatalf("GetTemplate after update: %v", err)
	}
	if got.Body != "updated" {
		t.Errorf("Body after upsert = %q, want %q", got.Body, "updated")
	}

	list, err := q.ListTemplatesByCategory(ctx, "generic")
	if err != nil {
		t.Fatalf("ListTemplatesByCategory: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("got %d templates, want 1", len(list))
	}
}

func TestGetTemplateMissing(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	q := New(db)
	_, err := q.GetTemplate(context.Background(), GetTemplateParams{Category: "none", Page: "home", Field: "x"})
	if err != sql.ErrNoRows {
		t.Errorf("err = %v, want sql.ErrNoRows", err)
	}
}

func TestCreateEvent(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	q := New(db)
	ctx := context.Background()

	e, err := q.CreateEvent(ctx, CreateEventParams{
		Level:     "warning",
		Category:  "resolve",
		Message:   "something odd",
		Metadata:  "{}",
		CreatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	if e.ID == 0 {
		t.Error("event ID should not be 0")
	}

	events, err := q.ListRecentEvents(ctx, 10)
	if err != nil {
		t.Fatalf("ListRecentEvents: %v", err)
	}
	if len(events) != 1 || events[0].Message != "something odd" {
		t.Errorf("events = %v", events)
	}
}

func TestSeedIdempotent(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	if err := Seed(ctx, db); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	q := New(db)
	first, err := q.CountTenants(ctx)
	if err != nil {
		t.Fatalf("CountTenants: %v", err)
	}
	if first == 0 {
		t.Fatal("seed created no tenants")
	}

	if err := Seed(ctx, db); err != nil {
		t.Fatalf("second Seed: %v", err)
	}
	second, err := q.CountTenants(ctx)
	if err != nil {
		t.Fatalf("CountTenants: %v", err)
	}
	if second != first {
		t.Errorf("second seed changed tenant count: %d -> %d", first, second)
	}
}
