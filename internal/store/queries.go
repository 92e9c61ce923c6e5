// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// DBTX is the subset of *sql.DB and *sql.Tx the queries need.
type DBTX interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

// Queries holds the prepared access layer over the tenant store.
type Queries struct {
	db DBTX
}

// New creates a Queries instance bound to the given database or transaction.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// TenantRow is a raw tenant record as stored. The free-text columns
// (service_areas, links, social_links) are parsed downstream by the
// entity assembler; the store hands them through untouched.
type TenantRow struct {
	ID                int64
	UUID              string
	Slug              sql.NullString
	Name              string
	Domain            string
	IsPrimary         bool
	Phone             string
	Email             string
	Address           string
	City              string
	State             string
	Zip               string
	Category          string
	ServiceAreas      string
	Links             string
	SocialLinks       string
	GoogleBusinessURL string
	YouTubeURL        string
	SEOTitle          string
	SEODescription    string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

const tenantColumns = `id, uuid, slug, name, domain, is_primary,
	phone, email, address, city, state, zip, category,
	service_areas, links, social_links, google_business_url, youtube_url,
	seo_title, seo_description, created_at, updated_at`

func scanTenantRow(s interface{ Scan(...any) error }) (TenantRow, error) {
	var r TenantRow
	err := s.Scan(
		&r.ID, &r.UUID, &r.Slug, &r.Name, &r.Domain, &r.IsPrimary,
		&r.Phone, &r.Email, &r.Address, &r.City, &r.State, &r.Zip, &r.Category,
		&r.ServiceAreas, &r.Links, &r.SocialLinks, &r.GoogleBusinessURL, &r.YouTubeURL,
		&r.SEOTitle, &r.SEODescription, &r.CreatedAt, &r.UpdatedAt,
	)
	return r, err
}

// inPlaceholders returns "?, ?, ?" for n values.
func inPlaceholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func toAnySlice(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

func (q *Queries) listTenants(ctx context.Context, query string, args []any) ([]TenantRow, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []TenantRow
	for rows.Next() {
		r, err := scanTenantRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ListTenantsByDomains returns every tenant whose stored domain matches one
// of the candidate strings, ordered by identifier.
func (q *Queries) ListTenantsByDomains(ctx context.Context, domains []string) ([]TenantRow, error) {
	if len(domains) == 0 {
		return nil, nil
	}
	query := fmt.Sprintf(`SELECT %s FROM tenants WHERE domain IN (%s) ORDER BY id`,
		tenantColumns, inPlaceholders(len(domains)))
	return q.listTenants(ctx, query, toAnySlice(domains))
}

// ListPrimaryTenantsByDomains returns tenants flagged is_primary within the
// candidate domain set, lowest identifier first.
func (q *Queries) ListPrimaryTenantsByDomains(ctx context.Context, domains []string) ([]TenantRow, error) {
	if len(domains) == 0 {
		return nil, nil
	}
	query := fmt.Sprintf(`SELECT %s FROM tenants
		WHERE domain IN (%s) AND is_primary = 1 ORDER BY id`,
		tenantColumns, inPlaceholders(len(domains)))
	return q.listTenants(ctx, query, toAnySlice(domains))
}

// ListHomeTenantsByDomains returns tenants whose slug is the empty string or
// the literal "home" within the candidate domain set, lowest identifier first.
func (q *Queries) ListHomeTenantsByDomains(ctx context.Context, domains []string) ([]TenantRow, error) {
	if len(domains) == 0 {
		return nil, nil
	}
	query := fmt.Sprintf(`SELECT %s FROM tenants
		WHERE domain IN (%s) AND slug IN ('', 'home') ORDER BY id`,
		tenantColumns, inPlaceholders(len(domains)))
	return q.listTenants(ctx, query, toAnySlice(domains))
}

// ListLegacyTenantsByDomains returns tenants whose slug column is NULL
// (rows predating the slug column) within the candidate domain set.
func (q *Queries) ListLegacyTenantsByDomains(ctx context.Context, domains []string) ([]TenantRow, error) {
	if len(domains) == 0 {
		return nil, nil
	}
	query := fmt.Sprintf(`SELECT %s FROM tenants
		WHERE domain IN (%s) AND slug IS NULL ORDER BY id`,
		tenantColumns, inPlaceholders(len(domains)))
	return q.listTenants(ctx, query, toAnySlice(domains))
}

// ListTenantsByDomainsAndSlug returns tenants matching the slug
// case-insensitively within the candidate domain set, primary rows first,
// then lowest identifier.
func (q *Queries) ListTenantsByDomainsAndSlug(ctx context.Context, domains []string, slug string) ([]TenantRow, error) {
	if len(domains) == 0 {
		return nil, nil
	}
	query := fmt.Sprintf(`SELECT %s FROM tenants
		WHERE domain IN (%s) AND slug IS NOT NULL AND LOWER(slug) = LOWER(?)
		ORDER BY is_primary DESC, id`,
		tenantColumns, inPlaceholders(len(domains)))
	args := append(toAnySlice(domains), slug)
	return q.listTenants(ctx, query, args)
}

// GetTenantByID returns a single tenant row.
func (q *Queries) GetTenantByID(ctx context.Context, id int64) (TenantRow, error) {
	query := fmt.Sprintf(`SELECT %s FROM tenants WHERE id = ?`, tenantColumns)
	return scanTenantRow(q.db.QueryRowContext(ctx, query, id))
}

// CountTenants returns the number of tenant rows.
func (q *Queries) CountTenants(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tenants`).Scan(&n)
	return n, err
}

// CreateTenantParams holds the insertable tenant columns.
type CreateTenantParams struct {
	UUID              string
	Slug              sql.NullString
	Name              string
	Domain            string
	IsPrimary         bool
	Phone             string
	Email             string
	Address           string
	City              string
	State             string
	Zip               string
	Category          string
	ServiceAreas      string
	Links             string
	SocialLinks       string
	GoogleBusinessURL string
	YouTubeURL        string
	SEOTitle          string
	SEODescription    string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// CreateTenant inserts a tenant row and returns it with its identifier.
func (q *Queries) CreateTenant(ctx context.Context, p CreateTenantParams) (TenantRow, error) {
	query := fmt.Sprintf(`INSERT INTO tenants (
		uuid, slug, name, domain, is_primary,
		phone, email, address, city, state, zip, category,
		service_areas, links, social_links, google_business_url, youtube_url,
		seo_title, seo_description, created_at, updated_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	RETURNING %s`, tenantColumns)

	return scanTenantRow(q.db.QueryRowContext(ctx, query,
		p.UUID, p.Slug, p.Name, p.Domain, p.IsPrimary,
		p.Phone, p.Email, p.Address, p.City, p.State, p.Zip, p.Category,
		p.ServiceAreas, p.Links, p.SocialLinks, p.GoogleBusinessURL, p.YouTubeURL,
		p.SEOTitle, p.SEODescription, p.CreatedAt, p.UpdatedAt,
	))
}

// Template is one catalog entry: the spintax body for a (category, page, field).
type Template struct {
	ID        int64
	Category  string
	Page      string
	Field     string
	Body      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GetTemplateParams identifies one catalog entry.
type GetTemplateParams struct {
	Category string
	Page     string
	Field    string
}

// GetTemplate returns the template body for a (category, page, field).
func (q *Queries) GetTemplate(ctx context.Context, p GetTemplateParams) (Template, error) {
	var t Template
	err := q.db.QueryRowContext(ctx, `SELECT id, category, page, field, body, created_at, updated_at
		FROM templates WHERE category = ? AND page = ? AND field = ?`,
		p.Category, p.Page, p.Field,
	).Scan(&t.ID, &t.Category, &t.Page, &t.Field, &t.Body, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

// UpsertTemplateParams holds an insert-or-update for one catalog entry.
type UpsertTemplateParams struct {
	Category string
	Page     string
	Field    string
	Body     string
}

// UpsertTemplate inserts or replaces the body of a catalog entry.
func (q *Queries) UpsertTemplate(ctx context.Context, p UpsertTemplateParams) error {
	now := time.Now()
	_, err := q.db.ExecContext(ctx, `INSERT INTO templates (category, page, field, body, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(category, page, field) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
		p.Category, p.Page, p.Field, p.Body, now, now)
	return err
}

// ListTemplatesByCategory returns all catalog entries for a category.
func (q *Queries) ListTemplatesByCategory(ctx context.Context, category string) ([]Template, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT id, category, page, field, body, created_at, updated_at
		FROM templates WHERE category = ? ORDER BY page, field`, category)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []Template
	for rows.Next() {
		var t Template
		if err := rows.Scan(&t.ID, &t.Category, &t.Page, &t.Field, &t.Body, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Event is one event log row.
type Event struct {
	ID        int64
	Level     string
	Category  string
	Message   string
	Metadata  string
	CreatedAt time.Time
}

// CreateEventParams holds an insertable event log entry.
type CreateEventParams struct {
	Level     string
	Category  string
	Message   string
	Metadata  string
	CreatedAt time.Time
}

// CreateEvent appends an entry to the event log.
func (q *Queries) CreateEvent(ctx context.Context, p CreateEventParams) (Event, error) {
	var e Event
	err := q.db.QueryRowContext(ctx, `INSERT INTO events (level, category, message, metadata, created_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id, level, category, message, metadata, created_at`,
		p.Level, p.Category, p.Message, p.Metadata, p.CreatedAt,
	).Scan(&e.ID, &e.Level, &e.Category, &e.Message, &e.Metadata, &e.CreatedAt)
	return e, err
}

// ListRecentEvents returns the newest event log entries, newest first.
func (q *Queries) ListRecentEvents(ctx context.Context, limit int64) ([]Event, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT id, level, category, message, metadata, created_at
		FROM events ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.Level, &e.Category, &e.Message, &e.Metadata, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
