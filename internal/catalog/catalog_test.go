// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package catalog

import (
	"context"
	"errors"
	"strings"
	"testing"

	"tenantpress/internal/model"
	"tenantpress/internal/store"
	"tenantpress/internal/testutil"
)

func TestTemplateStoreOverrideWins(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	ctx := context.Background()

	err := store.New(db).UpsertTemplate(ctx, store.UpsertTemplateParams{
		Category: model.CategoryContractor,
		Page:     "home",
		Field:    "hero_title",
		Body:     "custom override",
	})
	if err != nil {
		t.Fatalf("UpsertTemplate: %v", err)
	}

	c := NewStoreCatalog(db)
	got, err := c.Template(ctx, model.CategoryContractor, "home", "hero_title")
	if err != nil {
		t.Fatalf("Template: %v", err)
	}
	if got != "custom override" {
		t.Errorf("got %q, want the stored override", got)
	}
}

func TestTemplateBuiltinFallback(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	c := NewStoreCatalog(db)
	got, err := c.Template(context.Background(), model.CategoryContractor, "home", "hero_title")
	if err != nil {
		t.Fatalf("Template: %v", err)
	}
	if !strings.Contains(got, "{{business_name}}") {
		t.Errorf("built-in default looks wrong: %q", got)
	}
}

func TestTemplateGenericFallback(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	ctx := context.Background()

	c := NewStoreCatalog(db)

	// The contractor set has no "service" page; the generic one does
	got, err := c.Template(ctx, model.CategoryContractor, "service", "hero_title")
	if err != nil {
		t.Fatalf("Template: %v", err)
	}
	if !strings.Contains(got, "{{service_name}}") {
		t.Errorf("expected the generic service template, got %q", got)
	}

	// Unknown categories fall straight through to generic
	got, err = c.Template(ctx, "made-up-category", "home", "hero_title")
	if err != nil {
		t.Fatalf("Template: %v", err)
	}
	if got == "" {
		t.Error("unknown category should still yield the generic template")
	}

	// Empty category means generic
	got, err = c.Template(ctx, "", "home", "hero_title")
	if err != nil {
		t.Fatalf("Template: %v", err)
	}
	if !strings.Contains(got, "{{business_name}}") {
		t.Errorf("empty category should yield generic, got %q", got)
	}
}

func TestTemplateNotFound(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	c := NewStoreCatalog(db)
	_, err := c.Template(context.Background(), model.CategoryGeneric, "home", "no_such_field")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
