// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "testing"

func TestEffectiveCategory(t *testing.T) {
	tenant := &Tenant{Category: CategoryContractor}
	if got := tenant.EffectiveCategory(); got != CategoryContractor {
		t.Errorf("EffectiveCategory() = %q, want %q", got, CategoryContractor)
	}

	tenant.Category = ""
	if got := tenant.EffectiveCategory(); got != CategoryGeneric {
		t.Errorf("EffectiveCategory() with empty category = %q, want %q", got, CategoryGeneric)
	}
}

func TestIsHome(t *testing.T) {
	tests := []struct {
		slug string
		want bool
	}{
		{"", true},
		{"home", true},
		{"locations-denver", false},
	}

	for _, tt := range tests {
		tenant := &Tenant{Slug: tt.slug}
		if got := tenant.IsHome(); got != tt.want {
			t.Errorf("IsHome() with slug %q = %v, want %v", tt.slug, got, tt.want)
		}
	}
}
