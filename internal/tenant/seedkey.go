// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package tenant

import "tenantpress/internal/model"

// SeedKey derives the deterministic render seed for a (tenant, page,
// field) triple. The tenant part is the slug when present and the UUID
// otherwise, so two empty-slug tenants on different domains never share
// a seed. Computed fresh on every render, never persisted.
func SeedKey(t model.Tenant, page, field string) string {
	who := t.Slug
	if who == "" {
		who = t.UUID
	}
	return who + ":" + page + ":" + field
}
