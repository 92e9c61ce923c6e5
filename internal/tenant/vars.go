// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package tenant

import "tenantpress/internal/model"

// Bind produces the canonical variable map consumed by the template
// renderer. Every tenant field defaults to the empty string when absent;
// page-specific extras (a service title, an area name) are merged in and
// win on key collision. Pure function, no I/O.
func Bind(t model.Tenant, extras map[string]string) map[string]string {
	phone := t.DisplayPhone
	if phone == "" {
		phone = t.Phone
	}

	vars := map[string]string{
		"business_name": t.Name,
		"city":          t.City,
		"state":         t.State,
		"phone":         phone,
		"address":       t.Address,
		"zip":           t.Zip,
		"email":         t.Email,
	}

	for k, v := range extras {
		vars[k] = v
	}

	return vars
}
