// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package domain canonicalizes host strings into comparable domain keys
// and expands a key into the textual variants the stored data might use.
// All functions are pure and side-effect free.
package domain

import "strings"

// Normalize canonicalizes a raw host or URL string into a comparable
// domain key: lowercased, scheme and leading "www." removed, port and
// path stripped. Empty input yields an empty key, never an error.
func Normalize(raw string) string {
	key := strings.ToLower(strings.TrimSpace(raw))

	key = strings.TrimPrefix(key, "https://")
	key = strings.TrimPrefix(key, "http://")
	key = strings.TrimPrefix(key, "www.")

	// Drop any path component
	if idx := strings.IndexByte(key, '/'); idx != -1 {
		key = key[:idx]
	}

	// Drop a port suffix
	if idx := strings.IndexByte(key, ':'); idx != -1 {
		key = key[:idx]
	}

	return strings.TrimSpace(key)
}

// Candidates expands a normalized domain key into every textual variant
// the tenant store might hold: with and without "www.", with and without
// an explicit scheme, and each of those with a single trailing slash.
// Stored rows are inconsistently formatted, so lookups must tolerate all
// of these without a data migration. The result is deduplicated and its
// order is deterministic.
func Candidates(key string) []string {
	key = Normalize(key)
	if key == "" {
		return nil
	}

	bases := []string{
		key,
		"www." + key,
		"https://" + key,
		"https://www." + key,
		"http://" + key,
		"http://www." + key,
	}

	seen := make(map[string]struct{}, len(bases)*2)
	out := make([]string, 0, len(bases)*2)
	add := func(v string) {
		if _, ok := seen[v]; ok {
			return
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}

	for _, b := range bases {
		add(b)
	}
	for _, b := range bases {
		add(b + "/")
	}

	return out
}
