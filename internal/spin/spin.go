// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package spin renders spintax template strings: {{name}} placeholders
// are substituted from a variable map and {a|b|c} choice groups are
// resolved by a pseudo-random source. With a seeded source the output is
// byte-identical for the same (template, vars, seed key) on every call,
// which is the contract the rest of the system depends on for stable,
// cacheable page text.
package spin

import (
	"regexp"
	"strings"
)

// MissingVarPolicy controls what happens to a {{name}} placeholder whose
// name is absent from the variable map.
type MissingVarPolicy int

const (
	// MissingDefault keeps the literal placeholder when rendering without
	// a seed and substitutes the empty string when a seed is present.
	MissingDefault MissingVarPolicy = iota
	// MissingKeep leaves the literal {{name}} in the output.
	MissingKeep
	// MissingEmpty substitutes the empty string.
	MissingEmpty
)

// DefaultMaxPasses bounds the choice-resolution loop. Substituted
// variable values can reveal further choice groups, so the renderer
// sweeps the string repeatedly until a pass makes no replacement.
const DefaultMaxPasses = 10

// Options adjusts rendering behavior. The zero value is correct for
// most callers.
type Options struct {
	MissingVars MissingVarPolicy
	MaxPasses   int // 0 means DefaultMaxPasses
}

var (
	// varPattern matches a {{identifier}} placeholder.
	varPattern = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_]*)\s*\}\}`)
	// choicePattern matches a non-nested {a|b|c} choice group.
	choicePattern = regexp.MustCompile(`\{[^{}]*\|[^{}]*\}`)
)

// Render substitutes variables and resolves choice groups in template.
// A non-empty seedKey selects the deterministic seeded source; an empty
// seedKey falls back to true randomness, which is acceptable only for
// preview output.
func Render(template string, vars map[string]string, seedKey string, opts Options) string {
	var src Source
	if seedKey != "" {
		src = NewSeeded(seedKey)
	} else {
		src = NewRandom()
	}

	policy := opts.MissingVars
	if policy == MissingDefault {
		if seedKey != "" {
			policy = MissingEmpty
		} else {
			policy = MissingKeep
		}
	}

	return RenderWith(template, vars, src, Options{MissingVars: policy, MaxPasses: opts.MaxPasses})
}

// RenderStable is the entry point for tenant-facing output: it requires
// a seed key and never leaves an unresolved placeholder in the result.
func RenderStable(template string, vars map[string]string, seedKey string) string {
	return Render(template, vars, seedKey, Options{MissingVars: MissingEmpty})
}

// RenderWith renders using an explicitly supplied random source.
func RenderWith(template string, vars map[string]string, src Source, opts Options) string {
	out := substituteVars(template, vars, opts.MissingVars)

	maxPasses := opts.MaxPasses
	if maxPasses <= 0 {
		maxPasses = DefaultMaxPasses
	}

	for pass := 0; pass < maxPasses; pass++ {
		replaced := false
		out = choicePattern.ReplaceAllStringFunc(out, func(group string) string {
			replaced = true
			return pickOption(group, src)
		})
		if !replaced {
			break
		}
	}

	return out
}

// substituteVars performs the variable pass.
func substituteVars(template string, vars map[string]string, policy MissingVarPolicy) string {
	return varPattern.ReplaceAllStringFunc(template, func(match string) string {
		name := varPattern.FindStringSubmatch(match)[1]
		if val, ok := vars[name]; ok {
			return val
		}
		if policy == MissingEmpty {
			return ""
		}
		return match
	})
}

// pickOption resolves one {a|b|c} group. Options are trimmed and empty
// ones dropped; a group with nothing left resolves to the empty string.
func pickOption(group string, src Source) string {
	inner := group[1 : len(group)-1]

	parts := strings.Split(inner, "|")
	options := parts[:0]
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			options = append(options, trimmed)
		}
	}

	if len(options) == 0 {
		return ""
	}

	idx := int(src.Float64() * float64(len(options)))
	if idx >= len(options) {
		idx = len(options) - 1
	}
	return options[idx]
}
