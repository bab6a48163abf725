// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation from arbitrary strings,
// including collision-free unique slug assignment for permalinks.
package slug

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	// nonAlphanumeric matches anything that isn't a letter, digit, or space.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9\s-]`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// fallbackBase is used when a title reduces to an empty slug (e.g. a title
// made entirely of punctuation or non-latin characters).
const fallbackBase = "post"

// Generate creates a URL-friendly slug from the given string.
// Example: "Hello, World! 2026" → "hello-world-2026"
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = nonAlphanumeric.ReplaceAllString(result, "")
	result = strings.ReplaceAll(result, " ", "-")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	return result
}

// Unique derives a slug from title and probes exists until it finds a free
// candidate: base, base-1, base-2, and so on. The exists callback must
// answer for all records OTHER than the one being saved, so that a record
// keeping its own slug is not treated as a collision.
//
// Slugs are permalinks: callers assign one on first save and never call
// Unique again for that record, even if the title changes.
func Unique(title string, exists func(candidate string) (bool, error)) (string, error) {
	base := Generate(title)
	if base == "" {
		base = fallbackBase
	}

	candidate := base
	for n := 1; ; n++ {
		taken, err := exists(candidate)
		if err != nil {
			return "", fmt.Errorf("slug exists check: %w", err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, n)
	}
}
