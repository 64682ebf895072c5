// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation from arbitrary strings.
package slug

import (
	"regexp"
	"strconv"
	"strings"
)

// MaxLength caps generated slugs. Longer slugs are truncated at a dash
// boundary so a slug never ends mid-word.
const MaxLength = 80

var (
	// nonAlphanumeric matches anything that isn't a letter, digit, or space.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9\s-]`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
	// trailingSuffix matches a trailing "-<number>" used for collision suffixes.
	trailingSuffix = regexp.MustCompile(`-(\d+)$`)
)

// Generate creates a URL-friendly slug from the given string.
// Example: "Hello, World!! 2026" → "hello-world-2026"
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = nonAlphanumeric.ReplaceAllString(result, "")
	result = strings.ReplaceAll(result, " ", "-")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")

	if len(result) > MaxLength {
		result = result[:MaxLength]
		if idx := strings.LastIndexByte(result, '-'); idx > 0 {
			result = result[:idx]
		}
		result = strings.Trim(result, "-")
	}
	return result
}

// EnsureUnique returns base unchanged if it is not taken, otherwise the
// first "base-N" (N starting at 2) not present in taken. Given
// {"foo", "foo-2"} and base "foo" it returns "foo-3".
func EnsureUnique(base string, taken map[string]bool) string {
	if !taken[base] {
		return base
	}
	for n := 2; ; n++ {
		candidate := base + "-" + strconv.Itoa(n)
		if !taken[candidate] {
			return candidate
		}
	}
}

// NextSuffix increments the numeric collision suffix of a slug: "foo"
// becomes "foo-2", "foo-2" becomes "foo-3". Used by the single-retry
// path when an insert hits the slug uniqueness constraint.
func NextSuffix(s string) string {
	if m := trailingSuffix.FindStringSubmatch(s); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			return trailingSuffix.ReplaceAllString(s, "") + "-" + strconv.Itoa(n+1)
		}
	}
	return s + "-2"
}
