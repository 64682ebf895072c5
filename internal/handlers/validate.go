// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Validation limits for user-supplied fields.
const (
	maxTitleLen       = 200
	maxTaglineLen     = 300
	maxDescriptionLen = 20_000
	maxBodyLen        = 100_000
	maxCommentLen     = 5_000
	maxGuestNameLen   = 80
	maxURLLen         = 2_000
	maxTagCount       = 10
	maxTagLen         = 40
)

// validateProject checks project form inputs and returns the first error found.
func validateProject(title, tagline, description string, tags []string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return "Title is required."
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "Title is too long (max 200 characters)."
	}
	if utf8.RuneCountInString(tagline) > maxTaglineLen {
		return "Tagline is too long (max 300 characters)."
	}
	if utf8.RuneCountInString(description) > maxDescriptionLen {
		return "Description is too long (max 20,000 characters)."
	}
	if len(tags) > maxTagCount {
		return "Too many tags (max 10)."
	}
	for _, tag := range tags {
		if utf8.RuneCountInString(tag) > maxTagLen {
			return "Tag is too long (max 40 characters)."
		}
	}
	return ""
}

// validatePost checks blog post inputs and returns the first error found.
func validatePost(title, body string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return "Title is required."
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "Title is too long (max 200 characters)."
	}
	if utf8.RuneCountInString(body) > maxBodyLen {
		return "Body is too long (max 100,000 characters)."
	}
	return ""
}

// validateComment checks comment inputs and returns the first error found.
func validateComment(content, guestName string, authenticated bool) string {
	content = strings.TrimSpace(content)
	if content == "" {
		return "Comment text is required."
	}
	if utf8.RuneCountInString(content) > maxCommentLen {
		return "Comment is too long (max 5,000 characters)."
	}
	if !authenticated {
		guestName = strings.TrimSpace(guestName)
		if guestName == "" {
			return "Name is required for guest comments."
		}
		if utf8.RuneCountInString(guestName) > maxGuestNameLen {
			return "Name is too long (max 80 characters)."
		}
	}
	return ""
}

// validateEvent checks calendar event inputs and returns the first error found.
func validateEvent(title, url string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return "Title is required."
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "Title is too long (max 200 characters)."
	}
	if utf8.RuneCountInString(url) > maxURLLen {
		return "URL is too long."
	}
	return ""
}

// pageParam reads the 1-based page query parameter, defaulting to 1.
func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
