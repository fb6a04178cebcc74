package validation

import (
	"fmt"
	"regexp"
)

// Supported display locales for bilingual content.
var supportedLocales = map[string]bool{
	"en": true,
	"fr": true,
}

var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

var difficultyLevels = map[string]bool{
	"beginner":     true,
	"intermediate": true,
	"advanced":     true,
}

const (
	maxNameLength  = 100
	maxTitleLength = 200
)

// Locale reports whether the locale code is supported.
func Locale(locale string) bool {
	return supportedLocales[locale]
}

// CategoryCreate validates a sanitized category creation payload, returning
// one message per violated rule. An empty slice means the payload is valid.
func CategoryCreate(name, nameFr, color string, sortOrder int) []string {
	var details []string

	if name == "" {
		details = append(details, "name is required")
	} else if len(name) > maxNameLength {
		details = append(details, fmt.Sprintf("name must not exceed %d characters", maxNameLength))
	}

	if nameFr == "" {
		details = append(details, "name_fr is required")
	} else if len(nameFr) > maxNameLength {
		details = append(details, fmt.Sprintf("name_fr must not exceed %d characters", maxNameLength))
	}

	if sortOrder < 1 {
		details = append(details, "sort_order must be a positive integer")
	}

	if color != "" && !colorPattern.MatchString(color) {
		details = append(details, "color must be a hex value like #AA0000")
	}

	return details
}

// DocumentCreate validates a sanitized document creation payload.
func DocumentCreate(categoryID uint, title, titleFr, content, contentFr, difficulty string, estimatedReadTime int) []string {
	var details []string

	if categoryID == 0 {
		details = append(details, "category_id is required")
	}

	if title == "" {
		details = append(details, "title is required")
	} else if len(title) > maxTitleLength {
		details = append(details, fmt.Sprintf("title must not exceed %d characters", maxTitleLength))
	}

	if titleFr == "" {
		details = append(details, "title_fr is required")
	} else if len(titleFr) > maxTitleLength {
		details = append(details, fmt.Sprintf("title_fr must not exceed %d characters", maxTitleLength))
	}

	if content == "" {
		details = append(details, "content is required")
	}
	if contentFr == "" {
		details = append(details, "content_fr is required")
	}

	if difficulty != "" && !difficultyLevels[difficulty] {
		details = append(details, "difficulty_level must be one of beginner, intermediate, advanced")
	}

	if estimatedReadTime < 0 {
		details = append(details, "estimated_read_time must not be negative")
	}

	return details
}

// UsageTrack validates a translation usage-tracking payload.
func UsageTrack(keys []string, locale, sessionID string) []string {
	var details []string

	if len(keys) == 0 {
		details = append(details, "keys must not be empty")
	}
	if !Locale(locale) {
		details = append(details, "locale must be one of en, fr")
	}
	if sessionID == "" {
		details = append(details, "sessionId is required")
	}

	return details
}

// ProgressRecord validates a training-progress payload.
func ProgressRecord(documentID uint, status string, percent int) []string {
	var details []string

	if documentID == 0 {
		details = append(details, "document_id is required")
	}
	switch status {
	case "in_progress", "completed", "pending_review":
	default:
		details = append(details, "status must be one of in_progress, completed, pending_review")
	}
	if percent < 0 || percent > 100 {
		details = append(details, "progress_percent must be between 0 and 100")
	}

	return details
}
