package service

import (
	"regexp"
	"strings"
)

var nonAlphanumRuns = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL-safe slug from a display name: lowercase, runs of
// non-alphanumeric characters collapsed to single hyphens, leading and
// trailing hyphens stripped. "Crested Butte!!" becomes "crested-butte".
func Slugify(name string) string {
	slug := nonAlphanumRuns.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}
