// Package naming renders canonical release names from placeholder templates.
package naming

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Default naming templates.
const (
	DefaultMovieTemplate   = "{title}.{year}.{quality}.{source}.{codec}-{group}"
	DefaultEpisodeTemplate = "{title}.S{season:02}E{episode:02}.{episode_title}.{quality}.{source}.{codec}-{group}"
	DefaultSeasonTemplate  = "{title}.S{season:02}.{quality}.{source}.{codec}-{group}"
)

// Fields supplies the values a template may reference. String values should
// already be dot-separated (see Dotify); int values support zero-padding.
type Fields map[string]any

// paddedPattern matches {name:02} style placeholders; barePattern matches
// plain {name}. Padded placeholders are substituted first: the bare pattern
// is a substring of the padded one, and a single mixed pass would corrupt a
// template like "{season:02}-{season}".
var (
	paddedPattern = regexp.MustCompile(`\{(\w+):0?(\d+)\}`)
	barePattern   = regexp.MustCompile(`\{(\w+)\}`)
)

// Render substitutes fields into a template. Unknown placeholders are left
// verbatim; known fields with empty values render as empty strings, then
// separator debris (doubled dots, dangling dots before the group hyphen) is
// cleaned up so a partially filled template still yields a usable name.
func Render(template string, fields Fields) string {
	out := paddedPattern.ReplaceAllStringFunc(template, func(match string) string {
		parts := paddedPattern.FindStringSubmatch(match)
		val, ok := fields[parts[1]]
		if !ok {
			return match
		}
		width, err := strconv.Atoi(parts[2])
		if err != nil {
			return match
		}
		switch v := val.(type) {
		case int:
			return fmt.Sprintf("%0*d", width, v)
		case int64:
			return fmt.Sprintf("%0*d", width, v)
		default:
			return fmt.Sprintf("%v", v)
		}
	})

	out = barePattern.ReplaceAllStringFunc(out, func(match string) string {
		parts := barePattern.FindStringSubmatch(match)
		val, ok := fields[parts[1]]
		if !ok {
			return match
		}
		return fmt.Sprintf("%v", val)
	})

	return cleanName(out)
}

// multiDot matches runs of two or more dots left behind by empty fields.
var multiDot = regexp.MustCompile(`\.{2,}`)

func cleanName(s string) string {
	s = multiDot.ReplaceAllString(s, ".")
	s = strings.ReplaceAll(s, ".-", "-")
	s = strings.Trim(s, ".")
	s = strings.TrimSuffix(s, "-")
	return s
}

// Dotify converts a display string into its scene-name form: spaces become
// dots after filesystem-hostile characters are stripped.
func Dotify(s string) string {
	return strings.ReplaceAll(SanitizeFilename(s), " ", ".")
}
