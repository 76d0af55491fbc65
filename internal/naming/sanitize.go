package naming

import (
	"regexp"
	"strings"
)

// illegalChars are characters not allowed in filenames on common filesystems.
var illegalChars = regexp.MustCompile(`[<>:"/\\|?*\x00]`)

// multiSpace matches runs of whitespace.
var multiSpace = regexp.MustCompile(`\s+`)

// SanitizeFilename removes or replaces characters that are unsafe for
// filenames. Release names flow into folder and file renames, so this also
// guards against path separators smuggled in through user-edited fields.
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\x00", "")
	name = strings.ReplaceAll(name, "/", " ")
	name = strings.ReplaceAll(name, "\\", " ")
	name = illegalChars.ReplaceAllString(name, " ")
	name = multiSpace.ReplaceAllString(name, " ")
	return strings.Trim(name, " .")
}
