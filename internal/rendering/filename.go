package rendering

import (
	"strings"
	"time"
)

// FilePrefix starts every exported file name.
const FilePrefix = "WBL-Program-Summary"

// Filename builds the export file name: the prefix, the organization name with
// whitespace runs collapsed to "-", and the date. ext is given without a dot.
func Filename(orgName string, date time.Time, ext string) string {
	parts := []string{FilePrefix}
	if name := strings.Join(strings.Fields(orgName), "-"); name != "" {
		parts = append(parts, strings.Map(safeRune, name))
	}
	parts = append(parts, date.Format(time.DateOnly))
	name := strings.Join(parts, "-")
	if ext != "" {
		name += "." + strings.TrimPrefix(ext, ".")
	}
	return name
}

// safeRune keeps path separators and quotes out of file names.
func safeRune(r rune) rune {
	switch r {
	case '/', '\\', '"', ':', '*', '?', '<', '>', '|':
		return '_'
	}
	return r
}
