package header_mapping_service

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	parenGroup   = regexp.MustCompile(`\([^)]*\)`)
	outsideAlpha = regexp.MustCompile(`[^A-Z0-9 /]+`)
	spaceRun     = regexp.MustCompile(` {2,}`)
)

var spaceReplacer = strings.NewReplacer(
	"\u00a0", " ",
	"\u202f", " ",
	"\u2007", " ",
	"\r\n", " ",
	"\n", " ",
	"\r", " ",
	"\t", " ",
)

// Normalize canonicalizes a raw header for comparison. Two headers that
// normalize to the same string are the same column.
func Normalize(raw string) string {
	s := spaceReplacer.Replace(raw)
	s = parenGroup.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "*", "")
	s = stripAccents(s)
	s = strings.ToUpper(s)
	s = outsideAlpha.ReplaceAllString(s, " ")
	s = spaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

func stripAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
