package turktext

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// fallbackByByte covers the bytes the charmap table leaves undefined plus the
// Turkish letters seen on federation pages, so diacritics survive even when
// native decoding yields replacement runes.
var fallbackByByte = map[byte]rune{
	0x80: '€',
	0x99: '™',
	0xC7: 'Ç',
	0xD0: 'Ğ',
	0xD6: 'Ö',
	0xDC: 'Ü',
	0xDD: 'İ',
	0xDE: 'Ş',
	0xE7: 'ç',
	0xF0: 'ğ',
	0xF6: 'ö',
	0xFC: 'ü',
	0xFD: 'ı',
	0xFE: 'ş',
}

// DecodeWindows1254 converts a legacy-encoded page body to UTF-8.
func DecodeWindows1254(raw []byte) string {
	decoded, err := charmap.Windows1254.NewDecoder().Bytes(raw)
	if err == nil && !strings.ContainsRune(string(decoded), utf8.RuneError) {
		return string(decoded)
	}

	var builder strings.Builder
	builder.Grow(len(raw))
	for _, b := range raw {
		if b < 0x80 {
			builder.WriteByte(b)
			continue
		}
		if r, ok := fallbackByByte[b]; ok {
			builder.WriteRune(r)
			continue
		}
		builder.WriteRune(rune(b))
	}

	return builder.String()
}

var (
	tagRegex        = regexp.MustCompile(`<[^>]*>`)
	whitespaceRegex = regexp.MustCompile(`\s+`)
)

var entityReplacer = strings.NewReplacer(
	"&nbsp;", " ",
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
)

// CleanHTML flattens a markup snippet to plain text.
func CleanHTML(value string) string {
	value = tagRegex.ReplaceAllString(value, " ")
	value = entityReplacer.Replace(value)
	value = whitespaceRegex.ReplaceAllString(value, " ")
	return strings.TrimSpace(value)
}

var (
	lowercaseVeRegex   = regexp.MustCompile(`\bVe\b`)
	clubAbbrTokenRegex = regexp.MustCompile(`\b(Fk|Sk|Asd|Avs)\b`)
)

// TitleCase re-cases a shouted Turkish club name for display. Plain
// strings.Title round-trips corrupt the dotted/dotless I pair, so casing goes
// through unicode.TurkishCase on both directions.
func TitleCase(value string) string {
	lowered := strings.ToLowerSpecial(unicode.TurkishCase, strings.TrimSpace(value))

	var builder strings.Builder
	builder.Grow(len(lowered))
	startOfWord := true
	for _, r := range lowered {
		switch r {
		case ' ', '.', '-', '/':
			builder.WriteRune(r)
			startOfWord = true
			continue
		}
		if startOfWord {
			builder.WriteRune(unicode.TurkishCase.ToUpper(r))
			startOfWord = false
			continue
		}
		builder.WriteRune(r)
	}

	out := lowercaseVeRegex.ReplaceAllString(builder.String(), "ve")
	out = clubAbbrTokenRegex.ReplaceAllStringFunc(out, strings.ToUpper)
	return out
}

var turkishASCIIReplacer = strings.NewReplacer(
	"İ", "I",
	"Ğ", "G",
	"Ü", "U",
	"Ş", "S",
	"Ö", "O",
	"Ç", "C",
)

var (
	gluedSporRegex      = regexp.MustCompile(`([A-Z0-9])SPOR\b`)
	belediyesiRegex     = regexp.MustCompile(`\bBELEDIYESI\b`)
	legalTokenRegex     = regexp.MustCompile(`\b(KULUBU|FK|GSK)\b`)
	nonAlnumSpaceRegex  = regexp.MustCompile(`[^A-Z0-9 ]+`)
	multipleSpacesRegex = regexp.MustCompile(` +`)
)

// NormalizeKey reduces a team name to the canonical matching key used by
// identity resolution: Turkish uppercase, ASCII fold, legal-entity tokens
// stripped, whitespace collapsed.
func NormalizeKey(value string) string {
	upper := strings.ToUpperSpecial(unicode.TurkishCase, strings.TrimSpace(value))
	upper = turkishASCIIReplacer.Replace(upper)

	upper = gluedSporRegex.ReplaceAllString(upper, "$1 SPOR")
	upper = belediyesiRegex.ReplaceAllString(upper, "BELEDIYE")
	upper = legalTokenRegex.ReplaceAllString(upper, " ")

	upper = nonAlnumSpaceRegex.ReplaceAllString(upper, " ")
	upper = multipleSpacesRegex.ReplaceAllString(upper, " ")
	return strings.TrimSpace(upper)
}

// Tokens splits a normalized key into its words.
func Tokens(normalized string) []string {
	return strings.Fields(normalized)
}
