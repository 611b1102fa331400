package veo3

import (
	"regexp"
	"strings"
	"unicode"

	"academy/internal/domain/validation"
)

// lineChar matches any character except a line terminator.
const lineChar = `[^\n\r\x{2028}\x{2029}]`

var (
	pacingKeywords = []string{"ritmo", "edição", "cuts", "pace", "velocidade de corte", "estilo de edição"}
	musicKeywords  = []string{"música", "trilha sonora", "soundtrack", "tema musical"}

	pacingExtractor = newKeywordExtractor(pacingKeywords...)
	musicExtractor  = newKeywordExtractor(musicKeywords...)
)

// keywordExtractor pulls the line fragment around a cue word out of free text.
//
// For every keyword the pattern is "any run of line characters, the keyword,
// everything up to the next period (newlines included), one more line
// character, then the rest of that line". Matching is leftmost-first and
// greedy, so on a line with several mentions the last one anchors the capture
// while the whole line is returned. Keywords are tried in list order and the
// first keyword with any match wins, regardless of where it sits in the text.
type keywordExtractor struct {
	keywords []string
	patterns []*regexp.Regexp
}

func newKeywordExtractor(keywords ...string) *keywordExtractor {
	e := &keywordExtractor{keywords: keywords}
	for _, kw := range keywords {
		expr := lineChar + `*(` + foldKeyword(kw) + `[^.]*` + lineChar + `)` + lineChar + `*`
		e.patterns = append(e.patterns, regexp.MustCompile(expr))
	}
	return e
}

// Extract returns the full match for the first keyword (in list order) found
// in text.
func (e *keywordExtractor) Extract(text string) (string, bool) {
	if text == "" {
		return "", false
	}
	for _, re := range e.patterns {
		if m := re.FindString(text); m != "" {
			return m, true
		}
	}
	return "", false
}

// Strip removes the first match of every keyword from text, trimming the
// result after each removal.
func (e *keywordExtractor) Strip(text string) string {
	for _, re := range e.patterns {
		if loc := re.FindStringIndex(text); loc != nil {
			text = text[:loc[0]] + text[loc[1]:]
		}
		text = validation.TrimForm(text)
	}
	return text
}

// foldKeyword renders kw case-insensitively by pairing each letter with its
// simple upper and lower forms only. The (?i) flag would also fold letters
// such as the Kelvin sign onto "k", which the form never treated as equal.
func foldKeyword(kw string) string {
	var b strings.Builder
	for _, r := range kw {
		lower, upper := unicode.ToLower(r), unicode.ToUpper(r)
		if lower == upper {
			b.WriteString(regexp.QuoteMeta(string(r)))
			continue
		}
		b.WriteByte('[')
		b.WriteRune(lower)
		b.WriteRune(upper)
		b.WriteByte(']')
	}
	return b.String()
}

// residualDetails is what remains of additionalDetails once the consumed
// pacing and music fragments are removed. Without any extraction the text is
// returned untouched.
func residualDetails(details string, pacing, music bool) string {
	if pacing {
		details = pacingExtractor.Strip(details)
	}
	if music {
		details = musicExtractor.Strip(details)
	}
	return details
}
