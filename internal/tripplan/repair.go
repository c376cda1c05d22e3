package tripplan

import (
	"regexp"
	"strings"
)

// RepairRule is one rewrite step applied to text that failed to parse.
type RepairRule struct {
	Name  string
	Apply func(string) string
}

var (
	trailingCommaRe   = regexp.MustCompile(`,\s*([\]}])`)
	bareKeyRe         = regexp.MustCompile(`([{,]\s*)(\w+)(\s*:)`)
	singleQuotedValRe = regexp.MustCompile(`(:\s*)'([^']*)'`)
)

// RepairRules run in order. Keys are quoted before values and backslashes are
// escaped only after every quote rewrite.
var RepairRules = []RepairRule{
	{Name: "single-quote-strings", Apply: convertSingleQuotes},
	{Name: "strip-line-breaks", Apply: stripLineBreaks},
	{Name: "trailing-commas", Apply: outsideStrings(func(s string) string {
		return trailingCommaRe.ReplaceAllString(s, "$1")
	})},
	{Name: "quote-bare-keys", Apply: outsideStrings(func(s string) string {
		return bareKeyRe.ReplaceAllString(s, `${1}"${2}"${3}`)
	})},
	// Safety net: single-quote-strings already rewrites every quote outside a
	// double-quoted string, so in the full chain this rule finds nothing. It
	// still applies when run on its own.
	{Name: "single-quoted-values", Apply: outsideStrings(func(s string) string {
		return singleQuotedValRe.ReplaceAllString(s, `${1}"${2}"`)
	})},
	{Name: "escape-backslashes", Apply: escapeStrayBackslashes},
	{Name: "trim-inside-quotes", Apply: trimInsideQuotes},
}

// Repair applies RepairRules to s. The result is not guaranteed to parse.
func Repair(s string) string {
	for _, rule := range RepairRules {
		s = rule.Apply(s)
	}
	return s
}

// convertSingleQuotes rewrites 'x' string delimiters to "x". Text inside
// double-quoted strings is copied untouched. Inside a single-quoted string a
// quote only closes the string when the next non-space byte is structural,
// so apostrophes such as 'Ben's Café' survive.
func convertSingleQuotes(s string) string {
	const (
		outside = iota
		inDouble
		inSingle
	)
	var b strings.Builder
	b.Grow(len(s) + 8)
	state := outside
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch state {
		case inDouble:
			b.WriteByte(c)
			if c == '\\' && i+1 < len(s) {
				i++
				b.WriteByte(s[i])
			} else if c == '"' {
				state = outside
			}
		case inSingle:
			switch {
			case c == '\\' && i+1 < len(s):
				i++
				if s[i] != '\'' {
					b.WriteByte(c)
				}
				b.WriteByte(s[i])
			case c == '"':
				b.WriteString(`\"`)
			case c == '\'' && closesString(s[i+1:]):
				b.WriteByte('"')
				state = outside
			default:
				b.WriteByte(c)
			}
		default:
			switch c {
			case '"':
				state = inDouble
				b.WriteByte(c)
			case '\'':
				state = inSingle
				b.WriteByte('"')
			default:
				b.WriteByte(c)
			}
		}
	}
	return b.String()
}

func closesString(rest string) bool {
	rest = strings.TrimLeft(rest, " \t\r\n")
	return rest == "" || strings.IndexByte(",:}]", rest[0]) >= 0
}

func stripLineBreaks(s string) string {
	return strings.NewReplacer("\r", "", "\n", "").Replace(s)
}

// outsideStrings applies fn to every stretch of s that is not inside a
// double-quoted string.
func outsideStrings(fn func(string) string) func(string) string {
	return func(s string) string {
		var b strings.Builder
		b.Grow(len(s))
		start := 0
		for i := 0; i < len(s); i++ {
			if s[i] != '"' {
				continue
			}
			b.WriteString(fn(s[start:i]))
			end, _ := stringEnd(s, i)
			b.WriteString(s[i:end])
			start = end
			i = end - 1
		}
		b.WriteString(fn(s[start:]))
		return b.String()
	}
}

// stringEnd returns the index just past the string opened at s[open]. When
// the string is never closed it returns len(s) and false.
func stringEnd(s string, open int) (int, bool) {
	for j := open + 1; j < len(s); j++ {
		switch s[j] {
		case '\\':
			j++
		case '"':
			return j + 1, true
		}
	}
	return len(s), false
}

// escapeStrayBackslashes doubles backslashes inside strings that do not start
// a valid JSON escape sequence.
func escapeStrayBackslashes(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 8)
	inString := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"':
			inString = !inString
			b.WriteByte(c)
		case c == '\\' && inString:
			if i+1 < len(s) && validEscape(s[i+1:]) {
				b.WriteByte(c)
				b.WriteByte(s[i+1])
				i++
				continue
			}
			b.WriteString(`\\`)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func validEscape(rest string) bool {
	switch rest[0] {
	case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
		return true
	case 'u':
		if len(rest) < 5 {
			return false
		}
		for _, h := range rest[1:5] {
			if !strings.ContainsRune("0123456789abcdefABCDEF", h) {
				return false
			}
		}
		return true
	}
	return false
}

// trimInsideQuotes removes whitespace just inside each closed string.
func trimInsideQuotes(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '"' {
			b.WriteByte(s[i])
			continue
		}
		end, closed := stringEnd(s, i)
		if !closed {
			b.WriteString(s[i:])
			break
		}
		b.WriteByte('"')
		b.WriteString(strings.TrimSpace(s[i+1 : end-1]))
		b.WriteByte('"')
		i = end - 1
	}
	return b.String()
}
