package export

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// escapeLiteral escapes a string for a double-quoted N-Triples or Turtle
// literal in canonical form: ECHAR for the named controls, UCHAR for the
// remaining C0 controls and DEL, raw UTF-8 for everything else.
func escapeLiteral(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		switch r {
		case '\\':
			sb.WriteString(`\\`)
		case '"':
			sb.WriteString(`\"`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&sb, `\u%04X`, r)
			} else {
				sb.WriteRune(r)
			}
		}
	}
	return sb.String()
}

// escapeIRI escapes the characters IRIREF does not allow as UCHAR sequences.
// IRIs are otherwise written verbatim.
func escapeIRI(iri string) string {
	if !strings.ContainsAny(iri, "<>\"{}|^`\\") && !hasControlOrSpace(iri) {
		return iri
	}
	var sb strings.Builder
	for _, r := range iri {
		if r <= 0x20 || strings.ContainsRune("<>\"{}|^`\\", r) {
			fmt.Fprintf(&sb, `\u%04X`, r)
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func hasControlOrSpace(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] <= 0x20 {
			return true
		}
	}
	return false
}

// isPNLocal reports whether s can be written as the local part of a Turtle
// prefixed name without escapes. Only a conservative subset of PN_LOCAL is
// accepted: letters, digits, '_' and '-', not starting with '-'.
func isPNLocal(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || isLetter(r):
		case r == '-' || isDigit(r):
			if i == 0 && r == '-' {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// isNCName reports whether s is an XML NCName usable as an element local
// name. Restricted to ASCII letters, digits, '_', '-' and '.'.
func isNCName(s string) bool {
	if s == "" {
		return false
	}
	first, _ := utf8.DecodeRuneInString(s)
	if !(first == '_' || isLetter(first)) {
		return false
	}
	for _, r := range s {
		if !(r == '_' || r == '-' || r == '.' || isLetter(r) || isDigit(r)) {
			return false
		}
	}
	return true
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
