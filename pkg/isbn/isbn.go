// Package isbn normalises and checksum-validates ISBN-10 and ISBN-13 codes.
package isbn

import "strings"

// Normalize strips hyphens and spaces and upper-cases a trailing x.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '-' || r == ' ':
			continue
		case r == 'x':
			b.WriteRune('X')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Valid reports whether s (raw or normalised) is a well-formed ISBN-10 or ISBN-13.
func Valid(s string) bool {
	n := Normalize(s)
	switch len(n) {
	case 10:
		return valid10(n)
	case 13:
		return valid13(n)
	}
	return false
}

func valid10(n string) bool {
	sum := 0
	for i := 0; i < 10; i++ {
		c := n[i]
		var v int
		switch {
		case c >= '0' && c <= '9':
			v = int(c - '0')
		case c == 'X' && i == 9:
			v = 10
		default:
			return false
		}
		sum += v * (10 - i)
	}
	return sum%11 == 0
}

func valid13(n string) bool {
	if !strings.HasPrefix(n, "978") && !strings.HasPrefix(n, "979") {
		return false
	}
	sum := 0
	for i := 0; i < 13; i++ {
		c := n[i]
		if c < '0' || c > '9' {
			return false
		}
		v := int(c - '0')
		if i%2 == 1 {
			v *= 3
		}
		sum += v
	}
	return sum%10 == 0
}
