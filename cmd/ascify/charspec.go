package main

import (
	"fmt"
	"unicode/utf8"

	"github.com/wbrown/img2ascii"
	"golang.org/x/text/width"
)

// charRange is an inclusive run of characters named by a char spec.
type charRange struct {
	lo, hi rune
}

// parseCharSpec parses one character specification:
//
//	all     printable ASCII, ' ' through '~'
//	space   the space character
//	x       the single character x
//	a-z     every character from a to z; the ends may be reversed
func parseCharSpec(spec string) (charRange, error) {
	switch spec {
	case "all":
		return charRange{img2ascii.FirstPrintable, img2ascii.LastPrintable}, nil
	case "space":
		return charRange{' ', ' '}, nil
	}

	runes := []rune(spec)
	var r charRange
	switch {
	case len(runes) == 1:
		r = charRange{runes[0], runes[0]}
	case len(runes) == 3 && runes[1] == '-':
		r = charRange{runes[0], runes[2]}
		if r.lo > r.hi {
			r.lo, r.hi = r.hi, r.lo
		}
	default:
		return charRange{}, fmt.Errorf("invalid character spec %q: want all, space, a single character or a range like a-z", spec)
	}
	if isWide(r.lo) || isWide(r.hi) {
		return charRange{}, fmt.Errorf("character spec %q: wide characters break the grid", spec)
	}
	return r, nil
}

// isWide reports whether r takes two terminal cells.
func isWide(r rune) bool {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return true
	}
	return false
}

// parseCharList splits a literal character list such as "0123456789".
func parseCharList(s string) ([]rune, error) {
	if !utf8.ValidString(s) {
		return nil, fmt.Errorf("character list %q is not valid UTF-8", s)
	}
	if s == "" {
		return nil, fmt.Errorf("character list is empty")
	}
	runes := []rune(s)
	for _, r := range runes {
		if isWide(r) {
			return nil, fmt.Errorf("character list %q: %q is a wide character", s, r)
		}
	}
	return runes, nil
}
