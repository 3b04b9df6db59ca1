package main

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// normalizeCityName standardizes user-entered city names before geocoding:
// combining diacritical marks are stripped ("São Paulo" becomes "sao paulo")
// and the result is lowercased. Geocoding providers tolerate either form, but a
// stable form keeps logs and metrics labels consistent.
func normalizeCityName(s string) (string, error) {
	if !utf8.ValidString(s) {
		return "", fmt.Errorf("input string is not valid UTF-8")
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		return "", err
	}
	return strings.ToLower(result), nil
}
