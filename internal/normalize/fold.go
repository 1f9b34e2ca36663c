// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldAccents decomposes s (NFD), drops combining marks, and recomposes.
// On a transform error the input is returned unchanged.
func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
