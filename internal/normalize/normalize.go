// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize turns a document's title and abstract into the single
// cleaned text field that the vector space is built from.
//
// The cleaning steps run in a fixed order, each consuming the previous
// step's output: strip non-ASCII, lowercase, drop stop words, drop
// punctuation, drop <...> tags. The order is part of the contract; tag
// removal runs last and therefore only sees brackets that survived the
// punctuation step.
package normalize

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/pdiddy/screening-engine/pkg/types"
)

var (
	wordPattern = regexp.MustCompile(`\w+`)
	tagPattern  = regexp.MustCompile(`<.*?>`)
)

// Options tunes the cleaning pipeline.
type Options struct {
	// FoldAccents maps accented letters to their unaccented base before
	// non-ASCII stripping.
	FoldAccents bool
}

// Text converts a field value to its text form. Strings pass through and
// nil becomes empty. Numbers and booleans print the way Python's str()
// prints them, so whole floats keep ".0" and large or tiny floats switch
// to exponent form ("1e+21").
func Text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case float64:
		return formatFloat(t, 64)
	case float32:
		return formatFloat(float64(t), 32)
	case bool:
		if t {
			return "True"
		}
		return "False"
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

// formatFloat uses the shortest round-trip digits. The decimal exponent
// picks the layout: fixed point for -4 <= exp < 16, otherwise scientific
// with a signed two-digit exponent.
func formatFloat(f float64, bits int) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	sci := strconv.FormatFloat(f, 'e', -1, bits)
	exp, err := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
	if err != nil || exp < -4 || exp >= 16 {
		return sci
	}
	s := strconv.FormatFloat(f, 'f', -1, bits)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

// Normalize joins title and abstract with a single space and cleans the result.
func Normalize(title, abstract any, opts Options) string {
	return Clean(Text(title)+" "+Text(abstract), opts)
}

// Clean applies the cleaning steps to s. It never fails; empty input
// yields empty output.
func Clean(s string, opts Options) string {
	if opts.FoldAccents {
		s = foldAccents(s)
	}
	s = removeNonASCII(s)
	s = strings.ToLower(s)
	s = removeStopWords(s)
	s = removePunctuation(s)
	s = removeTags(s)
	return s
}

// Record normalizes rec using the configured field names, stores the result
// under cfg.OutputField, and returns it.
func Record(rec types.Record, cfg types.NormalizeConfig) string {
	out := Normalize(rec[cfg.TitleField], rec[cfg.AbstractField], Options{FoldAccents: cfg.FoldAccents})
	if cfg.OutputField != "" {
		rec[cfg.OutputField] = out
	}
	return out
}

// Documents fills NormalizedText on every document in place.
func Documents(docs []types.Document, opts Options) {
	for i := range docs {
		docs[i].NormalizedText = Normalize(docs[i].Title, docs[i].Abstract, opts)
	}
}

func removeNonASCII(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 128 {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// isSpace matches the separators a whitespace split treats as blanks,
// including the ASCII file/group/record/unit separators.
func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r', 0x1c, 0x1d, 0x1e, 0x1f:
		return true
	}
	return false
}

func removeStopWords(s string) string {
	tokens := strings.FieldsFunc(s, isSpace)
	kept := tokens[:0]
	for _, tok := range tokens {
		if _, stop := StopWords[tok]; !stop {
			kept = append(kept, tok)
		}
	}
	return strings.Join(kept, " ")
}

func removePunctuation(s string) string {
	return strings.Join(wordPattern.FindAllString(s, -1), " ")
}

func removeTags(s string) string {
	return tagPattern.ReplaceAllString(s, "")
}
