// 18 Oct 2026

// Package extract picks taxa out of loci by label. A token like "abc"
// keeps every taxon whose label starts with abc. A token starting with
// a caret, "^abc", keeps labels that end with "^abc". This fits labels
// in the style of bpp, where "^" separates the specimen from the rest.
package extract

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/xflouris/bpp-tools/pkg/msa"
)

// ErrTokens is returned for an empty list or an empty token.
var ErrTokens = errors.New("Cannot parse tokens")

// Matcher decides which labels to keep.
type Matcher struct {
	suffixes []string
	prefixes []string
}

// Parse takes a comma separated list of tokens.
func Parse(csv string) (*Matcher, error) {
	var m Matcher
	for _, tok := range strings.Split(csv, ",") {
		switch {
		case tok == "":
			return nil, errors.Wrapf(ErrTokens, "in %q", csv)
		case tok[0] == '^':
			m.suffixes = append(m.suffixes, tok)
		default:
			m.prefixes = append(m.prefixes, tok)
		}
	}
	return &m, nil
}

// Match says if label matches any token.
func (m *Matcher) Match(label string) bool {
	for _, s := range m.suffixes {
		if strings.HasSuffix(label, s) {
			return true
		}
	}
	for _, p := range m.prefixes {
		if strings.HasPrefix(label, p) {
			return true
		}
	}
	return false
}

// filter copies the taxa for which Match is equal to want. Loci left
// with no taxa are dropped.
func filter(loci []*msa.Alignment, m *Matcher, want bool) []*msa.Alignment {
	var r []*msa.Alignment
	for _, a := range loci {
		keep := make([]bool, a.Count())
		n := 0
		for i := range keep {
			if m.Match(a.Label(i)) == want {
				keep[i] = true
				n++
			}
		}
		if n > 0 {
			r = append(r, a.Subset(keep))
		}
	}
	return r
}

// Extract returns copies of the loci holding only the matching taxa.
func Extract(loci []*msa.Alignment, m *Matcher) []*msa.Alignment {
	return filter(loci, m, true)
}

// Remove is the opposite of Extract. Matching taxa are thrown away.
func Remove(loci []*msa.Alignment, m *Matcher) []*msa.Alignment {
	return filter(loci, m, false)
}
