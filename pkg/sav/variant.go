// Package sav defines the core value types for single amino-acid
// variants: the variant identity tuple, the ternary per-source vote,
// the canonical resolved label, the review confidence tier, and the
// ordered per-record vote set used for provenance.
package sav

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/variantlab/savset/pkg/errors"
)

// Variant identifies a single amino-acid variant by protein accession,
// residue position, wild-type residue, and mutant residue. Two variants
// are the same variant iff all four fields match exactly, so Variant is
// usable directly as a map key.
type Variant struct {
	Accession string `yaml:"accession"`
	Position  int    `yaml:"position"`
	WildType  string `yaml:"wild_type"`
	Mutant    string `yaml:"mutant"`
}

// String returns the canonical string form, e.g. "P04637:175:R>H".
func (v Variant) String() string {
	return fmt.Sprintf("%s:%d:%s>%s", v.Accession, v.Position, v.WildType, v.Mutant)
}

// Validate checks that the identity tuple is well formed.
func (v Variant) Validate() error {
	if v.Accession == "" {
		return &errors.ValidationError{Field: "accession", Message: "must not be empty"}
	}
	if v.Position <= 0 {
		return &errors.ValidationError{Field: "position", Value: v.Position, Message: "must be positive"}
	}
	if !isResidue(v.WildType) {
		return &errors.ValidationError{Field: "wild_type", Value: v.WildType, Message: "must be a single amino-acid letter"}
	}
	if !isResidue(v.Mutant) {
		return &errors.ValidationError{Field: "mutant", Value: v.Mutant, Message: "must be a single amino-acid letter"}
	}
	return nil
}

// ParseVariant parses the canonical "accession:position:WT>MUT" form
// produced by Variant.String.
func ParseVariant(s string) (Variant, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return Variant{}, errors.NewParseError("variant", "", fmt.Sprintf("malformed variant %q: want accession:position:WT>MUT", s), nil)
	}

	pos, err := strconv.Atoi(parts[1])
	if err != nil {
		return Variant{}, errors.NewParseError("variant", "", fmt.Sprintf("malformed position in %q", s), err)
	}

	wt, mut, ok := strings.Cut(parts[2], ">")
	if !ok {
		return Variant{}, errors.NewParseError("variant", "", fmt.Sprintf("malformed substitution in %q: want WT>MUT", s), nil)
	}

	v := Variant{
		Accession: parts[0],
		Position:  pos,
		WildType:  wt,
		Mutant:    mut,
	}
	if err := v.Validate(); err != nil {
		return Variant{}, errors.NewParseError("variant", "", fmt.Sprintf("invalid variant %q", s), err)
	}
	return v, nil
}

// isResidue reports whether s is a single uppercase amino-acid letter.
// The full alphabet is accepted rather than the 20 standard residues so
// that ambiguity codes (B, Z, X) and selenocysteine (U) pass through.
func isResidue(s string) bool {
	return len(s) == 1 && s[0] >= 'A' && s[0] <= 'Z'
}
