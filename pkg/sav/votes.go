package sav

import (
	"fmt"
	"strings"

	"github.com/variantlab/savset/pkg/errors"
)

// SourceVote is one source's vote for one variant.
type SourceVote struct {
	Source string `yaml:"source"`
	Vote   Vote   `yaml:"vote"`
}

// VoteSet is the ordered per-record vote mapping: one entry per source,
// in the order sources were merged. Order matters only for provenance
// output; label resolution reads the set of distinct values.
type VoteSet struct {
	votes []SourceVote
}

// NewVoteSet returns an empty vote set.
func NewVoteSet() *VoteSet {
	return &VoteSet{}
}

// Set records a source's vote, overwriting a previous vote from the
// same source in place (the original merge position is kept so that
// re-merging a source does not reshuffle provenance strings).
func (vs *VoteSet) Set(source string, vote Vote) {
	for i := range vs.votes {
		if vs.votes[i].Source == source {
			vs.votes[i].Vote = vote
			return
		}
	}
	vs.votes = append(vs.votes, SourceVote{Source: source, Vote: vote})
}

// Get returns the vote from the named source.
func (vs *VoteSet) Get(source string) (Vote, bool) {
	for _, sv := range vs.votes {
		if sv.Source == source {
			return sv.Vote, true
		}
	}
	return VoteAmbiguous, false
}

// Len returns the number of sources that voted.
func (vs *VoteSet) Len() int {
	return len(vs.votes)
}

// All returns the votes in merge order. The slice is a copy.
func (vs *VoteSet) All() []SourceVote {
	out := make([]SourceVote, len(vs.votes))
	copy(out, vs.votes)
	return out
}

// Sources returns the voting source names in merge order.
func (vs *VoteSet) Sources() []string {
	out := make([]string, len(vs.votes))
	for i, sv := range vs.votes {
		out[i] = sv.Source
	}
	return out
}

// Distinct returns the set of distinct non-ambiguous vote values.
func (vs *VoteSet) Distinct() []Vote {
	var hasNeutral, hasDeleterious bool
	for _, sv := range vs.votes {
		switch sv.Vote {
		case VoteNeutral:
			hasNeutral = true
		case VoteDeleterious:
			hasDeleterious = true
		}
	}
	out := make([]Vote, 0, 2)
	if hasNeutral {
		out = append(out, VoteNeutral)
	}
	if hasDeleterious {
		out = append(out, VoteDeleterious)
	}
	return out
}

// Clone returns a deep copy of the vote set.
func (vs *VoteSet) Clone() *VoteSet {
	return &VoteSet{votes: vs.All()}
}

// String returns the provenance form, e.g. "clinvar[1],humvar[?]".
// ParseVoteSet reverses it exactly.
func (vs *VoteSet) String() string {
	var b strings.Builder
	for i, sv := range vs.votes {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(sv.Source)
		b.WriteByte('[')
		b.WriteString(sv.Vote.String())
		b.WriteByte(']')
	}
	return b.String()
}

// MarshalYAML emits the compact provenance string.
func (vs *VoteSet) MarshalYAML() (any, error) {
	return vs.String(), nil
}

// UnmarshalYAML parses the compact provenance string.
func (vs *VoteSet) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := ParseVoteSet(s)
	if err != nil {
		return err
	}
	*vs = *parsed
	return nil
}

// ParseVoteSet parses the provenance string produced by VoteSet.String.
// An empty string parses to an empty set.
func ParseVoteSet(s string) (*VoteSet, error) {
	vs := NewVoteSet()
	if s == "" {
		return vs, nil
	}
	for _, part := range strings.Split(s, ",") {
		open := strings.IndexByte(part, '[')
		if open <= 0 || !strings.HasSuffix(part, "]") {
			return nil, errors.NewParseError("provenance", "", fmt.Sprintf("malformed vote entry %q: want source[vote]", part), nil)
		}
		source := part[:open]
		tok := part[open+1 : len(part)-1]
		vote, ok := ParseVote(tok)
		if !ok {
			return nil, errors.NewParseError("provenance", "", fmt.Sprintf("malformed vote token %q for source %s", tok, source), nil)
		}
		if _, dup := vs.Get(source); dup {
			return nil, errors.NewParseError("provenance", "", fmt.Sprintf("duplicate source %s in provenance string", source), nil)
		}
		vs.Set(source, vote)
	}
	return vs, nil
}
