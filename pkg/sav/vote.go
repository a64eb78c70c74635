package sav

// Vote is one source's ternary pathogenicity call for one variant.
type Vote int8

// Vote values. The on-disk tokens are "0", "1", and "?".
const (
	// VoteNeutral marks a variant a source considers benign.
	VoteNeutral Vote = 0

	// VoteDeleterious marks a variant a source considers pathogenic.
	VoteDeleterious Vote = 1

	// VoteAmbiguous marks a variant the source lists but does not
	// commit to either way. Ambiguous votes never influence the
	// resolved label.
	VoteAmbiguous Vote = -1
)

// String returns the on-disk token for the vote.
func (v Vote) String() string {
	switch v {
	case VoteNeutral:
		return "0"
	case VoteDeleterious:
		return "1"
	case VoteAmbiguous:
		return "?"
	default:
		return "!"
	}
}

// Valid reports whether the vote is one of the three legal values.
func (v Vote) Valid() bool {
	return v == VoteNeutral || v == VoteDeleterious || v == VoteAmbiguous
}

// Ambiguous reports whether the vote carries no label information.
func (v Vote) Ambiguous() bool {
	return v == VoteAmbiguous
}

// ParseVote parses a vote token. The second return value is false for
// anything outside {0, 1, ?}; callers wrap that into a MalformedVoteError
// with the offending source and variant attached.
func ParseVote(tok string) (Vote, bool) {
	switch tok {
	case "0":
		return VoteNeutral, true
	case "1":
		return VoteDeleterious, true
	case "?":
		return VoteAmbiguous, true
	default:
		return VoteAmbiguous, false
	}
}

// Label is the canonical resolved pathogenicity classification for a
// variant across all contributing sources.
type Label int8

// Label values. LabelUnknown covers both "no usable vote" and
// "sources disagree".
const (
	LabelNeutral     Label = 0
	LabelDeleterious Label = 1
	LabelUnknown     Label = -1
)

// String returns the integer token used in the persisted table.
func (l Label) String() string {
	switch l {
	case LabelNeutral:
		return "0"
	case LabelDeleterious:
		return "1"
	default:
		return "-1"
	}
}

// Known reports whether the label carries usable class information.
func (l Label) Known() bool {
	return l == LabelNeutral || l == LabelDeleterious
}

// ParseLabel parses a persisted label token.
func ParseLabel(tok string) (Label, bool) {
	switch tok {
	case "0":
		return LabelNeutral, true
	case "1":
		return LabelDeleterious, true
	case "-1":
		return LabelUnknown, true
	default:
		return LabelUnknown, false
	}
}

// ReviewTier is the confidence level supplied by the review authority
// source, 0 through 4. TierUnknown marks variants absent from the
// authority source or lacking a tier there.
type ReviewTier int8

// TierUnknown is the sentinel for "no confidence information".
const TierUnknown ReviewTier = -1

// Valid reports whether the tier is TierUnknown or in 0..4.
func (t ReviewTier) Valid() bool {
	return t >= TierUnknown && t <= 4
}
