package dataset

import (
	"github.com/variantlab/savset/pkg/sav"
)

// Resolve maps a record's vote set to its canonical label. It is a
// pure function of the set of distinct non-ambiguous vote values:
//
//	{}     -> LabelUnknown   (no usable information)
//	{0}    -> LabelNeutral
//	{1}    -> LabelDeleterious
//	{0,1}  -> LabelUnknown   (genuine discordance)
//
// Neither vote counts nor source order influence the result, so a
// single dissenting source is enough to withhold a label.
func Resolve(votes *sav.VoteSet) sav.Label {
	distinct := votes.Distinct()
	if len(distinct) != 1 {
		return sav.LabelUnknown
	}
	if distinct[0] == sav.VoteDeleterious {
		return sav.LabelDeleterious
	}
	return sav.LabelNeutral
}

// Discordant reports whether a vote set contains both a neutral and a
// deleterious vote.
func Discordant(votes *sav.VoteSet) bool {
	return len(votes.Distinct()) == 2
}
