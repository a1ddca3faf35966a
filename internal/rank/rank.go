// Package rank maps a ranking position to its visual tier.
package rank

// Tier is a discrete visual bucket derived from a rank.
type Tier int

const (
	TierOther Tier = iota
	TierTopThree
	TierFirst
)

func (t Tier) String() string {
	switch t {
	case TierFirst:
		return "first"
	case TierTopThree:
		return "top-three"
	default:
		return "other"
	}
}

// Style is the colour pair and card class for a tier.
type Style struct {
	Tier       Tier
	Background string
	Text       string
	CardClass  string
}

const (
	green  = "#88FE70"
	pink   = "#FE70A9"
	yellow = "#FECB70"
	ink    = "#212121"
)

// ranks 2 and 3 share the pink swatch but keep the regular card outline;
// only the winner gets the highlighted "first" card.
var styles = map[Tier]Style{
	TierFirst:    {Tier: TierFirst, Background: green, Text: ink, CardClass: "first"},
	TierTopThree: {Tier: TierTopThree, Background: pink, Text: ink, CardClass: "other"},
	TierOther:    {Tier: TierOther, Background: yellow, Text: ink, CardClass: "other"},
}

// TierOf returns the tier for a 1-based rank. Ranks below 1 are unranked
// and fall into TierOther.
func TierOf(rank int) Tier {
	switch {
	case rank == 1:
		return TierFirst
	case rank == 2 || rank == 3:
		return TierTopThree
	default:
		return TierOther
	}
}

// Resolve returns the style for a 1-based rank.
func Resolve(rank int) Style {
	return styles[TierOf(rank)]
}
