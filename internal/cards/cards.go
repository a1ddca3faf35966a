// Package cards turns ranked payload items into card view models.
package cards

import (
	"strings"

	"top10animes.net/rank-web/internal/format"
	"top10animes.net/rank-web/internal/payload"
	"top10animes.net/rank-web/internal/rank"
)

// Label keys resolved through the i18n bundle by the templates.
const (
	LabelScore       = "card.score"
	LabelPlanToWatch = "card.plan_to_watch"
)

const unknownTitle = "Unknown"

// CardView is everything a single card template needs.
type CardView struct {
	Rank           int
	Style          rank.Style
	Title          string
	Info           string
	MetricLabelKey string
	Metric         string
	ImageURL       string
	Href           string
	Target         string
	Rel            string

	// Score is kept for filtering; it is not rendered directly.
	Score float64
}

// Episode renders an episode card at the given 1-based position.
func Episode(ep payload.Episode, position int) CardView {
	return CardView{
		Rank:           position,
		Style:          rank.Resolve(position),
		Title:          strings.TrimSpace(ep.AnimeTitle),
		Info:           EpisodeInfo(ep.EpisodeNumber.String(), ep.EpisodeTitle),
		MetricLabelKey: LabelScore,
		Metric:         format.Score(ep.Score),
		ImageURL:       ep.Image,
		Href:           EpisodeHref(ep.URL),
		Target:         "_blank",
		Rel:            "noopener",
		Score:          ep.Score,
	}
}

// Anticipated renders an anticipated title card using its declared rank.
func Anticipated(a payload.AnticipatedAnime) CardView {
	return CardView{
		Rank:           a.Ranking,
		Style:          rank.Resolve(a.Ranking),
		Title:          strings.TrimSpace(a.Title),
		MetricLabelKey: LabelPlanToWatch,
		Metric:         strings.TrimSpace(a.MembersDisplay),
		ImageURL:       a.Image,
		Href:           strings.TrimSpace(a.URL),
		Target:         "_blank",
		Rel:            "noopener",
	}
}

// EpisodeInfo builds the secondary line, e.g. "E5 - Finale".
// A blank or "Unknown" episode title is left out.
func EpisodeInfo(number, title string) string {
	number = strings.TrimSpace(number)
	if number == "" {
		number = "?"
	}
	info := "E" + number
	title = strings.TrimSpace(title)
	if title != "" && title != unknownTitle {
		info += " - " + title
	}
	return info
}

// EpisodeHref points at the episode list of an anime page.
func EpisodeHref(base string) string {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if base == "" {
		return ""
	}
	return base + "/episode"
}
