// Package payload reads the externally generated ranking documents.
package payload

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
)

const (
	EpisodesFile    = "episodes_data.json"
	AnticipatedFile = "anticipated_animes_data.json"
)

// ErrNotFound reports a payload file that does not exist at the source.
var ErrNotFound = errors.New("payload not found")

// EpisodesDocument is the weekly episode ranking, best first.
type EpisodesDocument struct {
	GeneratedAt string    `json:"generated_at"`
	StartDate   string    `json:"start_date,omitempty"`
	EndDate     string    `json:"end_date,omitempty"`
	Episodes    []Episode `json:"episodes"`
}

// Episode is one ranked episode.
type Episode struct {
	AnimeTitle    string      `json:"anime_title"`
	EpisodeNumber LooseString `json:"episode_number"`
	EpisodeTitle  string      `json:"episode_title"`
	Score         float64     `json:"score"`
	Image         string      `json:"image"`
	URL           string      `json:"url"`
}

// AnticipatedDocument is the most anticipated titles of a season.
type AnticipatedDocument struct {
	GeneratedDate string             `json:"generated_date"`
	Season        string             `json:"season"`
	TotalAnimes   int                `json:"total_animes"`
	Animes        []AnticipatedAnime `json:"animes"`
}

// AnticipatedAnime is one anticipated title with its declared rank.
type AnticipatedAnime struct {
	Ranking        int    `json:"ranking"`
	Title          string `json:"title"`
	MembersDisplay string `json:"members_display"`
	Image          string `json:"image"`
	URL            string `json:"url"`
}

// LooseString decodes from a JSON string or number. Scrapers emit episode
// numbers either way.
type LooseString string

func (s *LooseString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = LooseString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("episode number: %w", err)
	}
	if i, err := n.Int64(); err == nil {
		*s = LooseString(strconv.FormatInt(i, 10))
		return nil
	}
	*s = LooseString(n.String())
	return nil
}

func (s LooseString) String() string { return string(s) }

// DecodeEpisodes parses an episodes document.
func DecodeEpisodes(r io.Reader) (EpisodesDocument, error) {
	var doc EpisodesDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return EpisodesDocument{}, fmt.Errorf("decode episodes: %w", err)
	}
	return doc, nil
}

// DecodeAnticipated parses an anticipated titles document.
func DecodeAnticipated(r io.Reader) (AnticipatedDocument, error) {
	var doc AnticipatedDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return AnticipatedDocument{}, fmt.Errorf("decode anticipated: %w", err)
	}
	return doc, nil
}
