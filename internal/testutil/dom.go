package testutil

import (
	"bytes"
	"context"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"top10animes.net/rank-web/internal/payload"
)

// ParseHTML parses the provided HTML payload into a goquery document for assertions.
func ParseHTML(t testing.TB, body []byte) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

// StaticLoader serves fixed payload documents and counts reads.
type StaticLoader struct {
	Episodes    payload.EpisodesDocument
	Anticipated payload.AnticipatedDocument
	Reads       int
}

func (l *StaticLoader) LoadEpisodes(context.Context) payload.EpisodesDocument {
	l.Reads++
	return l.Episodes
}

func (l *StaticLoader) LoadAnticipated(context.Context) payload.AnticipatedDocument {
	l.Reads++
	return l.Anticipated
}
