package galaxy

import (
	"time"

	"helldive/hdml"
)

// SteamNews is a patch-note entry from the game's Steam feed.
type SteamNews struct {
	ID        string
	Title     string
	URL       string
	Author    string
	Published time.Time
	Content   string
}

// NewSteamNews maps a steam news payload. Published timestamps here are
// already absolute; no game-clock reconciliation applies.
func NewSteamNews(p SteamNewsPayload) *SteamNews {
	return &SteamNews{
		ID:        p.ID,
		Title:     p.Title,
		URL:       p.URL,
		Author:    p.Author,
		Published: p.PublishedAt,
		Content:   p.Content,
	}
}

// ContentPlain strips inline markup from the note body.
func (n *SteamNews) ContentPlain() string {
	return hdml.ToPlaintext(n.Content)
}
