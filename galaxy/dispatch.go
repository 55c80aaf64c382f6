package galaxy

import (
	"time"

	"helldive/hdml"
)

// Dispatch is an in-game news item. Published arrives server-relative and is
// reconciled to wall-clock time at construction; Message keeps the raw HDML.
type Dispatch struct {
	ID        int
	Published time.Time
	Type      int
	TagIDs    []int
	Message   string
}

// NewDispatch decodes a dispatch using the game clock taken for this fetch.
func NewDispatch(p DispatchPayload, clock GameClock) *Dispatch {
	return &Dispatch{
		ID:        p.ID,
		Published: clock.Absolute(p.Published),
		Type:      p.Type,
		TagIDs:    p.TagIDs,
		Message:   p.Message,
	}
}

// MessageMarkdown renders the message with HDML emphasis mapped to Markdown.
func (d *Dispatch) MessageMarkdown() string {
	return hdml.ToMarkdown(d.Message)
}

// MessagePlain renders the message with all tags stripped.
func (d *Dispatch) MessagePlain() string {
	return hdml.ToPlaintext(d.Message)
}
