// Package galaxy holds the typed entity model of the galactic war: planets,
// campaigns, assignments (major orders), dispatches, and war-wide snapshots.
//
// Entities reference each other by opaque integer IDs. Instead of fetching
// the whole object graph eagerly, each entity stores the foreign key and a
// lazy accessor that resolves it through the shared Resolver on first use,
// then caches the result for the lifetime of the instance.
package galaxy

import (
	"context"
	"time"
)

// Resolver is the read-only context handle every entity receives at
// construction. It is implemented by the API client; entities never own it
// and never mutate it, they only call back through it to resolve deferred
// references on demand.
type Resolver interface {
	// PlanetByIndex fetches a planet by its canonical listing index.
	PlanetByIndex(ctx context.Context, index int) (*Planet, error)
	// PlanetStatusByIndex fetches the live status of one planet.
	PlanetStatusByIndex(ctx context.Context, index int) (*PlanetStatus, error)
	// CampaignForPlanet returns the active campaign on a planet, or nil when
	// the planet has none. Absence is not an error.
	CampaignForPlanet(ctx context.Context, index int) (*Campaign, error)
	// FixTimestamp converts a server-relative offset in seconds into absolute
	// wall-clock time using a fresh game-clock reading.
	FixTimestamp(ctx context.Context, relative int64) (time.Time, error)
}

// GameClock anchors server-relative offsets to wall-clock time. Base is the
// war start epoch plus the authoritative game-time reading taken when the
// clock was derived. Clocks must be derived fresh per fetch: the server's
// internal counter keeps advancing between requests, and reusing an old
// reading drifts by the wall time elapsed since it was taken.
type GameClock struct {
	Base time.Time
}

// Absolute converts a relative offset (seconds since war start for past
// events, seconds until expiry for future ones) into wall-clock time.
func (c GameClock) Absolute(relative int64) time.Time {
	return c.Base.Add(time.Duration(relative) * time.Second)
}
