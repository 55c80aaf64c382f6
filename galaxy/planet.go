package galaxy

import "context"

// Biome describes a planet's surface type.
type Biome struct {
	Name        string
	Description string
}

// Hazard is an environmental condition on a planet.
type Hazard struct {
	Name        string
	Description string
}

// Position is a planet's location on the galaxy map.
type Position struct {
	X float64
	Y float64
}

// Planet is an immutable snapshot of a planet's descriptive fields plus two
// deferred references: its live status and its active campaign, both resolved
// lazily on first access and cached per instance.
type Planet struct {
	res Resolver

	// Index is the stable canonical key; identity is index equality.
	Index        int
	Name         string
	Sector       string
	Biome        Biome
	Hazards      []Hazard
	Position     Position
	Waypoints    []int
	MaxHealth    int64
	Disabled     bool
	InitialOwner Faction

	status   ref[*PlanetStatus]
	campaign ref[*Campaign]
}

// NewPlanet builds a planet from a listing or single-lookup payload.
func NewPlanet(res Resolver, p PlanetPayload) *Planet {
	hazards := make([]Hazard, 0, len(p.Hazards))
	for _, h := range p.Hazards {
		hazards = append(hazards, Hazard{Name: h.Name, Description: h.Description})
	}
	return &Planet{
		res:          res,
		Index:        p.Index,
		Name:         p.Name,
		Sector:       p.Sector,
		Biome:        Biome{Name: p.Biome.Name, Description: p.Biome.Description},
		Hazards:      hazards,
		Position:     Position{X: p.Position.X, Y: p.Position.Y},
		Waypoints:    p.Waypoints,
		MaxHealth:    p.MaxHealth,
		Disabled:     p.Disabled,
		InitialOwner: FactionFromCode(p.InitialOwner),
	}
}

// Status resolves the planet's live status. The first call performs one fetch
// through the resolver; later calls return the cached value until Refresh.
func (p *Planet) Status(ctx context.Context) (*PlanetStatus, error) {
	return p.status.get(ctx, func(ctx context.Context) (*PlanetStatus, error) {
		return p.res.PlanetStatusByIndex(ctx, p.Index)
	})
}

// Campaign resolves the active campaign on this planet. Returns nil without
// error when the planet has no campaign; the absence is cached like a hit.
func (p *Planet) Campaign(ctx context.Context) (*Campaign, error) {
	return p.campaign.get(ctx, func(ctx context.Context) (*Campaign, error) {
		return p.res.CampaignForPlanet(ctx, p.Index)
	})
}

// Refresh discards every memoized reference. This is the only invalidation
// path; slots never expire on their own.
func (p *Planet) Refresh() {
	p.status.invalidate()
	p.campaign.invalidate()
}

// Equal reports planet identity, defined by canonical index equality.
func (p *Planet) Equal(other *Planet) bool {
	return other != nil && p.Index == other.Index
}

// PlanetStatus is the live state of one planet from the war status snapshot.
type PlanetStatus struct {
	PlanetIndex int
	Owner       Faction
	Health      int64
	Regen       float64
	Players     int
}

// NewPlanetStatus maps a status list entry onto the model.
func NewPlanetStatus(p PlanetStatusPayload) *PlanetStatus {
	return &PlanetStatus{
		PlanetIndex: p.Index,
		Owner:       FactionFromCode(p.Owner),
		Health:      p.Health,
		Regen:       p.RegenPerSecond,
		Players:     p.Players,
	}
}
