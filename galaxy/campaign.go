package galaxy

import (
	"context"
	"math"
)

// Campaign is an active military engagement bound to exactly one planet,
// referenced by index and resolved on demand.
type Campaign struct {
	res Resolver

	ID          int
	Type        CampaignType
	Count       int
	PlanetIndex int

	planet ref[*Planet]
}

// NewCampaign builds a campaign from its payload. The planet reference stays
// deferred; nothing is fetched here.
func NewCampaign(res Resolver, p CampaignPayload) *Campaign {
	return &Campaign{
		res:         res,
		ID:          p.ID,
		Type:        CampaignTypeFromCode(p.Type),
		Count:       p.Count,
		PlanetIndex: p.PlanetIndex,
	}
}

// Planet resolves the campaign's planet, fetching it at most once.
func (c *Campaign) Planet(ctx context.Context) (*Planet, error) {
	return c.planet.get(ctx, func(ctx context.Context) (*Planet, error) {
		return c.res.PlanetByIndex(ctx, c.PlanetIndex)
	})
}

// Refresh discards the memoized planet reference.
func (c *Campaign) Refresh() {
	c.planet.invalidate()
}

// LiberationPercent is how far the planet is from enemy control, as
// 100 * (1 - health/maxHealth) rounded to two decimals. Resolving it is
// transitive: campaign -> planet -> live status.
func (c *Campaign) LiberationPercent(ctx context.Context) (float64, error) {
	planet, err := c.Planet(ctx)
	if err != nil {
		return 0, err
	}
	status, err := planet.Status(ctx)
	if err != nil {
		return 0, err
	}
	if planet.MaxHealth <= 0 {
		return 0, &DecodeError{Entity: "campaign", Reason: "planet max health is not positive"}
	}
	pct := 100 * (1 - float64(status.Health)/float64(planet.MaxHealth))
	return math.Round(pct*100) / 100, nil
}
