package galaxy

import (
	"context"
	"time"
)

// normalizeWarIndex maps the war-info planet index space onto the canonical
// planet-listing space. The upstream numbers war-info planets one higher than
// the listing endpoint; this is the single point where the two spaces are
// reconciled, so everything past ingest speaks listing indices.
func normalizeWarIndex(i int) int {
	return i - 1
}

// PlanetInfo is the war-layout record of one planet, with a deferred
// reference to the full planet.
type PlanetInfo struct {
	res Resolver

	PlanetIndex  int
	SettingsHash int64
	Position     Position
	Waypoints    []int
	Sector       int
	MaxHealth    int64
	Disabled     bool
	InitialOwner Faction

	planet ref[*Planet]
}

// Planet resolves the full planet record for this layout entry.
func (pi *PlanetInfo) Planet(ctx context.Context) (*Planet, error) {
	return pi.planet.get(ctx, func(ctx context.Context) (*Planet, error) {
		return pi.res.PlanetByIndex(ctx, pi.PlanetIndex)
	})
}

// Refresh discards the memoized planet reference.
func (pi *PlanetInfo) Refresh() {
	pi.planet.invalidate()
}

// HomeWorld names a faction's home planets by deferred reference.
type HomeWorld struct {
	res Resolver

	Race          Faction
	PlanetIndexes []int

	planets ref[[]*Planet]
}

// Planets resolves the home-world planet list.
func (h *HomeWorld) Planets(ctx context.Context) ([]*Planet, error) {
	return h.planets.get(ctx, func(ctx context.Context) ([]*Planet, error) {
		out := make([]*Planet, 0, len(h.PlanetIndexes))
		for _, idx := range h.PlanetIndexes {
			planet, err := h.res.PlanetByIndex(ctx, idx)
			if err != nil {
				return nil, err
			}
			out = append(out, planet)
		}
		return out, nil
	})
}

// WarInfo is the static layout of the current war.
type WarInfo struct {
	res Resolver

	WarID                int
	StartDate            time.Time
	EndDate              time.Time
	LayoutVersion        int
	MinimumClientVersion string
	PlanetInfos          []*PlanetInfo
	HomeWorlds           []*HomeWorld
}

// NewWarInfo decodes the war layout. Planet indices are normalized into the
// listing space here and nowhere else.
func NewWarInfo(res Resolver, p WarInfoPayload) *WarInfo {
	infos := make([]*PlanetInfo, 0, len(p.PlanetInfos))
	for _, ip := range p.PlanetInfos {
		infos = append(infos, &PlanetInfo{
			res:          res,
			PlanetIndex:  normalizeWarIndex(ip.Index),
			SettingsHash: ip.SettingsHash,
			Position:     Position{X: ip.Position.X, Y: ip.Position.Y},
			Waypoints:    ip.Waypoints,
			Sector:       ip.Sector,
			MaxHealth:    ip.MaxHealth,
			Disabled:     ip.Disabled,
			InitialOwner: FactionFromCode(ip.InitialOwner),
		})
	}
	homeWorlds := make([]*HomeWorld, 0, len(p.HomeWorlds))
	for _, hp := range p.HomeWorlds {
		indexes := make([]int, 0, len(hp.PlanetIndices))
		for _, idx := range hp.PlanetIndices {
			indexes = append(indexes, normalizeWarIndex(idx))
		}
		homeWorlds = append(homeWorlds, &HomeWorld{
			res:           res,
			Race:          FactionFromCode(hp.Race),
			PlanetIndexes: indexes,
		})
	}
	return &WarInfo{
		res:                  res,
		WarID:                p.WarID,
		StartDate:            time.Unix(p.StartDate, 0).UTC(),
		EndDate:              time.Unix(p.EndDate, 0).UTC(),
		LayoutVersion:        p.LayoutVersion,
		MinimumClientVersion: p.MinimumClientVersion,
		PlanetInfos:          infos,
		HomeWorlds:           homeWorlds,
	}
}

// PlanetInfo returns the layout entry for a listing-space planet index, nil
// when absent.
func (w *WarInfo) PlanetInfo(index int) *PlanetInfo {
	for _, pi := range w.PlanetInfos {
		if pi.PlanetIndex == index {
			return pi
		}
	}
	return nil
}

// Status is the live war snapshot. Time is the authoritative game clock.
type Status struct {
	res Resolver

	WarID            int
	Time             int64
	ImpactMultiplier float64
	PlanetStatuses   []*PlanetStatus
	Campaigns        []*Campaign
}

// NewStatus decodes the war status snapshot.
func NewStatus(res Resolver, p StatusPayload) *Status {
	statuses := make([]*PlanetStatus, 0, len(p.PlanetStatus))
	for _, sp := range p.PlanetStatus {
		statuses = append(statuses, NewPlanetStatus(sp))
	}
	campaigns := make([]*Campaign, 0, len(p.Campaigns))
	for _, cp := range p.Campaigns {
		campaigns = append(campaigns, NewCampaign(res, cp))
	}
	return &Status{
		res:              res,
		WarID:            p.WarID,
		Time:             p.Time,
		ImpactMultiplier: p.ImpactMultiplier,
		PlanetStatuses:   statuses,
		Campaigns:        campaigns,
	}
}

// PlanetStatus returns the live status entry for a planet index, nil when the
// snapshot has none.
func (s *Status) PlanetStatus(index int) *PlanetStatus {
	for _, ps := range s.PlanetStatuses {
		if ps.PlanetIndex == index {
			return ps
		}
	}
	return nil
}
