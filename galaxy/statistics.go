package galaxy

import "context"

// StatisticsEntry is the shared counter set for galaxy-wide and per-planet
// statistics.
type StatisticsEntry struct {
	MissionsWon        int64
	MissionsLost       int64
	MissionTime        int64
	TerminidKills      int64
	AutomatonKills     int64
	IlluminateKills    int64
	BulletsFired       int64
	BulletsHit         int64
	TimePlayed         int64
	Deaths             int64
	Revives            int64
	Friendlies         int64
	MissionSuccessRate int
	Accuracy           int
	PlayerCount        int64
}

func newStatisticsEntry(p StatisticsEntryPayload) StatisticsEntry {
	return StatisticsEntry{
		MissionsWon:        p.MissionsWon,
		MissionsLost:       p.MissionsLost,
		MissionTime:        p.MissionTime,
		TerminidKills:      p.TerminidKills,
		AutomatonKills:     p.AutomatonKills,
		IlluminateKills:    p.IlluminateKills,
		BulletsFired:       p.BulletsFired,
		BulletsHit:         p.BulletsHit,
		TimePlayed:         p.TimePlayed,
		Deaths:             p.Deaths,
		Revives:            p.Revives,
		Friendlies:         p.Friendlies,
		MissionSuccessRate: p.MissionSuccessRate,
		Accuracy:           p.Accuracy,
		PlayerCount:        p.PlayerCount,
	}
}

// PlanetStatistics are one planet's counters with a deferred planet
// reference.
type PlanetStatistics struct {
	res Resolver

	StatisticsEntry
	PlanetIndex int

	planet ref[*Planet]
}

// NewPlanetStatistics maps a per-planet counter entry.
func NewPlanetStatistics(res Resolver, p StatisticsEntryPayload) *PlanetStatistics {
	return &PlanetStatistics{
		res:             res,
		StatisticsEntry: newStatisticsEntry(p),
		PlanetIndex:     p.PlanetIndex,
	}
}

// Planet resolves the planet these counters belong to.
func (s *PlanetStatistics) Planet(ctx context.Context) (*Planet, error) {
	return s.planet.get(ctx, func(ctx context.Context) (*Planet, error) {
		return s.res.PlanetByIndex(ctx, s.PlanetIndex)
	})
}

// Refresh discards the memoized planet reference.
func (s *PlanetStatistics) Refresh() {
	s.planet.invalidate()
}

// Statistics bundles galaxy-wide counters with the per-planet breakdown.
type Statistics struct {
	Galaxy  StatisticsEntry
	Planets []*PlanetStatistics
}

// NewStatistics decodes the statistics snapshot.
func NewStatistics(res Resolver, p StatisticsPayload) *Statistics {
	planets := make([]*PlanetStatistics, 0, len(p.PlanetsStats))
	for _, ps := range p.PlanetsStats {
		planets = append(planets, NewPlanetStatistics(res, ps))
	}
	return &Statistics{Galaxy: newStatisticsEntry(p.GalaxyStats), Planets: planets}
}

// PlanetStatistics returns the entry for a planet index, nil when absent.
func (s *Statistics) PlanetStatistics(index int) *PlanetStatistics {
	for _, ps := range s.Planets {
		if ps.PlanetIndex == index {
			return ps
		}
	}
	return nil
}
