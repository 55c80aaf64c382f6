package galaxy

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// fakeResolver is an in-memory Resolver that counts fetches.
type fakeResolver struct {
	mu            sync.Mutex
	planetCalls   int
	statusCalls   int
	campaignCalls int

	health    int64
	maxHealth int64
	campaign  *Campaign
	statusErr error
	delay     time.Duration
	clockBase time.Time

	// One-shot gates for the next status fetch: statusStarted is closed when
	// the fetch begins, statusRelease blocks it until closed.
	statusStarted chan struct{}
	statusRelease chan struct{}
}

func newFakeResolver() *fakeResolver {
	return &fakeResolver{
		health:    100,
		maxHealth: 100,
		clockBase: time.Date(2024, 2, 8, 0, 0, 0, 0, time.UTC),
	}
}

func (f *fakeResolver) PlanetByIndex(ctx context.Context, index int) (*Planet, error) {
	f.mu.Lock()
	f.planetCalls++
	f.mu.Unlock()
	return NewPlanet(f, PlanetPayload{
		Index:     index,
		Name:      fmt.Sprintf("Planet %d", index),
		Sector:    "Test Sector",
		MaxHealth: f.maxHealth,
	}), nil
}

func (f *fakeResolver) PlanetStatusByIndex(ctx context.Context, index int) (*PlanetStatus, error) {
	f.mu.Lock()
	started := f.statusStarted
	release := f.statusRelease
	f.statusStarted, f.statusRelease = nil, nil
	f.mu.Unlock()
	if started != nil {
		close(started)
	}
	if release != nil {
		<-release
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	f.mu.Lock()
	f.statusCalls++
	err := f.statusErr
	f.statusErr = nil
	health := f.health
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return &PlanetStatus{PlanetIndex: index, Owner: FactionAutomaton, Health: health, Players: 1234}, nil
}

func (f *fakeResolver) CampaignForPlanet(ctx context.Context, index int) (*Campaign, error) {
	f.mu.Lock()
	f.campaignCalls++
	campaign := f.campaign
	f.mu.Unlock()
	return campaign, nil
}

func (f *fakeResolver) FixTimestamp(ctx context.Context, relative int64) (time.Time, error) {
	return f.clockBase.Add(time.Duration(relative) * time.Second), nil
}

var errFetch = errors.New("fetch failed")
