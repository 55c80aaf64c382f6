package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"helldive/galaxy"
)

const testWarStart = int64(1706040313)

// testEnv serves canned API fixtures with a mutable game clock.
type testEnv struct {
	mu          sync.Mutex
	gameTime    int64
	assignments []galaxy.AssignmentPayload
	dispatches  []galaxy.DispatchPayload

	srv    *httptest.Server
	client *Client
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		gameTime: 5000,
		assignments: []galaxy.AssignmentPayload{{
			ID32:      42,
			Progress:  []int{0},
			ExpiresIn: 3600,
			Setting: galaxy.AssignmentSettingPayload{
				OverrideTitle: "MAJOR ORDER",
				OverrideBrief: "Liberate <i=3>Mort</i>.",
				Reward:        galaxy.RewardPayload{Type: 1, Amount: 45},
				Tasks: []galaxy.TaskPayload{{
					Type:       int(galaxy.TaskLiberation),
					Values:     []int{7},
					ValueTypes: []int{int(galaxy.ValuePlanet)},
				}},
			},
		}},
		dispatches: []galaxy.DispatchPayload{
			{ID: 2, Published: -50, Message: "second"},
			{ID: 1, Published: -100, Message: "first"},
		},
	}

	r := chi.NewRouter()
	r.Get("/api/v1/war/status", func(w http.ResponseWriter, _ *http.Request) {
		env.mu.Lock()
		gameTime := env.gameTime
		env.mu.Unlock()
		env.writeJSON(t, w, galaxy.StatusPayload{
			WarID:            801,
			Time:             gameTime,
			ImpactMultiplier: 0.02,
			PlanetStatus: []galaxy.PlanetStatusPayload{
				{Index: 7, Owner: 3, Health: 250000, Players: 4321},
			},
			Campaigns: []galaxy.CampaignPayload{{ID: 5, PlanetIndex: 7, Type: 0, Count: 2}},
		})
	})
	r.Get("/api/v1/war/info", func(w http.ResponseWriter, _ *http.Request) {
		env.writeJSON(t, w, galaxy.WarInfoPayload{
			WarID:       801,
			StartDate:   testWarStart,
			PlanetInfos: []galaxy.PlanetInfoPayload{{Index: 8, MaxHealth: 1000000}},
		})
	})
	r.Get("/api/v1/planets", func(w http.ResponseWriter, _ *http.Request) {
		env.writeJSON(t, w, []galaxy.PlanetPayload{env.mortPayload()})
	})
	r.Get("/api/v1/planets/{index}", func(w http.ResponseWriter, req *http.Request) {
		index, err := strconv.Atoi(chi.URLParam(req, "index"))
		if err != nil || index != 7 {
			http.Error(w, "no such planet", http.StatusNotFound)
			return
		}
		env.writeJSON(t, w, env.mortPayload())
	})
	r.Get("/api/v1/planet-events", func(w http.ResponseWriter, _ *http.Request) {
		env.writeJSON(t, w, []galaxy.PlanetPayload{env.mortPayload()})
	})
	r.Get("/api/v1/campaigns", func(w http.ResponseWriter, _ *http.Request) {
		env.writeJSON(t, w, []galaxy.CampaignPayload{{ID: 5, PlanetIndex: 7, Type: 0, Count: 2}})
	})
	r.Get("/api/v1/campaigns/{id}", func(w http.ResponseWriter, req *http.Request) {
		if chi.URLParam(req, "id") != "5" {
			http.Error(w, "no such campaign", http.StatusNotFound)
			return
		}
		env.writeJSON(t, w, galaxy.CampaignPayload{ID: 5, PlanetIndex: 7, Type: 0, Count: 2})
	})
	r.Get("/api/v1/assignments", func(w http.ResponseWriter, _ *http.Request) {
		env.mu.Lock()
		assignments := env.assignments
		env.mu.Unlock()
		env.writeJSON(t, w, assignments)
	})
	r.Get("/api/v1/dispatches", func(w http.ResponseWriter, _ *http.Request) {
		env.mu.Lock()
		dispatches := env.dispatches
		env.mu.Unlock()
		env.writeJSON(t, w, dispatches)
	})
	r.Get("/api/v1/steam", func(w http.ResponseWriter, _ *http.Request) {
		env.writeJSON(t, w, []galaxy.SteamNewsPayload{
			{ID: "2", Title: "Patch 1.001", PublishedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
			{ID: "1", Title: "Patch 1.000", PublishedAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
		})
	})
	r.Get("/api/v1/stats", func(w http.ResponseWriter, _ *http.Request) {
		env.writeJSON(t, w, galaxy.StatisticsPayload{
			GalaxyStats: galaxy.StatisticsEntryPayload{MissionsWon: 1000, PlayerCount: 90000},
			PlanetsStats: []galaxy.StatisticsEntryPayload{
				{PlanetIndex: 7, MissionsWon: 100, Deaths: 50},
			},
		})
	})
	r.Get("/api/v1/teapot", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail":"malformed request"}`))
	})

	env.srv = httptest.NewServer(r)
	t.Cleanup(env.srv.Close)
	env.client = New(Config{BaseURL: env.srv.URL, Retries: 1})
	return env
}

func (env *testEnv) writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("encode fixture: %v", err)
	}
}

func (env *testEnv) mortPayload() galaxy.PlanetPayload {
	return galaxy.PlanetPayload{
		Index:     7,
		Name:      "Mort",
		Sector:    "Xzar",
		MaxHealth: 1000000,
	}
}

func (env *testEnv) advance(seconds int64) {
	env.mu.Lock()
	env.gameTime += seconds
	env.mu.Unlock()
}

func TestPlanetFetch(t *testing.T) {
	env := newTestEnv(t)
	planet, err := env.client.Planet(context.Background(), 7)
	if err != nil {
		t.Fatalf("fetch planet: %v", err)
	}
	if planet.Name != "Mort" || planet.Sector != "Xzar" {
		t.Fatalf("unexpected planet: %+v", planet)
	}
}

func TestPlanetNotFound(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.client.Planet(context.Background(), 999)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAPIErrorCarriesBody(t *testing.T) {
	env := newTestEnv(t)
	var out map[string]any
	err := env.client.get(context.Background(), "api/v1/teapot", &out)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", apiErr.StatusCode)
	}
	if apiErr.Body != `{"detail":"malformed request"}` {
		t.Fatalf("body not carried verbatim: %q", apiErr.Body)
	}
}

func TestConnError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	c := New(Config{BaseURL: srv.URL, Retries: 1, Timeout: time.Second})

	_, err := c.Status(context.Background())
	var connErr *ConnError
	if !errors.As(err, &connErr) {
		t.Fatalf("expected ConnError, got %v", err)
	}
}

func TestRetryAfterServerError(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()
		if n == 1 {
			http.Error(w, "upstream hiccup", http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, Retries: 2})
	planets, err := c.Planets(context.Background())
	if err != nil {
		t.Fatalf("expected retry to recover: %v", err)
	}
	if len(planets) != 0 {
		t.Fatalf("unexpected planets: %+v", planets)
	}
	mu.Lock()
	defer mu.Unlock()
	if calls != 2 {
		t.Fatalf("expected 2 attempts, got %d", calls)
	}
}

func TestFixTimestampNoDrift(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	const rel = int64(-250)

	first, err := env.client.FixTimestamp(ctx, rel)
	if err != nil {
		t.Fatalf("first conversion: %v", err)
	}
	want := time.Unix(testWarStart+5000+rel, 0).UTC()
	if !first.Equal(want) {
		t.Fatalf("first conversion: got %v, want %v", first, want)
	}

	// Advance the game clock; the same relative offset must shift by exactly
	// the advance, proving the clock is re-derived rather than cached.
	const advance = int64(300)
	env.advance(advance)
	second, err := env.client.FixTimestamp(ctx, rel)
	if err != nil {
		t.Fatalf("second conversion: %v", err)
	}
	if got := second.Sub(first); got != time.Duration(advance)*time.Second {
		t.Fatalf("clock drift: moved by %v, want %vs", got, advance)
	}
}

func TestDispatchesReconciledAndSorted(t *testing.T) {
	env := newTestEnv(t)
	dispatches, err := env.client.Dispatches(context.Background())
	if err != nil {
		t.Fatalf("fetch dispatches: %v", err)
	}
	if len(dispatches) != 2 {
		t.Fatalf("expected 2 dispatches, got %d", len(dispatches))
	}
	if dispatches[0].ID != 1 || dispatches[1].ID != 2 {
		t.Fatalf("expected oldest first, got %d then %d", dispatches[0].ID, dispatches[1].ID)
	}
	want := time.Unix(testWarStart+5000-100, 0).UTC()
	if !dispatches[0].Published.Equal(want) {
		t.Fatalf("published: got %v, want %v", dispatches[0].Published, want)
	}
}

func TestLatestDispatch(t *testing.T) {
	env := newTestEnv(t)
	latest, err := env.client.LatestDispatch(context.Background())
	if err != nil {
		t.Fatalf("fetch latest: %v", err)
	}
	if latest == nil || latest.ID != 2 {
		t.Fatalf("expected newest dispatch, got %+v", latest)
	}

	env.mu.Lock()
	env.dispatches = nil
	env.mu.Unlock()
	latest, err = env.client.LatestDispatch(context.Background())
	if err != nil {
		t.Fatalf("fetch latest from empty feed: %v", err)
	}
	if latest != nil {
		t.Fatalf("empty feed must yield nil, got %+v", latest)
	}
}

func TestAssignmentsSkipMalformed(t *testing.T) {
	env := newTestEnv(t)
	env.mu.Lock()
	env.assignments = append(env.assignments, galaxy.AssignmentPayload{
		ID32:     99,
		Progress: []int{0},
		Setting: galaxy.AssignmentSettingPayload{
			Tasks: []galaxy.TaskPayload{{Type: 99}},
		},
	})
	env.mu.Unlock()

	assignments, err := env.client.Assignments(context.Background())
	if err != nil {
		t.Fatalf("fetch assignments: %v", err)
	}
	if len(assignments) != 1 || assignments[0].ID32 != 42 {
		t.Fatalf("malformed sibling must be skipped, got %+v", assignments)
	}
}

func TestMajorOrder(t *testing.T) {
	env := newTestEnv(t)
	mo, err := env.client.MajorOrder(context.Background())
	if err != nil {
		t.Fatalf("fetch major order: %v", err)
	}
	if mo == nil || mo.Settings.Title != "MAJOR ORDER" {
		t.Fatalf("unexpected major order: %+v", mo)
	}
	want := time.Unix(testWarStart+5000+3600, 0).UTC()
	if !mo.Expires.Equal(want) {
		t.Fatalf("expiry: got %v, want %v", mo.Expires, want)
	}

	env.mu.Lock()
	env.assignments = nil
	env.mu.Unlock()
	mo, err = env.client.MajorOrder(context.Background())
	if err != nil {
		t.Fatalf("fetch with no orders: %v", err)
	}
	if mo != nil {
		t.Fatalf("no active order must yield nil, got %+v", mo)
	}
}

func TestSteamNewsSorted(t *testing.T) {
	env := newTestEnv(t)
	news, err := env.client.SteamNews(context.Background())
	if err != nil {
		t.Fatalf("fetch news: %v", err)
	}
	if len(news) != 2 || news[0].ID != "1" || news[1].ID != "2" {
		t.Fatalf("expected oldest first, got %+v", news)
	}
	latest, err := env.client.LatestSteamNews(context.Background())
	if err != nil {
		t.Fatalf("fetch latest: %v", err)
	}
	if latest == nil || latest.ID != "2" {
		t.Fatalf("expected newest entry, got %+v", latest)
	}
}

func TestCampaignForPlanetAbsent(t *testing.T) {
	env := newTestEnv(t)
	campaign, err := env.client.CampaignForPlanet(context.Background(), 12)
	if err != nil {
		t.Fatalf("probe must not error on absence: %v", err)
	}
	if campaign != nil {
		t.Fatalf("expected nil for planet without campaign, got %+v", campaign)
	}

	campaign, err = env.client.CampaignForPlanet(context.Background(), 7)
	if err != nil {
		t.Fatalf("probe: %v", err)
	}
	if campaign == nil || campaign.ID != 5 {
		t.Fatalf("expected campaign 5, got %+v", campaign)
	}
}

func TestPlanetStatusMissingIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.client.PlanetStatusByIndex(context.Background(), 12)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPlanetStatistics(t *testing.T) {
	env := newTestEnv(t)
	stats, err := env.client.PlanetStatistics(context.Background(), 7)
	if err != nil {
		t.Fatalf("fetch planet statistics: %v", err)
	}
	if stats == nil || stats.MissionsWon != 100 {
		t.Fatalf("unexpected statistics: %+v", stats)
	}

	stats, err = env.client.PlanetStatistics(context.Background(), 12)
	if err != nil {
		t.Fatalf("absent breakdown must not error: %v", err)
	}
	if stats != nil {
		t.Fatalf("expected nil for index without breakdown, got %+v", stats)
	}
}

func TestCampaignByID(t *testing.T) {
	env := newTestEnv(t)
	campaign, err := env.client.Campaign(context.Background(), 5)
	if err != nil {
		t.Fatalf("fetch campaign: %v", err)
	}
	if campaign.PlanetIndex != 7 {
		t.Fatalf("unexpected campaign: %+v", campaign)
	}

	_, err = env.client.Campaign(context.Background(), 99)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPlanetEvents(t *testing.T) {
	env := newTestEnv(t)
	planets, err := env.client.PlanetEvents(context.Background())
	if err != nil {
		t.Fatalf("fetch planet events: %v", err)
	}
	if len(planets) != 1 || planets[0].Name != "Mort" {
		t.Fatalf("unexpected planets: %+v", planets)
	}
}

func TestCollectionSkipsWireMalformedElement(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/v1/campaigns", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		// Second element carries a string where an integer belongs.
		w.Write([]byte(`[{"id":5,"planetIndex":7,"type":0,"count":2},{"id":"bogus"}]`))
	})
	srv := httptest.NewServer(r)
	defer srv.Close()
	c := New(Config{BaseURL: srv.URL, Retries: 1})

	campaigns, err := c.Campaigns(context.Background())
	if err != nil {
		t.Fatalf("one bad element must not abort the listing: %v", err)
	}
	if len(campaigns) != 1 || campaigns[0].ID != 5 {
		t.Fatalf("expected the well-formed sibling, got %+v", campaigns)
	}
}

func TestNegativeRetriesMeanSingleAttempt(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		mu.Lock()
		calls++
		mu.Unlock()
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, Retries: -1})
	if _, err := c.Planets(context.Background()); err == nil {
		t.Fatalf("expected error from failing upstream")
	}
	mu.Lock()
	defer mu.Unlock()
	if calls != 1 {
		t.Fatalf("negative retries must mean one attempt, got %d", calls)
	}
}

func TestLazyResolutionThroughClient(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	campaigns, err := env.client.Campaigns(ctx)
	if err != nil {
		t.Fatalf("fetch campaigns: %v", err)
	}
	if len(campaigns) != 1 {
		t.Fatalf("expected 1 campaign, got %d", len(campaigns))
	}
	pct, err := campaigns[0].LiberationPercent(ctx)
	if err != nil {
		t.Fatalf("liberation percent: %v", err)
	}
	if pct != 75.0 {
		t.Fatalf("expected 75.0, got %v", pct)
	}
}
