package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"helldive/galaxy"
)

// getList fetches a JSON array and decodes its elements one at a time. An
// element that fails to decode is skipped with a warning so wire-level
// malformation of one entry cannot abort its well-formed siblings.
func getList[T any](ctx context.Context, c *Client, endpoint string) ([]T, error) {
	var raw []json.RawMessage
	if err := c.get(ctx, endpoint, &raw); err != nil {
		return nil, err
	}
	out := make([]T, 0, len(raw))
	for i, msg := range raw {
		var v T
		if err := json.Unmarshal(msg, &v); err != nil {
			c.log.Warn("skipping malformed element", "endpoint", endpoint, "index", i, "err", err)
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

// Planets fetches the full planet listing, materialized in upstream order.
func (c *Client) Planets(ctx context.Context) ([]*galaxy.Planet, error) {
	raw, err := getList[galaxy.PlanetPayload](ctx, c, "api/v1/planets")
	if err != nil {
		return nil, err
	}
	out := make([]*galaxy.Planet, 0, len(raw))
	for _, p := range raw {
		out = append(out, galaxy.NewPlanet(c, p))
	}
	return out, nil
}

// PlanetEvents fetches the planets with an active event, such as a defense
// against an incoming attack.
func (c *Client) PlanetEvents(ctx context.Context) ([]*galaxy.Planet, error) {
	raw, err := getList[galaxy.PlanetPayload](ctx, c, "api/v1/planet-events")
	if err != nil {
		return nil, err
	}
	out := make([]*galaxy.Planet, 0, len(raw))
	for _, p := range raw {
		out = append(out, galaxy.NewPlanet(c, p))
	}
	return out, nil
}

// Planet fetches one planet by its canonical index. Returns ErrNotFound when
// the index is out of range.
func (c *Client) Planet(ctx context.Context, index int) (*galaxy.Planet, error) {
	var raw galaxy.PlanetPayload
	if err := c.get(ctx, fmt.Sprintf("api/v1/planets/%d", index), &raw); err != nil {
		return nil, err
	}
	return galaxy.NewPlanet(c, raw), nil
}

// Status fetches the live war snapshot, including the authoritative game
// clock reading.
func (c *Client) Status(ctx context.Context) (*galaxy.Status, error) {
	var raw galaxy.StatusPayload
	if err := c.get(ctx, "api/v1/war/status", &raw); err != nil {
		return nil, err
	}
	return galaxy.NewStatus(c, raw), nil
}

// WarInfo fetches the static war layout.
func (c *Client) WarInfo(ctx context.Context) (*galaxy.WarInfo, error) {
	var raw galaxy.WarInfoPayload
	if err := c.get(ctx, "api/v1/war/info", &raw); err != nil {
		return nil, err
	}
	return galaxy.NewWarInfo(c, raw), nil
}

// Campaigns fetches all active campaigns.
func (c *Client) Campaigns(ctx context.Context) ([]*galaxy.Campaign, error) {
	raw, err := getList[galaxy.CampaignPayload](ctx, c, "api/v1/campaigns")
	if err != nil {
		return nil, err
	}
	out := make([]*galaxy.Campaign, 0, len(raw))
	for _, p := range raw {
		out = append(out, galaxy.NewCampaign(c, p))
	}
	return out, nil
}

// Campaign fetches one campaign by ID. Returns ErrNotFound when no campaign
// with that ID is active.
func (c *Client) Campaign(ctx context.Context, id int) (*galaxy.Campaign, error) {
	var raw galaxy.CampaignPayload
	if err := c.get(ctx, fmt.Sprintf("api/v1/campaigns/%d", id), &raw); err != nil {
		return nil, err
	}
	return galaxy.NewCampaign(c, raw), nil
}

// Assignments fetches the current major orders. The game clock is read once
// for the whole batch; a malformed element is skipped without aborting its
// siblings.
func (c *Client) Assignments(ctx context.Context) ([]*galaxy.Assignment, error) {
	clock, err := c.GameClock(ctx)
	if err != nil {
		return nil, err
	}
	raw, err := getList[galaxy.AssignmentPayload](ctx, c, "api/v1/assignments")
	if err != nil {
		return nil, err
	}
	out := make([]*galaxy.Assignment, 0, len(raw))
	for _, p := range raw {
		a, err := galaxy.NewAssignment(c, p, clock)
		if err != nil {
			var decodeErr *galaxy.DecodeError
			if errors.As(err, &decodeErr) {
				c.log.Warn("skipping malformed assignment", "id", p.ID32, "err", err)
				continue
			}
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

// Assignment fetches one major order by ID.
func (c *Client) Assignment(ctx context.Context, id int64) (*galaxy.Assignment, error) {
	clock, err := c.GameClock(ctx)
	if err != nil {
		return nil, err
	}
	var raw galaxy.AssignmentPayload
	if err := c.get(ctx, fmt.Sprintf("api/v1/assignments/%d", id), &raw); err != nil {
		return nil, err
	}
	return galaxy.NewAssignment(c, raw, clock)
}

// MajorOrder returns the currently active major order, or nil when there is
// none.
func (c *Client) MajorOrder(ctx context.Context) (*galaxy.Assignment, error) {
	assignments, err := c.Assignments(ctx)
	if err != nil {
		return nil, err
	}
	if len(assignments) == 0 {
		return nil, nil
	}
	return assignments[0], nil
}

// Dispatches fetches all in-game news, ordered oldest to newest. Timestamps
// are reconciled with one game-clock reading per fetch.
func (c *Client) Dispatches(ctx context.Context) ([]*galaxy.Dispatch, error) {
	clock, err := c.GameClock(ctx)
	if err != nil {
		return nil, err
	}
	raw, err := getList[galaxy.DispatchPayload](ctx, c, "api/v1/dispatches")
	if err != nil {
		return nil, err
	}
	out := make([]*galaxy.Dispatch, 0, len(raw))
	for _, p := range raw {
		out = append(out, galaxy.NewDispatch(p, clock))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Published.Before(out[j].Published) })
	return out, nil
}

// LatestDispatch returns the newest dispatch, or nil when the feed is empty.
func (c *Client) LatestDispatch(ctx context.Context) (*galaxy.Dispatch, error) {
	dispatches, err := c.Dispatches(ctx)
	if err != nil {
		return nil, err
	}
	if len(dispatches) == 0 {
		return nil, nil
	}
	return dispatches[len(dispatches)-1], nil
}

// SteamNews fetches the patch-note feed, oldest to newest.
func (c *Client) SteamNews(ctx context.Context) ([]*galaxy.SteamNews, error) {
	raw, err := getList[galaxy.SteamNewsPayload](ctx, c, "api/v1/steam")
	if err != nil {
		return nil, err
	}
	out := make([]*galaxy.SteamNews, 0, len(raw))
	for _, p := range raw {
		out = append(out, galaxy.NewSteamNews(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Published.Before(out[j].Published) })
	return out, nil
}

// LatestSteamNews returns the newest patch note, or nil when the feed is
// empty.
func (c *Client) LatestSteamNews(ctx context.Context) (*galaxy.SteamNews, error) {
	news, err := c.SteamNews(ctx)
	if err != nil {
		return nil, err
	}
	if len(news) == 0 {
		return nil, nil
	}
	return news[len(news)-1], nil
}

// Statistics fetches galaxy-wide counters plus the per-planet breakdown.
func (c *Client) Statistics(ctx context.Context) (*galaxy.Statistics, error) {
	var raw galaxy.StatisticsPayload
	if err := c.get(ctx, "api/v1/stats", &raw); err != nil {
		return nil, err
	}
	return galaxy.NewStatistics(c, raw), nil
}

// PlanetStatistics returns one planet's counters, nil when the breakdown has
// no entry for the index.
func (c *Client) PlanetStatistics(ctx context.Context, index int) (*galaxy.PlanetStatistics, error) {
	stats, err := c.Statistics(ctx)
	if err != nil {
		return nil, err
	}
	return stats.PlanetStatistics(index), nil
}

// GameClock derives a fresh game clock: war start epoch plus the current
// authoritative game-time reading. It is never cached across calls; the
// server's clock keeps advancing between requests, and a stale reading would
// drift every derived timestamp by the elapsed wall time. A failed status
// fetch fails the conversion outright.
func (c *Client) GameClock(ctx context.Context) (galaxy.GameClock, error) {
	status, err := c.Status(ctx)
	if err != nil {
		return galaxy.GameClock{}, err
	}
	info, err := c.WarInfo(ctx)
	if err != nil {
		return galaxy.GameClock{}, err
	}
	return galaxy.GameClock{Base: info.StartDate.Add(time.Duration(status.Time) * time.Second)}, nil
}

// --- galaxy.Resolver ---

// PlanetByIndex implements galaxy.Resolver.
func (c *Client) PlanetByIndex(ctx context.Context, index int) (*galaxy.Planet, error) {
	return c.Planet(ctx, index)
}

// PlanetStatusByIndex implements galaxy.Resolver. A planet missing from the
// status snapshot is a not-found, not an absence: every known planet has a
// live status.
func (c *Client) PlanetStatusByIndex(ctx context.Context, index int) (*galaxy.PlanetStatus, error) {
	status, err := c.Status(ctx)
	if err != nil {
		return nil, err
	}
	if ps := status.PlanetStatus(index); ps != nil {
		return ps, nil
	}
	return nil, fmt.Errorf("planet status %d: %w", index, ErrNotFound)
}

// CampaignForPlanet implements galaxy.Resolver. Returns nil without error
// when the planet has no active campaign; callers probe this routinely.
func (c *Client) CampaignForPlanet(ctx context.Context, index int) (*galaxy.Campaign, error) {
	campaigns, err := c.Campaigns(ctx)
	if err != nil {
		return nil, err
	}
	for _, campaign := range campaigns {
		if campaign.PlanetIndex == index {
			return campaign, nil
		}
	}
	return nil, nil
}

// FixTimestamp implements galaxy.Resolver: relative offset to absolute time
// via a freshly derived game clock.
func (c *Client) FixTimestamp(ctx context.Context, relative int64) (time.Time, error) {
	clock, err := c.GameClock(ctx)
	if err != nil {
		return time.Time{}, err
	}
	return clock.Absolute(relative), nil
}
