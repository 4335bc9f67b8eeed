// Package fetch retrieves and normalizes recent match data from
// TheSportsDB. It knows nothing about prompts, models, or HTML.
package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"storygen/internal/config"
	"storygen/internal/core"
	"storygen/internal/logger"
)

const defaultTimeout = 10 * time.Second

// utf8BOM is prepended by some TheSportsDB responses and breaks json.Unmarshal.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Client fetches match data for the configured teams.
type Client struct {
	baseURL    string
	teams      map[string]config.Team
	httpClient *http.Client
}

// NewClient creates a match data client from the sports configuration.
func NewClient(cfg config.Sports) *Client {
	timeout := defaultTimeout
	if cfg.Timeout != "" {
		parsed, err := time.ParseDuration(cfg.Timeout)
		if err != nil {
			logger.Warnf("invalid sports.timeout %q, using default %s", cfg.Timeout, defaultTimeout)
		} else {
			timeout = parsed
		}
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		teams:      cfg.Teams,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// lastEventsResponse mirrors the relevant part of the eventslast.php payload.
// Scores arrive inconsistently typed (string, number, or null), so they are
// decoded as raw JSON and normalized by scoreValue.
type lastEventsResponse struct {
	Results []rawEvent `json:"results"`
}

type rawEvent struct {
	StrEvent           string          `json:"strEvent"`
	DateEvent          string          `json:"dateEvent"`
	StrVenue           string          `json:"strVenue"`
	StrHomeTeam        string          `json:"strHomeTeam"`
	StrAwayTeam        string          `json:"strAwayTeam"`
	IntHomeScore       json.RawMessage `json:"intHomeScore"`
	IntAwayScore       json.RawMessage `json:"intAwayScore"`
	StrHomeGoalDetails string          `json:"strHomeGoalDetails"`
	StrAwayGoalDetails string          `json:"strAwayGoalDetails"`
	StrStatus          string          `json:"strStatus"`
}

// FetchLastMatch returns a normalized record for the team's most recent
// match. The team key must be one of the configured teams.
func (c *Client) FetchLastMatch(ctx context.Context, teamKey string) (core.MatchRecord, error) {
	team, ok := c.teams[teamKey]
	if !ok {
		return core.MatchRecord{}, fmt.Errorf("unknown team %q, choose from: %s", teamKey, strings.Join(c.TeamKeys(), ", "))
	}

	url := fmt.Sprintf("%s/eventslast.php?id=%s", c.baseURL, team.ID)
	logger.Infof("fetching last match for %s", team.Name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return core.MatchRecord{}, fmt.Errorf("failed to build request for %s: %w", url, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return core.MatchRecord{}, fmt.Errorf("failed to fetch match data from TheSportsDB: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return core.MatchRecord{}, fmt.Errorf("failed to fetch match data from %s: status code %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return core.MatchRecord{}, fmt.Errorf("failed to read match data response: %w", err)
	}

	var payload lastEventsResponse
	if err := json.Unmarshal(bytes.TrimPrefix(body, utf8BOM), &payload); err != nil {
		return core.MatchRecord{}, fmt.Errorf("failed to decode match data response: %w", err)
	}

	if len(payload.Results) == 0 {
		return core.MatchRecord{}, fmt.Errorf("no recent match data found for %s; TheSportsDB may not have updated results yet", team.Name)
	}

	record := normalizeEvent(payload.Results[0], teamKey, team)
	logger.Infof("match data fetched: %s (%s)", record.EventName, record.Date)
	return record, nil
}

// TeamKeys returns the configured team keys, sorted.
func (c *Client) TeamKeys() []string {
	keys := make([]string, 0, len(c.teams))
	for key := range c.teams {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// normalizeEvent reshapes a raw provider event into the clean contract the
// prompt builder consumes: scores as ints, result from the tracked team's
// perspective, home/away resolved.
func normalizeEvent(raw rawEvent, teamKey string, team config.Team) core.MatchRecord {
	homeScore := scoreValue(raw.IntHomeScore)
	awayScore := scoreValue(raw.IntAwayScore)
	isHome := strings.EqualFold(team.APIName, raw.StrHomeTeam)

	ourScore, oppScore := awayScore, homeScore
	opponent := raw.StrHomeTeam
	if isHome {
		ourScore, oppScore = homeScore, awayScore
		opponent = raw.StrAwayTeam
	}

	result := core.ResultDraw
	switch {
	case ourScore > oppScore:
		result = core.ResultWin
	case ourScore < oppScore:
		result = core.ResultLoss
	}

	return core.MatchRecord{
		ID:              uuid.NewString(),
		TeamKey:         teamKey,
		TeamName:        team.Name,
		Sport:           team.Sport,
		League:          team.League,
		EventName:       orDefault(raw.StrEvent, "Unknown Match"),
		Date:            orDefault(raw.DateEvent, "Unknown Date"),
		Venue:           orDefault(raw.StrVenue, "Unknown Venue"),
		HomeTeam:        raw.StrHomeTeam,
		AwayTeam:        raw.StrAwayTeam,
		HomeScore:       homeScore,
		AwayScore:       awayScore,
		OurScore:        ourScore,
		OppScore:        oppScore,
		Opponent:        opponent,
		Result:          result,
		IsHome:          isHome,
		GoalDetailsHome: raw.StrHomeGoalDetails,
		GoalDetailsAway: raw.StrAwayGoalDetails,
		Status:          orDefault(raw.StrStatus, "Unknown"),
		DateFetched:     time.Now().UTC(),
	}
}

// scoreValue normalizes a score field that may arrive as "2", 2, or null.
func scoreValue(raw json.RawMessage) int {
	if len(raw) == 0 || string(raw) == "null" {
		return 0
	}

	text := strings.Trim(string(raw), `"`)
	value, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0
	}
	return value
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
