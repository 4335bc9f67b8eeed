package core

import "time"

// Result is the outcome of a match from the tracked team's perspective.
type Result string

const (
	ResultWin  Result = "WIN"
	ResultLoss Result = "LOSS"
	ResultDraw Result = "DRAW"
)

// SlideType discriminates the shape of a Slide. The validator rejects any
// tag outside this set, and the renderer dispatches on it. A new slide type
// must be added to both in lockstep.
type SlideType string

const (
	SlideHeadline SlideType = "headline"
	SlideStat     SlideType = "stat"
	SlideCTA      SlideType = "cta"
)

// MatchRecord is the normalized description of a team's most recent match,
// produced by the fetch package. Immutable once constructed.
type MatchRecord struct {
	ID              string    `json:"id"`                // Unique identifier for this fetch
	TeamKey         string    `json:"team_key"`          // Configured team key (e.g. "lakers")
	TeamName        string    `json:"team_name"`         // Display name of the tracked team
	Sport           string    `json:"sport"`             // Sport name (e.g. "basketball")
	League          string    `json:"league"`            // League name (e.g. "NBA")
	EventName       string    `json:"event_name"`        // Event title from the data provider
	Date            string    `json:"date"`              // Match date as reported by the provider
	Venue           string    `json:"venue"`             // Venue name
	HomeTeam        string    `json:"home_team"`         // Home side
	AwayTeam        string    `json:"away_team"`         // Away side
	HomeScore       int       `json:"home_score"`        // Home side score
	AwayScore       int       `json:"away_score"`        // Away side score
	OurScore        int       `json:"our_score"`         // Tracked team's score
	OppScore        int       `json:"opp_score"`         // Opponent's score
	Opponent        string    `json:"opponent"`          // Opponent display name
	Result          Result    `json:"result"`            // WIN/LOSS/DRAW from our perspective
	IsHome          bool      `json:"is_home"`           // Whether the tracked team played at home
	GoalDetailsHome string    `json:"goal_details_home"` // Sport-specific detail (football only, may be empty)
	GoalDetailsAway string    `json:"goal_details_away"` // Sport-specific detail (football only, may be empty)
	Status          string    `json:"status"`            // Match status string from the provider
	DateFetched     time.Time `json:"date_fetched"`      // When this record was fetched
}

// Slide is one unit of content within a Story, tagged by Type. Only the
// fields required by the declared type are populated; the rest are omitted
// when serialized.
type Slide struct {
	Type      SlideType `json:"type"`
	Text      string    `json:"text,omitempty"`       // headline, cta
	Subtext   string    `json:"subtext,omitempty"`    // headline, cta
	StatLabel string    `json:"stat_label,omitempty"` // stat
	StatValue string    `json:"stat_value,omitempty"` // stat
	Narrative string    `json:"narrative,omitempty"`  // stat
}

// Story is the validated structured record describing one match's generated
// social content. It is constructed exactly once per pipeline run by the
// story validator and is immutable afterwards.
type Story struct {
	Team   string  `json:"team"`   // Team display name as written by the model
	Match  string  `json:"match"`  // Event name as written by the model
	Date   string  `json:"date"`   // Match date as written by the model
	Result string  `json:"result"` // WIN/LOSS/DRAW as written by the model
	Slides []Slide `json:"slides"` // Ordered slides; expected length 4, not enforced
}

// RequiredSlideFields maps each known slide type to the JSON fields a slide
// of that type must carry. This table is the schema contract shared by the
// validator and the renderer.
var RequiredSlideFields = map[SlideType][]string{
	SlideHeadline: {"text", "subtext"},
	SlideStat:     {"stat_label", "stat_value", "narrative"},
	SlideCTA:      {"text", "subtext"},
}

// KnownSlideType reports whether tag is one of the recognized slide types.
func KnownSlideType(tag string) bool {
	_, ok := RequiredSlideFields[SlideType(tag)]
	return ok
}
