// Package prompt transforms a normalized match record into the generation
// prompt. It is a pure string transformation with no I/O.
package prompt

import (
	"fmt"
	"strings"

	"storygen/internal/core"
)

// Persona is the standing brief for the model. It primes punchy,
// visual-first copy rather than long-form journalism.
const Persona = "You are an expert sports content writer specialising in Instagram and " +
	"Snapchat Stories for a B2B sports media platform. Your writing is bold, " +
	"punchy, and visual-first. You write for fans who are scrolling fast - " +
	"every word must earn its place. You never use cliches like 'at the end " +
	"of the day' or 'gave 110 percent'."

const (
	toneWin = "Tone: Celebratory and bold. This is a moment to hype the fanbase. " +
		"Use strong, active language. Make the reader feel the win."
	toneLoss = "Tone: Honest and forward-looking. Acknowledge the result directly - " +
		"don't sugarcoat it - but end on a note of resilience or next-game " +
		"motivation. Fans respect honesty."
	toneDraw = "Tone: Measured but engaging. A draw has drama in it - find it. " +
		"Focus on a standout moment or stat that makes the story worth telling."
)

// Build constructs the complete prompt for one match. The output-format
// section is the contract the story validator depends on: a bare JSON object
// with the five top-level keys and tagged slides.
func Build(match core.MatchRecord) string {
	sections := []string{
		Persona,
		matchContext(match),
		task(match.Result),
		outputFormat(match),
	}
	return strings.Join(sections, "\n\n")
}

func matchContext(match core.MatchRecord) string {
	location := "on the road"
	if match.IsHome {
		location = "at home"
	}

	var b strings.Builder
	b.WriteString("Here is the match data you will write about:\n\n")
	fmt.Fprintf(&b, "- Team: %s\n", match.TeamName)
	fmt.Fprintf(&b, "- Sport: %s\n", match.Sport)
	fmt.Fprintf(&b, "- League: %s\n", match.League)
	fmt.Fprintf(&b, "- Opponent: %s\n", match.Opponent)
	fmt.Fprintf(&b, "- Result: %s\n", match.Result)
	fmt.Fprintf(&b, "- Score: %s %d - %d %s\n", match.TeamName, match.OurScore, match.OppScore, match.Opponent)
	fmt.Fprintf(&b, "- Date: %s\n", match.Date)
	fmt.Fprintf(&b, "- Venue: %s\n", match.Venue)
	fmt.Fprintf(&b, "- Location: %s\n", location)

	if detail := extraDetail(match); detail != "" {
		b.WriteString(detail)
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

// extraDetail builds a sport-specific line: goal scorers for football when
// the provider has them, point margin for basketball.
func extraDetail(match core.MatchRecord) string {
	switch {
	case match.Sport == "football" && match.GoalDetailsHome != "":
		away := match.GoalDetailsAway
		if away == "" {
			away = "none"
		}
		return fmt.Sprintf("Home goal details: %s. Away goal details: %s.", match.GoalDetailsHome, away)
	case match.Sport == "basketball":
		margin := match.OurScore - match.OppScore
		if margin < 0 {
			margin = -margin
		}
		return fmt.Sprintf("Margin of victory/defeat: %d points.", margin)
	default:
		return ""
	}
}

func task(result core.Result) string {
	tone := toneDraw
	switch result {
	case core.ResultWin:
		tone = toneWin
	case core.ResultLoss:
		tone = toneLoss
	}

	return fmt.Sprintf(`Your task is to generate a 4-slide Instagram/Snapchat Story about this match.

%s

The 4 slides must be:
1. HEADLINE slide - A short punchy headline (max 5 words, ALL CAPS) and a
   one-sentence subtext (max 15 words) that expands on it.
2. STAT slide - Focus on the final score. Include a stat_label, stat_value,
   and one narrative sentence (max 20 words) giving context.
3. STAT slide - Pick the most compelling secondary stat or moment from the
   data (margin, a scorer, a comeback, a shutout, etc). Same structure.
4. CTA slide - A call-to-action for the team's fanbase. The text field should
   be an account handle style label (e.g. "More from Lakeshow Nation"), and
   subtext should be a one-line follow/engage prompt with a relevant emoji.

Important constraints:
- Headlines must feel like a back-page newspaper splash, not a press release.
- Stat values should be formatted for visual impact (e.g. "124 - 104", "2 - 0").
- Never start two slides with the same word.
- Write specifically about THIS match. Do not use generic filler content.`, tone)
}

func outputFormat(match core.MatchRecord) string {
	return fmt.Sprintf(`Return ONLY a valid JSON object. No explanation, no markdown, no code fences.
Start your response with { and end with }.

The JSON must follow this exact schema:

{
  "team": %q,
  "match": "<event name>",
  "date": %q,
  "result": %q,
  "slides": [
    {
      "type": "headline",
      "text": "<MAX 5 WORDS ALL CAPS>",
      "subtext": "<max 15 words>"
    },
    {
      "type": "stat",
      "stat_label": "<short label e.g. FINAL SCORE>",
      "stat_value": "<the value e.g. 124 - 104>",
      "narrative": "<max 20 words of context>"
    },
    {
      "type": "stat",
      "stat_label": "<short label>",
      "stat_value": "<the value>",
      "narrative": "<max 20 words of context>"
    },
    {
      "type": "cta",
      "text": "<fanbase label>",
      "subtext": "<one-line engage prompt with emoji>"
    }
  ]
}`, match.TeamName, match.Date, match.Result)
}
