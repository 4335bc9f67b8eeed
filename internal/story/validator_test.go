package story

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"storygen/internal/core"
)

const validStoryJSON = `{
  "team": "Los Angeles Lakers",
  "match": "Los Angeles Lakers vs Boston Celtics",
  "date": "2025-01-01",
  "result": "WIN",
  "slides": [
    {"type": "headline", "text": "LAKERS STATEMENT WIN", "subtext": "A night the Garden will remember."},
    {"type": "stat", "stat_label": "FINAL SCORE", "stat_value": "124 - 104", "narrative": "Twenty points clear on the road."},
    {"type": "stat", "stat_label": "MARGIN", "stat_value": "20 PTS", "narrative": "Largest road win of the season."},
    {"type": "cta", "text": "More from Lakeshow Nation", "subtext": "Follow for every result 🏀"}
  ]
}`

func mustValidate(t *testing.T, raw string) *core.Story {
	t.Helper()
	s, err := NewValidator(4).Validate(raw)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	return s
}

func TestValidatePlainJSON(t *testing.T) {
	s := mustValidate(t, validStoryJSON)

	if s.Team != "Los Angeles Lakers" {
		t.Errorf("Expected team 'Los Angeles Lakers', got %q", s.Team)
	}
	if s.Result != "WIN" {
		t.Errorf("Expected result WIN, got %q", s.Result)
	}
	if len(s.Slides) != 4 {
		t.Fatalf("Expected 4 slides, got %d", len(s.Slides))
	}
	if s.Slides[0].Type != core.SlideHeadline {
		t.Errorf("Expected first slide headline, got %q", s.Slides[0].Type)
	}
	if s.Slides[1].StatValue != "124 - 104" {
		t.Errorf("Expected stat value '124 - 104', got %q", s.Slides[1].StatValue)
	}
	if s.Slides[3].Subtext != "Follow for every result 🏀" {
		t.Errorf("CTA subtext lost emoji: %q", s.Slides[3].Subtext)
	}
}

func TestValidateToleratesWrapping(t *testing.T) {
	// Every combination of fencing and surrounding prose must decode to the
	// same story as the bare JSON.
	wrappers := map[string]string{
		"fenced with language tag":    "```json\n%s\n```",
		"fenced without tag":          "```\n%s\n```",
		"preamble before bare JSON":   "Sure! Here is the story you asked for:\n%s",
		"preamble before fenced JSON": "Sure! Here's the JSON:\n```json\n%s\n```",
		"trailing prose":              "%s\nLet me know if you'd like a different tone.",
		"preamble and trailing prose": "Of course.\n%s\nHope this works for your feed.",
		"surrounding whitespace":      "\n\n   %s   \n\n",
	}

	want := mustValidate(t, validStoryJSON)

	for name, wrapper := range wrappers {
		t.Run(name, func(t *testing.T) {
			got := mustValidate(t, fmt.Sprintf(wrapper, validStoryJSON))
			if !reflect.DeepEqual(got, want) {
				t.Errorf("Wrapped input produced a different story.\ngot:  %+v\nwant: %+v", got, want)
			}
		})
	}
}

func TestValidateConcreteFencedScenario(t *testing.T) {
	raw := "Sure! ```json\n{\"team\":\"Lakers\",\"match\":\"Lakers vs Celtics\",\"date\":\"2025-01-01\",\"result\":\"WIN\",\"slides\":[{\"type\":\"headline\",\"text\":\"LAKERS WIN\",\"subtext\":\"A statement victory.\"}]}\n```"

	s := mustValidate(t, raw)
	if len(s.Slides) != 1 {
		t.Fatalf("Expected 1 slide, got %d", len(s.Slides))
	}
	if s.Slides[0].Type != core.SlideHeadline {
		t.Errorf("Expected headline slide, got %q", s.Slides[0].Type)
	}
	if s.Slides[0].Text != "LAKERS WIN" {
		t.Errorf("Expected text 'LAKERS WIN', got %q", s.Slides[0].Text)
	}
}

func TestValidateNoJSONFound(t *testing.T) {
	cases := map[string]string{
		"plain prose":       "I'm sorry, I can't produce a story for that match.",
		"empty":             "",
		"only open":         "some text { with no close",
		"only close":        "some text } with no open",
		"close before open": "oops} and later {",
		"fence no json":     "```\nnothing here\n```",
	}

	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewValidator(4).Validate(raw)
			var noJSON *NoJSONError
			if !errors.As(err, &noJSON) {
				t.Fatalf("Expected NoJSONError, got %v", err)
			}
			if raw != "" && !strings.Contains(noJSON.Excerpt, strings.TrimSpace(raw)[:1]) {
				t.Errorf("Excerpt should carry the original text, got %q", noJSON.Excerpt)
			}
		})
	}
}

func TestValidateNoJSONExcerptTruncated(t *testing.T) {
	raw := strings.Repeat("no braces here. ", 100)
	_, err := NewValidator(4).Validate(raw)

	var noJSON *NoJSONError
	if !errors.As(err, &noJSON) {
		t.Fatalf("Expected NoJSONError, got %v", err)
	}
	if len(noJSON.Excerpt) > rawExcerptLen {
		t.Errorf("Excerpt should be at most %d bytes, got %d", rawExcerptLen, len(noJSON.Excerpt))
	}
}

func TestValidateMalformedJSON(t *testing.T) {
	cases := map[string]string{
		"trailing comma": `{"team":"X","match":"Y","date":"Z","result":"WIN","slides":[],}`,
		"unquoted key":   `{team: "X"}`,
		"stray brace noise": `Here { is some prose
			{"team":"X"} and more prose }`,
	}

	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewValidator(4).Validate(raw)
			var malformed *MalformedJSONError
			if !errors.As(err, &malformed) {
				t.Fatalf("Expected MalformedJSONError, got %v", err)
			}
			if malformed.Err == nil {
				t.Error("MalformedJSONError should carry the parser error")
			}
			if malformed.Excerpt == "" {
				t.Error("MalformedJSONError should carry a cleaned-text excerpt")
			}
		})
	}
}

func TestValidateMissingTopLevelField(t *testing.T) {
	full := map[string]any{
		"team":   "X",
		"match":  "X vs Y",
		"date":   "2025-01-01",
		"result": "DRAW",
		"slides": []any{},
	}

	for _, missing := range []string{"team", "match", "date", "result", "slides"} {
		t.Run(missing, func(t *testing.T) {
			parts := make([]string, 0, len(full)-1)
			for key := range full {
				if key == missing {
					continue
				}
				if key == "slides" {
					parts = append(parts, `"slides":[]`)
				} else {
					parts = append(parts, fmt.Sprintf("%q:%q", key, full[key]))
				}
			}
			raw := "{" + strings.Join(parts, ",") + "}"

			_, err := NewValidator(4).Validate(raw)
			var missingField *MissingFieldError
			if !errors.As(err, &missingField) {
				t.Fatalf("Expected MissingFieldError, got %v", err)
			}
			if missingField.Field != missing {
				t.Errorf("Expected missing field %q, got %q", missing, missingField.Field)
			}
			if len(missingField.Present) != len(full)-1 {
				t.Errorf("Expected %d present keys, got %v", len(full)-1, missingField.Present)
			}
		})
	}
}

func TestValidateMissingFieldScenario(t *testing.T) {
	_, err := NewValidator(4).Validate(`{"team":"X"}`)

	var missingField *MissingFieldError
	if !errors.As(err, &missingField) {
		t.Fatalf("Expected MissingFieldError, got %v", err)
	}
	if missingField.Field != "match" {
		t.Errorf("Expected first missing field 'match', got %q", missingField.Field)
	}
	if !reflect.DeepEqual(missingField.Present, []string{"team"}) {
		t.Errorf("Expected present keys [team], got %v", missingField.Present)
	}
}

func TestValidateSlidesWrongShape(t *testing.T) {
	cases := map[string]struct {
		slides string
		actual string
	}{
		"mapping": {`{"type":"headline"}`, "object"},
		"scalar":  {`"headline"`, "string"},
		"number":  {`4`, "number"},
		"null":    {`null`, "null"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			raw := fmt.Sprintf(`{"team":"X","match":"Y","date":"Z","result":"WIN","slides":%s}`, tc.slides)
			_, err := NewValidator(4).Validate(raw)

			var wrongType *WrongTypeError
			if !errors.As(err, &wrongType) {
				t.Fatalf("Expected WrongTypeError, got %v", err)
			}
			if wrongType.Field != "slides" {
				t.Errorf("Expected field 'slides', got %q", wrongType.Field)
			}
			if wrongType.Expected != "array" || wrongType.Actual != tc.actual {
				t.Errorf("Expected array vs %s, got %s vs %s", tc.actual, wrongType.Expected, wrongType.Actual)
			}
		})
	}
}

func TestValidateUnknownSlideType(t *testing.T) {
	raw := `{"team":"X","match":"Y","date":"Z","result":"WIN","slides":[
		{"type":"headline","text":"T","subtext":"S"},
		{"type":"outro","text":"bye"}
	]}`

	_, err := NewValidator(4).Validate(raw)
	var unknown *UnknownSlideTypeError
	if !errors.As(err, &unknown) {
		t.Fatalf("Expected UnknownSlideTypeError, got %v", err)
	}
	if unknown.Position != 2 {
		t.Errorf("Expected 1-based position 2, got %d", unknown.Position)
	}
	if unknown.Value != "outro" {
		t.Errorf("Expected offending value 'outro', got %q", unknown.Value)
	}
}

func TestValidateSlideMissingTypeTag(t *testing.T) {
	raw := `{"team":"X","match":"Y","date":"Z","result":"WIN","slides":[{"text":"T","subtext":"S"}]}`

	_, err := NewValidator(4).Validate(raw)
	var unknown *UnknownSlideTypeError
	if !errors.As(err, &unknown) {
		t.Fatalf("Expected UnknownSlideTypeError for untagged slide, got %v", err)
	}
	if unknown.Position != 1 {
		t.Errorf("Expected position 1, got %d", unknown.Position)
	}
}

func TestValidateMissingSlideField(t *testing.T) {
	cases := []struct {
		name      string
		slide     string
		slideType string
		field     string
	}{
		{"stat missing narrative", `{"type":"stat","stat_label":"L","stat_value":"V"}`, "stat", "narrative"},
		{"headline missing subtext", `{"type":"headline","text":"T"}`, "headline", "subtext"},
		{"cta missing text", `{"type":"cta","subtext":"S"}`, "cta", "text"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw := fmt.Sprintf(`{"team":"X","match":"Y","date":"Z","result":"WIN","slides":[
				{"type":"headline","text":"T","subtext":"S"},
				{"type":"headline","text":"T","subtext":"S"},
				%s
			]}`, tc.slide)

			_, err := NewValidator(4).Validate(raw)
			var missing *MissingSlideFieldError
			if !errors.As(err, &missing) {
				t.Fatalf("Expected MissingSlideFieldError, got %v", err)
			}
			if missing.Position != 3 {
				t.Errorf("Expected 1-based position 3, got %d", missing.Position)
			}
			if missing.SlideType != tc.slideType {
				t.Errorf("Expected slide type %q, got %q", tc.slideType, missing.SlideType)
			}
			if missing.Field != tc.field {
				t.Errorf("Expected missing field %q, got %q", tc.field, missing.Field)
			}
		})
	}
}

func TestValidateNonObjectSlide(t *testing.T) {
	raw := `{"team":"X","match":"Y","date":"Z","result":"WIN","slides":["headline"]}`

	_, err := NewValidator(4).Validate(raw)
	var wrongType *WrongTypeError
	if !errors.As(err, &wrongType) {
		t.Fatalf("Expected WrongTypeError for scalar slide, got %v", err)
	}
	if wrongType.Field != "slides[1]" {
		t.Errorf("Expected field 'slides[1]', got %q", wrongType.Field)
	}
}

func TestValidateSlideCountAdvisoryOnly(t *testing.T) {
	headline := `{"type":"headline","text":"T","subtext":"S"}`

	for _, count := range []int{1, 3, 5} {
		t.Run(fmt.Sprintf("%d slides", count), func(t *testing.T) {
			slides := make([]string, count)
			for i := range slides {
				slides[i] = headline
			}
			raw := fmt.Sprintf(`{"team":"X","match":"Y","date":"Z","result":"WIN","slides":[%s]}`,
				strings.Join(slides, ","))

			s := mustValidate(t, raw)
			if len(s.Slides) != count {
				t.Errorf("Expected %d slides preserved, got %d", count, len(s.Slides))
			}
		})
	}
}

func TestValidateIdempotent(t *testing.T) {
	raw := "```json\n" + validStoryJSON + "\n```"

	first := mustValidate(t, raw)
	second := mustValidate(t, raw)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Two validations of the same input differ.\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestValidateCoercesNonStringScalars(t *testing.T) {
	raw := `{"team":"X","match":"Y","date":20250101,"result":"WIN","slides":[
		{"type":"stat","stat_label":"SCORE","stat_value":124,"narrative":"big"}
	]}`

	s := mustValidate(t, raw)
	if s.Date != "20250101" && s.Date != "2.0250101e+07" {
		// encoding/json decodes numbers as float64; large integers keep
		// their plain form under %v formatting.
		t.Errorf("Unexpected date coercion: %q", s.Date)
	}
	if s.Slides[0].StatValue != "124" {
		t.Errorf("Expected stat value coerced to '124', got %q", s.Slides[0].StatValue)
	}
}

func TestNewValidatorDefaultsExpectedSlides(t *testing.T) {
	v := NewValidator(0)
	if v.expectedSlides != DefaultExpectedSlides {
		t.Errorf("Expected default of %d, got %d", DefaultExpectedSlides, v.expectedSlides)
	}
}
