// Package story turns raw text returned by the generation model into a
// validated core.Story. It is the quality gate between the AI layer and the
// output layer: markdown fences and surrounding prose are tolerated, but a
// response that fails to decode or drifts from the slide schema is rejected
// with a typed, diagnosable error.
package story

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"storygen/internal/core"
	"storygen/internal/logger"
)

const (
	// DefaultExpectedSlides is the slide count the prompt asks the model for.
	DefaultExpectedSlides = 4

	rawExcerptLen     = 200
	cleanedExcerptLen = 300
)

// requiredTopLevel lists the keys every story object must carry, in the
// order they are checked.
var requiredTopLevel = []string{"team", "match", "date", "result", "slides"}

// fenceRegexp matches a markdown code-fence delimiter, optionally tagged
// with a language name, plus any whitespace that follows it.
var fenceRegexp = regexp.MustCompile("```[a-zA-Z]*\\s*")

// Validator converts untrusted model output into a core.Story. It holds no
// state across calls and is safe for concurrent use.
type Validator struct {
	expectedSlides int
}

// NewValidator returns a Validator that warns (without failing) when the
// slide count differs from expectedSlides.
func NewValidator(expectedSlides int) *Validator {
	if expectedSlides <= 0 {
		expectedSlides = DefaultExpectedSlides
	}
	return &Validator{expectedSlides: expectedSlides}
}

// Validate cleans raw model output, decodes it as JSON, and checks it
// against the story schema. It returns the immutable Story on success, or
// one of the typed errors in errors.go on the first problem found.
func (v *Validator) Validate(raw string) (*core.Story, error) {
	cleaned, err := clean(raw)
	if err != nil {
		return nil, err
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(cleaned), &decoded); err != nil {
		return nil, &MalformedJSONError{Err: err, Excerpt: truncate(cleaned, cleanedExcerptLen)}
	}

	return v.buildStory(decoded)
}

// clean strips markdown fences and surrounding prose from raw model output,
// returning the substring from the first '{' through the last '}'. If either
// brace is missing, or the last '}' precedes the first '{', there is no
// object to extract and a NoJSONError is returned. The
// brace-span heuristic assumes no stray braces outside the JSON object; if
// prose noise defeats it, decoding fails with a clear parse error instead of
// producing wrong data.
func clean(raw string) (string, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = fenceRegexp.ReplaceAllString(cleaned, "")

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end == -1 || start > end {
		return "", &NoJSONError{Excerpt: truncate(raw, rawExcerptLen)}
	}

	return strings.TrimSpace(cleaned[start : end+1]), nil
}

// buildStory applies the schema checks in fixed order (first failure wins)
// and constructs the Story.
func (v *Validator) buildStory(decoded map[string]any) (*core.Story, error) {
	for _, field := range requiredTopLevel {
		if _, ok := decoded[field]; !ok {
			return nil, &MissingFieldError{Field: field, Present: keysOf(decoded)}
		}
	}

	rawSlides, ok := decoded["slides"].([]any)
	if !ok {
		return nil, &WrongTypeError{Field: "slides", Expected: "array", Actual: jsonTypeName(decoded["slides"])}
	}

	// Count drift is advisory only: rendering degrades gracefully with
	// fewer or more slides, so it must not block an otherwise-valid story.
	if len(rawSlides) != v.expectedSlides {
		logger.Warnf("expected %d slides, got %d. Continuing.", v.expectedSlides, len(rawSlides))
	}

	slides := make([]core.Slide, 0, len(rawSlides))
	for i, rawSlide := range rawSlides {
		slide, err := buildSlide(i+1, rawSlide)
		if err != nil {
			return nil, err
		}
		slides = append(slides, slide)
	}

	return &core.Story{
		Team:   stringValue(decoded["team"]),
		Match:  stringValue(decoded["match"]),
		Date:   stringValue(decoded["date"]),
		Result: stringValue(decoded["result"]),
		Slides: slides,
	}, nil
}

// buildSlide validates one slide (position is 1-based) and converts it into
// a typed core.Slide.
func buildSlide(position int, raw any) (core.Slide, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return core.Slide{}, &WrongTypeError{
			Field:    fmt.Sprintf("slides[%d]", position),
			Expected: "object",
			Actual:   jsonTypeName(raw),
		}
	}

	tag := stringValue(obj["type"])
	if !core.KnownSlideType(tag) {
		return core.Slide{}, &UnknownSlideTypeError{
			Position: position,
			Value:    tag,
			Known:    knownSlideTypes(),
		}
	}

	slideType := core.SlideType(tag)
	for _, field := range core.RequiredSlideFields[slideType] {
		if _, ok := obj[field]; !ok {
			return core.Slide{}, &MissingSlideFieldError{
				Position:  position,
				SlideType: tag,
				Field:     field,
				Present:   keysOf(obj),
			}
		}
	}

	slide := core.Slide{Type: slideType}
	switch slideType {
	case core.SlideHeadline, core.SlideCTA:
		slide.Text = stringValue(obj["text"])
		slide.Subtext = stringValue(obj["subtext"])
	case core.SlideStat:
		slide.StatLabel = stringValue(obj["stat_label"])
		slide.StatValue = stringValue(obj["stat_value"])
		slide.Narrative = stringValue(obj["narrative"])
	}
	return slide, nil
}

// stringValue renders a decoded JSON value as a string. Model output is
// untrusted, so a field that should be a string may arrive as a number.
func stringValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

// jsonTypeName names the JSON shape a decoded value came from, for error
// messages.
func jsonTypeName(value any) string {
	switch value.(type) {
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T", value)
	}
}

// keysOf returns the keys of m sorted for stable error messages.
func keysOf(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// knownSlideTypes returns the known slide type tags, sorted.
func knownSlideTypes() []string {
	tags := make([]string, 0, len(core.RequiredSlideFields))
	for tag := range core.RequiredSlideFields {
		tags = append(tags, string(tag))
	}
	sort.Strings(tags)
	return tags
}

// truncate returns at most n bytes of s without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
