// Package pipeline sequences the story generation stages for one team:
// fetch -> compose -> generate -> validate -> persist -> render. It contains
// no business logic of its own; each stage lives in its own package.
package pipeline

import (
	"context"
	"fmt"

	"storygen/internal/core"
	"storygen/internal/logger"
	"storygen/internal/persist"
	"storygen/internal/prompt"
	"storygen/internal/render"
	"storygen/internal/story"
)

// MatchFetcher retrieves a team's most recent match.
type MatchFetcher interface {
	FetchLastMatch(ctx context.Context, teamKey string) (core.MatchRecord, error)
}

// StoryGenerator produces raw model text from a prompt.
type StoryGenerator interface {
	GenerateStory(ctx context.Context, prompt string) (string, error)
}

// Result summarizes one successful pipeline run.
type Result struct {
	TeamKey  string
	TeamName string
	Match    string
	Outcome  string
	JSONPath string
	HTMLPath string
}

// Pipeline drives the linear story generation sequence.
type Pipeline struct {
	fetcher   MatchFetcher
	generator StoryGenerator
	validator *story.Validator
	outputDir string
}

// New assembles a pipeline from its stage implementations.
func New(fetcher MatchFetcher, generator StoryGenerator, validator *story.Validator, outputDir string) *Pipeline {
	return &Pipeline{
		fetcher:   fetcher,
		generator: generator,
		validator: validator,
		outputDir: outputDir,
	}
}

// Run executes the full sequence for one team. Every stage failure aborts
// this run only; the caller decides whether other teams still proceed.
func (p *Pipeline) Run(ctx context.Context, teamKey string) (Result, error) {
	match, err := p.fetcher.FetchLastMatch(ctx, teamKey)
	if err != nil {
		return Result{}, fmt.Errorf("fetching match data: %w", err)
	}

	raw, err := p.generator.GenerateStory(ctx, prompt.Build(match))
	if err != nil {
		return Result{}, fmt.Errorf("generating story: %w", err)
	}

	validated, err := p.validator.Validate(raw)
	if err != nil {
		return Result{}, fmt.Errorf("validating story: %w", err)
	}

	jsonPath, err := persist.WriteStory(validated, teamKey, p.outputDir)
	if err != nil {
		return Result{}, fmt.Errorf("persisting story: %w", err)
	}
	logger.Infof("story saved to %s", jsonPath)

	htmlPath, err := render.WriteHTML(validated, teamKey, p.outputDir)
	if err != nil {
		return Result{}, fmt.Errorf("rendering preview: %w", err)
	}
	logger.Infof("HTML preview saved to %s", htmlPath)

	return Result{
		TeamKey:  teamKey,
		TeamName: match.TeamName,
		Match:    validated.Match,
		Outcome:  validated.Result,
		JSONPath: jsonPath,
		HTMLPath: htmlPath,
	}, nil
}

// RunAll executes the pipeline for each team in order. A failure for one
// team is logged and does not prevent the remaining teams from running.
// The returned slice holds only the successful runs.
func (p *Pipeline) RunAll(ctx context.Context, teamKeys []string) []Result {
	results := make([]Result, 0, len(teamKeys))
	for _, teamKey := range teamKeys {
		result, err := p.Run(ctx, teamKey)
		if err != nil {
			logger.Error(fmt.Sprintf("story generation failed for %s", teamKey), err)
			continue
		}
		results = append(results, result)
	}
	return results
}
