// Package render turns a validated story into a themed, self-contained HTML
// preview. It knows about HTML and CSS, nothing about APIs or JSON parsing.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"storygen/internal/core"
)

const timestampLayout = "20060102_150405"

// Theme holds the palette used to style a story preview. Stories render on
// dark backgrounds with the team's brand colors as accents.
type Theme struct {
	Background string // page background
	Accent     string // primary brand color
	Accent2    string // secondary brand color for gradients and borders
	Text       string // primary text color
	Subtext    string // muted secondary text color
	CardBG     string // slide card background
	ResultTag  string // WIN/LOSS/DRAW badge color
}

// palettes maps team keys to their official brand colors.
var palettes = map[string]Theme{
	"lakers": {
		Background: "#1a0533",
		Accent:     "#FDB927",
		Accent2:    "#552583",
		Text:       "#FFFFFF",
		Subtext:    "#E0D0F0",
		CardBG:     "#2d0f52",
	},
	"manutd": {
		Background: "#1a0505",
		Accent:     "#DA291C",
		Accent2:    "#FBE122",
		Text:       "#FFFFFF",
		Subtext:    "#F0D0D0",
		CardBG:     "#2d0a0a",
	},
}

// fallbackPalette is a clean dark theme for teams without a configured palette.
var fallbackPalette = Theme{
	Background: "#0f0f0f",
	Accent:     "#00ff88",
	Accent2:    "#005533",
	Text:       "#FFFFFF",
	Subtext:    "#CCCCCC",
	CardBG:     "#1a1a1a",
}

var resultColors = map[string]string{
	string(core.ResultWin):  "#00C851",
	string(core.ResultLoss): "#ff4444",
	string(core.ResultDraw): "#ffbb33",
}

// ThemeFor returns the palette for a team key, with the result badge color
// resolved from the match result.
func ThemeFor(teamKey, result string) Theme {
	theme, ok := palettes[teamKey]
	if !ok {
		theme = fallbackPalette
	}

	theme.ResultTag = resultColors[result]
	if theme.ResultTag == "" {
		theme.ResultTag = "#888888"
	}
	return theme
}

type documentData struct {
	Story *core.Story
	Theme Theme
}

var documentTemplate = template.Must(template.New("story").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Story.Team}} — Match Story</title>
    <style>
        * { margin: 0; padding: 0; box-sizing: border-box; }

        body {
            background: {{.Theme.Background}};
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI',
                         'Helvetica Neue', Arial, sans-serif;
            display: flex;
            flex-direction: column;
            align-items: center;
            padding: 24px 12px;
        }

        .meta {
            color: {{.Theme.Subtext}};
            font-size: 13px;
            margin-bottom: 20px;
            text-align: center;
        }

        .slide {
            width: 100%;
            max-width: 390px;
            min-height: 420px;
            border-radius: 18px;
            padding: 36px 28px;
            margin-bottom: 24px;
            display: flex;
            flex-direction: column;
            justify-content: center;
            position: relative;
        }

        .result-badge {
            position: absolute;
            top: 20px;
            right: 20px;
            color: #fff;
            font-size: 12px;
            font-weight: 700;
            letter-spacing: 1px;
            padding: 4px 12px;
            border-radius: 12px;
        }

        .headline-text { font-size: 40px; line-height: 1.1; margin-bottom: 14px; text-transform: uppercase; }
        .subtext { font-size: 16px; line-height: 1.4; }

        .stat-label { font-size: 13px; font-weight: 700; letter-spacing: 2px; text-transform: uppercase; margin-bottom: 10px; }
        .stat-value { font-size: 52px; line-height: 1; margin-bottom: 14px; }
        .narrative { font-size: 15px; line-height: 1.45; }

        .cta-text { font-size: 26px; margin-bottom: 10px; }
        .cta-subtext { font-size: 15px; margin-bottom: 26px; }
        .cta-button {
            align-self: flex-start;
            font-size: 14px;
            font-weight: 700;
            padding: 10px 26px;
            border-radius: 22px;
        }

        .slide-type-label {
            position: absolute;
            bottom: 18px;
            left: 28px;
            font-size: 10px;
            letter-spacing: 3px;
            opacity: 0.5;
            color: {{.Theme.Subtext}};
        }

        .unknown-slide { border: 1px dashed {{.Theme.Subtext}}; color: {{.Theme.Subtext}}; }
    </style>
</head>
<body>
    <div class="meta">{{.Story.Match}} · {{.Story.Date}}</div>
{{- range .Story.Slides}}
{{- if eq .Type "headline"}}
    <div class="slide headline-slide" style="background: linear-gradient(160deg, {{$.Theme.CardBG}} 0%, {{$.Theme.Accent2}} 100%); border-top: 4px solid {{$.Theme.Accent}};">
        <div class="result-badge" style="background: {{$.Theme.ResultTag}}">{{$.Story.Result}}</div>
        <h1 class="headline-text" style="color: {{$.Theme.Accent}}">{{.Text}}</h1>
        <p class="subtext" style="color: {{$.Theme.Subtext}}">{{.Subtext}}</p>
        <div class="slide-type-label">STORY</div>
    </div>
{{- else if eq .Type "stat"}}
    <div class="slide stat-slide" style="background: {{$.Theme.CardBG}}; border-left: 4px solid {{$.Theme.Accent}};">
        <p class="stat-label" style="color: {{$.Theme.Accent}}">{{.StatLabel}}</p>
        <h2 class="stat-value" style="color: {{$.Theme.Text}}">{{.StatValue}}</h2>
        <p class="narrative" style="color: {{$.Theme.Subtext}}">{{.Narrative}}</p>
    </div>
{{- else if eq .Type "cta"}}
    <div class="slide cta-slide" style="background: linear-gradient(160deg, {{$.Theme.Accent2}} 0%, {{$.Theme.CardBG}} 100%); border-top: 4px solid {{$.Theme.Accent}};">
        <h2 class="cta-text" style="color: {{$.Theme.Text}}">{{.Text}}</h2>
        <p class="cta-subtext" style="color: {{$.Theme.Subtext}}">{{.Subtext}}</p>
        <div class="cta-button" style="background: {{$.Theme.Accent}}; color: {{$.Theme.Background}};">Follow Now</div>
    </div>
{{- else}}
    <div class="slide unknown-slide"><p>Unknown slide type: {{.Type}}</p></div>
{{- end}}
{{- end}}
</body>
</html>
`))

// RenderDocument renders the story to a complete HTML document string.
func RenderDocument(story *core.Story, teamKey string) (string, error) {
	data := documentData{
		Story: story,
		Theme: ThemeFor(teamKey, story.Result),
	}

	var buf bytes.Buffer
	if err := documentTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render story document: %w", err)
	}
	return buf.String(), nil
}

// WriteHTML renders the story and writes the preview file under outputDir,
// returning the full path of the written file.
func WriteHTML(story *core.Story, teamKey, outputDir string) (string, error) {
	if outputDir == "" {
		outputDir = "output"
	}

	document, err := RenderDocument(story, teamKey)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}

	filename := fmt.Sprintf("%s_story_%s.html", teamKey, time.Now().Format(timestampLayout))
	filePath := filepath.Join(outputDir, filename)

	if err := os.WriteFile(filePath, []byte(document), 0644); err != nil {
		return "", fmt.Errorf("failed to write preview file %s: %w", filePath, err)
	}

	return filePath, nil
}
