// Package persist writes validated stories to disk as JSON.
package persist

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"storygen/internal/core"
)

// timestampLayout produces filenames like lakers_story_20260213_143022.json
// so repeated runs never overwrite each other.
const timestampLayout = "20060102_150405"

// WriteStory writes the story as pretty-printed JSON under outputDir and
// returns the full path of the written file. HTML escaping is disabled so
// emoji in CTA slides survive intact.
func WriteStory(story *core.Story, teamKey, outputDir string) (string, error) {
	if outputDir == "" {
		outputDir = "output"
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}

	filename := fmt.Sprintf("%s_story_%s.json", teamKey, time.Now().Format(timestampLayout))
	filePath := filepath.Join(outputDir, filename)

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(story); err != nil {
		return "", fmt.Errorf("failed to encode story: %w", err)
	}

	if err := os.WriteFile(filePath, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("failed to write story file %s: %w", filePath, err)
	}

	return filePath, nil
}
