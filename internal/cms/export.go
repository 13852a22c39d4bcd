package cms

import (
	"encoding/json"
	"fmt"
	"strings"
)

// One-shot download transforms. The produced blobs are never read back
// in; they exist so the owner can take their data elsewhere.

func (c *CMS) ExportSummariesJSON() ([]byte, error) {
	items, err := c.Summaries.List()
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export summaries: %w", err)
	}
	return data, nil
}

func (c *CMS) ExportFilesJSON() ([]byte, error) {
	items, err := c.Files.List()
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export files: %w", err)
	}
	return data, nil
}

// RenderSummaryText formats one summary as a plain-text document.
func RenderSummaryText(s Summary) []byte {
	var b strings.Builder
	b.WriteString(s.Title + "\n")
	b.WriteString(strings.Repeat("=", len(s.Title)) + "\n\n")
	b.WriteString(s.Summary + "\n")
	if len(s.KeyPoints) > 0 {
		b.WriteString("\nKey Points:\n")
		for i, point := range s.KeyPoints {
			fmt.Fprintf(&b, "%d. %s\n", i+1, point)
		}
	}
	if s.FileName != "" {
		fmt.Fprintf(&b, "\nSource: %s (%s, %s)\n", s.FileName, s.FileType, s.FileSize)
	}
	return []byte(b.String())
}
