package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/temirov/grab/internal/types"
	"github.com/temirov/grab/internal/utils"
)

const (
	includedMark = "✓"
	excludedMark = "✗"
)

var (
	includedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	excludedStyle = lipgloss.NewStyle().Faint(true)
	ignoredStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	brokenStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// RenderConsoleListing formats the scanned entries for the terminal: the same
// outline as the document's structure section, with a per-entry inclusion mark
// showing whether the entry's content made it into the selection. Color is
// cosmetic; the marks and status tags carry the information.
func RenderConsoleListing(allEntries []types.Entry, selectedEntries []types.Entry) string {
	selectedPaths := make(map[string]struct{}, len(selectedEntries))
	for _, entry := range selectedEntries {
		if entry.IsSelectable() {
			selectedPaths[entry.Path] = struct{}{}
		}
	}

	var listing strings.Builder
	for _, entry := range allEntries {
		_, isIncluded := selectedPaths[entry.Path]
		listing.WriteString(consoleLine(entry, isIncluded))
		listing.WriteString("\n")
	}
	return listing.String()
}

func consoleLine(entry types.Entry, isIncluded bool) string {
	mark := excludedStyle.Render(excludedMark)
	if isIncluded {
		mark = includedStyle.Render(includedMark)
	}
	if entry.Kind == types.EntryKindDirectory {
		mark = " "
	}

	line := StructureLine(entry)
	switch entry.Kind {
	case types.EntryKindIgnored:
		line = ignoredStyle.Render(line)
	case types.EntryKindBinary, types.EntryKindUnreadable:
		line = brokenStyle.Render(line)
	}
	return mark + " " + line
}

// FormatSummaryLine reports how much of the scan was selected, with token
// totals when counting is enabled.
func FormatSummaryLine(selectedEntries []types.Entry, tokenModel string) string {
	selectedCount := 0
	var totalBytes int64
	totalTokens := 0
	for _, entry := range selectedEntries {
		if entry.Kind != types.EntryKindFile {
			continue
		}
		selectedCount++
		totalBytes += int64(len(entry.Content))
		totalTokens += entry.Tokens
	}

	summary := fmt.Sprintf("%d files selected, %s", selectedCount, utils.FormatFileSize(totalBytes))
	if totalTokens > 0 && tokenModel != "" {
		summary = fmt.Sprintf("%s, %d tokens (%s)", summary, totalTokens, tokenModel)
	}
	return summary
}
