package picker

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/temirov/grab/internal/types"
)

// TokenEstimator returns the token count for a selectable path. A nil
// estimator disables token reporting in the status line.
type TokenEstimator func(path string) (int, error)

// exitState indicates how the picker program is exiting.
type exitState int

const (
	exitStateNone    exitState = iota
	exitStateAbort             // Esc or Ctrl+C, selection discarded
	exitStateConfirm           // Enter, selection kept
)

const (
	searchPlaceholder = "Type to filter..."
	searchPrompt      = "> "
	usageHint         = "(↑/↓ navigate, Space toggle, Ctrl+A all, Ctrl+Q none, Enter confirm, Esc abort)"
)

var (
	cursorLineStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	headingStyle    = lipgloss.NewStyle().Faint(true)
)

// pickerModel is the Bubble Tea model backing the interactive selection.
type pickerModel struct {
	searchInput textinput.Model
	searchTerm  string

	allChoices      []types.Choice
	filteredChoices []types.Choice
	selectedPaths   map[string]bool

	cursor    int
	exitState exitState

	viewport viewport.Model
	ready    bool

	tokenEstimator  TokenEstimator
	tokenCache      map[string]int
	totalTokenCount int
}

// Run presents the choices for interactive multi-selection and returns the
// chosen selectable paths. An aborted picker returns an empty selection and no
// error. The TUI is drawn on stderr so stdout stays clean for the document.
func Run(choices []types.Choice, tokenEstimator TokenEstimator) ([]string, error) {
	searchInput := textinput.New()
	searchInput.Placeholder = searchPlaceholder
	searchInput.Prompt = searchPrompt
	searchInput.Focus()

	initialModel := pickerModel{
		searchInput:     searchInput,
		allChoices:      choices,
		filteredChoices: choices,
		selectedPaths:   make(map[string]bool),
		viewport:        viewport.New(0, 0),
		tokenEstimator:  tokenEstimator,
		tokenCache:      make(map[string]int),
	}

	program := tea.NewProgram(initialModel, tea.WithOutput(os.Stderr))
	finalModel, runError := program.Run()
	if runError != nil {
		return nil, runError
	}

	finalPickerModel, conversionOK := finalModel.(pickerModel)
	if !conversionOK {
		return nil, fmt.Errorf("picker: unexpected final model type")
	}
	if finalPickerModel.exitState != exitStateConfirm {
		return nil, nil
	}

	var chosenPaths []string
	for _, choice := range finalPickerModel.allChoices {
		if choice.Selectable && finalPickerModel.selectedPaths[choice.Path] {
			chosenPaths = append(chosenPaths, choice.Path)
		}
	}
	return chosenPaths, nil
}

// Init satisfies tea.Model.
func (model pickerModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tea.EnterAltScreen)
}

// Update handles key presses and window sizing.
func (model pickerModel) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	if model.exitState != exitStateNone {
		return model, tea.Quit
	}

	var command tea.Cmd
	var commands []tea.Cmd

	switch message := message.(type) {
	case tea.WindowSizeMsg:
		headerHeight := lipgloss.Height(model.searchInput.View()) + 1
		footerHeight := 2
		model.viewport.Width = message.Width
		model.viewport.Height = message.Height - headerHeight - footerHeight
		model.viewport.YPosition = headerHeight
		if !model.ready {
			model.refreshViewportContent()
			model.ready = true
		}

	case tea.KeyMsg:
		switch message.String() {
		case "ctrl+c", "esc":
			model.exitState = exitStateAbort
			return model, tea.Quit

		case "enter":
			model.exitState = exitStateConfirm
			return model, tea.Quit

		case "up":
			if model.cursor > 0 {
				model.cursor--
				model.refreshViewportContent()
				model.ensureCursorVisible()
			}
			return model, nil

		case "down":
			if model.cursor < len(model.filteredChoices)-1 {
				model.cursor++
				model.refreshViewportContent()
				model.ensureCursorVisible()
			}
			return model, nil

		case " ":
			if len(model.filteredChoices) > 0 {
				model.toggleChoice(model.filteredChoices[model.cursor])
				model.refreshViewportContent()
			}
			return model, nil

		case "ctrl+a":
			for _, choice := range model.filteredChoices {
				if choice.Selectable {
					model.selectedPaths[choice.Path] = true
				}
			}
			model.recalculateTotalTokenCount()
			model.refreshViewportContent()
			return model, nil

		case "ctrl+q":
			for _, choice := range model.filteredChoices {
				delete(model.selectedPaths, choice.Path)
			}
			model.recalculateTotalTokenCount()
			model.refreshViewportContent()
			return model, nil

		case "pgup":
			model.viewport.HalfViewUp()
			return model, nil

		case "pgdown":
			model.viewport.HalfViewDown()
			return model, nil
		}
	}

	model.searchInput, command = model.searchInput.Update(message)
	commands = append(commands, command)

	newSearchTerm := model.searchInput.Value()
	if newSearchTerm != model.searchTerm {
		model.searchTerm = newSearchTerm
		model.refilterChoices()
		model.refreshViewportContent()
	}

	model.viewport, command = model.viewport.Update(message)
	commands = append(commands, command)

	return model, tea.Batch(commands...)
}

// View renders the search input, scrollable choice list, and status footer.
func (model pickerModel) View() string {
	if !model.ready {
		return "Initializing..."
	}

	selectedCount := 0
	for _, isSelected := range model.selectedPaths {
		if isSelected {
			selectedCount++
		}
	}
	statusLine := fmt.Sprintf("%d/%d items, %d selected", len(model.filteredChoices), len(model.allChoices), selectedCount)
	if model.tokenEstimator != nil {
		statusLine = fmt.Sprintf("%s, %d tokens", statusLine, model.totalTokenCount)
	}

	return fmt.Sprintf("%s\n%s\n%s\n%s", model.searchInput.View(), model.viewport.View(), statusLine, usageHint)
}

func (model *pickerModel) refreshViewportContent() {
	var content strings.Builder
	for choiceIndex, choice := range model.filteredChoices {
		cursorMark := " "
		if choiceIndex == model.cursor {
			cursorMark = ">"
		}
		selectionMark := " "
		if choice.Selectable && model.selectedPaths[choice.Path] {
			selectionMark = "✓"
		}
		line := fmt.Sprintf("%s [%s] %s", cursorMark, selectionMark, choice.Label)
		if choiceIndex == model.cursor {
			line = cursorLineStyle.Render(line)
		} else if !choice.Selectable {
			line = headingStyle.Render(line)
		}
		content.WriteString(line + "\n")
	}
	model.viewport.SetContent(content.String())
}

func (model *pickerModel) ensureCursorVisible() {
	top := model.viewport.YOffset
	bottom := model.viewport.YOffset + model.viewport.Height - 1
	if model.cursor < top {
		model.viewport.SetYOffset(model.cursor)
	} else if model.cursor > bottom {
		model.viewport.SetYOffset(model.cursor - model.viewport.Height + 1)
	}
}

func (model *pickerModel) refilterChoices() {
	if model.searchTerm == "" {
		model.filteredChoices = model.allChoices
	} else {
		var filtered []types.Choice
		for _, choice := range model.allChoices {
			if fuzzyMatch(choice.Path, model.searchTerm) {
				filtered = append(filtered, choice)
			}
		}
		model.filteredChoices = filtered
	}
	if len(model.filteredChoices) == 0 {
		model.cursor = 0
		return
	}
	if model.cursor > len(model.filteredChoices)-1 {
		model.cursor = len(model.filteredChoices) - 1
	}
}

func (model *pickerModel) toggleChoice(choice types.Choice) {
	if !choice.Selectable {
		return
	}
	if model.selectedPaths[choice.Path] {
		delete(model.selectedPaths, choice.Path)
	} else {
		model.selectedPaths[choice.Path] = true
	}
	model.recalculateTotalTokenCount()
}

func (model *pickerModel) recalculateTotalTokenCount() {
	if model.tokenEstimator == nil {
		return
	}
	total := 0
	for path, isSelected := range model.selectedPaths {
		if !isSelected {
			continue
		}
		if cachedCount, cached := model.tokenCache[path]; cached {
			total += cachedCount
			continue
		}
		tokenCount, estimateError := model.tokenEstimator(path)
		if estimateError != nil {
			continue
		}
		model.tokenCache[path] = tokenCount
		total += tokenCount
	}
	model.totalTokenCount = total
}

// fuzzyMatch reports whether the path matches the search term using
// sahilm/fuzzy semantics. An empty term matches everything.
func fuzzyMatch(path string, term string) bool {
	if term == "" {
		return true
	}
	return len(fuzzy.Find(term, []string{path})) > 0
}
