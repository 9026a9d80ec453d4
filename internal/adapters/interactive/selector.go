package interactive

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/sahilm/fuzzy"
	"github.com/trebuchet-org/scide/internal/domain"
	"github.com/trebuchet-org/scide/internal/domain/config"
	"github.com/trebuchet-org/scide/internal/usecase"
)

// ErrNonInteractive is returned when a selection is needed but prompts are disabled
var ErrNonInteractive = errors.New("interactive selection not available in non-interactive mode")

// SelectorAdapter handles interactive selection
type SelectorAdapter struct {
	config *config.RuntimeConfig
	run    func(prompt *promptui.Select) (int, string, error)
}

// NewSelectorAdapter creates a new selector adapter
func NewSelectorAdapter(cfg *config.RuntimeConfig) *SelectorAdapter {
	return &SelectorAdapter{
		config: cfg,
		run: func(prompt *promptui.Select) (int, string, error) {
			return prompt.Run()
		},
	}
}

// SelectContract selects a contract from a list
func (s *SelectorAdapter) SelectContract(ctx context.Context, contracts []*domain.Contract, prompt string) (*domain.Contract, error) {
	if len(contracts) == 0 {
		return nil, fmt.Errorf("no contracts provided for selection")
	}

	// A single candidate needs no prompt
	if len(contracts) == 1 {
		return contracts[0], nil
	}

	if s.config.NonInteractive {
		return nil, fmt.Errorf("%w: pass a contract id", ErrNonInteractive)
	}

	options := s.formatContractOptions(contracts)

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . | faint }}",
		Selected: "✓ {{ . | green }}",
		Help:     color.New(color.FgYellow).Sprint("Use arrow keys to navigate, Enter to select"),
	}

	promptSelect := &promptui.Select{
		Label:             prompt,
		Items:             options,
		Templates:         templates,
		Size:              10,
		StartInSearchMode: true,
		Searcher:          createFuzzySearchFunc(options),
	}

	index, _, err := s.run(promptSelect)
	if err != nil {
		return nil, fmt.Errorf("selection cancelled: %w", err)
	}

	return contracts[index], nil
}

// formatContractOptions renders "id (path) [state]" for each contract
func (s *SelectorAdapter) formatContractOptions(contracts []*domain.Contract) []string {
	options := make([]string, len(contracts))
	for i, contract := range contracts {
		relPath := contract.SourcePath
		if rel, err := filepath.Rel(s.config.ProjectRoot, contract.SourcePath); err == nil {
			relPath = rel
		}

		var indicators []string
		if contract.IsBuilt() {
			indicators = append(indicators, "built")
		}
		if contract.IsDeployed() {
			indicators = append(indicators, "deployed")
		}

		name := color.New(color.FgWhite, color.Bold).Sprint(contract.ID)
		pathStr := color.New(color.FgBlue).Sprint(relPath)

		if len(indicators) > 0 {
			indicatorStr := color.New(color.FgYellow).Sprintf("[%s]", strings.Join(indicators, ", "))
			options[i] = fmt.Sprintf("%s (%s) %s", name, pathStr, indicatorStr)
		} else {
			options[i] = fmt.Sprintf("%s (%s)", name, pathStr)
		}
	}
	return options
}

// createFuzzySearchFunc creates a fuzzy search function for promptui
func createFuzzySearchFunc(items []string) func(input string, index int) bool {
	return func(input string, index int) bool {
		if input == "" {
			return true
		}

		input = strings.ToLower(input)
		item := strings.ToLower(items[index])

		if strings.Contains(item, input) {
			return true
		}

		return len(fuzzy.Find(input, []string{item})) > 0
	}
}

// Ensure the adapter implements the interface
var _ usecase.ContractSelector = (*SelectorAdapter)(nil)
