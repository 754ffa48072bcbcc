package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/zer3az/chatbot/internal/llm"
)

type ProviderOption struct {
	Provider    llm.Provider
	Name        string
	Description string
	HasAPIKey   bool
}

// BuildProviderOptions lists the providers in call order. hasKey reports whether a key is already configured.
func BuildProviderOptions(hasKey func(llm.Provider) bool) []ProviderOption {
	options := make([]ProviderOption, 0, len(llm.DefaultProviderOrder))
	for _, p := range llm.DefaultProviderOrder {
		local := !llm.NeedsAPIKey(p)
		configured := local || (hasKey != nil && hasKey(p))

		desc := "default model " + llm.DefaultModelForProvider(p)
		switch {
		case local:
			desc += " • local, no key needed"
		case configured:
			desc += " • ✓ key set"
		default:
			desc += " • key not set"
		}

		options = append(options, ProviderOption{
			Provider:    p,
			Name:        llm.ServiceName(p),
			Description: desc,
			HasAPIKey:   configured,
		})
	}
	return options
}

// PromptProvider asks the user to pick one of options.
func PromptProvider(options []ProviderOption) (llm.Provider, error) {
	if len(options) == 0 {
		return "", fmt.Errorf("no providers to choose from")
	}
	p := tea.NewProgram(providerSelectModel{options: options})
	finalModel, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("error running provider selection: %w", err)
	}

	result := finalModel.(providerSelectModel)
	if result.quit {
		return "", fmt.Errorf("provider selection cancelled")
	}
	return result.selected, nil
}

type providerSelectModel struct {
	options  []ProviderOption
	cursor   int
	selected llm.Provider
	quit     bool
}

func (m providerSelectModel) Init() tea.Cmd {
	return nil
}

func (m providerSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.quit = true
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.options)-1 {
				m.cursor++
			}
		case "enter":
			m.selected = m.options[m.cursor].Provider
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m providerSelectModel) View() string {
	s := "\n" + StyleSelectTitle.Render("🤖 Select AI Provider") + "\n\n"

	for i, opt := range m.options {
		cursor := "  "
		style := StyleSelectNormal
		if m.cursor == i {
			cursor = "▶ "
			style = StyleSelectActive
		}

		line := cursor + style.Render(fmt.Sprintf("%-22s", opt.Name))
		if opt.HasAPIKey {
			line += StyleSelectBadge.Render(" " + opt.Description)
		} else {
			line += StyleSelectDim.Render(" " + opt.Description)
		}
		s += line + "\n"
	}

	s += "\n" + StyleSelectDim.Render("↑/↓ navigate • enter select • esc cancel") + "\n"
	return s
}
