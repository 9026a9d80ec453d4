package terminal

import (
	"encoding/json"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/trebuchet-org/scide/internal/domain"
)

const maxLogLines = 200

// postMsg carries a bridge message into the program
type postMsg struct {
	message domain.Message
}

type logLine struct {
	text  string
	topic domain.Topic
}

// panelModel is the bubbletea model of the terminal panel
type panelModel struct {
	contracts []*domain.Contract
	cursor    int
	lines     []logLine
	height    int
	send      func(domain.Command)
	quitting  bool
}

func newPanelModel(send func(domain.Command)) panelModel {
	return panelModel{send: send, height: 24}
}

// Init requests the first contract snapshot
func (m panelModel) Init() tea.Cmd {
	return m.command(domain.Command{Command: domain.CommandRefreshSmartContracts})
}

// Update handles messages and updates the model
func (m panelModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
	case postMsg:
		m = m.apply(msg.message)
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.contracts)-1 {
				m.cursor++
			}
		case "s":
			return m, m.command(domain.Command{Command: domain.CommandStartDebugServer})
		case "x":
			return m, m.command(domain.Command{Command: domain.CommandStopDebugServer})
		case "r":
			return m, m.command(domain.Command{Command: domain.CommandRefreshSmartContracts})
		case "b":
			return m, m.selected(domain.CommandBuildSmartContract)
		case "d":
			return m, m.selected(domain.CommandDeploySmartContract)
		case "enter":
			return m, m.selected(domain.CommandRunSmartContract)
		}
	}
	return m, nil
}

func (m panelModel) apply(message domain.Message) panelModel {
	switch message.What {
	case domain.MessageRefreshSmartContracts:
		contracts, _ := message.Data.([]*domain.Contract)
		m.contracts = contracts
		if m.cursor >= len(m.contracts) {
			m.cursor = max(len(m.contracts)-1, 0)
		}
	case string(domain.TopicDebuggerOutput), string(domain.TopicDebuggerError):
		m.lines = append(m.lines, logLine{text: fmt.Sprint(message.Data), topic: domain.Topic(message.What)})
	case string(domain.TopicDebuggerClose):
		m.lines = append(m.lines, logLine{
			text:  fmt.Sprintf("debugger exited with code %v", message.Data),
			topic: domain.TopicDebuggerClose,
		})
	}
	if len(m.lines) > maxLogLines {
		m.lines = m.lines[len(m.lines)-maxLogLines:]
	}
	return m
}

// selected sends command for the contract under the cursor
func (m panelModel) selected(command string) tea.Cmd {
	if len(m.contracts) == 0 {
		return nil
	}
	contract := m.contracts[m.cursor]
	cmd := domain.Command{Command: command, ID: contract.ID}
	if command == domain.CommandRunSmartContract && contract.LatestRun != nil {
		options := contract.LatestRun.Options
		cmd.Options = &options
	}
	return m.command(cmd)
}

// command hands the command to the bridge outside the update loop
func (m panelModel) command(cmd domain.Command) tea.Cmd {
	send := m.send
	return func() tea.Msg {
		send(cmd)
		return nil
	}
}

// View renders the UI
func (m panelModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(color.New(color.FgCyan, color.Bold).Sprint("Smart Contracts\n\n"))

	if len(m.contracts) == 0 {
		b.WriteString(color.New(color.FgHiBlack).Sprint("  no contracts in workspace\n"))
	}
	for i, contract := range m.contracts {
		cursor := " "
		if m.cursor == i {
			cursor = color.New(color.FgCyan).Sprint("▸")
		}

		built := color.New(color.FgWhite).Sprint("○")
		if contract.IsBuilt() {
			built = color.New(color.FgGreen).Sprint("✓")
		}

		address := color.New(color.FgHiBlack).Sprint("not deployed")
		if contract.IsDeployed() {
			address = color.New(color.FgYellow).Sprint(contract.Address)
		}

		b.WriteString(fmt.Sprintf("%s %s %-20s %s%s\n", cursor, built, contract.ID, address, latestOutput(contract)))
	}

	b.WriteString("\n")
	for _, line := range m.tail() {
		switch line.topic {
		case domain.TopicDebuggerError:
			b.WriteString(color.New(color.FgRed).Sprint(line.text))
		case domain.TopicDebuggerClose:
			b.WriteString(color.New(color.FgYellow).Sprint(line.text))
		default:
			b.WriteString(line.text)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(color.New(color.FgYellow).Sprint("↑/↓: move  b: build  d: deploy  Enter: run  s/x: start/stop debugger  r: refresh  q: quit\n"))

	return b.String()
}

// tail returns the log lines that fit below the contract list
func (m panelModel) tail() []logLine {
	room := m.height - len(m.contracts) - 6
	if room < 3 {
		room = 3
	}
	if len(m.lines) <= room {
		return m.lines
	}
	return m.lines[len(m.lines)-room:]
}

func latestOutput(contract *domain.Contract) string {
	run := contract.LatestRun
	if run == nil || (run.Err == "" && run.Output.IsEmpty()) {
		return ""
	}
	if run.Err != "" {
		return color.New(color.FgRed).Sprintf("  %s: %s", run.Options.FunctionName, run.Err)
	}
	data, err := json.Marshal(run.Output)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("  %s → %s", run.Options.FunctionName, string(data))
}
