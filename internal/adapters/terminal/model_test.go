package terminal

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/scide/internal/domain"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func testContracts() []*domain.Contract {
	adder := domain.NewContract("/ws/adder/adder.c")
	adder.BytecodePath = "/ws/adder/adder.wasm"
	adder.Address = "erd1adder"
	options := domain.DefaultRunOptions()
	options.FunctionName = "getSum"
	adder.LatestRun = domain.NewRun(options)
	adder.LatestRun.Output = domain.VMOutput{"ReturnData": []any{"AQ=="}}

	counter := domain.NewContract("/ws/counter/counter.c")
	return []*domain.Contract{adder, counter}
}

// update runs one message through the model and executes the resulting command
func update(t *testing.T, m panelModel, msg tea.Msg) panelModel {
	t.Helper()
	next, cmd := m.Update(msg)
	if cmd != nil {
		_ = cmd()
	}
	return next.(panelModel)
}

func TestPanelModel_Commands(t *testing.T) {
	var sent []domain.Command
	m := newPanelModel(func(c domain.Command) { sent = append(sent, c) })

	m = update(t, m, postMsg{message: domain.Message{What: domain.MessageRefreshSmartContracts, Data: testContracts()}})
	require.Len(t, m.contracts, 2)

	m = update(t, m, key("b"))
	m = update(t, m, key("enter"))
	m = update(t, m, key("down"))
	m = update(t, m, key("d"))
	m = update(t, m, key("s"))
	m = update(t, m, key("x"))
	_ = update(t, m, key("r"))

	require.Len(t, sent, 6)
	assert.Equal(t, domain.Command{Command: domain.CommandBuildSmartContract, ID: "adder"}, sent[0])
	assert.Equal(t, domain.CommandRunSmartContract, sent[1].Command)
	require.NotNil(t, sent[1].Options)
	assert.Equal(t, "getSum", sent[1].Options.FunctionName)
	assert.Equal(t, domain.Command{Command: domain.CommandDeploySmartContract, ID: "counter"}, sent[2])
	assert.Equal(t, domain.CommandStartDebugServer, sent[3].Command)
	assert.Equal(t, domain.CommandStopDebugServer, sent[4].Command)
	assert.Equal(t, domain.CommandRefreshSmartContracts, sent[5].Command)
}

func TestPanelModel_NoContractsNoCommand(t *testing.T) {
	var sent []domain.Command
	m := newPanelModel(func(c domain.Command) { sent = append(sent, c) })

	_ = update(t, m, key("b"))
	assert.Empty(t, sent)
}

func TestPanelModel_CursorClampedOnRefresh(t *testing.T) {
	m := newPanelModel(func(domain.Command) {})
	m = update(t, m, postMsg{message: domain.Message{What: domain.MessageRefreshSmartContracts, Data: testContracts()}})
	m = update(t, m, key("down"))
	assert.Equal(t, 1, m.cursor)

	m = update(t, m, postMsg{message: domain.Message{What: domain.MessageRefreshSmartContracts, Data: testContracts()[:1]}})
	assert.Equal(t, 0, m.cursor)
}

func TestPanelModel_View(t *testing.T) {
	color.NoColor = true
	m := newPanelModel(func(domain.Command) {})
	m = update(t, m, postMsg{message: domain.Message{What: domain.MessageRefreshSmartContracts, Data: testContracts()}})
	m = update(t, m, postMsg{message: domain.Message{What: string(domain.TopicDebuggerOutput), Data: "listening on :5000"}})
	m = update(t, m, postMsg{message: domain.Message{What: string(domain.TopicDebuggerError), Data: "warning"}})
	m = update(t, m, postMsg{message: domain.Message{What: string(domain.TopicDebuggerClose), Data: 0}})

	view := m.View()
	assert.Contains(t, view, "▸ ✓ adder")
	assert.Contains(t, view, "erd1adder")
	assert.Contains(t, view, `getSum → {"ReturnData":["AQ=="]}`)
	assert.Contains(t, view, "○ counter")
	assert.Contains(t, view, "not deployed")
	assert.Contains(t, view, "listening on :5000")
	assert.Contains(t, view, "warning")
	assert.Contains(t, view, "debugger exited with code 0")
}

func TestPanelModel_LogIsBounded(t *testing.T) {
	m := newPanelModel(func(domain.Command) {})
	for i := 0; i < maxLogLines+10; i++ {
		m = m.apply(domain.Message{What: string(domain.TopicDebuggerOutput), Data: i})
	}
	assert.Len(t, m.lines, maxLogLines)
	assert.Equal(t, "10", m.lines[0].text)
}

func TestPanelModel_Quit(t *testing.T) {
	m := newPanelModel(func(domain.Command) {})
	next, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, next.(panelModel).View())
}
