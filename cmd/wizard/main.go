// Command wizard is a terminal client for the tailor-your-trip intake form.
// It drives the same multi-step state machine and validation schema the API
// enforces, so anything it accepts the server accepts too.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"backend/internal/domain/models"
	"backend/internal/schema"
	"backend/internal/wizard"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#4D96FF")).
			Padding(1, 0)

	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).MarginTop(1)
	progressStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6BCB77"))
	doneStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#6BCB77")).Padding(1, 0)
)

type submitResultMsg struct {
	seq    int
	stored models.Enquiry
	err    error
}

type model struct {
	state  wizard.State
	client *apiClient

	names  []string
	inputs []textinput.Model
	focus  int

	status string
}

func newModel(client *apiClient) model {
	m := model{
		state:  wizard.New(),
		client: client,
	}
	m.buildStepInputs()
	return m
}

// buildStepInputs creates one text input per field of the current step,
// prefilled with anything already entered.
func (m *model) buildStepInputs() {
	m.names = schema.FieldNames(m.state.Step)
	m.inputs = make([]textinput.Model, len(m.names))
	for i, name := range m.names {
		ti := textinput.New()
		ti.Placeholder = placeholder(name)
		ti.CharLimit = 200
		ti.Width = 48
		if v, ok := m.state.Value(name); ok {
			ti.SetValue(displayValue(name, v))
		}
		m.inputs[i] = ti
	}
	m.focus = 0
	if len(m.inputs) > 0 {
		m.inputs[0].Focus()
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			if m.state.SubmitInFlight() {
				m.state = m.state.CancelSubmit()
				m.status = "Submission cancelled."
				return m, nil
			}
			return m, tea.Quit

		case "tab", "down":
			m.moveFocus(1)
			return m, nil

		case "shift+tab", "up":
			m.moveFocus(-1)
			return m, nil

		case "ctrl+p":
			m.captureInputs()
			m.state = m.state.Previous()
			m.buildStepInputs()
			return m, nil

		case "enter":
			if m.state.Submitted {
				return m, tea.Quit
			}
			if m.focus < len(m.inputs)-1 {
				m.moveFocus(1)
				return m, nil
			}
			return m.advance()
		}

	case submitResultMsg:
		m.state = m.state.ApplySubmitResult(msg.seq, msg.stored, msg.err)
		if m.state.Submitted {
			m.status = fmt.Sprintf("Reference ENQ-%d. Press enter to close.", m.state.Stored.ID)
		} else if m.state.Message != "" {
			m.status = m.state.Message
		} else {
			m.status = "Please correct the highlighted fields."
		}
		return m, nil
	}

	if len(m.inputs) > 0 && !m.state.SubmitInFlight() {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

// advance captures the step's inputs and either moves forward or submits.
func (m model) advance() (tea.Model, tea.Cmd) {
	m.captureInputs()

	if !m.state.LastStep() {
		m.state = m.state.Next()
		if len(m.state.Errors) == 0 {
			m.buildStepInputs()
			m.status = ""
		} else {
			m.status = "Please correct the highlighted fields."
		}
		return m, nil
	}

	next, seq, ok := m.state.BeginSubmit()
	m.state = next
	if !ok {
		m.status = "Please correct the highlighted fields."
		return m, nil
	}

	m.status = "Submitting..."
	payload := m.state.Payload()
	client := m.client
	return m, func() tea.Msg {
		stored, err := client.Submit(context.Background(), payload)
		return submitResultMsg{seq: seq, stored: stored, err: err}
	}
}

func (m *model) captureInputs() {
	for i, name := range m.names {
		raw := strings.TrimSpace(m.inputs[i].Value())
		if raw == "" {
			if _, ok := m.state.Value(name); ok {
				m.state = m.state.ClearField(name)
			}
			continue
		}
		m.state = m.state.SetField(name, parseValue(name, raw))
	}
}

func (m *model) moveFocus(delta int) {
	if len(m.inputs) == 0 {
		return
	}
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + delta + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
}

func (m model) View() string {
	if m.state.Submitted {
		return doneStyle.Render(m.state.Message) + "\n" + statusStyle.Render(m.status) + "\n"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Tailor Your Trip — %s", wizard.StepTitles[m.state.Step-1])))
	b.WriteString("\n")
	b.WriteString(progressStyle.Render(progressBar(m.state.Step)))
	b.WriteString("\n\n")

	for i, name := range m.names {
		b.WriteString(labelStyle.Render(label(name)))
		b.WriteString("\n")
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
		if msg, ok := m.state.Errors[name]; ok {
			b.WriteString(errorStyle.Render("  " + msg))
			b.WriteString("\n")
		}
	}

	b.WriteString(statusStyle.Render(m.status))
	b.WriteString("\n")
	b.WriteString(statusStyle.Render("tab: next field  ·  ctrl+p: previous step  ·  enter: continue  ·  esc: quit"))
	b.WriteString("\n")
	return b.String()
}

func progressBar(step int) string {
	done := strings.Repeat("█", step*6)
	rest := strings.Repeat("░", (schema.StepCount-step)*6)
	return fmt.Sprintf("%s%s  step %d of %d", done, rest, step, schema.StepCount)
}

// parseValue converts raw text into the type the schema expects.
func parseValue(name, raw string) any {
	f, ok := schema.Lookup(name)
	if !ok {
		return raw
	}
	switch f.Kind {
	case schema.IntList:
		parts := strings.Split(raw, ",")
		ages := make([]int, 0, len(parts))
		for _, p := range parts {
			n, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil {
				return raw
			}
			ages = append(ages, n)
		}
		return ages
	default:
		return raw
	}
}

func displayValue(name string, v any) string {
	switch val := v.(type) {
	case string:
		return val
	case []int:
		parts := make([]string, 0, len(val))
		for _, n := range val {
			if n == wizard.AgeUnset {
				continue
			}
			parts = append(parts, strconv.Itoa(n))
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprintf("%v", val)
	}
}

func label(name string) string {
	if f, ok := schema.Lookup(name); ok && f.Kind == schema.Enum {
		return fmt.Sprintf("%s (%s)", humanize(name), strings.Join(f.Values, " / "))
	}
	switch name {
	case "fromDate", "toDate":
		return humanize(name) + " (YYYY-MM-DD)"
	case "childrenAges":
		return "Children's ages (e.g. 5, 7, 12)"
	case "flexibleDates":
		return "Flexible dates (true/false)"
	}
	return humanize(name)
}

func humanize(name string) string {
	var b strings.Builder
	for i, r := range name {
		if i == 0 {
			b.WriteRune(r - 'a' + 'A')
			continue
		}
		if r >= 'A' && r <= 'Z' {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func placeholder(name string) string {
	switch name {
	case "email":
		return "you@example.com"
	case "budget":
		return "e.g. £3000-£4000"
	case "destination":
		return "e.g. Maldives"
	case "departureAirport":
		return "e.g. LHR"
	}
	return ""
}

func main() {
	baseURL := strings.TrimSpace(os.Getenv("API_BASE_URL"))
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	p := tea.NewProgram(newModel(newAPIClient(baseURL)))
	if _, err := p.Run(); err != nil {
		log.Fatalf("wizard error: %v", err)
	}
}
