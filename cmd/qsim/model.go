package main

import (
	"fmt"
	"math"
	"math/cmplx"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/qbitworks/qsim"
)

const demoQubits = 3

// step is one labeled operation of the demo circuit.
type step struct {
	label string
	apply func(*qsim.CPUEngine)
}

// demoCircuit prepares a GHZ-style register, shifts it through the
// coherent adder and finishes with a measurement.
func demoCircuit() []step {
	return []step{
		{"H 0", func(e *qsim.CPUEngine) { e.H(0) }},
		{"CNOT 0 1", func(e *qsim.CPUEngine) { e.CNOT(0, 1) }},
		{"CNOT 1 2", func(e *qsim.CPUEngine) { e.CNOT(1, 2) }},
		{"INC 1 [0,3)", func(e *qsim.CPUEngine) { e.INC(1, 0, 3) }},
		{"ROL 1 [0,3)", func(e *qsim.CPUEngine) { e.ROL(1, 0, 3) }},
		{"M 0", func(e *qsim.CPUEngine) { e.M(0) }},
	}
}

// Model represents the inspector state.
type Model struct {
	engine *qsim.CPUEngine
	steps  []step
	next   int // index of the next step to apply
	width  int
	height int
}

func initialModel() Model {
	e, err := qsim.New(demoQubits, 0)
	if err != nil {
		panic(err)
	}
	return Model{
		engine: e,
		steps:  demoCircuit(),
	}
}

func (m *Model) reset() {
	m.engine.SetPermutation(0)
	m.next = 0
}

func (m *Model) advance() {
	if m.next < len(m.steps) {
		m.steps[m.next].apply(m.engine)
		m.next++
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "right", "l", " ", "enter":
			m.advance()
		case "r":
			m.reset()
		}
	}

	return m, nil
}

// View renders the amplitude table next to the circuit program.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	ampPanel := frameStyle.Render(m.renderAmplitudes())
	stepPanel := frameStyle.Render(m.renderSteps())
	controls := controlsStyle.Render(
		dimStyle.Render("⏎/space Step  r Reset  q Quit"))

	top := lipgloss.JoinHorizontal(lipgloss.Top, ampPanel, stepPanel)
	return lipgloss.JoinVertical(lipgloss.Left, top, controls)
}

func (m Model) renderAmplitudes() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Amplitudes"))
	sb.WriteString("\n\n")

	state := m.engine.GetState()
	for i, amp := range state {
		p := normSqrdOf(amp)
		basis := fmt.Sprintf("|%0*b>", demoQubits, i)
		sb.WriteString(basisStyle.Render(basis))
		sb.WriteString(strings.Repeat(" ", basisPad))
		sb.WriteString(ampStyle.Render(formatAmp(amp)))
		sb.WriteString("  ")
		sb.WriteString(renderBar(p))
		sb.WriteString(dimStyle.Render(fmt.Sprintf(" %5.1f%%", p*100)))
		if i < len(state)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func (m Model) renderSteps() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Circuit"))
	sb.WriteString("\n\n")

	for i, s := range m.steps {
		switch {
		case i < m.next:
			sb.WriteString(stepDoneStyle.Render(fmt.Sprintf("✓ %s", s.label)))
		case i == m.next:
			sb.WriteString(stepNextStyle.Render(fmt.Sprintf("▸ %s", s.label)))
		default:
			sb.WriteString(dimStyle.Render(fmt.Sprintf("  %s", s.label)))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	if m.next == len(m.steps) {
		sb.WriteString(dimStyle.Render("done, r to rerun"))
	} else {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("step %d/%d", m.next, len(m.steps))))
	}
	return sb.String()
}

func renderBar(p float64) string {
	filled := int(p*barW + 0.5)
	if filled > barW {
		filled = barW
	}
	return barStyle.Render(strings.Repeat("█", filled)) +
		dimStyle.Render(strings.Repeat("░", barW-filled))
}

func formatAmp(a qsim.Complex) string {
	return fmt.Sprintf("%+.3f%+.3fi", real(a), imag(a))
}

func normSqrdOf(a qsim.Complex) float64 {
	m := cmplx.Abs(a)
	return math.Min(m*m, 1)
}
