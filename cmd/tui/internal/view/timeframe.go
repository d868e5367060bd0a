package view

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrJamesThe3rd/tpv/internal/report"
)

// Timeframe represents a predefined or custom date range selection.
type Timeframe int

const (
	TimeframeToday Timeframe = iota
	TimeframeThisWeek
	TimeframeThisMonth
	TimeframeAll
	TimeframeCustom
)

func (t Timeframe) String() string {
	switch t {
	case TimeframeToday:
		return "Hoy"
	case TimeframeThisWeek:
		return "Esta semana"
	case TimeframeThisMonth:
		return "Este mes"
	case TimeframeAll:
		return "Todo"
	case TimeframeCustom:
		return "Rango personalizado"
	}

	return "Desconocido"
}

func (t Timeframe) period() (report.Period, bool) {
	switch t {
	case TimeframeToday:
		return report.Day, true
	case TimeframeThisWeek:
		return report.Week, true
	case TimeframeThisMonth:
		return report.Month, true
	}

	return "", false
}

// DateRange returns the half-open range [start, end) covered by a predefined
// timeframe at now. Both are nil for TimeframeAll and TimeframeCustom.
func DateRange(tf Timeframe, now time.Time) (start, end *time.Time) {
	p, ok := tf.period()
	if !ok {
		return nil, nil
	}

	s := report.StartOf(p, now)
	e := now.Add(time.Nanosecond)

	return &s, &e
}

// CustomRange parses two inclusive local dates into a half-open range.
func CustomRange(from, to string) (start, end *time.Time, err error) {
	s, err := time.ParseInLocation(time.DateOnly, from, time.Local)
	if err != nil {
		return nil, nil, errors.New("fecha de inicio no válida (AAAA-MM-DD)")
	}

	e, err := time.ParseInLocation(time.DateOnly, to, time.Local)
	if err != nil {
		return nil, nil, errors.New("fecha de fin no válida (AAAA-MM-DD)")
	}

	if e.Before(s) {
		return nil, nil, errors.New("la fecha de fin es anterior a la de inicio")
	}

	e = e.AddDate(0, 0, 1)

	return &s, &e, nil
}

// TimeframeSelectedMsg is emitted when the user has selected a valid date
// range. Start and End are nil when the whole history was selected.
type TimeframeSelectedMsg struct {
	Label string
	Start *time.Time
	End   *time.Time
}

type timeframeState int

const (
	timeframeStateSelect timeframeState = iota
	timeframeStateCustom
)

// TimeframePicker is a reusable component for selecting a date range.
type TimeframePicker struct {
	state    timeframeState
	selected Timeframe
	now      func() time.Time

	startInput textinput.Model
	endInput   textinput.Model
	focusIndex int

	err error
}

func NewTimeframePicker(now func() time.Time) TimeframePicker {
	si := textinput.New()
	si.Placeholder = "AAAA-MM-DD"
	si.CharLimit = 10
	si.Width = 12
	si.Prompt = "Desde: "

	ei := textinput.New()
	ei.Placeholder = "AAAA-MM-DD"
	ei.CharLimit = 10
	ei.Width = 12
	ei.Prompt = "Hasta: "

	return TimeframePicker{
		state:      timeframeStateSelect,
		selected:   TimeframeThisMonth,
		now:        now,
		startInput: si,
		endInput:   ei,
	}
}

func (m TimeframePicker) Init() tea.Cmd {
	return nil
}

func (m TimeframePicker) Update(msg tea.Msg) (TimeframePicker, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch m.state {
		case timeframeStateSelect:
			return m.updateSelect(msg)
		case timeframeStateCustom:
			if next, cmd, handled := m.updateCustom(msg); handled {
				return next, cmd
			}
		}
	}

	if m.state == timeframeStateCustom {
		return m.updateInputs(msg)
	}

	return m, nil
}

func (m TimeframePicker) updateSelect(msg tea.KeyMsg) (TimeframePicker, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp:
		if m.selected > TimeframeToday {
			m.selected--
		}
	case tea.KeyDown:
		if m.selected < TimeframeCustom {
			m.selected++
		}
	case tea.KeyEnter:
		if m.selected == TimeframeCustom {
			m.state = timeframeStateCustom
			m.focusIndex = 0
			m.startInput.Focus()

			return m, textinput.Blink
		}

		label := m.selected.String()
		start, end := DateRange(m.selected, m.now())

		return m, func() tea.Msg {
			return TimeframeSelectedMsg{Label: label, Start: start, End: end}
		}
	}

	return m, nil
}

func (m TimeframePicker) updateCustom(msg tea.KeyMsg) (TimeframePicker, tea.Cmd, bool) {
	switch msg.String() {
	case "tab", "shift+tab":
		m.focusIndex = (m.focusIndex + 1) % 2
		m.startInput.Blur()
		m.endInput.Blur()

		if m.focusIndex == 0 {
			m.startInput.Focus()
		} else {
			m.endInput.Focus()
		}

		return m, textinput.Blink, true

	case "enter":
		start, end, err := CustomRange(m.startInput.Value(), m.endInput.Value())
		if err != nil {
			m.err = err
			return m, nil, true
		}

		m.err = nil
		label := fmt.Sprintf("%s a %s", m.startInput.Value(), m.endInput.Value())

		return m, func() tea.Msg {
			return TimeframeSelectedMsg{Label: label, Start: start, End: end}
		}, true

	case "esc":
		m.state = timeframeStateSelect
		m.err = nil

		return m, nil, true
	}

	return m, nil, false
}

func (m TimeframePicker) updateInputs(msg tea.Msg) (TimeframePicker, tea.Cmd) {
	var cmds []tea.Cmd
	var c tea.Cmd

	m.startInput, c = m.startInput.Update(msg)
	cmds = append(cmds, c)
	m.endInput, c = m.endInput.Update(msg)
	cmds = append(cmds, c)

	return m, tea.Batch(cmds...)
}

func (m TimeframePicker) View() string {
	errStr := ""
	if m.err != nil {
		errStr = errorStyle.Render(fmt.Sprintf("\n\nError: %v", m.err))
	}

	if m.state == timeframeStateCustom {
		return fmt.Sprintf(
			"Rango personalizado:\n\n%s\n%s\n\n(Enter confirma, Tab cambia de campo, Esc vuelve)%s",
			m.startInput.View(),
			m.endInput.View(),
			errStr,
		)
	}

	s := "Seleccione el periodo:\n\n"
	for i := TimeframeToday; i <= TimeframeCustom; i++ {
		cursor := " "
		if m.selected == i {
			cursor = ">"
		}

		s += fmt.Sprintf("%s %s\n", cursor, i.String())
	}

	s += "\n(Enter selecciona, Esc vuelve)"

	return s + errStr
}

// IsSelecting reports whether the picker shows the list rather than the
// custom range inputs.
func (m TimeframePicker) IsSelecting() bool {
	return m.state == timeframeStateSelect
}

func (m *TimeframePicker) Reset() {
	m.state = timeframeStateSelect
	m.selected = TimeframeThisMonth
	m.err = nil
	m.startInput.SetValue("")
	m.endInput.SetValue("")
}
