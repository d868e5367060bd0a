package view

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/tpv/internal/invoice"
)

type exportState int

const (
	exportStateTimeframe exportState = iota
	exportStatePath
	exportStateExporting
	exportStateResult
)

// ExportModel writes one invoice file per sale of a chosen period.
type ExportModel struct {
	invoices *invoice.Service

	state           exportState
	err             error
	timeframePicker TimeframePicker
	filter          invoice.Filter
	label           string

	form    *huh.Form
	path    string
	spinner spinner.Model
	count   int
	summary string
}

func NewExportModel(svc *invoice.Service, now func() time.Time) ExportModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return ExportModel{
		invoices:        svc,
		state:           exportStateTimeframe,
		timeframePicker: NewTimeframePicker(now),
		path:            "./facturas",
		spinner:         s,
	}
}

func (m ExportModel) Title() string { return "Exportar facturas" }

func (m ExportModel) ShortHelp() string {
	switch m.state {
	case exportStateResult:
		return "Esc: volver al menú"
	case exportStateExporting:
		return "Exportando..."
	}

	return "Esc: volver | Enter: confirmar"
}

func (m ExportModel) Init() tea.Cmd {
	return nil
}

func (m ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if tfMsg, ok := msg.(TimeframeSelectedMsg); ok {
		m.filter = invoice.Filter{StartDate: tfMsg.Start, EndDate: tfMsg.End}
		m.label = tfMsg.Label
		m.form = m.buildPathForm()
		m.state = exportStatePath

		return m, m.form.Init()
	}

	switch m.state {
	case exportStateTimeframe:
		return m.updateTimeframe(msg)
	case exportStatePath:
		return m.updatePath(msg)
	case exportStateExporting:
		return m.updateExporting(msg)
	case exportStateResult:
		return m.updateResult(msg)
	}

	return m, nil
}

func (m ExportModel) updateTimeframe(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc && m.timeframePicker.IsSelecting() {
			return m, Back
		}
	}

	var cmd tea.Cmd
	m.timeframePicker, cmd = m.timeframePicker.Update(msg)

	return m, cmd
}

func (m ExportModel) updatePath(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = exportStateTimeframe
			m.timeframePicker.Reset()

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.path = m.form.GetString("path")
	m.state = exportStateExporting
	m.err = nil

	return m, tea.Batch(m.spinner.Tick, m.runExportCmd(m.filter, m.path))
}

func (m ExportModel) updateExporting(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(exportResultMsg); ok {
		m.state = exportStateResult
		m.err = result.err
		m.count = result.count
		m.summary = result.body

		return m, nil
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)

	return m, cmd
}

func (m ExportModel) updateResult(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m, Back
	}

	return m, nil
}

func (m ExportModel) buildPathForm() *huh.Form {
	path := m.path

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("path").
				Title("Carpeta de destino").
				Description("Se crea si no existe").
				Placeholder("./facturas").
				Value(&path),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m ExportModel) View() string {
	switch m.state {
	case exportStateTimeframe:
		return paddedStyle.Render(m.timeframePicker.View())

	case exportStatePath:
		return paddedStyle.Render(fmt.Sprintf("Periodo: %s\n\n%s", activeStyle(m.label), m.form.View()))

	case exportStateExporting:
		return paddedStyle.Render(fmt.Sprintf("%s Generando facturas...", m.spinner.View()))

	case exportStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ExportModel) viewResult() string {
	if m.err != nil {
		return paddedStyle.Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	header := okStyle.Bold(true).Render(fmt.Sprintf("%d facturas exportadas", m.count))

	return paddedStyle.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header,
			"",
			m.summary,
		),
	)
}

type exportResultMsg struct {
	count int
	body  string
	err   error
}

const exportTimeout = 2 * time.Minute

func (m ExportModel) runExportCmd(filter invoice.Filter, path string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)
		defer cancel()

		items, err := m.invoices.Export(ctx, filter, path)
		if err != nil {
			return exportResultMsg{err: err}
		}

		return exportResultMsg{count: len(items), body: invoice.Summary(items)}
	}
}
