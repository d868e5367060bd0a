package view

import (
	"bytes"
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/tpv/internal/invoice"
	"github.com/MrJamesThe3rd/tpv/internal/money"
	"github.com/MrJamesThe3rd/tpv/internal/report"
)

type historyState int

const (
	historyStateBrowse historyState = iota
	historyStateInvoice
)

var historyFilters = []struct {
	label  string
	period report.Period
}{
	{"Todo", ""},
	{"Hoy", report.Day},
	{"Esta semana", report.Week},
	{"Este mes", report.Month},
}

// HistoryModel lists recorded sales, newest first, and previews the invoice
// of the selected one.
type HistoryModel struct {
	reports  *report.Service
	invoices *invoice.Service

	state     historyState
	table     table.Model
	rows      []report.SaleRow
	filterIdx int

	preview viewport.Model
	err     error
}

func NewHistoryModel(reports *report.Service, invoices *invoice.Service) HistoryModel {
	columns := []table.Column{
		{Title: "Fecha", Width: 12},
		{Title: "Factura", Width: 10},
		{Title: "Cliente", Width: 24},
		{Title: "Líneas", Width: 7},
		{Title: "Total", Width: 14},
	}

	return HistoryModel{
		reports:  reports,
		invoices: invoices,
		table:    newTable(columns, 15),
		preview:  viewport.New(80, 20),
	}
}

func (m HistoryModel) Title() string { return "Historial de ventas" }

func (m HistoryModel) ShortHelp() string {
	if m.state == historyStateInvoice {
		return "↑/↓: desplazar | Esc: volver"
	}

	return "Esc: volver | Enter: ver factura | d: periodo | r: recargar"
}

func (m HistoryModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadHistoryMsg:
		m.rows = msg.rows
		m.refreshTable()

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		m.preview.Width = msg.Width - 4
		m.preview.Height = msg.Height - 8

		return m, nil
	}

	if m.state == historyStateInvoice {
		return m.updateInvoice(msg)
	}

	return m.updateBrowse(msg)
}

func (m HistoryModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			return m, m.loadCmd()
		case "d":
			m.filterIdx = (m.filterIdx + 1) % len(historyFilters)
			return m, m.loadCmd()
		case "enter":
			return m.openInvoice()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m HistoryModel) openInvoice() (tea.Model, tea.Cmd) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.rows) {
		return m, nil
	}

	m.err = nil

	doc, err := m.invoices.Document(m.rows[idx].ID)
	if err != nil {
		m.err = err
		return m, nil
	}

	var buf bytes.Buffer
	if err := invoice.Render(&buf, doc); err != nil {
		m.err = err
		return m, nil
	}

	m.preview.SetContent(buf.String())
	m.preview.GotoTop()
	m.state = historyStateInvoice
	m.table.Blur()

	return m, nil
}

func (m HistoryModel) updateInvoice(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = historyStateBrowse
		m.table.Focus()

		return m, nil
	}

	var cmd tea.Cmd
	m.preview, cmd = m.preview.Update(msg)

	return m, cmd
}

func (m HistoryModel) View() string {
	if m.state == historyStateInvoice {
		return paddedStyle.Render(panelStyle.Render(m.preview.View()))
	}

	header := fmt.Sprintf("Filtro: [d] Periodo: %s | %d ventas",
		activeStyle(historyFilters[m.filterIdx].label), len(m.rows))

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableBorder.Render(m.table.View()),
	)

	if m.err != nil {
		content = errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n" + content
	}

	return paddedStyle.Render(content)
}

func (m *HistoryModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.rows))
	for _, s := range m.rows {
		rows = append(rows, table.Row{
			FormatDate(s.Date),
			s.InvoiceNumber,
			s.CustomerName,
			fmt.Sprint(len(s.Items)),
			money.Format(s.Total),
		})
	}

	m.table.SetRows(rows)
	m.table.SetCursor(0)
}

type loadHistoryMsg struct {
	rows []report.SaleRow
}

func (m HistoryModel) loadCmd() tea.Cmd {
	p := historyFilters[m.filterIdx].period

	return func() tea.Msg {
		if p == "" {
			return loadHistoryMsg{rows: m.reports.History()}
		}

		return loadHistoryMsg{rows: m.reports.FilteredHistory(p)}
	}
}
