package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tpv/internal/money"
	"github.com/MrJamesThe3rd/tpv/internal/report"
)

var reportPeriods = []report.Period{report.Day, report.Week, report.Month}

var periodLabels = map[report.Period]string{
	report.Day:   "Hoy",
	report.Week:  "Esta semana",
	report.Month: "Este mes",
}

var barWidthDecimal = decimal.NewFromInt(30)

type ReportsModel struct {
	reports   *report.Service
	periodIdx int

	report    report.Report
	dashboard report.Dashboard
}

func NewReportsModel(svc *report.Service) ReportsModel {
	return ReportsModel{reports: svc}
}

func (m ReportsModel) Title() string { return "Informes" }

func (m ReportsModel) ShortHelp() string {
	return "←/→: periodo | r: recargar | Esc: volver"
}

func (m ReportsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m ReportsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadReportMsg:
		m.report = msg.report
		m.dashboard = msg.dashboard

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "right", "l":
			m.periodIdx = (m.periodIdx + 1) % len(reportPeriods)
			return m, m.loadCmd()
		case "left", "h":
			m.periodIdx = (m.periodIdx + len(reportPeriods) - 1) % len(reportPeriods)
			return m, m.loadCmd()
		case "r":
			return m, m.loadCmd()
		}
	}

	return m, nil
}

func (m ReportsModel) View() string {
	tabs := make([]string, len(reportPeriods))
	for i, p := range reportPeriods {
		label := periodLabels[p]
		if i == m.periodIdx {
			label = activeStyle("[" + label + "]")
		}

		tabs[i] = label
	}

	summary := fmt.Sprintf(
		"Desde %s\n\nVentas:            %d\nIngresos:          %s\nCategoría líder:   %s (%s)",
		FormatDate(m.report.From),
		m.report.Count,
		money.Format(m.report.TotalRevenue),
		m.report.TopCategory.Name,
		money.Format(m.report.TopCategory.Revenue),
	)

	dashboard := fmt.Sprintf(
		"Total histórico:   %s\nProductos:         %d\nClientes:          %d\nStock bajo:        %d",
		money.Format(m.dashboard.TotalRevenue),
		m.dashboard.ProductCount,
		m.dashboard.CustomerCount,
		m.dashboard.LowStockCount,
	)

	return paddedStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		strings.Join(tabs, "  "),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top,
			panelStyle.Width(50).Render(summary),
			panelStyle.Width(40).Render(dashboard),
		),
		"",
		m.viewCategories(),
	))
}

func (m ReportsModel) viewCategories() string {
	if len(m.report.Categories) == 0 {
		return faintStyle.Render("Sin ventas en el periodo")
	}

	top := m.report.TopCategory.Revenue

	var b strings.Builder

	b.WriteString("Ingresos por categoría\n\n")

	for _, c := range m.report.Categories {
		n := 0
		if top.IsPositive() {
			n = int(c.Revenue.Div(top).Mul(barWidthDecimal).IntPart())
		}

		fmt.Fprintf(&b, "%-20s %s %s\n", c.Name, activeStyle(strings.Repeat("█", n)), money.Format(c.Revenue))
	}

	return b.String()
}

type loadReportMsg struct {
	report    report.Report
	dashboard report.Dashboard
}

func (m ReportsModel) loadCmd() tea.Cmd {
	p := reportPeriods[m.periodIdx]

	return func() tea.Msg {
		return loadReportMsg{report: m.reports.Report(p), dashboard: m.reports.Dashboard()}
	}
}
