package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/tpv/internal/money"
	"github.com/MrJamesThe3rd/tpv/internal/pos"
	"github.com/MrJamesThe3rd/tpv/internal/stock"
	"github.com/MrJamesThe3rd/tpv/internal/store"
)

type stockState int

const (
	stockStateBrowse stockState = iota
	stockStateAdjust
)

// StockModel shows the catalogue with its stock levels and, for users allowed
// to write stock, applies signed adjustments to the selected product.
type StockModel struct {
	store    *store.Store
	stock    *stock.Service
	canWrite bool

	state    stockState
	table    table.Model
	products []pos.Product
	lowOnly  bool

	form   *huh.Form
	status string
	err    error
}

func NewStockModel(st *store.Store, svc *stock.Service, canWrite bool) StockModel {
	columns := []table.Column{
		{Title: "Producto", Width: 24},
		{Title: "Categoría", Width: 18},
		{Title: "Precio", Width: 12},
		{Title: "Stock", Width: 8},
		{Title: "Proveedor", Width: 26},
		{Title: "", Width: 6},
	}

	return StockModel{
		store:    st,
		stock:    svc,
		canWrite: canWrite,
		table:    newTable(columns, 15),
	}
}

func (m StockModel) Title() string { return "Stock" }

func (m StockModel) ShortHelp() string {
	if m.state == stockStateAdjust {
		return "Enter: aplicar | Esc: cancelar"
	}

	help := "Esc: volver | b: solo stock bajo | r: recargar"
	if m.canWrite {
		help += " | a: ajustar"
	}

	return help
}

func (m StockModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m StockModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadStockMsg:
		m.products = msg.products
		m.refreshTable()

		return m, nil

	case adjustResultMsg:
		m.state = stockStateBrowse
		m.form = nil
		m.table.Focus()

		if msg.err != nil {
			m.err = msg.err
			m.status = ""

			return m, nil
		}

		m.err = nil
		m.status = fmt.Sprintf("%s: stock %s", msg.product.Name, msg.product.Stock)

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	if m.state == stockStateAdjust {
		return m.updateAdjust(msg)
	}

	return m.updateBrowse(msg)
}

func (m StockModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			return m, m.loadCmd()
		case "b":
			m.lowOnly = !m.lowOnly
			return m, m.loadCmd()
		case "a":
			if m.canWrite {
				return m.enterAdjust()
			}
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m StockModel) enterAdjust() (tea.Model, tea.Cmd) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.products) {
		return m, nil
	}

	var adjustment string

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("adjustment").
				Title("Unidades").
				Description("Entero con signo: 12 añade, -3 retira").
				Value(&adjustment).
				Validate(func(s string) error {
					_, err := stock.ParseAdjustment(s)
					return err
				}),
		),
	).WithWidth(40).WithShowHelp(false)

	m.state = stockStateAdjust
	m.table.Blur()

	return m, m.form.Init()
}

func (m StockModel) updateAdjust(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = stockStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.adjustCmd(m.products[m.table.Cursor()].ID, m.form.GetString("adjustment"))
}

func (m StockModel) View() string {
	filter := "todos"
	if m.lowOnly {
		filter = "stock bajo"
	}

	header := fmt.Sprintf("Filtro: [b] %s | %d productos", activeStyle(filter), len(m.products))

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableBorder.Render(m.table.View()),
	)

	if m.state == stockStateAdjust && m.form != nil {
		p := m.products[m.table.Cursor()]
		panel := panelStyle.Width(44).Render(
			fmt.Sprintf("Ajustar stock\n\n%s (actual: %s)\n\n%s", p.Name, p.Stock, m.form.View()),
		)
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	switch {
	case m.err != nil:
		content = errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n" + content
	case m.status != "":
		content = faintStyle.Render(m.status) + "\n" + content
	}

	return paddedStyle.Render(content)
}

func (m *StockModel) refreshTable() {
	r := m.store.Resolver()

	rows := make([]table.Row, 0, len(m.products))
	for _, p := range m.products {
		flag := ""
		if m.stock.IsLow(p) {
			flag = "BAJO"
		}

		rows = append(rows, table.Row{
			p.Name,
			p.Category,
			money.Format(p.Price),
			p.Stock.String(),
			r.SupplierName(p.SupplierID),
			flag,
		})
	}

	m.table.SetRows(rows)

	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(0)
	}
}

type loadStockMsg struct {
	products []pos.Product
}

func (m StockModel) loadCmd() tea.Cmd {
	lowOnly := m.lowOnly

	return func() tea.Msg {
		if lowOnly {
			return loadStockMsg{products: m.stock.LowStock()}
		}

		return loadStockMsg{products: m.store.Products()}
	}
}

type adjustResultMsg struct {
	product pos.Product
	err     error
}

func (m StockModel) adjustCmd(productID, input string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		p, err := m.stock.Adjust(ctx, productID, input)

		return adjustResultMsg{product: p, err: err}
	}
}
