package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tpv/internal/money"
	"github.com/MrJamesThe3rd/tpv/internal/pos"
	"github.com/MrJamesThe3rd/tpv/internal/sale"
	"github.com/MrJamesThe3rd/tpv/internal/store"
)

type posState int

const (
	posStateBrowse posState = iota
	posStateCustomer
)

// POSModel is the till: a product table on the left, the cart on the right.
// The cart refuses quantities above the stock shown in the table.
type POSModel struct {
	store *store.Store
	sales *sale.Service

	state    posState
	table    table.Model
	products []pos.Product
	cart     *sale.Cart
	form     *huh.Form

	status string
	err    error
}

func NewPOSModel(st *store.Store, sales *sale.Service) POSModel {
	columns := []table.Column{
		{Title: "Producto", Width: 24},
		{Title: "Categoría", Width: 18},
		{Title: "Precio", Width: 12},
		{Title: "Stock", Width: 8},
	}

	return POSModel{
		store: st,
		sales: sales,
		table: newTable(columns, 15),
		cart:  sale.NewCart(st.GeneralCustomerID()),
	}
}

func (m POSModel) Title() string { return "Punto de venta" }

func (m POSModel) ShortHelp() string {
	if m.state == posStateCustomer {
		return "Enter: elegir | Esc: cancelar"
	}

	return "Enter/+: añadir | -: quitar uno | x: quitar línea | c: cliente | p: cobrar | Esc: volver"
}

func (m POSModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m POSModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadProductsMsg:
		m.products = msg.products
		m.refreshTable()

		return m, nil

	case checkoutResultMsg:
		m.err = msg.err

		switch {
		case msg.err == nil:
			m.status = fmt.Sprintf("Venta registrada: %s por %s", msg.sale.InvoiceNumber, money.Format(msg.sale.Total))
			m.cart = sale.NewCart(m.store.GeneralCustomerID())
		case msg.sale.ID != "":
			m.status = fmt.Sprintf("Venta %s registrada con errores de stock", msg.sale.InvoiceNumber)
			m.cart = sale.NewCart(m.store.GeneralCustomerID())
		default:
			m.status = ""
		}

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	if m.state == posStateCustomer {
		return m.updateCustomer(msg)
	}

	return m.updateBrowse(msg)
}

func (m POSModel) selected() (pos.Product, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.products) {
		return pos.Product{}, false
	}

	return m.products[idx], true
}

func (m POSModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		return m, Back
	case "enter", "+":
		if p, ok := m.selected(); ok {
			m.setResult(m.cart.Add(p), fmt.Sprintf("%s añadido", p.Name))
		}

		return m, nil
	case "-":
		if p, ok := m.selected(); ok {
			m.decrement(p)
		}

		return m, nil
	case "x":
		if p, ok := m.selected(); ok {
			m.cart.Remove(p.ID)
		}

		return m, nil
	case "c":
		return m.enterCustomer()
	case "p":
		if m.cart.Len() == 0 {
			m.setResult(sale.ErrEmptyCart, "")
			return m, nil
		}

		return m, m.checkoutCmd(m.cart.Request())
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m *POSModel) decrement(p pos.Product) {
	for _, l := range m.cart.Lines() {
		if l.ProductID == p.ID {
			m.cart.SetQuantity(p, l.Quantity.Sub(decimal.NewFromInt(1)))
			return
		}
	}
}

func (m *POSModel) setResult(err error, status string) {
	m.err = err
	if err == nil {
		m.status = status
	}
}

func (m POSModel) enterCustomer() (tea.Model, tea.Cmd) {
	customerID := m.cart.CustomerID

	var opts []huh.Option[string]
	for _, c := range m.store.Customers() {
		opts = append(opts, huh.NewOption(c.Name, c.ID))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("customer").
				Title("Cliente").
				Options(opts...).
				Value(&customerID),
		),
	).WithWidth(40).WithShowHelp(false)

	m.state = posStateCustomer
	m.table.Blur()

	return m, m.form.Init()
}

func (m POSModel) updateCustomer(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = posStateBrowse
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

	if id := m.form.GetString("customer"); id != "" {
		m.cart.CustomerID = id
	}

	m.state = posStateBrowse
	m.form = nil
	m.table.Focus()

	return m, nil
}

func (m POSModel) View() string {
	left := tableBorder.Render(m.table.View())

	right := m.viewCart()
	if m.state == posStateCustomer && m.form != nil {
		right = panelStyle.Width(44).Render(m.form.View())
	}

	content := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	switch {
	case m.err != nil:
		content = errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n" + content
	case m.status != "":
		content = faintStyle.Render(m.status) + "\n" + content
	}

	return paddedStyle.Render(content)
}

func (m POSModel) viewCart() string {
	var b strings.Builder

	customer, ok := m.store.Customer(m.cart.CustomerID)
	name := pos.DeletedCustomer
	if ok {
		name = customer.Name
	}

	fmt.Fprintf(&b, "Cliente: %s\n\n", activeStyle(name))

	if m.cart.Len() == 0 {
		b.WriteString(faintStyle.Render("Carrito vacío"))
	}

	for _, l := range m.cart.Lines() {
		fmt.Fprintf(&b, "%s x %s\n  %s\n", l.Quantity, l.Name, money.Format(l.Total()))
	}

	fmt.Fprintf(&b, "\nTotal: %s", lipgloss.NewStyle().Bold(true).Render(money.Format(m.cart.Total())))

	return panelStyle.Width(44).Render(b.String())
}

func (m *POSModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.products))
	for _, p := range m.products {
		rows = append(rows, table.Row{p.Name, p.Category, money.Format(p.Price), p.Stock.String()})
	}

	m.table.SetRows(rows)

	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(0)
	}
}

type loadProductsMsg struct {
	products []pos.Product
}

func (m POSModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		return loadProductsMsg{products: m.store.Products()}
	}
}

type checkoutResultMsg struct {
	sale pos.Sale
	err  error
}

func (m POSModel) checkoutCmd(req sale.Request) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		recorded, err := m.sales.Checkout(ctx, req)

		return checkoutResultMsg{sale: recorded, err: err}
	}
}
