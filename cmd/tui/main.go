package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/tpv/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/tpv/internal/app"
	"github.com/MrJamesThe3rd/tpv/internal/auth"
	"github.com/MrJamesThe3rd/tpv/internal/config"
)

type menuItem struct {
	label  string
	module auth.Module
	need   auth.Access
	open   func(a *app.App, u auth.User) view.View
}

// Reports have no module of their own; every signed-in role may read them.
var menu = []menuItem{
	{"Punto de venta", auth.ModuleSales, auth.AccessWrite, func(a *app.App, _ auth.User) view.View {
		return view.NewPOSModel(a.Store, a.Sales)
	}},
	{"Historial de ventas", auth.ModuleSales, auth.AccessRead, func(a *app.App, _ auth.User) view.View {
		return view.NewHistoryModel(a.Reports, a.Invoices)
	}},
	{"Stock", auth.ModuleStock, auth.AccessRead, func(a *app.App, u auth.User) view.View {
		return view.NewStockModel(a.Store, a.Stock, auth.CanWrite(u.Role, auth.ModuleStock))
	}},
	{"Informes", "", auth.AccessNone, func(a *app.App, _ auth.User) view.View {
		return view.NewReportsModel(a.Reports)
	}},
	{"Importar productos", auth.ModuleProducts, auth.AccessWrite, func(a *app.App, _ auth.User) view.View {
		return view.NewImportModel(a.Importer)
	}},
	{"Exportar facturas", auth.ModuleSales, auth.AccessRead, func(a *app.App, _ auth.User) view.View {
		return view.NewExportModel(a.Invoices, a.Store.Now)
	}},
}

type model struct {
	app *app.App

	login   view.LoginModel
	user    *auth.User
	items   []menuItem
	current view.View
}

func newModel(a *app.App) model {
	return model{app: a, login: view.NewLoginModel(a.Auth)}
}

func (m model) Init() tea.Cmd {
	return m.login.Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.user != nil && m.current == nil {
			return m.updateMenu(msg)
		}
	case view.LoggedInMsg:
		m.user = &msg.User
		m.items = allowed(msg.User)

		return m, nil
	case view.BackMsg:
		m.current = nil
		return m, nil
	}

	if m.user == nil {
		next, cmd := m.login.Update(msg)
		m.login = next.(view.LoginModel)

		return m, cmd
	}

	if m.current == nil {
		return m, nil
	}

	next, cmd := m.current.Update(msg)
	m.current = next.(view.View)

	return m, cmd
}

func (m model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "q":
		return m, tea.Quit
	case "s":
		m.user = nil
		m.login = view.NewLoginModel(m.app.Auth)

		return m, m.login.Init()
	default:
		var n int
		if _, err := fmt.Sscanf(key, "%d", &n); err != nil || n < 1 || n > len(m.items) {
			return m, nil
		}

		m.current = m.items[n-1].open(m.app, *m.user)

		return m, m.current.Init()
	}
}

func allowed(u auth.User) []menuItem {
	var out []menuItem

	for _, it := range menu {
		if it.module == "" || auth.Permission(u.Role, it.module) >= it.need {
			out = append(out, it)
		}
	}

	return out
}

func (m model) View() string {
	if m.user == nil {
		return m.login.View()
	}

	if m.current != nil {
		help := lipgloss.NewStyle().Faint(true).Render(m.current.ShortHelp())
		title := lipgloss.NewStyle().Bold(true).Render(m.current.Title())

		return lipgloss.JoinVertical(lipgloss.Left, title, m.current.View(), help)
	}

	var b strings.Builder

	fmt.Fprintf(&b, "%s\n%s (%s)\n\n", m.app.Store.Settings().CompanyName, m.user.DisplayName, m.user.Role)

	for i, it := range m.items {
		fmt.Fprintf(&b, "%d. %s\n", i+1, it.label)
	}

	b.WriteString("\ns. Cambiar de usuario\nq. Salir")

	return lipgloss.NewStyle().Padding(2).Render(b.String())
}

func main() {
	_ = godotenv.Load()

	f, err := tea.LogToFile("tpv-tui.log", "")
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to open log file:", err)
		os.Exit(1)
	}
	defer f.Close()

	slog.SetDefault(slog.New(slog.NewTextHandler(f, nil)))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	a, err := app.New(context.Background(), cfg)
	if err != nil {
		slog.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	p := tea.NewProgram(newModel(a), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
	}
}
