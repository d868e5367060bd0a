package view

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/MrJamesThe3rd/tpv/internal/auth"
)

// LoggedInMsg carries the authenticated user back to the menu.
type LoggedInMsg struct {
	User auth.User
}

type LoginModel struct {
	auth *auth.Service
	form *huh.Form
	err  error
}

func NewLoginModel(svc *auth.Service) LoginModel {
	return LoginModel{auth: svc, form: newLoginForm()}
}

func newLoginForm() *huh.Form {
	var username, password string

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("username").
				Title("Usuario").
				Options(
					huh.NewOption("Administrador", "administrador"),
					huh.NewOption("Vendedor", "vendedor"),
					huh.NewOption("Usuario", "usuario"),
				).
				Value(&username),
			huh.NewInput().
				Key("password").
				Title("Contraseña").
				EchoMode(huh.EchoModePassword).
				Value(&password),
		),
	).WithWidth(40).WithShowHelp(false)
}

func (m LoginModel) Title() string { return "Acceso" }

func (m LoginModel) ShortHelp() string { return "Enter: continuar | Ctrl+C: salir" }

func (m LoginModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	user, err := m.auth.Authenticate(m.form.GetString("username"), m.form.GetString("password"))
	if err != nil {
		m.err = err
		m.form = newLoginForm()

		return m, m.form.Init()
	}

	return m, func() tea.Msg { return LoggedInMsg{User: user} }
}

func (m LoginModel) View() string {
	s := "TPV\n\n" + m.form.View()
	if m.err != nil {
		s += "\n" + errorStyle.Render("Usuario o contraseña incorrectos")
	}

	return paddedStyle.Render(panelStyle.Render(s))
}
