package authform

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"taskmaster-tui/internal/api"
	"taskmaster-tui/internal/theme"
)

// LoginSubmitMsg is dispatched when the login form is submitted.
type LoginSubmitMsg struct {
	Email    string
	Password string
}

// RegisterSubmitMsg is dispatched when the registration form is submitted.
type RegisterSubmitMsg struct {
	Request api.RegisterRequest
}

// Tab selects which auth form is active.
type Tab int

const (
	TabLogin Tab = iota
	TabRegister
)

// emailPattern mirrors the validation the web client shipped with.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	firstName string
	lastName  string
	phone     string
	email     string
	password  string
}

// Model is the Bubble Tea model for the login/register view.
type Model struct {
	form   *huh.Form
	fb     *formBindings
	tab    Tab
	width  int
	height int
}

// New creates a new auth form model showing the login tab.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		tab:    TabLogin,
		width:  width,
		height: height,
	}
}

// Start initializes the form for the current tab.
func (m *Model) Start() tea.Cmd {
	m.form = m.buildForm()
	return m.form.Init()
}

// SwitchTab toggles between login and registration, clearing field state
// like the web client's tab change did.
func (m *Model) SwitchTab() tea.Cmd {
	if m.tab == TabLogin {
		m.tab = TabRegister
	} else {
		m.tab = TabLogin
	}
	*m.fb = formBindings{}
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the auth form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "ctrl+t" {
		return m, m.SwitchTab()
	}

	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		submit := m.handleSubmit()
		// Rebuild so a failed attempt can be resubmitted.
		restart := m.Start()
		return m, tea.Batch(submit, restart)
	}
	if m.form.State == huh.StateAborted {
		// There is nowhere to go back to from the entry view; reopen it.
		return m, m.Start()
	}

	return m, cmd
}

// View renders the auth form with its tab header.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	active := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	inactive := lipgloss.NewStyle().Foreground(theme.ColorGray)

	loginTab := active.Render("Login")
	registerTab := inactive.Render("Register")
	if m.tab == TabRegister {
		loginTab = inactive.Render("Login")
		registerTab = active.Render("Register")
	}

	tabs := lipgloss.JoinHorizontal(lipgloss.Top,
		loginTab, "  |  ", registerTab,
		theme.HelpStyle.Render("   ctrl+t switch"),
	)

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1).
		Render("Welcome to TaskMaster")

	content := lipgloss.JoinVertical(lipgloss.Left,
		title, tabs, "", m.form.View())

	return lipgloss.NewStyle().Padding(1, 2).Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	var fields []huh.Field

	if m.tab == TabRegister {
		fields = append(fields,
			huh.NewInput().
				Title("First Name").
				Value(&m.fb.firstName).
				Validate(validateRequired("First Name")),
			huh.NewInput().
				Title("Last Name").
				Value(&m.fb.lastName).
				Validate(validateRequired("Last Name")),
		)
	}

	fields = append(fields,
		huh.NewInput().
			Title("Email").
			Placeholder("you@example.com").
			Value(&m.fb.email).
			Validate(validateEmail),
	)

	if m.tab == TabRegister {
		fields = append(fields,
			huh.NewInput().
				Title("Phone Number").
				Value(&m.fb.phone),
		)
	}

	passwordValidate := validateLoginPassword
	if m.tab == TabRegister {
		passwordValidate = validateRegisterPassword
	}
	fields = append(fields,
		huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&m.fb.password).
			Validate(passwordValidate),
	)

	return huh.NewForm(huh.NewGroup(fields...)).
		WithWidth(m.formWidth()).
		WithHeight(m.formHeight())
}

func (m Model) handleSubmit() tea.Cmd {
	if m.tab == TabLogin {
		email := m.fb.email
		password := m.fb.password
		return func() tea.Msg {
			return LoginSubmitMsg{Email: email, Password: password}
		}
	}

	req := api.RegisterRequest{
		FirstName: strings.TrimSpace(m.fb.firstName),
		LastName:  strings.TrimSpace(m.fb.lastName),
		Phone:     strings.TrimSpace(m.fb.phone),
		Email:     m.fb.email,
		Password:  m.fb.password,
	}
	return func() tea.Msg {
		return RegisterSubmitMsg{Request: req}
	}
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 80 {
		w = 80
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 6
	if h < 10 {
		h = 10
	}
	return h
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validateEmail(s string) error {
	if s == "" {
		return errors.New("Email is required")
	}
	if !emailPattern.MatchString(s) {
		return errors.New("Please enter a valid email")
	}
	return nil
}

// validateLoginPassword applies the login tab's lighter check.
func validateLoginPassword(s string) error {
	if s == "" {
		return errors.New("Password is required")
	}
	if len(s) < 8 {
		return errors.New("Password must be at least 8 characters")
	}
	return nil
}

// validateRegisterPassword applies the full registration requirements,
// naming the first unmet rule.
func validateRegisterPassword(s string) error {
	if s == "" {
		return errors.New("Password is required")
	}
	checks := []struct {
		ok  bool
		msg string
	}{
		{len(s) >= 8, "at least 8 characters"},
		{strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ"), "at least one uppercase letter"},
		{strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz"), "at least one lowercase letter"},
		{strings.ContainsAny(s, "0123456789"), "at least one number"},
		{strings.ContainsAny(s, `!@#$%^&*(),.?":{}|<>`), "at least one special character"},
	}
	for _, c := range checks {
		if !c.ok {
			return errors.New("Password needs " + c.msg)
		}
	}
	return nil
}
