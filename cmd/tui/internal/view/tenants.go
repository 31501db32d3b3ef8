package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/ptorrado/predio/internal/apartment"
	"github.com/ptorrado/predio/internal/tenant"
)

type tenantsState int

const (
	tenantsStateBrowse tenantsState = iota
	tenantsStateAdd
)

type TenantsModel struct {
	CommonModel
	tenantService *tenant.Service
	aptService    *apartment.Service

	state   tenantsState
	table   table.Model
	tenants []*tenant.Tenant
	form    *huh.Form

	loading bool
	err     error
	status  string

	// Form bindings
	formApartment uuid.UUID
	formName      string
	formEmail     string
	formPhone     string
}

func NewTenantsModel(tenantSvc *tenant.Service, aptSvc *apartment.Service) TenantsModel {
	columns := []table.Column{
		{Title: "Name", Width: 22},
		{Title: "Apartment", Width: 10},
		{Title: "Email", Width: 26},
		{Title: "Phone", Width: 14},
		{Title: "Start", Width: 12},
		{Title: "End", Width: 12},
		{Title: "Status", Width: 8},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return TenantsModel{
		tenantService: tenantSvc,
		aptService:    aptSvc,
		table:         t,
	}
}

func (m TenantsModel) Title() string { return "Tenants" }
func (m TenantsModel) ShortHelp() string {
	if m.state == tenantsStateAdd {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | a: add | e: end tenancy | x: delete | r: refresh"
}

func (m TenantsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m TenantsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadTenantsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.tenants = msg.tenants
		m.refreshTable()

		return m, nil

	case tenantsFormReadyMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		return m.enterAddMode(msg.apts)

	case tenantSavedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = "Saved"
		}

		m.state = tenantsStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case tenantsStateBrowse:
		return m.updateBrowse(msg)
	case tenantsStateAdd:
		return m.updateAdd(msg)
	}

	return m, nil
}

func (m TenantsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "a":
			return m, m.loadFormOptionsCmd()
		case "e":
			idx := m.table.Cursor()
			if idx >= 0 && idx < len(m.tenants) {
				return m, m.endTenancyCmd(m.tenants[idx])
			}
		case "x":
			idx := m.table.Cursor()
			if idx >= 0 && idx < len(m.tenants) {
				return m, m.deleteCmd(m.tenants[idx])
			}
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m TenantsModel) enterAddMode(apts []*apartment.Apartment) (tea.Model, tea.Cmd) {
	// Occupied apartments are excluded up front; the service re-checks
	// under lock anyway.
	options := make([]huh.Option[uuid.UUID], 0, len(apts))
	for _, a := range apts {
		if a.Status == apartment.StatusOccupied {
			continue
		}

		options = append(options, huh.NewOption(
			fmt.Sprintf("%s (floor %d, %s)", a.Number, a.Floor, a.Status), a.ID,
		))
	}

	if len(options) == 0 {
		m.status = "No free apartments"
		return m, nil
	}

	m.formApartment = uuid.Nil
	m.formName = ""
	m.formEmail = ""
	m.formPhone = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[uuid.UUID]().
				Key("apartment").
				Title("Apartment").
				Options(options...).
				Value(&m.formApartment),

			huh.NewInput().
				Key("name").
				Title("Name").
				Value(&m.formName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("email").
				Title("Email").
				Value(&m.formEmail),

			huh.NewInput().
				Key("phone").
				Title("Phone").
				Value(&m.formPhone),
		),
	).WithWidth(48).WithShowHelp(false)

	m.state = tenantsStateAdd
	m.table.Blur()

	return m, m.form.Init()
}

func (m TenantsModel) updateAdd(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = tenantsStateBrowse
			m.form = nil
			m.table.Focus()

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

	return m, m.saveCmd()
}

func (m TenantsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading tenants...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := tableView

	if m.state == tenantsStateAdd && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(52).
			Render("New Tenant\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *TenantsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.tenants))
	for _, t := range m.tenants {
		aptNumber := "-"
		if t.Apartment != nil {
			aptNumber = t.Apartment.Number
		}

		rows = append(rows, table.Row{
			t.Name,
			aptNumber,
			t.Email,
			t.Phone,
			FormatDate(t.StartDate),
			FormatOptionalDate(t.EndDate),
			string(t.Status),
		})
	}
	m.table.SetRows(rows)
}

// Messages

type loadTenantsMsg struct {
	tenants []*tenant.Tenant
	err     error
}

func (m TenantsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		tenants, err := m.tenantService.List(ctx)
		return loadTenantsMsg{tenants: tenants, err: err}
	}
}

type tenantsFormReadyMsg struct {
	apts []*apartment.Apartment
	err  error
}

func (m TenantsModel) loadFormOptionsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		apts, err := m.aptService.List(ctx)
		return tenantsFormReadyMsg{apts: apts, err: err}
	}
}

type tenantSavedMsg struct {
	err error
}

func (m TenantsModel) saveCmd() tea.Cmd {
	params := tenant.CreateParams{
		ApartmentID: m.formApartment,
		Name:        m.formName,
		Email:       m.formEmail,
		Phone:       m.formPhone,
		StartDate:   time.Now(),
		Status:      tenant.StatusActive,
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		_, err := m.tenantService.Create(ctx, params)
		return tenantSavedMsg{err: err}
	}
}

func (m TenantsModel) endTenancyCmd(t *tenant.Tenant) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		now := time.Now()
		ended := tenant.StatusEnded

		_, err := m.tenantService.Update(ctx, t.ID, tenant.UpdateParams{
			EndDate: &now,
			Status:  &ended,
		})

		return tenantSavedMsg{err: err}
	}
}

func (m TenantsModel) deleteCmd(t *tenant.Tenant) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		err := m.tenantService.Delete(ctx, t.ID)
		return tenantSavedMsg{err: err}
	}
}
