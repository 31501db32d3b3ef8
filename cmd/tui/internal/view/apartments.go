package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/ptorrado/predio/internal/apartment"
)

type apartmentsState int

const (
	apartmentsStateBrowse apartmentsState = iota
	apartmentsStateAdd
)

type ApartmentsModel struct {
	CommonModel
	aptService *apartment.Service

	state apartmentsState
	table table.Model
	apts  []*apartment.Apartment
	form  *huh.Form

	loading bool
	err     error
	status  string

	// Form bindings
	formNumber   string
	formFloor    string
	formBedrooms string
	formRent     string
	formStatus   apartment.Status
	formNotes    string
}

func NewApartmentsModel(aptSvc *apartment.Service) ApartmentsModel {
	columns := []table.Column{
		{Title: "Number", Width: 8},
		{Title: "Floor", Width: 6},
		{Title: "Bd", Width: 4},
		{Title: "Ba", Width: 5},
		{Title: "Rent", Width: 10},
		{Title: "Status", Width: 12},
		{Title: "Notes", Width: 30},
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

	return ApartmentsModel{
		aptService: aptSvc,
		table:      t,
	}
}

func (m ApartmentsModel) Title() string { return "Apartments" }
func (m ApartmentsModel) ShortHelp() string {
	if m.state == apartmentsStateAdd {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | a: add | x: delete | r: refresh"
}

func (m ApartmentsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m ApartmentsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadApartmentsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.apts = msg.apts
		m.refreshTable()

		return m, nil

	case apartmentSavedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = "Saved"
		}

		m.state = apartmentsStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case apartmentsStateBrowse:
		return m.updateBrowse(msg)
	case apartmentsStateAdd:
		return m.updateAdd(msg)
	}

	return m, nil
}

func (m ApartmentsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "a":
			return m.enterAddMode()
		case "x":
			idx := m.table.Cursor()
			if idx >= 0 && idx < len(m.apts) {
				return m, m.deleteCmd(m.apts[idx])
			}
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ApartmentsModel) enterAddMode() (tea.Model, tea.Cmd) {
	m.formNumber = ""
	m.formFloor = "0"
	m.formBedrooms = "1"
	m.formRent = ""
	m.formStatus = apartment.StatusAvailable
	m.formNotes = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("number").
				Title("Number").
				Value(&m.formNumber).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("number cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("floor").
				Title("Floor").
				Value(&m.formFloor),

			huh.NewInput().
				Key("bedrooms").
				Title("Bedrooms").
				Value(&m.formBedrooms),

			huh.NewInput().
				Key("rent").
				Title("Monthly rent (EUR)").
				Placeholder("950.00").
				Value(&m.formRent),

			huh.NewSelect[apartment.Status]().
				Key("status").
				Title("Status").
				Options(
					huh.NewOption("Available", apartment.StatusAvailable),
					huh.NewOption("Occupied", apartment.StatusOccupied),
					huh.NewOption("Maintenance", apartment.StatusMaintenance),
				).
				Value(&m.formStatus),

			huh.NewInput().
				Key("notes").
				Title("Notes").
				Value(&m.formNotes),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = apartmentsStateAdd
	m.table.Blur()

	return m, m.form.Init()
}

func (m ApartmentsModel) updateAdd(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = apartmentsStateBrowse
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

func (m ApartmentsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading apartments...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := tableView

	if m.state == apartmentsStateAdd && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render("New Apartment\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *ApartmentsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.apts))
	for _, a := range m.apts {
		rows = append(rows, table.Row{
			a.Number,
			strconv.Itoa(a.Floor),
			strconv.Itoa(a.Bedrooms),
			fmt.Sprintf("%.1f", a.Bathrooms),
			FormatAmount(a.Rent),
			string(a.Status),
			a.Notes,
		})
	}
	m.table.SetRows(rows)
}

// Messages

type loadApartmentsMsg struct {
	apts []*apartment.Apartment
	err  error
}

func (m ApartmentsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		apts, err := m.aptService.List(ctx)
		return loadApartmentsMsg{apts: apts, err: err}
	}
}

type apartmentSavedMsg struct {
	err error
}

func (m ApartmentsModel) saveCmd() tea.Cmd {
	params := apartment.CreateParams{
		Number: m.formNumber,
		Status: m.formStatus,
		Notes:  m.formNotes,
	}

	if n, err := strconv.Atoi(strings.TrimSpace(m.formFloor)); err == nil {
		params.Floor = n
	}

	if n, err := strconv.Atoi(strings.TrimSpace(m.formBedrooms)); err == nil {
		params.Bedrooms = n
	}

	if eur, err := strconv.ParseFloat(strings.TrimSpace(m.formRent), 64); err == nil {
		params.Rent = int64(eur * 100)
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		_, err := m.aptService.Create(ctx, params)
		return apartmentSavedMsg{err: err}
	}
}

func (m ApartmentsModel) deleteCmd(a *apartment.Apartment) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		err := m.aptService.Delete(ctx, a.ID)
		return apartmentSavedMsg{err: err}
	}
}
