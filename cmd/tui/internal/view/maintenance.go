package view

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ptorrado/predio/internal/maintenance"
)

type MaintenanceModel struct {
	CommonModel
	maintService *maintenance.Service

	table    table.Model
	requests []*maintenance.Request

	loading bool
	err     error
	status  string
}

func NewMaintenanceModel(maintSvc *maintenance.Service) MaintenanceModel {
	columns := []table.Column{
		{Title: "Reported", Width: 12},
		{Title: "Apartment", Width: 10},
		{Title: "Title", Width: 28},
		{Title: "Priority", Width: 8},
		{Title: "Status", Width: 12},
		{Title: "Cost", Width: 10},
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

	return MaintenanceModel{
		maintService: maintSvc,
		table:        t,
	}
}

func (m MaintenanceModel) Title() string { return "Maintenance" }
func (m MaintenanceModel) ShortHelp() string {
	return "Esc: back | s: advance status | r: refresh"
}

func (m MaintenanceModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m MaintenanceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadMaintenanceMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.requests = msg.requests
		m.refreshTable()

		return m, nil

	case maintenanceSavedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = "Updated"
		}

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "s":
			idx := m.table.Cursor()
			if idx >= 0 && idx < len(m.requests) {
				return m, m.advanceStatusCmd(m.requests[idx])
			}
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m MaintenanceModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading maintenance requests...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := tableView

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *MaintenanceModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.requests))
	for _, r := range m.requests {
		aptNumber := "-"
		if r.Apartment != nil {
			aptNumber = r.Apartment.Number
		}

		rows = append(rows, table.Row{
			FormatDate(r.ReportedDate),
			aptNumber,
			r.Title,
			string(r.Priority),
			string(r.Status),
			FormatAmount(r.Cost),
		})
	}
	m.table.SetRows(rows)
}

// nextStatus walks a request one step through its lifecycle. Completed is
// terminal.
func nextStatus(s maintenance.Status) maintenance.Status {
	switch s {
	case maintenance.StatusReported:
		return maintenance.StatusScheduled
	case maintenance.StatusScheduled:
		return maintenance.StatusInProgress
	case maintenance.StatusInProgress:
		return maintenance.StatusCompleted
	}

	return s
}

// Messages

type loadMaintenanceMsg struct {
	requests []*maintenance.Request
	err      error
}

func (m MaintenanceModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		requests, err := m.maintService.List(ctx, maintenance.ListFilter{})
		return loadMaintenanceMsg{requests: requests, err: err}
	}
}

type maintenanceSavedMsg struct {
	err error
}

func (m MaintenanceModel) advanceStatusCmd(r *maintenance.Request) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		next := nextStatus(r.Status)
		if next == r.Status {
			return maintenanceSavedMsg{}
		}

		r.Status = next

		if next == maintenance.StatusCompleted && r.CompletedDate == nil {
			now := time.Now()
			r.CompletedDate = &now
		}

		err := m.maintService.Update(ctx, r)
		return maintenanceSavedMsg{err: err}
	}
}
