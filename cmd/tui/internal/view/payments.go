package view

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ptorrado/predio/internal/payment"
)

type PaymentsModel struct {
	CommonModel
	paymentService *payment.Service

	table    table.Model
	payments []*payment.Payment

	loading bool
	err     error
	status  string
}

func NewPaymentsModel(paySvc *payment.Service) PaymentsModel {
	columns := []table.Column{
		{Title: "Due", Width: 12},
		{Title: "Apartment", Width: 10},
		{Title: "Tenant", Width: 22},
		{Title: "Amount", Width: 10},
		{Title: "Status", Width: 10},
		{Title: "Paid", Width: 12},
		{Title: "Method", Width: 14},
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

	return PaymentsModel{
		paymentService: paySvc,
		table:          t,
	}
}

func (m PaymentsModel) Title() string { return "Payments" }
func (m PaymentsModel) ShortHelp() string {
	return "Esc: back | p: mark paid | r: refresh"
}

func (m PaymentsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m PaymentsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadPaymentsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.payments = msg.payments
		m.refreshTable()

		return m, nil

	case paymentSavedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = "Marked paid"
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
		case "p":
			idx := m.table.Cursor()
			if idx >= 0 && idx < len(m.payments) {
				return m, m.markPaidCmd(m.payments[idx])
			}
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m PaymentsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading payments...")
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

var overdueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

func (m *PaymentsModel) refreshTable() {
	now := time.Now()

	rows := make([]table.Row, 0, len(m.payments))
	for _, p := range m.payments {
		aptNumber := "-"
		if p.Apartment != nil {
			aptNumber = p.Apartment.Number
		}

		tenantName := "-"
		if p.Booking != nil {
			tenantName = p.Booking.TenantName
		}

		status := string(p.Status)
		if payment.IsOverdue(p, now) {
			status = overdueStyle.Render("OVERDUE")
		}

		rows = append(rows, table.Row{
			FormatDate(p.DueDate),
			aptNumber,
			tenantName,
			FormatAmount(p.Amount),
			status,
			FormatOptionalDate(p.PaidDate),
			p.PaymentMethod,
		})
	}
	m.table.SetRows(rows)
}

// Messages

type loadPaymentsMsg struct {
	payments []*payment.Payment
	err      error
}

func (m PaymentsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		payments, err := m.paymentService.List(ctx, payment.ListFilter{})
		return loadPaymentsMsg{payments: payments, err: err}
	}
}

type paymentSavedMsg struct {
	err error
}

func (m PaymentsModel) markPaidCmd(p *payment.Payment) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		now := time.Now()
		p.Status = payment.StatusPaid
		p.PaidDate = &now

		if p.PaymentMethod == "" {
			p.PaymentMethod = "cash"
		}

		err := m.paymentService.Update(ctx, p)
		return paymentSavedMsg{err: err}
	}
}
