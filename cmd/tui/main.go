package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/ptorrado/predio/cmd/tui/internal/view"
	"github.com/ptorrado/predio/internal/apartment"
	apartmentStore "github.com/ptorrado/predio/internal/apartment/store"
	"github.com/ptorrado/predio/internal/config"
	"github.com/ptorrado/predio/internal/database"
	"github.com/ptorrado/predio/internal/maintenance"
	maintenanceStore "github.com/ptorrado/predio/internal/maintenance/store"
	"github.com/ptorrado/predio/internal/payment"
	paymentStore "github.com/ptorrado/predio/internal/payment/store"
	"github.com/ptorrado/predio/internal/tenant"
	tenantStore "github.com/ptorrado/predio/internal/tenant/store"
)

type model struct {
	apartmentService   *apartment.Service
	tenantService      *tenant.Service
	paymentService     *payment.Service
	maintenanceService *maintenance.Service

	currentView View

	apartmentsView  view.ApartmentsModel
	tenantsView     view.TenantsModel
	paymentsView    view.PaymentsModel
	maintenanceView view.MaintenanceModel
}

type View int

const (
	ViewMenu        View = 0
	ViewApartments  View = 1
	ViewTenants     View = 2
	ViewPayments    View = 3
	ViewMaintenance View = 4
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	aptSvc := apartment.NewService(apartmentStore.New(db))
	tenantSvc := tenant.NewService(tenantStore.New(db))
	paySvc := payment.NewService(paymentStore.New(db))
	maintSvc := maintenance.NewService(maintenanceStore.New(db))

	return model{
		apartmentService:   aptSvc,
		tenantService:      tenantSvc,
		paymentService:     paySvc,
		maintenanceService: maintSvc,
		currentView:        ViewMenu,
		apartmentsView:     view.NewApartmentsModel(aptSvc),
		tenantsView:        view.NewTenantsModel(tenantSvc, aptSvc),
		paymentsView:       view.NewPaymentsModel(paySvc),
		maintenanceView:    view.NewMaintenanceModel(maintSvc),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewApartments
				m.apartmentsView = view.NewApartmentsModel(m.apartmentService)

				return m, m.apartmentsView.Init()
			case "2":
				m.currentView = ViewTenants
				m.tenantsView = view.NewTenantsModel(m.tenantService, m.apartmentService)

				return m, m.tenantsView.Init()
			case "3":
				m.currentView = ViewPayments
				m.paymentsView = view.NewPaymentsModel(m.paymentService)

				return m, m.paymentsView.Init()
			case "4":
				m.currentView = ViewMaintenance
				m.maintenanceView = view.NewMaintenanceModel(m.maintenanceService)

				return m, m.maintenanceView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewApartments:
		var newModel tea.Model
		newModel, cmd = m.apartmentsView.Update(msg)
		m.apartmentsView = newModel.(view.ApartmentsModel)
	case ViewTenants:
		var newModel tea.Model
		newModel, cmd = m.tenantsView.Update(msg)
		m.tenantsView = newModel.(view.TenantsModel)
	case ViewPayments:
		var newModel tea.Model
		newModel, cmd = m.paymentsView.Update(msg)
		m.paymentsView = newModel.(view.PaymentsModel)
	case ViewMaintenance:
		var newModel tea.Model
		newModel, cmd = m.maintenanceView.Update(msg)
		m.maintenanceView = newModel.(view.MaintenanceModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Predio TUI\n\n" +
				"1. Apartments\n" +
				"2. Tenants\n" +
				"3. Payments\n" +
				"4. Maintenance\n\n" +
				"q. Quit",
		)
	case ViewApartments:
		return m.apartmentsView.View()
	case ViewTenants:
		return m.tenantsView.View()
	case ViewPayments:
		return m.paymentsView.View()
	case ViewMaintenance:
		return m.maintenanceView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
