package main

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/fieldbook/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/fieldbook/internal/booking"
	bookingStore "github.com/MrJamesThe3rd/fieldbook/internal/booking/store"
	"github.com/MrJamesThe3rd/fieldbook/internal/config"
	"github.com/MrJamesThe3rd/fieldbook/internal/database"
	"github.com/MrJamesThe3rd/fieldbook/internal/event"
	eventStore "github.com/MrJamesThe3rd/fieldbook/internal/event/store"
	"github.com/MrJamesThe3rd/fieldbook/internal/finance"
	financeStore "github.com/MrJamesThe3rd/fieldbook/internal/finance/store"
	"github.com/MrJamesThe3rd/fieldbook/internal/inventory"
	inventoryStore "github.com/MrJamesThe3rd/fieldbook/internal/inventory/store"
	"github.com/MrJamesThe3rd/fieldbook/internal/memstore"
	"github.com/MrJamesThe3rd/fieldbook/internal/schedule"
)

type model struct {
	jobService     *booking.Service
	eventService   *event.Service
	financeService *finance.Service
	stockService   *inventory.Service
	detector       *schedule.Detector

	currentView View

	jobsView     view.JobsModel
	calendarView view.CalendarModel
	paymentView  view.PaymentModel
	stockView    view.StockModel
}

type View int

const (
	ViewMenu     View = 0
	ViewJobs     View = 1
	ViewCalendar View = 2
	ViewPayment  View = 3
	ViewStock    View = 4
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	var (
		jobs     booking.Repository
		events   event.Repository
		payments finance.Repository
		items    inventory.Repository
	)

	switch cfg.Store.Driver {
	case "memory":
		ms := memstore.New()
		jobs, events, payments, items = ms, ms, ms, ms
	case "postgres":
		db, err := database.New(cfg.ConnectionString())
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}

		if err := database.EnsureSchema(context.Background(), db); err != nil {
			slog.Error("failed to ensure schema", "error", err)
			os.Exit(1)
		}

		jobs = bookingStore.New(db)
		events = eventStore.New(db)
		payments = financeStore.New(db)
		items = inventoryStore.New(db)
	default:
		slog.Error("unknown store driver", "driver", cfg.Store.Driver)
		os.Exit(1)
	}

	var matcher inventory.Matcher = inventory.ContainsMatcher{}
	if cfg.Inventory.ExactMatch {
		matcher = inventory.ExactMatcher{}
	}

	stockSvc := inventory.NewService(items, matcher)
	detector := schedule.NewDetector(jobs)
	jobSvc := booking.NewService(jobs, detector, events, stockSvc)
	eventSvc := event.NewService(events)
	financeSvc := finance.NewService(payments, jobs, events, stockSvc, finance.Options{
		StrictPayments:     cfg.Finance.StrictPayments,
		RestoreOnReduction: cfg.Inventory.RestoreOnReduction,
	})

	return model{
		jobService:     jobSvc,
		eventService:   eventSvc,
		financeService: financeSvc,
		stockService:   stockSvc,
		detector:       detector,
		currentView:    ViewMenu,
		jobsView:       view.NewJobsModel(jobSvc),
		calendarView:   view.NewCalendarModel(jobSvc, eventSvc, detector),
		paymentView:    view.NewPaymentModel(jobSvc, financeSvc),
		stockView:      view.NewStockModel(stockSvc),
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
				m.currentView = ViewJobs
				m.jobsView = view.NewJobsModel(m.jobService)

				return m, m.jobsView.Init()
			case "2":
				m.currentView = ViewCalendar
				m.calendarView = view.NewCalendarModel(m.jobService, m.eventService, m.detector)

				return m, m.calendarView.Init()
			case "3":
				m.currentView = ViewPayment
				m.paymentView = view.NewPaymentModel(m.jobService, m.financeService)

				return m, m.paymentView.Init()
			case "4":
				m.currentView = ViewStock
				m.stockView = view.NewStockModel(m.stockService)

				return m, m.stockView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewJobs:
		var newModel tea.Model
		newModel, cmd = m.jobsView.Update(msg)
		m.jobsView = newModel.(view.JobsModel)
	case ViewCalendar:
		var newModel tea.Model
		newModel, cmd = m.calendarView.Update(msg)
		m.calendarView = newModel.(view.CalendarModel)
	case ViewPayment:
		var newModel tea.Model
		newModel, cmd = m.paymentView.Update(msg)
		m.paymentView = newModel.(view.PaymentModel)
	case ViewStock:
		var newModel tea.Model
		newModel, cmd = m.stockView.Update(msg)
		m.stockView = newModel.(view.StockModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Fieldbook TUI\n\n" +
				"1. Job Board\n" +
				"2. Day View\n" +
				"3. Record Payment\n" +
				"4. Inventory\n\n" +
				"q. Quit",
		)
	case ViewJobs:
		return m.jobsView.View()
	case ViewCalendar:
		return m.calendarView.View()
	case ViewPayment:
		return m.paymentView.View()
	case ViewStock:
		return m.stockView.View()
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
