package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/fieldbook/internal/booking"
	bookingStore "github.com/MrJamesThe3rd/fieldbook/internal/booking/store"
	"github.com/MrJamesThe3rd/fieldbook/internal/client"
	clientStore "github.com/MrJamesThe3rd/fieldbook/internal/client/store"
	"github.com/MrJamesThe3rd/fieldbook/internal/config"
	"github.com/MrJamesThe3rd/fieldbook/internal/database"
	"github.com/MrJamesThe3rd/fieldbook/internal/event"
	eventStore "github.com/MrJamesThe3rd/fieldbook/internal/event/store"
	"github.com/MrJamesThe3rd/fieldbook/internal/finance"
	financeStore "github.com/MrJamesThe3rd/fieldbook/internal/finance/store"
	fieldbookHttp "github.com/MrJamesThe3rd/fieldbook/internal/http"
	calendarHandler "github.com/MrJamesThe3rd/fieldbook/internal/http/calendar"
	clientHandler "github.com/MrJamesThe3rd/fieldbook/internal/http/client"
	eventHandler "github.com/MrJamesThe3rd/fieldbook/internal/http/event"
	importHandler "github.com/MrJamesThe3rd/fieldbook/internal/http/importcsv"
	jobHandler "github.com/MrJamesThe3rd/fieldbook/internal/http/job"
	paymentHandler "github.com/MrJamesThe3rd/fieldbook/internal/http/payment"
	stockHandler "github.com/MrJamesThe3rd/fieldbook/internal/http/stock"
	"github.com/MrJamesThe3rd/fieldbook/internal/importer"
	"github.com/MrJamesThe3rd/fieldbook/internal/inventory"
	inventoryStore "github.com/MrJamesThe3rd/fieldbook/internal/inventory/store"
	"github.com/MrJamesThe3rd/fieldbook/internal/memstore"
	"github.com/MrJamesThe3rd/fieldbook/internal/schedule"
)

type repositories struct {
	clients   client.Repository
	jobs      booking.Repository
	events    event.Repository
	payments  finance.Repository
	inventory inventory.Repository
}

func openRepositories(cfg *config.Config) (*repositories, error) {
	switch cfg.Store.Driver {
	case "memory":
		ms := memstore.New()
		return &repositories{clients: ms, jobs: ms, events: ms, payments: ms, inventory: ms}, nil
	case "postgres":
		db, err := database.New(cfg.ConnectionString())
		if err != nil {
			return nil, err
		}

		if err := database.EnsureSchema(context.Background(), db); err != nil {
			return nil, err
		}

		return &repositories{
			clients:   clientStore.New(db),
			jobs:      bookingStore.New(db),
			events:    eventStore.New(db),
			payments:  financeStore.New(db),
			inventory: inventoryStore.New(db),
		}, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	repos, err := openRepositories(cfg)
	if err != nil {
		slog.Error("failed to open store", "driver", cfg.Store.Driver, "error", err)
		os.Exit(1)
	}

	var matcher inventory.Matcher = inventory.ContainsMatcher{}
	if cfg.Inventory.ExactMatch {
		matcher = inventory.ExactMatcher{}
	}

	var (
		inventoryService = inventory.NewService(repos.inventory, matcher)
		detector         = schedule.NewDetector(repos.jobs)
		bookingService   = booking.NewService(repos.jobs, detector, repos.events, inventoryService)
		eventService     = event.NewService(repos.events)
		clientService    = client.NewService(repos.clients, repos.jobs, repos.events)
		importService    = importer.NewService(inventoryService)
		financeService   = finance.NewService(repos.payments, repos.jobs, repos.events, inventoryService, finance.Options{
			StrictPayments:     cfg.Finance.StrictPayments,
			RestoreOnReduction: cfg.Inventory.RestoreOnReduction,
		})
	)

	router := fieldbookHttp.New(
		clientHandler.NewHandler(clientService),
		jobHandler.NewHandler(bookingService),
		eventHandler.NewHandler(eventService),
		paymentHandler.NewHandler(financeService),
		stockHandler.NewHandler(inventoryService),
		calendarHandler.NewHandler(bookingService, eventService, detector),
		importHandler.NewHandler(importService),
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port, "store", cfg.Store.Driver)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
