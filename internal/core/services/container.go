package services

import (
	"log/slog"
	"time"

	"github.com/devjsik/exchange_rate_app/internal/core/ports"
	portsrepo "github.com/devjsik/exchange_rate_app/internal/core/ports/repositories"
	portssvc "github.com/devjsik/exchange_rate_app/internal/core/ports/services"
)

// ContainerDeps collects everything the service layer needs from the
// adapters and configuration.
type ContainerDeps struct {
	Repos             *portsrepo.RepositoryProvider
	Source            ports.RateSource
	Cache             ports.RateCache
	RateCacheTTL      time.Duration
	BackfillCallDelay time.Duration
	Logger            *slog.Logger
}

// NewContainer creates the service container with properly initialized
// dependencies.
func NewContainer(deps ContainerDeps) *portssvc.ServiceContainer {
	rateService := NewRateService(
		deps.Source,
		deps.Repos.RateRepo,
		deps.Repos.HistoryRepo,
		deps.Cache,
		deps.RateCacheTTL,
		deps.Logger,
	)
	historyService := NewHistoryService(deps.Repos.RateRepo, deps.Repos.HistoryRepo, deps.Logger)
	backfillService := NewBackfillService(deps.Source, deps.Repos.HistoryRepo, deps.BackfillCallDelay, deps.Logger)
	bankService := NewBankService(deps.Repos.BankRepo)
	calculatorService := NewCalculatorService(rateService, bankService)

	return &portssvc.ServiceContainer{
		Rate:       rateService,
		History:    historyService,
		Backfill:   backfillService,
		Bank:       bankService,
		Calculator: calculatorService,
	}
}
