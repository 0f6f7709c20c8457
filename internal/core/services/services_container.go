package services

import (
	portsrepo "github.com/SscSPs/accounting_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/accounting_backoffice/internal/core/ports/services"
	"github.com/SscSPs/accounting_backoffice/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	options := []ServiceOption{
		WithDefaultTolerance(cfg.DefaultToleranceAmount),
		WithSupplierHintMaxRatio(cfg.SupplierHintMaxRatio),
	}

	return &portssvc.ServiceContainer{
		Transaction: NewTransactionService(repos.TransactionRepo, repos.SupplierRepo, options...),
		Document:    NewDocumentService(repos.DocumentRepo, repos.SupplierRepo, options...),
		Conciliation: NewConciliationService(
			repos.ConciliationRepo,
			repos.TransactionRepo,
			repos.DocumentRepo,
			repos.UnitOfWork,
			options...,
		),
		AccountingEntry: NewAccountingEntryService(repos.AccountingEntryRepo, repos.ConciliationRepo, options...),
		Report:          NewReportService(repos.ConciliationRepo, repos.TransactionRepo, repos.DocumentRepo, options...),
	}
}
