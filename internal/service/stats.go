package service

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/smartlib/circulation-service/internal/model"
	"github.com/smartlib/circulation-service/internal/repository"
)

// StatsService aggregates the counters behind the dashboard view.
type StatsService struct {
	log       *zap.Logger
	inventory repository.InventoryRepository
	loans     repository.LoanRepository
	admins    repository.AdminRepository
}

func NewStatsService(
	inventory repository.InventoryRepository,
	loans repository.LoanRepository,
	admins repository.AdminRepository,
	log *zap.Logger,
) *StatsService {
	return &StatsService{
		log:       log.Named("stats"),
		inventory: inventory,
		loans:     loans,
		admins:    admins,
	}
}

func (s *StatsService) Summary(ctx context.Context) (model.StatsSummary, error) {
	var summary model.StatsSummary

	gg, ctx := errgroup.WithContext(ctx)
	gg.Go(func() error {
		books, total, available, err := s.inventory.CountCopies(ctx)
		if err != nil {
			return err
		}
		summary.TotalBooks = books
		summary.TotalCopies = total
		summary.AvailableCopies = available
		return nil
	})
	gg.Go(func() error {
		issued, returned, err := s.loans.CountLoans(ctx)
		if err != nil {
			return err
		}
		summary.IssuedLoans = issued
		summary.ReturnedLoans = returned
		return nil
	})
	gg.Go(func() error {
		count, err := s.admins.CountAdmins(ctx)
		if err != nil {
			return err
		}
		summary.Admins = count
		return nil
	})

	if err := gg.Wait(); err != nil {
		return model.StatsSummary{}, err
	}
	return summary, nil
}
