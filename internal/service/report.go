package service

import (
	"context"

	"github.com/deppfellow/shopping-list/internal/model"
	"github.com/deppfellow/shopping-list/internal/repository"
	"github.com/deppfellow/shopping-list/internal/sqlerr"
	"github.com/rs/zerolog"
)

type reportRepository interface {
	SearchByName(ctx context.Context, db repository.Querier, term string) ([]model.ItemSummary, error)
	Paginate(ctx context.Context, db repository.Querier, page int) ([]model.ItemSummary, error)
	AddedSince(ctx context.Context, db repository.Querier, daysAgo int) ([]model.RecentItem, error)
	CostPerCategory(ctx context.Context, db repository.Querier) ([]model.CategoryTotal, error)
}

// ReportService runs the reporting queries against one Querier.
type ReportService struct {
	db   repository.Querier
	repo reportRepository
	log  *zerolog.Logger
}

// NewReportService binds repo to db.
func NewReportService(db repository.Querier, repo reportRepository, log *zerolog.Logger) *ReportService {
	return &ReportService{db: db, repo: repo, log: log}
}

func (s *ReportService) fail(report string, err error) error {
	s.log.Error().
		Err(err).
		Str("report", report).
		Str("db_error", string(sqlerr.ErrCode(err))).
		Msg("report query failed")
	return sqlerr.HandleError(err)
}

// SearchByName lists items whose name contains term, ignoring case.
func (s *ReportService) SearchByName(ctx context.Context, term string) ([]model.ItemSummary, error) {
	items, err := s.repo.SearchByName(ctx, s.db, term)
	if err != nil {
		return nil, s.fail("search", err)
	}
	return items, nil
}

// Paginate returns one page of repository.ProductsPerPage items. Pages are 1-based.
func (s *ReportService) Paginate(ctx context.Context, page int) ([]model.ItemSummary, error) {
	items, err := s.repo.Paginate(ctx, s.db, page)
	if err != nil {
		return nil, s.fail("page", err)
	}
	return items, nil
}

// AddedSince lists items added within the last daysAgo days, newest first.
func (s *ReportService) AddedSince(ctx context.Context, daysAgo int) ([]model.RecentItem, error) {
	items, err := s.repo.AddedSince(ctx, s.db, daysAgo)
	if err != nil {
		return nil, s.fail("recent", err)
	}
	return items, nil
}

// CostPerCategory returns the summed price of each category.
func (s *ReportService) CostPerCategory(ctx context.Context) ([]model.CategoryTotal, error) {
	totals, err := s.repo.CostPerCategory(ctx, s.db)
	if err != nil {
		return nil, s.fail("cost", err)
	}
	return totals, nil
}
