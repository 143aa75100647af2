package stats

import (
	"context"

	"github.com/Domenick1991/flightshop/internal/domain"
	"github.com/Domenick1991/flightshop/internal/repository"
)

type StatsUseCase interface {
	TicketCounts(ctx context.Context) ([]domain.RouteTicketCount, error)
	Revenue(ctx context.Context) (*RevenueReport, error)
}

type RevenueReport struct {
	Routes  []domain.RouteRevenue   `json:"route_revenue"`
	Monthly []domain.MonthlyRevenue `json:"monthly_revenue"`
	Total   float64                 `json:"total_revenue"`
}

type StatsService struct {
	repo repository.StatsRepository
}

func NewStatsService(repo repository.StatsRepository) *StatsService {
	return &StatsService{repo: repo}
}

// TicketCounts lists valid tickets per route, busiest first.
func (s *StatsService) TicketCounts(ctx context.Context) ([]domain.RouteTicketCount, error) {
	counts, err := s.repo.RouteTicketCounts(ctx)
	if err != nil {
		return nil, err
	}
	if counts == nil {
		counts = []domain.RouteTicketCount{}
	}
	return counts, nil
}

func (s *StatsService) Revenue(ctx context.Context) (*RevenueReport, error) {
	routes, err := s.repo.RouteRevenue(ctx)
	if err != nil {
		return nil, err
	}
	monthly, err := s.repo.MonthlyRevenue(ctx)
	if err != nil {
		return nil, err
	}

	report := &RevenueReport{
		Routes:  routes,
		Monthly: monthly,
	}
	if report.Routes == nil {
		report.Routes = []domain.RouteRevenue{}
	}
	if report.Monthly == nil {
		report.Monthly = []domain.MonthlyRevenue{}
	}
	for _, m := range monthly {
		report.Total += m.Revenue
	}
	return report, nil
}

var _ StatsUseCase = (*StatsService)(nil)
