package insighting

import (
	"fmt"
	"time"

	"github.com/wbarros/stock-control-api/infrastructure/repository"
	"github.com/wbarros/stock-control-api/internal/domain"
)

type Service struct {
	transactionRepository repository.TransactionRepository
	itemRepository        repository.ItemRepository
	snapshotRepository    repository.InsightSnapshotRepository
}

func NewService(
	transactionRepo repository.TransactionRepository,
	itemRepo repository.ItemRepository,
	snapshotRepo repository.InsightSnapshotRepository,
) Insighter {
	return &Service{
		transactionRepository: transactionRepo,
		itemRepository:        itemRepo,
		snapshotRepository:    snapshotRepo,
	}
}

func (s *Service) Dashboard() (*domain.DashboardInsights, error) {
	return s.dashboardAt(time.Now())
}

func (s *Service) dashboardAt(now time.Time) (*domain.DashboardInsights, error) {
	descriptions, err := s.transactionRepository.ListDescriptions()
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar transações: %w", err)
	}

	items, err := s.itemRepository.ListItems("")
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar itens do estoque: %w", err)
	}

	records := ParseTransactions(descriptions, now)

	return &domain.DashboardInsights{
		TopProducts:       topProducts(records),
		TopWeekdays:       topWeekdays(records),
		TopMarginProducts: topMarginProducts(records, items),
	}, nil
}

func (s *Service) Summary() (*domain.SalesSummary, error) {
	return s.summaryAt(time.Now())
}

func (s *Service) summaryAt(now time.Time) (*domain.SalesSummary, error) {
	descriptions, err := s.transactionRepository.ListDescriptions()
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar transações: %w", err)
	}

	return buildSummary(ParseTransactions(descriptions, now)), nil
}

func (s *Service) SalesChart(period domain.ChartPeriod) (*domain.SalesChart, error) {
	descriptions, err := s.transactionRepository.ListDescriptions()
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar transações: %w", err)
	}

	return BuildSalesChart(descriptions, period, time.Now()), nil
}

// SaveSnapshot recalcula os indicadores e os grava como a fotografia do dia.
// Uma segunda execução no mesmo dia sobrescreve a fotografia anterior.
func (s *Service) SaveSnapshot(now time.Time) (*domain.InsightSnapshot, error) {
	insights, err := s.dashboardAt(now)
	if err != nil {
		return nil, err
	}

	summary, err := s.summaryAt(now)
	if err != nil {
		return nil, err
	}

	snapshot := &domain.InsightSnapshot{
		Date:     now,
		Insights: insights,
		Summary:  summary,
	}

	if err := s.snapshotRepository.SaveOrUpdateSnapshot(snapshot); err != nil {
		return nil, fmt.Errorf("erro ao salvar snapshot de indicadores: %w", err)
	}

	return snapshot, nil
}

func (s *Service) LatestSnapshot() (*domain.InsightSnapshot, error) {
	return s.snapshotRepository.GetLatestSnapshot()
}
