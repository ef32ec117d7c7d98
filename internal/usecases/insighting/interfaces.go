package insighting

import (
	"time"

	"github.com/wbarros/stock-control-api/internal/domain"
)

// Insighter define a interface dos indicadores derivados do log de
// movimentações. Cada chamada recalcula tudo a partir do log completo;
// não há cache incremental.
type Insighter interface {
	// Dashboard monta as três visões do painel: produtos mais vendidos,
	// melhores dias da semana e produtos com maior margem
	Dashboard() (*domain.DashboardInsights, error)

	// Summary acumula os totais gerais de vendas e compras
	Summary() (*domain.SalesSummary, error)

	// SalesChart distribui a receita de vendas nas faixas do período
	SalesChart(period domain.ChartPeriod) (*domain.SalesChart, error)

	// SaveSnapshot calcula os indicadores do dia e os persiste como
	// fotografia datada
	SaveSnapshot(now time.Time) (*domain.InsightSnapshot, error)

	// LatestSnapshot retorna a fotografia mais recente, ou nil se nenhuma
	// foi gravada ainda
	LatestSnapshot() (*domain.InsightSnapshot, error)
}
