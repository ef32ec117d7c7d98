package insighting

import (
	"github.com/wbarros/stock-control-api/internal/domain"
)

// buildSummary acumula os totais gerais em uma única passada pelo log.
//
// Profit aqui é a receita bruta de vendas, sem descontar custo. A métrica
// com custo existe apenas na visão de margem por produto; os dois números
// são expostos separadamente e não devem ser unificados.
func buildSummary(records []*domain.TransactionRecord) *domain.SalesSummary {
	summary := &domain.SalesSummary{}

	for _, record := range records {
		switch record.Kind {
		case domain.KindSale:
			summary.TotalSold += record.Total()
			summary.Profit += record.Total()
		case domain.KindPurchase:
			summary.TotalBought += record.Total()
		}
	}

	return summary
}
