package domain

import "time"

// TopProduct é uma entrada do ranking de produtos mais vendidos
type TopProduct struct {
	Name         string  `json:"name"`
	Quantity     int     `json:"quantity"`
	TotalRevenue float64 `json:"total_revenue"`
}

// TopWeekday é uma entrada do ranking de dias da semana com mais vendas
type TopWeekday struct {
	Day           string `json:"day"`
	Quantity      int    `json:"quantity"`
	TotalProducts int    `json:"total_products"` // produtos distintos vendidos nesse dia
}

// TopMarginProduct é uma entrada do ranking de produtos por lucro absoluto.
// Profit aqui desconta o custo médio do catálogo, diferente do Profit do
// SalesSummary, que é receita bruta.
type TopMarginProduct struct {
	Name   string  `json:"name"`
	Profit float64 `json:"profit"`
	Margin float64 `json:"margin"` // percentual: lucro / receita × 100
}

// SalesSummary reúne os três totais exibidos nos widgets do painel.
// Profit é receita bruta de vendas, sem desconto de custo: métrica
// herdada do painel original e mantida deliberadamente.
type SalesSummary struct {
	TotalSold   float64 `json:"total_sold"`
	TotalBought float64 `json:"total_bought"`
	Profit      float64 `json:"profit"`
}

// DashboardInsights agrega as três visões do painel em uma única resposta
type DashboardInsights struct {
	TopProducts       []*TopProduct       `json:"top_products"`
	TopWeekdays       []*TopWeekday       `json:"top_weekdays"`
	TopMarginProducts []*TopMarginProduct `json:"top_margin_products"`
}

// InsightSnapshot é o retrato diário dos agregados persistido pelo agendador
type InsightSnapshot struct {
	ID        string             `json:"id"`
	Date      time.Time          `json:"date"`
	Insights  *DashboardInsights `json:"insights"`
	Summary   *SalesSummary      `json:"summary"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}
