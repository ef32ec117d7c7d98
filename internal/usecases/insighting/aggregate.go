package insighting

import (
	"sort"
	"strings"

	"github.com/wbarros/stock-control-api/internal/domain"
	"github.com/wbarros/stock-control-api/pkg/utils"
)

const (
	topProductsLimit = 10
	topWeekdaysLimit = 7
	topMarginLimit   = 10
)

// Nomes dos dias da semana na ordem de time.Weekday (domingo = 0).
var weekdayNames = []string{"Domingo", "Segunda", "Terça", "Quarta", "Quinta", "Sexta", "Sábado"}

// topProducts agrupa as vendas por nome de produto e devolve os mais
// vendidos por quantidade. Empates mantêm a ordem da primeira ocorrência
// no log.
func topProducts(records []*domain.TransactionRecord) []*domain.TopProduct {
	type accumulator struct {
		quantity int
		revenue  float64
	}

	totals := make(map[string]*accumulator)
	order := make([]string, 0)

	for _, record := range records {
		if record.Kind != domain.KindSale {
			continue
		}

		acc, ok := totals[record.ItemName]
		if !ok {
			acc = &accumulator{}
			totals[record.ItemName] = acc
			order = append(order, record.ItemName)
		}

		acc.quantity += record.Quantity
		acc.revenue += record.Total()
	}

	products := make([]*domain.TopProduct, 0, len(order))
	for _, name := range order {
		acc := totals[name]
		products = append(products, &domain.TopProduct{
			Name:         name,
			Quantity:     acc.quantity,
			TotalRevenue: acc.revenue,
		})
	}

	sort.SliceStable(products, func(i, j int) bool {
		return products[i].Quantity > products[j].Quantity
	})

	if len(products) > topProductsLimit {
		products = products[:topProductsLimit]
	}

	return products
}

// topWeekdays agrupa as vendas pelo dia da semana em que ocorreram.
// TotalProducts conta produtos distintos vendidos naquele dia.
func topWeekdays(records []*domain.TransactionRecord) []*domain.TopWeekday {
	type accumulator struct {
		quantity int
		products map[string]struct{}
	}

	totals := make(map[string]*accumulator)
	order := make([]string, 0)

	for _, record := range records {
		if record.Kind != domain.KindSale {
			continue
		}

		day := weekdayNames[int(record.OccurredOn.Weekday())]

		acc, ok := totals[day]
		if !ok {
			acc = &accumulator{products: make(map[string]struct{})}
			totals[day] = acc
			order = append(order, day)
		}

		acc.quantity += record.Quantity
		acc.products[record.ItemName] = struct{}{}
	}

	weekdays := make([]*domain.TopWeekday, 0, len(order))
	for _, day := range order {
		acc := totals[day]
		weekdays = append(weekdays, &domain.TopWeekday{
			Day:           day,
			Quantity:      acc.quantity,
			TotalProducts: len(acc.products),
		})
	}

	sort.SliceStable(weekdays, func(i, j int) bool {
		return weekdays[i].Quantity > weekdays[j].Quantity
	})

	if len(weekdays) > topWeekdaysLimit {
		weekdays = weekdays[:topWeekdaysLimit]
	}

	return weekdays
}

// topMarginProducts cruza as vendas com o preço médio de compra do catálogo
// para estimar lucro e margem por produto. Produto fora do catálogo tem custo
// zero, o que resulta em margem de 100%. A ordenação é por lucro absoluto,
// não por percentual de margem.
func topMarginProducts(records []*domain.TransactionRecord, items []*domain.StockItem) []*domain.TopMarginProduct {
	costByName := make(map[string]float64, len(items))
	for _, item := range items {
		costByName[strings.ToLower(item.Name)] = item.AveragePrice
	}

	type accumulator struct {
		revenue float64
		profit  float64
	}

	totals := make(map[string]*accumulator)
	order := make([]string, 0)

	for _, record := range records {
		if record.Kind != domain.KindSale {
			continue
		}

		cost := costByName[strings.ToLower(record.ItemName)]

		acc, ok := totals[record.ItemName]
		if !ok {
			acc = &accumulator{}
			totals[record.ItemName] = acc
			order = append(order, record.ItemName)
		}

		acc.revenue += record.Total()
		acc.profit += (record.UnitPrice - cost) * float64(record.Quantity)
	}

	products := make([]*domain.TopMarginProduct, 0, len(order))
	for _, name := range order {
		acc := totals[name]

		margin := 0.0
		if acc.revenue > 0 {
			margin = utils.RoundWithTwoDecimalPlace(acc.profit / acc.revenue * 100)
		}

		products = append(products, &domain.TopMarginProduct{
			Name:   name,
			Profit: acc.profit,
			Margin: margin,
		})
	}

	sort.SliceStable(products, func(i, j int) bool {
		return products[i].Profit > products[j].Profit
	})

	if len(products) > topMarginLimit {
		products = products[:topMarginLimit]
	}

	return products
}
