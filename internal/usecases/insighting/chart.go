package insighting

import (
	"fmt"
	"time"

	"github.com/wbarros/stock-control-api/internal/domain"
)

var (
	weekdayShortNames = []string{"Dom", "Seg", "Ter", "Qua", "Qui", "Sex", "Sáb"}
	monthShortNames   = []string{"Jan", "Fev", "Mar", "Abr", "Mai", "Jun", "Jul", "Ago", "Set", "Out", "Nov", "Dez"}
)

// BuildSalesChart distribui a receita de vendas em faixas de tempo fixas:
// 7 pontos diários, 30 pontos diários ou 12 pontos mensais, sempre nessa
// quantidade exata, com valor zero nas faixas sem venda. Somente vendas
// entram no gráfico; compras são ignoradas.
func BuildSalesChart(transactions []string, period domain.ChartPeriod, now time.Time) *domain.SalesChart {
	var points []*domain.ChartPoint
	var start time.Time

	switch period {
	case domain.Period365Days:
		start = now.Add(-365 * 24 * time.Hour)
		points = make([]*domain.ChartPoint, 0, 12)
		// Faixas mensais ancoradas no primeiro dia de cada mês, do mais
		// antigo (11 meses atrás) ao mês corrente.
		for i := 11; i >= 0; i-- {
			bucket := time.Date(now.Year(), now.Month()-time.Month(i), 1, 0, 0, 0, 0, time.Local)
			points = append(points, &domain.ChartPoint{
				Label: monthShortNames[int(bucket.Month())-1],
			})
		}
	case domain.Period30Days:
		start = now.Add(-30 * 24 * time.Hour)
		points = make([]*domain.ChartPoint, 0, 30)
		for i := 0; i < 30; i++ {
			bucket := start.AddDate(0, 0, i)
			points = append(points, &domain.ChartPoint{
				Label: fmt.Sprintf("%d/%d", bucket.Day(), int(bucket.Month())),
			})
		}
	default:
		period = domain.Period7Days
		start = now.Add(-7 * 24 * time.Hour)
		points = make([]*domain.ChartPoint, 0, 7)
		for i := 0; i < 7; i++ {
			bucket := start.AddDate(0, 0, i)
			points = append(points, &domain.ChartPoint{
				Label: weekdayShortNames[int(bucket.Weekday())],
			})
		}
	}

	for _, record := range ParseTransactions(transactions, now) {
		if record.Kind != domain.KindSale {
			continue
		}

		if record.OccurredOn.Before(start) || record.OccurredOn.After(now) {
			continue
		}

		index := bucketIndex(record.OccurredOn, start, now, period)
		if index >= 0 && index < len(points) {
			points[index].Value += record.Total()
		}
	}

	// O piso em 1 evita divisão por zero na escala do gráfico quando não
	// há venda no período.
	maxValue := 1.0
	for _, point := range points {
		if point.Value > maxValue {
			maxValue = point.Value
		}
	}

	return &domain.SalesChart{
		Period:   period,
		Points:   points,
		MaxValue: maxValue,
	}
}

func bucketIndex(occurredOn, start, now time.Time, period domain.ChartPeriod) int {
	if period == domain.Period365Days {
		monthsAgo := (now.Year()-occurredOn.Year())*12 + int(now.Month()) - int(occurredOn.Month())
		return 11 - monthsAgo
	}

	return int(occurredOn.Sub(start) / (24 * time.Hour))
}
