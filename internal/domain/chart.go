package domain

// ChartPeriod é o seletor de janela do gráfico de vendas
type ChartPeriod string

const (
	Period7Days   ChartPeriod = "7days"
	Period30Days  ChartPeriod = "30days"
	Period365Days ChartPeriod = "365days"
)

// Valid reporta se o período é um dos três aceitos
func (p ChartPeriod) Valid() bool {
	switch p {
	case Period7Days, Period30Days, Period365Days:
		return true
	}
	return false
}

// ChartPoint é um balde do gráfico: um dia (7/30 dias) ou um mês (365 dias)
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// SalesChart é a série pronta para renderização, do balde mais antigo para o
// mais recente. MaxValue nunca é menor que 1 para que o consumidor possa
// normalizar alturas sem dividir por zero.
type SalesChart struct {
	Period   ChartPeriod   `json:"period"`
	Points   []*ChartPoint `json:"points"`
	MaxValue float64       `json:"max_value"`
}
