package utils

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseBRL converte um valor monetário no formato brasileiro ("1.234,56")
// para float64. Pontos são separadores de milhar e a vírgula é o separador
// decimal. A conversão passa por decimal para não acumular erro binário
// antes da agregação.
func ParseBRL(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ".", "")
	s = strings.Replace(s, ",", ".", 1)

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("valor monetário inválido: %q", s)
	}

	return d.InexactFloat64(), nil
}

// FormatBRL formata um valor para o padrão das linhas canônicas do log
// ("10,00"). Sem separador de milhar, apenas a vírgula decimal.
func FormatBRL(v float64) string {
	return strings.Replace(decimal.NewFromFloat(v).StringFixed(2), ".", ",", 1)
}
