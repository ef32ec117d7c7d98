package insighting

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/wbarros/stock-control-api/internal/domain"
	"github.com/wbarros/stock-control-api/pkg/utils"
)

// O log de movimentações aceita duas gramáticas:
//
//	forma completa: "VENDA: Escudo, Qtd: 3, Preço: R$ 10,00, Data: 25/08/2025"
//	forma curta:    "v: 3x Escudo por R$ 10,00, em Seg, 25/08"
//
// A captura de preço termina sempre em dígito, para não engolir a vírgula
// que separa o fragmento seguinte da linha.
var (
	saleLinePattern     = regexp.MustCompile(`(?i)VENDA:\s*(.+?),\s*Qtd:\s*(\d+),\s*Preço:\s*R\$\s*(\d+(?:[.,]\d+)*)`)
	purchaseLinePattern = regexp.MustCompile(`(?i)COMPRA:\s*(.+?),\s*Qtd:\s*(\d+),\s*Preço:\s*R\$\s*(\d+(?:[.,]\d+)*)`)
	shortLinePattern    = regexp.MustCompile(`(?i)^(v|c):\s*(\d+)x\s*(.+?)\s+por\s+R\$\s*(\d+(?:[.,]\d+)*)`)
	lineDatePattern     = regexp.MustCompile(`(\d{2}/\d{2}/\d{4})`)
)

// ParseTransaction interpreta uma linha do log. Linhas de remoção de item e
// linhas que não casam com nenhuma gramática são descartadas por inteiro: o
// segundo retorno indica se a linha produziu um registro válido.
func ParseTransaction(raw string, now time.Time) (*domain.TransactionRecord, bool) {
	line := strings.TrimSpace(raw)
	if line == "" {
		return nil, false
	}

	if strings.Contains(strings.ToLower(line), domain.RemovalSentinel) {
		return nil, false
	}

	kind, name, quantityStr, priceStr, matched := matchLine(line)
	if !matched {
		return nil, false
	}

	quantity, err := strconv.Atoi(quantityStr)
	if err != nil {
		return nil, false
	}

	unitPrice, err := utils.ParseBRL(priceStr)
	if err != nil {
		return nil, false
	}

	return &domain.TransactionRecord{
		Kind:       kind,
		ItemName:   strings.TrimSpace(name),
		Quantity:   quantity,
		UnitPrice:  unitPrice,
		OccurredOn: extractDate(line, now),
	}, true
}

// ParseTransactions interpreta todas as linhas do log, descartando as
// inválidas. A ordem relativa das linhas válidas é preservada.
func ParseTransactions(lines []string, now time.Time) []*domain.TransactionRecord {
	records := make([]*domain.TransactionRecord, 0, len(lines))
	for _, line := range lines {
		if record, ok := ParseTransaction(line, now); ok {
			records = append(records, record)
		}
	}
	return records
}

func matchLine(line string) (kind domain.TransactionKind, name, quantity, price string, matched bool) {
	if m := saleLinePattern.FindStringSubmatch(line); m != nil {
		return domain.KindSale, m[1], m[2], m[3], true
	}

	if m := purchaseLinePattern.FindStringSubmatch(line); m != nil {
		return domain.KindPurchase, m[1], m[2], m[3], true
	}

	if m := shortLinePattern.FindStringSubmatch(line); m != nil {
		kind = domain.KindSale
		if strings.EqualFold(m[1], "c") {
			kind = domain.KindPurchase
		}
		return kind, m[3], m[2], m[4], true
	}

	return 0, "", "", "", false
}

// extractDate procura uma data dd/mm/aaaa em qualquer posição da linha.
// Linhas sem data (a forma curta só traz dia e mês) usam o instante atual.
func extractDate(line string, now time.Time) time.Time {
	m := lineDatePattern.FindStringSubmatch(line)
	if m == nil {
		return now
	}

	parsed, err := time.ParseInLocation(utils.LogDateLayout, m[1], time.Local)
	if err != nil {
		return now
	}

	return parsed
}
