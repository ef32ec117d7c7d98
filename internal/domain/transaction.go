package domain

import "time"

// TransactionKind distingue vendas de compras no log de transações
type TransactionKind int

const (
	KindSale TransactionKind = iota
	KindPurchase
)

// RemovalSentinel marca linhas de remoção de item no log. Linhas com esse
// prefixo nunca aparecem no histórico nem participam das agregações.
const RemovalSentinel = "item removido:"

// TransactionRecord é o registro estruturado derivado de uma linha do log.
// Não é persistido: a única forma durável é a própria linha de texto.
type TransactionRecord struct {
	Kind       TransactionKind
	ItemName   string
	Quantity   int
	UnitPrice  float64
	OccurredOn time.Time
}

// Total retorna o valor total do registro (preço unitário × quantidade)
func (r *TransactionRecord) Total() float64 {
	return r.UnitPrice * float64(r.Quantity)
}

// RegisterTransactionRequest é a requisição de registro de venda ou compra.
// Date é opcional no formato dd/mm/aaaa; ausente, usa a data corrente.
type RegisterTransactionRequest struct {
	ItemName  string  `json:"item_name" validate:"required"`
	Quantity  int     `json:"quantity" validate:"required,gt=0"`
	UnitPrice float64 `json:"unit_price" validate:"required,gt=0"`
	Date      *string `json:"date" validate:"omitempty,datetime=02/01/2006"`
}
