package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/wbarros/stock-control-api/internal/domain"
	"github.com/wbarros/stock-control-api/internal/usecases/stocking"
	"github.com/wbarros/stock-control-api/pkg/apiErrors"
)

type transactionListResponse struct {
	Transactions []string `json:"transactions"`
	Total        int      `json:"total"`
}

func RegisterSale(service stocking.StockService) http.Handler {
	return registerTransaction(service.RegisterSale, "venda")
}

func RegisterPurchase(service stocking.StockService) http.Handler {
	return registerTransaction(service.RegisterPurchase, "compra")
}

func registerTransaction(
	register func(*domain.RegisterTransactionRequest) (*domain.StockItem, error),
	kind string,
) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req domain.RegisterTransactionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido: "+err.Error(), nil)
			return
		}

		if err := validate.Struct(req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Item, quantidade e preço unitário são obrigatórios; a data deve estar no formato dd/mm/aaaa", nil)
			return
		}

		item, err := register(&req)
		if err != nil {
			logrus.Errorf("Erro ao registrar %s: %v", kind, err)
			handleStockError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(item)
	})
}

func ListSales(service stocking.StockService) http.Handler {
	return listTransactions(service.ListSales)
}

func ListPurchases(service stocking.StockService) http.Handler {
	return listTransactions(service.ListPurchases)
}

func ListTransactions(service stocking.StockService) http.Handler {
	return listTransactions(service.ListTransactions)
}

func listTransactions(list func(search string) ([]string, error)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		search := r.URL.Query().Get("search")

		transactions, err := list(search)
		if err != nil {
			logrus.Error("Erro ao listar transações:", err)
			handleStockError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(transactionListResponse{
			Transactions: transactions,
			Total:        len(transactions),
		})
	})
}
