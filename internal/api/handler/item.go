package handler

import (
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/wbarros/stock-control-api/internal/domain"
	"github.com/wbarros/stock-control-api/internal/usecases/stocking"
	"github.com/wbarros/stock-control-api/pkg/apiErrors"
)

func ListItems(service stocking.StockService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		items, err := service.ListItems(r.URL.Query().Get("search"))
		if err != nil {
			logrus.Error("Erro ao listar itens do estoque:", err)
			handleStockError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(items)
	})
}

func GetItem(service stocking.StockService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := itemIDFromRequest(w, r)
		if !ok {
			return
		}

		item, err := service.GetItem(id)
		if err != nil {
			handleStockError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(item)
	})
}

func CreateItem(service stocking.StockService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req domain.CreateStockItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido: "+err.Error(), nil)
			return
		}

		if err := validate.Struct(req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Nome é obrigatório; quantidade e preço não podem ser negativos", nil)
			return
		}

		item, err := service.CreateItem(&req)
		if err != nil {
			logrus.Error("Erro ao cadastrar item:", err)
			handleStockError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(item)
	})
}

func UpdateItem(service stocking.StockService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := itemIDFromRequest(w, r)
		if !ok {
			return
		}

		var req domain.UpdateStockItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido: "+err.Error(), nil)
			return
		}

		if err := validate.Struct(req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Quantidade e preço não podem ser negativos", nil)
			return
		}

		// O ID da URL prevalece sobre o do corpo
		req.ID = id

		item, err := service.UpdateItem(&req)
		if err != nil {
			logrus.Error("Erro ao atualizar item:", err)
			handleStockError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(item)
	})
}

func DeleteItem(service stocking.StockService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := itemIDFromRequest(w, r)
		if !ok {
			return
		}

		if err := service.DeleteItem(id); err != nil {
			logrus.Error("Erro ao excluir item:", err)
			handleStockError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})
}

func itemIDFromRequest(w http.ResponseWriter, r *http.Request) (int, bool) {
	idStr := httprouter.ParamsFromContext(r.Context()).ByName("id")

	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "ID do item deve ser um inteiro positivo", nil)
		return 0, false
	}

	return id, true
}

// handleStockError converte erros do serviço de estoque na resposta padronizada
func handleStockError(w http.ResponseWriter, err error) {
	var stockErr *stocking.StockError
	if errors.As(err, &stockErr) {
		var details any
		if stockErr.ItemName != "" {
			details = map[string]any{"item_name": stockErr.ItemName}
		}
		apiErrors.WriteError(w, stockErr.Code, stockErr.Error(), details)
		return
	}

	switch {
	case errors.Is(err, stocking.ErrItemNotFound):
		apiErrors.WriteError(w, apiErrors.ErrItemNotFound, "Item não encontrado", nil)

	case errors.Is(err, stocking.ErrInsufficientStock):
		apiErrors.WriteError(w, apiErrors.ErrInsufficientStock, "Quantidade em estoque insuficiente", nil)

	case errors.Is(err, stocking.ErrItemAlreadyExists):
		apiErrors.WriteError(w, apiErrors.ErrItemAlreadyExists, "Já existe um item com esse nome", nil)

	default:
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno ao processar a requisição", nil)
	}
}
