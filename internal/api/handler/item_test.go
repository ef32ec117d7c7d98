package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wbarros/stock-control-api/internal/api/handler"
	"github.com/wbarros/stock-control-api/internal/api/handler/router"
	"github.com/wbarros/stock-control-api/internal/domain"
	"github.com/wbarros/stock-control-api/internal/usecases/stocking"
	"github.com/wbarros/stock-control-api/internal/usecases/stocking/mocks"
	"go.uber.org/mock/gomock"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func newItemsRouter(service stocking.StockService) http.Handler {
	return router.New(
		router.WithRoutes(handler.Items(service)...),
		router.WithRoutes(handler.Transactions(service)...),
	)
}

func TestListItems(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := mocks.NewMockStockService(ctrl)
	service.EXPECT().ListItems("escudo").Return([]*domain.StockItem{
		{ID: 1, Name: "Escudo", Quantity: 10, AveragePrice: 4.5, TotalPrice: 45},
	}, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/items?search=escudo", nil)
	newItemsRouter(service).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var items []*domain.StockItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Escudo", items[0].Name)
}

func TestGetItem(t *testing.T) {
	t.Run("retorna o item quando encontrado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := mocks.NewMockStockService(ctrl)
		service.EXPECT().GetItem(7).Return(&domain.StockItem{ID: 7, Name: "Espada"}, nil)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/items/7", nil)
		newItemsRouter(service).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var item domain.StockItem
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &item))
		assert.Equal(t, 7, item.ID)
	})

	t.Run("retorna 404 quando o item não existe", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := mocks.NewMockStockService(ctrl)
		service.EXPECT().GetItem(99).Return(nil, stocking.NewStockError(
			stocking.ErrItemNotFound, "STK_001", "Item não encontrado"))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/items/99", nil)
		newItemsRouter(service).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("retorna 400 para ID não numérico", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := mocks.NewMockStockService(ctrl)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/items/abc", nil)
		newItemsRouter(service).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCreateItem(t *testing.T) {
	t.Run("cadastra o item e responde 201", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := mocks.NewMockStockService(ctrl)
		service.EXPECT().
			CreateItem(gomock.Any()).
			DoAndReturn(func(req *domain.CreateStockItemRequest) (*domain.StockItem, error) {
				assert.Equal(t, "Poção de Cura", req.Name)
				assert.Equal(t, 30, req.Quantity)
				return &domain.StockItem{ID: 3, Name: req.Name, Quantity: req.Quantity}, nil
			})

		body := `{"name": "Poção de Cura", "quantity": 30, "average_price": 15.5}`
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/items", strings.NewReader(body))
		newItemsRouter(service).ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)

		var item domain.StockItem
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &item))
		assert.Equal(t, 3, item.ID)
	})

	t.Run("rejeita requisição sem nome", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := mocks.NewMockStockService(ctrl)

		body := `{"quantity": 5}`
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/items", strings.NewReader(body))
		newItemsRouter(service).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("responde 409 para nome duplicado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := mocks.NewMockStockService(ctrl)
		service.EXPECT().CreateItem(gomock.Any()).Return(nil, stocking.NewStockErrorWithItem(
			stocking.ErrItemAlreadyExists, "STK_003", "Escudo", "Já existe um item com esse nome"))

		body := `{"name": "Escudo"}`
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/items", strings.NewReader(body))
		newItemsRouter(service).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestUpdateItem(t *testing.T) {
	t.Run("o ID da URL prevalece sobre o do corpo", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := mocks.NewMockStockService(ctrl)
		service.EXPECT().
			UpdateItem(gomock.Any()).
			DoAndReturn(func(req *domain.UpdateStockItemRequest) (*domain.StockItem, error) {
				assert.Equal(t, 5, req.ID)
				return &domain.StockItem{ID: 5, Name: "Escudo"}, nil
			})

		body := `{"id": 999, "quantity": 2}`
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/v1/items/5", strings.NewReader(body))
		newItemsRouter(service).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("rejeita quantidade negativa", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := mocks.NewMockStockService(ctrl)

		body := `{"quantity": -1}`
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/v1/items/5", strings.NewReader(body))
		newItemsRouter(service).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestDeleteItem(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := mocks.NewMockStockService(ctrl)
	service.EXPECT().DeleteItem(4).Return(nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/v1/items/4", nil)
	newItemsRouter(service).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRegisterSale(t *testing.T) {
	t.Run("registra a venda e responde 201 com o item atualizado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := mocks.NewMockStockService(ctrl)
		service.EXPECT().
			RegisterSale(gomock.Any()).
			DoAndReturn(func(req *domain.RegisterTransactionRequest) (*domain.StockItem, error) {
				assert.Equal(t, "Escudo", req.ItemName)
				assert.Equal(t, 3, req.Quantity)
				return &domain.StockItem{ID: 1, Name: "Escudo", Quantity: 7}, nil
			})

		body := `{"item_name": "Escudo", "quantity": 3, "unit_price": 10}`
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/sales", strings.NewReader(body))
		newItemsRouter(service).ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)

		var item domain.StockItem
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &item))
		assert.Equal(t, 7, item.Quantity)
	})

	t.Run("responde 409 quando o estoque é insuficiente", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := mocks.NewMockStockService(ctrl)
		service.EXPECT().RegisterSale(gomock.Any()).Return(nil, stocking.NewStockErrorWithItem(
			stocking.ErrInsufficientStock, "STK_002", "Escudo", "Quantidade em estoque insuficiente"))

		body := `{"item_name": "Escudo", "quantity": 99, "unit_price": 10}`
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/sales", strings.NewReader(body))
		newItemsRouter(service).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("rejeita venda sem quantidade", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := mocks.NewMockStockService(ctrl)

		body := `{"item_name": "Escudo", "unit_price": 10}`
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/sales", strings.NewReader(body))
		newItemsRouter(service).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestListSales(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := mocks.NewMockStockService(ctrl)
	service.EXPECT().ListSales("escudo").Return([]string{
		"VENDA: Escudo, Qtd: 3, Preço: R$ 10,00, Data: 25/08/2025",
	}, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/sales?search=escudo", nil)
	newItemsRouter(service).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Transactions []string `json:"transactions"`
		Total        int      `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Total)
	assert.Contains(t, resp.Transactions[0], "VENDA: Escudo")
}
