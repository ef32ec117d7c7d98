package stocking

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wbarros/stock-control-api/infrastructure/repository/mocks"
	"github.com/wbarros/stock-control-api/internal/domain"
	"github.com/wbarros/stock-control-api/internal/usecases/insighting"
	"github.com/wbarros/stock-control-api/pkg/utils"
	"go.uber.org/mock/gomock"
)

func stringPtr(s string) *string { return &s }
func intPtr(i int) *int          { return &i }

func newTestService(t *testing.T) (*Service, *mocks.MockItemRepository, *mocks.MockTransactionRepository) {
	ctrl := gomock.NewController(t)

	mockItemRepo := mocks.NewMockItemRepository(ctrl)
	mockTransactionRepo := mocks.NewMockTransactionRepository(ctrl)

	service := &Service{
		itemRepository:        mockItemRepo,
		transactionRepository: mockTransactionRepo,
	}

	return service, mockItemRepo, mockTransactionRepo
}

func TestCreateItem(t *testing.T) {
	t.Run("Cadastra item novo com total calculado", func(t *testing.T) {
		service, mockItemRepo, _ := newTestService(t)

		mockItemRepo.EXPECT().
			GetItemByName("Escudo").
			Return(nil, nil)

		mockItemRepo.EXPECT().
			CreateItem(gomock.Any()).
			DoAndReturn(func(item *domain.StockItem) (*domain.StockItem, error) {
				assert.Equal(t, "Escudo", item.Name)
				assert.InDelta(t, 40.0, item.TotalPrice, 0.001) // 10 × 4,00
				item.ID = 1
				return item, nil
			})

		item, err := service.CreateItem(&domain.CreateStockItemRequest{
			Name:         "  Escudo  ",
			Quantity:     10,
			AveragePrice: 4.0,
		})

		require.NoError(t, err)
		assert.Equal(t, 1, item.ID)
	})

	t.Run("Rejeita nome duplicado", func(t *testing.T) {
		service, mockItemRepo, _ := newTestService(t)

		mockItemRepo.EXPECT().
			GetItemByName("Escudo").
			Return(&domain.StockItem{ID: 7, Name: "Escudo"}, nil)

		item, err := service.CreateItem(&domain.CreateStockItemRequest{Name: "Escudo"})

		assert.Nil(t, item)
		assert.ErrorIs(t, err, ErrItemAlreadyExists)
	})

	t.Run("Rejeita nome vazio", func(t *testing.T) {
		service, _, _ := newTestService(t)

		_, err := service.CreateItem(&domain.CreateStockItemRequest{Name: "   "})

		assert.ErrorIs(t, err, ErrItemNameRequired)
	})
}

func TestUpdateItem(t *testing.T) {
	service, mockItemRepo, _ := newTestService(t)

	mockItemRepo.EXPECT().
		GetItemByID(3).
		Return(&domain.StockItem{ID: 3, Name: "Escudo", Quantity: 10, AveragePrice: 4.0, TotalPrice: 40.0}, nil)

	mockItemRepo.EXPECT().
		UpdateItem(gomock.Any()).
		DoAndReturn(func(item *domain.StockItem) error {
			assert.Equal(t, "Escudo Reforçado", item.Name)
			assert.Equal(t, 8, item.Quantity)
			assert.InDelta(t, 32.0, item.TotalPrice, 0.001) // total recalculado
			return nil
		})

	item, err := service.UpdateItem(&domain.UpdateStockItemRequest{
		ID:       3,
		Name:     stringPtr("Escudo Reforçado"),
		Quantity: intPtr(8),
	})

	require.NoError(t, err)
	assert.InDelta(t, 4.0, item.AveragePrice, 0.001) // campo não enviado fica como está
}

func TestDeleteItem(t *testing.T) {
	t.Run("Remove o item e registra a linha sentinela no log", func(t *testing.T) {
		service, mockItemRepo, mockTransactionRepo := newTestService(t)

		mockItemRepo.EXPECT().
			GetItemByID(3).
			Return(&domain.StockItem{ID: 3, Name: "Escudo", Quantity: 5}, nil)

		mockItemRepo.EXPECT().
			DeleteItem(3).
			Return(nil)

		mockTransactionRepo.EXPECT().
			Append("Item removido: Escudo, Qtd: 5").
			Return(nil)

		err := service.DeleteItem(3)

		assert.NoError(t, err)
	})

	t.Run("Item inexistente", func(t *testing.T) {
		service, mockItemRepo, _ := newTestService(t)

		mockItemRepo.EXPECT().
			GetItemByID(99).
			Return(nil, nil)

		err := service.DeleteItem(99)

		assert.ErrorIs(t, err, ErrItemNotFound)
	})
}

func TestRegisterSale(t *testing.T) {
	t.Run("Baixa o estoque e grava a linha canônica de venda", func(t *testing.T) {
		service, mockItemRepo, mockTransactionRepo := newTestService(t)

		mockItemRepo.EXPECT().
			GetItemByName("Escudo").
			Return(&domain.StockItem{ID: 1, Name: "Escudo", Quantity: 10, AveragePrice: 4.0}, nil)

		mockItemRepo.EXPECT().
			UpdateItem(gomock.Any()).
			DoAndReturn(func(item *domain.StockItem) error {
				assert.Equal(t, 7, item.Quantity)
				return nil
			})

		mockTransactionRepo.EXPECT().
			Append("VENDA: Escudo, Qtd: 3, Preço: R$ 10,00, Data: 25/08/2025").
			Return(nil)

		item, err := service.RegisterSale(&domain.RegisterTransactionRequest{
			ItemName:  "Escudo",
			Quantity:  3,
			UnitPrice: 10.0,
			Date:      stringPtr("25/08/2025"),
		})

		require.NoError(t, err)
		assert.Equal(t, 7, item.Quantity)
	})

	t.Run("Estoque insuficiente não gera movimentação", func(t *testing.T) {
		service, mockItemRepo, _ := newTestService(t)

		mockItemRepo.EXPECT().
			GetItemByName("Escudo").
			Return(&domain.StockItem{ID: 1, Name: "Escudo", Quantity: 2}, nil)

		item, err := service.RegisterSale(&domain.RegisterTransactionRequest{
			ItemName:  "Escudo",
			Quantity:  3,
			UnitPrice: 10.0,
		})

		assert.Nil(t, item)
		assert.ErrorIs(t, err, ErrInsufficientStock)
	})

	t.Run("Venda de item fora do catálogo", func(t *testing.T) {
		service, mockItemRepo, _ := newTestService(t)

		mockItemRepo.EXPECT().
			GetItemByName("Relíquia").
			Return(nil, nil)

		_, err := service.RegisterSale(&domain.RegisterTransactionRequest{
			ItemName:  "Relíquia",
			Quantity:  1,
			UnitPrice: 50.0,
		})

		assert.ErrorIs(t, err, ErrItemNotFound)
	})

	t.Run("Data em formato inválido", func(t *testing.T) {
		service, mockItemRepo, _ := newTestService(t)

		mockItemRepo.EXPECT().
			GetItemByName("Escudo").
			Return(&domain.StockItem{ID: 1, Name: "Escudo", Quantity: 10}, nil)

		_, err := service.RegisterSale(&domain.RegisterTransactionRequest{
			ItemName:  "Escudo",
			Quantity:  1,
			UnitPrice: 10.0,
			Date:      stringPtr("2025-08-25"),
		})

		assert.ErrorIs(t, err, ErrInvalidDate)
	})
}

func TestRegisterPurchase(t *testing.T) {
	t.Run("Recalcula o preço médio ponderado", func(t *testing.T) {
		service, mockItemRepo, mockTransactionRepo := newTestService(t)

		mockItemRepo.EXPECT().
			GetItemByName("Escudo").
			Return(&domain.StockItem{ID: 1, Name: "Escudo", Quantity: 10, AveragePrice: 4.0}, nil)

		mockItemRepo.EXPECT().
			UpdateItem(gomock.Any()).
			DoAndReturn(func(item *domain.StockItem) error {
				assert.Equal(t, 20, item.Quantity)
				// (10 × 4,00 + 10 × 6,00) / 20
				assert.InDelta(t, 5.0, item.AveragePrice, 0.001)
				assert.InDelta(t, 100.0, item.TotalPrice, 0.001)
				return nil
			})

		mockTransactionRepo.EXPECT().
			Append("COMPRA: Escudo, Qtd: 10, Preço: R$ 6,00, Data: 20/08/2025").
			Return(nil)

		item, err := service.RegisterPurchase(&domain.RegisterTransactionRequest{
			ItemName:  "Escudo",
			Quantity:  10,
			UnitPrice: 6.0,
			Date:      stringPtr("20/08/2025"),
		})

		require.NoError(t, err)
		assert.InDelta(t, 5.0, item.AveragePrice, 0.001)
	})

	t.Run("Compra de item novo cadastra o item", func(t *testing.T) {
		service, mockItemRepo, mockTransactionRepo := newTestService(t)

		mockItemRepo.EXPECT().
			GetItemByName("Flecha").
			Return(nil, nil)

		mockItemRepo.EXPECT().
			CreateItem(gomock.Any()).
			DoAndReturn(func(item *domain.StockItem) (*domain.StockItem, error) {
				assert.Equal(t, "Flecha", item.Name)
				assert.Equal(t, 100, item.Quantity)
				assert.InDelta(t, 0.25, item.AveragePrice, 0.001)
				item.ID = 9
				return item, nil
			})

		mockTransactionRepo.EXPECT().
			Append("COMPRA: Flecha, Qtd: 100, Preço: R$ 0,25, Data: 20/08/2025").
			Return(nil)

		item, err := service.RegisterPurchase(&domain.RegisterTransactionRequest{
			ItemName:  "Flecha",
			Quantity:  100,
			UnitPrice: 0.25,
			Date:      stringPtr("20/08/2025"),
		})

		require.NoError(t, err)
		assert.Equal(t, 9, item.ID)
	})
}

func TestListTransactions(t *testing.T) {
	log := []string{
		"COMPRA: Escudo, Qtd: 10, Preço: R$ 4,00, Data: 18/08/2025",
		"VENDA: Escudo, Qtd: 3, Preço: R$ 10,00, Data: 20/08/2025",
		"Item removido: Poção, Qtd: 2",
		"VENDA: Flecha, Qtd: 5, Preço: R$ 1,00, Data: 21/08/2025",
	}

	t.Run("Histórico completo vem sem remoções e do mais recente para o mais antigo", func(t *testing.T) {
		service, _, mockTransactionRepo := newTestService(t)

		mockTransactionRepo.EXPECT().
			ListDescriptions().
			Return(log, nil)

		transactions, err := service.ListTransactions("")

		require.NoError(t, err)
		require.Len(t, transactions, 3)
		assert.Contains(t, transactions[0], "Flecha")
		assert.Contains(t, transactions[2], "COMPRA")
	})

	t.Run("Busca por trecho do texto sem diferenciar caixa", func(t *testing.T) {
		service, _, mockTransactionRepo := newTestService(t)

		mockTransactionRepo.EXPECT().
			ListDescriptions().
			Return(log, nil)

		transactions, err := service.ListTransactions("escudo")

		require.NoError(t, err)
		require.Len(t, transactions, 2)
	})

	t.Run("Somente vendas", func(t *testing.T) {
		service, _, mockTransactionRepo := newTestService(t)

		mockTransactionRepo.EXPECT().
			ListDescriptions().
			Return(log, nil)

		sales, err := service.ListSales("")

		require.NoError(t, err)
		require.Len(t, sales, 2)
		for _, sale := range sales {
			assert.Contains(t, sale, "VENDA")
		}
	})

	t.Run("Erro do repositório é propagado", func(t *testing.T) {
		service, _, mockTransactionRepo := newTestService(t)

		mockTransactionRepo.EXPECT().
			ListDescriptions().
			Return(nil, errors.New("conexão recusada"))

		_, err := service.ListTransactions("")

		assert.ErrorIs(t, err, ErrFetchTransactions)
	})
}

func TestCanonicalLineRoundTrip(t *testing.T) {
	// A linha gravada pelo serviço precisa ser aceita pelo parser do log
	day := time.Date(2025, 8, 25, 0, 0, 0, 0, time.Local)
	line := "VENDA: Escudo, Qtd: 3, Preço: R$ " + utils.FormatBRL(10.0) + ", Data: " + utils.FormatLogDate(day)

	record, ok := insighting.ParseTransaction(line, time.Now())

	require.True(t, ok)
	assert.Equal(t, domain.KindSale, record.Kind)
	assert.Equal(t, "Escudo", record.ItemName)
	assert.Equal(t, 3, record.Quantity)
	assert.InDelta(t, 10.0, record.UnitPrice, 0.001)
	assert.True(t, day.Equal(record.OccurredOn))
}
