package stocking

import (
	"fmt"
	"strings"
	"time"

	"github.com/wbarros/stock-control-api/infrastructure/repository"
	"github.com/wbarros/stock-control-api/internal/domain"
	"github.com/wbarros/stock-control-api/internal/usecases/insighting"
	"github.com/wbarros/stock-control-api/pkg/apiErrors"
	"github.com/wbarros/stock-control-api/pkg/utils"
)

// StockService gerencia o catálogo de itens e o log de movimentações
type StockService interface {
	ListItems(search string) ([]*domain.StockItem, error)
	GetItem(id int) (*domain.StockItem, error)
	CreateItem(request *domain.CreateStockItemRequest) (*domain.StockItem, error)
	UpdateItem(request *domain.UpdateStockItemRequest) (*domain.StockItem, error)
	DeleteItem(id int) error

	RegisterSale(request *domain.RegisterTransactionRequest) (*domain.StockItem, error)
	RegisterPurchase(request *domain.RegisterTransactionRequest) (*domain.StockItem, error)
	ListTransactions(search string) ([]string, error)
	ListSales(search string) ([]string, error)
	ListPurchases(search string) ([]string, error)
}

type Service struct {
	itemRepository        repository.ItemRepository
	transactionRepository repository.TransactionRepository
}

func NewService(
	itemRepository repository.ItemRepository,
	transactionRepository repository.TransactionRepository,
) StockService {
	return &Service{
		itemRepository:        itemRepository,
		transactionRepository: transactionRepository,
	}
}

func (s *Service) ListItems(search string) ([]*domain.StockItem, error) {
	items, err := s.itemRepository.ListItems(search)
	if err != nil {
		return nil, NewStockError(ErrFetchItems, apiErrors.ErrDatabaseOperation, "Falha ao listar itens do estoque")
	}

	return items, nil
}

func (s *Service) GetItem(id int) (*domain.StockItem, error) {
	item, err := s.itemRepository.GetItemByID(id)
	if err != nil {
		return nil, NewStockError(ErrFetchItems, apiErrors.ErrDatabaseOperation, "Falha ao buscar item do estoque")
	}

	if item == nil {
		return nil, NewStockError(ErrItemNotFound, apiErrors.ErrItemNotFound, fmt.Sprintf("Item %d não encontrado", id))
	}

	return item, nil
}

func (s *Service) CreateItem(request *domain.CreateStockItemRequest) (*domain.StockItem, error) {
	name := strings.TrimSpace(request.Name)
	if name == "" {
		return nil, NewStockError(ErrItemNameRequired, apiErrors.ErrMissingRequiredData, "O nome do item é obrigatório")
	}

	existing, err := s.itemRepository.GetItemByName(name)
	if err != nil {
		return nil, NewStockError(ErrFetchItems, apiErrors.ErrDatabaseOperation, "Falha ao verificar duplicidade do item")
	}

	if existing != nil {
		return nil, NewStockErrorWithItem(ErrItemAlreadyExists, apiErrors.ErrItemAlreadyExists, name, "Já existe um item com esse nome")
	}

	item := &domain.StockItem{
		Name:         name,
		Quantity:     request.Quantity,
		AveragePrice: request.AveragePrice,
		TotalPrice:   utils.RoundWithTwoDecimalPlace(float64(request.Quantity) * request.AveragePrice),
		ImageURL:     request.ImageURL,
	}

	created, err := s.itemRepository.CreateItem(item)
	if err != nil {
		return nil, NewStockErrorWithItem(ErrPersistItem, apiErrors.ErrDatabaseOperation, name, "Falha ao cadastrar item")
	}

	return created, nil
}

func (s *Service) UpdateItem(request *domain.UpdateStockItemRequest) (*domain.StockItem, error) {
	item, err := s.GetItem(request.ID)
	if err != nil {
		return nil, err
	}

	if request.Name != nil {
		name := strings.TrimSpace(*request.Name)
		if name == "" {
			return nil, NewStockError(ErrItemNameRequired, apiErrors.ErrMissingRequiredData, "O nome do item é obrigatório")
		}
		item.Name = name
	}

	if request.Quantity != nil {
		item.Quantity = *request.Quantity
	}

	if request.AveragePrice != nil {
		item.AveragePrice = *request.AveragePrice
	}

	if request.ImageURL != nil {
		item.ImageURL = request.ImageURL
	}

	item.TotalPrice = utils.RoundWithTwoDecimalPlace(float64(item.Quantity) * item.AveragePrice)

	if err := s.itemRepository.UpdateItem(item); err != nil {
		return nil, NewStockErrorWithItem(ErrPersistItem, apiErrors.ErrDatabaseOperation, item.Name, "Falha ao atualizar item")
	}

	return item, nil
}

// DeleteItem remove o item do catálogo e registra a linha de remoção no log.
// A linha sentinela exclui o item do histórico e dos indicadores; o log em si
// nunca é reescrito.
func (s *Service) DeleteItem(id int) error {
	item, err := s.GetItem(id)
	if err != nil {
		return err
	}

	if err := s.itemRepository.DeleteItem(id); err != nil {
		return NewStockErrorWithItem(ErrPersistItem, apiErrors.ErrDatabaseOperation, item.Name, "Falha ao excluir item")
	}

	line := fmt.Sprintf("Item removido: %s, Qtd: %d", item.Name, item.Quantity)
	if err := s.transactionRepository.Append(line); err != nil {
		return NewStockErrorWithItem(ErrAppendTransaction, apiErrors.ErrDatabaseOperation, item.Name, "Falha ao registrar remoção no log")
	}

	return nil
}

// RegisterSale valida o estoque, decrementa a quantidade do item e grava a
// linha canônica de venda no log.
func (s *Service) RegisterSale(request *domain.RegisterTransactionRequest) (*domain.StockItem, error) {
	item, err := s.findItemByName(request.ItemName)
	if err != nil {
		return nil, err
	}

	if item == nil {
		return nil, NewStockErrorWithItem(ErrItemNotFound, apiErrors.ErrItemNotFound, request.ItemName, "Item não encontrado no catálogo")
	}

	if item.Quantity < request.Quantity {
		details := fmt.Sprintf("Estoque atual: %d, solicitado: %d", item.Quantity, request.Quantity)
		return nil, NewStockErrorWithItem(ErrInsufficientStock, apiErrors.ErrInsufficientStock, item.Name, details)
	}

	occurredOn, err := s.resolveDate(request.Date)
	if err != nil {
		return nil, err
	}

	item.Quantity -= request.Quantity
	item.TotalPrice = utils.RoundWithTwoDecimalPlace(float64(item.Quantity) * item.AveragePrice)

	if err := s.itemRepository.UpdateItem(item); err != nil {
		return nil, NewStockErrorWithItem(ErrPersistItem, apiErrors.ErrDatabaseOperation, item.Name, "Falha ao baixar estoque")
	}

	line := fmt.Sprintf("VENDA: %s, Qtd: %d, Preço: R$ %s, Data: %s",
		item.Name, request.Quantity, utils.FormatBRL(request.UnitPrice), utils.FormatLogDate(occurredOn))
	if err := s.transactionRepository.Append(line); err != nil {
		return nil, NewStockErrorWithItem(ErrAppendTransaction, apiErrors.ErrDatabaseOperation, item.Name, "Falha ao registrar venda no log")
	}

	return item, nil
}

// RegisterPurchase incorpora a compra ao estoque recalculando o preço médio
// ponderado. Compra de item ainda não catalogado cadastra o item na hora.
func (s *Service) RegisterPurchase(request *domain.RegisterTransactionRequest) (*domain.StockItem, error) {
	item, err := s.findItemByName(request.ItemName)
	if err != nil {
		return nil, err
	}

	occurredOn, err := s.resolveDate(request.Date)
	if err != nil {
		return nil, err
	}

	if item == nil {
		item = &domain.StockItem{
			Name:         strings.TrimSpace(request.ItemName),
			Quantity:     request.Quantity,
			AveragePrice: request.UnitPrice,
			TotalPrice:   utils.RoundWithTwoDecimalPlace(float64(request.Quantity) * request.UnitPrice),
		}

		item, err = s.itemRepository.CreateItem(item)
		if err != nil {
			return nil, NewStockErrorWithItem(ErrPersistItem, apiErrors.ErrDatabaseOperation, request.ItemName, "Falha ao cadastrar item da compra")
		}
	} else {
		totalQuantity := item.Quantity + request.Quantity
		weightedCost := float64(item.Quantity)*item.AveragePrice + float64(request.Quantity)*request.UnitPrice

		item.Quantity = totalQuantity
		item.AveragePrice = utils.RoundWithTwoDecimalPlace(weightedCost / float64(totalQuantity))
		item.TotalPrice = utils.RoundWithTwoDecimalPlace(float64(totalQuantity) * item.AveragePrice)

		if err := s.itemRepository.UpdateItem(item); err != nil {
			return nil, NewStockErrorWithItem(ErrPersistItem, apiErrors.ErrDatabaseOperation, item.Name, "Falha ao atualizar estoque da compra")
		}
	}

	line := fmt.Sprintf("COMPRA: %s, Qtd: %d, Preço: R$ %s, Data: %s",
		item.Name, request.Quantity, utils.FormatBRL(request.UnitPrice), utils.FormatLogDate(occurredOn))
	if err := s.transactionRepository.Append(line); err != nil {
		return nil, NewStockErrorWithItem(ErrAppendTransaction, apiErrors.ErrDatabaseOperation, item.Name, "Falha ao registrar compra no log")
	}

	return item, nil
}

// ListTransactions retorna o histórico sem as linhas de remoção, da mais
// recente para a mais antiga, com filtro opcional por trecho do texto.
func (s *Service) ListTransactions(search string) ([]string, error) {
	return s.listFiltered(search, nil)
}

func (s *Service) ListSales(search string) ([]string, error) {
	kind := domain.KindSale
	return s.listFiltered(search, &kind)
}

func (s *Service) ListPurchases(search string) ([]string, error) {
	kind := domain.KindPurchase
	return s.listFiltered(search, &kind)
}

func (s *Service) listFiltered(search string, kind *domain.TransactionKind) ([]string, error) {
	descriptions, err := s.transactionRepository.ListDescriptions()
	if err != nil {
		return nil, NewStockError(ErrFetchTransactions, apiErrors.ErrDatabaseOperation, "Falha ao buscar o histórico de transações")
	}

	search = strings.ToLower(strings.TrimSpace(search))
	now := time.Now()

	// O log é ordenado da linha mais antiga para a mais nova; o histórico
	// é exibido na ordem inversa.
	filtered := make([]string, 0, len(descriptions))
	for i := len(descriptions) - 1; i >= 0; i-- {
		description := descriptions[i]

		if strings.Contains(strings.ToLower(description), domain.RemovalSentinel) {
			continue
		}

		if search != "" && !strings.Contains(strings.ToLower(description), search) {
			continue
		}

		if kind != nil {
			record, ok := insighting.ParseTransaction(description, now)
			if !ok || record.Kind != *kind {
				continue
			}
		}

		filtered = append(filtered, description)
	}

	return filtered, nil
}

func (s *Service) findItemByName(name string) (*domain.StockItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, NewStockError(ErrItemNameRequired, apiErrors.ErrMissingRequiredData, "O nome do item é obrigatório")
	}

	item, err := s.itemRepository.GetItemByName(name)
	if err != nil {
		return nil, NewStockError(ErrFetchItems, apiErrors.ErrDatabaseOperation, "Falha ao buscar item do estoque")
	}

	return item, nil
}

func (s *Service) resolveDate(raw *string) (time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return time.Now(), nil
	}

	parsed, err := time.ParseInLocation(utils.LogDateLayout, strings.TrimSpace(*raw), time.Local)
	if err != nil {
		return time.Time{}, NewStockError(ErrInvalidDate, apiErrors.ErrInvalidFormat, "A data deve estar no formato dd/mm/aaaa")
	}

	return parsed, nil
}
