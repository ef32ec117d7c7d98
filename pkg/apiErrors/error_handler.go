package apiErrors

import (
	"encoding/json"
	"net/http"
)

// Códigos de erro retornados pela API
const (
	// Erros de autenticação (AUTH)
	ErrInvalidCredentials = "AUTH_001" // Credenciais inválidas
	ErrUserNotFound       = "AUTH_002" // Usuário não encontrado
	ErrInvalidToken       = "AUTH_003" // Token inválido
	ErrExpiredToken       = "AUTH_004" // Token expirado

	// Erros de validação (VAL)
	ErrInvalidRequest      = "VAL_001" // Requisição inválida
	ErrMissingRequiredData = "VAL_002" // Dados obrigatórios ausentes
	ErrInvalidFormat       = "VAL_003" // Formato de dados inválido

	// Erros de estoque (STK)
	ErrItemNotFound      = "STK_001" // Item não encontrado no catálogo
	ErrInsufficientStock = "STK_002" // Quantidade em estoque insuficiente
	ErrItemAlreadyExists = "STK_003" // Item com o mesmo nome já existe

	// Erros do servidor (SRV)
	ErrInternalServer    = "SRV_001" // Erro interno do servidor
	ErrDatabaseOperation = "SRV_002" // Erro de operação de banco de dados
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrInvalidCredentials:  http.StatusUnauthorized,
	ErrUserNotFound:        http.StatusNotFound,
	ErrInvalidToken:        http.StatusUnauthorized,
	ErrExpiredToken:        http.StatusUnauthorized,
	ErrInvalidRequest:      http.StatusBadRequest,
	ErrMissingRequiredData: http.StatusBadRequest,
	ErrInvalidFormat:       http.StatusBadRequest,
	ErrItemNotFound:        http.StatusNotFound,
	ErrInsufficientStock:   http.StatusConflict,
	ErrItemAlreadyExists:   http.StatusConflict,
	ErrInternalServer:      http.StatusInternalServerError,
	ErrDatabaseOperation:   http.StatusInternalServerError,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

// WriteError escreve o erro padronizado na resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	status, exists := httpStatusMap[code]
	if !exists {
		status = http.StatusInternalServerError
	}

	WriteErrorWithStatus(w, status, code, message, details)
}

// WriteErrorWithStatus escreve o erro padronizado forçando o status HTTP,
// para os casos que fogem do mapeamento por código
func WriteErrorWithStatus(w http.ResponseWriter, status int, code string, message string, details any) {
	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(apiErr)
}

// FromError cria um erro de API a partir de um erro Go
func FromError(err error, code string) APIError {
	if err == nil {
		return APIError{
			Code:    ErrInternalServer,
			Message: "Erro desconhecido",
		}
	}

	return APIError{
		Code:    code,
		Message: err.Error(),
	}
}
