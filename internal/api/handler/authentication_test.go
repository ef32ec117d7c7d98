package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wbarros/stock-control-api/internal/api/handler"
	"github.com/wbarros/stock-control-api/internal/domain"
	"github.com/wbarros/stock-control-api/internal/usecases/authenticating"
	"github.com/wbarros/stock-control-api/internal/usecases/authenticating/mocks"
	"github.com/wbarros/stock-control-api/pkg/middleware"
	"go.uber.org/mock/gomock"
)

func TestLogin(t *testing.T) {
	t.Run("responde o token para credenciais válidas", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := mocks.NewMockAuthenticator(ctrl)
		service.EXPECT().Login("will", "123").Return("jwt-token", nil)

		body := `{"username": "will", "password": "123"}`
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/login", strings.NewReader(body))
		handler.Login(service).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "jwt-token", resp["token"])
	})

	t.Run("responde 401 para senha errada", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := mocks.NewMockAuthenticator(ctrl)
		service.EXPECT().Login("will", "errada").Return("", authenticating.NewAuthError(
			authenticating.ErrInvalidCredentials, "AUTH_001", "Credenciais inválidas"))

		body := `{"username": "will", "password": "errada"}`
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/login", strings.NewReader(body))
		handler.Login(service).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejeita requisição sem senha", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := mocks.NewMockAuthenticator(ctrl)

		body := `{"username": "will"}`
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/login", strings.NewReader(body))
		handler.Login(service).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetMe(t *testing.T) {
	t.Run("retorna o perfil do usuário logado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := mocks.NewMockAuthenticator(ctrl)
		service.EXPECT().GetProfile(1).Return(&domain.User{ID: 1, Username: "will"}, nil)

		claims := &domain.Claims{UserID: 1, Username: "will"}
		req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
		req = req.WithContext(context.WithValue(req.Context(), middleware.ContextKeyUser, claims))

		rec := httptest.NewRecorder()
		handler.GetMe(service).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var user domain.User
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
		assert.Equal(t, "will", user.Username)
	})

	t.Run("responde 401 sem claims no contexto", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := mocks.NewMockAuthenticator(ctrl)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
		handler.GetMe(service).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestChangePassword(t *testing.T) {
	t.Run("altera a senha do usuário logado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := mocks.NewMockAuthenticator(ctrl)
		service.EXPECT().ChangePassword(1, "123", "nova-senha").Return(nil)

		claims := &domain.Claims{UserID: 1, Username: "will"}
		body := `{"current_password": "123", "new_password": "nova-senha"}`
		req := httptest.NewRequest(http.MethodPost, "/v1/me/change-password", strings.NewReader(body))
		req = req.WithContext(context.WithValue(req.Context(), middleware.ContextKeyUser, claims))

		rec := httptest.NewRecorder()
		handler.ChangePassword(service).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("responde 401 quando a senha atual não confere", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := mocks.NewMockAuthenticator(ctrl)
		service.EXPECT().ChangePassword(1, "errada", "nova-senha").Return(
			authenticating.NewAuthError(authenticating.ErrInvalidCredentials, "AUTH_001", "Senha atual incorreta"))

		claims := &domain.Claims{UserID: 1, Username: "will"}
		body := `{"current_password": "errada", "new_password": "nova-senha"}`
		req := httptest.NewRequest(http.MethodPost, "/v1/me/change-password", strings.NewReader(body))
		req = req.WithContext(context.WithValue(req.Context(), middleware.ContextKeyUser, claims))

		rec := httptest.NewRecorder()
		handler.ChangePassword(service).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
