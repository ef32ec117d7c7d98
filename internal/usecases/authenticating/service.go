package authenticating

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/wbarros/stock-control-api/infrastructure/repository"
	"github.com/wbarros/stock-control-api/internal/config"
	"github.com/wbarros/stock-control-api/internal/domain"
	"github.com/wbarros/stock-control-api/pkg/apiErrors"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

// Authenticator autentica o usuário único da instalação e valida os tokens
// de acesso emitidos por ele
type Authenticator interface {
	Login(username, password string) (string, error)
	ValidateToken(tokenString string) (*domain.Claims, error)
	GetProfile(userID int) (*domain.User, error)
	ChangePassword(userID int, currentPassword, newPassword string) error
}

type Service struct {
	userRepository repository.UserRepository
	cfg            *config.Config
}

func NewService(userRepository repository.UserRepository, cfg *config.Config) Authenticator {
	return &Service{
		userRepository: userRepository,
		cfg:            cfg,
	}
}

// Login confere as credenciais e devolve um token JWT com a validade
// configurada em AUTH_TOKEN_TTL_HOURS
func (s *Service) Login(username, password string) (string, error) {
	if username == "" || password == "" {
		return "", NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Usuário e senha são obrigatórios")
	}

	user, err := s.userRepository.GetUserByUsername(username)
	if err != nil {
		return "", NewAuthError(err, apiErrors.ErrDatabaseOperation, "Erro ao consultar usuário no banco de dados")
	}

	if user == nil {
		return "", NewAuthError(ErrUserNotFound, apiErrors.ErrUserNotFound, "Usuário não encontrado")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", NewUserAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, user.ID, "Senha incorreta")
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return "", NewAuthError(err, apiErrors.ErrInternalServer, "Erro ao gerar token de autenticação")
	}

	return token, nil
}

func (s *Service) generateJWT(user *domain.User) (string, error) {
	ttl := time.Duration(s.cfg.Auth.TokenTTLHours) * time.Hour

	claims := domain.Claims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Auth.SecretKey))
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Auth.SecretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, NewAuthError(ErrExpiredToken, apiErrors.ErrExpiredToken, "Token expirado")
		}
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, err.Error())
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid {
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, "Token inválido")
	}

	return claims, nil
}

func (s *Service) GetProfile(userID int) (*domain.User, error) {
	user, err := s.userRepository.GetUserByID(userID)
	if err != nil {
		return nil, NewAuthError(err, apiErrors.ErrDatabaseOperation, "Erro ao consultar usuário no banco de dados")
	}

	if user == nil {
		return nil, NewUserAuthError(ErrUserNotFound, apiErrors.ErrUserNotFound, userID, "Usuário não encontrado")
	}

	user.PasswordHash = ""
	return user, nil
}

// ChangePassword troca a senha do usuário após conferir a senha atual
func (s *Service) ChangePassword(userID int, currentPassword, newPassword string) error {
	if currentPassword == "" || newPassword == "" {
		return NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Senha atual e nova senha são obrigatórias")
	}

	user, err := s.userRepository.GetUserByID(userID)
	if err != nil {
		return NewAuthError(err, apiErrors.ErrDatabaseOperation, "Erro ao consultar usuário no banco de dados")
	}

	if user == nil {
		return NewUserAuthError(ErrUserNotFound, apiErrors.ErrUserNotFound, userID, "Usuário não encontrado")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return NewUserAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, userID, "Senha atual incorreta")
	}

	if newPassword == currentPassword {
		return NewUserAuthError(ErrSamePassword, apiErrors.ErrInvalidRequest, userID, "A nova senha deve ser diferente da atual")
	}

	if len(newPassword) < minPasswordLength {
		details := fmt.Sprintf("A nova senha deve conter pelo menos %d caracteres", minPasswordLength)
		return NewUserAuthError(ErrWeakPassword, apiErrors.ErrInvalidRequest, userID, details)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return NewAuthError(err, apiErrors.ErrInternalServer, "Erro ao gerar hash da nova senha")
	}

	if err := s.userRepository.UpdatePassword(userID, string(hashedPassword)); err != nil {
		return NewAuthError(err, apiErrors.ErrDatabaseOperation, "Erro ao atualizar a senha")
	}

	return nil
}
