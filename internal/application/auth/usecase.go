// Package auth expone login, logout y la sesión activa de la estación a la capa HTTP.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/deporar/sdt-pedidos/internal/application/dto"
	"github.com/deporar/sdt-pedidos/internal/domain"
	"github.com/deporar/sdt-pedidos/internal/domain/entity"
)

// MsgInvalidCredentials mensaje cuando la API no explica el rechazo.
const MsgInvalidCredentials = "Credenciales inválidas"

// SessionManager lo que el caso de uso necesita del dueño de la sesión.
type SessionManager interface {
	Login(ctx context.Context, email, password string) (*entity.Session, error)
	Logout() error
	Current() (*entity.Session, error)
	Redirect() (string, bool)
}

// AuthUseCase casos de uso de autenticación contra la API remota.
type AuthUseCase struct {
	sessions SessionManager
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(sessions SessionManager) *AuthUseCase {
	return &AuthUseCase{sessions: sessions}
}

// LoginError rechazo del login con el mensaje a mostrar.
type LoginError struct {
	Message string
	Err     error
}

func (e *LoginError) Error() string { return e.Message + ": " + e.Err.Error() }
func (e *LoginError) Unwrap() error { return e.Err }

// PublicMessage mensaje para la pantalla de login.
func (e *LoginError) PublicMessage() string { return e.Message }

// Login autentica y devuelve la sesión publicada (sin token).
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.SessionResponse, error) {
	if in.Email == "" || in.Password == "" {
		return nil, &LoginError{Message: MsgInvalidCredentials, Err: domain.ErrInvalidInput}
	}
	s, err := uc.sessions.Login(ctx, in.Email, in.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUnavailable) || errors.Is(err, domain.ErrInvalidLoginResponse) {
			return nil, fmt.Errorf("login: %w", err)
		}
		return nil, &LoginError{Message: domain.UserMessage(err, MsgInvalidCredentials), Err: err}
	}
	return dto.FromSession(s), nil
}

// Logout cierra la sesión local.
func (uc *AuthUseCase) Logout() error {
	return uc.sessions.Logout()
}

// Current sesión activa. Si terminó por expiración el error lleva ErrAuthExpired
// para que la UI vuelva al login.
func (uc *AuthUseCase) Current() (*dto.SessionResponse, error) {
	s, err := uc.sessions.Current()
	if err != nil {
		if _, expired := uc.sessions.Redirect(); expired && errors.Is(err, domain.ErrNoSession) {
			return nil, domain.ErrAuthExpired
		}
		return nil, err
	}
	return dto.FromSession(s), nil
}
