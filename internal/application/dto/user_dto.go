package dto

import (
	"time"

	"github.com/deporar/sdt-pedidos/internal/domain/entity"
)

// CreateUserRequest alta de usuario; se reenvía a POST /auth/signup con el rol en mayúsculas.
type CreateUserRequest struct {
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	UserName string `json:"userName"`
	Password string `json:"password"`
	Role     string `json:"role"`
	DuxID    string `json:"duxId,omitempty"`
}

// UpdateUserRequest edición de usuario. Password vacío = no se cambia.
type UpdateUserRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Role     string `json:"role"`
	DuxID    string `json:"duxId,omitempty"`
	Password string `json:"password,omitempty"`
}

// RoleResponse rol tal como lo ve la UI.
type RoleResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string       `json:"id"`
	Email     string       `json:"email"`
	Name      string       `json:"name"`
	Username  string       `json:"username"`
	Role      RoleResponse `json:"role"`
	DuxID     string       `json:"duxId,omitempty"`
	Enabled   bool         `json:"enabled"`
	CreatedAt *time.Time   `json:"created_at,omitempty"`
	UpdatedAt *time.Time   `json:"updated_at,omitempty"`
}

// LoginRequest entrada para login contra la API remota.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionResponse sesión activa de la estación (nunca expone el token).
type SessionResponse struct {
	UserID      string       `json:"user_id"`
	DisplayName string       `json:"display_name"`
	Email       string       `json:"email"`
	Role        RoleResponse `json:"role"`
	ExpiresAt   *time.Time   `json:"expires_at,omitempty"`
}

// FromUser mapea el usuario sin exponer datos sensibles.
func FromUser(u *entity.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Username:  u.Username,
		Role:      RoleResponse{ID: u.Role.ID, Name: u.Role.Name, Description: u.Role.Description},
		DuxID:     u.DuxID,
		Enabled:   u.Enabled,
		CreatedAt: timePtr(u.CreatedAt),
		UpdatedAt: timePtr(u.UpdatedAt),
	}
}

// FromSession mapea la sesión; el token nunca sale del proceso.
func FromSession(s *entity.Session) *SessionResponse {
	if s == nil {
		return nil
	}
	return &SessionResponse{
		UserID:      s.UserID,
		DisplayName: s.DisplayName,
		Email:       s.Email,
		Role:        RoleResponse{ID: s.Role.ID, Name: s.Role.Name, Description: s.Role.Description},
		ExpiresAt:   s.ExpiresAt,
	}
}
