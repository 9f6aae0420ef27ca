package entity

import "time"

// Session identidad autenticada de la estación. Una sesión no nil siempre tiene Token.
type Session struct {
	UserID      string
	DisplayName string
	Email       string
	Role        Role
	Token       string
	ExpiresAt   *time.Time // del claim exp; nil si el token no lo trae
}

// Valid comprueba el invariante mínimo de la sesión.
func (s *Session) Valid() bool {
	return s != nil && s.Token != "" && s.UserID != ""
}

// Expired indica si el token venció respecto de now.
func (s *Session) Expired(now time.Time) bool {
	return s.ExpiresAt != nil && !now.Before(*s.ExpiresAt)
}

// Clone devuelve una copia independiente para lectores concurrentes.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	c := *s
	if s.ExpiresAt != nil {
		t := *s.ExpiresAt
		c.ExpiresAt = &t
	}
	return &c
}
