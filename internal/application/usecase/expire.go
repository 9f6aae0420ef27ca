package usecase

import (
	"errors"

	"github.com/deporar/sdt-pedidos/internal/application/session"
	"github.com/deporar/sdt-pedidos/internal/domain"
)

// expireOnAuth descarta la sesión dueña de token si la API lo rechazó.
func expireOnAuth(p session.Provider, token string, err error, reason string) error {
	if errors.Is(err, domain.ErrAuthExpired) {
		p.Expire(token, reason)
	}
	return err
}
