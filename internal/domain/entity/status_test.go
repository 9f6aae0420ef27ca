package entity_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deporar/sdt-pedidos/internal/domain"
	"github.com/deporar/sdt-pedidos/internal/domain/entity"
)

func TestParseStatus(t *testing.T) {
	st, err := entity.ParseStatus(" en_preparacion ")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusEnPreparacion, st)

	_, err = entity.ParseStatus("EN_CAMINO")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidStatus))
}

func TestStatus_Label(t *testing.T) {
	assert.Equal(t, "En Faltante", entity.StatusEnFaltante.Label())
	assert.Equal(t, "EN_CAMINO", entity.Status("EN_CAMINO").Label(), "desconocido devuelve el texto crudo")
}

func TestAllStatuses_CubreTodasLasEtiquetas(t *testing.T) {
	all := entity.AllStatuses()
	assert.Len(t, all, 10)
	for _, s := range all {
		assert.True(t, s.Valid(), s)
	}
}

func TestSession_CloneIndependiente(t *testing.T) {
	s := &entity.Session{UserID: "1", Token: "t", Role: entity.Role{Name: "admin"}}
	c := s.Clone()
	c.Role.Name = "operador"
	assert.Equal(t, "admin", s.Role.Name)
	assert.True(t, c.Valid())

	var nilSession *entity.Session
	assert.False(t, nilSession.Valid())
	assert.Nil(t, nilSession.Clone())
}
