package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/deporar/sdt-pedidos/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

func TestInspect_LeeClaimsSinSecreto(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "42", "RECIBIDOR", "sdt-test", time.Hour)
	require.NoError(t, err)

	info, err := pkgjwt.Inspect(tok)
	require.NoError(t, err)
	assert.Equal(t, "42", info.Subject)
	assert.Equal(t, "42", info.UserID)
	assert.Equal(t, "RECIBIDOR", info.Role)
	assert.False(t, info.Expired(time.Now()))
	assert.True(t, info.Expired(time.Now().Add(2*time.Hour)))
}

func TestInspect_TokenVencidoSeDetecta(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "7", "admin", "sdt-test", -time.Minute)
	require.NoError(t, err)

	info, err := pkgjwt.Inspect(tok)
	require.NoError(t, err, "un token vencido igual se puede inspeccionar")
	assert.True(t, info.Expired(time.Now()))
}

func TestInspect_TokenIlegible(t *testing.T) {
	_, err := pkgjwt.Inspect("token.invalido.aqui")
	assert.Error(t, err)

	_, err = pkgjwt.Inspect("")
	assert.Error(t, err)
}

func TestInfo_SinExpNuncaVence(t *testing.T) {
	assert.False(t, pkgjwt.Info{}.Expired(time.Now()))
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", "1", "admin", "x", time.Hour)
	assert.Error(t, err)
}
