package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deporar/sdt-pedidos/internal/application/dto"
	"github.com/deporar/sdt-pedidos/internal/application/usecase"
	"github.com/deporar/sdt-pedidos/internal/domain"
	"github.com/deporar/sdt-pedidos/internal/domain/entity"
)

func validCreate() dto.CreateUserRequest {
	return dto.CreateUserRequest{
		Email:    "juan@deporar.com",
		FullName: "Juan Pérez",
		UserName: "juanp",
		Password: "secreto",
		DuxID:    "44",
	}
}

func TestCreateUser_RolPorDefectoOperador(t *testing.T) {
	gw := &fakeUsers{}
	uc := usecase.NewUserUseCase(gw, adminSession(), time.Second)

	out, err := uc.Create(context.Background(), validCreate())
	require.NoError(t, err)
	assert.Equal(t, "9", out.ID)
	require.NotNil(t, gw.created)
	assert.Equal(t, "OPERADOR", gw.created.Role)
}

func TestCreateUser_Validaciones(t *testing.T) {
	cases := map[string]func(*dto.CreateUserRequest){
		"email":    func(r *dto.CreateUserRequest) { r.Email = "juan.deporar" },
		"password": func(r *dto.CreateUserRequest) { r.Password = "123" },
		"fullName": func(r *dto.CreateUserRequest) { r.FullName = " " },
		"userName": func(r *dto.CreateUserRequest) { r.UserName = "" },
		"duxId":    func(r *dto.CreateUserRequest) { r.DuxID = "" },
	}
	for field, mutate := range cases {
		t.Run(field, func(t *testing.T) {
			gw := &fakeUsers{}
			in := validCreate()
			mutate(&in)
			_, err := usecase.NewUserUseCase(gw, adminSession(), time.Second).Create(context.Background(), in)
			require.ErrorIs(t, err, domain.ErrInvalidInput)

			var ve *usecase.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Contains(t, ve.Fields, field)
			assert.Nil(t, gw.created, "no llega a la API")
		})
	}
}

func TestUpdateUser_PasswordOpcional(t *testing.T) {
	gw := &fakeUsers{}
	uc := usecase.NewUserUseCase(gw, adminSession(), time.Second)
	_, err := uc.Update(context.Background(), "5", dto.UpdateUserRequest{
		Email: "a@b.co", Name: "Ana", Username: "ana", Role: "preparador",
	})
	require.NoError(t, err)
	assert.Equal(t, "PREPARADOR", gw.updated.Role)
	assert.Empty(t, gw.updated.Password)

	_, err = uc.Update(context.Background(), "5", dto.UpdateUserRequest{
		Email: "a@b.co", Name: "Ana", Username: "ana", Role: "preparador", Password: "12",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDeleteUser(t *testing.T) {
	gw := &fakeUsers{}
	uc := usecase.NewUserUseCase(gw, adminSession(), time.Second)
	require.NoError(t, uc.Delete(context.Background(), "5"))
	assert.Equal(t, "5", gw.deleted)

	assert.ErrorIs(t, uc.Delete(context.Background(), "1"), domain.ErrInvalidInput, "no se borra a sí mismo")
}

func TestListUsers_TokenVencidoExpiraSesion(t *testing.T) {
	sessions := adminSession()
	gw := &fakeUsers{err: domain.ErrAuthExpired}
	_, err := usecase.NewUserUseCase(gw, sessions, time.Second).List(context.Background())
	assert.ErrorIs(t, err, domain.ErrAuthExpired)
	assert.Equal(t, 1, sessions.expired)
}

func TestListUsers(t *testing.T) {
	gw := &fakeUsers{users: []entity.User{{ID: "1", Name: "Ana", Role: entity.Role{Name: "ADMIN"}, Enabled: true}}}
	out, err := usecase.NewUserUseCase(gw, adminSession(), time.Second).List(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "ADMIN", out[0].Role.Name)
	assert.Nil(t, out[0].CreatedAt)
}
