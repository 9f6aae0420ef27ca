package usecase_test

import (
	"context"
	"sync"

	"github.com/deporar/sdt-pedidos/internal/application/dto"
	"github.com/deporar/sdt-pedidos/internal/domain"
	"github.com/deporar/sdt-pedidos/internal/domain/entity"
)

type fakeSessions struct {
	mu      sync.Mutex
	s       *entity.Session
	expired int
}

func (f *fakeSessions) Current() (*entity.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.s == nil {
		return nil, domain.ErrNoSession
	}
	return f.s.Clone(), nil
}

func (f *fakeSessions) Expire(_, _ string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.s = nil
	f.expired++
}

func adminSession() *fakeSessions {
	return &fakeSessions{s: &entity.Session{UserID: "1", DisplayName: "Ana", Role: entity.Role{Name: "ADMIN"}, Token: "tok"}}
}

type fakeUsers struct {
	users   []entity.User
	err     error
	created *dto.CreateUserRequest
	updated *dto.UpdateUserRequest
	deleted string
}

func (f *fakeUsers) List(context.Context, string) ([]entity.User, error) { return f.users, f.err }

func (f *fakeUsers) Create(_ context.Context, _ string, in dto.CreateUserRequest) (*entity.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = &in
	return &entity.User{ID: "9", Email: in.Email, Name: in.FullName, Role: entity.Role{Name: in.Role}}, nil
}

func (f *fakeUsers) Update(_ context.Context, _, id string, in dto.UpdateUserRequest) (*entity.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.updated = &in
	return &entity.User{ID: id, Email: in.Email, Name: in.Name}, nil
}

func (f *fakeUsers) Delete(_ context.Context, _, id string) error {
	f.deleted = id
	return f.err
}

type publicErr struct{ msg string }

func (e publicErr) Error() string         { return "api: " + e.msg }
func (e publicErr) PublicMessage() string { return e.msg }
func (e publicErr) Unwrap() error         { return domain.ErrValidation }

func apiErr(msg string) error { return publicErr{msg: msg} }
