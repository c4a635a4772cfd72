package users_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/distribution-console/internal/application/dto"
	"github.com/jhoicas/distribution-console/internal/application/users"
	"github.com/jhoicas/distribution-console/internal/domain"
	"github.com/jhoicas/distribution-console/internal/domain/entity"
)

type fakeUsersAPI struct {
	users   []entity.User
	updates int
}

func (f *fakeUsersAPI) ListUsers(context.Context) ([]entity.User, error) { return f.users, nil }

func (f *fakeUsersAPI) UpdateUserRole(_ context.Context, id int64, role string) error {
	f.updates++
	for i := range f.users {
		if f.users[i].ID == id {
			f.users[i].Roles = []entity.UserRole{{Name: role}}
		}
	}
	return nil
}

type fixedRole entity.Role

func (r fixedRole) Role() entity.Role                 { return entity.Role(r) }
func (r fixedRole) Capabilities() entity.Capabilities { return entity.Role(r).Capabilities() }

func newAPI() *fakeUsersAPI {
	return &fakeUsersAPI{users: []entity.User{
		{ID: 1, Username: "root", Roles: []entity.UserRole{{Name: "ROLE_ADMIN"}}},
		{ID: 2, Username: "ana"},
	}}
}

func TestList(t *testing.T) {
	uc := users.NewUserUseCase(newAPI(), fixedRole(entity.RoleLogistician), nil, zerolog.Nop())
	out, err := uc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "ROLE_ADMIN", out[0].Role)
	assert.Equal(t, "NO_ROLE", out[1].Role)
}

func TestChangeRole_SoloAdmin(t *testing.T) {
	for _, role := range []entity.Role{entity.RoleLogistician, entity.RoleStorekeeper, entity.RoleUnknown} {
		api := newAPI()
		uc := users.NewUserUseCase(api, fixedRole(role), nil, zerolog.Nop())

		_, err := uc.ChangeRole(context.Background(), 2, dto.ChangeRoleRequest{RoleName: "ROLE_ADMIN"})
		assert.ErrorIs(t, err, domain.ErrForbidden, "rol %s", role)
		assert.Equal(t, 0, api.updates)
	}
}

func TestChangeRole_AdminRefrescaLista(t *testing.T) {
	api := newAPI()
	uc := users.NewUserUseCase(api, fixedRole(entity.RoleAdmin), nil, zerolog.Nop())

	out, err := uc.ChangeRole(context.Background(), 2, dto.ChangeRoleRequest{RoleName: "ROLE_LOGISTICIAN"})
	require.NoError(t, err)
	assert.Equal(t, 1, api.updates)
	assert.Equal(t, "ROLE_LOGISTICIAN", out[1].Role)
}

func TestChangeRole_RolNoAsignable(t *testing.T) {
	api := newAPI()
	uc := users.NewUserUseCase(api, fixedRole(entity.RoleAdmin), nil, zerolog.Nop())

	_, err := uc.ChangeRole(context.Background(), 2, dto.ChangeRoleRequest{RoleName: "ROLE_ROOT"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 0, api.updates)
}
