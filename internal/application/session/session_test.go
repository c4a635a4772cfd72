package session_test

import (
	"encoding/base64"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/distribution-console/internal/application/session"
	"github.com/jhoicas/distribution-console/internal/domain/entity"
	pkgjwt "github.com/jhoicas/distribution-console/pkg/jwt"
)

type memStore struct {
	token   string
	err     error
	saved   int
	cleared int
}

func (m *memStore) Load() (string, error) { return m.token, m.err }
func (m *memStore) Save(t string) error   { m.token = t; m.saved++; return nil }
func (m *memStore) Clear() error          { m.token = ""; m.cleared++; return nil }

func tokenWithRoles(t *testing.T, roles ...string) string {
	t.Helper()
	tok, err := pkgjwt.Generate("s3cr3t", "ana", roles, 60)
	require.NoError(t, err)
	return tok
}

// rawToken token sin firmar válida con el payload literal indicado.
func rawToken(payload string) string {
	enc := base64.RawURLEncoding
	return enc.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`)) + "." +
		enc.EncodeToString([]byte(payload)) + ".c2ln"
}

func TestRoleFromToken(t *testing.T) {
	cases := []struct {
		name  string
		token string
		want  entity.Role
	}{
		{"admin con prefijo", tokenWithRoles(t, "ROLE_ADMIN"), entity.RoleAdmin},
		{"logistician sin prefijo", tokenWithRoles(t, "logistician"), entity.RoleLogistician},
		{"primer elemento manda", tokenWithRoles(t, "ROLE_STOREKEEPER", "ROLE_ADMIN"), entity.RoleStorekeeper},
		{"rol desconocido", tokenWithRoles(t, "ROLE_AUDITOR"), entity.RoleUnknown},
		{"primer elemento no reconocido", rawToken(`{"roles":[42,"ROLE_ADMIN"]}`), entity.RoleUnknown},
		{"sin roles", tokenWithRoles(t), entity.RoleUnknown},
		{"vacío", "", entity.RoleUnknown},
		{"truncado", "eyJhbGciOiJIUzI1NiJ9.eyJyb2xlcyI6", entity.RoleUnknown},
		{"basura", "no-es-un-jwt", entity.RoleUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, session.RoleFromToken(tc.token))
		})
	}
}

func TestSession_CicloDeVida(t *testing.T) {
	store := &memStore{token: tokenWithRoles(t, "ROLE_LOGISTICIAN")}
	s := session.New(store, zerolog.Nop())

	assert.Equal(t, entity.RoleUnknown, s.Role(), "antes de Load no hay rol")

	require.NoError(t, s.Load())
	assert.True(t, s.Authenticated())
	assert.Equal(t, entity.RoleLogistician, s.Role())
	assert.True(t, s.Capabilities().CanManageOperations)
	assert.False(t, s.Capabilities().CanManageUsers)

	admin := tokenWithRoles(t, "ROLE_ADMIN")
	require.NoError(t, s.SetToken(admin))
	assert.Equal(t, admin, store.token, "SetToken persiste la credencial")
	assert.True(t, s.Capabilities().CanManageUsers)

	require.NoError(t, s.Clear())
	assert.False(t, s.Authenticated())
	assert.Equal(t, entity.RoleUnknown, s.Role())
	assert.Equal(t, 1, store.cleared)
}

func TestSession_LoadSinArchivo(t *testing.T) {
	s := session.New(&memStore{err: os.ErrNotExist}, zerolog.Nop())
	require.NoError(t, s.Load())
	assert.False(t, s.Authenticated())
}

func TestSession_SinStore(t *testing.T) {
	s := session.New(nil, zerolog.Nop())
	require.NoError(t, s.Load())
	require.NoError(t, s.SetToken(tokenWithRoles(t, "ROLE_STOREKEEPER")))
	assert.Equal(t, entity.RoleStorekeeper, s.Role())
	assert.False(t, s.Capabilities().CanManageOperations)
}
