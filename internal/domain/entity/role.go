package entity

import "strings"

// Role nivel de permisos que el backend declara en el claim "roles" del token.
// En el cliente es solo una pista de presentación; el servidor vuelve a autorizar cada mutación.
type Role string

const (
	RoleAdmin       Role = "ADMIN"
	RoleLogistician Role = "LOGISTICIAN"
	RoleStorekeeper Role = "STOREKEEPER"
	RoleUnknown     Role = "UNKNOWN"
)

// roleAuthorityPrefix prefijo que Spring Security antepone a los nombres de rol.
const roleAuthorityPrefix = "ROLE_"

// AssignableRoles nombres de rol que la administración de usuarios puede asignar.
var AssignableRoles = []string{"ROLE_STOREKEEPER", "ROLE_LOGISTICIAN", "ROLE_ADMIN"}

// ParseRole mapea un valor libre ("ROLE_ADMIN", "admin", ...) a la enumeración cerrada.
// Cualquier valor no reconocido devuelve RoleUnknown.
func ParseRole(raw string) Role {
	s := strings.ToUpper(strings.TrimSpace(raw))
	s = strings.TrimPrefix(s, roleAuthorityPrefix)
	switch Role(s) {
	case RoleAdmin, RoleLogistician, RoleStorekeeper:
		return Role(s)
	default:
		return RoleUnknown
	}
}

// IsAssignableRole indica si name es uno de los nombres aceptados por PUT /admin/users/{id}/role.
func IsAssignableRole(name string) bool {
	for _, r := range AssignableRoles {
		if r == name {
			return true
		}
	}
	return false
}

// Capabilities permisos de interfaz derivados del rol.
type Capabilities struct {
	CanManageOperations bool `json:"can_manage_operations"`
	CanManageUsers      bool `json:"can_manage_users"`
}

// Capabilities deriva los permisos de interfaz del rol.
func (r Role) Capabilities() Capabilities {
	return Capabilities{
		CanManageOperations: r == RoleAdmin || r == RoleLogistician,
		CanManageUsers:      r == RoleAdmin,
	}
}
