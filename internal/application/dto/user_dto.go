package dto

// ChangeRoleRequest PUT /admin/users/{id}/role.
type ChangeRoleRequest struct {
	RoleName string `json:"roleName" validate:"required,oneof=ROLE_STOREKEEPER ROLE_LOGISTICIAN ROLE_ADMIN"`
}

// UserResponse fila de la tabla de usuarios.
type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}
