package entity

// UserRole rol tal como lo serializa /admin/users.
type UserRole struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name"`
}

// User cuenta del backend con sus roles.
type User struct {
	ID       int64      `json:"id"`
	Username string     `json:"username"`
	Email    string     `json:"email,omitempty"`
	Roles    []UserRole `json:"roles"`
}

// PrimaryRole nombre del primer rol o "NO_ROLE".
func (u User) PrimaryRole() string {
	if len(u.Roles) == 0 || u.Roles[0].Name == "" {
		return "NO_ROLE"
	}
	return u.Roles[0].Name
}
