package models

// Account roles carried in credentials
const (
	RoleDriver = "driver"
	RoleParent = "parent"
	RoleAdmin  = "admin"
)

// Account is the authenticated identity behind a connection
type Account struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

// IsDriver reports whether the account drives rides
func (a Account) IsDriver() bool {
	return a.Role == RoleDriver
}

// CanWatch reports whether the account role may watch rides at all
func (a Account) CanWatch() bool {
	return a.Role == RoleParent || a.Role == RoleAdmin
}
