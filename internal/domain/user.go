package domain

// Role is the access role of a user. Role gating happens in the HTTP
// middleware; services only consult roles for ownership rules.
type Role string

const (
	RoleCustomer Role = "Customer"
	RoleManager  Role = "Manager"
	RoleAdmin    Role = "Admin"
)

// Valid reports whether r is one of the three allowed roles.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// User represents an account. Credentials live with the external
// authentication collaborator and are never stored here.
type User struct {
	Username  string `json:"username"`
	Name      string `json:"name"`
	Surname   string `json:"surname"`
	Role      Role   `json:"role"`
	Address   string `json:"address"`
	Birthdate string `json:"birthdate"`
}

var (
	ErrUserNotFound      = &Error{Code: ENOTFOUND, Message: "User not found"}
	ErrUserAlreadyExists = &Error{Code: ECONFLICT, Message: "The username already exists"}
)
