package models

type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleBarber   Role = "BARBER"
	RoleAdmin    Role = "ADMIN"
)

func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleBarber, RoleAdmin:
		return true
	}
	return false
}

// User is the identity snapshot kept in local storage between runs.
type User struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	Role  Role   `json:"role"`
}

type AuthResponse struct {
	Token string `json:"token"`
	Type  string `json:"type"`
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

func (r AuthResponse) User() User {
	return User{
		ID:    r.ID,
		Email: r.Email,
		Name:  r.Name,
		Role:  r.Role,
	}
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"notblank"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone,omitempty"`
	Role     Role   `json:"role" binding:"oneof=CUSTOMER BARBER"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
