package dto

// CreateUserRequest registers a user inside a tenant.
// Area and Specialty are required for the Especialista role; the usecase enforces it.
type CreateUserRequest struct {
	Username  string  `json:"username" validate:"required,min=3,max=50"`
	Email     string  `json:"email" validate:"required,email"`
	Password  string  `json:"password" validate:"required,min=6"`
	Role      string  `json:"role" validate:"required,oneof=Administrador Especialista Paciente"`
	Area      *string `json:"area" validate:"omitempty,max=100"`
	Specialty *string `json:"specialty" validate:"omitempty,max=100"`
}

// RegisterPatientRequest registers a Paciente; the role is implied by the route.
type RegisterPatientRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type UserListResponse struct {
	Users []UserResponse `json:"users"`
	Total int            `json:"total"`
}
