package user

type CreateUserRequest struct {
	FullName string  `json:"full_name" binding:"required"`
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=8"`
	Role     string  `json:"role" binding:"required"`
	TeamID   *string `json:"team_id"`
}

type UpdateUserRequest struct {
	FullName *string `json:"full_name"`
	Role     *string `json:"role"`
	TeamID   *string `json:"team_id"`
	IsActive *bool   `json:"is_active"`
}

type UserResponse struct {
	ID             string  `json:"id"`
	FullName       string  `json:"full_name"`
	Email          string  `json:"email"`
	Role           string  `json:"role"`
	TeamID         *string `json:"team_id,omitempty"`
	EmployeeNumber string  `json:"employee_number"`
	IsActive       bool    `json:"is_active"`
}
