package users

import "yamdb/internal/domain/users"

type UserDTO struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Bio       string `json:"bio"`
	Role      string `json:"role"`
}

// CreateUserRequest is the admin create payload.
type CreateUserRequest struct {
	Username  string `json:"username" binding:"required,max=150,username"`
	Email     string `json:"email" binding:"required,max=254,email"`
	FirstName string `json:"first_name" binding:"max=150"`
	LastName  string `json:"last_name" binding:"max=150"`
	Bio       string `json:"bio"`
	Role      string `json:"role" binding:"omitempty,role"`
}

// UpdateUserRequest is a partial update; nil fields are left unchanged.
type UpdateUserRequest struct {
	Username  *string `json:"username" binding:"omitempty,max=150,username"`
	Email     *string `json:"email" binding:"omitempty,max=254,email"`
	FirstName *string `json:"first_name" binding:"omitempty,max=150"`
	LastName  *string `json:"last_name" binding:"omitempty,max=150"`
	Bio       *string `json:"bio"`
	Role      *string `json:"role" binding:"omitempty,role"`
}

func toUserDTO(u users.User) UserDTO {
	return UserDTO{
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Bio:       u.Bio,
		Role:      string(u.Role),
	}
}

func toUserDTOs(list []users.User) ([]UserDTO, error) {
	out := make([]UserDTO, 0, len(list))
	for _, u := range list {
		out = append(out, toUserDTO(u))
	}
	return out, nil
}

// changes maps the request onto column updates. Role is applied only when allowRole is set.
func (r UpdateUserRequest) changes(allowRole bool) map[string]any {
	m := map[string]any{}
	if r.Username != nil {
		m["username"] = *r.Username
	}
	if r.Email != nil {
		m["email"] = *r.Email
	}
	if r.FirstName != nil {
		m["first_name"] = *r.FirstName
	}
	if r.LastName != nil {
		m["last_name"] = *r.LastName
	}
	if r.Bio != nil {
		m["bio"] = *r.Bio
	}
	if allowRole && r.Role != nil {
		m["role"] = users.Role(*r.Role)
	}
	return m
}
