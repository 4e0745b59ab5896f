package handler

import "github.com/99minutos/user-service/internal/core/domain"

// --- Request / Response types ---

type createUserRequest struct {
	Username   string `json:"username"   example:"jdoe"`
	Email      string `json:"email"      example:"jdoe@example.com"`
	Photo      string `json:"photo"      example:"/file/1718000000000_avatar.png"`
	Department string `json:"department" example:"IT" enums:"HR,Finance,Marketing,IT,Operations"`
	Role       string `json:"role"       example:"Employee" enums:"Employee,Manager,Department Head"`
}

// updateUserRequest distinguishes omitted fields (nil) from explicit values.
type updateUserRequest struct {
	Username   *string `json:"username"`
	Email      *string `json:"email"`
	Photo      *string `json:"photo"`
	Department *string `json:"department"`
	Role       *string `json:"role"`
}

// userResponse is the JSON contract for a user. It is owned by the transport
// layer so domain changes do not leak into the API.
type userResponse struct {
	ID         string `json:"id"         example:"665f1c2e8b3e4a0012a3b4c5"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	Photo      string `json:"photo,omitempty"`
	Department string `json:"department"`
	Role       string `json:"role"`
}

type userEnvelope struct {
	Success bool         `json:"success" example:"true"`
	Message string       `json:"message"`
	Data    userResponse `json:"data"`
}

type usersEnvelope struct {
	Success bool           `json:"success" example:"true"`
	Message string         `json:"message"`
	Data    []userResponse `json:"data"`
}

type uploadEnvelope struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"File uploaded successfully"`
	Data    string `json:"data"    example:"/file/1718000000000_avatar.png"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		Photo:      u.Photo,
		Department: string(u.Department),
		Role:       string(u.Role),
	}
}

func toUserResponses(users []domain.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	return out
}
