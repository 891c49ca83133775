package dto

import (
	"time"

	"github.com/mikiasgoitom/CampusGuide/internal/domain/contract"
	"github.com/mikiasgoitom/CampusGuide/internal/domain/entity"
)

// UserResponse is the DTO for a user.
type UserResponse struct {
	ID                 string                  `json:"id"`
	Email              string                  `json:"email"`
	Name               string                  `json:"name"`
	Phone              string                  `json:"phone,omitempty"`
	AccountKind        string                  `json:"account_kind"`
	Role               string                  `json:"role"`
	EmailVerified      bool                    `json:"email_verified"`
	AccountVerified    bool                    `json:"account_verified"`
	VerificationStatus string                  `json:"verification_status"`
	RejectionReason    string                  `json:"rejection_reason,omitempty"`
	Student            *entity.StudentProfile  `json:"student,omitempty"`
	Business           *entity.BusinessProfile `json:"business,omitempty"`
	CreatedAt          string                  `json:"created_at"`
}

// LoginResponse is the DTO for a successful login.
type LoginResponse struct {
	User        UserResponse `json:"user"`
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
}

// converts an entity.User to a UserResponse DTO.
func ToUserResponse(user entity.User) UserResponse {
	return UserResponse{
		ID:                 user.ID,
		Email:              user.Email,
		Name:               user.Name,
		Phone:              user.Phone,
		AccountKind:        string(user.Kind),
		Role:               string(user.Role),
		EmailVerified:      user.EmailVerified,
		AccountVerified:    user.AccountVerified,
		VerificationStatus: string(user.VerificationStatus),
		RejectionReason:    user.RejectionReason,
		Student:            user.Student,
		Business:           user.Business,
		CreatedAt:          user.CreatedAt.Format(time.RFC3339),
	}
}

func ToUserResponses(users []*entity.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, ToUserResponse(*u))
	}
	return out
}

// ListResponse wraps one page of a listing.
type ListResponse[T any] struct {
	Data       []T                     `json:"data"`
	Pagination contract.PaginationMeta `json:"pagination"`
}

func NewListResponse[T any](data []T, p contract.Pagination, total int64) ListResponse[T] {
	if data == nil {
		data = []T{}
	}
	return ListResponse[T]{Data: data, Pagination: contract.NewPaginationMeta(p.Normalize(), total)}
}

// PaginationQuery binds ?page=&page_size=.
type PaginationQuery struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1"`
}

func (q PaginationQuery) ToPagination() contract.Pagination {
	return contract.Pagination{Page: q.Page, PageSize: q.PageSize}.Normalize()
}

// MessageResponse is a generic response for success/error messages.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is a response for errors.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}
