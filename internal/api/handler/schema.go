package handler

import (
	"github.com/cadmin/cadmin-api/internal/core/domain"
)

// errorBody documents the error envelope rendered by the error handler.
type errorBody struct {
	Error   string              `json:"error"`
	Details []domain.FieldError `json:"details,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

type userResponse struct {
	User *domain.User `json:"user"`
}

// --- Resources ---

type createResourceRequest struct {
	Title       string         `json:"title"`
	Description *string        `json:"description"`
	Status      string         `json:"status"`
	Category    *string        `json:"category"`
	Metadata    map[string]any `json:"metadata"`
}

type updateResourceRequest struct {
	Title       *string        `json:"title"`
	Description *string        `json:"description"`
	Status      *string        `json:"status"`
	Category    *string        `json:"category"`
	Metadata    map[string]any `json:"metadata"`
}

type resourceListQuery struct {
	Search   string `query:"search"`
	Status   string `query:"status"`
	Category string `query:"category"`
	Page     int    `query:"page"`
	Limit    int    `query:"limit"`
}

type resourceResponse struct {
	Resource *domain.Resource `json:"resource"`
}

type resourceListResponse struct {
	Resources  []*domain.Resource `json:"resources"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"totalPages"`
}

type categoriesResponse struct {
	Categories []domain.CategoryCount `json:"categories"`
}

// --- Users ---

type createUserRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type updateUserRequest struct {
	Name   *string `json:"name"`
	Role   *string `json:"role"`
	Active *bool   `json:"active"`
}

type userListQuery struct {
	Search string `query:"search"`
	Role   string `query:"role"`
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
}

// listedUser is a user as it appears in the user list.
type listedUser struct {
	*domain.User
	ResourceCount int64 `json:"resourceCount"`
}

type userListResponse struct {
	Users      []listedUser `json:"users"`
	Total      int64        `json:"total"`
	Page       int          `json:"page"`
	Limit      int          `json:"limit"`
	TotalPages int          `json:"totalPages"`
}

// --- Stats ---

type statsResponse struct {
	TotalUsers          int64                  `json:"totalUsers"`
	TotalResources      int64                  `json:"totalResources"`
	ActiveResources     int64                  `json:"activeResources"`
	DraftResources      int64                  `json:"draftResources"`
	ArchivedResources   int64                  `json:"archivedResources"`
	RecentUsers         []*domain.User         `json:"recentUsers"`
	ResourcesByCategory []domain.CategoryCount `json:"resourcesByCategory"`
}

// --- Health ---

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

