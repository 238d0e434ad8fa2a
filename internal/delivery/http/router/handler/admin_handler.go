package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"gatekeeper/internal/delivery/http/response"
	"gatekeeper/internal/delivery/http/validator"
	"gatekeeper/internal/domain/entity"
	"gatekeeper/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// UpdateRoleRequest is the payload for PUT /auth/users/role.
type UpdateRoleRequest struct {
	UserID int64  `json:"userId" validate:"required,gt=0"`
	Role   string `json:"role" validate:"required,oneof=user admin"`
}

// AdminHandler holds dependencies for the user-management endpoints.
// Every route it serves sits behind the admin role check.
type AdminHandler struct {
	uc     usecase.AuthUsecase
	logger *slog.Logger
}

// NewAdminHandler is the constructor for AdminHandler, injected by Fx.
func NewAdminHandler(uc usecase.AuthUsecase, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		uc:     uc,
		logger: logger,
	}
}

// ListUsers returns every account, newest first.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.uc.ListUsers(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{"users": users}, "Users retrieved successfully")
}

// UpdateRole changes a single account's role.
func (h *AdminHandler) UpdateRole(c echo.Context) error {
	var req UpdateRoleRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return response.ValidationFailed(c, validator.FieldErrors(err))
	}

	user, err := h.uc.UpdateRole(c.Request().Context(), req.UserID, entity.Role(req.Role))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{"user": user}, "User role updated successfully")
}

// DeleteUser removes an account by its path parameter ID.
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil || userID <= 0 {
		return response.BadRequest(c, "Invalid user ID")
	}

	output, err := h.uc.DeleteUser(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, output.Message)
}
