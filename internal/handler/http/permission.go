package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/samerkamel/aura-sub004/internal/domain/attendance"
	"github.com/samerkamel/aura-sub004/internal/handler/http/middleware"
	"github.com/samerkamel/aura-sub004/internal/handler/http/response"
)

type PermissionHandler interface {
	Grant(w http.ResponseWriter, r *http.Request)
	Revoke(w http.ResponseWriter, r *http.Request)
	Balance(w http.ResponseWriter, r *http.Request)
	GrantExtra(w http.ResponseWriter, r *http.Request)
	GetOverride(w http.ResponseWriter, r *http.Request)
}

type permissionHandlerImpl struct {
	permissionService attendance.PermissionService
}

func NewPermissionHandler(permissionService attendance.PermissionService) PermissionHandler {
	return &permissionHandlerImpl{permissionService: permissionService}
}

// Grant implements PermissionHandler.
func (h *permissionHandlerImpl) Grant(w http.ResponseWriter, r *http.Request) {
	var req attendance.GrantPermissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("GrantPermission decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.GrantedBy = middleware.UserID(r.Context())

	result, err := h.permissionService.GrantPermission(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Permission granted successfully", result)
}

// Revoke implements PermissionHandler.
func (h *permissionHandlerImpl) Revoke(w http.ResponseWriter, r *http.Request) {
	err := h.permissionService.RevokePermission(r.Context(), chi.URLParam(r, "employeeID"), chi.URLParam(r, "date"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Permission revoked successfully", nil)
}

// Balance implements PermissionHandler.
func (h *permissionHandlerImpl) Balance(w http.ResponseWriter, r *http.Request) {
	result, err := h.permissionService.PermissionBalance(r.Context(), chi.URLParam(r, "employeeID"), r.URL.Query().Get("date"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GrantExtra implements PermissionHandler.
func (h *permissionHandlerImpl) GrantExtra(w http.ResponseWriter, r *http.Request) {
	var req attendance.GrantExtraPermissionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("GrantExtraPermissions decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.GrantedBy = middleware.UserID(r.Context())

	result, err := h.permissionService.GrantExtraPermissions(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Extra permissions granted successfully", result)
}

// GetOverride implements PermissionHandler.
func (h *permissionHandlerImpl) GetOverride(w http.ResponseWriter, r *http.Request) {
	result, err := h.permissionService.GetOverride(r.Context(), chi.URLParam(r, "employeeID"), r.URL.Query().Get("date"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
