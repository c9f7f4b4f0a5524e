package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/samerkamel/aura-sub004/internal/domain/rule"
	"github.com/samerkamel/aura-sub004/internal/handler/http/middleware"
	"github.com/samerkamel/aura-sub004/internal/handler/http/response"
)

type RuleHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	UpdateFlexibleHours(w http.ResponseWriter, r *http.Request)
	CreateLatePenaltyTier(w http.ResponseWriter, r *http.Request)
	DeleteLatePenaltyTier(w http.ResponseWriter, r *http.Request)
	UpdatePermissionConfig(w http.ResponseWriter, r *http.Request)
	UpdateWfhPolicy(w http.ResponseWriter, r *http.Request)
	DeleteWfhPolicy(w http.ResponseWriter, r *http.Request)
}

type ruleHandlerImpl struct {
	ruleService rule.RuleService
}

func NewRuleHandler(ruleService rule.RuleService) RuleHandler {
	return &ruleHandlerImpl{ruleService: ruleService}
}

// Get implements RuleHandler.
func (h *ruleHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	rules, err := h.ruleService.GetRules(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, rules)
}

// UpdateFlexibleHours implements RuleHandler.
func (h *ruleHandlerImpl) UpdateFlexibleHours(w http.ResponseWriter, r *http.Request) {
	var req rule.UpdateFlexibleHoursRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateFlexibleHours decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.UpdatedBy = middleware.UserID(r.Context())

	result, err := h.ruleService.UpdateFlexibleHours(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Flexible hours updated successfully", result)
}

// CreateLatePenaltyTier implements RuleHandler.
func (h *ruleHandlerImpl) CreateLatePenaltyTier(w http.ResponseWriter, r *http.Request) {
	var req rule.CreateLatePenaltyTierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateLatePenaltyTier decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.CreatedBy = middleware.UserID(r.Context())

	result, err := h.ruleService.CreateLatePenaltyTier(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Late penalty tier created successfully", result)
}

// DeleteLatePenaltyTier implements RuleHandler.
func (h *ruleHandlerImpl) DeleteLatePenaltyTier(w http.ResponseWriter, r *http.Request) {
	if err := h.ruleService.DeleteLatePenaltyTier(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Late penalty tier deleted successfully", nil)
}

// UpdatePermissionConfig implements RuleHandler.
func (h *ruleHandlerImpl) UpdatePermissionConfig(w http.ResponseWriter, r *http.Request) {
	var req rule.UpdatePermissionConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdatePermissionConfig decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.UpdatedBy = middleware.UserID(r.Context())

	result, err := h.ruleService.UpdatePermissionConfig(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Permission rule updated successfully", result)
}

// UpdateWfhPolicy implements RuleHandler.
func (h *ruleHandlerImpl) UpdateWfhPolicy(w http.ResponseWriter, r *http.Request) {
	var req rule.UpdateWfhPolicyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateWfhPolicy decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.UpdatedBy = middleware.UserID(r.Context())

	result, err := h.ruleService.UpdateWfhPolicy(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "WFH policy updated successfully", result)
}

// DeleteWfhPolicy implements RuleHandler.
func (h *ruleHandlerImpl) DeleteWfhPolicy(w http.ResponseWriter, r *http.Request) {
	if err := h.ruleService.DeleteWfhPolicy(r.Context()); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "WFH policy removed", nil)
}
