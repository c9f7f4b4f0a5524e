package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/samerkamel/aura-sub004/internal/domain/setting"
	"github.com/samerkamel/aura-sub004/internal/handler/http/middleware"
	"github.com/samerkamel/aura-sub004/internal/handler/http/response"
)

type SettingHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
}

type settingHandlerImpl struct {
	settingService setting.SettingService
}

func NewSettingHandler(settingService setting.SettingService) SettingHandler {
	return &settingHandlerImpl{settingService: settingService}
}

// Get implements SettingHandler.
func (h *settingHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingService.GetSettings(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, settings)
}

// Update implements SettingHandler.
func (h *settingHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req setting.UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateSettings decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.UpdatedBy = middleware.UserID(r.Context())

	settings, err := h.settingService.UpdateSettings(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Settings updated successfully", settings)
}
