package handler

import (
	"net/http"

	"github.com/osse101/ChatDispatch_Go/internal/config"
	"github.com/osse101/ChatDispatch_Go/internal/domain"
	"github.com/osse101/ChatDispatch_Go/internal/logger"
	"github.com/osse101/ChatDispatch_Go/internal/slots"
)

// SlotsAdminHandler handles slots administration
type SlotsAdminHandler struct {
	svc slots.Service
}

// NewSlotsAdminHandler creates a slots admin handler
func NewSlotsAdminHandler(svc slots.Service) *SlotsAdminHandler {
	return &SlotsAdminHandler{svc: svc}
}

// HandlePurge clears spin cooldowns and stuck sessions
// POST /api/v1/admin/slots/purge
// @Summary Purge slots caches
// @Tags admin
// @Produce json
// @Success 200 {object} SuccessResponse
// @Router /api/v1/admin/slots/purge [post]
func (h *SlotsAdminHandler) HandlePurge(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.PurgeCaches(r.Context()); err != nil {
		respondServiceError(w, r, ErrMsgPurgeFailed, err)
		return
	}
	logger.FromContext(r.Context()).Info(LogMsgSlotsPurged)
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgSlotsPurged})
}

// HandleGetSettings returns the active slots settings
// GET /api/v1/admin/slots/settings
// @Summary Get slots settings
// @Tags admin
// @Produce json
// @Success 200 {object} DataResponse
// @Router /api/v1/admin/slots/settings [get]
func (h *SlotsAdminHandler) HandleGetSettings(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, DataResponse{Data: h.svc.Settings()})
}

// HandleUpdateSettings applies a settings body over the active slots
// settings. Fields the body omits keep their current values.
// PUT /api/v1/admin/slots/settings
// @Summary Update slots settings
// @Tags admin
// @Accept json
// @Produce json
// @Param request body domain.SlotsSettings true "Settings fields to change"
// @Success 200 {object} DataResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/admin/slots/settings [put]
func (h *SlotsAdminHandler) HandleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	settings := h.svc.Settings()
	// decoding reuses slice storage, so detach it from the live settings
	settings.RoleOverrides = append([]domain.RoleOverride(nil), settings.RoleOverrides...)
	if err := DecodeAndValidateRequest(r, w, &settings, "Update slots settings"); err != nil {
		return
	}

	log := logger.FromContext(r.Context())
	if err := config.ValidateSlotsSettings(settings); err != nil {
		log.Warn(LogMsgSettingsRejected, "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidSlotsSettings)
		return
	}

	h.svc.UpdateSettings(settings)
	log.Info(LogMsgSettingsUpdated,
		"currency_id", settings.CurrencyID,
		"base_percent", settings.BasePercent,
		"min_wager", settings.MinWager,
		"max_wager", settings.MaxWager,
		"overrides", len(settings.RoleOverrides))
	respondJSON(w, http.StatusOK, DataResponse{Message: MsgSettingsUpdated, Data: settings})
}
