package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/osse101/ChatDispatch_Go/internal/domain"
)

// CommandStore lists stored custom commands
type CommandStore interface {
	List(ctx context.Context, activeOnly bool) ([]domain.CommandDefinition, error)
}

// SystemCommands lists commands implemented in code
type SystemCommands interface {
	Definitions() []domain.CommandDefinition
}

// CommandSummary is one entry of the command listing
type CommandSummary struct {
	Trigger          string              `json:"trigger"`
	Description      string              `json:"description,omitempty"`
	System           bool                `json:"system"`
	Active           bool                `json:"active"`
	ScanWholeMessage bool                `json:"scan_whole_message"`
	Cooldown         domain.Cooldown     `json:"cooldown"`
	Permission       domain.Permission   `json:"permission"`
	SubCommands      []domain.SubCommand `json:"sub_commands,omitempty"`
	Response         string              `json:"response,omitempty"`
}

func summarize(def domain.CommandDefinition, system bool) CommandSummary {
	s := CommandSummary{
		Trigger:          def.Trigger,
		Description:      def.Description,
		System:           system,
		Active:           def.Active,
		ScanWholeMessage: def.ScanWholeMessage,
		Cooldown:         def.Cooldown,
		Permission:       def.Permission,
		SubCommands:      def.SubCommands,
	}
	if def.ChatEffectCount() == 1 {
		for _, e := range def.Effects {
			if e.Type == domain.EffectTypeChat {
				s.Response = e.Message
			}
		}
	}
	return s
}

// CommandsHandler serves the command listing
type CommandsHandler struct {
	store  CommandStore
	system SystemCommands
}

// NewCommandsHandler creates a commands handler
func NewCommandsHandler(store CommandStore, system SystemCommands) *CommandsHandler {
	return &CommandsHandler{store: store, system: system}
}

// HandleList returns system commands followed by custom commands
// GET /api/v1/commands?active=true
// @Summary List commands
// @Tags commands
// @Produce json
// @Param active query bool false "Only active custom commands (default true)"
// @Success 200 {object} DataResponse
// @Router /api/v1/commands [get]
func (h *CommandsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	activeOnly, err := strconv.ParseBool(GetOptionalQueryParam(r, "active", "true"))
	if err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgInvalidQueryParam, "active"))
		return
	}

	custom, err := h.store.List(r.Context(), activeOnly)
	if err != nil {
		respondServiceError(w, r, ErrMsgListCommandsFailed, err)
		return
	}

	var system []domain.CommandDefinition
	if h.system != nil {
		system = h.system.Definitions()
	}

	out := make([]CommandSummary, 0, len(system)+len(custom))
	for _, def := range system {
		out = append(out, summarize(def, true))
	}
	for _, def := range custom {
		out = append(out, summarize(def, false))
	}
	respondJSON(w, http.StatusOK, DataResponse{Data: out})
}
