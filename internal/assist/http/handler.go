package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/inkwellhq/inkwell/internal/assist/service"
	commonhttp "github.com/inkwellhq/inkwell/internal/common/http"
	"github.com/inkwellhq/inkwell/internal/common/logger"
)

type assistRequest struct {
	Content string `json:"content"`
	Action  string `json:"action" validate:"required"`
	Tone    string `json:"tone" validate:"max=50"`
}

type assistResponse struct {
	Suggestion string `json:"suggestion"`
	Action     string `json:"action"`
}

type Handler struct {
	assist       *service.AssistService
	errorHandler *commonhttp.ErrorHandler
	log          *logger.Logger
}

func NewHandler(assist *service.AssistService, log *logger.Logger) *Handler {
	return &Handler{
		assist:       assist,
		errorHandler: commonhttp.NewErrorHandler(log),
		log:          log,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router, authMW func(http.Handler) http.Handler) {
	r.Handle("/api/ai/assist", authMW(http.HandlerFunc(h.assistPost))).Methods(http.MethodPost)
}

// No request timeout wrapper here: the assist service bounds the upstream
// call itself.
func (h *Handler) assistPost(w http.ResponseWriter, r *http.Request) {
	var req assistRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("assist failed: invalid json: %v", err)
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidJSON, "invalid json", nil, "")
		return
	}

	if details, err := commonhttp.Validate(req); err != nil {
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeValidationFailed, "validation failed", details, "")
		return
	}

	result, err := h.assist.Assist(r.Context(), service.Request{
		Content: req.Content,
		Action:  service.Action(req.Action),
		Tone:    req.Tone,
	})
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, assistResponse{
		Suggestion: result.Suggestion,
		Action:     string(result.Action),
	})
}
