package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/inkwellhq/inkwell/internal/auth/service"
	commonerrors "github.com/inkwellhq/inkwell/internal/common/errors"
	commonhttp "github.com/inkwellhq/inkwell/internal/common/http"
	"github.com/inkwellhq/inkwell/internal/common/jwtverify"
	"github.com/inkwellhq/inkwell/internal/common/logger"
	userdomain "github.com/inkwellhq/inkwell/internal/user/domain"
)

type registerRequest struct {
	Username    string `json:"username" validate:"required"`
	Password    string `json:"password" validate:"required"`
	DisplayName string `json:"displayName" validate:"max=64"`
	Bio         string `json:"bio" validate:"max=500"`
	AvatarURL   string `json:"avatarUrl" validate:"omitempty,url"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string             `json:"token"`
	User  userdomain.Profile `json:"user"`
}

type Handler struct {
	auth           *service.AuthService
	errorHandler   *commonhttp.ErrorHandler
	log            *logger.Logger
	requestTimeout time.Duration
}

func NewHandler(auth *service.AuthService, requestTimeout time.Duration, log *logger.Logger) *Handler {
	return &Handler{
		auth:           auth,
		errorHandler:   commonhttp.NewErrorHandler(log),
		log:            log,
		requestTimeout: requestTimeout,
	}
}

// RegisterRoutes mounts the auth endpoints. authMW guards /me; register and
// login stay public.
func (h *Handler) RegisterRoutes(r *mux.Router, authMW func(http.Handler) http.Handler) {
	r.HandleFunc("/api/auth/register", h.register).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/login", h.login).Methods(http.MethodPost)
	r.Handle("/api/auth/me", authMW(http.HandlerFunc(h.me))).Methods(http.MethodGet)
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("register failed: invalid json: %v", err)
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidJSON, "invalid json", nil, "")
		return
	}

	if details, err := commonhttp.Validate(req); err != nil {
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeValidationFailed, "validation failed", details, "")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	result, err := h.auth.Register(ctx, service.RegisterInput{
		Username:    req.Username,
		Password:    req.Password,
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
		AvatarURL:   req.AvatarURL,
	})
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusCreated, authResponse{Token: result.Token, User: result.User})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("login failed: invalid json: %v", err)
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidJSON, "invalid json", nil, "")
		return
	}

	if details, err := commonhttp.Validate(req); err != nil {
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeValidationFailed, "validation failed", details, "")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	result, err := h.auth.Login(ctx, service.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, authResponse{Token: result.Token, User: result.User})
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	claims, ok := jwtverify.FromContext(r.Context())
	if !ok {
		h.errorHandler.HandleError(w, r, commonerrors.ErrUnauthenticated)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	profile, err := h.auth.Profile(ctx, userdomain.UserID(claims.UserID))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, profile)
}
