package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	commonerrors "github.com/inkwellhq/inkwell/internal/common/errors"
	commonhttp "github.com/inkwellhq/inkwell/internal/common/http"
	"github.com/inkwellhq/inkwell/internal/common/jwtverify"
	"github.com/inkwellhq/inkwell/internal/common/logger"
	"github.com/inkwellhq/inkwell/internal/post/domain"
	"github.com/inkwellhq/inkwell/internal/post/service"
	"github.com/inkwellhq/inkwell/internal/render"
	userdomain "github.com/inkwellhq/inkwell/internal/user/domain"
)

type createPostRequest struct {
	Title      string   `json:"title" validate:"required,max=200"`
	Content    string   `json:"content" validate:"required"`
	Excerpt    string   `json:"excerpt" validate:"max=500"`
	CoverImage string   `json:"coverImage" validate:"omitempty,url"`
	Category   string   `json:"category" validate:"max=50"`
	Tags       []string `json:"tags" validate:"max=10,dive,max=30"`
}

type updatePostRequest struct {
	Title      *string   `json:"title" validate:"omitempty,max=200"`
	Content    *string   `json:"content"`
	Excerpt    *string   `json:"excerpt" validate:"omitempty,max=500"`
	CoverImage *string   `json:"coverImage" validate:"omitempty,url"`
	Category   *string   `json:"category" validate:"omitempty,max=50"`
	Tags       *[]string `json:"tags" validate:"omitempty,max=10,dive,max=30"`
}

type Handler struct {
	posts          *service.PostService
	errorHandler   *commonhttp.ErrorHandler
	log            *logger.Logger
	requestTimeout time.Duration
}

func NewHandler(posts *service.PostService, requestTimeout time.Duration, log *logger.Logger) *Handler {
	return &Handler{
		posts:          posts,
		errorHandler:   commonhttp.NewErrorHandler(log),
		log:            log,
		requestTimeout: requestTimeout,
	}
}

// RegisterRoutes mounts the post endpoints. The "/my" route registers before
// "/{id}" so the literal segment wins.
func (h *Handler) RegisterRoutes(r *mux.Router, authMW func(http.Handler) http.Handler) {
	r.HandleFunc("/api/posts", h.list).Methods(http.MethodGet)
	r.Handle("/api/posts/my", authMW(http.HandlerFunc(h.listMine))).Methods(http.MethodGet)
	r.HandleFunc("/api/posts/{id}", h.get).Methods(http.MethodGet)
	r.HandleFunc("/api/posts/{id}/html", h.getHTML).Methods(http.MethodGet)
	r.Handle("/api/posts", authMW(http.HandlerFunc(h.create))).Methods(http.MethodPost)
	r.Handle("/api/posts/{id}", authMW(http.HandlerFunc(h.update))).Methods(http.MethodPatch)
	r.Handle("/api/posts/{id}", authMW(http.HandlerFunc(h.remove))).Methods(http.MethodDelete)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	posts, err := h.posts.Feed(ctx)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, posts)
}

func (h *Handler) listMine(w http.ResponseWriter, r *http.Request) {
	claims, ok := jwtverify.FromContext(r.Context())
	if !ok {
		h.errorHandler.HandleError(w, r, commonerrors.ErrUnauthenticated)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	posts, err := h.posts.FeedByAuthor(ctx, userdomain.UserID(claims.UserID))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, posts)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id := domain.PostID(mux.Vars(r)["id"])

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	post, err := h.posts.Get(ctx, id)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, post)
}

func (h *Handler) getHTML(w http.ResponseWriter, r *http.Request) {
	id := domain.PostID(mux.Vars(r)["id"])

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	post, err := h.posts.Get(ctx, id)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(render.Markdown([]byte(post.Content)))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	claims, ok := jwtverify.FromContext(r.Context())
	if !ok {
		h.errorHandler.HandleError(w, r, commonerrors.ErrUnauthenticated)
		return
	}

	var req createPostRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("create post failed: invalid json: %v", err)
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidJSON, "invalid json", nil, "")
		return
	}

	if details, err := commonhttp.Validate(req); err != nil {
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeValidationFailed, "validation failed", details, "")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	post, err := h.posts.Create(ctx, userdomain.UserID(claims.UserID), domain.Draft{
		Title:      req.Title,
		Content:    req.Content,
		Excerpt:    req.Excerpt,
		CoverImage: req.CoverImage,
		Category:   req.Category,
		Tags:       req.Tags,
	})
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusCreated, post)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	claims, ok := jwtverify.FromContext(r.Context())
	if !ok {
		h.errorHandler.HandleError(w, r, commonerrors.ErrUnauthenticated)
		return
	}

	id := domain.PostID(mux.Vars(r)["id"])

	var req updatePostRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("update post failed: invalid json: %v", err)
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidJSON, "invalid json", nil, "")
		return
	}

	if details, err := commonhttp.Validate(req); err != nil {
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeValidationFailed, "validation failed", details, "")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	post, err := h.posts.Update(ctx, userdomain.UserID(claims.UserID), id, domain.Patch{
		Title:      req.Title,
		Content:    req.Content,
		Excerpt:    req.Excerpt,
		CoverImage: req.CoverImage,
		Category:   req.Category,
		Tags:       req.Tags,
	})
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, post)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	claims, ok := jwtverify.FromContext(r.Context())
	if !ok {
		h.errorHandler.HandleError(w, r, commonerrors.ErrUnauthenticated)
		return
	}

	id := domain.PostID(mux.Vars(r)["id"])

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	if err := h.posts.Delete(ctx, userdomain.UserID(claims.UserID), id); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, map[string]string{"message": "post deleted"})
}
