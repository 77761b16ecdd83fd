package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/d60-Lab/osuda/internal/repository"
	"github.com/d60-Lab/osuda/internal/service"
	"github.com/d60-Lab/osuda/pkg/response"
)

type Handler struct {
	repo    repository.PostRepository
	service service.PostService
}

func NewHandler(repo repository.PostRepository, svc service.PostService) *Handler {
	return &Handler{repo: repo, service: svc}
}

type postRequest struct {
	Content    string  `json:"content" binding:"required"`
	Keywords   string  `json:"keywords"`
	ManualDate *string `json:"manual_date"`
}

// ListPosts returns the filtered, sorted collection.
// @Summary List posts
// @Tags posts
// @Produce json
// @Param search query string false "substring match on content"
// @Param keyword query string false "substring match on the keywords field"
// @Param date query string false "calendar day (YYYY-MM-DD)"
// @Param sort query string false "newest or oldest" default(newest)
// @Success 200 {array} model.Post
// @Router /api/posts [get]
func (h *Handler) ListPosts(c *gin.Context) {
	params := service.QueryParams{
		Search:  c.Query("search"),
		Keyword: c.Query("keyword"),
		Date:    c.Query("date"),
		Sort:    c.DefaultQuery("sort", service.SortNewest),
	}
	response.OK(c, h.service.ListPosts(c.Request.Context(), params))
}

// GetPost returns a single post.
// @Summary Get a post
// @Tags posts
// @Produce json
// @Param id path int true "post id"
// @Success 200 {object} model.Post
// @Failure 404 {object} map[string]string
// @Router /api/posts/{id} [get]
func (h *Handler) GetPost(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		// a non-numeric id cannot name any post
		response.NotFound(c, "post not found")
		return
	}
	post, err := h.repo.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.OK(c, post)
}

// CreatePost stores a new post.
// @Summary Create a post
// @Tags posts
// @Accept json
// @Produce json
// @Param request body postRequest true "post fields"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /api/posts [post]
func (h *Handler) CreatePost(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, bindErrorMessage(err))
		return
	}
	post, err := h.repo.Create(c.Request.Context(), req.Content, req.Keywords, req.ManualDate)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Created(c, post.ID, "post created")
}

// UpdatePost replaces content, keywords and manual_date of an existing post.
// Omitting manual_date clears a stored one; id and created_at never change.
// @Summary Update a post
// @Tags posts
// @Accept json
// @Produce json
// @Param id path int true "post id"
// @Param request body postRequest true "post fields"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/posts/{id} [put]
func (h *Handler) UpdatePost(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, bindErrorMessage(err))
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.NotFound(c, "post not found")
		return
	}
	if err := h.repo.Update(c.Request.Context(), id, req.Content, req.Keywords, req.ManualDate); err != nil {
		h.writeError(c, err)
		return
	}
	response.Message(c, "post updated")
}

// DeletePost removes a post permanently.
// @Summary Delete a post
// @Tags posts
// @Produce json
// @Param id path int true "post id"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/posts/{id} [delete]
func (h *Handler) DeletePost(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.NotFound(c, "post not found")
		return
	}
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	response.Message(c, "post deleted")
}

// ListKeywords returns every distinct keyword across the collection.
// @Summary List keywords
// @Tags keywords
// @Produce json
// @Success 200 {array} string
// @Router /api/keywords [get]
func (h *Handler) ListKeywords(c *gin.Context) {
	response.OK(c, h.service.Keywords(c.Request.Context()))
}

// Stats returns per-day post counts for calendar rendering.
// @Summary Post counts per day
// @Tags stats
// @Produce json
// @Param start_date query string false "inclusive range start (YYYY-MM-DD)"
// @Param end_date query string false "inclusive range end (YYYY-MM-DD)"
// @Success 200 {array} service.DayStat
// @Router /api/stats [get]
func (h *Handler) Stats(c *gin.Context) {
	response.OK(c, h.service.Stats(c.Request.Context(), c.Query("start_date"), c.Query("end_date")))
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrContentRequired):
		response.BadRequest(c, err.Error())
	case errors.Is(err, repository.ErrPostNotFound):
		response.NotFound(c, err.Error())
	default:
		response.InternalError(c, err)
	}
}

// bindErrorMessage keeps binding failures human-readable: a missing content
// field answers with the domain message instead of validator internals.
func bindErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.Field() == "Content" {
				return repository.ErrContentRequired.Error()
			}
		}
	}
	return err.Error()
}
