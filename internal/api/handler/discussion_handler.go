package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/crackit360/practice-platform/internal/core/ports"
)

type createDiscussionRequest struct {
	Title    string `json:"title"    validate:"required,min=5,max=200"`
	Content  string `json:"content"  validate:"required,min=10"`
	Category string `json:"category" validate:"required"`
}

type addReplyRequest struct {
	Content string `json:"content" validate:"required,min=1"`
}

type voteRequest struct {
	Vote string `json:"vote" validate:"required,oneof=UPVOTE DOWNVOTE"`
}

type discussionPageResponse struct {
	Items      any   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type DiscussionHandler struct {
	discussionService ports.DiscussionService
}

func NewDiscussionHandler(discussionService ports.DiscussionService) *DiscussionHandler {
	return &DiscussionHandler{discussionService: discussionService}
}

// Create opens a new forum thread.
//
// @Summary      Create a discussion
// @Tags         discussions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createDiscussionRequest  true  "Thread details"
// @Success      201   {object}  domain.Discussion
// @Failure      400   {object}  errorResponse
// @Router       /api/discussions [post]
func (h *DiscussionHandler) Create(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req createDiscussionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	discussion, err := h.discussionService.Create(c.Request().Context(), ports.CreateDiscussionInput{
		Author:   user,
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, discussion)
}

// List returns a page of threads. Filterable query parameters pass through
// the sanitizer, so only allow-listed fields reach the database.
//
// @Summary      List discussions
// @Tags         discussions
// @Produce      json
// @Security     BearerAuth
// @Param        category   query     string  false  "Category filter"
// @Param        author_id  query     string  false  "Author filter"
// @Param        page       query     int     false  "Page (default 1)"
// @Param        limit      query     int     false  "Page size (default 20, max 100)"
// @Success      200        {object}  discussionPageResponse
// @Router       /api/discussions [get]
func (h *DiscussionHandler) List(c echo.Context) error {
	filter := map[string]any{}
	for _, key := range []string{"category", "author_id"} {
		if v := c.QueryParam(key); v != "" {
			filter[key] = v
		}
	}
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.discussionService.List(c.Request().Context(), ports.ListDiscussionsInput{
		Filter: filter,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, discussionPageResponse{
		Items:      result.Items,
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	})
}

// Get returns a single thread with its replies.
//
// @Summary      Get a discussion
// @Tags         discussions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Discussion ID"
// @Success      200  {object}  domain.Discussion
// @Failure      404  {object}  errorResponse
// @Router       /api/discussions/{id} [get]
func (h *DiscussionHandler) Get(c echo.Context) error {
	discussion, err := h.discussionService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, discussion)
}

// AddReply appends a reply to a thread.
//
// @Summary      Reply to a discussion
// @Tags         discussions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Discussion ID"
// @Param        body  body      addReplyRequest  true  "Reply"
// @Success      200   {object}  domain.Discussion
// @Failure      404   {object}  errorResponse
// @Router       /api/discussions/{id}/replies [post]
func (h *DiscussionHandler) AddReply(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req addReplyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	discussion, err := h.discussionService.AddReply(c.Request().Context(), c.Param("id"), user, req.Content)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, discussion)
}

// Vote records the caller's vote on a thread; a repeat vote replaces the
// previous one.
//
// @Summary      Vote on a discussion
// @Tags         discussions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "Discussion ID"
// @Param        body  body      voteRequest  true  "Vote"
// @Success      200   {object}  domain.Discussion
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/discussions/{id}/vote [post]
func (h *DiscussionHandler) Vote(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req voteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	discussion, err := h.discussionService.Vote(c.Request().Context(), c.Param("id"), user.ID, req.Vote)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, discussion)
}
