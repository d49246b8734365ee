package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chirper/social-system/internal/core/ports"
)

// TweetsHandler serves the tweet timeline and mutation routes.
type TweetsHandler struct {
	tweets ports.TweetsService
}

func NewTweetsHandler(tweets ports.TweetsService) *TweetsHandler {
	return &TweetsHandler{tweets: tweets}
}

type createTweetRequest struct {
	Title   string `json:"title" validate:"required,max=100"`
	Content string `json:"content" validate:"required,max=800"`
}

type updateTweetRequest struct {
	Title   *string `json:"title,omitempty" validate:"omitempty,max=100"`
	Content *string `json:"content,omitempty" validate:"omitempty,max=800"`
}

// List returns a page of tweets, each joined with its author's display
// identity.
func (h *TweetsHandler) List(c echo.Context) error {
	page, limit, err := pageParams(c)
	if err != nil {
		return err
	}

	result, err := h.tweets.List(c.Request().Context(), page, limit)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "tweets retrieved", result)
}

// Get returns a single tweet with its author's display identity.
func (h *TweetsHandler) Get(c echo.Context) error {
	tweet, err := h.tweets.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "tweet retrieved", tweet)
}

// Create posts a tweet authored by the caller. The author is always the
// authenticated identity, never a field of the request body.
func (h *TweetsHandler) Create(c echo.Context) error {
	claim, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createTweetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	tweet, err := h.tweets.Post(c.Request().Context(), claim, req.Title, req.Content)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "tweet created", tweet)
}

// Update applies a partial edit. Ownership is enforced by the service.
func (h *TweetsHandler) Update(c echo.Context) error {
	claim, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateTweetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	tweet, err := h.tweets.Update(c.Request().Context(), claim, c.Param("id"), req.Title, req.Content)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "tweet updated", tweet)
}

// Delete soft-deletes a tweet. Ownership is enforced by the service.
func (h *TweetsHandler) Delete(c echo.Context) error {
	claim, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	tweet, err := h.tweets.Delete(c.Request().Context(), claim, c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "tweet deleted", tweet)
}
