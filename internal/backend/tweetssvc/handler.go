package tweetssvc

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/chirper/social-system/internal/core/ports"
	"github.com/chirper/social-system/internal/rpc"
)

// handlers binds the tweets operations to the RPC server.
type handlers struct {
	svc *Service
	v   *validator.Validate
}

// RegisterHandlers mounts every tweets operation on the server.
func RegisterHandlers(srv *rpc.Server, svc *Service) {
	h := &handlers{svc: svc, v: validator.New()}

	srv.Handle(rpc.PatternTweetCreate, h.create)
	srv.Handle(rpc.PatternTweetGetTweets, h.getTweets)
	srv.Handle(rpc.PatternTweetGetTweet, h.getTweet)
	srv.Handle(rpc.PatternTweetUpdate, h.update)
	srv.Handle(rpc.PatternTweetSoftDelete, h.softDelete)
	srv.Handle(rpc.PatternTweetSoftDeleteByAuthor, h.softDeleteByAuthor)
}

func (h *handlers) decode(payload json.RawMessage, out any) error {
	if err := json.Unmarshal(payload, out); err != nil {
		return &rpc.ValidationError{Messages: []string{"malformed payload"}}
	}
	if err := h.v.Struct(out); err != nil {
		ve, ok := err.(validator.ValidationErrors)
		if !ok {
			return &rpc.ValidationError{Messages: []string{"invalid payload"}}
		}
		msgs := make([]string, 0, len(ve))
		for _, fe := range ve {
			msgs = append(msgs, fmt.Sprintf("%s failed validation (%s)", strings.ToLower(fe.Field()), fe.Tag()))
		}
		return &rpc.ValidationError{Messages: msgs}
	}
	return nil
}

type createTweetPayload struct {
	AuthorID string `json:"authorId" validate:"required"`
	Title    string `json:"title" validate:"required,max=100"`
	Content  string `json:"content" validate:"required,max=800"`
}

func (h *handlers) create(ctx context.Context, payload json.RawMessage) (any, error) {
	var p createTweetPayload
	if err := h.decode(payload, &p); err != nil {
		return nil, err
	}
	return h.svc.Create(ctx, ports.CreateTweetInput{
		AuthorID: p.AuthorID,
		Title:    p.Title,
		Content:  p.Content,
	})
}

type pagePayload struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (h *handlers) getTweets(ctx context.Context, payload json.RawMessage) (any, error) {
	var p pagePayload
	if err := h.decode(payload, &p); err != nil {
		return nil, err
	}
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 10
	}
	return h.svc.GetTweets(ctx, p.Page, p.Limit)
}

type idPayload struct {
	ID string `json:"id" validate:"required"`
}

func (h *handlers) getTweet(ctx context.Context, payload json.RawMessage) (any, error) {
	var p idPayload
	if err := h.decode(payload, &p); err != nil {
		return nil, err
	}
	return h.svc.GetTweet(ctx, p.ID)
}

type updateTweetPayload struct {
	ID      string  `json:"id" validate:"required"`
	Title   *string `json:"title,omitempty" validate:"omitempty,max=100"`
	Content *string `json:"content,omitempty" validate:"omitempty,max=800"`
}

func (h *handlers) update(ctx context.Context, payload json.RawMessage) (any, error) {
	var p updateTweetPayload
	if err := h.decode(payload, &p); err != nil {
		return nil, err
	}
	return h.svc.Update(ctx, ports.UpdateTweetInput{
		ID:      p.ID,
		Title:   p.Title,
		Content: p.Content,
	})
}

func (h *handlers) softDelete(ctx context.Context, payload json.RawMessage) (any, error) {
	var p idPayload
	if err := h.decode(payload, &p); err != nil {
		return nil, err
	}
	return h.svc.SoftDelete(ctx, p.ID)
}

type authorIDPayload struct {
	AuthorID string `json:"authorId" validate:"required"`
}

func (h *handlers) softDeleteByAuthor(ctx context.Context, payload json.RawMessage) (any, error) {
	var p authorIDPayload
	if err := h.decode(payload, &p); err != nil {
		return nil, err
	}
	deleted, err := h.svc.SoftDeleteByAuthor(ctx, p.AuthorID)
	if err != nil {
		return nil, err
	}
	return map[string]int64{"deleted": deleted}, nil
}
