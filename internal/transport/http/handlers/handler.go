// Package handlers exposes the cart write model over HTTP.
package handlers

import (
	"context"
	"errors"
	nethttp "net/http"
	"strconv"

	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/domain/repository"
	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/idempotency"
	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/projection"
	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/transport/http/response"
	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/usecase"
	"github.com/gin-gonic/gin"
)

//go:generate go tool moq -rm -pkg handlers_test -out mocks_test.go . CartService Replayer

type CartService interface {
	Execute(ctx context.Context, req idempotency.Request, actor string, cmd usecase.Command) (usecase.CartView, bool, error)
	GetCart(ctx context.Context, cartID int64) (usecase.CartView, error)
	History(ctx context.Context, cartID int64, limit int, cursor string) (usecase.HistoryPage, error)
	Commands() []string
}

type Replayer interface {
	ReplayAll(ctx context.Context) (projection.Report, error)
	ReplayCart(ctx context.Context, cartID int64) (projection.CartReport, error)
}

type Handler struct {
	carts    CartService
	replayer Replayer
	store    repository.Store
}

func NewHandler(carts CartService, replayer Replayer, store repository.Store) *Handler {
	return &Handler{
		carts:    carts,
		replayer: replayer,
		store:    store,
	}
}

func (h *Handler) health(c *gin.Context) {
	if err := h.store.Ping(c.Request.Context()); err != nil {
		response.RespondOK(c, nethttp.StatusServiceUnavailable, gin.H{"status": "down"}, nil)
		return
	}
	response.RespondOK(c, nethttp.StatusOK, gin.H{"status": "ok"}, nil)
}

func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.RespondError(c, nethttp.StatusBadRequest, "validation", "invalid "+name)
		return 0, false
	}
	return id, true
}

// respondErr maps domain errors onto status codes. Unknown errors are
// reported as internal without leaking their text.
func respondErr(c *gin.Context, err error) {
	_ = c.Error(err)
	switch {
	case errors.Is(err, repository.ErrValidation):
		response.RespondError(c, nethttp.StatusBadRequest, "validation", err.Error())
	case errors.Is(err, repository.ErrInvalidCursor):
		response.RespondError(c, nethttp.StatusBadRequest, "invalid_cursor", "invalid cursor")
	case errors.Is(err, repository.ErrNotFound):
		response.RespondError(c, nethttp.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, repository.ErrRequestMismatch):
		response.RespondError(c, nethttp.StatusConflict, "idempotency_mismatch", "idempotency key was used with a different request")
	case errors.Is(err, repository.ErrProcessing):
		c.Header("Retry-After", "1")
		response.RespondError(c, nethttp.StatusConflict, "processing", "request with this idempotency key is in progress")
	case errors.Is(err, repository.ErrConcurrency), errors.Is(err, repository.ErrDuplicate):
		response.RespondError(c, nethttp.StatusConflict, "conflict", "cart was modified concurrently, retry")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		response.RespondError(c, nethttp.StatusServiceUnavailable, "unavailable", "request cancelled")
	default:
		response.RespondError(c, nethttp.StatusInternalServerError, "internal", "internal error")
	}
}
