package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/assert"
	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/domain/repository"
	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/idempotency"
	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/infra/inmemory"
	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/projection"
	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/transport/http/handlers"
	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/transport/http/middleware"
	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/transport/http/response"
	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/usecase"
	"github.com/gin-gonic/gin"
)

type envelope struct {
	Data  json.RawMessage    `json:"data"`
	Error *response.APIError `json:"error"`
	Meta  *response.Meta     `json:"meta"`
}

func newEngine(carts handlers.CartService, replayer handlers.Replayer, requireKey bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(middleware.RequestID(), middleware.Actor())
	h := handlers.NewHandler(carts, replayer, inmemory.New())
	handlers.NewRouter(h).RegisterRoutes(engine, middleware.Idempotency(requireKey))
	return engine
}

func serve(t *testing.T, engine *gin.Engine, method, path, body string, headers map[string]string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	var env envelope
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func okExecute(view usecase.CartView, replayed bool) func(context.Context, idempotency.Request, string, usecase.Command) (usecase.CartView, bool, error) {
	return func(context.Context, idempotency.Request, string, usecase.Command) (usecase.CartView, bool, error) {
		return view, replayed, nil
	}
}

func TestCartCommandsOverHTTP(t *testing.T) {
	t.Run("create passes key, user and fingerprint", func(t *testing.T) {
		// arrange
		carts := &CartServiceMock{ExecuteFunc: okExecute(usecase.CartView{ID: 7, Version: 1}, false)}
		engine := newEngine(carts, nil, false)

		// act
		rec, env := serve(t, engine, nethttp.MethodPost, "/api/carts", "", map[string]string{
			middleware.IdempotencyHeader: "k-1",
			middleware.UserIDHeader:      "u-1",
		})

		// assert
		assert.Equal(t, nethttp.StatusCreated, rec.Code)
		assert.Equal(t, 1, len(carts.ExecuteCalls()))
		call := carts.ExecuteCalls()[0]
		assert.Equal(t, "k-1", call.Req.Key)
		assert.Equal(t, "u-1", call.Req.UserID)
		assert.Equal(t, "u-1", call.Actor)
		assert.Equal(t, 64, len(call.Req.RequestHash))
		assert.Equal(t, usecase.Command(usecase.CreateCart{UserID: "u-1"}), call.Cmd)
		assert.NotEqual(t, "", rec.Header().Get(middleware.RequestIDHeader))
		assert.Equal(t, rec.Header().Get(middleware.RequestIDHeader), env.Meta.RequestID)
	})

	t.Run("replayed response is 200 and flagged", func(t *testing.T) {
		// arrange
		carts := &CartServiceMock{ExecuteFunc: okExecute(usecase.CartView{ID: 7, Version: 1}, true)}
		engine := newEngine(carts, nil, false)

		// act
		rec, env := serve(t, engine, nethttp.MethodPost, "/api/carts", "", map[string]string{middleware.IdempotencyHeader: "k-1"})

		// assert
		assert.Equal(t, nethttp.StatusOK, rec.Code)
		assert.Equal(t, "true", rec.Header().Get("Idempotent-Replayed"))
		assert.Truef(t, env.Meta.Replayed, "expected replayed meta")
	})

	t.Run("path ids override the body", func(t *testing.T) {
		// arrange
		carts := &CartServiceMock{ExecuteFunc: okExecute(usecase.CartView{ID: 3}, false)}
		engine := newEngine(carts, nil, false)

		// act
		rec, _ := serve(t, engine, nethttp.MethodPatch, "/api/carts/3/items/11", `{"cart_id":99,"item_id":98,"quantity":4}`, nil)

		// assert
		assert.Equal(t, nethttp.StatusOK, rec.Code)
		cmd, ok := carts.ExecuteCalls()[0].Cmd.(usecase.UpdateItemQuantity)
		assert.Truef(t, ok, "unexpected command %T", carts.ExecuteCalls()[0].Cmd)
		assert.Equal(t, usecase.UpdateItemQuantity{CartID: 3, ItemID: 11, Quantity: 4}, cmd)
	})

	t.Run("same key on another cart has another fingerprint", func(t *testing.T) {
		// arrange
		carts := &CartServiceMock{ExecuteFunc: okExecute(usecase.CartView{}, false)}
		engine := newEngine(carts, nil, false)
		headers := map[string]string{middleware.IdempotencyHeader: "k-2"}

		// act
		serve(t, engine, nethttp.MethodPost, "/api/carts/1/items", `{"product_id":5,"quantity":1,"unit_price":"2.50"}`, headers)
		serve(t, engine, nethttp.MethodPost, "/api/carts/2/items", `{"product_id":5,"quantity":1,"unit_price":"2.50"}`, headers)

		// assert
		calls := carts.ExecuteCalls()
		assert.Equal(t, 2, len(calls))
		assert.NotEqual(t, calls[0].Req.RequestHash, calls[1].Req.RequestHash)
	})

	t.Run("invalid cart id never reaches the service", func(t *testing.T) {
		carts := &CartServiceMock{}
		engine := newEngine(carts, nil, false)

		rec, env := serve(t, engine, nethttp.MethodDelete, "/api/carts/abc/coupon", "", nil)

		assert.Equal(t, nethttp.StatusBadRequest, rec.Code)
		assert.Equal(t, "validation", env.Error.Code)
		assert.Equal(t, 0, len(carts.ExecuteCalls()))
	})

	t.Run("malformed body is rejected", func(t *testing.T) {
		carts := &CartServiceMock{}
		engine := newEngine(carts, nil, false)

		rec, _ := serve(t, engine, nethttp.MethodPut, "/api/carts/1/coupon", `{"code":`, nil)

		assert.Equal(t, nethttp.StatusBadRequest, rec.Code)
		assert.Equal(t, 0, len(carts.ExecuteCalls()))
	})

	t.Run("missing key is rejected when required", func(t *testing.T) {
		carts := &CartServiceMock{}
		engine := newEngine(carts, nil, true)

		rec, env := serve(t, engine, nethttp.MethodPost, "/api/carts/1/deactivate", "", nil)

		assert.Equal(t, nethttp.StatusBadRequest, rec.Code)
		assert.Equal(t, "idempotency key is required", env.Error.Message)
	})
}

func TestErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", repository.ErrValidation, nethttp.StatusBadRequest, "validation"},
		{"not found", repository.ErrNotFound, nethttp.StatusNotFound, "not_found"},
		{"version race", repository.ErrConcurrency, nethttp.StatusConflict, "conflict"},
		{"key mismatch", repository.ErrRequestMismatch, nethttp.StatusConflict, "idempotency_mismatch"},
		{"in flight", repository.ErrProcessing, nethttp.StatusConflict, "processing"},
		{"unexpected", errors.New("disk on fire"), nethttp.StatusInternalServerError, "internal"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			carts := &CartServiceMock{
				ExecuteFunc: func(context.Context, idempotency.Request, string, usecase.Command) (usecase.CartView, bool, error) {
					return usecase.CartView{}, false, tc.err
				},
			}
			engine := newEngine(carts, nil, false)

			// act
			rec, env := serve(t, engine, nethttp.MethodPost, "/api/carts/1/items/2/save-for-later", "", nil)

			// assert
			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, tc.code, env.Error.Code)
			if tc.code == "processing" {
				assert.Equal(t, "1", rec.Header().Get("Retry-After"))
			}
			if tc.code == "internal" {
				assert.Equal(t, "internal error", env.Error.Message)
			}
		})
	}
}

func TestCartQueriesOverHTTP(t *testing.T) {
	t.Run("history forwards paging", func(t *testing.T) {
		// arrange
		carts := &CartServiceMock{
			HistoryFunc: func(_ context.Context, cartID int64, limit int, cursor string) (usecase.HistoryPage, error) {
				return usecase.HistoryPage{CartID: cartID, NextCursor: "next"}, nil
			},
		}
		engine := newEngine(carts, nil, false)

		// act
		rec, env := serve(t, engine, nethttp.MethodGet, "/api/carts/4/events?limit=2&cursor=abc", "", nil)

		// assert
		assert.Equal(t, nethttp.StatusOK, rec.Code)
		call := carts.HistoryCalls()[0]
		assert.Equal(t, int64(4), call.CartID)
		assert.Equal(t, 2, call.Limit)
		assert.Equal(t, "abc", call.Cursor)
		assert.Equal(t, "next", env.Meta.NextCursor)
	})

	t.Run("bad cursor is a client error", func(t *testing.T) {
		carts := &CartServiceMock{
			HistoryFunc: func(context.Context, int64, int, string) (usecase.HistoryPage, error) {
				return usecase.HistoryPage{}, repository.ErrInvalidCursor
			},
		}
		engine := newEngine(carts, nil, false)

		rec, env := serve(t, engine, nethttp.MethodGet, "/api/carts/4/events?cursor=zzz", "", nil)

		assert.Equal(t, nethttp.StatusBadRequest, rec.Code)
		assert.Equal(t, "invalid_cursor", env.Error.Code)
	})

	t.Run("unknown cart", func(t *testing.T) {
		carts := &CartServiceMock{
			GetCartFunc: func(context.Context, int64) (usecase.CartView, error) {
				return usecase.CartView{}, repository.ErrNotFound
			},
		}
		engine := newEngine(carts, nil, false)

		rec, _ := serve(t, engine, nethttp.MethodGet, "/api/carts/404", "", nil)

		assert.Equal(t, nethttp.StatusNotFound, rec.Code)
	})

	t.Run("health", func(t *testing.T) {
		engine := newEngine(&CartServiceMock{}, nil, false)

		rec, _ := serve(t, engine, nethttp.MethodGet, "/healthz", "", nil)

		assert.Equal(t, nethttp.StatusOK, rec.Code)
	})
}

func TestReplayOverHTTP(t *testing.T) {
	t.Run("failed carts carry their error text", func(t *testing.T) {
		// arrange
		replayer := &ReplayerMock{
			ReplayAllFunc: func(context.Context) (projection.Report, error) {
				return projection.Report{
					Carts:   2,
					Rebuilt: 1,
					Failed:  []projection.CartReport{{CartID: 2, Err: errors.New("apply version 3: boom")}},
				}, nil
			},
		}
		engine := newEngine(&CartServiceMock{}, replayer, false)

		// act
		rec, env := serve(t, engine, nethttp.MethodPost, "/api/admin/replay", "", nil)

		// assert
		assert.Equal(t, nethttp.StatusOK, rec.Code)
		var report struct {
			Carts  int `json:"carts"`
			Failed []struct {
				CartID int64  `json:"cart_id"`
				Error  string `json:"error"`
			} `json:"failed"`
		}
		assert.NoError(t, json.Unmarshal(env.Data, &report))
		assert.Equal(t, 2, report.Carts)
		assert.Equal(t, int64(2), report.Failed[0].CartID)
		assert.Equal(t, "apply version 3: boom", report.Failed[0].Error)
	})

	t.Run("single cart", func(t *testing.T) {
		replayer := &ReplayerMock{
			ReplayCartFunc: func(_ context.Context, cartID int64) (projection.CartReport, error) {
				return projection.CartReport{CartID: cartID, Applied: 6}, nil
			},
		}
		engine := newEngine(&CartServiceMock{}, replayer, false)

		rec, _ := serve(t, engine, nethttp.MethodPost, "/api/admin/replay/9", "", nil)

		assert.Equal(t, nethttp.StatusOK, rec.Code)
		assert.Equal(t, int64(9), replayer.ReplayCartCalls()[0].CartID)
	})
}
