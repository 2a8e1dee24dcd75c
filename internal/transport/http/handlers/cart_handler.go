package handlers

import (
	nethttp "net/http"
	"strconv"

	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/idempotency"
	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/transport/http/middleware"
	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/transport/http/response"
	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/usecase"
	"github.com/gin-gonic/gin"
)

// execute runs cmd for the calling user. A replayed idempotent response is
// answered with 200 whatever the original status was.
func (h *Handler) execute(c *gin.Context, status int, cmd usecase.Command) {
	actor := c.GetString(middleware.UserIDKey)
	req := idempotency.Request{
		Key:         c.GetString(middleware.IdempotencyKeyCtx),
		UserID:      actor,
		RequestHash: c.GetString(middleware.IdempotencyHashCtx),
	}

	view, replayed, err := h.carts.Execute(c.Request.Context(), req, actor, cmd)
	if err != nil {
		respondErr(c, err)
		return
	}
	meta := &response.Meta{RequestID: c.GetString(middleware.RequestIDKey)}
	if replayed {
		c.Header("Idempotent-Replayed", "true")
		meta.Replayed = true
		status = nethttp.StatusOK
	}
	response.RespondOK(c, status, view, meta)
}

// bind decodes the JSON body into cmd. An empty body leaves cmd untouched.
func bind(c *gin.Context, cmd any) bool {
	if c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(cmd); err != nil {
		response.RespondError(c, nethttp.StatusBadRequest, "validation", err.Error())
		return false
	}
	return true
}

func (h *Handler) createCart(c *gin.Context) {
	var cmd usecase.CreateCart
	if !bind(c, &cmd) {
		return
	}
	if cmd.UserID == "" {
		cmd.UserID = c.GetString(middleware.UserIDKey)
	}
	h.execute(c, nethttp.StatusCreated, cmd)
}

func (h *Handler) getCart(c *gin.Context) {
	cartID, ok := idParam(c, "id")
	if !ok {
		return
	}
	view, err := h.carts.GetCart(c.Request.Context(), cartID)
	if err != nil {
		respondErr(c, err)
		return
	}
	response.RespondOK(c, nethttp.StatusOK, view, nil)
}

func (h *Handler) history(c *gin.Context) {
	cartID, ok := idParam(c, "id")
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))

	page, err := h.carts.History(c.Request.Context(), cartID, limit, c.Query("cursor"))
	if err != nil {
		respondErr(c, err)
		return
	}
	response.RespondOK(c, nethttp.StatusOK, page, &response.Meta{NextCursor: page.NextCursor})
}

func (h *Handler) addItem(c *gin.Context) {
	cartID, ok := idParam(c, "id")
	if !ok {
		return
	}
	var cmd usecase.AddItem
	if !bind(c, &cmd) {
		return
	}
	cmd.CartID = cartID
	h.execute(c, nethttp.StatusOK, cmd)
}

func (h *Handler) updateItemQuantity(c *gin.Context) {
	cartID, ok := idParam(c, "id")
	if !ok {
		return
	}
	itemID, ok := idParam(c, "itemId")
	if !ok {
		return
	}
	var cmd usecase.UpdateItemQuantity
	if !bind(c, &cmd) {
		return
	}
	cmd.CartID, cmd.ItemID = cartID, itemID
	h.execute(c, nethttp.StatusOK, cmd)
}

func (h *Handler) removeItem(c *gin.Context) {
	cartID, ok := idParam(c, "id")
	if !ok {
		return
	}
	itemID, ok := idParam(c, "itemId")
	if !ok {
		return
	}
	h.execute(c, nethttp.StatusOK, usecase.RemoveItem{CartID: cartID, ItemID: itemID})
}

func (h *Handler) clearCart(c *gin.Context) {
	cartID, ok := idParam(c, "id")
	if !ok {
		return
	}
	h.execute(c, nethttp.StatusOK, usecase.ClearCart{CartID: cartID})
}

func (h *Handler) applyCoupon(c *gin.Context) {
	cartID, ok := idParam(c, "id")
	if !ok {
		return
	}
	var cmd usecase.ApplyCoupon
	if !bind(c, &cmd) {
		return
	}
	cmd.CartID = cartID
	h.execute(c, nethttp.StatusOK, cmd)
}

func (h *Handler) removeCoupon(c *gin.Context) {
	cartID, ok := idParam(c, "id")
	if !ok {
		return
	}
	h.execute(c, nethttp.StatusOK, usecase.RemoveCoupon{CartID: cartID})
}

func (h *Handler) selectShipping(c *gin.Context) {
	cartID, ok := idParam(c, "id")
	if !ok {
		return
	}
	var cmd usecase.SelectShipping
	if !bind(c, &cmd) {
		return
	}
	cmd.CartID = cartID
	h.execute(c, nethttp.StatusOK, cmd)
}

func (h *Handler) setPayment(c *gin.Context) {
	cartID, ok := idParam(c, "id")
	if !ok {
		return
	}
	var cmd usecase.SetPayment
	if !bind(c, &cmd) {
		return
	}
	cmd.CartID = cartID
	h.execute(c, nethttp.StatusOK, cmd)
}

func (h *Handler) saveForLater(c *gin.Context) {
	cartID, ok := idParam(c, "id")
	if !ok {
		return
	}
	itemID, ok := idParam(c, "itemId")
	if !ok {
		return
	}
	h.execute(c, nethttp.StatusOK, usecase.SaveForLater{CartID: cartID, ItemID: itemID})
}

func (h *Handler) moveToCart(c *gin.Context) {
	cartID, ok := idParam(c, "id")
	if !ok {
		return
	}
	productID, ok := idParam(c, "productId")
	if !ok {
		return
	}
	h.execute(c, nethttp.StatusOK, usecase.MoveToCart{CartID: cartID, ProductID: productID})
}

func (h *Handler) deactivateCart(c *gin.Context) {
	cartID, ok := idParam(c, "id")
	if !ok {
		return
	}
	var cmd usecase.DeactivateCart
	if !bind(c, &cmd) {
		return
	}
	cmd.CartID = cartID
	h.execute(c, nethttp.StatusOK, cmd)
}

func (h *Handler) commands(c *gin.Context) {
	response.RespondOK(c, nethttp.StatusOK, h.carts.Commands(), nil)
}
