package handlers

import "github.com/gin-gonic/gin"

type Router struct {
	handler *Handler
}

func NewRouter(handler *Handler) *Router {
	return &Router{handler: handler}
}

// RegisterRoutes mounts the cart API. Mutating routes run behind the
// idempotency middleware.
func (r *Router) RegisterRoutes(engine *gin.Engine, idempotency gin.HandlerFunc) {
	engine.GET("/healthz", r.handler.health)

	api := engine.Group("/api")
	api.GET("/commands", r.handler.commands)

	carts := api.Group("/carts")
	carts.POST("", idempotency, r.handler.createCart)
	carts.GET("/:id", r.handler.getCart)
	carts.GET("/:id/events", r.handler.history)

	cart := carts.Group("/:id", idempotency)
	cart.POST("/items", r.handler.addItem)
	cart.DELETE("/items", r.handler.clearCart)
	cart.PATCH("/items/:itemId", r.handler.updateItemQuantity)
	cart.DELETE("/items/:itemId", r.handler.removeItem)
	cart.POST("/items/:itemId/save-for-later", r.handler.saveForLater)
	cart.POST("/saved/:productId/move-to-cart", r.handler.moveToCart)
	cart.PUT("/coupon", r.handler.applyCoupon)
	cart.DELETE("/coupon", r.handler.removeCoupon)
	cart.PUT("/shipping", r.handler.selectShipping)
	cart.PUT("/payment", r.handler.setPayment)
	cart.POST("/deactivate", r.handler.deactivateCart)

	admin := api.Group("/admin")
	admin.POST("/replay", r.handler.replayAll)
	admin.POST("/replay/:id", r.handler.replayCart)
}
