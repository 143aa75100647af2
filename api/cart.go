package api

import (
	"encoding/json"
	"net/http"

	"github.com/Domenick1991/flightshop/internal/domain"
	"github.com/Domenick1991/flightshop/internal/service/cart"
	"github.com/gin-gonic/gin"
)

type CartHandler struct {
	service cart.CartUseCase
}

// Storefront scripts send flight_id and price either as numbers or as
// strings; json.Number takes both.
type addToCartRequest struct {
	FlightID   json.Number `json:"flight_id" binding:"required"`
	PlaneName  string      `json:"plane_name"`
	Departure  string      `json:"departure"`
	Arrival    string      `json:"arrival"`
	Day        string      `json:"day"`
	TypeTicket string      `json:"type_ticket" binding:"required"`
	Price      json.Number `json:"price" binding:"required"`
}

type cartItemRequest struct {
	FlightID   json.Number `json:"flight_id" binding:"required"`
	TypeTicket string      `json:"type_ticket" binding:"required"`
}

type updateCartRequest struct {
	FlightID   json.Number `json:"flight_id" binding:"required"`
	TypeTicket string      `json:"type_ticket" binding:"required"`
	Quantity   json.Number `json:"quantity" binding:"required"`
}

func NewCartHandler(service cart.CartUseCase) *CartHandler {
	return &CartHandler{service: service}
}

func (h *CartHandler) Register(router *gin.RouterGroup) {
	router.POST("/api/carts", h.add)
	router.GET("/cart", h.view)
	router.POST("/cart/delete", h.remove)
	router.POST("/cart/update", h.update)
}

func (h *CartHandler) add(c *gin.Context) {
	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	price, err := req.Price.Float64()
	if err != nil {
		badRequest(c, "price must be a number")
		return
	}

	stats, err := h.service.Add(c.Request.Context(), currentSession(c), cart.AddInput{
		FlightID:   req.FlightID.String(),
		PlaneName:  req.PlaneName,
		Departure:  req.Departure,
		Arrival:    req.Arrival,
		Day:        req.Day,
		TypeTicket: req.TypeTicket,
		Price:      price,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *CartHandler) view(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Get(currentSession(c)))
}

func (h *CartHandler) remove(c *gin.Context) {
	var req cartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		cartFailure(c, domain.Invalid(err.Error()))
		return
	}
	stats, err := h.service.Delete(c.Request.Context(), currentSession(c), req.FlightID.String(), req.TypeTicket)
	if err != nil {
		cartFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "stats": stats})
}

func (h *CartHandler) update(c *gin.Context) {
	var req updateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		cartFailure(c, domain.Invalid(err.Error()))
		return
	}
	quantity, err := req.Quantity.Int64()
	if err != nil {
		cartFailure(c, domain.ErrInvalidQuantity)
		return
	}
	stats, err := h.service.Update(c.Request.Context(), currentSession(c), req.FlightID.String(), req.TypeTicket, int(quantity))
	if err != nil {
		cartFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "stats": stats})
}

// cartFailure keeps the {success, message} envelope the cart page expects.
func cartFailure(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		respondError(c, err)
		return
	}
	c.JSON(status, gin.H{"success": false, "message": err.Error()})
}
