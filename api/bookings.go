package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Domenick1991/flightshop/internal/domain"
	"github.com/Domenick1991/flightshop/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type paymentResponse struct {
	Reference string  `json:"reference"`
	Status    string  `json:"status"`
	Amount    float64 `json:"amount"`
	ExpiresAt string  `json:"expires_at"`
	PaidAt    string  `json:"paid_at,omitempty"`
	TicketIDs []int64 `json:"ticket_ids,omitempty"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.GET("/payment_info/:flight_id/:quantity/:type_ticket", h.paymentInfo)
	router.GET("/payment_qr/:flight_id/:quantity/:type_ticket", h.paymentQR)
	router.POST("/cart/checkout", RequireLogin(), h.checkout)
	router.POST("/payments/:reference/confirm", RequireLogin(), h.confirm)
}

func (h *BookingHandler) paymentInfo(c *gin.Context) {
	info, ok := h.loadPaymentInfo(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, info)
}

func (h *BookingHandler) paymentQR(c *gin.Context) {
	info, ok := h.loadPaymentInfo(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, info.WithQR())
}

func (h *BookingHandler) loadPaymentInfo(c *gin.Context) (*booking.PaymentInfo, bool) {
	flightID, err := strconv.ParseInt(c.Param("flight_id"), 10, 64)
	if err != nil {
		badRequest(c, "invalid flight id")
		return nil, false
	}
	quantity, err := strconv.Atoi(c.Param("quantity"))
	if err != nil {
		badRequest(c, "invalid quantity")
		return nil, false
	}

	info, err := h.service.PaymentInfo(c.Request.Context(), flightID, quantity, c.Param("type_ticket"))
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return info, true
}

func (h *BookingHandler) checkout(c *gin.Context) {
	result, err := h.service.Checkout(c.Request.Context(), currentSession(c))
	if err != nil {
		respondError(c, err)
		return
	}

	ids := make([]int64, 0, len(result.Tickets))
	for _, t := range result.Tickets {
		ids = append(ids, t.ID)
	}
	resp := toPaymentResponse(result.Payment)
	resp.TicketIDs = ids
	c.JSON(http.StatusCreated, resp)
}

func (h *BookingHandler) confirm(c *gin.Context) {
	payment, err := h.service.ConfirmPayment(c.Request.Context(), currentSession(c).UserID, c.Param("reference"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPaymentResponse(payment))
}

func toPaymentResponse(p *domain.Payment) paymentResponse {
	resp := paymentResponse{
		Reference: p.Reference,
		Status:    string(p.Status),
		Amount:    p.Amount,
		ExpiresAt: p.ExpiresAt.Format(time.RFC3339),
	}
	if p.PaidAt != nil {
		resp.PaidAt = p.PaidAt.Format(time.RFC3339)
	}
	return resp
}
