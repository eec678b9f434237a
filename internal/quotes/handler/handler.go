package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"solarxp_backend/internal/quotes/service"
	"solarxp_backend/internal/quotes/transport"
	"solarxp_backend/platform/httpkit"
	"solarxp_backend/platform/validator"
)

// Handler handles HTTP requests for the quote lifecycle.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid id"
)

// New creates a new quotes handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// SubmitQuote submits a new quote request for the caller.
// POST /api/v1/quotes
func (h *Handler) SubmitQuote(c *gin.Context) {
	userID, ok := httpkit.MustGetUserID(c)
	if !ok {
		return
	}
	var req transport.SubmitQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.SubmitQuote(c.Request.Context(), userID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, result)
}

// GetMyQuotes returns the caller's quote dashboard.
// GET /api/v1/quotes/my
func (h *Handler) GetMyQuotes(c *gin.Context) {
	userID, ok := httpkit.MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.svc.GetMyQuotes(c.Request.Context(), userID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// PlaceOrder orders an approved quote item.
// POST /api/v1/quotes/items/:id/order
func (h *Handler) PlaceOrder(c *gin.Context) {
	if _, ok := httpkit.MustGetUserID(c); !ok {
		return
	}
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	result, err := h.svc.PlaceOrder(c.Request.Context(), itemID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, result)
}

// ListRequests returns quote requests for review, optionally filtered by
// approval status.
// GET /api/v1/admin/requests?status=Pending|Approved
func (h *Handler) ListRequests(c *gin.Context) {
	result, err := h.svc.GetAdminRequests(c.Request.Context(), c.Query("status"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// ApproveRequest approves every item of a quote request.
// POST /api/v1/admin/requests/:id/approve
func (h *Handler) ApproveRequest(c *gin.Context) {
	headerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	msg, err := h.svc.ApproveHeader(c.Request.Context(), headerID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"message": msg})
}

// ListOrders returns all placed orders for fulfilment.
// GET /api/v1/admin/orders
func (h *Handler) ListOrders(c *gin.Context) {
	result, err := h.svc.GetAdminOrders(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// UpdateOrderStatus moves an order to a new fulfilment status.
// PUT /api/v1/admin/orders/:id/status
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}
	var req transport.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	if err := h.svc.UpdateOrderStatus(c.Request.Context(), orderID, req.Status); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"message": "Order status updated."})
}
