package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/voltstack/commerce-backend/internal/commands"
	"github.com/voltstack/commerce-backend/internal/platform/logger"
)

type OrderHandler struct {
	log      *logger.Logger
	dispatch *commands.Dispatcher
}

func NewOrderHandler(log *logger.Logger, dispatch *commands.Dispatcher) *OrderHandler {
	return &OrderHandler{log: log.With("handler", "OrderHandler"), dispatch: dispatch}
}

func (h *OrderHandler) send(c *gin.Context, status int, msg any) {
	out, err := h.dispatch.Dispatch(c.Request.Context(), msg)
	if err != nil {
		h.log.Error("order command failed", "error", err)
		RespondFault(c, err)
		return
	}
	RespondOutcome(c, status, out)
}

func (h *OrderHandler) Place(c *gin.Context) {
	var cmd commands.PlaceOrder
	if err := c.ShouldBindJSON(&cmd); err != nil {
		RespondValidation(c, "invalid request body")
		return
	}
	h.send(c, http.StatusCreated, cmd)
}

func (h *OrderHandler) AddItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var body struct {
		ProductID uuid.UUID `json:"product_id"`
		Quantity  int       `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondValidation(c, "invalid request body")
		return
	}
	h.send(c, http.StatusOK, commands.AddOrderItem{
		OrderID:   id,
		ProductID: body.ProductID,
		Quantity:  body.Quantity,
	})
}

func (h *OrderHandler) Confirm(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	h.send(c, http.StatusOK, commands.ConfirmOrder{ID: id})
}

func (h *OrderHandler) Ship(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	h.send(c, http.StatusOK, commands.ShipOrder{ID: id})
}

func (h *OrderHandler) Cancel(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	h.send(c, http.StatusOK, commands.CancelOrder{ID: id})
}

func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	h.send(c, http.StatusOK, commands.GetOrder{ID: id})
}

func (h *OrderHandler) List(c *gin.Context) {
	query := commands.GetOrders{
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "page_size", 10),
	}
	if raw := c.Query("customer_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			RespondValidation(c, "invalid customer_id")
			return
		}
		query.CustomerID = id
	}
	h.send(c, http.StatusOK, query)
}
