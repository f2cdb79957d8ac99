package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/voltstack/commerce-backend/internal/commands"
	"github.com/voltstack/commerce-backend/internal/platform/logger"
)

type ProductHandler struct {
	log      *logger.Logger
	dispatch *commands.Dispatcher
}

func NewProductHandler(log *logger.Logger, dispatch *commands.Dispatcher) *ProductHandler {
	return &ProductHandler{log: log.With("handler", "ProductHandler"), dispatch: dispatch}
}

func (h *ProductHandler) send(c *gin.Context, status int, msg any) {
	out, err := h.dispatch.Dispatch(c.Request.Context(), msg)
	if err != nil {
		h.log.Error("product command failed", "error", err)
		RespondFault(c, err)
		return
	}
	RespondOutcome(c, status, out)
}

func (h *ProductHandler) Create(c *gin.Context) {
	var cmd commands.CreateProduct
	if err := c.ShouldBindJSON(&cmd); err != nil {
		RespondValidation(c, "invalid request body")
		return
	}
	h.send(c, http.StatusCreated, cmd)
}

func (h *ProductHandler) Activate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	h.send(c, http.StatusOK, commands.ActivateProduct{ID: id})
}

func (h *ProductHandler) Deactivate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	h.send(c, http.StatusOK, commands.DeactivateProduct{ID: id})
}

func (h *ProductHandler) UpdateStock(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondValidation(c, "invalid request body")
		return
	}
	h.send(c, http.StatusOK, commands.UpdateProductStock{ID: id, Quantity: body.Quantity})
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	h.send(c, http.StatusOK, commands.DeleteProduct{ID: id})
}

func (h *ProductHandler) List(c *gin.Context) {
	h.send(c, http.StatusOK, commands.GetProducts{
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "page_size", 10),
	})
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondValidation(c, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}

func queryInt(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
