package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/voltstack/commerce-backend/internal/commands"
	"github.com/voltstack/commerce-backend/internal/platform/logger"
)

type CustomerHandler struct {
	log      *logger.Logger
	dispatch *commands.Dispatcher
}

func NewCustomerHandler(log *logger.Logger, dispatch *commands.Dispatcher) *CustomerHandler {
	return &CustomerHandler{log: log.With("handler", "CustomerHandler"), dispatch: dispatch}
}

func (h *CustomerHandler) send(c *gin.Context, status int, msg any) {
	out, err := h.dispatch.Dispatch(c.Request.Context(), msg)
	if err != nil {
		h.log.Error("customer command failed", "error", err)
		RespondFault(c, err)
		return
	}
	RespondOutcome(c, status, out)
}

func (h *CustomerHandler) Create(c *gin.Context) {
	var cmd commands.CreateCustomer
	if err := c.ShouldBindJSON(&cmd); err != nil {
		RespondValidation(c, "invalid request body")
		return
	}
	h.send(c, http.StatusCreated, cmd)
}

func (h *CustomerHandler) Rename(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var body struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondValidation(c, "invalid request body")
		return
	}
	h.send(c, http.StatusOK, commands.RenameCustomer{
		ID:        id,
		FirstName: body.FirstName,
		LastName:  body.LastName,
	})
}

func (h *CustomerHandler) Relocate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var body struct {
		Street     string `json:"street"`
		City       string `json:"city"`
		Region     string `json:"region"`
		PostalCode string `json:"postal_code"`
		Country    string `json:"country"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondValidation(c, "invalid request body")
		return
	}
	h.send(c, http.StatusOK, commands.RelocateCustomer{
		ID:         id,
		Street:     body.Street,
		City:       body.City,
		Region:     body.Region,
		PostalCode: body.PostalCode,
		Country:    body.Country,
	})
}
