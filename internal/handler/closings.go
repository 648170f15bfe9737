package handler

import (
	"net/http"

	"github.com/manpreet243/nishat-main/internal/apierror"
	"github.com/manpreet243/nishat-main/internal/dto"
	"github.com/manpreet243/nishat-main/internal/service"

	"github.com/gin-gonic/gin"
)

type ClosingsHandler struct{ svc service.ClosingService }

func NewClosingsHandler(svc service.ClosingService) *ClosingsHandler {
	return &ClosingsHandler{svc: svc}
}

// Close archives the requested period. Irreversible — the client must
// confirm with the user before calling.
func (h *ClosingsHandler) Close(c *gin.Context) {
	var req dto.CloseMonthRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CloseMonth(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ClosingsHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ClosingsHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list closings"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
