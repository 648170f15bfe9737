package handler

import (
	"net/http"

	"github.com/manpreet243/nishat-main/internal/apierror"
	"github.com/manpreet243/nishat-main/internal/dto"
	"github.com/manpreet243/nishat-main/internal/service"

	"github.com/gin-gonic/gin"
)

type RemindersHandler struct{ svc service.ReminderService }

func NewRemindersHandler(svc service.ReminderService) *RemindersHandler {
	return &RemindersHandler{svc: svc}
}

// ForCustomer builds the WhatsApp message and wa.me link for one customer.
func (h *RemindersHandler) ForCustomer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var opts dto.ReminderOptions
	if err := c.ShouldBindQuery(&opts); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Reminder(c.Request.Context(), id, opts)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Due builds reminders for every customer flagged due today.
func (h *RemindersHandler) Due(c *gin.Context) {
	var opts dto.ReminderOptions
	if err := c.ShouldBindQuery(&opts); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.DueReminders(c.Request.Context(), opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to build reminders"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
