package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/manpreet243/nishat-main/internal/apierror"
	"github.com/manpreet243/nishat-main/internal/dto"
	"github.com/manpreet243/nishat-main/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const summaryCacheKey = "dashboard:summary"
const summaryCacheTTL = 60 * time.Second

// DashboardHandler serves the headline figures. Short-lived Redis cache:
// the dashboard polls, the aggregates are cross-table.
type DashboardHandler struct {
	svc service.DashboardService
	rdb *redis.Client
}

func NewDashboardHandler(svc service.DashboardService, rdb *redis.Client) *DashboardHandler {
	return &DashboardHandler{svc: svc, rdb: rdb}
}

func (h *DashboardHandler) Summary(c *gin.Context) {
	ctx := c.Request.Context()

	if cached, err := h.rdb.Get(ctx, summaryCacheKey).Bytes(); err == nil {
		var resp dto.DashboardSummary
		if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
			c.JSON(http.StatusOK, resp)
			return
		}
	}

	resp, err := h.svc.Summary(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to build summary"))
		return
	}

	// Populate cache — best effort, ignore errors
	if b, jsonErr := json.Marshal(resp); jsonErr == nil {
		_ = h.rdb.Set(context.Background(), summaryCacheKey, b, summaryCacheTTL).Err()
	}

	c.JSON(http.StatusOK, resp)
}
