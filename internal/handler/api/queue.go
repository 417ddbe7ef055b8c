package api

import (
	"errors"
	"net/http"
	"strconv"

	"salonbook/internal/infra/queue"

	"github.com/gin-gonic/gin"
)

type QueueHandler struct {
	manager *queue.Manager
}

func NewQueueHandler(m *queue.Manager) *QueueHandler {
	return &QueueHandler{manager: m}
}

// @Summary Queue stats
// @Description Job counts per status for every queue
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} queue.Stats
// @Router /admin/queues [get]
func (h *QueueHandler) ListStats(c *gin.Context) {
	stats, err := h.manager.StatsAll(c.Request.Context())
	if err != nil {
		respondQueueError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// @Summary Queue stats by name
// @Description Job counts per status for one queue
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param name path string true "Queue name"
// @Success 200 {object} queue.Stats
// @Failure 404 {object} map[string]string
// @Router /admin/queues/{name} [get]
func (h *QueueHandler) GetStats(c *gin.Context) {
	stats, err := h.manager.Stats(c.Request.Context(), c.Param("name"))
	if err != nil {
		respondQueueError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// @Summary Dead jobs
// @Description Jobs that exhausted their retries, newest first
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param name path string true "Queue name"
// @Param limit query int false "Max rows" default(50)
// @Success 200 {array} queue.Job
// @Failure 404 {object} map[string]string
// @Router /admin/queues/{name}/dead [get]
func (h *QueueHandler) ListDeadJobs(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = parsed
	}

	dead, err := h.manager.DeadJobs(c.Request.Context(), c.Param("name"), limit)
	if err != nil {
		respondQueueError(c, err)
		return
	}
	c.JSON(http.StatusOK, dead)
}

func respondQueueError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, queue.ErrUnknownQueue):
		c.JSON(http.StatusNotFound, gin.H{"error": "Queue not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
