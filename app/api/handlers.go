package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bigendian/newswire/app/cfg"
	"github.com/bigendian/newswire/app/config"
	"github.com/bigendian/newswire/app/feed"
	"github.com/bigendian/newswire/app/store"
	"github.com/bigendian/newswire/app/tasks"
)

type Handler struct {
	store     *store.Store
	scheduler tasks.SchedulerInterface
	sources   []config.Source
}

func NewHandler(st *store.Store, scheduler tasks.SchedulerInterface, sources []config.Source) *Handler {
	return &Handler{
		store:     st,
		scheduler: scheduler,
		sources:   sources,
	}
}

// GetItems returns the persisted collection newest first, undated items
// last.
func (h *Handler) GetItems(c *gin.Context) {
	items, err := h.store.Load()
	if err != nil {
		slog.Error("Store read failed", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	ordered := feed.NewestFirst(items)

	c.JSON(http.StatusOK, gin.H{
		"count": len(ordered),
		"items": ordered,
	})
}

// PostRefresh signals the scheduler to run a fetch-merge-persist cycle.
func (h *Handler) PostRefresh(c *gin.Context) {
	if err := h.scheduler.TriggerRefresh(); err != nil {
		slog.Error("Refresh trigger failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "scheduler is shutting down"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"status": "refresh scheduled"})
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   cfg.GetVersion(),
		"sources":   len(h.sources),
	}

	if items, err := h.store.Load(); err == nil {
		health["items"] = len(items)
	}

	c.JSON(http.StatusOK, health)
}
