package handlers

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/finsync/internal/core/domain"
	portssvc "github.com/SscSPs/finsync/internal/core/ports/services"
	"github.com/SscSPs/finsync/internal/dto"
	"github.com/SscSPs/finsync/internal/middleware"
	"github.com/SscSPs/finsync/internal/utils"
	"github.com/gin-gonic/gin"
)

// sseHeartbeat keeps idle event streams open through proxies.
const sseHeartbeat = 25 * time.Second

// syncHandler exposes the caller's sync controller.
type syncHandler struct {
	syncService portssvc.SyncSvcFacade
	analytics   *utils.PosthogClientWrapper
	heartbeat   time.Duration
}

// registerSyncRoutes registers the sync routes.
func registerSyncRoutes(rg *gin.RouterGroup, syncService portssvc.SyncSvcFacade, analytics *utils.PosthogClientWrapper) {
	h := &syncHandler{syncService: syncService, analytics: analytics, heartbeat: sseHeartbeat}

	s := rg.Group("/sync")
	{
		s.GET("/state", h.state)
		s.POST("/push", h.push)
		s.GET("/pull", h.pull)
		s.GET("/events", h.events)
	}
}

// state godoc
// @Summary Get sync state
// @Description Returns the state of the caller's most recent push or pull.
// @Tags sync
// @Produce json
// @Success 200 {object} dto.SyncStateResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /sync/state [get]
func (h *syncHandler) state(c *gin.Context) {
	uid, ok := requireUserID(c)
	if !ok {
		return
	}
	state, err := h.syncService.State(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SyncStateResponse{State: state})
}

// push godoc
// @Summary Push the local snapshot
// @Description Merges the record into the caller's remote document, stamped with the sync time and identity fields.
// @Tags sync
// @Accept json
// @Produce json
// @Param push body dto.PushRequest true "Local snapshot"
// @Success 200 {object} dto.PushResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 503 {object} dto.PushResponse "Store unavailable, state is error"
// @Security BearerAuth
// @Router /sync/push [post]
func (h *syncHandler) push(c *gin.Context) {
	uid, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.PushRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	pushed, state, err := h.syncService.Push(c.Request.Context(), uid, domain.Document(req.Record))
	if err != nil {
		respondError(c, err)
		return
	}
	status := http.StatusOK
	if !pushed {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, dto.PushResponse{Success: pushed, State: state})
}

// pull godoc
// @Summary Pull the remote record
// @Description Returns the caller's remote document, or a null record with state no_data.
// @Tags sync
// @Produce json
// @Success 200 {object} dto.PullResponse
// @Failure 401 {object} ErrorResponse
// @Failure 503 {object} dto.PullResponse "Store unavailable, state is error"
// @Security BearerAuth
// @Router /sync/pull [get]
func (h *syncHandler) pull(c *gin.Context) {
	uid, ok := requireUserID(c)
	if !ok {
		return
	}
	record, state, err := h.syncService.Pull(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	status := http.StatusOK
	if state == domain.SyncError {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, dto.PullResponse{State: state, Record: record})
}

// events godoc
// @Summary Stream sync events
// @Description Server-sent events: "state" on every transition and "record" after every change to the caller's remote document. The stream ends on logout.
// @Tags sync
// @Produce text/event-stream
// @Param access_token query string false "Access token, for clients that cannot set headers"
// @Success 200 {object} domain.SyncEvent
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /sync/events [get]
func (h *syncHandler) events(c *gin.Context) {
	uid, ok := requireUserID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	events, err := h.syncService.Watch(ctx, uid)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	started := time.Now()
	sent := 0
	c.Stream(func(w io.Writer) bool {
		select {
		case ev, open := <-events:
			if !open {
				return false
			}
			c.SSEvent(string(ev.Type), ev)
			sent++
			return true
		case <-ticker.C:
			c.SSEvent("ping", gin.H{"at": time.Now().UTC()})
			return true
		case <-ctx.Done():
			return false
		}
	})

	logger.Info("Sync event stream closed", slog.Int("events", sent), slog.Duration("duration", time.Since(started)))
	middleware.PosthogEvent(c, h.analytics, "sync_stream_closed", map[string]any{"events": sent})
}
