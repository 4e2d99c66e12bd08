package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gravadigital/partnerships-api/internal/domain/globalevent"
	"github.com/gravadigital/partnerships-api/internal/response"
	"github.com/gravadigital/partnerships-api/internal/services"
)

// SyncObserver is told the outcome of every invitation update
type SyncObserver interface {
	ObserveSync(synced, skipped, failed int)
}

type GlobalEventHandler struct {
	svc      *services.GlobalEventService
	observer SyncObserver
}

// NewGlobalEventHandler builds the handler; observer may be nil
func NewGlobalEventHandler(svc *services.GlobalEventService, observer SyncObserver) *GlobalEventHandler {
	return &GlobalEventHandler{svc: svc, observer: observer}
}

type createGlobalEventResponse struct {
	*globalevent.GlobalEvent
	Sync *services.SyncReport `json:"sync,omitempty"`
}

// partialCreateResponse is sent when the event was stored but its initial
// invitations did not sync; the client finishes with PUT .../invitations.
type partialCreateResponse struct {
	response.ErrorResponse
	GlobalEvent *globalevent.GlobalEvent `json:"globalEvent"`
	Sync        *services.SyncReport     `json:"sync,omitempty"`
}

// List handles GET /api/global-events
func (h *GlobalEventHandler) List(c *gin.Context) {
	view, err := viewParam(c)
	if err != nil {
		response.FromError(c, err)
		return
	}
	list, err := h.svc.List(c.Request.Context(), view)
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Create handles POST /api/global-events
func (h *GlobalEventHandler) Create(c *gin.Context) {
	var req services.CreateGlobalEventRequest
	if err := bindJSON(c, &req); err != nil {
		response.FromError(c, err)
		return
	}

	created, report, err := h.svc.Create(c.Request.Context(), req)
	h.observe(report)
	if err != nil && created != nil {
		status := response.StatusFor(err)
		_ = c.Error(err)
		c.JSON(status, partialCreateResponse{
			ErrorResponse: response.ErrorResponse{
				Success: false,
				Error:   "global event created but invitation sync failed",
				Code:    status,
			},
			GlobalEvent: created,
			Sync:        report,
		})
		return
	}
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusCreated, createGlobalEventResponse{GlobalEvent: created, Sync: report})
}

// Get handles GET /api/global-events/:id
func (h *GlobalEventHandler) Get(c *gin.Context) {
	e, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

// UpdateDetails handles PATCH /api/global-events/:id
func (h *GlobalEventHandler) UpdateDetails(c *gin.Context) {
	var patch globalevent.DetailsPatch
	if err := bindJSON(c, &patch); err != nil {
		response.FromError(c, err)
		return
	}
	e, err := h.svc.UpdateDetails(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

// UpdateInvitations handles PUT /api/global-events/:id/invitations
func (h *GlobalEventHandler) UpdateInvitations(c *gin.Context) {
	var req services.UpdateInvitationsRequest
	if err := bindJSON(c, &req); err != nil {
		response.FromError(c, err)
		return
	}

	report, err := h.svc.UpdateInvitations(c.Request.Context(), c.Param("id"), req)
	h.observe(report)
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *GlobalEventHandler) observe(report *services.SyncReport) {
	if h.observer == nil || report == nil {
		return
	}
	h.observer.ObserveSync(len(report.Synced), len(report.Skipped), len(report.Failed))
}

// SoftDelete handles DELETE /api/global-events/:id
func (h *GlobalEventHandler) SoftDelete(c *gin.Context) {
	if err := h.svc.SoftDelete(c.Request.Context(), c.Param("id")); err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessResponse(c, http.StatusOK, "Global event moved to recycle bin", nil)
}

// Restore handles POST /api/global-events/:id/restore
func (h *GlobalEventHandler) Restore(c *gin.Context) {
	if err := h.svc.Restore(c.Request.Context(), c.Param("id")); err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessResponse(c, http.StatusOK, "Global event restored", nil)
}

// PermanentlyDelete handles DELETE /api/global-events/:id/permanent
func (h *GlobalEventHandler) PermanentlyDelete(c *gin.Context) {
	if err := h.svc.PermanentlyDelete(c.Request.Context(), c.Param("id")); err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessResponse(c, http.StatusOK, "Global event permanently deleted", nil)
}

// ListLightweight handles GET /api/lightweight-partners
func (h *GlobalEventHandler) ListLightweight(c *gin.Context) {
	list, err := h.svc.ListLightweight(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// CreateLightweight handles POST /api/lightweight-partners
func (h *GlobalEventHandler) CreateLightweight(c *gin.Context) {
	var req services.CreateLightweightRequest
	if err := bindJSON(c, &req); err != nil {
		response.FromError(c, err)
		return
	}
	lp, err := h.svc.CreateLightweight(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusCreated, lp)
}
