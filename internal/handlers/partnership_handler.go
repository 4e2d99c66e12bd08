package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gravadigital/partnerships-api/internal/domain/common"
	"github.com/gravadigital/partnerships-api/internal/domain/partner"
	"github.com/gravadigital/partnerships-api/internal/response"
	"github.com/gravadigital/partnerships-api/internal/services"
)

type PartnershipHandler struct {
	svc *services.PartnershipService
}

func NewPartnershipHandler(svc *services.PartnershipService) *PartnershipHandler {
	return &PartnershipHandler{svc: svc}
}

// ListPartnerships handles GET /api/partnerships
func (h *PartnershipHandler) ListPartnerships(c *gin.Context) {
	view, err := viewParam(c)
	if err != nil {
		response.FromError(c, err)
		return
	}

	list, err := h.svc.ListPartnerships(c.Request.Context(), view)
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// CreatePartnership handles POST /api/partnerships
func (h *PartnershipHandler) CreatePartnership(c *gin.Context) {
	var req partner.PartnershipData
	if err := bindJSON(c, &req); err != nil {
		response.FromError(c, err)
		return
	}

	created, err := h.svc.CreatePartnership(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetPartnership handles GET /api/partnerships/:id, where id may be a slug
func (h *PartnershipHandler) GetPartnership(c *gin.Context) {
	view, err := viewParam(c)
	if err != nil {
		response.FromError(c, err)
		return
	}

	d, err := h.svc.GetPartnership(c.Request.Context(), c.Param("id"), view)
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// UpdatePartner handles PATCH /api/partnerships/:id
func (h *PartnershipHandler) UpdatePartner(c *gin.Context) {
	var patch partner.Patch
	if err := bindJSON(c, &patch); err != nil {
		response.FromError(c, err)
		return
	}

	updated, err := h.svc.UpdatePartnerStatus(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// SoftDeletePartner handles DELETE /api/partnerships/:id
func (h *PartnershipHandler) SoftDeletePartner(c *gin.Context) {
	if err := h.svc.SoftDeletePartner(c.Request.Context(), c.Param("id")); err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessResponse(c, http.StatusOK, "Partner moved to recycle bin", nil)
}

// RestorePartner handles POST /api/partnerships/:id/restore
func (h *PartnershipHandler) RestorePartner(c *gin.Context) {
	if err := h.svc.RestorePartner(c.Request.Context(), c.Param("id")); err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessResponse(c, http.StatusOK, "Partner restored", nil)
}

// PermanentlyDeletePartner handles DELETE /api/partnerships/:id/permanent
func (h *PartnershipHandler) PermanentlyDeletePartner(c *gin.Context) {
	if err := h.svc.PermanentlyDeletePartner(c.Request.Context(), c.Param("id")); err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessResponse(c, http.StatusOK, "Partner permanently deleted", nil)
}

// ReplaceCollection handles PUT /api/partnerships/:id/:collection. The body
// is the full new collection; the updated aggregate is returned.
func (h *PartnershipHandler) ReplaceCollection(c *gin.Context) {
	collection, err := collectionParam(c)
	if err != nil {
		response.FromError(c, err)
		return
	}
	ctx := c.Request.Context()
	id := c.Param("id")

	switch collection {
	case partner.CollectionIntroductions:
		err = bindAndReplace(ctx, c, id, h.svc.ReplaceIntroductions)
	case partner.CollectionEvents:
		err = bindAndReplace(ctx, c, id, h.svc.ReplaceEvents)
	case partner.CollectionPublications:
		err = bindAndReplace(ctx, c, id, h.svc.ReplacePublications)
	case partner.CollectionQuarterlyReports:
		err = bindAndReplace(ctx, c, id, h.svc.ReplaceQuarterlyReports)
	case partner.CollectionMonthlyCheckIns:
		err = bindAndReplace(ctx, c, id, h.svc.ReplaceMonthlyCheckIns)
	}
	if err != nil {
		response.FromError(c, err)
		return
	}

	d, err := h.svc.GetPartnership(ctx, id, common.ViewAll)
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func bindAndReplace[T any](ctx context.Context, c *gin.Context, partnerID string, replace func(context.Context, string, []T) error) error {
	var items []T
	if err := bindJSON(c, &items); err != nil {
		return err
	}
	if items == nil {
		items = []T{}
	}
	return replace(ctx, partnerID, items)
}

// SaveItem handles POST /api/partnerships/:id/:collection: one item is
// added, or replaced when its id already exists.
func (h *PartnershipHandler) SaveItem(c *gin.Context) {
	collection, err := collectionParam(c)
	if err != nil {
		response.FromError(c, err)
		return
	}
	ctx := c.Request.Context()
	id := c.Param("id")

	var saved any
	switch collection {
	case partner.CollectionIntroductions:
		saved, err = bindAndCall(c, func(v partner.Introduction) (partner.Introduction, error) {
			return h.svc.SaveIntroduction(ctx, id, v)
		})
	case partner.CollectionEvents:
		saved, err = bindAndCall(c, func(v partner.Event) (partner.Event, error) {
			return h.svc.SaveEvent(ctx, id, v)
		})
	case partner.CollectionPublications:
		saved, err = bindAndCall(c, func(v partner.Publication) (partner.Publication, error) {
			return h.svc.SavePublication(ctx, id, v)
		})
	case partner.CollectionQuarterlyReports:
		saved, err = bindAndCall(c, func(v partner.QuarterlyReport) (partner.QuarterlyReport, error) {
			return h.svc.SaveQuarterlyReport(ctx, id, v)
		})
	case partner.CollectionMonthlyCheckIns:
		saved, err = bindAndCall(c, func(v partner.MonthlyCheckIn) (partner.MonthlyCheckIn, error) {
			return h.svc.SaveMonthlyCheckIn(ctx, id, v)
		})
	}
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

// SoftDeleteItem handles DELETE /api/partnerships/:id/:collection/:itemId
func (h *PartnershipHandler) SoftDeleteItem(c *gin.Context) {
	h.itemLifecycle(c, h.svc.SoftDeleteItem, "Item moved to recycle bin")
}

// RestoreItem handles POST /api/partnerships/:id/:collection/:itemId/restore
func (h *PartnershipHandler) RestoreItem(c *gin.Context) {
	h.itemLifecycle(c, h.svc.RestoreItem, "Item restored")
}

// PurgeItem handles DELETE /api/partnerships/:id/:collection/:itemId/permanent
func (h *PartnershipHandler) PurgeItem(c *gin.Context) {
	h.itemLifecycle(c, h.svc.PurgeItem, "Item permanently deleted")
}

func (h *PartnershipHandler) itemLifecycle(
	c *gin.Context,
	op func(ctx context.Context, partnerID string, collection partner.Collection, itemID string) error,
	message string,
) {
	collection, err := collectionParam(c)
	if err != nil {
		response.FromError(c, err)
		return
	}
	if err := op(c.Request.Context(), c.Param("id"), collection, c.Param("itemId")); err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessResponse(c, http.StatusOK, message, nil)
}
