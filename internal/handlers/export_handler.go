package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gravadigital/partnerships-api/internal/domain/common"
	"github.com/gravadigital/partnerships-api/internal/domain/partner"
	"github.com/gravadigital/partnerships-api/internal/export"
	"github.com/gravadigital/partnerships-api/internal/response"
	"github.com/gravadigital/partnerships-api/internal/services"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	csvContentType  = "text/csv; charset=utf-8"
)

type ExportHandler struct {
	partnerships *services.PartnershipService
	globalEvents *services.GlobalEventService
	now          func() time.Time
}

func NewExportHandler(partnerships *services.PartnershipService, globalEvents *services.GlobalEventService) *ExportHandler {
	return &ExportHandler{
		partnerships: partnerships,
		globalEvents: globalEvents,
		now:          time.Now,
	}
}

// PartnershipWorkbook handles GET /api/partnerships/:id/export.xlsx
func (h *ExportHandler) PartnershipWorkbook(c *gin.Context) {
	d, err := h.partnerships.GetPartnership(c.Request.Context(), c.Param("id"), common.ViewActive)
	if err != nil {
		response.FromError(c, err)
		return
	}
	if d.Partner.IsDeleted() {
		response.FromError(c, common.NotFoundf("partner %s", c.Param("id")))
		return
	}

	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, export.Workbook([]*partner.PartnershipData{d})); err != nil {
		response.FromError(c, err)
		return
	}
	h.attach(c, d.Partner.Slug+".xlsx", xlsxContentType, buf.Bytes())
}

// AllWorkbook handles GET /api/exports/partnerships.xlsx
func (h *ExportHandler) AllWorkbook(c *gin.Context) {
	ctx := c.Request.Context()
	list, err := h.partnerships.ListPartnerships(ctx, common.ViewActive)
	if err != nil {
		response.FromError(c, err)
		return
	}
	events, err := h.globalEvents.List(ctx, common.ViewActive)
	if err != nil {
		response.FromError(c, err)
		return
	}

	sheets := append(export.Workbook(list), export.GlobalEventsSheet(events))
	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, sheets); err != nil {
		response.FromError(c, err)
		return
	}
	h.attach(c, h.filename("xlsx"), xlsxContentType, buf.Bytes())
}

// AllCSV handles GET /api/exports/partnerships.csv
func (h *ExportHandler) AllCSV(c *gin.Context) {
	list, err := h.partnerships.ListPartnerships(c.Request.Context(), common.ViewActive)
	if err != nil {
		response.FromError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, export.PartnersSheet(list)); err != nil {
		response.FromError(c, err)
		return
	}
	h.attach(c, h.filename("csv"), csvContentType, buf.Bytes())
}

func (h *ExportHandler) filename(ext string) string {
	return fmt.Sprintf("partnerships-%s.%s", common.FormatDate(h.now()), ext)
}

func (h *ExportHandler) attach(c *gin.Context, filename, contentType string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, contentType, data)
}
