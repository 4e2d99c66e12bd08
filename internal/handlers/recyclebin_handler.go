package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gravadigital/partnerships-api/internal/response"
	"github.com/gravadigital/partnerships-api/internal/services"
)

type RecycleBinHandler struct {
	svc *services.RecycleBinService
}

func NewRecycleBinHandler(svc *services.RecycleBinService) *RecycleBinHandler {
	return &RecycleBinHandler{svc: svc}
}

// List handles GET /api/recycle-bin
func (h *RecycleBinHandler) List(c *gin.Context) {
	bin, err := h.svc.List(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, bin)
}

// Empty handles DELETE /api/recycle-bin
func (h *RecycleBinHandler) Empty(c *gin.Context) {
	res, err := h.svc.Empty(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessResponse(c, http.StatusOK, "Recycle bin emptied", res)
}
