package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/gravadigital/partnerships-api/internal/domain/common"
	"github.com/gravadigital/partnerships-api/internal/domain/partner"
)

// viewParam reads ?view=active|deleted|all, active by default
func viewParam(c *gin.Context) (common.View, error) {
	view, ok := common.ViewFromString(c.Query("view"))
	if !ok {
		return view, common.NewValidationError("view", "must be active, deleted or all")
	}
	return view, nil
}

func collectionParam(c *gin.Context) (partner.Collection, error) {
	collection, ok := partner.CollectionFromString(c.Param("collection"))
	if !ok {
		return collection, common.NotFoundf("collection %s", c.Param("collection"))
	}
	return collection, nil
}

// bindJSON decodes the body, reporting malformed payloads as validation errors
func bindJSON(c *gin.Context, v any) error {
	if err := c.ShouldBindJSON(v); err != nil {
		return common.NewValidationError("", "invalid request payload: "+err.Error())
	}
	return nil
}

func bindAndCall[T any, R any](c *gin.Context, call func(T) (R, error)) (R, error) {
	var in T
	if err := bindJSON(c, &in); err != nil {
		var zero R
		return zero, err
	}
	return call(in)
}
