package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/validators"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

func currentUserID(c *gin.Context) uint {
	return c.GetUint(middleware.ContextUserID)
}

func currentRole(c *gin.Context) models.Role {
	return models.Role(c.GetString(middleware.ContextUserRole))
}

func pageParams(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil || page < 0 {
		page = 0
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(defaultPageSize)))
	if err != nil || size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return page, size
}

func idParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		httperr.BadRequest(c, "Invalid "+name)
		return 0, false
	}
	return uint(v), true
}

// bindJSON decodes the body and enforces its binding tags. A failed tag is
// reported by field name.
func bindJSON(c *gin.Context, dst any) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}
	var fe *validators.FieldError
	if errors.As(validators.FromError(err), &fe) {
		httperr.BadRequest(c, fe.Error())
		return false
	}
	httperr.BadRequest(c, "Invalid request body")
	return false
}

// writeError maps use case and validation errors onto the API error body.
func writeError(c *gin.Context, err error) {
	var be httperr.BusinessError
	switch {
	case errors.As(err, &be):
		status := http.StatusBadRequest
		if strings.HasSuffix(be.Code, "not_found") {
			status = http.StatusNotFound
		}
		httperr.Write(c, status, be.Error())
	case errors.Is(err, validators.ErrValidation):
		httperr.BadRequest(c, err.Error())
	default:
		zap.L().Error("sandbox request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		httperr.Internal(c, "Internal server error")
	}
}

func parsePositive(raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, strconv.ErrRange
	}
	return n, nil
}
