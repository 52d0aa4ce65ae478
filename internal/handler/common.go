// Package handler provides HTTP handlers for API endpoints.
package handler

import (
	"net/http"
	"strconv"

	"classpoll/internal/services"
	"classpoll/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

func pollIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid poll id"))
		return 0, false
	}
	return uint(id), true
}

func writeError(c *gin.Context, err error) {
	c.JSON(services.HTTPStatus(err), httpdto.NewErrorResponse(err.Error()))
}
