package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"brainshift/internal/middleware"
	"brainshift/internal/service"
	"brainshift/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"
)

const maxPageSize = 100

// currentUserID reads the authenticated user or writes a 401.
func currentUserID(c *gin.Context) (uint, bool) {
	id, ok := middleware.CurrentUserID(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return 0, false
	}
	return id, true
}

// respondError maps a service error onto the response envelope. Anything
// that is not a client error is logged and hidden behind a generic message.
func respondError(c *gin.Context, log hclog.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, service.Message(err))
	case errors.Is(err, service.ErrNotFound):
		util.Error(c, http.StatusNotFound, util.CodeNotFound, service.Message(err))
	case errors.Is(err, service.ErrConflict):
		util.Error(c, http.StatusConflict, util.CodeConflict, service.Message(err))
	default:
		log.Error("request failed", "method", c.Request.Method, "route", c.FullPath(), "error", err)
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "internal server error")
	}
}

// pagination reads page and page_size, falling back to def and capping the
// size at maxPageSize.
func pagination(c *gin.Context, def int) (page, size, offset int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}
	size, _ = strconv.Atoi(c.Query("page_size"))
	if size <= 0 {
		size = def
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return page, size, (page - 1) * size
}

// isEmptyBody reports whether a bind error only means "no body".
func isEmptyBody(err error) bool {
	return errors.Is(err, io.EOF)
}
