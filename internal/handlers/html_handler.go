package handlers

import (
	"grammable/internal/errs"

	"github.com/gin-gonic/gin"
)

type HtmlHandler struct{}

func NewHtmlHandler() *HtmlHandler {
	return &HtmlHandler{}
}

func (hh *HtmlHandler) NotFound(ctx *gin.Context) {
	renderError(ctx, []error{errs.ErrRouteNotFound})
}

func (hh *HtmlHandler) Health(ctx *gin.Context) {
	ctx.JSON(200, gin.H{"status": "ok"})
}
