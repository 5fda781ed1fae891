package handlers

import (
	"grammable/internal/models"
	"grammable/internal/msgs"
	"grammable/internal/services"
	"grammable/internal/utils"
	"grammable/internal/web"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

type CommentHandler struct {
	gramService    *services.GramService
	commentService *services.CommentService
}

func NewCommentHandler(gramService *services.GramService, commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{
		gramService:    gramService,
		commentService: commentService,
	}
}

// New godoc
// @Summary      New comment form
// @Tags         comments
// @Produce      json,html
// @Param        id   path      int  true  "Gram ID"
// @Success      200  {object}  models.Response{data=models.GramResponse}
// @Failure      404  {object}  models.Response
// @Router       /grams/{id}/comments/new [get]
func (ch *CommentHandler) New(ctx *gin.Context) {
	gram, errors := ch.gramService.GetGram(utils.ParseID(ctx.Param("id")))
	if len(errors) > 0 {
		renderError(ctx, errors)
		return
	}

	response := gram.ToGramResponse()
	render(ctx, http.StatusOK, web.CommentsNew(newPage(ctx, "New Comment", nil), response, ""), response, nil)
}

// Create godoc
// @Summary      Comment on a gram
// @Tags         comments
// @Accept       x-www-form-urlencoded,json
// @Produce      json,html
// @Param        id       path      int     true  "Gram ID"
// @Param        message  formData  string  true  "Message"
// @Success      302      {object}  models.Response{data=models.CommentResponse}
// @Failure      404      {object}  models.Response
// @Failure      422      {object}  models.Response
// @Router       /grams/{id}/comments [post]
func (ch *CommentHandler) Create(ctx *gin.Context) {
	var form models.CommentForm
	if err := ctx.ShouldBind(&form); err != nil {
		log.WithError(err).Debug("Error comment form binding")
		renderError(ctx, []error{bindError(err)})
		return
	}

	comment, gram, errors := ch.commentService.CreateComment(
		ctx.Request.Context(),
		utils.ParseID(ctx.Param("id")),
		utils.GetUserIdFromContext(ctx),
		&form,
	)
	if len(errors) > 0 {
		if httpStatus(errors) != http.StatusUnprocessableEntity {
			renderError(ctx, errors)
			return
		}
		page := newPage(ctx, "New Comment", errors)
		render(ctx, http.StatusUnprocessableEntity, web.CommentsNew(page, gram.ToGramResponse(), form.Message), nil, errors)
		return
	}

	redirect(ctx, RootPath, msgs.MsgCommentCreated, comment.ToCommentResponse())
}
