package handlers

import (
	"errors"
	"grammable/internal/models"
	"grammable/internal/msgs"
	"grammable/internal/services"
	"grammable/internal/utils"
	"grammable/internal/web"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

type GramHandler struct {
	gramService *services.GramService
}

func NewGramHandler(gramService *services.GramService) *GramHandler {
	return &GramHandler{
		gramService: gramService,
	}
}

// Index godoc
// @Summary      List grams
// @Description  Newest first, with owner and comments
// @Tags         grams
// @Produce      json,html
// @Param        page  query     int  false  "Page"       default(1)
// @Param        size  query     int  false  "Page size"  default(20)
// @Success      200   {object}  models.Response{data=models.GramListResponse}
// @Failure      500   {object}  models.Response
// @Router       /grams [get]
func (gh *GramHandler) Index(ctx *gin.Context) {
	page, size := utils.ParsePageAndSize(ctx.Query("page"), ctx.Query("size"))

	list, errors := gh.gramService.ListGrams(page, size)
	if len(errors) > 0 {
		renderError(ctx, errors)
		return
	}

	nextPage := 0
	if int64(page*size) < list.Total {
		nextPage = page + 1
	}
	view := web.GramsIndex(newPage(ctx, "Grams", nil), list.Grams, page-1, nextPage, size)
	render(ctx, http.StatusOK, view, list, nil)
}

// New godoc
// @Summary      New gram form
// @Tags         grams
// @Produce      html
// @Success      200
// @Failure      302
// @Router       /grams/new [get]
func (gh *GramHandler) New(ctx *gin.Context) {
	render(ctx, http.StatusOK, web.GramsNew(newPage(ctx, "New Gram", nil), ""), nil, nil)
}

// Create godoc
// @Summary      Create a gram
// @Description  Message is required, picture is optional
// @Tags         grams
// @Accept       multipart/form-data,x-www-form-urlencoded,json
// @Produce      json,html
// @Param        message  formData  string  true   "Message"
// @Param        picture  formData  file    false  "Picture"
// @Success      302      {object}  models.Response{data=models.GramResponse}
// @Failure      422      {object}  models.Response
// @Router       /grams [post]
func (gh *GramHandler) Create(ctx *gin.Context) {
	var form models.GramForm
	if err := ctx.ShouldBind(&form); err != nil {
		log.WithError(err).Debug("Error gram form binding")
		renderError(ctx, []error{bindError(err)})
		return
	}

	gram, errors := gh.gramService.CreateGram(
		ctx.Request.Context(),
		utils.GetUserIdFromContext(ctx),
		&form,
		pictureFromRequest(ctx),
	)
	if len(errors) > 0 {
		if httpStatus(errors) != http.StatusUnprocessableEntity {
			renderError(ctx, errors)
			return
		}
		render(ctx, http.StatusUnprocessableEntity, web.GramsNew(newPage(ctx, "New Gram", errors), form.Message), nil, errors)
		return
	}

	redirect(ctx, RootPath, msgs.MsgGramCreated, gram.ToGramResponse())
}

// Show godoc
// @Summary      Show a gram
// @Tags         grams
// @Produce      json,html
// @Param        id   path      int  true  "Gram ID"
// @Success      200  {object}  models.Response{data=models.GramResponse}
// @Failure      404  {object}  models.Response
// @Router       /grams/{id} [get]
func (gh *GramHandler) Show(ctx *gin.Context) {
	gram, errors := gh.gramService.GetGram(utils.ParseID(ctx.Param("id")))
	if len(errors) > 0 {
		renderError(ctx, errors)
		return
	}

	response := gram.ToGramResponse()
	render(ctx, http.StatusOK, web.GramsShow(newPage(ctx, "Gram", nil), response), response, nil)
}

// Edit godoc
// @Summary      Edit gram form
// @Tags         grams
// @Produce      json,html
// @Param        id   path      int  true  "Gram ID"
// @Success      200  {object}  models.Response{data=models.GramResponse}
// @Failure      403  {object}  models.Response
// @Failure      404  {object}  models.Response
// @Router       /grams/{id}/edit [get]
func (gh *GramHandler) Edit(ctx *gin.Context) {
	gram, errors := gh.gramService.GetOwnedGram(
		utils.ParseID(ctx.Param("id")),
		utils.GetUserIdFromContext(ctx),
	)
	if len(errors) > 0 {
		renderError(ctx, errors)
		return
	}

	response := gram.ToGramResponse()
	render(ctx, http.StatusOK, web.GramsEdit(newPage(ctx, "Edit Gram", nil), response, gram.Message), response, nil)
}

// Update godoc
// @Summary      Update a gram message
// @Tags         grams
// @Accept       x-www-form-urlencoded,json
// @Produce      json,html
// @Param        id       path      int     true  "Gram ID"
// @Param        message  formData  string  true  "Message"
// @Success      302      {object}  models.Response{data=models.GramResponse}
// @Failure      403      {object}  models.Response
// @Failure      404      {object}  models.Response
// @Failure      422      {object}  models.Response
// @Router       /grams/{id} [patch]
// @Router       /grams/{id} [put]
func (gh *GramHandler) Update(ctx *gin.Context) {
	var form models.GramForm
	if err := ctx.ShouldBind(&form); err != nil {
		log.WithError(err).Debug("Error gram form binding")
		renderError(ctx, []error{bindError(err)})
		return
	}

	gram, errors := gh.gramService.UpdateGram(
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
		page := newPage(ctx, "Edit Gram", errors)
		render(ctx, http.StatusUnprocessableEntity, web.GramsEdit(page, gram.ToGramResponse(), form.Message), nil, errors)
		return
	}

	redirect(ctx, RootPath, msgs.MsgGramUpdated, gram.ToGramResponse())
}

// Destroy godoc
// @Summary      Delete a gram and its comments
// @Tags         grams
// @Produce      json,html
// @Param        id   path      int  true  "Gram ID"
// @Success      302  {object}  models.Response
// @Failure      403  {object}  models.Response
// @Failure      404  {object}  models.Response
// @Router       /grams/{id} [delete]
func (gh *GramHandler) Destroy(ctx *gin.Context) {
	errors := gh.gramService.DestroyGram(
		ctx.Request.Context(),
		utils.ParseID(ctx.Param("id")),
		utils.GetUserIdFromContext(ctx),
	)
	if len(errors) > 0 {
		renderError(ctx, errors)
		return
	}

	redirect(ctx, RootPath, msgs.MsgGramDestroyed, nil)
}

// pictureFromRequest returns nil when no picture was attached.
func pictureFromRequest(ctx *gin.Context) *multipart.FileHeader {
	picture, err := ctx.FormFile("picture")
	if err != nil {
		if !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart) {
			log.WithError(err).Debug("Ignoring picture field")
		}
		return nil
	}
	return picture
}
