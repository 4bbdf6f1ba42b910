package handler

import (
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/guruapp/backend/pkg/httpcontext"
	listingUC "github.com/guruapp/backend/usecase/listing"
)

type ItemHandler struct {
	baseHandler
	uc *listingUC.UseCase
}

func NewItemHandler(uc *listingUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *ItemHandler {
	return &ItemHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Create a listing (multipart: title, description, price, kind, owner_id, file?, image?)
// @Tags items
// @Router /api/v1/items [post]
func (h *ItemHandler) Create(ctx *fasthttp.RequestCtx) {
	form, err := ctx.MultipartForm()
	if err != nil {
		h.respondInvalid(ctx, "multipart form expected")
		return
	}

	input := listingUC.CreateInput{
		OwnerID:     formValue(form, "owner_id"),
		Title:       formValue(form, "title"),
		Description: formValue(form, "description"),
		Kind:        formValue(form, "kind"),
	}
	if raw := formValue(form, "price"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			h.respondInvalid(ctx, "price must be a number")
			return
		}
		input.Price = price
	}
	if input.OwnerID == "" {
		h.respondInvalid(ctx, "owner_id is required")
		return
	}

	file, closeFile, err := formUpload(form, "file")
	if err != nil {
		h.respondInvalid(ctx, "unreadable file upload")
		return
	}
	defer closeFile()
	image, closeImage, err := formUpload(form, "image")
	if err != nil {
		h.respondInvalid(ctx, "unreadable image upload")
		return
	}
	defer closeImage()
	input.File = file
	input.Image = image

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	item, err := h.uc.Create(stdCtx, input)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, item)
}

// @Summary List active listings
// @Tags items
// @Router /api/v1/items [get]
func (h *ItemHandler) List(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	items, err := h.uc.ListActive(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, items)
}

// @Summary Get a listing by id
// @Tags items
// @Router /api/v1/items/{id} [get]
func (h *ItemHandler) Get(ctx *fasthttp.RequestCtx) {
	id := h.pathValue(ctx, "id")
	if id == "" {
		h.respondInvalid(ctx, "missing item id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	item, err := h.uc.Get(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, item)
}

// @Summary Download a stored listing file
// @Tags items
// @Router /uploads/{filename} [get]
func (h *ItemHandler) Download(ctx *fasthttp.RequestCtx) {
	name := h.pathValue(ctx, "filename")
	file, err := h.uc.OpenFile(name)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	defer file.Close()

	ctx.Response.Header.SetContentType("application/octet-stream")
	ctx.Response.Header.Set("Content-Disposition", `attachment; filename="`+name+`"`)
	ctx.SetStatusCode(http.StatusOK)
	if _, err := io.Copy(ctx.Response.BodyWriter(), file); err != nil {
		h.logger.Warn("file download aborted", zap.String("file", name), zap.Error(err))
	}
}

func formValue(form *multipart.Form, key string) string {
	if values := form.Value[key]; len(values) > 0 {
		return values[0]
	}
	return ""
}

func formUpload(form *multipart.Form, key string) (*listingUC.Upload, func(), error) {
	headers := form.File[key]
	if len(headers) == 0 {
		return nil, func() {}, nil
	}
	f, err := headers[0].Open()
	if err != nil {
		return nil, func() {}, err
	}
	return &listingUC.Upload{Name: headers[0].Filename, Content: f}, func() { f.Close() }, nil
}
