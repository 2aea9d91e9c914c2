package handler

import (
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"projman/internal/errors"
	"projman/internal/service"
)

// DocumentHandler handles document endpoints.
type DocumentHandler struct {
	documentService service.DocumentService
}

// NewDocumentHandler creates a new document handler.
func NewDocumentHandler(documentService service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

func documentID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid document id")
	}
	return uint(id), nil
}

// openUpload converts a multipart header to the service's upload type.
// The returned closer must be closed by the caller.
func openUpload(fh *multipart.FileHeader) (service.UploadFile, multipart.File, error) {
	f, err := fh.Open()
	if err != nil {
		return service.UploadFile{}, nil, echo.NewHTTPError(http.StatusBadRequest, "unreadable file in request")
	}
	return service.UploadFile{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Content:     f,
	}, f, nil
}

// Upload godoc
// @Summary Upload one or more documents to a project
// @Tags documents
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Param files formData file true "Files to upload"
// @Success 201 {array} model.Document
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /projects/{id}/documents [post]
func (h *DocumentHandler) Upload(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return err
	}
	id, err := projectID(c)
	if err != nil {
		return err
	}

	var files []service.UploadFile
	form, err := c.MultipartForm()
	if err == nil {
		for _, fh := range form.File["files"] {
			upload, f, err := openUpload(fh)
			if err != nil {
				return err
			}
			defer f.Close()
			files = append(files, upload)
		}
	}

	documents, err := h.documentService.Upload(c.Request().Context(), id, user.ID, files)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, documents)
}

// List godoc
// @Summary List a project's documents with download URLs
// @Tags documents
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Success 200 {array} service.DocumentListing
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /projects/{id}/documents [get]
func (h *DocumentHandler) List(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return err
	}
	id, err := projectID(c)
	if err != nil {
		return err
	}

	listings, err := h.documentService.List(c.Request().Context(), id, user.ID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, listings)
}

// Download godoc
// @Summary Download a document via presigned URL
// @Tags documents
// @Security BearerAuth
// @Param id path int true "Document ID"
// @Success 307
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /documents/{id}/download [get]
func (h *DocumentHandler) Download(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return err
	}
	id, err := documentID(c)
	if err != nil {
		return err
	}

	url, err := h.documentService.DownloadURL(c.Request().Context(), id, user.ID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.Redirect(http.StatusTemporaryRedirect, url)
}

// Replace godoc
// @Summary Replace an existing document
// @Tags documents
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path int true "Document ID"
// @Param file formData file true "New file content"
// @Success 200 {object} model.Document
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /documents/{id} [put]
func (h *DocumentHandler) Replace(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return err
	}
	id, err := documentID(c)
	if err != nil {
		return err
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing file")
	}
	upload, f, err := openUpload(fh)
	if err != nil {
		return err
	}
	defer f.Close()

	document, err := h.documentService.Replace(c.Request().Context(), id, user.ID, upload)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, document)
}

// Delete godoc
// @Summary Delete a document
// @Tags documents
// @Security BearerAuth
// @Param id path int true "Document ID"
// @Success 204
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /documents/{id} [delete]
func (h *DocumentHandler) Delete(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return err
	}
	id, err := documentID(c)
	if err != nil {
		return err
	}

	if err := h.documentService.Delete(c.Request().Context(), id, user.ID); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.NoContent(http.StatusNoContent)
}
