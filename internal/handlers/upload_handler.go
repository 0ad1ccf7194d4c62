package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"clubhouse/internal/api/middleware"
	"clubhouse/internal/policy"
	"clubhouse/internal/services"
	"clubhouse/internal/utils/logger"
)

// UploadHandler is the file-store surface: uploads into per-uploader
// folders, listing, deletion and metadata-only renames. Blob paths are
// the identity; a rename never changes them.
type UploadHandler struct {
	storage *services.S3Service
	log     *logger.Logger
}

func NewUploadHandler(storage *services.S3Service) *UploadHandler {
	return &UploadHandler{
		storage: storage,
		log:     logger.New("upload_handler"),
	}
}

type renameRequest struct {
	Path string `json:"path" validate:"required"`
	Name string `json:"name" validate:"required"`
}

// UploadFile stores a multipart upload, stamping the uploader
// attribution into the blob metadata.
func (h *UploadHandler) UploadFile(c echo.Context) error {
	contentType := c.Request().Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "multipart/form-data") {
		return echo.NewHTTPError(http.StatusBadRequest, "Content-Type must be multipart/form-data")
	}

	actor := middleware.CurrentActor(c)
	if d := policy.Decide(policy.ActionCreate, actor, nil); !d.Allowed {
		return echo.NewHTTPError(http.StatusForbidden, d.Reason)
	}

	file, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "No file provided")
	}

	folder := c.FormValue("folder")
	if folder == "" {
		folder = "uploads"
	}

	src, err := file.Open()
	if err != nil {
		return h.log.Error("Failed to open uploaded file", err)
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		return h.log.Error("Failed to read uploaded file", err)
	}

	entry, err := h.storage.Upload(
		c.Request().Context(),
		content,
		folder,
		file.Filename,
		file.Header.Get("Content-Type"),
		middleware.CurrentUser(c),
	)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "File uploaded successfully",
		"file":    entry,
	})
}

// ListFiles lists stored entries under an optional prefix.
func (h *UploadHandler) ListFiles(c echo.Context) error {
	prefix := c.QueryParam("prefix")
	if prefix == "" {
		prefix = "files/"
	}

	entries, err := h.storage.List(c.Request().Context(), prefix)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}

// DeleteFile removes a blob. A file belongs to its uploader, so the
// ownership rule applies: admin always, editor only for own uploads.
func (h *UploadHandler) DeleteFile(c echo.Context) error {
	path := c.QueryParam("path")
	if path == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing path parameter")
	}

	entry, err := h.storage.Head(c.Request().Context(), path)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "file not found")
	}

	actor := middleware.CurrentActor(c)
	if d := policy.Decide(policy.ActionDelete, actor, entry); !d.Allowed {
		return echo.NewHTTPError(http.StatusForbidden, d.Reason)
	}

	if err := h.storage.Delete(c.Request().Context(), path); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// RenameFile updates only the display name in blob metadata. Renaming
// is curation, like reordering, so it is admin-only.
func (h *UploadHandler) RenameFile(c echo.Context) error {
	var req renameRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body: "+err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.storage.Rename(c.Request().Context(), req.Path, req.Name); err != nil {
		return err
	}

	entry, err := h.storage.Head(c.Request().Context(), req.Path)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entry)
}
