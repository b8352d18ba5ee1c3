package memes

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"meme-backend/internal/apperr"
	"meme-backend/internal/shared/server/respond"
)

const (
	defaultPage     = 1
	defaultPageSize = 10
	maxPageSize     = 100

	// Slack over the file limit for multipart framing and the text field.
	formOverhead = 64 << 10
)

// Handler wires the /memes HTTP surface to the service.
type Handler struct {
	Svc          *Service
	MaxFileBytes int64
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, maxFileBytes int64) *Handler {
	return &Handler{Svc: svc, MaxFileBytes: maxFileBytes}
}

// RegisterRoutes attaches meme routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/memes", h.list)
	rg.GET("/memes/:id", h.read)
	rg.POST("/memes", h.create)
	rg.PUT("/memes/:id", h.update)
	rg.DELETE("/memes/:id", h.remove)
}

func (h *Handler) list(c *gin.Context) {
	page, err := queryInt(c, "page", defaultPage, 1, 0)
	if err != nil {
		respond.Failure(c, err)
		return
	}
	pageSize, err := queryInt(c, "page_size", defaultPageSize, 1, maxPageSize)
	if err != nil {
		respond.Failure(c, err)
		return
	}

	memes, err := h.Svc.List(c.Request.Context(), page, pageSize)
	if err != nil {
		respond.Failure(c, err)
		return
	}

	resp := make([]MemeResponse, 0, len(memes))
	for _, m := range memes {
		resp = append(resp, toResponse(m))
	}
	respond.OK(c, resp)
}

func (h *Handler) read(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respond.Failure(c, err)
		return
	}

	meme, stream, err := h.Svc.Read(c.Request.Context(), id)
	if err != nil {
		respond.Failure(c, err)
		return
	}
	defer stream.Close()
	c.Set("memeId", meme.ID.String())

	titleJSON, err := json.Marshal(gin.H{"text": meme.Title})
	if err != nil {
		respond.Failure(c, err)
		return
	}

	c.Header("Content-Type", "multipart/mixed")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.jpg", meme.ID))
	c.Header("Content-ID", string(titleJSON))
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, stream)
}

func (h *Handler) create(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxFileBytes+formOverhead)

	// Parse the multipart body before the field checks: an over-cap body
	// kills the parse and would otherwise read as every field missing.
	fh, ferr := c.FormFile("file")
	var maxErr *http.MaxBytesError
	if errors.As(ferr, &maxErr) {
		respond.Failure(c, ErrTooLargeFile.Wrap(ferr))
		return
	}

	title := c.PostForm("text")
	if title == "" {
		respond.Failure(c, apperr.MissingParam("text"))
		return
	}
	if ferr != nil {
		respond.Failure(c, classifyFormFileErr(ferr, true))
		return
	}
	data, err := ValidateUpload(fh, h.MaxFileBytes)
	if err != nil {
		respond.Failure(c, err)
		return
	}

	meme, err := h.Svc.Create(c.Request.Context(), title, data)
	if err != nil {
		respond.Failure(c, err)
		return
	}
	c.Set("memeId", meme.ID.String())

	respond.OK(c, okResponse("Meme added, id: "+meme.ID.String()))
}

func (h *Handler) update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respond.Failure(c, err)
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxFileBytes+formOverhead)

	// Both fields are optional; a request carrying neither is a no-op success.
	title := c.PostForm("text")

	var data []byte
	if fh, err := c.FormFile("file"); err == nil {
		data, err = ValidateUpload(fh, h.MaxFileBytes)
		if err != nil {
			respond.Failure(c, err)
			return
		}
	} else if ferr := classifyFormFileErr(err, false); ferr != nil {
		respond.Failure(c, ferr)
		return
	}

	if err := h.Svc.Update(c.Request.Context(), id, title, data); err != nil {
		respond.Failure(c, err)
		return
	}
	c.Set("memeId", id.String())

	respond.OK(c, okResponse("Meme successfully updated, id: "+id.String()))
}

func (h *Handler) remove(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respond.Failure(c, err)
		return
	}

	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		respond.Failure(c, err)
		return
	}
	c.Set("memeId", id.String())

	respond.OK(c, okResponse("Meme successfully deleted, id: "+id.String()))
}

func pathID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, apperr.ErrInvalidRequest.Wrap(err)
	}
	return id, nil
}

// queryInt parses an integer query parameter with bounds; max == 0 means
// unbounded above.
func queryInt(c *gin.Context, name string, def, min, max int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val < min || (max > 0 && val > max) {
		return 0, apperr.ErrInvalidRequest
	}
	return val, nil
}

// classifyFormFileErr translates a multipart file lookup failure. When the
// field is required, its absence names the missing parameter; when it is
// optional, absence (or a non-multipart body) is simply "no file".
func classifyFormFileErr(err error, required bool) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return ErrTooLargeFile.Wrap(err)
	}
	if required {
		if errors.Is(err, http.ErrMissingFile) {
			return apperr.MissingParam("file")
		}
		return apperr.ErrInvalidRequest.Wrap(err)
	}
	return nil
}
