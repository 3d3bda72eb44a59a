package panorama

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/airgo3d/panorama-api/internal/metrics"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RegisterRoutes mounts the catalogue operations under the provided group.
func RegisterRoutes(group *gin.RouterGroup, service *Service) {
	handler := &httpHandler{service: service}
	group.GET("/panoramas", handler.listPanoramas)
	group.GET("/panoramas/stats", handler.panoramaStats)
	group.POST("/panoramas", handler.uploadPanorama)
	group.DELETE("/panoramas/:id", handler.deletePanorama)
	group.POST("/panoramas/:id/bookmark", handler.toggleBookmark)
}

// RegisterImageRoutes mounts the blob read paths under the provided group
// (conventionally /api, matching the locators stored on records).
func RegisterImageRoutes(group *gin.RouterGroup, service *Service) {
	handler := &httpHandler{service: service}
	group.GET("/image-preview/:key", handler.preview)
	group.GET("/image-thumbnail/:key", handler.thumbnail)
}

type httpHandler struct {
	service *Service
}

func (h *httpHandler) listPanoramas(c *gin.Context) {
	var f Filter
	f.Search = c.Query("search")

	if raw := c.Query("isBookmarked"); raw != "" {
		val, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid isBookmarked value"})
			return
		}
		f.IsBookmarked = &val
	}
	if raw := c.Query("limit"); raw != "" {
		val, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit value"})
			return
		}
		f.Limit = val
	}
	if raw := c.Query("offset"); raw != "" {
		val, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid offset value"})
			return
		}
		f.Offset = val
	}

	page, err := h.service.List(c.Request.Context(), f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list panoramas"})
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *httpHandler) panoramaStats(c *gin.Context) {
	stats, err := h.service.GetStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *httpHandler) uploadPanorama(c *gin.Context) {
	name := c.PostForm("name")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		metrics.ObserveUpload("invalid")
		c.JSON(http.StatusBadRequest, gin.H{"error": "file field is required"})
		return
	}

	record, err := h.service.Upload(c.Request.Context(), name, fileHeader)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidUpload):
			metrics.ObserveUpload("invalid")
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, ErrFileTooLarge):
			metrics.ObserveUpload("invalid")
			c.JSON(http.StatusBadRequest, gin.H{"error": "file too large"})
		case errors.Is(err, ErrDecodeFailed):
			metrics.ObserveUpload("decode_failed")
			c.JSON(http.StatusBadRequest, gin.H{"error": "file is not a decodable image"})
		default:
			metrics.ObserveUpload("storage_error")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload panorama"})
		}
		return
	}

	metrics.ObserveUpload("ok")
	c.JSON(http.StatusCreated, record)
}

func (h *httpHandler) deletePanorama(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid panorama id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrPanoramaNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "panorama not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete panorama"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *httpHandler) toggleBookmark(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid panorama id"})
		return
	}

	record, err := h.service.ToggleBookmark(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrPanoramaNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "panorama not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to toggle bookmark"})
		return
	}

	c.JSON(http.StatusOK, record)
}

func (h *httpHandler) preview(c *gin.Context) {
	record, reader, err := h.service.OpenOriginal(c.Request.Context(), c.Param("key"))
	if err != nil {
		if errors.Is(err, ErrPanoramaNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "image not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch image"})
		return
	}
	defer reader.Close()

	streamBlob(c, reader, record.MimeType, record.OriginalName)
}

func (h *httpHandler) thumbnail(c *gin.Context) {
	record, reader, err := h.service.OpenThumbnail(c.Request.Context(), c.Param("key"))
	if err != nil {
		if errors.Is(err, ErrPanoramaNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "thumbnail not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch thumbnail"})
		return
	}
	defer reader.Close()

	// Thumbnails are always re-encoded as JPEG regardless of source format.
	streamBlob(c, reader, "image/jpeg", record.OriginalName)
}

// streamBlob writes blob bytes with the headers the 3D viewer needs: an
// inline disposition and a resource policy permitting cross-origin embedding.
func streamBlob(c *gin.Context, reader io.Reader, contentType, originalName string) {
	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", originalName))
	c.Header("Cross-Origin-Resource-Policy", "cross-origin")

	if _, err := io.Copy(c.Writer, reader); err != nil {
		c.Status(http.StatusInternalServerError)
	}
}
