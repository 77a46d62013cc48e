package handler

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"regexp"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/beanoshub/booking-backend/internal/client"
	"github.com/beanoshub/booking-backend/internal/config"
)

// MediaStore is the hosted media service surface used by the handlers.
// Satisfied by client.MediaClient.
type MediaStore interface {
	Upload(ctx context.Context, folder string, file io.Reader, filename string) (string, error)
	LatestImage(ctx context.Context, folder string) (string, error)
}

// theatreFolders are the galleries shown on the booking site; each holds
// one current image.
var theatreFolders = []string{"birthday", "couple", "private"}

// placeholderURL is served for a folder with no uploaded image yet.
const placeholderURL = "https://via.placeholder.com/600x400?text="

var theatreName = regexp.MustCompile(`^[a-z0-9-]{1,40}$`)

// MediaHandler serves theatre image upload and listing.
type MediaHandler struct {
	Cfg   config.Config
	Media MediaStore
}

func NewMediaHandler(cfg config.Config, m MediaStore) *MediaHandler {
	return &MediaHandler{Cfg: cfg, Media: m}
}

// Upload handles POST /upload/:theatre (admin only).  The multipart
// "image" file is streamed through to the media service; the stored URL
// comes back to the caller.
func (h *MediaHandler) Upload(c echo.Context) error {
	theatre := c.Param("theatre")
	if !theatreName.MatchString(theatre) {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid theatre name"})
	}

	fh, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "No file uploaded"})
	}
	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "unreadable upload"})
	}
	defer src.Close()

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.Cfg.HTTPTimeout+time.Second)
	defer cancel()

	url, err := h.Media.Upload(ctx, "theatres/"+theatre, src, fh.Filename)
	if err != nil {
		if errors.Is(err, client.ErrMediaNotConfigured) {
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "media service not configured"})
		}
		log.Printf("upload: theatre=%s failed: %v", theatre, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Upload failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Upload successful", "url": url})
}

// Images handles GET /api/images: the latest stored image URL per theatre
// folder, with a placeholder for folders that have none.  The route sits
// behind the response cache, so the media service is consulted at most once
// per cache TTL.
func (h *MediaHandler) Images(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.Cfg.HTTPTimeout+time.Second)
	defer cancel()

	urls := make(map[string]string, len(theatreFolders))
	for _, folder := range theatreFolders {
		url, err := h.Media.LatestImage(ctx, "theatres/"+folder)
		if err != nil {
			log.Printf("images: folder=%s lookup failed: %v", folder, err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch images"})
		}
		if url == "" {
			url = placeholderURL + folder
		}
		urls[folder] = url
	}
	return c.JSON(http.StatusOK, urls)
}
