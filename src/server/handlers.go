package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"path"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	cfg "galleryserv/src/configuration"
	"galleryserv/src/model"
)

type (
	// GalleryAssembler produces the ordered record list for one render.
	GalleryAssembler interface {
		Assemble(ctx context.Context) ([]model.ImageRecord, error)
	}

	AppHandler struct {
		store   model.MediaStore
		gallery GalleryAssembler
		folder  string
	}
)

const uploadFileField = "file"

func NewHandler(config *cfg.Properties, store model.MediaStore, gallery GalleryAssembler) *AppHandler {
	return &AppHandler{
		store:   store,
		gallery: gallery,
		folder:  config.Gallery.Folder,
	}
}

func (a *AppHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// UploadImage relays exactly one multipart file per request into the media
// store under the configured folder. The route is registered for any method
// so that non-POST requests answer 405 without touching the store.
func (a *AppHandler) UploadImage(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method Not Allowed"})
		return
	}

	file, header, err := c.Request.FormFile(uploadFileField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			log.Printf("upload without file field: %v", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "File missing or invalid"})
			return
		}
		log.Printf("error parsing form: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error parsing form data"})
		return
	}
	defer file.Close()

	if header == nil || header.Filename == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File missing or invalid"})
		return
	}

	key := fmt.Sprintf("%s/%s%s", a.folder, uuid.New().String(), path.Ext(header.Filename))
	secureURL, err := a.store.UploadStream(c.Request.Context(), key, file, header.Size,
		header.Header.Get("Content-Type"))
	if err != nil {
		log.Printf("upload error for %s: %v", key, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "url": secureURL})
}

// GetImageList returns the assembled gallery as JSON, for the modal's
// prev/next navigation and API consumers.
func (a *AppHandler) GetImageList(c *gin.Context) {
	records, err := a.gallery.Assemble(c.Request.Context())
	if err != nil {
		c.IndentedJSON(http.StatusInternalServerError,
			gin.H{"message": "error", "error": fmt.Errorf("can not assemble gallery: %v", err).Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "payload": records})
}

// GetGallery renders the photo grid.
func (a *AppHandler) GetGallery(c *gin.Context) {
	a.renderGallery(c, -1)
}

// GetPhoto renders the grid with a modal overlay focused on one positional
// id. A non-numeric or out-of-range id falls back to the plain grid.
func (a *AppHandler) GetPhoto(c *gin.Context) {
	photoID, err := strconv.Atoi(c.Param("id"))
	if err != nil || photoID < 0 {
		c.Redirect(http.StatusFound, "/")
		return
	}
	a.renderGallery(c, photoID)
}

func (a *AppHandler) renderGallery(c *gin.Context, photoID int) {
	records, err := a.gallery.Assemble(c.Request.Context())
	if err != nil {
		log.Printf("gallery assembly failed: %v", err)
		c.HTML(http.StatusInternalServerError, "gallery.html", gin.H{
			"Error": "can not load gallery",
		})
		return
	}

	data := gin.H{"Images": records, "PhotoID": photoID}
	if photoID >= 0 && photoID < len(records) {
		data["Current"] = records[photoID]
		data["HasPrev"] = photoID > 0
		data["PrevID"] = photoID - 1
		data["HasNext"] = photoID < len(records)-1
		data["NextID"] = photoID + 1
	}
	c.HTML(http.StatusOK, "gallery.html", data)
}
