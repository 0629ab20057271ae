package handlers

import (
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/DeshmukhRuturaj/BROKER-FREE/storage"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	maxFileSize = 5 * 1024 * 1024
	maxFiles    = 10
)

type UploadedImage struct {
	URL      string `json:"url"`
	Key      string `json:"key"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	MimeType string `json:"mimetype"`
}

type UploadController struct {
	storage storage.ObjectStorage
}

func NewUploadController(objectStorage storage.ObjectStorage) *UploadController {
	return &UploadController{storage: objectStorage}
}

func (uc *UploadController) UploadImage(c echo.Context) error {
	file, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "No file uploaded"})
	}

	image, status, msg := uc.putFile(c, file)
	if msg != "" {
		return c.JSON(status, map[string]string{"message": msg})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "Image uploaded successfully",
		"imageUrl": image.URL,
		"imageKey": image.Key,
		"filename": image.Filename,
	})
}

// UploadImages transfers the batch concurrently. A failed file does not roll
// back its siblings.
func (uc *UploadController) UploadImages(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "No files uploaded"})
	}
	files := form.File["images"]
	if len(files) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "No files uploaded"})
	}
	if len(files) > maxFiles {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": fmt.Sprintf("Too many files. Maximum is %d files.", maxFiles)})
	}

	type result struct {
		image UploadedImage
		msg   string
	}
	results := make([]result, len(files))

	var wg sync.WaitGroup
	for i, file := range files {
		wg.Add(1)
		go func(i int, file *multipart.FileHeader) {
			defer wg.Done()
			image, _, msg := uc.putFile(c, file)
			results[i] = result{image: image, msg: msg}
		}(i, file)
	}
	wg.Wait()

	uploaded := []UploadedImage{}
	failed := []string{}
	for i, r := range results {
		if r.msg != "" {
			failed = append(failed, fmt.Sprintf("%s: %s", files[i].Filename, r.msg))
			continue
		}
		uploaded = append(uploaded, r.image)
	}

	if len(uploaded) == 0 {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"message": "Upload failed",
			"errors":  failed,
		})
	}

	resp := map[string]interface{}{
		"message": "Images uploaded successfully",
		"images":  uploaded,
	}
	if len(failed) > 0 {
		resp["errors"] = failed
	}
	return c.JSON(http.StatusOK, resp)
}

func (uc *UploadController) DeleteImage(c echo.Context) error {
	key, err := url.PathUnescape(c.Param("key"))
	if err != nil || key == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid image key"})
	}

	if uc.storage.Delete(c.Request().Context(), key) {
		return c.JSON(http.StatusOK, map[string]string{"message": "Image deleted successfully"})
	}
	return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to delete image"})
}

// putFile validates and uploads a single file; a non-empty message signals
// failure together with the status to return.
func (uc *UploadController) putFile(c echo.Context, file *multipart.FileHeader) (UploadedImage, int, string) {
	if file.Size > maxFileSize {
		return UploadedImage{}, http.StatusBadRequest, "File too large. Maximum size is 5MB."
	}

	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return UploadedImage{}, http.StatusBadRequest, "Only image files are allowed"
	}

	src, err := file.Open()
	if err != nil {
		return UploadedImage{}, http.StatusInternalServerError, "Upload failed"
	}
	defer src.Close()

	body, err := io.ReadAll(io.LimitReader(src, maxFileSize+1))
	if err != nil {
		return UploadedImage{}, http.StatusInternalServerError, "Upload failed"
	}
	if int64(len(body)) > maxFileSize {
		return UploadedImage{}, http.StatusBadRequest, "File too large. Maximum size is 5MB."
	}

	key := fmt.Sprintf("properties/%d-%s", time.Now().UnixMilli(), sanitizeFilename(file.Filename))
	imageURL, err := uc.storage.Put(c.Request().Context(), key, body, contentType)
	if err != nil {
		log.Printf("Upload error for %s: %v", file.Filename, err)
		return UploadedImage{}, http.StatusInternalServerError, "Upload failed"
	}

	return UploadedImage{
		URL:      imageURL,
		Key:      key,
		Filename: file.Filename,
		Size:     file.Size,
		MimeType: contentType,
	}, 0, ""
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, " ", "-")
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '_':
			return r
		}
		return -1
	}, name)
	if name == "" || name == "." {
		return uuid.New().String()
	}
	return name
}
