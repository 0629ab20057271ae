package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testFile struct {
	field       string
	filename    string
	contentType string
	content     []byte
}

func multipartRequest(t *testing.T, target string, files ...testFile) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for _, f := range files {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", `form-data; name="`+f.field+`"; filename="`+f.filename+`"`)
		header.Set("Content-Type", f.contentType)
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(f.content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func TestUploadImageStoresUnderTimestampedKey(t *testing.T) {
	objectStorage := newFakeStorage()
	uc := NewUploadController(objectStorage)

	c, rec := multipartRequest(t, "/api/upload/image", testFile{
		field: "image", filename: "front porch.jpg", contentType: "image/jpeg", content: []byte("jpegdata"),
	})
	require.NoError(t, uc.UploadImage(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	decodeBody(t, rec, &resp)
	key := resp["imageKey"].(string)
	assert.True(t, strings.HasPrefix(key, "properties/"), "key %q should be prefixed", key)
	assert.True(t, strings.HasSuffix(key, "-front-porch.jpg"), "key %q should keep a sanitized filename", key)
	assert.Contains(t, resp["imageUrl"].(string), key)
	assert.Equal(t, "front porch.jpg", resp["filename"])

	_, stored := objectStorage.objects[key]
	assert.True(t, stored)
}

func TestUploadImageRejectsNonImage(t *testing.T) {
	uc := NewUploadController(newFakeStorage())

	c, rec := multipartRequest(t, "/api/upload/image", testFile{
		field: "image", filename: "listing.pdf", contentType: "application/pdf", content: []byte("%PDF"),
	})
	require.NoError(t, uc.UploadImage(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadImageRejectsOversizedFile(t *testing.T) {
	uc := NewUploadController(newFakeStorage())

	c, rec := multipartRequest(t, "/api/upload/image", testFile{
		field: "image", filename: "huge.jpg", contentType: "image/jpeg",
		content: bytes.Repeat([]byte("x"), maxFileSize+1),
	})
	require.NoError(t, uc.UploadImage(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadImageMissingFile(t *testing.T) {
	uc := NewUploadController(newFakeStorage())

	c, rec := multipartRequest(t, "/api/upload/image")
	require.NoError(t, uc.UploadImage(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadImagesPartialFailureKeepsSiblings(t *testing.T) {
	objectStorage := newFakeStorage()
	uc := NewUploadController(objectStorage)

	c, rec := multipartRequest(t, "/api/upload/images",
		testFile{field: "images", filename: "a.jpg", contentType: "image/jpeg", content: []byte("a")},
		testFile{field: "images", filename: "b.txt", contentType: "text/plain", content: []byte("b")},
		testFile{field: "images", filename: "c.png", contentType: "image/png", content: []byte("c")},
	)
	require.NoError(t, uc.UploadImages(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Images []UploadedImage `json:"images"`
		Errors []string        `json:"errors"`
	}
	decodeBody(t, rec, &resp)
	assert.Len(t, resp.Images, 2)
	assert.Len(t, resp.Errors, 1)
	assert.Len(t, objectStorage.objects, 2)
}

func TestUploadImagesRejectsTooManyFiles(t *testing.T) {
	uc := NewUploadController(newFakeStorage())

	files := make([]testFile, maxFiles+1)
	for i := range files {
		files[i] = testFile{field: "images", filename: "f.jpg", contentType: "image/jpeg", content: []byte("x")}
	}
	c, rec := multipartRequest(t, "/api/upload/images", files...)
	require.NoError(t, uc.UploadImages(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteImageSoftSucceedsWhenStorageUnavailable(t *testing.T) {
	objectStorage := newFakeStorage()
	objectStorage.available = false
	uc := NewUploadController(objectStorage)

	c, rec := jsonRequest(t, http.MethodDelete, "/api/upload/image/properties%2F123-a.jpg", nil)
	c.SetParamNames("key")
	c.SetParamValues("properties%2F123-a.jpg")
	require.NoError(t, uc.DeleteImage(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUploadImageFailsWhenStorageUnavailable(t *testing.T) {
	objectStorage := newFakeStorage()
	objectStorage.available = false
	uc := NewUploadController(objectStorage)

	c, rec := multipartRequest(t, "/api/upload/image", testFile{
		field: "image", filename: "a.jpg", contentType: "image/jpeg", content: []byte("a"),
	})
	require.NoError(t, uc.UploadImage(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "front-porch.jpg", sanitizeFilename("front porch.jpg"))
	assert.Equal(t, "a.jpg", sanitizeFilename("../../a.jpg"))
	assert.NotEmpty(t, sanitizeFilename("日本語のみ"))
}
