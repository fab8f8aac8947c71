// server/internal/api/handlers/classify_handler.go
package handlers

import (
	"context"
	"io"
	"net/http"

	"healthcare-waste-api-server/internal/classify"
	"healthcare-waste-api-server/internal/s3"

	"github.com/gin-gonic/gin"
)

// ObjectUploader is the part of the S3 uploader the handler needs.
type ObjectUploader interface {
	UploadFile(ctx context.Context, file io.Reader, objectKey string) (string, error)
}

// WasteClassifier is the part of the Groq classifier the handler needs.
type WasteClassifier interface {
	Classify(ctx context.Context, imageURL string) (*classify.Result, error)
}

type ClassifyHandler struct {
	Uploader   ObjectUploader
	Classifier WasteClassifier
	Env        string
}

// Classify uploads the posted image to object storage and asks the
// vision model for a waste category and treatment steps. Any upload,
// model or parse failure is a plain 500; there are no retries.
func (h *ClassifyHandler) Classify(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "No image file sent."})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		serverError(c, h.Env, "Classification failed.", err)
		return
	}
	defer file.Close()

	uploadCtx, cancelUpload := context.WithTimeout(c.Request.Context(), uploadTimeout)
	defer cancelUpload()

	publicURL, err := h.Uploader.UploadFile(uploadCtx, file, s3.ObjectKey(fileHeader.Filename))
	if err != nil {
		serverError(c, h.Env, "Classification failed.", err)
		return
	}

	modelCtx, cancelModel := context.WithTimeout(c.Request.Context(), modelTimeout)
	defer cancelModel()

	result, err := h.Classifier.Classify(modelCtx, publicURL)
	if err != nil {
		serverError(c, h.Env, "Classification failed.", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"label":     result.Label,
		"treatment": result.Treatment,
	})
}
