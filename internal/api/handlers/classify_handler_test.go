package handlers_test

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"healthcare-waste-api-server/internal/classify"
	"healthcare-waste-api-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func classifyUpload(t *testing.T, env *testEnv, token, field, filename string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if field != "" {
		part, err := writer.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = part.Write([]byte("not-really-a-jpeg"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/classify", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func TestClassifyHappyPath(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.registerUser(t, models.RoleMedicalStaff)

	env.classifier.result = &classify.Result{
		Label:     "chemical waste",
		Treatment: []string{"Neutralization", "Licensed chemical disposal"},
	}

	w := classifyUpload(t, env, token, "image", "spill.jpg")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decodeBody(t, w)
	assert.Equal(t, "chemical waste", body["label"])
	treatment := body["treatment"].([]interface{})
	require.Len(t, treatment, 2)
	assert.Equal(t, "Neutralization", treatment[0])
}

func TestClassifyWithoutFile(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.registerUser(t, models.RoleMedicalStaff)

	w := classifyUpload(t, env, token, "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "No image file sent.")
}

func TestClassifyRequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	w := classifyUpload(t, env, "", "image", "spill.jpg")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestClassifyUploadFailure(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.registerUser(t, models.RoleMedicalStaff)
	env.uploader.err = errors.New("bucket unreachable")

	w := classifyUpload(t, env, token, "image", "spill.jpg")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Classification failed.")
}

func TestClassifyModelFailure(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.registerUser(t, models.RoleMedicalStaff)
	env.classifier.err = classify.ErrBadReply

	w := classifyUpload(t, env, token, "image", "spill.jpg")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Classification failed.")
}
