package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"healthcare-waste-api-server/config"
	"healthcare-waste-api-server/internal/api/routes"
	"healthcare-waste-api-server/internal/auth"
	"healthcare-waste-api-server/internal/classify"
	"healthcare-waste-api-server/internal/database"
	"healthcare-waste-api-server/internal/socket"
	"healthcare-waste-api-server/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type stubUploader struct {
	url string
	err error
}

func (s *stubUploader) UploadFile(_ context.Context, _ io.Reader, objectKey string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if s.url != "" {
		return s.url, nil
	}
	return "https://cdn.test/" + objectKey, nil
}

type stubClassifier struct {
	result *classify.Result
	err    error
}

func (s *stubClassifier) Classify(_ context.Context, _ string) (*classify.Result, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

type testEnv struct {
	router     *gin.Engine
	store      *store.Store
	uploader   *stubUploader
	classifier *stubClassifier
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	auth.JwtSecret = []byte("test-secret")

	st := store.NewMemoryStore()
	require.NoError(t, database.SeedReferenceData(context.Background(), st))

	env := &testEnv{
		store:      st,
		uploader:   &stubUploader{},
		classifier: &stubClassifier{},
	}
	cfg := config.Config{Server: config.ServerConfig{Env: "development"}}
	env.router = routes.SetupRouter(cfg, st, env.uploader, env.classifier, socket.NewHub())
	return env
}

// do sends a JSON request through the router, attaching the bearer
// token when one is given.
func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

var userSeq int

// registerUser creates an account through the API and returns its
// token and id.
func (e *testEnv) registerUser(t *testing.T, userType string) (token, id string) {
	t.Helper()
	userSeq++
	w := e.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"firstName":  "Test",
		"lastName":   "User",
		"email":      fmt.Sprintf("user%d@hospital.test", userSeq),
		"password":   "password123",
		"userType":   userType,
		"department": "Oncology",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeBody(t, w)
	token, _ = body["token"].(string)
	require.NotEmpty(t, token)
	user, _ := body["user"].(map[string]interface{})
	require.NotNil(t, user)
	id, _ = user["id"].(string)
	require.NotEmpty(t, id)
	return token, id
}
