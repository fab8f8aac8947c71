package handlers_test

import (
	"net/http"
	"testing"

	"healthcare-waste-api-server/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterLoginProfile(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"firstName": "Ana",
		"lastName":  "Reyes",
		"email":     "ana@hospital.test",
		"password":  "password123",
		"userType":  models.RoleMedicalStaff,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	registered := decodeBody(t, w)
	assert.Equal(t, true, registered["success"])
	user := registered["user"].(map[string]interface{})
	assert.Equal(t, models.RoleMedicalStaff, user["userType"])
	// The password hash never leaves the server.
	_, leaked := user["password"]
	assert.False(t, leaked)

	w = env.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "ana@hospital.test",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	token := decodeBody(t, w)["token"].(string)
	require.NotEmpty(t, token)

	w = env.do(t, http.MethodGet, "/api/auth/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	profile := decodeBody(t, w)["user"].(map[string]interface{})
	assert.Equal(t, "ana@hospital.test", profile["email"])
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)

	payload := gin.H{
		"firstName": "Ana",
		"lastName":  "Reyes",
		"email":     "dup@hospital.test",
		"password":  "password123",
		"userType":  models.RoleMedicalStaff,
	}
	w := env.do(t, http.MethodPost, "/api/auth/register", "", payload)
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, http.MethodPost, "/api/auth/register", "", payload)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"firstName": "Ana",
		"lastName":  "Reyes",
		"email":     "admin@hospital.test",
		"password":  "password123",
		"userType":  "superadmin",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"firstName": "Ana",
		"lastName":  "Reyes",
		"email":     "locked@hospital.test",
		"password":  "password123",
		"userType":  models.RoleMedicalStaff,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "locked@hospital.test",
		"password": "wrong-password",
	})
	// Same answer for a wrong password and an unknown email.
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "nobody@hospital.test",
		"password": "password123",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProfileRequiresToken(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/auth/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, http.MethodGet, "/api/auth/profile", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRoleGates(t *testing.T) {
	env := newTestEnv(t)
	medicalToken, _ := env.registerUser(t, models.RoleMedicalStaff)
	disposalToken, _ := env.registerUser(t, models.RoleDisposalStaff)

	// Disposal staff cannot create requests.
	w := env.do(t, http.MethodPost, "/api/requests/create", disposalToken, gin.H{
		"wasteType": "chemical", "quantity": 1, "unit": "kg", "urgency": "low",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Medical staff cannot read the disposal feed.
	w = env.do(t, http.MethodGet, "/api/requests/pending", medicalToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
