package classify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"healthcare-waste-api-server/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReply(t *testing.T) {
	result, err := parseReply(`{"category": "Chemical Waste", "treatment": ["Neutralize", "Licensed disposal"]}`)
	require.NoError(t, err)
	assert.Equal(t, "chemical waste", result.Label)
	assert.Equal(t, []string{"Neutralize", "Licensed disposal"}, result.Treatment)
}

func TestParseReplyTrimsAndDropsBlankSteps(t *testing.T) {
	result, err := parseReply(`
	{"category": "Sharps Waste", "treatment": ["  Autoclave  ", "", "Shred"]}`)
	require.NoError(t, err)
	assert.Equal(t, "sharps waste", result.Label)
	assert.Equal(t, []string{"Autoclave", "Shred"}, result.Treatment)
}

func TestParseReplyFailsClosed(t *testing.T) {
	bad := []string{
		``,
		`Category: Chemical Waste`,
		`{"category": "Chemical Waste"}`,
		`{"category": "Chemical Waste", "treatment": []}`,
		`{"category": "Chemical Waste", "treatment": ["", "  "]}`,
		`{"category": "Mystery Waste", "treatment": ["Burn it"]}`,
		`{"category": "Chemical Waste", "treatment": ["ok"], "extra": true}`,
	}
	for _, content := range bad {
		_, err := parseReply(content)
		assert.ErrorIs(t, err, ErrBadReply, "content %q", content)
	}
}

func TestClassifyAgainstFakeModel(t *testing.T) {
	var gotAuth string
	var gotBody map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]interface{}{
					"role":    "assistant",
					"content": `{"category": "Infectious Waste", "treatment": ["Autoclave", "Incinerate"]}`,
				}},
			},
		})
	}))
	defer server.Close()

	classifier := NewClassifier(config.GroqConfig{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Model:   "meta-llama/llama-4-scout-17b-16e-instruct",
	})

	result, err := classifier.Classify(context.Background(), "https://cdn.test/uploads/abc.jpg")
	require.NoError(t, err)
	assert.Equal(t, "infectious waste", result.Label)
	assert.Equal(t, []string{"Autoclave", "Incinerate"}, result.Treatment)

	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "meta-llama/llama-4-scout-17b-16e-instruct", gotBody["model"])
	assert.Equal(t, float64(500), gotBody["max_tokens"])
}

func TestClassifyModelErrorSurfaces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "rate limited"}}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	classifier := NewClassifier(config.GroqConfig{APIKey: "k", BaseURL: server.URL, Model: "m"})

	_, err := classifier.Classify(context.Background(), "https://cdn.test/uploads/abc.jpg")
	assert.Error(t, err)
}

func TestClassifyRejectsMalformedReply(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]interface{}{
					"role":    "assistant",
					"content": "Category: Chemical Waste\n- Neutralize",
				}},
			},
		})
	}))
	defer server.Close()

	classifier := NewClassifier(config.GroqConfig{APIKey: "k", BaseURL: server.URL, Model: "m"})

	_, err := classifier.Classify(context.Background(), "https://cdn.test/uploads/abc.jpg")
	assert.ErrorIs(t, err, ErrBadReply)
}
