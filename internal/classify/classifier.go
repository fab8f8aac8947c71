// Package classify sends waste photos to a hosted vision-language model
// and returns a category label plus treatment recommendations.
package classify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"healthcare-waste-api-server/config"

	openai "github.com/sashabaranov/go-openai"
)

// ErrBadReply means the model answered but not in the demanded JSON
// shape. The endpoint fails closed on it rather than serving garbage.
var ErrBadReply = errors.New("classify: model reply did not match the expected format")

// Categories the model must choose from, in the wording sent to it.
var Categories = []string{
	"Infectious Waste",
	"Sharps Waste",
	"Pathological Waste",
	"Pharmaceutical Waste",
	"Chemical Waste",
	"Radioactive Waste",
	"Non-Hazardous General Waste",
}

const prompt = `You are an expert in healthcare waste management.

Step 1: Classify the type of waste shown in the image into EXACTLY one of the following categories:
- Infectious Waste
- Sharps Waste
- Pathological Waste
- Pharmaceutical Waste
- Chemical Waste
- Radioactive Waste
- Non-Hazardous General Waste

Step 2: For the classified type, list the most appropriate disposal and recycling or treatment methods.

Respond with a single JSON object and nothing else, in this exact shape:
{"category": "<one of the seven categories>", "treatment": ["<method 1>", "<method 2>", "<method 3>"]}`

// Result is the parsed classification.
type Result struct {
	Label     string   `json:"label"`
	Treatment []string `json:"treatment"`
}

type Classifier struct {
	client *openai.Client
	model  string
}

// NewClassifier builds a client against the Groq OpenAI-compatible API.
func NewClassifier(cfg config.GroqConfig) *Classifier {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = cfg.BaseURL
	return &Classifier{
		client: openai.NewClientWithConfig(clientConfig),
		model:  cfg.Model,
	}
}

// Classify sends the uploaded image's public URL to the model and
// parses the reply strictly.
func (c *Classifier) Classify(ctx context.Context, imageURL string) (*Result, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     c.model,
		MaxTokens: 500,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: prompt},
					{
						Type:     openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{URL: imageURL},
					},
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("classify: model call failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, ErrBadReply
	}

	return parseReply(resp.Choices[0].Message.Content)
}

func parseReply(content string) (*Result, error) {
	var reply struct {
		Category  string   `json:"category"`
		Treatment []string `json:"treatment"`
	}
	decoder := json.NewDecoder(strings.NewReader(strings.TrimSpace(content)))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&reply); err != nil {
		return nil, ErrBadReply
	}

	label := strings.ToLower(strings.TrimSpace(reply.Category))
	if !knownCategory(label) {
		return nil, ErrBadReply
	}

	treatment := make([]string, 0, len(reply.Treatment))
	for _, step := range reply.Treatment {
		step = strings.TrimSpace(step)
		if step != "" {
			treatment = append(treatment, step)
		}
	}
	if len(treatment) == 0 {
		return nil, ErrBadReply
	}

	return &Result{Label: label, Treatment: treatment}, nil
}

func knownCategory(label string) bool {
	for _, c := range Categories {
		if strings.ToLower(c) == label {
			return true
		}
	}
	return false
}
