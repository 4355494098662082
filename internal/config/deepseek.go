package config

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"go.uber.org/fx"
)

// Completer is the text-generation contract used by the reminder pipeline.
type Completer interface {
	Complete(ctx context.Context, system, prompt string, maxTokens int, temperature float64) (string, error)
}

type DeepseekConfig struct {
	APIKey string
	APIURL string
	Model  string
}

func NewDeepseekConfig() *DeepseekConfig {
	apiKey := os.Getenv("DEEPSEEK_API_KEY")
	if apiKey == "" {
		log.Fatal("DEEPSEEK_API_KEY not set")
	}
	apiURL := os.Getenv("DEEPSEEK_API_URL")
	if apiURL == "" {
		apiURL = "https://api.deepseek.com/v1/chat/completions"
	}
	model := os.Getenv("DEEPSEEK_MODEL")
	if model == "" {
		model = "deepseek-chat"
	}
	return &DeepseekConfig{APIKey: apiKey, APIURL: apiURL, Model: model}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// DeepseekService calls a DeepSeek-compatible chat completions endpoint.
type DeepseekService struct {
	Config *DeepseekConfig
	client *http.Client
}

func NewDeepseekService(lc fx.Lifecycle, config *DeepseekConfig) *DeepseekService {
	service := &DeepseekService{
		Config: config,
		client: &http.Client{Timeout: 15 * time.Second},
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Println("Deepseek service initialized with model:", config.Model)
			return nil
		},
	})
	return service
}

func (s *DeepseekService) Complete(ctx context.Context, system, prompt string, maxTokens int, temperature float64) (string, error) {
	payload := chatCompletionRequest{
		Model: s.Config.Model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: prompt},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("Failed to marshal completion payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.Config.APIURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("Failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+s.Config.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("Failed to call completion API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errorResponse map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&errorResponse)
		return "", fmt.Errorf("Completion API returned status %d, error: %v", resp.StatusCode, errorResponse)
	}

	var completion chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", fmt.Errorf("Failed to decode completion response: %w", err)
	}

	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("Completion API returned no content")
	}

	return completion.Choices[0].Message.Content, nil
}
