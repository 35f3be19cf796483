package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sgladkov/storefront/internal/adapter/config"
	"github.com/sgladkov/storefront/internal/core/domain"
	"go.uber.org/zap"
)

// Client calls a Gemini-style generateContent API for the support chatbot.
// It implements port.ChatModel.
type Client struct {
	logger     *zap.Logger
	apiBase    string
	apiKey     string
	model      string
	httpClient *http.Client
}

func NewClient(cfg *config.Gemini, log *zap.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini api key is not configured")
	}
	return &Client{
		logger:     log,
		apiBase:    strings.TrimRight(cfg.APIBase, "/"),
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}, nil
}

type contentPart struct {
	Text string `json:"text"`
}

type content struct {
	Role  string        `json:"role"`
	Parts []contentPart `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []contentPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (c *Client) GenerateReply(ctx context.Context, storeContext string, messages []domain.ChatMessage) (string, error) {
	contents := make([]content, 0, len(messages)+1)
	contents = append(contents, content{
		Role:  "user",
		Parts: []contentPart{{Text: storeContext}},
	})
	for _, msg := range messages {
		role := "model"
		if msg.From == domain.ChatRoleUser {
			role = "user"
		}
		contents = append(contents, content{
			Role:  role,
			Parts: []contentPart{{Text: msg.Text}},
		})
	}

	payload, err := json.Marshal(generateRequest{Contents: contents})
	if err != nil {
		return "", err
	}

	requestURL := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		c.apiBase, c.model, url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, requestURL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat request error: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("Chat model request failed", zap.Int("status", resp.StatusCode))
		return "", fmt.Errorf("chat model returned status %d", resp.StatusCode)
	}

	var result generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("error on response decode: %w", err)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "No reply from AI", nil
	}

	return result.Candidates[0].Content.Parts[0].Text, nil
}
