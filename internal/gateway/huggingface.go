package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"spendlog/internal/nlp"
	"spendlog/pkg/config"
)

const (
	asrBaseURL = "https://router.huggingface.co/hf-inference/models/"
	chatURL    = "https://router.huggingface.co/v1/chat/completions"

	maxTokens   = 512
	temperature = 0.1
)

// Client talks to the HuggingFace inference router: the OpenAI-compatible
// chat-completions endpoint for extraction and the ASR endpoint for voice
// transcription. Retries are deliberately not its business.
type Client struct {
	token      string
	sttModel   string
	nlpModel   string
	chatURL    string
	asrBaseURL string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(cfg *config.HuggingFaceConfig, logger *zap.Logger) *Client {
	return &Client{
		token:      cfg.Token,
		sttModel:   cfg.STTModel,
		nlpModel:   cfg.NLPModel,
		chatURL:    chatURL,
		asrBaseURL: asrBaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	MaxTokens      int            `json:"max_tokens"`
	Temperature    float64        `json:"temperature"`
	ResponseFormat responseFormat `json:"response_format"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Generate sends the rendered prompt as a single user message and returns the
// model's textual completion. The request asks for a JSON object explicitly,
// but callers must not trust that and re-validate the reply.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	reqBody := chatRequest{
		Model: c.nlpModel,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
		MaxTokens:      maxTokens,
		Temperature:    temperature,
		ResponseFormat: responseFormat{Type: "json_object"},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", &nlp.GatewayError{Err: err}
	}

	body, status, contentType, err := c.post(ctx, c.chatURL, "application/json", payload)
	if err != nil {
		return "", err
	}
	if err := c.checkReply(status, contentType, body, "LLM"); err != nil {
		return "", err
	}

	var resp chatResponse
	if err := json.Unmarshal(body, &resp); err == nil && len(resp.Choices) > 0 {
		return resp.Choices[0].Message.Content, nil
	}

	c.logger.Warn("Unexpected LLM response format", zap.String("body", string(body)))
	return string(body), nil
}

// Transcribe sends raw voice bytes to the ASR model and returns the
// transcript. Telegram voice notes are OGG/Opus.
func (c *Client) Transcribe(ctx context.Context, audio []byte) (string, error) {
	body, status, contentType, err := c.post(ctx, c.asrBaseURL+c.sttModel, "audio/ogg", audio)
	if err != nil {
		return "", err
	}
	if err := c.checkReply(status, contentType, body, "STT"); err != nil {
		return "", err
	}

	var resp struct {
		Text *string `json:"text"`
	}
	if err := json.Unmarshal(body, &resp); err == nil && resp.Text != nil {
		return *resp.Text, nil
	}

	c.logger.Warn("Unexpected STT response format", zap.String("body", string(body)))
	return string(body), nil
}

func (c *Client) post(ctx context.Context, url, contentType string, payload []byte) ([]byte, int, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, 0, "", &nlp.GatewayError{Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.New().String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, "", &nlp.GatewayError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, "", &nlp.GatewayError{Err: err}
	}

	return body, resp.StatusCode, resp.Header.Get("Content-Type"), nil
}

// checkReply surfaces HTTP-level failures with the status and body verbatim,
// and runs the transport-sanity check before anyone parses the payload.
func (c *Client) checkReply(status int, contentType string, body []byte, kind string) error {
	if status >= 400 {
		c.logger.Error("HF HTTP error",
			zap.String("kind", kind),
			zap.Int("status", status),
			zap.String("body", string(body)),
		)
		return &nlp.GatewayError{Status: status, Body: string(body)}
	}
	if len(bytes.TrimSpace(body)) == 0 {
		c.logger.Error("HF returned empty body", zap.String("kind", kind), zap.Int("status", status))
		return &nlp.GatewayError{Status: status, Body: ""}
	}
	if err := nlp.EnsureJSONBody(contentType, string(body)); err != nil {
		c.logger.Error("HF returned non-JSON response",
			zap.String("kind", kind),
			zap.Int("status", status),
			zap.String("content_type", contentType),
			zap.String("body", string(body)),
		)
		return err
	}
	return nil
}
