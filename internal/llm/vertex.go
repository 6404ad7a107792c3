package llm

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/vertexai/genai"
	"github.com/rs/zerolog"
	"google.golang.org/api/option"
)

// VertexConfig configures a Gemini model on Google Vertex AI.
type VertexConfig struct {
	ProjectID       string
	Location        string
	CredentialsFile string
	Model           string
}

type contentGenerator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// VertexClient implements Completer on top of the Vertex AI Gemini API.
type VertexClient struct {
	client    *genai.Client
	modelName string
	model     func(prompt Prompt) contentGenerator
	logger    zerolog.Logger
}

// NewVertexClient dials Vertex AI. Close must be called to release the client.
func NewVertexClient(ctx context.Context, cfg VertexConfig, logger zerolog.Logger) (*VertexClient, error) {
	opts := []option.ClientOption{}
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := genai.NewClient(ctx, cfg.ProjectID, cfg.Location, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create vertex client: %w", err)
	}

	c := &VertexClient{
		client:    client,
		modelName: cfg.Model,
		logger:    logger.With().Str("component", "vertex-client").Logger(),
	}
	c.model = c.generativeModel
	return c, nil
}

func (c *VertexClient) generativeModel(prompt Prompt) contentGenerator {
	model := c.client.GenerativeModel(c.modelName)
	model.ResponseMIMEType = "application/json"
	if prompt.System != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(prompt.System)},
		}
	}
	return model
}

// Model returns the configured model identifier.
func (c *VertexClient) Model() string {
	return c.modelName
}

// Complete generates a JSON reply for prompt.
func (c *VertexClient) Complete(ctx context.Context, prompt Prompt) (string, error) {
	resp, err := c.model(prompt).GenerateContent(ctx, genai.Text(prompt.User))
	if err != nil {
		return "", fmt.Errorf("failed to call vertex ai: %w", err)
	}

	reply, err := replyText(resp)
	if err != nil {
		return "", err
	}

	c.logger.Debug().Str("model", c.modelName).Msg("vertex completion finished")

	return reply, nil
}

// replyText joins the text parts of the first candidate.
func replyText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyResponse
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", ErrEmptyResponse
	}

	return sb.String(), nil
}

// Close releases the underlying client.
func (c *VertexClient) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}
