package llm

import (
	"context"
	"errors"
	"testing"

	"cloud.google.com/go/vertexai/genai"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	resp  *genai.GenerateContentResponse
	err   error
	parts []genai.Part
}

func (f *fakeGenerator) GenerateContent(_ context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
	f.parts = parts
	return f.resp, f.err
}

func newFakeVertexClient(gen *fakeGenerator, prompts *[]Prompt) *VertexClient {
	return &VertexClient{
		modelName: "gemini-1.5-pro",
		model: func(prompt Prompt) contentGenerator {
			if prompts != nil {
				*prompts = append(*prompts, prompt)
			}
			return gen
		},
		logger: zerolog.Nop(),
	}
}

func candidate(parts ...genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: parts}}},
	}
}

func TestVertexClient_Complete_Success(t *testing.T) {
	gen := &fakeGenerator{resp: candidate(genai.Text(`{"overall_score":`), genai.Text(`90}`))}
	var prompts []Prompt
	client := newFakeVertexClient(gen, &prompts)

	reply, err := client.Complete(context.Background(), Prompt{System: "be strict", User: "Water, Salt"})

	require.NoError(t, err)
	assert.Equal(t, `{"overall_score":90}`, reply)
	require.Len(t, prompts, 1)
	assert.Equal(t, "be strict", prompts[0].System)
	require.Len(t, gen.parts, 1)
	assert.Equal(t, genai.Text("Water, Salt"), gen.parts[0])
	assert.Equal(t, "gemini-1.5-pro", client.Model())
}

func TestVertexClient_Complete_ProviderError(t *testing.T) {
	client := newFakeVertexClient(&fakeGenerator{err: errors.New("quota exhausted")}, nil)

	_, err := client.Complete(context.Background(), Prompt{User: "x"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exhausted")
}

func TestReplyText(t *testing.T) {
	tests := []struct {
		name     string
		resp     *genai.GenerateContentResponse
		expected string
		wantErr  bool
	}{
		{
			name:    "nil response",
			resp:    nil,
			wantErr: true,
		},
		{
			name:    "no candidates",
			resp:    &genai.GenerateContentResponse{},
			wantErr: true,
		},
		{
			name:    "candidate without content",
			resp:    &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}},
			wantErr: true,
		},
		{
			name:    "only non-text parts",
			resp:    candidate(genai.Blob{MIMEType: "image/png", Data: []byte{1, 2}}),
			wantErr: true,
		},
		{
			name:    "whitespace text",
			resp:    candidate(genai.Text("  \n")),
			wantErr: true,
		},
		{
			name:     "non-text parts are skipped",
			resp:     candidate(genai.Text("{"), genai.Blob{MIMEType: "image/png"}, genai.Text("}")),
			expected: "{}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply, err := replyText(tt.resp)

			if tt.wantErr {
				assert.ErrorIs(t, err, ErrEmptyResponse)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, reply)
		})
	}
}

func TestVertexClient_CloseWithoutClient(t *testing.T) {
	client := newFakeVertexClient(&fakeGenerator{}, nil)

	assert.NoError(t, client.Close())
}
