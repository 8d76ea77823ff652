package generator

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"
	"github.com/cohere-ai/cohere-go/v2/option"
)

const defaultCohereModel = "command-r"

// Cohere completes prompts with the Cohere chat API, passing the instruction as the preamble.
type Cohere struct {
	client *cohereclient.Client
	model  string
}

// NewCohere constructs a Cohere completer.
func NewCohere(apiKey, model string, httpClient *http.Client) (*Cohere, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("generator: cohere api key must be provided")
	}
	if model == "" {
		model = defaultCohereModel
	}

	opts := []option.RequestOption{cohereclient.WithToken(apiKey)}
	if httpClient != nil {
		opts = append(opts, cohereclient.WithHTTPClient(httpClient))
	}

	return &Cohere{client: cohereclient.NewClient(opts...), model: model}, nil
}

// Complete sends a single-turn chat and returns the reply text.
func (c *Cohere) Complete(ctx context.Context, system, user string) (string, error) {
	resp, err := c.client.Chat(ctx, &cohere.ChatRequest{
		Message:  user,
		Model:    cohere.String(c.model),
		Preamble: cohere.String(system),
	})
	if err != nil {
		return "", fmt.Errorf("%w: cohere: %v", ErrGeneration, err)
	}
	if resp == nil {
		return "", nil
	}
	if resp.FinishReason != nil && *resp.FinishReason == cohere.FinishReasonErrorToxic {
		return "", fmt.Errorf("%w: cohere rejected the content", ErrGeneration)
	}
	return resp.Text, nil
}
