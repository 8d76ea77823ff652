// Package generator turns a topic into a short video script and the script into a visual prompt
// using a hosted chat model.
package generator

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/shortsgen/backend/internal/config"
	"github.com/shortsgen/backend/internal/logging"
)

const (
	scriptInstruction = "You are a creative content writer who creates engaging short-form video scripts for YouTube Shorts. " +
		"Keep scripts under 60 seconds when spoken. Make them catchy, informative, and entertaining."
	scriptRequest = "Create a compelling script for a YouTube Short about: %s. " +
		"Include a hook, main content, and call-to-action. Format it as a natural speaking script."

	promptInstruction = "Convert video scripts into detailed visual prompts for AI video generation. " +
		"Describe scenes, colors, movements, and style."
	promptRequest = "Convert this script into a detailed visual prompt for video generation:\n\n%s"
)

// Completer sends one system plus user exchange to a chat model and returns the reply text.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Generator produces scripts and visual prompts.
type Generator struct {
	completer Completer
}

// New constructs a Generator around the provided completer.
func New(completer Completer) (*Generator, error) {
	if completer == nil {
		return nil, errors.New("generator: completer must be provided")
	}
	return &Generator{completer: completer}, nil
}

// FromConfig selects the provider named by cfg.Provider.
func FromConfig(cfg config.LLMConfig, httpClient *http.Client) (*Generator, error) {
	var (
		completer Completer
		err       error
	)

	switch cfg.Provider {
	case config.ProviderOpenAI, "":
		completer, err = NewOpenAI(cfg.OpenAIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL, httpClient)
	case config.ProviderCohere:
		completer, err = NewCohere(cfg.CohereKey, cfg.CohereModel, httpClient)
	default:
		err = fmt.Errorf("generator: unknown provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	return New(completer)
}

// Script writes a spoken script for a short about topic.
func (g *Generator) Script(ctx context.Context, topic string) (string, error) {
	text, err := g.completer.Complete(ctx, scriptInstruction, fmt.Sprintf(scriptRequest, topic))
	if err != nil {
		logging.FromContext(ctx).Error("script generation failed", "error", err)
		return "", err
	}
	return text, nil
}

// VisualPrompt describes the scenes, colors, movement and style for script.
func (g *Generator) VisualPrompt(ctx context.Context, script string) (string, error) {
	text, err := g.completer.Complete(ctx, promptInstruction, fmt.Sprintf(promptRequest, script))
	if err != nil {
		logging.FromContext(ctx).Error("visual prompt generation failed", "error", err)
		return "", err
	}
	return text, nil
}
