// Package whisper supplies the narrator: short flavor lines generated off the
// frame goroutine and handed back through a buffered channel.
package whisper

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/joho/godotenv"
	"google.golang.org/api/option"

	"github.com/vovakirdan/procne/internal/config"
)

// ErrNoCredential is returned when no API key is configured.
var ErrNoCredential = errors.New("whisper: no API key")

// ErrEmptyResponse is returned when the model produced no text.
var ErrEmptyResponse = errors.New("whisper: empty response")

// Generator produces one line for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Gemini generates lines with the Gemini API.
type Gemini struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// LoadEnv reads a .env file from the working directory if there is one.
// Variables already set in the environment win.
func LoadEnv() error {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("whisper: reading .env: %w", err)
	}
	return nil
}

// NewGemini connects to the Gemini API using the key in cfg.APIKeyEnv.
func NewGemini(ctx context.Context, cfg config.WhisperConfig) (*Gemini, error) {
	key := os.Getenv(cfg.APIKeyEnv)
	if key == "" {
		return nil, ErrNoCredential
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(key))
	if err != nil {
		return nil, fmt.Errorf("whisper: creating client: %w", err)
	}
	model := client.GenerativeModel(cfg.Model)
	model.SystemInstruction = genai.NewUserContent(genai.Text(cfg.SystemInstruction))
	model.SetMaxOutputTokens(64)
	return &Gemini{client: client, model: model}, nil
}

// Generate asks the model for one whisper.
func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("whisper: generate: %w", err)
	}
	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
		break
	}
	if sb.Len() == 0 {
		return "", ErrEmptyResponse
	}
	return sb.String(), nil
}

// Close releases the client connection.
func (g *Gemini) Close() error {
	return g.client.Close()
}

// Open picks the generator for cfg: Gemini when the key is set, Echo when
// the key is missing and cfg.Offline asks for it. Otherwise it returns the
// error, ErrNoCredential for a missing key, and the caller runs without a
// narrator. The returned func releases the generator.
func Open(ctx context.Context, cfg config.WhisperConfig) (Generator, func() error, error) {
	g, err := NewGemini(ctx, cfg)
	switch {
	case err == nil:
		return g, g.Close, nil
	case errors.Is(err, ErrNoCredential) && cfg.Offline:
		return Echo{}, func() error { return nil }, nil
	default:
		return nil, nil, err
	}
}

// Echo is the offline generator: the prompt itself is the line.
type Echo struct{}

// Generate returns the prompt unchanged.
func (Echo) Generate(_ context.Context, prompt string) (string, error) {
	return prompt, nil
}
