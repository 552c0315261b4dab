package index

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mskaar/pensum/internal/model"
	openai "github.com/sashabaranov/go-openai"
)

// ErrNotReady is returned when the store has no documents to answer from.
var ErrNotReady = errors.New("index is empty")

const answerSystemPrompt = "You are a study assistant for a university student. " +
	"Answer the question using only the provided course context. " +
	"If the context does not contain the answer, say so plainly instead of guessing."

// Answerer runs retrieval-augmented question answering over a store.
type Answerer struct {
	client   *openai.Client
	embedder Embedder
	store    *Store
	model    string
	topK     int
	timeout  time.Duration
}

// NewAnswerer wires a chat client, embedder and store together.
func NewAnswerer(cfg model.OpenAIConfig, embedder Embedder, store *Store, topK int) *Answerer {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &Answerer{
		client:   openai.NewClientWithConfig(clientConfig),
		embedder: embedder,
		store:    store,
		model:    cfg.ChatModel,
		topK:     topK,
		timeout:  time.Duration(cfg.Timeout) * time.Second,
	}
}

// Answer embeds the question, retrieves the closest documents and asks
// the chat model with the hits stuffed into the prompt.
func (a *Answerer) Answer(ctx context.Context, question string) (string, error) {
	if !a.store.Ready() {
		return "", ErrNotReady
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	vecs, err := a.embedder.Embed(ctx, []string{question})
	if err != nil {
		return "", fmt.Errorf("embed question: %w", err)
	}

	hits := a.store.Search(vecs[0], a.topK)
	var b strings.Builder
	for _, d := range hits {
		b.WriteString(d.Content)
		b.WriteString("\n\n")
	}

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       a.model,
		Temperature: 0,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: answerSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf("Context:\n%s\nQuestion: %s", b.String(), question)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
