package ai

import (
	"context"
	"fmt"
	"log"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/afrowave/api/internal/config"
	"github.com/afrowave/api/internal/model/chat"
)

// Generator is the minimal generative-text surface consumed by callers,
// satisfied by Service and by test stubs.
type Generator interface {
	Generate(ctx context.Context, system string, history []chat.Message, query string) (string, error)
	Complete(ctx context.Context, promptText string) (string, error)
}

// Service wraps the generative-language gateway behind a prompt-template
// chain. Calls carry no retry, backoff or caller-side timeout; a slow
// upstream simply makes the response slow.
type Service struct {
	chatModel model.ChatModel
	chain     compose.Runnable[map[string]any, *schema.Message]
}

// NewService builds the chat model from configuration and compiles the
// prompt chain.
func NewService(ctx context.Context, cfg config.AIConfig) (*Service, error) {
	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.MessagesPlaceholder("history", true),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile chat chain: %w", err)
	}

	return &Service{chatModel: chatModel, chain: runnable}, nil
}

// Generate runs one grounded completion over a system prompt, prior turns
// and the current query.
func (s *Service) Generate(ctx context.Context, system string, history []chat.Message, query string) (string, error) {
	response, err := s.chain.Invoke(ctx, s.chainInput(system, history, query))
	if err != nil {
		return "", fmt.Errorf("failed to run AI chain: %w", err)
	}

	log.Printf("[ai] generated response, length=%d", len(response.Content))
	return response.Content, nil
}

// Stream returns the completion as a chunk stream for SSE relay.
func (s *Service) Stream(ctx context.Context, system string, history []chat.Message, query string) (*schema.StreamReader[*schema.Message], error) {
	stream, err := s.chain.Stream(ctx, s.chainInput(system, history, query))
	if err != nil {
		return nil, fmt.Errorf("failed to stream AI chain output: %w", err)
	}
	return stream, nil
}

// Complete forwards a raw prompt with no history and a neutral system line.
func (s *Service) Complete(ctx context.Context, promptText string) (string, error) {
	return s.Generate(ctx, "You are a helpful assistant.", nil, promptText)
}

func (s *Service) chainInput(system string, history []chat.Message, query string) map[string]any {
	return map[string]any{
		"system":  system,
		"history": historyMessages(history),
		"query":   query,
	}
}

// historyMessages converts stored turns into model messages.
func historyMessages(history []chat.Message) []*schema.Message {
	messages := make([]*schema.Message, 0, len(history))
	for _, message := range history {
		switch message.Role {
		case chat.RoleAssistant:
			messages = append(messages, schema.AssistantMessage(message.Content, nil))
		default:
			messages = append(messages, schema.UserMessage(message.Content))
		}
	}
	return messages
}
