package generation

import (
	"context"
	"fmt"
	"strings"
	"time"

	apperrors "github.com/julianstephens/breakfree/internal/errors"
	"github.com/julianstephens/breakfree/internal/logger"
	"github.com/julianstephens/breakfree/internal/models"
)

const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Service is the caller-owned handle to the generator. A nil generator is allowed and
// makes every call return its fallback.
type Service struct {
	gen     Generator
	timeout time.Duration
}

func NewService(gen Generator, timeout time.Duration) *Service {
	return &Service{gen: gen, timeout: timeout}
}

// Available reports whether a generator is configured.
func (s *Service) Available() bool {
	return s != nil && s.gen != nil
}

// Text generates text of kind for prompt, or returns the kind's fallback on any failure.
func (s *Service) Text(ctx context.Context, kind Kind, prompt string) string {
	text, err := s.generate(ctx, kind, nil, prompt)
	if err != nil {
		return Fallback(kind)
	}
	return text
}

func (s *Service) GoalMotivation(ctx context.Context, goalText string) string {
	return s.Text(ctx, KindGoalMotivation, GoalMotivationPrompt(goalText))
}

func (s *Service) Wisdom(ctx context.Context, stream string) string {
	return s.Text(ctx, KindWisdomForStream, WisdomPrompt(stream))
}

func (s *Service) ReflectionQuestion(ctx context.Context, wisdoms []string) string {
	return s.Text(ctx, KindReflectionQuestion, ReflectionPrompt(wisdoms))
}

// generate wraps every failure in ErrGenerationUnavailable and logs it.
func (s *Service) generate(ctx context.Context, kind Kind, history []models.ChatMessage, prompt string) (string, error) {
	if !s.Available() {
		err := fmt.Errorf("%w: no generator configured", apperrors.ErrGenerationUnavailable)
		logger.Debug("Using fallback text", "kind", kind, "error", err)
		return "", err
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	text, err := s.gen.Generate(ctx, Request{
		Kind:    kind,
		System:  SystemInstruction(kind),
		History: history,
		Prompt:  prompt,
	})
	if err == nil && strings.TrimSpace(text) == "" {
		err = fmt.Errorf("empty response")
	}
	if err != nil {
		err = fmt.Errorf("%w: %v", apperrors.ErrGenerationUnavailable, err)
		logger.Warn("Text generation failed", "kind", kind, "error", err)
		return "", err
	}
	return text, nil
}

// Conversation is a stateful chat owned by the caller. Only exchanges that got a real
// reply are kept in the history sent with later turns.
type Conversation struct {
	svc     *Service
	history []models.ChatMessage
}

func (s *Service) NewConversation() *Conversation {
	return &Conversation{svc: s}
}

// Send returns the companion's reply, or the chat fallback when generation fails.
// The bool is false for a fallback.
func (c *Conversation) Send(ctx context.Context, message string) (string, bool) {
	reply, err := c.svc.generate(ctx, KindChatReply, c.history, message)
	if err != nil {
		return Fallback(KindChatReply), false
	}
	c.history = append(c.history,
		models.ChatMessage{Role: RoleUser, Text: message},
		models.ChatMessage{Role: RoleModel, Text: reply},
	)
	return reply, true
}

// History returns a copy of the recorded exchanges, oldest first.
func (c *Conversation) History() []models.ChatMessage {
	return append([]models.ChatMessage(nil), c.history...)
}
