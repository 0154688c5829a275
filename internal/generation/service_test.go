package generation

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/breakfree/internal/models"
)

type fakeGenerator struct {
	reply string
	err   error
	calls []Request
}

func (f *fakeGenerator) Generate(ctx context.Context, req Request) (string, error) {
	f.calls = append(f.calls, req)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func TestServiceFallbacks(t *testing.T) {
	kinds := []Kind{KindChatReply, KindGoalMotivation, KindWisdomForStream, KindReflectionQuestion}

	tests := []struct {
		name string
		svc  *Service
	}{
		{name: "nil generator", svc: NewService(nil, 0)},
		{name: "failing generator", svc: NewService(&fakeGenerator{err: errors.New("503")}, 0)},
		{name: "blank reply", svc: NewService(&fakeGenerator{reply: "  \n"}, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range kinds {
				got := tt.svc.Text(context.Background(), k, "prompt")
				if got != Fallback(k) || got == "" {
					t.Errorf("Text(%s) = %q, want fallback", k, got)
				}
			}
		})
	}
}

func TestServiceSendsSystemInstruction(t *testing.T) {
	fake := &fakeGenerator{reply: "Discipline grows quietly."}
	svc := NewService(fake, time.Second)

	got := svc.GoalMotivation(context.Background(), "Do 10 pushups")
	if got != "Discipline grows quietly." {
		t.Errorf("GoalMotivation() = %q", got)
	}
	if len(fake.calls) != 1 {
		t.Fatalf("calls = %d", len(fake.calls))
	}
	req := fake.calls[0]
	if req.Kind != KindGoalMotivation || req.System != SystemInstruction(KindGoalMotivation) {
		t.Errorf("request = %+v", req)
	}
	if req.Prompt != `The user completed this goal: "Do 10 pushups"` {
		t.Errorf("Prompt = %q", req.Prompt)
	}
}

func TestServiceTimeout(t *testing.T) {
	slow := GeneratorFunc(func(ctx context.Context, req Request) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	})
	svc := NewService(slow, 10*time.Millisecond)

	if got := svc.Wisdom(context.Background(), "Mind Discipline"); got != Fallback(KindWisdomForStream) {
		t.Errorf("Wisdom() = %q, want fallback after timeout", got)
	}
}

func TestConversation(t *testing.T) {
	fake := &fakeGenerator{reply: "Try a short walk."}
	conv := NewService(fake, 0).NewConversation()

	reply, ok := conv.Send(context.Background(), "I feel an urge")
	if !ok || reply != "Try a short walk." {
		t.Fatalf("Send() = %q, %v", reply, ok)
	}

	fake.reply = "Good."
	if _, ok := conv.Send(context.Background(), "I walked"); !ok {
		t.Fatal("second Send() fell back")
	}
	if len(fake.calls[1].History) != 2 {
		t.Errorf("second call history = %v, want first exchange", fake.calls[1].History)
	}

	fake.err = errors.New("offline")
	reply, ok = conv.Send(context.Background(), "hello?")
	if ok || reply != Fallback(KindChatReply) {
		t.Errorf("Send() on failure = %q, %v", reply, ok)
	}

	want := []models.ChatMessage{
		{Role: RoleUser, Text: "I feel an urge"},
		{Role: RoleModel, Text: "Try a short walk."},
		{Role: RoleUser, Text: "I walked"},
		{Role: RoleModel, Text: "Good."},
	}
	got := conv.History()
	if len(got) != len(want) {
		t.Fatalf("History() = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("History()[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestRateLimited(t *testing.T) {
	fake := &fakeGenerator{reply: "ok"}

	if RateLimited(fake, 0) != Generator(fake) {
		t.Error("RateLimited(0) should return the generator unchanged")
	}

	limited := RateLimited(fake, 60)
	if _, err := limited.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("first call error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := limited.Generate(ctx, Request{}); err == nil {
		t.Error("call with cancelled context should fail")
	}
	if len(fake.calls) != 1 {
		t.Errorf("calls = %d, want 1", len(fake.calls))
	}
}

func TestPrompts(t *testing.T) {
	got := ReflectionPrompt([]string{"first", "second"})
	want := "Here is the wisdom the user has seen:\n\nWisdom 1:\nfirst\n\nWisdom 2:\nsecond"
	if got != want {
		t.Errorf("ReflectionPrompt() = %q, want %q", got, want)
	}

	if got := WisdomPrompt("Peace & Patience"); got != "The chosen Wisdom Stream is: Peace & Patience" {
		t.Errorf("WisdomPrompt() = %q", got)
	}

	none := HabitSuggestionPrompt(nil)
	if !strings.Contains(none, "suggest 3 new habits for me to start") {
		t.Errorf("empty habit prompt = %q", none)
	}

	some := HabitSuggestionPrompt([]models.Habit{{Name: "Walk", Type: models.HabitBuild}, {Name: "Doomscrolling", Type: models.HabitBreak}})
	for _, s := range []string{"- Walk (build)\n", "- Doomscrolling (break)\n", "either build or break"} {
		if !strings.Contains(some, s) {
			t.Errorf("habit prompt missing %q: %q", s, some)
		}
	}
}

func TestNewOpenAIGeneratorRequiresKey(t *testing.T) {
	if _, err := NewOpenAIGenerator(OpenAIConfig{Model: "gemini-2.5-flash"}); err == nil {
		t.Error("missing API key should fail")
	}
	if _, err := NewOpenAIGenerator(OpenAIConfig{APIKey: "k"}); err == nil {
		t.Error("missing model should fail")
	}
	if _, err := NewOpenAIGenerator(OpenAIConfig{APIKey: "k", Model: "m", BaseURL: "http://localhost:1/v1/"}); err != nil {
		t.Errorf("valid config error = %v", err)
	}
}
