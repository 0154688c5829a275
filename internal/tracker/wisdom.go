package tracker

import (
	"context"
	"slices"

	"github.com/julianstephens/breakfree/internal/constants"
	"github.com/julianstephens/breakfree/internal/generation"
	"github.com/julianstephens/breakfree/internal/logger"
)

// WisdomSession tracks the wisdoms viewed since the last reflection. Fallback texts count
// as viewed wisdoms.
type WisdomSession struct {
	svc       *generation.Service
	threshold int
	seen      []string
}

// Reflection is a question generated from a batch of viewed wisdoms.
type Reflection struct {
	Question string
	Context  []string
}

func NewWisdomSession(svc *generation.Service) *WisdomSession {
	return &WisdomSession{svc: svc, threshold: constants.WisdomsPerReflection}
}

// View generates a wisdom for stream and reports whether a reflection is now due.
func (w *WisdomSession) View(ctx context.Context, stream string) (string, bool) {
	text := w.svc.Wisdom(ctx, stream)
	w.seen = append(w.seen, text)
	return text, w.ReflectionDue()
}

func (w *WisdomSession) ReflectionDue() bool {
	return len(w.seen) >= w.threshold
}

// Seen returns the wisdoms viewed since the last reflection.
func (w *WisdomSession) Seen() []string {
	return slices.Clone(w.seen)
}

// Reflect generates a question from the viewed wisdoms and starts a new batch.
func (w *WisdomSession) Reflect(ctx context.Context) Reflection {
	wisdoms := w.seen
	w.seen = nil
	r := Reflection{
		Question: w.svc.ReflectionQuestion(ctx, wisdoms),
		Context:  wisdoms,
	}
	logger.Debug("Reflection generated", "wisdoms", len(wisdoms))
	return r
}

// Save stores the answer as a journal entry. A blank response is rejected with a
// validation error; callers that want to skip simply do not call Save.
func (r Reflection) Save(s *Session, response string) (bool, error) {
	return s.AppendJournalEntry(NewJournalEntry(s.Now(), r.Question, response, r.Context))
}
