// Package overseer implements a deterministic, keyword-scored idea reviewer.
// It works without external AI keys; the scoring table and response strings
// are contractual.
package overseer

import (
	"context"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/fanzoftheone/taskdeck/internal/models"
	"github.com/fanzoftheone/taskdeck/internal/store"
)

const (
	VerdictApproved    = "APPROVED"
	VerdictConditional = "CONDITIONAL"
	VerdictRejected    = "REJECTED"
)

var (
	audienceKeywords = []string{"user", "customer", "client", "tenant", "admin"}
	revenueKeywords  = []string{"stripe", "billing", "payment", "subscription"}
	deliveryKeywords = []string{"mvp", "scope", "phase", "milestone"}
)

const checklist = "Checklist:\n" +
	"- Who is the user (role)?\n" +
	"- What is the exact workflow?\n" +
	"- What data is created/updated?\n" +
	"- What are the edge cases?\n" +
	"- What does success look like (metrics)?\n"

type Result struct {
	Verdict string
	Tone    string
	Score   int
}

// Approval renders the result the way the API returns it.
func (r Result) Approval() string {
	return r.Verdict + "\n\n" + r.Tone + "\n\n" + checklist
}

// Review scores free text: +1 for length >= 80 chars and +1 per keyword group
// matched (case-insensitive substring). 3+ approves, 2 is conditional.
func Review(idea string) Result {
	text := strings.TrimSpace(idea)
	lower := strings.ToLower(text)

	score := 0

	// Characters, not bytes: multibyte ideas must not earn the point early.
	if utf8.RuneCountInString(text) >= 80 {
		score++
	}

	for _, group := range [][]string{audienceKeywords, revenueKeywords, deliveryKeywords} {
		if containsAny(lower, group) {
			score++
		}
	}

	result := Result{Score: score}

	switch {
	case score >= 3:
		result.Verdict = VerdictApproved
		result.Tone = "Strong signal. This is clear enough to break into tasks and ship."
	case score == 2:
		result.Verdict = VerdictConditional
		result.Tone = "Close. Add acceptance criteria + data model changes, then we can greenlight."
	default:
		result.Verdict = VerdictRejected
		result.Tone = "Too vague. Add: who it's for, what screen/flow changes, and what success looks like."
	}

	return result
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

// Service wraps Review with the audit log side effect.
type Service struct {
	activity store.ActivityStore
	now      func() time.Time
	logger   *slog.Logger
}

func NewService(activity store.ActivityStore, now func() time.Time, logger *slog.Logger) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{activity: activity, now: now, logger: logger}
}

// Submit reviews the idea and records the invocation for traceability.
func (s *Service) Submit(ctx context.Context, userID uint, idea string) (Result, error) {
	result := Review(idea)

	entry := &models.ActivityLog{
		UserID:    userID,
		Action:    "Submitted idea to Overseer",
		CreatedAt: s.now(),
	}

	if err := s.activity.AppendActivity(ctx, entry); err != nil {
		return Result{}, err
	}

	s.logger.Info("idea reviewed", "user_id", userID, "verdict", result.Verdict, "score", result.Score)

	return result, nil
}
