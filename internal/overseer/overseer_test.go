package overseer

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/fanzoftheone/taskdeck/internal/models"
)

type stubActivity struct {
	entries []models.ActivityLog
}

func (s *stubActivity) AppendActivity(ctx context.Context, entry *models.ActivityLog) error {
	s.entries = append(s.entries, *entry)
	return nil
}

func (s *stubActivity) ListActivityByOwner(ctx context.Context, userID uint) ([]models.ActivityLog, error) {
	return s.entries, nil
}

func TestReviewApprovesStrongIdea(t *testing.T) {
	idea := "Add a billing page for admin users to manage subscriptions, phase 1 MVP scope defined " +
		"with acceptance criteria and a very long description exceeding eighty characters total"

	result := Review(idea)

	if result.Score != 4 {
		t.Fatalf("expected score 4, got %d", result.Score)
	}
	if result.Verdict != VerdictApproved {
		t.Fatalf("expected APPROVED, got %q", result.Verdict)
	}
	if result.Tone != "Strong signal. This is clear enough to break into tasks and ship." {
		t.Fatalf("unexpected tone %q", result.Tone)
	}
}

func TestReviewConditionalAtTwoSignals(t *testing.T) {
	// Audience + delivery keywords, under 80 chars, no revenue keywords.
	result := Review("Give the admin a milestone view")

	if result.Score != 2 {
		t.Fatalf("expected score 2, got %d", result.Score)
	}
	if result.Verdict != VerdictConditional {
		t.Fatalf("expected CONDITIONAL, got %q", result.Verdict)
	}
	if result.Tone != "Close. Add acceptance criteria + data model changes, then we can greenlight." {
		t.Fatalf("unexpected tone %q", result.Tone)
	}
}

func TestReviewRejectsVagueIdea(t *testing.T) {
	result := Review("make it better")

	if result.Score != 0 {
		t.Fatalf("expected score 0, got %d", result.Score)
	}
	if result.Verdict != VerdictRejected {
		t.Fatalf("expected REJECTED, got %q", result.Verdict)
	}
	if result.Tone != "Too vague. Add: who it's for, what screen/flow changes, and what success looks like." {
		t.Fatalf("unexpected tone %q", result.Tone)
	}
}

func TestReviewMatchesKeywordsCaseInsensitively(t *testing.T) {
	result := Review("ADMIN Billing MVP")

	if result.Score != 3 {
		t.Fatalf("expected score 3, got %d", result.Score)
	}
	if result.Verdict != VerdictApproved {
		t.Fatalf("expected APPROVED, got %q", result.Verdict)
	}
}

func TestReviewCountsCharactersNotBytes(t *testing.T) {
	// 44 characters but over 100 bytes: the length point must not trigger,
	// leaving audience + revenue at score 2.
	short := "billing admin " + strings.Repeat("仛", 30)

	result := Review(short)

	if result.Score != 2 {
		t.Fatalf("expected score 2, got %d", result.Score)
	}
	if result.Verdict != VerdictConditional {
		t.Fatalf("expected CONDITIONAL, got %q", result.Verdict)
	}

	// 94 characters of the same text does earn the length point.
	long := "billing admin " + strings.Repeat("仛", 80)

	result = Review(long)

	if result.Score != 3 {
		t.Fatalf("expected score 3, got %d", result.Score)
	}
	if result.Verdict != VerdictApproved {
		t.Fatalf("expected APPROVED, got %q", result.Verdict)
	}
}

func TestApprovalRendersVerdictToneAndChecklist(t *testing.T) {
	approval := Review("make it better").Approval()

	if !strings.HasPrefix(approval, "REJECTED\n\n") {
		t.Fatalf("approval must lead with the verdict, got %q", approval)
	}
	for _, line := range []string{
		"Checklist:",
		"- Who is the user (role)?",
		"- What is the exact workflow?",
		"- What data is created/updated?",
		"- What are the edge cases?",
		"- What does success look like (metrics)?",
	} {
		if !strings.Contains(approval, line) {
			t.Fatalf("approval missing %q", line)
		}
	}
}

func TestSubmitLogsEveryInvocation(t *testing.T) {
	activity := &stubActivity{}
	clock := time.Date(2026, 8, 30, 11, 0, 0, 0, time.UTC)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc := NewService(activity, func() time.Time { return clock }, log)

	if _, err := svc.Submit(context.Background(), 7, "make it better"); err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	if len(activity.entries) != 1 {
		t.Fatalf("expected 1 activity entry, got %d", len(activity.entries))
	}
	entry := activity.entries[0]
	if entry.Action != "Submitted idea to Overseer" {
		t.Fatalf("unexpected action %q", entry.Action)
	}
	if entry.UserID != 7 || entry.TaskID != nil {
		t.Fatalf("unexpected entry %+v", entry)
	}
	if !entry.CreatedAt.Equal(clock) {
		t.Fatalf("expected clock timestamp, got %v", entry.CreatedAt)
	}
}
