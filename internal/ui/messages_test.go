package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/HiteshJha1/telegram-keyword-bot/internal/domain/model"
)

func TestRenderAllKeywordsOrder(t *testing.T) {
	out := RenderAllKeywords(map[string][]string{
		"100":                 {"later"},
		"9":                   {"early"},
		model.DefaultLocation: {"first"},
	})

	mainIdx := strings.Index(out, "Main stream:")
	topic9Idx := strings.Index(out, "Topic 9:")
	topic100Idx := strings.Index(out, "Topic 100:")
	if mainIdx < 0 || topic9Idx < 0 || topic100Idx < 0 {
		t.Fatalf("missing location headers in output:\n%s", out)
	}
	if !(mainIdx < topic9Idx && topic9Idx < topic100Idx) {
		t.Fatalf("expected main stream, then topics ascending, got:\n%s", out)
	}
}

func TestRenderAllKeywordsEscapesHTML(t *testing.T) {
	out := RenderAllKeywords(map[string][]string{"5": {"<script>"}})
	if strings.Contains(out, "<script>") {
		t.Fatalf("keyword was not escaped:\n%s", out)
	}
	if !strings.Contains(out, "&lt;script&gt;") {
		t.Fatalf("expected escaped keyword:\n%s", out)
	}
}

func TestRenderLocationKeywords(t *testing.T) {
	out := RenderLocationKeywords("42", []string{"spam", "crypto"})
	if !strings.Contains(out, "topic 42") {
		t.Fatalf("expected topic label:\n%s", out)
	}
	if !strings.Contains(out, "• spam") || !strings.Contains(out, "• crypto") {
		t.Fatalf("expected bullet list of keywords:\n%s", out)
	}
}

func TestUserMutedPrefersUsername(t *testing.T) {
	until := time.Date(2026, 3, 1, 15, 4, 0, 0, time.UTC)

	withName := UserMuted("@alice", 7, until)
	if !strings.Contains(withName, "@alice") {
		t.Fatalf("expected username in notice: %s", withName)
	}
	if !strings.Contains(withName, "2026-03-01 15:04") {
		t.Fatalf("expected expiry timestamp in notice: %s", withName)
	}

	withoutName := UserMuted("", 7, until)
	if !strings.Contains(withoutName, "user 7") {
		t.Fatalf("expected user id fallback: %s", withoutName)
	}
}

func TestRenderMutesSortsUsers(t *testing.T) {
	out := RenderMutes(map[int64]time.Duration{
		30: time.Minute,
		10: 2 * time.Hour,
	})

	idx10 := strings.Index(out, "• 10")
	idx30 := strings.Index(out, "• 30")
	if idx10 < 0 || idx30 < 0 || idx10 > idx30 {
		t.Fatalf("expected users sorted ascending:\n%s", out)
	}
}

func TestFormatDuration(t *testing.T) {
	cases := map[time.Duration]string{
		13*time.Hour + 30*time.Minute: "13h 30m",
		5*time.Minute + 3*time.Second: "5m 3s",
		42 * time.Second:              "42s",
		0:                             "0s",
		-time.Minute:                  "0s",
	}
	for d, want := range cases {
		if got := FormatDuration(d); got != want {
			t.Fatalf("FormatDuration(%s) = %q, want %q", d, got, want)
		}
	}
}
