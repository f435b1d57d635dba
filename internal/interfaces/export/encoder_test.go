package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/openforecast/arena/internal/domain/scoring"
)

func TestEncoderEnvelope(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	enc := NewEncoder(&out)
	enc.now = func() time.Time {
		return time.Date(2026, 8, 1, 10, 30, 0, 0, time.UTC)
	}

	result := scoring.Result{
		Overall: []scoring.UserScore{
			{UserID: "usr-1", UserName: "Ada", Score: 0.09, Resolved: 3, Rank: 1},
		},
	}
	if err := enc.Encode("leaderboard", result); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	var doc struct {
		Kind        string         `json:"kind"`
		GeneratedAt string         `json:"generatedAt"`
		Data        scoring.Result `json:"data"`
	}
	if err := sonic.Unmarshal(out.Bytes(), &doc); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if doc.Kind != "leaderboard" {
		t.Errorf("Kind = %s, want leaderboard", doc.Kind)
	}
	if doc.GeneratedAt != "2026-08-01T10:30:00Z" {
		t.Errorf("GeneratedAt = %s, want 2026-08-01T10:30:00Z", doc.GeneratedAt)
	}
	if len(doc.Data.Overall) != 1 || doc.Data.Overall[0].UserID != "usr-1" {
		t.Errorf("Data.Overall = %+v, want usr-1", doc.Data.Overall)
	}
	if !strings.HasSuffix(out.String(), "\n") {
		t.Error("output missing trailing newline")
	}
}

func TestEncoderRequiresKind(t *testing.T) {
	t.Parallel()

	enc := NewEncoder(&bytes.Buffer{})
	if err := enc.Encode("", nil); err == nil {
		t.Fatal("Encode(\"\") error = nil, want error")
	}
}

func TestEncoderPretty(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	enc := NewPrettyEncoder(&out)

	if err := enc.Encode("stats", map[string]int{"total": 4}); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if !strings.Contains(out.String(), "\n  ") {
		t.Error("pretty output is not indented")
	}
}
