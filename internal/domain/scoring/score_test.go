package scoring

import (
	"math"
	"testing"

	"github.com/openforecast/arena/internal/domain/category"
)

func boolPtr(v bool) *bool { return &v }

func TestBrierScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		p       float64
		outcome bool
		want    float64
	}{
		{name: "perfect yes", p: 1, outcome: true, want: 0},
		{name: "perfect no", p: 0, outcome: false, want: 0},
		{name: "maximally wrong", p: 0, outcome: true, want: 1},
		{name: "coin flip yes", p: 0.5, outcome: true, want: 0.25},
		{name: "coin flip no", p: 0.5, outcome: false, want: 0.25},
		{name: "confident yes happens", p: 0.9, outcome: true, want: 0.01},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := BrierScore(tc.p, tc.outcome)
			if math.Abs(got-tc.want) > 1e-12 {
				t.Fatalf("BrierScore(%v, %v) = %v, want %v", tc.p, tc.outcome, got, tc.want)
			}
		})
	}
}

func TestBrierScore_Bounds(t *testing.T) {
	t.Parallel()

	for p := 0.0; p <= 1.0; p += 0.05 {
		for _, outcome := range []bool{true, false} {
			got := BrierScore(p, outcome)
			if got < 0 || got > 1 {
				t.Fatalf("BrierScore(%v, %v) = %v out of [0,1]", p, outcome, got)
			}
		}
	}
}

func TestAggregate_ExcludesUnresolvedRows(t *testing.T) {
	t.Parallel()

	rows := []ScoredForecast{
		{UserID: "u1", UserName: "Alice", PropID: "p1", Category: category.KeyFor("politics"), Probability: 0.7, Outcome: nil},
	}

	got := Aggregate(rows)
	if len(got.Overall) != 0 {
		t.Fatalf("expected empty overall scores, got %+v", got.Overall)
	}
	if len(got.ByCategory) != 0 {
		t.Fatalf("expected empty category scores, got %+v", got.ByCategory)
	}
}

func TestAggregate_EmptyInput(t *testing.T) {
	t.Parallel()

	got := Aggregate(nil)
	if len(got.Overall) != 0 || len(got.ByCategory) != 0 {
		t.Fatalf("expected empty result, got %+v", got)
	}
}

func TestAggregate_CategoryPartition(t *testing.T) {
	t.Parallel()

	catA := category.KeyFor("a")
	catB := category.KeyFor("b")
	rows := []ScoredForecast{
		// (outcome - p)^2: 0.09, 0.16 in category a, 0.16 in category b.
		{UserID: "u1", UserName: "Alice", PropID: "p1", Category: catA, Probability: 0.7, Outcome: boolPtr(true)},
		{UserID: "u1", UserName: "Alice", PropID: "p2", Category: catA, Probability: 0.4, Outcome: boolPtr(false)},
		{UserID: "u1", UserName: "Alice", PropID: "p3", Category: catB, Probability: 0.6, Outcome: boolPtr(true)},
	}

	got := Aggregate(rows)

	if len(got.Overall) != 1 {
		t.Fatalf("expected 1 overall entry, got %d", len(got.Overall))
	}
	wantOverall := (0.09 + 0.16 + 0.16) / 3
	if math.Abs(got.Overall[0].Score-wantOverall) > 1e-9 {
		t.Fatalf("overall score = %v, want %v", got.Overall[0].Score, wantOverall)
	}
	if got.Overall[0].Resolved != 3 {
		t.Fatalf("overall resolved count = %d, want 3", got.Overall[0].Resolved)
	}

	if len(got.ByCategory) != 2 {
		t.Fatalf("expected 2 category entries, got %d", len(got.ByCategory))
	}
	byKey := make(map[category.Key]UserCategoryScore)
	for _, entry := range got.ByCategory {
		byKey[entry.Category] = entry
	}
	if math.Abs(byKey[catA].Score-0.125) > 1e-9 {
		t.Fatalf("category a score = %v, want 0.125", byKey[catA].Score)
	}
	if math.Abs(byKey[catB].Score-0.16) > 1e-9 {
		t.Fatalf("category b score = %v, want 0.16", byKey[catB].Score)
	}
}

func TestAggregate_UncategorizedIsItsOwnBucket(t *testing.T) {
	t.Parallel()

	rows := []ScoredForecast{
		{UserID: "u1", UserName: "Alice", PropID: "p1", Category: category.Uncategorized(), Probability: 0.8, Outcome: boolPtr(true)},
		{UserID: "u1", UserName: "Alice", PropID: "p2", Category: category.KeyFor("science"), Probability: 0.8, Outcome: boolPtr(true)},
	}

	got := Aggregate(rows)
	if len(got.ByCategory) != 2 {
		t.Fatalf("expected uncategorized and science buckets, got %+v", got.ByCategory)
	}
	if len(got.Overall) != 1 || got.Overall[0].Resolved != 2 {
		t.Fatalf("overall should still merge both rows: %+v", got.Overall)
	}
}

func TestAggregate_RankingAndTieBreak(t *testing.T) {
	t.Parallel()

	rows := []ScoredForecast{
		{UserID: "u2", UserName: "Bob", PropID: "p1", Category: category.Uncategorized(), Probability: 0.5, Outcome: boolPtr(true)},
		{UserID: "u1", UserName: "Alice", PropID: "p1", Category: category.Uncategorized(), Probability: 0.5, Outcome: boolPtr(true)},
		{UserID: "u3", UserName: "Cara", PropID: "p1", Category: category.Uncategorized(), Probability: 0.9, Outcome: boolPtr(true)},
	}

	got := Aggregate(rows)
	if len(got.Overall) != 3 {
		t.Fatalf("expected 3 overall entries, got %d", len(got.Overall))
	}

	// Cara's 0.01 beats the tied 0.25 pair; the tie orders by user id and
	// shares a rank.
	if got.Overall[0].UserID != "u3" || got.Overall[0].Rank != 1 {
		t.Fatalf("unexpected first entry: %+v", got.Overall[0])
	}
	if got.Overall[1].UserID != "u1" || got.Overall[1].Rank != 2 {
		t.Fatalf("unexpected second entry: %+v", got.Overall[1])
	}
	if got.Overall[2].UserID != "u2" || got.Overall[2].Rank != 2 {
		t.Fatalf("unexpected third entry: %+v", got.Overall[2])
	}
}

func TestAggregate_Idempotent(t *testing.T) {
	t.Parallel()

	rows := []ScoredForecast{
		{UserID: "u1", UserName: "Alice", PropID: "p1", Category: category.KeyFor("a"), Probability: 0.7, Outcome: boolPtr(true)},
		{UserID: "u2", UserName: "Bob", PropID: "p1", Category: category.KeyFor("a"), Probability: 0.2, Outcome: boolPtr(false)},
		{UserID: "u2", UserName: "Bob", PropID: "p2", Category: category.Uncategorized(), Probability: 0.9, Outcome: nil},
	}

	first := Aggregate(rows)
	second := Aggregate(rows)

	if len(first.Overall) != len(second.Overall) || len(first.ByCategory) != len(second.ByCategory) {
		t.Fatalf("repeated aggregation changed sizes: %+v vs %+v", first, second)
	}
	for i := range first.Overall {
		if first.Overall[i] != second.Overall[i] {
			t.Fatalf("overall[%d] differs: %+v vs %+v", i, first.Overall[i], second.Overall[i])
		}
	}
	for i := range first.ByCategory {
		if first.ByCategory[i] != second.ByCategory[i] {
			t.Fatalf("byCategory[%d] differs: %+v vs %+v", i, first.ByCategory[i], second.ByCategory[i])
		}
	}
}
