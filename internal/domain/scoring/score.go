package scoring

import (
	"sort"

	"github.com/openforecast/arena/internal/domain/category"
)

// BrierScore is the squared error between a probability forecast and the
// binary outcome. 0 is a perfect forecast, 1 is maximally wrong. Callers are
// responsible for validating p into [0,1] before it reaches scoring.
func BrierScore(p float64, outcome bool) float64 {
	realized := 0.0
	if outcome {
		realized = 1.0
	}
	diff := realized - p
	return diff * diff
}

// ScoredForecast is a forecast joined with its prop's category and, when
// resolved, the resolution outcome. Score is nil until the prop resolves.
type ScoredForecast struct {
	UserID      string
	UserName    string
	PropID      string
	Category    category.Key
	Probability float64
	Outcome     *bool
	Score       *float64
}

// Resolved reports whether the row carries an outcome and therefore a score.
func (f ScoredForecast) Resolved() bool {
	return f.Outcome != nil
}

// WithScore returns a copy of the row with Score derived from its outcome.
// Unresolved rows come back unchanged with a nil score.
func (f ScoredForecast) WithScore() ScoredForecast {
	if f.Outcome == nil {
		f.Score = nil
		return f
	}
	score := BrierScore(f.Probability, *f.Outcome)
	f.Score = &score
	return f
}

// UserScore is a user's mean Brier score across all resolved forecasts in
// scope. Resolved carries the row count behind the mean.
type UserScore struct {
	UserID   string  `json:"userId"`
	UserName string  `json:"userName"`
	Score    float64 `json:"score"`
	Resolved int     `json:"resolved"`
	Rank     int     `json:"rank"`
}

// UserCategoryScore is a user's mean Brier score within one category bucket.
type UserCategoryScore struct {
	UserID   string       `json:"userId"`
	UserName string       `json:"userName"`
	Category category.Key `json:"category"`
	Score    float64      `json:"score"`
	Resolved int          `json:"resolved"`
	Rank     int          `json:"rank"`
}

// Result holds both leaderboard views produced by Aggregate.
type Result struct {
	Overall    []UserScore         `json:"overall"`
	ByCategory []UserCategoryScore `json:"byCategory"`
}

type userKey struct {
	userID string
}

type userCategoryKey struct {
	userID   string
	category category.Key
}

type accumulator struct {
	userName string
	sum      float64
	count    int
}

func (a accumulator) mean() float64 {
	return a.sum / float64(a.count)
}

// Aggregate groups scored rows into per-user overall scores and
// per-(user, category) scores. Only resolved rows contribute; a user with no
// resolved forecasts does not appear in either view. The uncategorized
// bucket is a grouping key of its own, distinct from every named category.
// Output ordering is ranked ascending (lower Brier score is better), ties
// broken by ascending user id so identical inputs always produce identical
// output.
func Aggregate(rows []ScoredForecast) Result {
	overall := make(map[userKey]*accumulator)
	byCategory := make(map[userCategoryKey]*accumulator)

	for _, row := range rows {
		row = row.WithScore()
		if row.Score == nil {
			continue
		}

		ok := userKey{userID: row.UserID}
		if _, exists := overall[ok]; !exists {
			overall[ok] = &accumulator{userName: row.UserName}
		}
		overall[ok].sum += *row.Score
		overall[ok].count++

		ck := userCategoryKey{userID: row.UserID, category: row.Category}
		if _, exists := byCategory[ck]; !exists {
			byCategory[ck] = &accumulator{userName: row.UserName}
		}
		byCategory[ck].sum += *row.Score
		byCategory[ck].count++
	}

	result := Result{
		Overall:    make([]UserScore, 0, len(overall)),
		ByCategory: make([]UserCategoryScore, 0, len(byCategory)),
	}
	for key, acc := range overall {
		result.Overall = append(result.Overall, UserScore{
			UserID:   key.userID,
			UserName: acc.userName,
			Score:    acc.mean(),
			Resolved: acc.count,
		})
	}
	for key, acc := range byCategory {
		result.ByCategory = append(result.ByCategory, UserCategoryScore{
			UserID:   key.userID,
			UserName: acc.userName,
			Category: key.category,
			Score:    acc.mean(),
			Resolved: acc.count,
		})
	}

	rankOverall(result.Overall)
	rankByCategory(result.ByCategory)
	return result
}

// rankOverall sorts ascending by score with a deterministic user-id
// tie-break and assigns competition ranks: equal scores share a rank.
func rankOverall(scores []UserScore) {
	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].Score != scores[j].Score {
			return scores[i].Score < scores[j].Score
		}
		return scores[i].UserID < scores[j].UserID
	})

	lastScore := 0.0
	rank := 0
	for idx := range scores {
		if idx == 0 || scores[idx].Score != lastScore {
			rank = idx + 1
			lastScore = scores[idx].Score
		}
		scores[idx].Rank = rank
	}
}

// rankByCategory orders by category bucket first so each bucket forms a
// contiguous, independently ranked leaderboard.
func rankByCategory(scores []UserCategoryScore) {
	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].Category != scores[j].Category {
			return scores[i].Category.String() < scores[j].Category.String()
		}
		if scores[i].Score != scores[j].Score {
			return scores[i].Score < scores[j].Score
		}
		return scores[i].UserID < scores[j].UserID
	})

	var current category.Key
	lastScore := 0.0
	rank := 0
	position := 0
	for idx := range scores {
		if idx == 0 || scores[idx].Category != current {
			current = scores[idx].Category
			position = 0
		}
		position++
		if position == 1 || scores[idx].Score != lastScore {
			rank = position
			lastScore = scores[idx].Score
		}
		scores[idx].Rank = rank
	}
}
