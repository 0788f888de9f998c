package services

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

const (
	MinAnswerValue = 1
	MaxAnswerValue = 5

	// GiftFilterThreshold is the minimum percentage for a user to count as
	// having a gift when admins filter results by category.
	GiftFilterThreshold = 60
	topGiftsCount       = 3
)

// AnswerRow is the scoring input: one answered question and its category.
type AnswerRow struct {
	GiftCategory string `json:"gift_category"`
	AnswerValue  int    `json:"answer_value"`
}

type GiftScore struct {
	Category     string `json:"category"`
	Score        int    `json:"score"`
	MaxScore     int    `json:"maxScore"`
	Percentage   int    `json:"percentage"`
	AverageScore string `json:"averageScore"`
	Description  string `json:"description"`
}

// CalculateGifts groups rows by category and ranks the categories by
// percentage, highest first. Categories with equal percentages keep the order
// in which they first appear in rows; no other tie-break is applied.
// descriptions may be nil; missing categories get an empty description.
func CalculateGifts(rows []AnswerRow, descriptions map[string]string) []GiftScore {
	type tally struct {
		total int
		count int
	}

	order := make([]string, 0)
	tallies := make(map[string]*tally)
	for _, row := range rows {
		t, ok := tallies[row.GiftCategory]
		if !ok {
			t = &tally{}
			tallies[row.GiftCategory] = t
			order = append(order, row.GiftCategory)
		}
		t.total += row.AnswerValue
		t.count++
	}

	gifts := make([]GiftScore, 0, len(order))
	for _, category := range order {
		t := tallies[category]
		maxScore := MaxAnswerValue * t.count
		gifts = append(gifts, GiftScore{
			Category:     category,
			Score:        t.total,
			MaxScore:     maxScore,
			Percentage:   roundPercent(t.total, maxScore),
			AverageScore: fmt.Sprintf("%.2f", float64(t.total)/float64(t.count)),
			Description:  descriptions[category],
		})
	}

	sort.SliceStable(gifts, func(i, j int) bool {
		return gifts[i].Percentage > gifts[j].Percentage
	})
	return gifts
}

// roundPercent is round-half-up of score/max*100.
func roundPercent(score, max int) int {
	if max == 0 {
		return 0
	}
	return int(math.Floor(float64(200*score+max) / float64(2*max)))
}

// TopGifts returns at most the first n entries of an already ranked list.
func TopGifts(gifts []GiftScore, n int) []GiftScore {
	if len(gifts) <= n {
		return gifts
	}
	return gifts[:n]
}

// HasGift reports whether category (case-insensitive) scored at least
// GiftFilterThreshold percent.
func HasGift(gifts []GiftScore, category string) bool {
	for _, g := range gifts {
		if strings.EqualFold(g.Category, category) && g.Percentage >= GiftFilterThreshold {
			return true
		}
	}
	return false
}
