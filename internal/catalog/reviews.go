package catalog

import (
	"math"

	"bunny-store/internal/domain"
)

// RatingBucket is one row of the per-star breakdown, Stars 5 down to 1.
type RatingBucket struct {
	Stars      int
	Count      int
	Percentage float64
}

// ReviewSummary aggregates a product's reviews for display.
type ReviewSummary struct {
	Total        int
	Average      float64
	Distribution [5]RatingBucket
}

// Summarize computes the rating summary shown next to a review list:
// average to one decimal plus the five-star-to-one-star distribution.
// Ratings outside 1..5 are counted in the total but bucketed nowhere.
func Summarize(reviews []domain.Review) ReviewSummary {
	summary := ReviewSummary{Total: len(reviews)}
	for i := range summary.Distribution {
		summary.Distribution[i].Stars = 5 - i
	}
	if len(reviews) == 0 {
		return summary
	}

	sum := 0
	for _, r := range reviews {
		sum += r.Rating
		if r.Rating >= 1 && r.Rating <= 5 {
			summary.Distribution[5-r.Rating].Count++
		}
	}
	summary.Average = math.Round(float64(sum)/float64(len(reviews))*10) / 10
	for i := range summary.Distribution {
		summary.Distribution[i].Percentage = float64(summary.Distribution[i].Count) / float64(len(reviews)) * 100
	}
	return summary
}
