package domain

import "time"

// Review is a customer review attached to exactly one product.
type Review struct {
	ID           ID        `json:"id"`
	ProductID    ID        `json:"product"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	CustomerName string    `json:"customer_name"`
	Verified     bool      `json:"verified_purchase"`
	Location     string    `json:"location"`
	CreatedAt    time.Time `json:"created_at"`
}

// ReviewStats is the aggregate the review-stats endpoint serves. The
// endpoint is best-effort; callers must tolerate its absence.
type ReviewStats struct {
	TotalReviews  int     `json:"total_reviews"`
	AverageRating float64 `json:"average_rating"`
	FiveStar      int     `json:"five_star"`
	FourStar      int     `json:"four_star"`
	ThreeStar     int     `json:"three_star"`
	TwoStar       int     `json:"two_star"`
	OneStar       int     `json:"one_star"`
}
