package model

const (
	// Rating
	MinRating = 1
	MaxRating = 10

	// Content limits
	MaxTitleLength = 100
)
