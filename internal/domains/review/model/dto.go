package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// =====================================================
// REQUEST DTOs
// =====================================================

type CreateReviewRequest struct {
	Title  string `json:"title"`
	Text   string `json:"text"`
	Rating int    `json:"rating"`
}

func (r CreateReviewRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("Please add a title for the review"),
			validation.RuneLength(1, MaxTitleLength),
		),
		validation.Field(&r.Text, validation.Required.Error("Please add some text")),
		validation.Field(&r.Rating,
			validation.Required.Error("Please add a rating between 1 and 10"),
			validation.Min(MinRating), validation.Max(MaxRating),
		),
	)
}

type UpdateReviewRequest struct {
	Title  *string `json:"title"`
	Text   *string `json:"text"`
	Rating *int    `json:"rating"`
}

func (r UpdateReviewRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.NilOrNotEmpty, validation.RuneLength(1, MaxTitleLength)),
		validation.Field(&r.Text, validation.NilOrNotEmpty),
		validation.Field(&r.Rating, validation.NilOrNotEmpty, validation.Min(MinRating), validation.Max(MaxRating)),
	)
}

// Apply copies the set fields onto rv
func (r UpdateReviewRequest) Apply(rv *Review) {
	if r.Title != nil {
		rv.Title = *r.Title
	}
	if r.Text != nil {
		rv.Text = *r.Text
	}
	if r.Rating != nil {
		rv.Rating = *r.Rating
	}
}
