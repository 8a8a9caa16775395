package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

var skills = []interface{}{SkillBeginner, SkillIntermediate, SkillAdvanced}

type CreateCourseRequest struct {
	Title                string          `json:"title"`
	Description          string          `json:"description"`
	Weeks                int             `json:"weeks"`
	Tuition              decimal.Decimal `json:"tuition"`
	MinimumSkill         string          `json:"minimumSkill"`
	ScholarshipAvailable bool            `json:"scholarshipAvailable"`
}

func (r CreateCourseRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required.Error("Please add a course title")),
		validation.Field(&r.Description, validation.Required.Error("Please add a description")),
		validation.Field(&r.Weeks, validation.Required.Error("Please add number of weeks"), validation.Min(1)),
		validation.Field(&r.Tuition, validation.By(nonNegative)),
		validation.Field(&r.MinimumSkill,
			validation.Required.Error("Please add a minimum skill"),
			validation.In(skills...),
		),
	)
}

type UpdateCourseRequest struct {
	Title                *string          `json:"title"`
	Description          *string          `json:"description"`
	Weeks                *int             `json:"weeks"`
	Tuition              *decimal.Decimal `json:"tuition"`
	MinimumSkill         *string          `json:"minimumSkill"`
	ScholarshipAvailable *bool            `json:"scholarshipAvailable"`
}

func (r UpdateCourseRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.NilOrNotEmpty),
		validation.Field(&r.Description, validation.NilOrNotEmpty),
		validation.Field(&r.Weeks, validation.NilOrNotEmpty, validation.Min(1)),
		validation.Field(&r.Tuition, validation.By(nonNegative)),
		validation.Field(&r.MinimumSkill, validation.NilOrNotEmpty, validation.In(skills...)),
	)
}

// Apply copies the set fields onto c
func (r UpdateCourseRequest) Apply(c *Course) {
	if r.Title != nil {
		c.Title = *r.Title
	}
	if r.Description != nil {
		c.Description = *r.Description
	}
	if r.Weeks != nil {
		c.Weeks = *r.Weeks
	}
	if r.Tuition != nil {
		c.Tuition = *r.Tuition
	}
	if r.MinimumSkill != nil {
		c.MinimumSkill = *r.MinimumSkill
	}
	if r.ScholarshipAvailable != nil {
		c.ScholarshipAvailable = *r.ScholarshipAvailable
	}
}

func nonNegative(value interface{}) error {
	var d decimal.Decimal
	switch v := value.(type) {
	case decimal.Decimal:
		d = v
	case *decimal.Decimal:
		if v == nil {
			return nil
		}
		d = *v
	default:
		return nil
	}
	if d.IsNegative() {
		return validation.NewError("validation_tuition_negative", "Tuition can not be negative")
	}
	return nil
}
