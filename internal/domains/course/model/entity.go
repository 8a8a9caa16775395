package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Minimum skill levels
const (
	SkillBeginner     = "beginner"
	SkillIntermediate = "intermediate"
	SkillAdvanced     = "advanced"
)

// Course belongs to a bootcamp and is owned by the user who added it
type Course struct {
	ID                   uuid.UUID       `json:"id"`
	BootcampID           uuid.UUID       `json:"bootcamp"`
	UserID               uuid.UUID       `json:"user"`
	Title                string          `json:"title"`
	Description          string          `json:"description"`
	Weeks                int             `json:"weeks"`
	Tuition              decimal.Decimal `json:"tuition"`
	MinimumSkill         string          `json:"minimumSkill"`
	ScholarshipAvailable bool            `json:"scholarshipAvailable"`
	CreatedAt            time.Time       `json:"createdAt"`
}

// OwnerID implements ownership.Ownable
func (c *Course) OwnerID() uuid.UUID {
	return c.UserID
}

var ten = decimal.NewFromInt(10)

// AverageCost rounds a mean tuition up to the next multiple of ten.
// A bootcamp without courses has no average.
func AverageCost(mean decimal.NullDecimal) decimal.NullDecimal {
	if !mean.Valid {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(mean.Decimal.Div(ten).Ceil().Mul(ten))
}
