package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"bootcamp-backend/internal/infrastructure/geocoder"
)

// DefaultPhoto is stored until a photo is uploaded
const DefaultPhoto = "no-photo.jpg"

// Careers a bootcamp may prepare students for
const (
	CareerWebDevelopment    = "Web Development"
	CareerMobileDevelopment = "Mobile Development"
	CareerUIUX              = "UI/UX"
	CareerDataScience       = "Data Science"
	CareerBusiness          = "Business"
	CareerOther             = "Other"
)

// Careers lists every accepted career
var Careers = []interface{}{
	CareerWebDevelopment,
	CareerMobileDevelopment,
	CareerUIUX,
	CareerDataScience,
	CareerBusiness,
	CareerOther,
}

// Bootcamp is a training provider published by a user
type Bootcamp struct {
	ID               uuid.UUID           `json:"id"`
	UserID           uuid.UUID           `json:"user"`
	Name             string              `json:"name"`
	Slug             string              `json:"slug"`
	Description      string              `json:"description"`
	Website          *string             `json:"website,omitempty"`
	Phone            *string             `json:"phone,omitempty"`
	Email            *string             `json:"email,omitempty"`
	Address          string              `json:"address"`
	Latitude         *float64            `json:"latitude,omitempty"`
	Longitude        *float64            `json:"longitude,omitempty"`
	FormattedAddress *string             `json:"formattedAddress,omitempty"`
	Street           *string             `json:"street,omitempty"`
	City             *string             `json:"city,omitempty"`
	State            *string             `json:"state,omitempty"`
	Zipcode          *string             `json:"zipcode,omitempty"`
	Country          *string             `json:"country,omitempty"`
	Careers          []string            `json:"careers"`
	AverageRating    decimal.NullDecimal `json:"averageRating"`
	AverageCost      decimal.NullDecimal `json:"averageCost"`
	Photo            string              `json:"photo"`
	Housing          bool                `json:"housing"`
	JobAssistance    bool                `json:"jobAssistance"`
	JobGuarantee     bool                `json:"jobGuarantee"`
	AcceptGi         bool                `json:"acceptGi"`
	CreatedAt        time.Time           `json:"createdAt"`
}

// OwnerID implements ownership.Ownable
func (b *Bootcamp) OwnerID() uuid.UUID {
	return b.UserID
}

// SetLocation copies a geocoding result onto the bootcamp
func (b *Bootcamp) SetLocation(loc *geocoder.Location) {
	if loc == nil {
		return
	}
	lat, lng := loc.Latitude, loc.Longitude
	b.Latitude = &lat
	b.Longitude = &lng
	b.FormattedAddress = optional(loc.FormattedAddress)
	b.Street = optional(loc.Street)
	b.City = optional(loc.City)
	b.State = optional(loc.State)
	b.Zipcode = optional(loc.Zipcode)
	b.Country = optional(loc.Country)
}

// ClearLocation drops every geocoded field
func (b *Bootcamp) ClearLocation() {
	b.Latitude, b.Longitude = nil, nil
	b.FormattedAddress, b.Street, b.City = nil, nil, nil
	b.State, b.Zipcode, b.Country = nil, nil, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
