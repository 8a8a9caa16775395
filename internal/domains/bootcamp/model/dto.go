package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// ========================================
// REQUEST DTOs
// ========================================

type CreateBootcampRequest struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Website       *string  `json:"website"`
	Phone         *string  `json:"phone"`
	Email         *string  `json:"email"`
	Address       string   `json:"address"`
	Careers       []string `json:"careers"`
	Housing       bool     `json:"housing"`
	JobAssistance bool     `json:"jobAssistance"`
	JobGuarantee  bool     `json:"jobGuarantee"`
	AcceptGi      bool     `json:"acceptGi"`
}

func (r CreateBootcampRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("Please add a name"),
			validation.RuneLength(1, 50).Error("Name can not be more than 50 characters"),
		),
		validation.Field(&r.Description,
			validation.Required.Error("Please add a description"),
			validation.RuneLength(1, 500).Error("Description can not be more than 500 characters"),
		),
		validation.Field(&r.Website, is.URL.Error("Please use a valid URL with HTTP or HTTPS")),
		validation.Field(&r.Phone, validation.RuneLength(0, 20).Error("Phone number can not be longer than 20 characters")),
		validation.Field(&r.Email, is.EmailFormat.Error("Please add a valid email")),
		validation.Field(&r.Address, validation.Required.Error("Please add an address")),
		validation.Field(&r.Careers,
			validation.Required.Error("Please add at least one career"),
			validation.Each(validation.In(Careers...)),
		),
	)
}

// UpdateBootcampRequest carries only the fields being changed
type UpdateBootcampRequest struct {
	Name          *string   `json:"name"`
	Description   *string   `json:"description"`
	Website       *string   `json:"website"`
	Phone         *string   `json:"phone"`
	Email         *string   `json:"email"`
	Address       *string   `json:"address"`
	Careers       *[]string `json:"careers"`
	Housing       *bool     `json:"housing"`
	JobAssistance *bool     `json:"jobAssistance"`
	JobGuarantee  *bool     `json:"jobGuarantee"`
	AcceptGi      *bool     `json:"acceptGi"`
}

func (r UpdateBootcampRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.RuneLength(1, 50)),
		validation.Field(&r.Description, validation.NilOrNotEmpty, validation.RuneLength(1, 500)),
		validation.Field(&r.Website, is.URL),
		validation.Field(&r.Phone, validation.RuneLength(0, 20)),
		validation.Field(&r.Email, is.EmailFormat),
		validation.Field(&r.Address, validation.NilOrNotEmpty),
		validation.Field(&r.Careers, validation.NilOrNotEmpty, validation.By(validCareers)),
	)
}

// Apply copies the set fields onto b and reports whether the address changed
func (r UpdateBootcampRequest) Apply(b *Bootcamp) (addressChanged bool) {
	if r.Name != nil {
		b.Name = *r.Name
	}
	if r.Description != nil {
		b.Description = *r.Description
	}
	if r.Website != nil {
		b.Website = r.Website
	}
	if r.Phone != nil {
		b.Phone = r.Phone
	}
	if r.Email != nil {
		b.Email = r.Email
	}
	if r.Address != nil && *r.Address != b.Address {
		b.Address = *r.Address
		addressChanged = true
	}
	if r.Careers != nil {
		b.Careers = *r.Careers
	}
	if r.Housing != nil {
		b.Housing = *r.Housing
	}
	if r.JobAssistance != nil {
		b.JobAssistance = *r.JobAssistance
	}
	if r.JobGuarantee != nil {
		b.JobGuarantee = *r.JobGuarantee
	}
	if r.AcceptGi != nil {
		b.AcceptGi = *r.AcceptGi
	}
	return addressChanged
}

func validCareers(value interface{}) error {
	careers, ok := value.(*[]string)
	if !ok || careers == nil {
		return nil
	}
	return validation.Validate(*careers, validation.Each(validation.In(Careers...)))
}

// PhotoResponse is returned after an upload
type PhotoResponse struct {
	Photo string `json:"photo"`
	URL   string `json:"url"`
}
