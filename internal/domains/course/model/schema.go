package model

import "bootcamp-backend/internal/query"

var Schema = query.NewSchema("courses",
	query.Field{Name: "id", Column: "id", Type: query.UUID},
	query.Field{Name: "title", Column: "title", Type: query.Text},
	query.Field{Name: "description", Column: "description", Type: query.Text},
	query.Field{Name: "weeks", Column: "weeks", Type: query.Number},
	query.Field{Name: "tuition", Column: "tuition", Type: query.Number},
	query.Field{Name: "minimumSkill", Column: "minimum_skill", Type: query.Text},
	query.Field{Name: "scholarshipAvailable", Column: "scholarship_available", Type: query.Bool},
	query.Field{Name: "bootcamp", Column: "bootcamp_id", Type: query.UUID},
	query.Field{Name: "user", Column: "user_id", Type: query.UUID},
	query.Field{Name: "createdAt", Column: "created_at", Type: query.Time},
)
