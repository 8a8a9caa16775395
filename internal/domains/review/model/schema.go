package model

import "bootcamp-backend/internal/query"

var Schema = query.NewSchema("reviews",
	query.Field{Name: "id", Column: "id", Type: query.UUID},
	query.Field{Name: "title", Column: "title", Type: query.Text},
	query.Field{Name: "text", Column: "text", Type: query.Text},
	query.Field{Name: "rating", Column: "rating", Type: query.Number},
	query.Field{Name: "bootcamp", Column: "bootcamp_id", Type: query.UUID},
	query.Field{Name: "user", Column: "user_id", Type: query.UUID},
	query.Field{Name: "createdAt", Column: "created_at", Type: query.Time},
)
