package model

import "bootcamp-backend/internal/query"

// Schema lists the user fields the admin listing may filter, sort and select
var Schema = query.NewSchema("users",
	query.Field{Name: "id", Column: "id", Type: query.UUID},
	query.Field{Name: "name", Column: "name", Type: query.Text},
	query.Field{Name: "email", Column: "email", Type: query.Text},
	query.Field{Name: "role", Column: "role", Type: query.Text},
	query.Field{Name: "createdAt", Column: "created_at", Type: query.Time},
)
