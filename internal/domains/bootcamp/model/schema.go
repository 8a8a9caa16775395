package model

import "bootcamp-backend/internal/query"

// Schema is the allow-list used by the bootcamp listing
var Schema = query.NewSchema("bootcamps",
	query.Field{Name: "id", Column: "id", Type: query.UUID},
	query.Field{Name: "user", Column: "user_id", Type: query.UUID},
	query.Field{Name: "name", Column: "name", Type: query.Text},
	query.Field{Name: "slug", Column: "slug", Type: query.Text},
	query.Field{Name: "description", Column: "description", Type: query.Text},
	query.Field{Name: "website", Column: "website", Type: query.Text},
	query.Field{Name: "phone", Column: "phone", Type: query.Text},
	query.Field{Name: "email", Column: "email", Type: query.Text},
	query.Field{Name: "address", Column: "address", Type: query.Text},
	query.Field{Name: "latitude", Column: "latitude", Type: query.Number},
	query.Field{Name: "longitude", Column: "longitude", Type: query.Number},
	query.Field{Name: "formattedAddress", Column: "formatted_address", Type: query.Text},
	query.Field{Name: "street", Column: "street", Type: query.Text},
	query.Field{Name: "city", Column: "city", Type: query.Text},
	query.Field{Name: "state", Column: "state", Type: query.Text},
	query.Field{Name: "zipcode", Column: "zipcode", Type: query.Text},
	query.Field{Name: "country", Column: "country", Type: query.Text},
	query.Field{Name: "careers", Column: "careers", Type: query.TextArray},
	query.Field{Name: "averageRating", Column: "average_rating", Type: query.Number},
	query.Field{Name: "averageCost", Column: "average_cost", Type: query.Number},
	query.Field{Name: "photo", Column: "photo", Type: query.Text},
	query.Field{Name: "housing", Column: "housing", Type: query.Bool},
	query.Field{Name: "jobAssistance", Column: "job_assistance", Type: query.Bool},
	query.Field{Name: "jobGuarantee", Column: "job_guarantee", Type: query.Bool},
	query.Field{Name: "acceptGi", Column: "accept_gi", Type: query.Bool},
	query.Field{Name: "createdAt", Column: "created_at", Type: query.Time},
)

// Summary is the projection nested into courses and reviews
var Summary = &query.Expansion{
	As:          "bootcamp",
	Target:      Schema,
	LocalColumn: "bootcamp_id",
	Select:      []string{"id", "name", "description"},
}
