package model

import "time"

// RoleProfile is a reusable interview template: the role being hired
// for, its job description, and the skills the interviewer probes.
type RoleProfile struct {
	Slug           string    `json:"slug" bson:"slug"`
	Role           string    `json:"role" bson:"role"`
	JobDescription string    `json:"jd" bson:"jd"`
	Skills         []string  `json:"skills" bson:"skills"`
	CreatedAt      time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt" bson:"updatedAt"`
}
