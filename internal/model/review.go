package model

import "time"

// Review is a completed application's feedback shown on the landing page.
type Review struct {
	UserName   string    `json:"user_name"`
	Avatar     *string   `json:"avatar"`
	CourseName string    `json:"course_name"`
	Feedback   string    `json:"feedback"`
	CreatedAt  time.Time `json:"created_at"`
}
