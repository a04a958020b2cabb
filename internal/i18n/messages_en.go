package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.English
	for key, text := range en {
		_ = message.SetString(lang, key, text)
	}
}

var en = map[string]string{
	"error.internal":           "Internal server error",
	"error.route_not_found":    "Not found",
	"error.method_not_allowed": "Method not allowed",
	"error.too_large":          "Request too large",
	"error.rate_limited":       "Too many attempts, try again later",
	"request.invalid_body":     "Invalid request body",
	"request.invalid_limit":    "Invalid limit",
	"request.invalid_id":       "Invalid id",
	"request.invalid_page":     "Invalid page or page_size",

	"auth.required":            "Authentication required",
	"auth.forbidden":           "Access denied",
	"auth.admin_required":      "Access denied. Administrator rights required",
	"auth.members_only":        "Only regular users can do this",
	"auth.invalid_credentials": "Invalid login or password",
	"auth.incomplete":          "Login and password are required",
	"auth.unknown_action":      "Unknown action",
	"auth.login_ok":            "Signed in",
	"auth.logout_ok":           "Signed out",

	"register.invalid_login":     "Login must be 6-20 latin letters, digits, _ or -",
	"register.invalid_password":  "Password must be at least 8 characters",
	"register.invalid_full_name": "Full name may contain only Cyrillic letters, spaces and hyphens",
	"register.invalid_phone":     "Phone must look like 8(XXX)XXX-XX-XX",
	"register.invalid_email":     "Invalid email address",
	"register.login_taken":       "Login is already taken",
	"register.failed":            "Unable to register user",
	"register.ok":                "User registered",
	"profile.not_found":          "User not found",
	"profile.updated":            "Profile updated",
	"profile.avatar_missing":     "File upload failed",
	"profile.avatar_type":        "Unsupported file type. Allowed: JPEG, PNG, GIF, WebP",
	"profile.avatar_size":        "File too large. Maximum %d MB",
	"profile.avatar_saved":       "Avatar uploaded",

	"course.name_required": "Course name is required",
	"course.invalid_price": "Price cannot be negative",
	"course.name_taken":    "A course with this name already exists",
	"course.not_found":     "Course not found",
	"course.invalid_sort":  "Unknown sort order",
	"course.in_use":        "Cannot delete a course that has applications",
	"course.create_failed": "Unable to create course",
	"course.created":       "Course created",
	"course.updated":       "Course updated",
	"course.deleted":       "Course deleted",

	"application.fields_required":        "All fields are required",
	"application.invalid_start_date":     "Start date must be YYYY-MM-DD",
	"application.unknown_course":         "No such course",
	"application.created":                "Application created",
	"application.create_failed":          "Unable to create application",
	"application.not_found":              "Application not found",
	"application.status_required":        "Incomplete data",
	"application.invalid_status":         "Invalid application status",
	"application.member_complete_only":   "You can only mark your training as completed",
	"application.not_started":            "Only training that has started can be completed",
	"application.status_updated":         "Application status updated",
	"application.stale":                  "The application was changed, reload and retry",
	"application.feedback_required":      "Incomplete data",
	"application.feedback_not_completed": "Feedback only after completion",
	"application.feedback_saved":         "Feedback saved",

	"ticket.fields_required": "Subject and message are required",
	"ticket.created":         "Ticket created",
	"ticket.create_failed":   "Unable to create ticket",
	"ticket.not_found":       "Ticket not found",
	"ticket.readonly":        "Users cannot modify tickets",
	"ticket.invalid_status":  "Invalid ticket status",
	"ticket.update_required": "Provide a response or a status",
	"ticket.responded":       "Response added",
	"ticket.status_updated":  "Status updated",

	"status.New":                 "New",
	"status.InProgress":          "In progress",
	"status.Completed":           "Completed",
	"ticket_status.Open":         "Open",
	"ticket_status.InProcessing": "In processing",
	"ticket_status.Resolved":     "Resolved",
	"ticket_status.Closed":       "Closed",

	"review.anonymous": "User",
}
