package utils

import (
	"net/mail"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/iliyamo/course-enrollment/internal/apperr"
)

// DateLayout is the wire and storage format of calendar dates.
const DateLayout = "2006-01-02"

// PasswordMinLen and PasswordMaxLen bound passwords in bytes; bcrypt ignores
// anything past 72 bytes.
const (
	PasswordMinLen = 8
	PasswordMaxLen = 72
)

var (
	loginRe    = regexp.MustCompile(`^[A-Za-z0-9_-]{6,20}$`)
	fullNameRe = regexp.MustCompile(`^[А-Яа-яЁё\s-]+$`)
	phoneRe    = regexp.MustCompile(`^8\(\d{3}\)\d{3}-\d{2}-\d{2}$`)
)

// Registration is the raw input of a sign-up form.
type Registration struct {
	Login    string
	Password string
	FullName string
	Phone    string
	Email    string
}

// Normalize trims surrounding whitespace of every field except the password.
func (r Registration) Normalize() Registration {
	r.Login = strings.TrimSpace(r.Login)
	r.FullName = strings.Join(strings.Fields(r.FullName), " ")
	r.Phone = strings.TrimSpace(r.Phone)
	r.Email = strings.TrimSpace(r.Email)
	return r
}

// Validate checks every field and returns the first failure.
func (r Registration) Validate() error {
	if err := ValidateLogin(r.Login); err != nil {
		return err
	}
	if err := ValidatePassword(r.Password); err != nil {
		return err
	}
	return ValidateContact(r.FullName, r.Phone, r.Email)
}

func ValidateLogin(login string) error {
	if !loginRe.MatchString(login) {
		return apperr.Validation("register.invalid_login")
	}
	return nil
}

func ValidatePassword(password string) error {
	if len(password) < PasswordMinLen || len(password) > PasswordMaxLen {
		return apperr.Validation("register.invalid_password")
	}
	return nil
}

// ValidateContact checks the profile fields shared by sign-up and profile
// update.
func ValidateContact(fullName, phone, email string) error {
	if fullName == "" || !fullNameRe.MatchString(fullName) || utf8.RuneCountInString(fullName) > 255 {
		return apperr.Validation("register.invalid_full_name")
	}
	if !phoneRe.MatchString(phone) {
		return apperr.Validation("register.invalid_phone")
	}
	if !ValidEmail(email) {
		return apperr.Validation("register.invalid_email")
	}
	return nil
}

// ValidEmail accepts a bare address such as user@example.com. Display names
// and addresses without a dotted domain are rejected.
func ValidEmail(email string) bool {
	if email == "" || len(email) > 255 {
		return false
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || addr.Name != "" {
		return false
	}
	at := strings.LastIndexByte(email, '@')
	return at > 0 && strings.Contains(email[at+1:], ".")
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, bool) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
