package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail checks if an email address is valid.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

// ValidateDate checks a YYYY-MM-DD date string.
func ValidateDate(date string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("invalid date format: %s", date)
	}
	return nil
}

// ValidateTime checks an HH:MM clock string.
func ValidateTime(clock string) error {
	if _, err := time.Parse("15:04", clock); err != nil {
		return fmt.Errorf("invalid time format: %s", clock)
	}
	return nil
}

// ValidatePhone checks a phone number: digits only after stripping the
// leading + and separator dashes.
func ValidatePhone(phone string) error {
	if phone == "" {
		return fmt.Errorf("phone number is required")
	}
	stripped := strings.ReplaceAll(strings.ReplaceAll(phone, "+", ""), "-", "")
	if stripped == "" {
		return fmt.Errorf("phone number is required")
	}
	for _, r := range stripped {
		if r < '0' || r > '9' {
			return fmt.Errorf("phone number must contain digits only")
		}
	}
	return nil
}

// ValidateRating checks the 0-5 rating bounds.
func ValidateRating(rating float64) error {
	if rating < 0 || rating > 5 {
		return fmt.Errorf("rating must be between 0 and 5, got %v", rating)
	}
	return nil
}
