// Package validate holds request field validation run before any service or
// calculator logic.
package validate

import (
	"fmt"
	"regexp"
)

var emailRx = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

const minPasswordLen = 8

// Required reports a missing mandatory field.
func Required(field string) error {
	return fmt.Errorf("%s is required", field)
}

func Email(v string) error {
	if v == "" {
		return fmt.Errorf("email is required")
	}
	if len(v) > 320 || !emailRx.MatchString(v) {
		return fmt.Errorf("invalid email")
	}
	return nil
}

func Password(v string) error {
	if len(v) < minPasswordLen {
		return fmt.Errorf("password must be at least %d characters", minPasswordLen)
	}
	return nil
}

// Rating checks a subjective 1-5 rating field.
func Rating(field string, v int) error {
	if v < 1 || v > 5 {
		return fmt.Errorf("%s must be between 1 and 5", field)
	}
	return nil
}

// OptionalRating checks a rating supplied in a patch.
func OptionalRating(field string, v *int) error {
	if v == nil {
		return nil
	}
	return Rating(field, *v)
}

func NonNegative(field string, v int) error {
	if v < 0 {
		return fmt.Errorf("%s must not be negative", field)
	}
	return nil
}

func OptionalNonNegative(field string, v *int) error {
	if v == nil {
		return nil
	}
	return NonNegative(field, *v)
}

var frequencies = map[string]bool{"daily": true, "weekdays": true, "weekends": true, "never": true}

// Frequency checks a reminder frequency value.
func Frequency(field string, v *string) error {
	if v == nil {
		return nil
	}
	if !frequencies[*v] {
		return fmt.Errorf("%s must be one of daily, weekdays, weekends, never", field)
	}
	return nil
}

var clockRx = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// ClockString checks an "HH:MM" reminder time carried as a plain string.
func ClockString(field string, v *string) error {
	if v == nil {
		return nil
	}
	if !clockRx.MatchString(*v) {
		return fmt.Errorf("%s must be in HH:MM format", field)
	}
	return nil
}
