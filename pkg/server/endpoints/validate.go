package endpoints

import (
	"fmt"
	"regexp"
	"strings"

	"topodaily/pkg/reference"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^(\+\d{1,3}[- ]?)?\d{9,15}$`)
)

// validateEmail checks an optional email address. Blank is allowed.
func validateEmail(email string) error {
	if email == "" {
		return nil
	}
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email address")
	}
	return nil
}

// validatePhone checks an optional phone number. Blank is allowed.
func validatePhone(phone string) error {
	if phone == "" {
		return nil
	}
	if !phoneRegex.MatchString(phone) {
		return fmt.Errorf("invalid phone number")
	}
	return nil
}

// validateCredentials enforces the minimum username and password shape
// shared by signup and the admin user-creation endpoint.
func validateCredentials(username, password string) error {
	if strings.TrimSpace(username) == "" {
		return fmt.Errorf("username is required")
	}
	if len(password) < 4 {
		return fmt.Errorf("password must be at least 4 characters")
	}
	return nil
}

// validateLocation checks a (region, commune, village) triple against the
// loaded location catalog.
func validateLocation(set *reference.Set, region, commune, village string) error {
	if set == nil || set.Len() == 0 {
		return fmt.Errorf("location catalog is not loaded")
	}
	if !set.Contains(region, commune, village) {
		return fmt.Errorf("unknown location: %s / %s / %s", region, commune, village)
	}
	return nil
}
