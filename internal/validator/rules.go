package validator

import (
	"fmt"
	"log"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// ReservedProfileName is the path alias for the self-profile endpoint and
// can therefore never be a username.
const ReservedProfileName = "me"

const (
	MinScore = 1
	MaxScore = 10
)

var (
	invalidUsernameChars = regexp.MustCompile(`[^A-Za-z0-9_.@+-]`)
	slugPattern          = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
)

// ValidateUsername checks the username against the reserved alias and the
// allowed character set. Pure, no side effects.
func ValidateUsername(username string) error {
	if username == ReservedProfileName {
		return fmt.Errorf("username %q is reserved", username)
	}
	matches := invalidUsernameChars.FindAllString(username, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]bool)
	var invalid []string
	for _, ch := range matches {
		if !seen[ch] {
			seen[ch] = true
			invalid = append(invalid, ch)
		}
	}
	sort.Strings(invalid)
	return fmt.Errorf("username contains invalid characters: %s", strings.Join(invalid, " "))
}

// ValidateYear rejects years later than the current calendar year.
func ValidateYear(year int) error {
	thisYear := time.Now().Year()
	if year > thisYear {
		return fmt.Errorf("a title cannot be created in %d, later than the current year %d", year, thisYear)
	}
	return nil
}

// ValidateScore enforces the allowed review score range.
func ValidateScore(score int) error {
	if score < MinScore || score > MaxScore {
		return fmt.Errorf("score cannot be %d, allowed values are %d to %d", score, MinScore, MaxScore)
	}
	return nil
}

// registerCustomRules wires the domain rules into the validator instance.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// A rule that fails to register is a startup error.
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// 'username': reserved-alias and character-set rule.
	mustRegister("username", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if value == "" {
			return true // 'required' handles empties
		}
		return ValidateUsername(value) == nil
	})

	// 'slug': taxonomy identifier charset.
	mustRegister("slug", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if value == "" {
			return true
		}
		return slugPattern.MatchString(value)
	})

	// 'role': known user roles only.
	mustRegister("role", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if value == "" {
			return true
		}
		switch value {
		case "user", "moderator", "admin":
			return true
		default:
			return false
		}
	})
}
