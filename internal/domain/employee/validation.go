package employee

import (
	"regexp"
	"strings"
)

const (
	msgFirstNameLetters = "First name must contain only letters."
	msgLastNameLetters  = "Last name must contain only letters."
)

var namePattern = regexp.MustCompile(`^[A-Za-z]+$`)

func ValidName(value string) bool {
	return namePattern.MatchString(value)
}

// SplitFullName splits on the first space. "Mary Ann Smith" becomes
// ("Mary", "Ann Smith").
func SplitFullName(full string) (string, string) {
	trimmed := strings.TrimSpace(full)
	first, last, _ := strings.Cut(trimmed, " ")
	return first, strings.TrimSpace(last)
}

// validateNames requires a letters-only first name. The last name may be
// empty but otherwise follows the same rule.
func validateNames(first, last string) error {
	if !ValidName(first) {
		return invalid(msgFirstNameLetters)
	}
	if last != "" && !ValidName(last) {
		return invalid(msgLastNameLetters)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
