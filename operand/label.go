package operand

import "regexp"

var labelRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// IsLabel reports whether token is a valid label name.
func IsLabel(token string) bool {
	return labelRegex.MatchString(token)
}
