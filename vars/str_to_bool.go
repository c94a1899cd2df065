package vars

import "strings"

func StrToBool(str string) bool {
	str = strings.ToLower(strings.TrimSpace(str))
	switch str {
	case "true", "t", "yes", "y", "on", "1":
		return true
	}
	return false
}
