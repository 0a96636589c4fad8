package stringsutil

import "strings"

func RemoveEmptyStrings(slice []string) []string {
	var result []string

	for _, s := range slice {
		if s != "" {
			result = append(result, s)
		}
	}

	return result
}

// TrimAll trims every element and drops the ones left empty.
func TrimAll(slice []string) []string {
	trimmed := make([]string, len(slice))
	for i, s := range slice {
		trimmed[i] = strings.TrimSpace(s)
	}
	return RemoveEmptyStrings(trimmed)
}
