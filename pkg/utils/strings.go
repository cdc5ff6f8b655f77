package utils

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

// SplitList splits raw on sep, trims every item and drops the empty ones.
// An empty or blank raw yields nil.
func SplitList(raw, sep string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	items := strings.Split(raw, sep)
	for i, item := range items {
		items[i] = strings.TrimSpace(item)
	}
	return RemoveEmptyStrings(items)
}
