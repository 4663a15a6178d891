package datamodel

import "strings"

// validateFilter rejects a '#' anywhere but the final level and any level
// that mixes a wildcard character with other text. A trailing empty level
// (produced by a filter ending in "/") is tolerated; any other empty level
// is not.
func validateFilter(filter string) error {
	if filter == "" {
		return ErrEmptyFilter
	}

	levels := strings.Split(filter, "/")
	for i, level := range levels {
		last := i == len(levels)-1

		switch {
		case level == "" && !last:
			return ErrMalformedFilter
		case level == "#" && !last:
			return ErrMalformedFilter
		case level == "", level == "+", level == "#":
			continue
		case strings.ContainsAny(level, "+#"):
			return ErrMalformedFilter
		}
	}

	return nil
}

// splitLevel splits a filter remainder on its first '/', returning the head
// level and everything after it (empty if there was no '/').
func splitLevel(filter string) (head, tail string) {
	if i := strings.IndexByte(filter, '/'); i >= 0 {
		return filter[:i], filter[i+1:]
	}
	return filter, ""
}
