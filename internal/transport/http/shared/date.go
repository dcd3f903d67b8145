package shared

import "time"

// dateFormats are the two shapes date fields arrive in: rating-period
// bounds as bare days, due dates from API clients as full RFC3339
// timestamps.
var dateFormats = []string{time.RFC3339, "2006-01-02"}

// ParseDate parses value against the accepted formats. An empty value is
// not an error; it parses to the zero time so optional fields stay
// optional.
func ParseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	var firstErr error
	for _, format := range dateFormats {
		parsed, err := time.Parse(format, value)
		if err == nil {
			return parsed, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}
