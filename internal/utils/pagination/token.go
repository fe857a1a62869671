package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"time"
)

const timeFormat = time.RFC3339Nano // Use a precise time format

// EncodeEntryNumberToken creates a base64 encoded token from the last seen
// entry number. Journal listings page in entry-number order, so the number
// alone is a stable cursor.
func EncodeEntryNumberToken(entryNumber int64) string {
	return base64.StdEncoding.EncodeToString([]byte(strconv.FormatInt(entryNumber, 10)))
}

// DecodeEntryNumberToken parses the base64 encoded token back into an entry number.
func DecodeEntryNumberToken(token string) (int64, error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return 0, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	entryNumber, err := strconv.ParseInt(string(decodedBytes), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid pagination token format (entry number parse): %w", err)
	}
	return entryNumber, nil
}

// EncodeDateBasedToken creates a token for listings cursored on a single date
// column, such as exchange rates ordered by effective date.
func EncodeDateBasedToken(date time.Time) string {
	return base64.StdEncoding.EncodeToString([]byte(date.Format(timeFormat)))
}

// DecodeDateBasedToken decodes a token for single date field pagination
func DecodeDateBasedToken(token string) (time.Time, error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}

	date, err := time.Parse(timeFormat, string(decodedBytes))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid pagination token format (date parse): %w", err)
	}

	return date, nil
}
