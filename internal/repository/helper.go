package repository

import (
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"github.com/Guyuepp/go-social-feed/domain"
)

const (
	timeFormat = "2006-01-02T15:04:05.999999999Z07:00" // reduce precision from RFC3339Nano as date format

	defaultPageNum = 10
	maxPageNum     = 50
)

var errMalformedCursor = errors.New("malformed cursor")

// DecodeCursor will decode cursor from user for mysql/mongo
func DecodeCursor(encoded string) (domain.Cursor, error) {
	if encoded == "" {
		return domain.Cursor{}, nil
	}
	byt, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return domain.Cursor{}, err
	}

	timeString, id, ok := strings.Cut(string(byt), "|")
	if !ok || id == "" {
		return domain.Cursor{}, errMalformedCursor
	}
	t, err := time.Parse(timeFormat, timeString)
	if err != nil {
		return domain.Cursor{}, err
	}
	return domain.Cursor{Date: t, ID: id}, nil
}

// EncodeCursor will encode cursor from mysql/mongo to user
func EncodeCursor(c domain.Cursor) string {
	return base64.StdEncoding.EncodeToString([]byte(c.Date.Format(timeFormat) + "|" + c.ID))
}

// NextCursor is the cursor after the last item of a full page, or "" when
// the page came back short and nothing is left.
func NextCursor(date time.Time, id string, got, num int64) string {
	if got < num {
		return ""
	}
	return EncodeCursor(domain.Cursor{Date: date, ID: id})
}

// PageVerify clamps the page size into [1, maxPageNum], defaulting non-positive values.
func PageVerify(num *int64) {
	if *num <= 0 {
		*num = defaultPageNum
	}
	if *num > maxPageNum {
		*num = maxPageNum
	}
}
