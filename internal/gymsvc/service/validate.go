package service

import (
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var phoneRe = regexp.MustCompile(`^[0-9]{10}$`)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validEmail(email string) bool {
	at := strings.Index(email, "@")
	return at > 0 && at < len(email)-1 && !strings.ContainsAny(email, " \t")
}

func validPhone(phone string) bool {
	return phoneRe.MatchString(phone)
}

func parseID(field, value string) (primitive.ObjectID, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return primitive.NilObjectID, validationf("%s is required", field)
	}
	id, err := primitive.ObjectIDFromHex(value)
	if err != nil {
		return primitive.NilObjectID, validationf("%s is not a valid id", field)
	}
	return id, nil
}

// monthsBefore steps back n calendar months, clamping the day to the length of the target month
// (May 31 minus three months is Feb 28/29, not early March).
func monthsBefore(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m-time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	if last := first.AddDate(0, 1, -1).Day(); d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}
