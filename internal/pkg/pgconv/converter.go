package pgconv

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

var (
	ErrNullValue       = errors.New("unexpected NULL value")
	ErrIntervalInMonth = errors.New("interval with month component cannot be converted to a duration")
)

const microsPerDay = int64(24 * time.Hour / time.Microsecond)

func UUIDFromPgtype(pu pgtype.UUID) (uuid.UUID, error) {
	if !pu.Valid {
		return uuid.Nil, ErrNullValue
	}
	return uuid.UUID(pu.Bytes), nil
}

func UUIDToPgtype(id uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Valid: true}
}

func StringFromPgtype(pt pgtype.Text) string {
	if !pt.Valid {
		return ""
	}
	return pt.String
}

func StringToPgtype(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: true}
}

// NullableStringToPgtype maps the empty string to NULL.
func NullableStringToPgtype(s string) pgtype.Text {
	if s == "" {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: s, Valid: true}
}

// TimeFromPgtype returns the instant expressed in loc.
func TimeFromPgtype(pt pgtype.Timestamptz, loc *time.Location) time.Time {
	if loc == nil {
		return pt.Time
	}
	return pt.Time.In(loc)
}

func TimeToPgtype(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func NullableTimeToPgtype(t *time.Time) pgtype.Timestamptz {
	if t == nil {
		return pgtype.Timestamptz{Valid: false}
	}
	return pgtype.Timestamptz{Time: *t, Valid: true}
}

// TimeOfDayFromPgtype converts a postgres "time" column into an offset from midnight.
func TimeOfDayFromPgtype(pt pgtype.Time) (time.Duration, error) {
	if !pt.Valid {
		return 0, ErrNullValue
	}
	return time.Duration(pt.Microseconds) * time.Microsecond, nil
}

func TimeOfDayToPgtype(d time.Duration) pgtype.Time {
	return pgtype.Time{Microseconds: int64(d / time.Microsecond), Valid: true}
}

func DurationFromInterval(pi pgtype.Interval) (time.Duration, error) {
	if !pi.Valid {
		return 0, ErrNullValue
	}
	if pi.Months != 0 {
		return 0, ErrIntervalInMonth
	}
	micros := int64(pi.Days)*microsPerDay + pi.Microseconds
	return time.Duration(micros) * time.Microsecond, nil
}

func DurationToInterval(d time.Duration) pgtype.Interval {
	return pgtype.Interval{Microseconds: int64(d / time.Microsecond), Valid: true}
}

func Int32FromPgtype(pi pgtype.Int4) (int32, error) {
	if !pi.Valid {
		return 0, ErrNullValue
	}
	return pi.Int32, nil
}

// IsNoRows checks if the error is a "no rows" error from pgx
func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
