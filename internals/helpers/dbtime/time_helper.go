// file: internals/helpers/dbtime/time_helper.go
package dbtime

import (
	"fmt"
	"strings"
	"time"
)

const (
	DefaultTimezone = "Asia/Jakarta"
	DateLayout      = "2006-01-02"
	PeriodLayout    = "2006-01"
)

// Location: Asia/Jakarta, fallback UTC kalau tzdata tidak tersedia.
func Location() *time.Location {
	if loc, err := time.LoadLocation(DefaultTimezone); err == nil {
		return loc
	}
	return time.UTC
}

// Clock bisa diganti di test supaya "hari ini" deterministik.
type Clock func() time.Time

func SystemClock() time.Time { return time.Now().In(Location()) }

func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// MonthRange mengembalikan [awal bulan, awal bulan berikutnya).
func MonthRange(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 1, 0)
}

func PeriodToken(t time.Time) string { return t.Format(PeriodLayout) }

// NormalizePeriod menerima "YYYY-MM" (atau kosong) dan mengembalikan token baku.
func NormalizePeriod(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	t, err := time.Parse(PeriodLayout, s)
	if err != nil {
		return "", fmt.Errorf("period harus berformat YYYY-MM")
	}
	return t.Format(PeriodLayout), nil
}

// ParseDate membaca "YYYY-MM-DD" pada zona sekolah.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(s), Location())
}
