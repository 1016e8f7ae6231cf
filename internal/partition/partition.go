// Package partition implements the day-key naming scheme used when
// transaction output is split by calendar date. All three files for a day
// share the same YYYY_MM_DD basename prefix so the incremental loader can
// select a consistent triple.
package partition

import (
	"fmt"
	"time"
)

const dayKeyFormat = "2006_01_02"

// DayKey returns the partition key for a timestamp, e.g. "2022_01_05".
func DayKey(t time.Time) string {
	return t.Format(dayKeyFormat)
}

// ParseDayKey parses a partition key back into a date (UTC midnight).
func ParseDayKey(key string) (time.Time, error) {
	t, err := time.Parse(dayKeyFormat, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing day key %q: %w", key, err)
	}
	return t, nil
}

// FileName returns the partitioned file name for a table, e.g.
// FileName("2022_01_05", "transactions.csv") -> "2022_01_05_transactions.csv".
// An empty key means unpartitioned output and returns the table name as is.
func FileName(key, table string) string {
	if key == "" {
		return table
	}
	return key + "_" + table
}
