package util

import (
	"strconv"
	"testing"
	"time"
)

func TestParseIntDefault(t *testing.T) {
	if got := ParseIntDefault("42", 7); got != 42 {
		t.Fatalf("unexpected value %d", got)
	}
	if got := ParseIntDefault("", 7); got != 7 {
		t.Fatalf("expected default, got %d", got)
	}
	if got := ParseIntDefault("abc", 7); got != 7 {
		t.Fatalf("expected default, got %d", got)
	}
}

func TestParseTimeRFC3339(t *testing.T) {
	s := "2024-10-10T10:10:10Z"
	got, ok := ParseTime(s)
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.UTC().Format(time.RFC3339) != s {
		t.Fatalf("unexpected time %v", got)
	}
}

func TestParseTimeUnix(t *testing.T) {
	ts := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC).Unix()
	got, ok := ParseTime(strconv.FormatInt(ts, 10))
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.Unix() != ts {
		t.Fatalf("unexpected unix %v", got.Unix())
	}
}

func TestParseTimeInvalid(t *testing.T) {
	if _, ok := ParseTime(""); ok {
		t.Fatalf("expected not ok for empty input")
	}
	if _, ok := ParseTime("not-a-time"); ok {
		t.Fatalf("expected not ok for garbage input")
	}
}

func TestDayFromMillis(t *testing.T) {
	ts := time.Date(2024, 10, 10, 12, 0, 0, 0, time.Local)
	got := DayFromMillis(ts.UnixMilli())
	if got != "2024-10-10" {
		t.Fatalf("unexpected day %q", got)
	}
}
