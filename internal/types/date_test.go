package types

import (
  "testing"
  "time"
)

func TestDateScan(t *testing.T) {
  tests := []struct {
    name    string
    value   interface{}
    want    Date
  }{
    {"time from date column", time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC), "2026-08-30"},
    {"time with clock component", time.Date(2026, 8, 30, 23, 59, 59, 0, time.UTC), "2026-08-30"},
    {"plain date string", "2026-08-30", "2026-08-30"},
    {"rfc3339 string", "2026-08-30T00:00:00Z", "2026-08-30"},
    {"timestamp bytes", []byte("2026-08-30T15:04:05Z"), "2026-08-30"},
    {"nil", nil, ""},
  }
  for _, tt := range tests {
    t.Run(tt.name, func(t *testing.T) {
      var d Date
      if err := d.Scan(tt.value); err != nil {
        t.Fatalf("Scan(%v): %v", tt.value, err)
      }
      if d != tt.want {
        t.Fatalf("Scan(%v) = %q, want %q", tt.value, d, tt.want)
      }
    })
  }
}

func TestDateScanRejectsUnknownType(t *testing.T) {
  var d Date
  if err := d.Scan(42); err == nil {
    t.Fatalf("Scan(int) should fail")
  }
}

func TestDateRoundTrip(t *testing.T) {
  written := Date("2026-08-30")
  value, err := written.Value()
  if err != nil {
    t.Fatalf("value: %v", err)
  }

  // The driver stores a date column and yields time.Time on read-back; the
  // scanned value must equal what was written.
  parsed, err := time.Parse("2006-01-02", value.(string))
  if err != nil {
    t.Fatalf("parse: %v", err)
  }
  var read Date
  if err := read.Scan(parsed); err != nil {
    t.Fatalf("scan: %v", err)
  }
  if read != written {
    t.Fatalf("round trip changed the date: wrote %q, read %q", written, read)
  }
}
