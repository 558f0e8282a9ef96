package types

import (
  "database/sql/driver"
  "fmt"
  "time"
)

const dateLayout = "2006-01-02"

// Date is a calendar day backed by a Postgres date column. Drivers hand date
// columns back as time.Time or timestamp strings; Scan normalizes every
// representation to yyyy-mm-dd so a value reads back exactly as written and
// lookups keyed on the string form keep matching.
type Date string

func (d *Date) Scan(value interface{}) error {
  switch v := value.(type) {
  case nil:
    *d = ""
  case time.Time:
    *d = Date(v.Format(dateLayout))
  case string:
    *d = normalizeDateString(v)
  case []byte:
    *d = normalizeDateString(string(v))
  default:
    return fmt.Errorf("cannot scan %T into Date", value)
  }
  return nil
}

func (d Date) Value() (driver.Value, error) {
  return string(d), nil
}

func (Date) GormDataType() string {
  return "date"
}

func (d Date) String() string {
  return string(d)
}

func normalizeDateString(s string) Date {
  if t, err := time.Parse(time.RFC3339, s); err == nil {
    return Date(t.Format(dateLayout))
  }
  if len(s) > len(dateLayout) {
    return Date(s[:len(dateLayout)])
  }
  return Date(s)
}
