package utils

import (
	"database/sql/driver"
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// CustomDate only stores a calendar date (no time of day).
type CustomDate struct {
	time.Time
}

// NewCustomDate keeps the year, month and day of t as seen in t's own location.
func NewCustomDate(t time.Time) CustomDate {
	return CustomDate{CivilDate(t)}
}

func ParseCustomDate(s string) (CustomDate, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return CustomDate{}, fmt.Errorf("invalid date format: %s", s)
	}
	return CustomDate{t}, nil
}

// === JSON: "YYYY-MM-DD" ===
func (d *CustomDate) UnmarshalJSON(data []byte) error {
	if string(data) == `null` {
		*d = CustomDate{time.Time{}}
		return nil
	}

	str := string(data)
	if len(str) >= 2 && str[0] == '"' && str[len(str)-1] == '"' {
		str = str[1 : len(str)-1]
	}

	parsed, err := ParseCustomDate(str)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d CustomDate) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`null`), nil
	}
	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}

// === DB ===
func (d CustomDate) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.Time.Format(DateLayout), nil
}

func (d *CustomDate) Scan(value interface{}) error {
	if value == nil {
		*d = CustomDate{time.Time{}}
		return nil
	}

	switch v := value.(type) {
	case time.Time:
		*d = NewCustomDate(v)
		return nil
	case string:
		t, err := time.Parse(DateLayout, v)
		if err != nil {
			return fmt.Errorf("cannot parse date string: %v", err)
		}
		*d = CustomDate{t}
		return nil
	case []byte:
		t, err := time.Parse(DateLayout, string(v))
		if err != nil {
			return fmt.Errorf("cannot parse date bytes: %v", err)
		}
		*d = CustomDate{t}
		return nil
	default:
		return fmt.Errorf("unsupported scan type for CustomDate: %T", value)
	}
}

func (d CustomDate) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// Before and After compare calendar days only.
func (d CustomDate) Before(other CustomDate) bool {
	return CivilDate(d.Time).Before(CivilDate(other.Time))
}

func (d CustomDate) After(other CustomDate) bool {
	return CivilDate(d.Time).After(CivilDate(other.Time))
}

func (d CustomDate) Equal(other CustomDate) bool {
	return CivilDate(d.Time).Equal(CivilDate(other.Time))
}

// CivilDate returns midnight UTC of the calendar day t falls on in its own location.
func CivilDate(t time.Time) time.Time {
	y, m, day := t.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

// LocalToday is the calendar date of now in loc.
func LocalToday(now time.Time, loc *time.Location) CustomDate {
	if loc == nil {
		loc = time.UTC
	}
	return NewCustomDate(now.In(loc))
}
