package utils

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

const MinutesPerDay = 24 * 60

// ClockTime is a time of day stored as "HH:MM", minute precision.
type ClockTime struct {
	minutes int
}

func NewClockTime(hour, minute int) ClockTime {
	return ClockTime{minutes: hour*60 + minute}
}

func ParseClockTime(s string) (ClockTime, error) {
	s = strings.TrimSpace(s)
	// "15:04:05" as returned by postgres time columns
	if len(s) == 8 {
		s = s[:5]
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return ClockTime{}, fmt.Errorf("invalid time of day %q, expected HH:MM", s)
	}
	return NewClockTime(t.Hour(), t.Minute()), nil
}

// ClockOf returns the wall-clock time of t in its own location.
func ClockOf(t time.Time) ClockTime {
	return NewClockTime(t.Hour(), t.Minute())
}

func (c ClockTime) Minutes() int {
	return c.minutes
}

func (c ClockTime) Before(other ClockTime) bool {
	return c.minutes < other.minutes
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.minutes/60, c.minutes%60)
}

func (c ClockTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.String() + `"`), nil
}

func (c *ClockTime) UnmarshalJSON(data []byte) error {
	str := string(data)
	if len(str) >= 2 && str[0] == '"' && str[len(str)-1] == '"' {
		str = str[1 : len(str)-1]
	}
	parsed, err := ParseClockTime(str)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c ClockTime) Value() (driver.Value, error) {
	return c.String(), nil
}

func (c *ClockTime) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		parsed, err := ParseClockTime(v)
		if err != nil {
			return err
		}
		*c = parsed
		return nil
	case []byte:
		parsed, err := ParseClockTime(string(v))
		if err != nil {
			return err
		}
		*c = parsed
		return nil
	case time.Time:
		*c = ClockOf(v)
		return nil
	default:
		return fmt.Errorf("unsupported scan type for ClockTime: %T", value)
	}
}
