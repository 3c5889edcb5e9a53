package models

import (
	"database/sql/driver"
	"fmt"
	"time"
)

const timeLayout = "2006-01-02 15:04:05"

// Time 统一 JSON 时间格式的数据库时间类型
type Time time.Time

func (t Time) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("\"%s\"", time.Time(t).Format(timeLayout))), nil
}

func (t *Time) UnmarshalJSON(data []byte) error {
	if len(data) == 2 { // ""
		*t = Time(time.Time{})
		return nil
	}
	parsed, err := time.ParseInLocation(`"`+timeLayout+`"`, string(data), time.Local)
	if err != nil {
		return err
	}
	*t = Time(parsed)
	return nil
}

func (t Time) Value() (driver.Value, error) {
	return time.Time(t), nil
}

func (t *Time) Scan(v any) error {
	switch val := v.(type) {
	case time.Time:
		*t = Time(val)
	case []byte:
		parsed, err := time.ParseInLocation(timeLayout, string(val), time.Local)
		if err != nil {
			return err
		}
		*t = Time(parsed)
	case string:
		parsed, err := time.ParseInLocation(timeLayout, val, time.Local)
		if err != nil {
			return err
		}
		*t = Time(parsed)
	default:
		return fmt.Errorf("cannot scan %T into models.Time", v)
	}
	return nil
}
