package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AttendanceEntry การเข้าเรียนหนึ่งรายการ embedded in a Student.
type AttendanceEntry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Day       int                `bson:"day" json:"day"`
	Week      int                `bson:"week" json:"week"`
	Month     int                `bson:"month" json:"month"`
	Status    bool               `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// AttendanceInput is the body of create and update requests. A nil field (or
// an unset Status) was not sent; 0, false and null are values.
type AttendanceInput struct {
	Day    *int           `json:"day"`
	Week   *int           `json:"week"`
	Month  *int           `json:"month"`
	Status OptionalTruthy `json:"status" swaggertype:"boolean"`
}

// OptionalTruthy is a status that may be missing from the body. Any value
// sent, null included, sets it; null reads as false.
type OptionalTruthy struct {
	Set   bool
	Value Truthy
}

func (o OptionalTruthy) Bool() bool { return o.Set && o.Value.Bool() }

// StatusOf returns a sent status with value b.
func StatusOf(b bool) OptionalTruthy {
	return OptionalTruthy{Set: true, Value: Truthy(b)}
}

// UnmarshalJSON keeps track of which keys were sent. A null number is a sent
// 0 so range checks reject it.
func (in *AttendanceInput) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	*in = AttendanceInput{}

	numbers := []struct {
		key string
		dst **int
	}{{"day", &in.Day}, {"week", &in.Week}, {"month", &in.Month}}
	for _, n := range numbers {
		raw, ok := fields[n.key]
		if !ok {
			continue
		}
		var v int
		if !isJSONNull(raw) {
			if err := json.Unmarshal(raw, &v); err != nil {
				return fmt.Errorf("%s: %w", n.key, err)
			}
		}
		*n.dst = &v
	}

	if raw, ok := fields["status"]; ok {
		if err := in.Status.Value.UnmarshalJSON(raw); err != nil {
			return err
		}
		in.Status.Set = true
	}
	return nil
}

func isJSONNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}

// ValidatedAttendance is an AttendanceInput that passed presence and range checks.
type ValidatedAttendance struct {
	Day    int
	Week   int
	Month  int
	Status bool
}

// AttendanceFilter query parameters for listing. Empty strings mean "not given".
type AttendanceFilter struct {
	Month  string `query:"month"`
	Week   string `query:"week"`
	Status string `query:"status"`

	// HasStatus distinguishes ?status= (given, empty) from no status at all.
	HasStatus bool `query:"-"`
}

// Truthy decodes any JSON scalar into a bool: false, 0, "" and null are false,
// every other value is true.
type Truthy bool

func (t *Truthy) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		*t = false
		return nil
	}
	switch data[0] {
	case 'n':
		*t = false
	case 't':
		*t = true
	case 'f':
		*t = false
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = s != ""
	case '{', '[':
		*t = true
	default:
		f, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return fmt.Errorf("status: cannot interpret %s as boolean", data)
		}
		*t = f != 0
	}
	return nil
}

func (t Truthy) Bool() bool { return bool(t) }

// OverallStats attendance totals over every record of a student.
type OverallStats struct {
	TotalRecords         int     `json:"totalRecords"`
	PresentRecords       int     `json:"presentRecords"`
	AbsentRecords        int     `json:"absentRecords"`
	AttendancePercentage float64 `json:"attendancePercentage"`
}

// MonthStats totals for one month.
type MonthStats struct {
	Total      int     `json:"total"`
	Present    int     `json:"present"`
	Absent     int     `json:"absent"`
	Percentage float64 `json:"percentage"`
}

// MonthBucket one entry of the monthly breakdown.
type MonthBucket struct {
	Month int
	MonthStats
}

// MonthlyBreakdown keeps months in the order they were first seen and encodes
// as a JSON object whose keys follow that order.
type MonthlyBreakdown []MonthBucket

func (m MonthlyBreakdown) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, b := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.Quote(strconv.Itoa(b.Month)))
		buf.WriteByte(':')
		stats, err := json.Marshal(b.MonthStats)
		if err != nil {
			return nil, err
		}
		buf.Write(stats)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (m *MonthlyBreakdown) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*m = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("monthlyBreakdown: expected object")
	}
	out := MonthlyBreakdown{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)
		month, err := strconv.Atoi(key)
		if err != nil {
			return fmt.Errorf("monthlyBreakdown: bad month key %q", key)
		}
		var stats MonthStats
		if err := dec.Decode(&stats); err != nil {
			return err
		}
		out = append(out, MonthBucket{Month: month, MonthStats: stats})
	}
	*m = out
	return nil
}

// Get returns the stats for month, if present.
func (m MonthlyBreakdown) Get(month int) (MonthStats, bool) {
	for _, b := range m {
		if b.Month == month {
			return b.MonthStats, true
		}
	}
	return MonthStats{}, false
}

// AttendanceStats สถิติการเข้าเรียน
type AttendanceStats struct {
	Overall          OverallStats     `json:"overall"`
	MonthlyBreakdown MonthlyBreakdown `json:"monthlyBreakdown"`
}
