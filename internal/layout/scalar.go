package layout

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Scalar is a tagged JSON cell that is either a string or a number. Layer
// keys carry behavior names as strings; parameter cells for layer-activating
// behaviors carry integer layer indices. Numbers keep their source text so
// integers never degrade to floats on round-trip.
type Scalar struct {
	str   string
	num   json.Number
	isNum bool
}

// String returns a string-valued scalar.
func String(s string) Scalar {
	return Scalar{str: s}
}

// Int returns an integer-valued scalar.
func Int(n int) Scalar {
	return Scalar{num: json.Number(strconv.Itoa(n)), isNum: true}
}

// StringValue returns the string form, if the scalar holds a string.
func (s Scalar) StringValue() (string, bool) {
	if s.isNum {
		return "", false
	}
	return s.str, true
}

// IntValue returns the integer form, if the scalar holds an integer.
func (s Scalar) IntValue() (int, bool) {
	if !s.isNum {
		return 0, false
	}
	n, err := strconv.Atoi(s.num.String())
	if err != nil {
		return 0, false
	}
	return n, true
}

// IsNumber reports whether the scalar holds a number.
func (s Scalar) IsNumber() bool {
	return s.isNum
}

// MarshalJSON writes the scalar in its original JSON form.
func (s Scalar) MarshalJSON() ([]byte, error) {
	if s.isNum {
		return []byte(s.num), nil
	}
	return marshalNoEscape(s.str)
}

// UnmarshalJSON accepts a JSON string or number; anything else is a shape
// error surfaced at load time.
func (s *Scalar) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = Scalar{str: str}
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("key value must be a string or number, got %s", data)
	}
	*s = Scalar{num: num, isNum: true}
	return nil
}
