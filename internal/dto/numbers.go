package dto

import (
	"encoding/json"
	"reflect"
	"strconv"
	"strings"
)

// FlexInt is an integer that also decodes from a JSON string holding one,
// as HTML forms post numbers as text.
type FlexInt int

// UnmarshalJSON accepts 75 and "75". Anything else is a type error so the
// request is rejected per field.
func (n *FlexInt) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if raw == "null" {
		return nil
	}
	kind := "number"
	if strings.HasPrefix(raw, `"`) {
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)
		kind = "string"
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return &json.UnmarshalTypeError{Value: kind + " " + raw, Type: reflect.TypeOf(0)}
	}
	*n = FlexInt(v)
	return nil
}
