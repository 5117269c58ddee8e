package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexInt(t *testing.T) {
	tests := []struct {
		body string
		want FlexInt
		ok   bool
	}{
		{`{"age":75}`, 75, true},
		{`{"age":"75"}`, 75, true},
		{`{"age":" 34 "}`, 34, true},
		{`{"age":null}`, 0, true},
		{`{"age":"seventy"}`, 0, false},
		{`{"age":75.5}`, 0, false},
		{`{"age":true}`, 0, false},
	}
	for _, tt := range tests {
		var v struct {
			Age FlexInt `json:"age"`
		}
		err := json.Unmarshal([]byte(tt.body), &v)
		if !tt.ok {
			var typeErr *json.UnmarshalTypeError
			require.ErrorAs(t, err, &typeErr, tt.body)
			assert.Equal(t, "age", typeErr.Field, tt.body)
			continue
		}
		require.NoError(t, err, tt.body)
		assert.Equal(t, tt.want, v.Age, tt.body)
	}
}
