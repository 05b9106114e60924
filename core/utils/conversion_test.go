package utils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToInt(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want int
	}{
		{"int", 3, 3},
		{"float", float64(12), 12},
		{"number", json.Number("42"), 42},
		{"string", " 7 ", 7},
		{"bytes", []byte("9"), 9},
		{"garbage", "abc", 0},
		{"nil", nil, 0},
		{"bool", true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToInt(tt.in))
		})
	}
}

func TestToString(t *testing.T) {
	assert.Equal(t, "", ToString(nil))
	assert.Equal(t, "abc", ToString("  abc "))
	assert.Equal(t, "123", ToString(float64(123)))
	assert.Equal(t, "1.5", ToString(1.5))
	assert.Equal(t, "99", ToString(json.Number("99")))
	assert.Equal(t, "true", ToString(true))
}

func TestFirstString(t *testing.T) {
	m := map[string]any{"sourceId": "", "uuid": "u-1", "id": "x"}
	assert.Equal(t, "u-1", FirstString(m, "sourceId", "uuid", "id"))
	assert.Equal(t, "", FirstString(m, "missing"))
}
