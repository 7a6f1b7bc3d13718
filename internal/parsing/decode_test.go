package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnwrapArray(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    string
		ok      bool
	}{
		{"bare array", ` [{"title": "Dev"}] `, `[{"title": "Dev"}]`, true},
		{"wrapped under a key", `{"experience": [{"title": "Dev"}]}`, `[{"title": "Dev"}]`, true},
		{"wrapper with scalar siblings", `{"count": 1, "education": [] }`, `[]`, true},
		{"object without array", `{"title": "Dev"}`, "", false},
		{"malformed object", `{"experience": [`, "", false},
		{"prose", `No entries found.`, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := unwrapArray(tt.payload)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
