package customfields

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	testCases := []struct {
		name      string
		eventType string
		raw       string
		wantErr   bool
	}{
		{"empty blob is valid", "wedding", "", false},
		{"valid wedding fields", "wedding", `{"brideName":"Ayşe","groomName":"Mehmet"}`, false},
		{"unknown key on closed schema", "wedding", `{"cakeFlavor":"chocolate"}`, true},
		{"wrong type for string field", "wedding", `{"brideName":42}`, true},
		{"valid birthday with number", "birthday", `{"celebrantName":"Elif","age":7}`, false},
		{"age as string rejected", "birthday", `{"age":"seven"}`, true},
		{"corporate bool field", "corporate", `{"isFormal":true}`, false},
		{"corporate bool as string rejected", "corporate", `{"isFormal":"yes"}`, true},
		{"open schema accepts anything", "other", `{"whatever":123,"nested":{"x":1}}`, false},
		{"unknown event type", "conference", `{"a":1}`, true},
		{"not a json object", "wedding", `["a","b"]`, true},
		{"malformed json", "wedding", `{"brideName":`, true},
		{"graduation valid", "graduation", `{"graduateName":"Can","school":"ODTÜ"}`, false},
		{"engagement unknown key", "engagement", `{"ringSize":7}`, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.eventType, tc.raw)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
