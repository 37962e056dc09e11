package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringOrSliceUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    StringOrSlice
		wantErr bool
	}{
		{"single string", `{"bcc":"a@x.com"}`, StringOrSlice{"a@x.com"}, false},
		{"array", `{"bcc":["a@x.com","b@x.com"]}`, StringOrSlice{"a@x.com", "b@x.com"}, false},
		{"empty array", `{"bcc":[]}`, StringOrSlice{}, false},
		{"empty string", `{"bcc":""}`, nil, false},
		{"missing field", `{}`, nil, false},
		{"number rejected", `{"bcc":42}`, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req LegacyMailRequest
			err := json.Unmarshal([]byte(tt.body), &req)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, req.BCC)
		})
	}
}
