package notification_test

import (
	"testing"

	"go-leave/internal/notification"

	"github.com/stretchr/testify/assert"
)

func TestPhoneNormalizer_Normalize(t *testing.T) {
	n := notification.PhoneNormalizer{CountryCode: "1", LocalLength: 10}

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare local number gets country code", "555-123-4567", "15551234567"},
		{"formatting is stripped", "(555) 123 4567", "15551234567"},
		{"already international", "+1 555 123 4567", "15551234567"},
		{"other country untouched", "+62 812-3456-7890", "6281234567890"},
		{"short number untouched", "12345", "12345"},
		{"no digits", "call me", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, n.Normalize(tt.in))
		})
	}
}

func TestPhoneNormalizer_NoCountryCode(t *testing.T) {
	n := notification.PhoneNormalizer{}
	assert.Equal(t, "5551234567", n.Normalize("555 123 4567"))
}
