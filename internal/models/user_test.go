package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUser_FullName(t *testing.T) {
	tests := []struct {
		name string
		user User
		want string
	}{
		{"both names set", User{Username: "jdoe", FirstName: "John", LastName: "Doe"}, "John Doe"},
		{"first name only", User{Username: "jdoe", FirstName: "John"}, "John"},
		{"last name only", User{Username: "jdoe", LastName: "Doe"}, "Doe"},
		{"neither set falls back to username", User{Username: "jdoe"}, "jdoe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.user.FullName())
		})
	}
}
