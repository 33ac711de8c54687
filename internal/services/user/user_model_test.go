package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBrief(t *testing.T) {
	assert.Nil(t, NewBrief(nil))

	b := NewBrief(&User{ID: 7, Email: "ada@example.com", FullName: "Ada Lovelace"})
	require.NotNil(t, b)
	assert.Equal(t, int64(7), b.ID)
	assert.Equal(t, "ada@example.com", b.Email)
	assert.Equal(t, "Ada Lovelace", b.Fullname)
}

func TestBriefFromParts_FullnameResolution(t *testing.T) {
	tests := []struct {
		name     string
		parts    BriefParts
		expected string
	}{
		{"explicit fullname wins", BriefParts{Fullname: "Ada Lovelace", FirstName: "Grace", Username: "ghopper"}, "Ada Lovelace"},
		{"first and last composed", BriefParts{FirstName: "Grace", LastName: "Hopper"}, "Grace Hopper"},
		{"first name only", BriefParts{FirstName: "Grace"}, "Grace"},
		{"last name only", BriefParts{LastName: "Hopper"}, "Hopper"},
		{"username fallback", BriefParts{Username: "ghopper"}, "ghopper"},
		{"whitespace fullname falls through", BriefParts{Fullname: "   ", Username: "ghopper"}, "ghopper"},
		{"nothing set", BriefParts{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := BriefFromParts(tt.parts)
			require.NotNil(t, b)
			assert.Equal(t, tt.expected, b.Fullname)
		})
	}
}
