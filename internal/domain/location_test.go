package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLocation(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Location
	}{
		{
			name:  "city and state",
			input: "Guadalajara, Jalisco",
			want:  Location{Address: "Guadalajara, Jalisco", City: "Guadalajara", State: "Jalisco"},
		},
		{
			name:  "city only",
			input: "Monterrey",
			want:  Location{Address: "Monterrey", City: "Monterrey", State: ""},
		},
		{
			name:  "extra segments keep only the first two",
			input: "Centro, CDMX, Mexico",
			want:  Location{Address: "Centro, CDMX, Mexico", City: "Centro", State: "CDMX"},
		},
		{
			name:  "surrounding whitespace is trimmed",
			input: "  Puebla ,  Puebla  ",
			want:  Location{Address: "Puebla ,  Puebla", City: "Puebla", State: "Puebla"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLocation(tt.input))
		})
	}
}

func TestUserPublicExcludesPasswordHash(t *testing.T) {
	user := User{
		ID:           "u1",
		Name:         "Ana",
		Email:        "ana@example.com",
		PasswordHash: "$2a$12$secret",
		Role:         UserRoleSeller,
	}

	public := user.Public()
	assert.Equal(t, "u1", public.ID)
	assert.Equal(t, "Ana", public.Name)
	assert.Equal(t, UserRoleSeller, public.Role)
}
