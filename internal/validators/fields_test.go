package validators

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Name     string  `json:"name" binding:"notblank"`
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=6"`
	Rating   int     `json:"rating" binding:"min=1,max=5"`
	Day      string  `json:"day" binding:"omitempty,date"`
	Opens    *string `json:"opens" binding:"omitempty,clock"`
}

func TestStruct_ReportsFirstFieldByJSONName(t *testing.T) {
	ok := signup{Name: "Ali", Email: "ali@example.com", Password: "secret1", Rating: 5}
	assert.NoError(t, Struct(ok))

	cases := []struct {
		name   string
		mutate func(*signup)
		field  string
		reason string
	}{
		{"blank name", func(s *signup) { s.Name = "  " }, "name", "is required"},
		{"bad email", func(s *signup) { s.Email = "not-an-email" }, "email", "is not a valid e-mail address"},
		{"short password", func(s *signup) { s.Password = "abc" }, "password", "must have at least 6 characters"},
		{"rating too low", func(s *signup) { s.Rating = 0 }, "rating", "must be at least 1"},
		{"rating too high", func(s *signup) { s.Rating = 6 }, "rating", "must be at most 5"},
		{"bad date", func(s *signup) { s.Day = "10.06.2024" }, "day", "must be a YYYY-MM-DD date"},
		{"bad clock", func(s *signup) { v := "9h"; s.Opens = &v }, "opens", "must be an HH:MM time"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := ok
			tc.mutate(&s)

			err := Struct(s)
			var fe *FieldError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, tc.field, fe.Field)
			assert.Equal(t, tc.reason, fe.Reason)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestRequiredID(t *testing.T) {
	assert.NoError(t, RequiredID("barberId", 7))

	err := RequiredID("barberId", 0)
	var fe *FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "barberId", fe.Field)
	assert.Equal(t, "is required", fe.Reason)
}

func TestDateAndClock(t *testing.T) {
	assert.NoError(t, Date("date", "2024-06-10"))
	assert.Error(t, Date("date", "10.06.2024"))
	assert.Error(t, Date("date", ""))

	assert.NoError(t, Clock("startTime", "09:30"))
	assert.NoError(t, Clock("startTime", "09:30:00"))
	assert.Error(t, Clock("startTime", "9.30"))
	assert.Error(t, Clock("startTime", ""))
}

func TestFromError_PassesOtherErrorsThrough(t *testing.T) {
	assert.NoError(t, FromError(nil))

	other := errors.New("boom")
	assert.Same(t, other, FromError(other))
}
