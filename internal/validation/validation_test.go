package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/skylinetravels/flightbooking/internal/domain"
)

type passenger struct {
	Name string `json:"name" validate:"required"`
	Age  int    `json:"age" validate:"gt=0"`
}

type input struct {
	Email      string      `json:"email" validate:"required,email"`
	Password   string      `json:"password" validate:"min=6"`
	Passengers []passenger `json:"passengers" validate:"min=1,dive"`
}

func TestStruct(t *testing.T) {
	valid := input{Email: "jane@example.com", Password: "secret1", Passengers: []passenger{{Name: "Jane", Age: 30}}}
	assert.NoError(t, Struct(valid))

	testCases := []struct {
		name    string
		mutate  func(*input)
		message string
	}{
		{"missing email", func(in *input) { in.Email = "" }, "email is required"},
		{"bad email", func(in *input) { in.Email = "jane" }, "email must be a valid email"},
		{"short password", func(in *input) { in.Password = "abc" }, "password must be at least 6 characters"},
		{"no passengers", func(in *input) { in.Passengers = nil }, "passengers must contain at least 1 item(s)"},
		{"passenger age", func(in *input) { in.Passengers[0].Age = 0 }, "passengers[0].age must be greater than 0"},
		{"passenger name", func(in *input) { in.Passengers[0].Name = "" }, "passengers[0].name is required"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			in := valid
			in.Passengers = []passenger{valid.Passengers[0]}
			tc.mutate(&in)

			err := Struct(in)
			assert.True(t, errors.Is(err, domain.ErrValidation))
			assert.EqualError(t, err, tc.message)
		})
	}
}
