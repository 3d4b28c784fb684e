package validation_test

import (
	"errors"
	"net/http"
	"testing"

	"artist-site/internal/apperr"
	"artist-site/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tagRequest struct {
	Name   string `json:"name" validate:"required,max=10"`
	Color  string `json:"color" validate:"required,hexcolor,max=7"`
	Status string `json:"status" validate:"required,oneof=for_sale sold"`
	IDs    []uint `json:"tag_ids" validate:"dive,gt=0"`
}

func TestValidator_Valid(t *testing.T) {
	v := validation.New()

	err := v.Validate(tagRequest{Name: "Vogels", Color: "#3B82F6", Status: "sold", IDs: []uint{1, 2}})
	assert.NoError(t, err)
}

func TestValidator_FieldMessages(t *testing.T) {
	v := validation.New()

	tests := []struct {
		name  string
		req   tagRequest
		field string
		want  string
	}{
		{"missing name", tagRequest{Color: "#fff", Status: "sold"}, "name", "is required"},
		{"long name", tagRequest{Name: "abcdefghijkl", Color: "#fff", Status: "sold"}, "name", "must not exceed 10 characters"},
		{"bad color", tagRequest{Name: "x", Color: "blue", Status: "sold"}, "color", "must be a hex color like #3B82F6"},
		{"bad status", tagRequest{Name: "x", Color: "#fff", Status: "gone"}, "status", "must be one of: for_sale, sold"},
		{"zero tag id", tagRequest{Name: "x", Color: "#fff", Status: "sold", IDs: []uint{3, 0}}, "tag_ids[1]", "must be greater than 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.req)
			require.Error(t, err)

			var appErr *apperr.Error
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, http.StatusUnprocessableEntity, appErr.HTTPStatus())

			details, ok := appErr.Details.(apperr.FieldErrors)
			require.True(t, ok)
			assert.Equal(t, tt.want, details[tt.field])
		})
	}
}

func TestValidator_Var(t *testing.T) {
	v := validation.New()

	assert.NoError(t, v.Var("email", "a@b.com", "required,email"))

	err := v.Var("email", "nope", "required,email")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrValidation))
}
