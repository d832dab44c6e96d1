package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleInput struct {
	Username string `validate:"required,min=3,max=30,username"`
	Email    string `validate:"required,email"`
	Date     string `validate:"omitempty,event_date"`
	MimeType string `validate:"omitempty,supported_image"`
}

func TestStructPassesValidInput(t *testing.T) {
	v := NewValidator()

	err := v.Struct(sampleInput{
		Username: "carol.smith",
		Email:    "carol@example.com",
		Date:     "2020-11-26",
		MimeType: "image/png",
	})
	assert.NoError(t, err)
}

func TestFieldsMapsFailures(t *testing.T) {
	v := NewValidator()

	err := v.Struct(sampleInput{
		Username: "has spaces",
		Email:    "not-an-email",
	})
	require.Error(t, err)

	fields := Fields(err)
	require.NotNil(t, fields)
	assert.Contains(t, fields, "username")
	assert.Contains(t, fields, "email")
	assert.NotContains(t, fields, "date")
}

func TestFieldsReturnsNilForOtherErrors(t *testing.T) {
	assert.Nil(t, Fields(assert.AnError))
}

func TestEventDateRule(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Struct(sampleInput{
		Username: "carol", Email: "c@example.com", Date: "2021-11-25",
	}))
	assert.NoError(t, v.Struct(sampleInput{
		Username: "carol", Email: "c@example.com", Date: "2021-11-25T18:00:00Z",
	}))
	assert.Error(t, v.Struct(sampleInput{
		Username: "carol", Email: "c@example.com", Date: "25/11/2021",
	}))
}

func TestSupportedImageRule(t *testing.T) {
	v := NewValidator()

	for _, mime := range []string{"image/jpeg", "image/png", "image/gif", "image/webp"} {
		assert.NoError(t, v.Struct(sampleInput{
			Username: "carol", Email: "c@example.com", MimeType: mime,
		}), mime)
	}
	assert.Error(t, v.Struct(sampleInput{
		Username: "carol", Email: "c@example.com", MimeType: "image/tiff",
	}))
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2020-11-26")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2020, 11, 26, 0, 0, 0, 0, time.UTC), got)

	got, err = ParseDate("2020-11-26T19:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, 19, got.Hour())

	_, err = ParseDate("November 26, 2020")
	assert.Error(t, err)
}
