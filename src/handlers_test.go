package main

import (
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func pngBytes(size int) []byte {
	data := make([]byte, size)
	copy(data, []byte("\x89PNG\r\n\x1a\n"))
	return data
}

func TestValidateUpload(t *testing.T) {
	t.Run("accepts a png", func(t *testing.T) {
		mime, err := validateUpload(pngBytes(2048))
		assert.Nil(t, err)
		assert.Equal(t, "image/png", mime)
	})

	t.Run("rejects a file below the minimum size", func(t *testing.T) {
		_, err := validateUpload(pngBytes(600))
		assert.ErrorContains(t, err, "too small")
	})

	t.Run("rejects a file above the maximum size", func(t *testing.T) {
		_, err := validateUpload(pngBytes(uploadMaxSize + 1))
		assert.ErrorContains(t, err, "too large")
	})

	t.Run("rejects an unsupported type", func(t *testing.T) {
		data := make([]byte, 2048)
		copy(data, []byte("GIF89a"))
		_, err := validateUpload(data)
		assert.ErrorContains(t, err, "unsupported file type")
	})

	t.Run("sniffs content instead of trusting extensions", func(t *testing.T) {
		data := make([]byte, 2048)
		copy(data, []byte("<html><body>not an image</body></html>"))
		_, err := validateUpload(data)
		assert.NotNil(t, err)
	})
}

func TestMinorUnits(t *testing.T) {
	assert.Equal(t, int64(1999), minorUnits(19.99))
	assert.Equal(t, int64(29), minorUnits(0.29))
	assert.Equal(t, int64(435), minorUnits(4.35))
	assert.Equal(t, int64(115), minorUnits(1.15))
	assert.Equal(t, int64(100), minorUnits(1))
	assert.Equal(t, int64(0), minorUnits(0))
}

func TestBuildEmbedSnippet(t *testing.T) {
	key := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	snippet := buildEmbedSnippet("https://venues.example.com", 42, key, "dark")

	assert.Contains(t, snippet, `src="https://venues.example.com/widget/42?key=6ba7b810-9dad-11d1-80b4-00c04fd430c8&theme=dark"`)
	assert.Contains(t, snippet, "<iframe")
	assert.Contains(t, snippet, `title="Book a table"`)
}

func TestBookableDateValidator(t *testing.T) {
	v := validator.New()
	err := v.RegisterValidation("bookabledate", bookableDateValidatorFunc)
	assert.Nil(t, err)

	future := time.Now().Add(48 * time.Hour).Format("2006-01-02 15:04:05 -07:00")
	assert.Nil(t, v.Var(future, "bookabledate"))

	assert.NotNil(t, v.Var("2020-01-01 19:00:00 +00:00", "bookabledate"))
	assert.NotNil(t, v.Var("not a date", "bookabledate"))
}
