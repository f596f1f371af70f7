package app

import (
	"bytes"
	"encoding/base64"
	"image"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
)

func jpegImage(t *testing.T, width, height int) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, image.NewRGBA(image.Rect(0, 0, width, height)), imaging.JPEG); err != nil {
		t.Fatalf("encoding test image: %v", err)
	}
	return buf.Bytes()
}

func TestBlurPlaceholder(t *testing.T) {
	dataURL, w, h, err := BlurPlaceholder(jpegImage(t, 64, 48), 16)
	assert.NoError(t, err)
	assert.Equal(t, 64, w)
	assert.Equal(t, 48, h)
	assert.True(t, strings.HasPrefix(dataURL, "data:image/jpeg;base64,"))

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(dataURL, "data:image/jpeg;base64,"))
	assert.NoError(t, err)
	thumb, err := imaging.Decode(bytes.NewReader(raw))
	assert.NoError(t, err)
	assert.Equal(t, 16, thumb.Bounds().Dx())
	assert.Equal(t, 12, thumb.Bounds().Dy())
}

func TestBlurPlaceholderInvalidImage(t *testing.T) {
	_, _, _, err := BlurPlaceholder([]byte("not an image"), 16)
	assert.Error(t, err)
}
