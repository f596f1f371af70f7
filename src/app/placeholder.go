package app

import (
	"bytes"
	"encoding/base64"
	"fmt"

	"github.com/disintegration/imaging"
)

// BlurPlaceholder shrinks an image to the given pixel width (height follows
// the aspect ratio) and returns it as a base64 JPEG data URI, together with
// the intrinsic width and height of the source image.
func BlurPlaceholder(data []byte, width int) (string, int, int, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return "", 0, 0, fmt.Errorf("error decoding image for placeholder: %v", err)
	}
	bounds := img.Bounds()

	thumb := imaging.Resize(img, width, 0, imaging.NearestNeighbor)
	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, thumb, imaging.JPEG, imaging.JPEGQuality(40)); err != nil {
		return "", 0, 0, fmt.Errorf("error encoding placeholder: %v", err)
	}

	dataURL := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
	return dataURL, bounds.Dx(), bounds.Dy(), nil
}
