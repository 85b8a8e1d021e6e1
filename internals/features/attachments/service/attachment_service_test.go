package service

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/chai2010/webp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage(t *testing.T, w, h int) image.Image {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	return img
}

func TestNormalizePNGBecomesWebP(t *testing.T) {
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, testImage(t, 400, 300)))

	out, ext, contentType, err := normalize("feuille.png", buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, ".webp", ext)
	assert.Equal(t, "image/webp", contentType)

	img, err := webp.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 400, img.Bounds().Dx())
	assert.Equal(t, 300, img.Bounds().Dy())
}

func TestNormalizeResizesWideImages(t *testing.T) {
	buf := new(bytes.Buffer)
	require.NoError(t, jpeg.Encode(buf, testImage(t, 3200, 1000), nil))

	out, ext, _, err := normalize("scan.JPG", buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, ".webp", ext)

	img, err := webp.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, maxImageWidth, img.Bounds().Dx())
	assert.Equal(t, 500, img.Bounds().Dy())
}

func TestNormalizePDFPassesThrough(t *testing.T) {
	data := []byte("%PDF-1.4 fake but good enough")
	out, ext, contentType, err := normalize("convocation.pdf", data)
	require.NoError(t, err)
	assert.Equal(t, data, out)
	assert.Equal(t, ".pdf", ext)
	assert.Equal(t, "application/pdf", contentType)
}

func TestNormalizeRejectsUnknownTypes(t *testing.T) {
	_, _, _, err := normalize("malware.exe", []byte{0x4d, 0x5a})
	assert.ErrorIs(t, err, ErrUnsupportedFileType)

	_, _, _, err = normalize("notes.txt", []byte("hello"))
	assert.ErrorIs(t, err, ErrUnsupportedFileType)
}

func TestNormalizeRejectsCorruptImage(t *testing.T) {
	_, _, _, err := normalize("photo.png", []byte("definitely not a png"))
	assert.Error(t, err)
}
