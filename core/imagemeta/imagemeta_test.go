package imagemeta_test

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"texture-scanner/core/imagemeta"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h)))
	require.NoError(t, err)
	return buf.Bytes()
}

func TestProbe(t *testing.T) {
	t.Run("Square16", func(t *testing.T) {
		dims, err := imagemeta.Probe(pngBytes(t, 16, 16))
		require.NoError(t, err)
		assert.Equal(t, imagemeta.Dimensions{Width: 16, Height: 16}, dims)
		assert.True(t, dims.IsSquare16())
	})

	t.Run("WrongSize", func(t *testing.T) {
		dims, err := imagemeta.Probe(pngBytes(t, 32, 16))
		require.NoError(t, err)
		assert.False(t, dims.IsSquare16())
		assert.Equal(t, "32x16", dims.String())
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := imagemeta.Probe([]byte("not a png"))
		assert.Error(t, err)
	})
}
