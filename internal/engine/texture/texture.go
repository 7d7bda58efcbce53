// Package texture loads image files into OpenGL textures.
package texture

import (
	"fmt"
	"image"
	"image/draw"
	"io"
	"os"

	// Decoders for the shipped asset formats.
	_ "image/jpeg"
	_ "image/png"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"

	"github.com/Faultbox/terrascape/internal/logger"
)

// WrapMode selects how texture coordinates outside [0,1] are treated.
type WrapMode int32

const (
	Repeat      WrapMode = gl.REPEAT
	ClampToEdge WrapMode = gl.CLAMP_TO_EDGE
)

// Load decodes an image file and uploads it as a mipmapped 2D texture.
func Load(path string, wrap WrapMode) (uint32, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open texture: %w", err)
	}
	defer f.Close()

	rgba, err := Decode(f)
	if err != nil {
		return 0, fmt.Errorf("decode %s: %w", path, err)
	}

	id := upload(rgba, wrap)
	logger.Debug("texture loaded",
		zap.String("path", path),
		zap.Int("width", rgba.Rect.Dx()),
		zap.Int("height", rgba.Rect.Dy()))
	return id, nil
}

// Decode reads any registered image format and returns RGBA pixels flipped
// vertically, so row 0 is the bottom row as OpenGL expects.
func Decode(r io.Reader) (*image.RGBA, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	return flipVertical(img), nil
}

// flipVertical converts src to RGBA with the row order reversed.
func flipVertical(src image.Image) *image.RGBA {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(rgba, rgba.Bounds(), src, bounds.Min, draw.Src)

	stride := rgba.Stride
	tmp := make([]byte, stride)
	for y := 0; y < h/2; y++ {
		top := rgba.Pix[y*stride : (y+1)*stride]
		bottom := rgba.Pix[(h-1-y)*stride : (h-y)*stride]
		copy(tmp, top)
		copy(top, bottom)
		copy(bottom, tmp)
	}
	return rgba
}

// upload creates a mipmapped GL texture from the pixels.
func upload(rgba *image.RGBA, wrap WrapMode) uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, int32(wrap))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, int32(wrap))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA,
		int32(rgba.Rect.Dx()), int32(rgba.Rect.Dy()),
		0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba.Pix))
	gl.GenerateMipmap(gl.TEXTURE_2D)

	gl.BindTexture(gl.TEXTURE_2D, 0)
	return id
}

// Release deletes a texture created by Load. Zero handles are ignored.
func Release(id uint32) {
	if id != 0 {
		gl.DeleteTextures(1, &id)
	}
}
