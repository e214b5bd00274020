package icon

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	fx "github.com/robotalks/inktools/pkg/framework"
)

func writePNG(t *testing.T, path string, img image.Image) {
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

// opaque keeps one translucent pixel so the PNG encoder stores an alpha channel.
func opaque(x, y int) uint8 {
	if x == 0 && y == 0 {
		return 200
	}
	return 255
}

func diagonal(x, y int) uint8 {
	if x == y {
		return 255
	}
	return 0
}

func TestConverterRun(t *testing.T) {
	src, out := t.TempDir(), filepath.Join(t.TempDir(), "nested", "icons")
	writePNG(t, filepath.Join(src, "home.png"), alphaImage(32, 32, opaque))
	writePNG(t, filepath.Join(src, "lake.png"), alphaImage(32, 32, diagonal))
	require.NoError(t, os.Mkdir(filepath.Join(src, "drafts"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(src, ".DS_Store"), []byte("junk"), 0644))

	results, err := NewConverter(src, out).Run()
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Equal(t, "icon_home", results[0].Name)
	require.Equal(t, filepath.Join(out, "icon_home.h"), results[0].Output)
	require.Equal(t, "icon_lake", results[1].Name)

	home, err := os.ReadFile(filepath.Join(out, "icon_home.h"))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(home), "const uint8_t icon_home[] PROGMEM = {\n0xff,0xff,"))
	require.True(t, strings.HasSuffix(string(home), "0xff\n};\n"))
	require.Equal(t, 128, strings.Count(string(home), "0xff"))

	lake, err := os.ReadFile(filepath.Join(out, "icon_lake.h"))
	require.NoError(t, err)
	// row 0 starts with the top-left pixel only
	require.Contains(t, string(lake), "{\n0x80,0x0,0x0,0x0,0x40,")
}

func TestConverterIdempotent(t *testing.T) {
	src, out := t.TempDir(), t.TempDir()
	writePNG(t, filepath.Join(src, "tree.png"), alphaImage(32, 32, diagonal))
	conv := NewConverter(src, out)

	_, err := conv.Run()
	require.NoError(t, err)
	first, err := os.ReadFile(filepath.Join(out, "icon_tree.h"))
	require.NoError(t, err)

	_, err = conv.Run()
	require.NoError(t, err)
	second, err := os.ReadFile(filepath.Join(out, "icon_tree.h"))
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestConverterOverwrites(t *testing.T) {
	src, out := t.TempDir(), t.TempDir()
	writePNG(t, filepath.Join(src, "tree.png"), alphaImage(32, 32, opaque))
	require.NoError(t, os.WriteFile(filepath.Join(out, "icon_tree.h"), []byte("stale"), 0644))
	_, err := NewConverter(src, out).Run()
	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(out, "icon_tree.h"))
	require.NoError(t, err)
	require.NotContains(t, string(data), "stale")
}

func TestConverterFailsOnNonImage(t *testing.T) {
	src, out := t.TempDir(), t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "a_notes.txt"), []byte("not an image"), 0644))
	writePNG(t, filepath.Join(src, "b_home.png"), alphaImage(32, 32, opaque))

	results, err := NewConverter(src, out).Run()
	require.Error(t, err)
	require.Contains(t, err.Error(), "a_notes.txt")
	require.Empty(t, results)
	_, statErr := os.Stat(filepath.Join(out, "icon_b_home.h"))
	require.True(t, os.IsNotExist(statErr))
}

func TestConverterNoAlpha(t *testing.T) {
	src, out := t.TempDir(), t.TempDir()
	f, err := os.Create(filepath.Join(src, "photo.jpg"))
	require.NoError(t, err)
	require.NoError(t, jpeg.Encode(f, image.NewGray(image.Rect(0, 0, 32, 32)), nil))
	require.NoError(t, f.Close())

	_, err = NewConverter(src, out).Run()
	require.True(t, errors.Is(err, ErrNoAlpha))
}

func TestConverterTruecolorWithoutAlpha(t *testing.T) {
	tests := []struct {
		name string
		img  image.Image
	}{
		{"rgb8", image.NewRGBA(image.Rect(0, 0, 32, 32))},
		{"rgb16", image.NewRGBA64(image.Rect(0, 0, 32, 32))},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			src, out := t.TempDir(), t.TempDir()
			img := tc.img.(draw.Image)
			for y := 0; y < 32; y++ {
				for x := 0; x < 32; x++ {
					img.Set(x, y, color.White)
				}
			}
			writePNG(t, filepath.Join(src, "rgb.png"), img)

			results, err := NewConverter(src, out).Run()
			require.True(t, errors.Is(err, ErrNoAlpha), "got %v", err)
			require.Empty(t, results)
			_, statErr := os.Stat(filepath.Join(out, "icon_rgb.h"))
			require.True(t, os.IsNotExist(statErr))
		})
	}
}

func TestConverterKeepGoing(t *testing.T) {
	src, out := t.TempDir(), t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "a.txt"), []byte("x"), 0644))
	writePNG(t, filepath.Join(src, "b.png"), alphaImage(32, 32, opaque))
	writePNG(t, filepath.Join(src, "c.png"), alphaImage(16, 16, opaque))

	conv := NewConverter(src, out)
	conv.KeepGoing = true
	results, err := conv.Run()
	require.Len(t, results, 1)
	require.Equal(t, "icon_b", results[0].Name)

	var agg *fx.AggregatedError
	require.True(t, errors.As(err, &agg))
	require.Len(t, agg.Errors, 2)
	var sizeErr *SizeError
	require.True(t, errors.As(agg.Errors[1], &sizeErr))
	require.Equal(t, 16, sizeErr.Width)
}

func TestConverterResize(t *testing.T) {
	src, out := t.TempDir(), t.TempDir()
	writePNG(t, filepath.Join(src, "big.png"), alphaImage(64, 64, opaque))

	_, err := NewConverter(src, out).Run()
	var sizeErr *SizeError
	require.True(t, errors.As(err, &sizeErr))
	require.Equal(t, 64, sizeErr.Width)

	conv := NewConverter(src, out)
	conv.Resize = true
	results, err := conv.Run()
	require.NoError(t, err)
	require.Len(t, results, 1)
	for _, b := range results[0].Mask.Bits {
		require.Equal(t, byte(0xff), b)
	}
}

func TestConverterPalettedImage(t *testing.T) {
	src, out := t.TempDir(), t.TempDir()
	pal := color.Palette{color.NRGBA{}, color.NRGBA{A: 255}}
	img := image.NewPaletted(image.Rect(0, 0, 32, 32), pal)
	img.SetColorIndex(31, 31, 1)
	writePNG(t, filepath.Join(src, "dot.png"), img)

	results, err := NewConverter(src, out).Run()
	require.NoError(t, err)
	require.True(t, results[0].Mask.At(31, 31))
	require.False(t, results[0].Mask.At(0, 0))
}
