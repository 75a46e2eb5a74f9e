package phash

import (
	"bytes"
	"image"
	"sort"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"gonum.org/v1/gonum/dsp/fourier"
)

const (
	// DefaultHashSize yields the standard 64-bit pHash.
	DefaultHashSize = 8

	// normalizedSize is the square canvas every page is resampled to before
	// hashing. Skipping this step would make distances track source
	// resolution instead of page content.
	normalizedSize = 256

	// highFreqFactor oversamples the DCT input relative to the hash size so
	// the retained low-frequency block discards fine detail.
	highFreqFactor = 4
)

// DecodeError wraps an image decoding failure. Pages that fail to decode are
// dropped from their sequence rather than aborting the chapter.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return "decode image: " + e.Err.Error() }

func (e *DecodeError) Unwrap() error { return e.Err }

// Compute fingerprints a single page image. It returns the digest along with
// the original pixel dimensions. Supported formats: JPEG, PNG, GIF, WebP.
func Compute(data []byte, hashSize int) (Digest, int, int, error) {
	if hashSize < 2 {
		hashSize = DefaultHashSize
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Digest{}, 0, 0, &DecodeError{Err: err}
	}
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	// Single-channel luminance and canvas normalization happen in one
	// resampling pass: scaling into a Gray destination converts color.
	canvas := image.NewGray(image.Rect(0, 0, normalizedSize, normalizedSize))
	draw.CatmullRom.Scale(canvas, canvas.Bounds(), img, bounds, draw.Src, nil)

	n := hashSize * highFreqFactor
	small := image.NewGray(image.Rect(0, 0, n, n))
	draw.CatmullRom.Scale(small, small.Bounds(), canvas, canvas.Bounds(), draw.Src, nil)

	coeffs := dct2D(small, n)

	low := make([]float64, 0, hashSize*hashSize)
	for y := 0; y < hashSize; y++ {
		for x := 0; x < hashSize; x++ {
			low = append(low, coeffs[y*n+x])
		}
	}
	med := median(low)

	digest := newDigest(hashSize * hashSize)
	for i, v := range low {
		if v > med {
			digest.setBit(i)
		}
	}
	return digest, width, height, nil
}

// dct2D computes a separable 2D DCT of the grayscale image, rows then
// columns, returning coefficients in row-major order.
func dct2D(img *image.Gray, n int) []float64 {
	values := make([]float64, n*n)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			values[y*n+x] = float64(img.GrayAt(x, y).Y)
		}
	}

	dct := fourier.NewDCT(n)
	buf := make([]float64, n)
	for y := 0; y < n; y++ {
		row := values[y*n : (y+1)*n]
		copy(buf, row)
		dct.Transform(row, buf)
	}

	col := make([]float64, n)
	out := make([]float64, n)
	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			col[y] = values[y*n+x]
		}
		out = dct.Transform(out, col)
		for y := 0; y < n; y++ {
			values[y*n+x] = out[y]
		}
	}
	return values
}

func median(values []float64) float64 {
	cp := append([]float64(nil), values...)
	sort.Float64s(cp)
	mid := len(cp) / 2
	if len(cp)%2 == 1 {
		return cp[mid]
	}
	return (cp[mid-1] + cp[mid]) / 2
}
