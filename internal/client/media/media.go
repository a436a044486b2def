// Package media turns image files into the data URIs stored on topics and
// profiles, and back.
package media

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/dmitrijs2005/coursemanager/internal/filex"
	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/webp" // WebP decoder
)

const (
	MimeJPEG = "image/jpeg"
	MimePNG  = "image/png"
	MimeGIF  = "image/gif"
	MimeWebP = "image/webp"
)

var (
	ErrUnsupportedImage = errors.New("unsupported image format")
	ErrInvalidDataURI   = errors.New("invalid data URI")
)

const jpegQuality = 90

// LoadDataURI reads an image file and returns it as a base64 data URI.
// Images wider or taller than maxDim are downsized to fit (0 disables), and
// EXIF orientation is applied. Untouched images keep their original bytes.
func LoadDataURI(path string, maxDim int) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	return EncodeDataURI(data, maxDim)
}

// EncodeDataURI is LoadDataURI for bytes already in memory.
func EncodeDataURI(data []byte, maxDim int) (string, error) {
	mime := detectMime(data)
	if mime == "" {
		return "", ErrUnsupportedImage
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnsupportedImage, err)
	}

	orientation := readExifOrientation(bytes.NewReader(data))
	tooBig := maxDim > 0 && (cfg.Width > maxDim || cfg.Height > maxDim)
	if !tooBig && orientation == 1 {
		return toDataURI(mime, data), nil
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}
	img = applyOrientation(img, orientation)
	if tooBig {
		img = imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)
	}

	out, outMime, err := encodeImage(img, mime)
	if err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}
	return toDataURI(outMime, out), nil
}

// DecodeDataURI splits a base64 data URI into its MIME type and payload.
func DecodeDataURI(uri string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, ErrInvalidDataURI
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, ErrInvalidDataURI
	}
	mime, isBase64 := strings.CutSuffix(meta, ";base64")
	if !isBase64 {
		return "", nil, fmt.Errorf("%w: only base64 payloads are supported", ErrInvalidDataURI)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrInvalidDataURI, err)
	}
	return mime, data, nil
}

// SaveDataURI writes the payload of uri to path.
func SaveDataURI(uri, path string) error {
	_, data, err := DecodeDataURI(uri)
	if err != nil {
		return err
	}
	return filex.WriteFileAtomic(path, data, 0o644)
}

// Extension returns a file extension for a MIME type, ".bin" when unknown.
func Extension(mime string) string {
	switch mime {
	case MimeJPEG:
		return ".jpg"
	case MimePNG:
		return ".png"
	case MimeGIF:
		return ".gif"
	case MimeWebP:
		return ".webp"
	default:
		return ".bin"
	}
}

func toDataURI(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// detectMime sniffs the content. TIFF is rejected (CVE-2023-36308 in
// disintegration/imaging).
func detectMime(data []byte) string {
	switch ct := http.DetectContentType(data); ct {
	case MimeJPEG, MimePNG, MimeGIF, MimeWebP:
		return ct
	default:
		return ""
	}
}

// readExifOrientation returns 1 (normal) when no orientation tag is present.
func readExifOrientation(r io.Reader) int {
	x, err := exif.Decode(r)
	if err != nil {
		return 1
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}
	o, err := tag.Int(0)
	if err != nil || o < 1 || o > 8 {
		return 1
	}
	return o
}

// applyOrientation maps EXIF orientations 2..8 onto flips and rotations.
func applyOrientation(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.FlipH(imaging.Rotate270(img))
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.FlipH(imaging.Rotate90(img))
	case 8:
		return imaging.Rotate90(img)
	default:
		return img
	}
}

// encodeImage keeps the source format; WebP has no pure-Go encoder and is
// written as JPEG.
func encodeImage(img image.Image, mime string) ([]byte, string, error) {
	var buf bytes.Buffer
	var err error

	switch mime {
	case MimePNG:
		err = png.Encode(&buf, img)
	case MimeGIF:
		err = gif.Encode(&buf, img, nil)
	default:
		mime = MimeJPEG
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality})
	}
	if err != nil {
		return nil, "", err
	}
	return buf.Bytes(), mime, nil
}
