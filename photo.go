package cv2docx

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif" // register GIF decoding
	"image/jpeg"
	_ "image/png" // register PNG decoding
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP decoding

	"github.com/nruiz/go-cv2docx/internal/fileutil"
)

// PhotoAsset describes a normalized photo written to the processed-photos
// directory. Assets are written once and never mutated; repeated runs
// overwrite the same derived path.
type PhotoAsset struct {
	SourcePath string // original image the asset was derived from
	Path       string // derived file location
	Width      int    // pixels
	Height     int    // pixels
	Size       int64  // encoded bytes
}

// PhotoNormalizer produces square, bounded-resolution, size-capped JPEG
// images suitable for embedding in a document. It is safe to reuse across
// records; each call touches only its own derived file.
type PhotoNormalizer struct {
	settings PhotoSettings
	outDir   string
}

// NewPhotoNormalizer creates a normalizer that writes derived images to
// outDir using the given constraints.
func NewPhotoNormalizer(outDir string, settings PhotoSettings) *PhotoNormalizer {
	return &PhotoNormalizer{settings: settings, outDir: outDir}
}

// Normalize reads the source image and produces a derived file satisfying
// the configured constraints, or fails without writing anything:
//
//   - undecodable source: ErrUnreadableImage
//   - shorter side below the minimum: ErrResolutionTooLow (never upscaled)
//   - budget unreachable even at minimum quality: ErrSizeBudgetExceeded
//
// The derived filename is deterministic, so repeated runs overwrite rather
// than accumulate.
func (n *PhotoNormalizer) Normalize(srcPath string) (*PhotoAsset, error) {
	src, err := decodeImage(srcPath)
	if err != nil {
		return nil, err
	}

	bounds := src.Bounds()
	side := bounds.Dx()
	if bounds.Dy() < side {
		side = bounds.Dy()
	}
	if side < n.settings.MinSize {
		return nil, fmt.Errorf("%w: %dx%d (shorter side %d, minimum %d): %s",
			ErrResolutionTooLow, bounds.Dx(), bounds.Dy(), side, n.settings.MinSize, srcPath)
	}

	crop := centeredSquare(bounds, side)

	encoded, err := n.encodeUnderBudget(src, crop, n.settings.TargetSize)
	if err != nil {
		// Last resort before giving up: drop the output resolution once.
		reduced := n.settings.TargetSize / 2
		if reduced < n.settings.MinSize {
			reduced = n.settings.MinSize
		}
		if reduced >= n.settings.TargetSize {
			return nil, fmt.Errorf("%s: %w", srcPath, err)
		}
		encoded, err = n.encodeUnderBudget(src, crop, reduced)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", srcPath, err)
		}
	}

	if err := fileutil.EnsureDir(n.outDir); err != nil {
		return nil, fmt.Errorf("creating processed-photos directory: %w", err)
	}
	outPath := filepath.Join(n.outDir, DerivedPhotoName(srcPath, encoded.side))
	if err := os.WriteFile(outPath, encoded.data, fileutil.FilePerm); err != nil {
		return nil, fmt.Errorf("writing normalized photo: %w", err)
	}

	return &PhotoAsset{
		SourcePath: srcPath,
		Path:       outPath,
		Width:      encoded.side,
		Height:     encoded.side,
		Size:       int64(len(encoded.data)),
	}, nil
}

// DerivedPhotoName returns the deterministic output filename for a source
// photo: the source stem plus the rendered side length, always .jpg.
func DerivedPhotoName(srcPath string, side int) string {
	base := filepath.Base(srcPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return fmt.Sprintf("%s_%d.jpg", stem, side)
}

// decodeImage opens and decodes a source image via the registered codecs.
func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path) // #nosec G304 -- resolved photo path
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadableImage, path, err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s (format %q): %v", ErrUnreadableImage, path, format, err)
	}
	return img, nil
}

// centeredSquare returns the largest square crop rectangle centered on both
// axes of bounds.
func centeredSquare(bounds image.Rectangle, side int) image.Rectangle {
	left := bounds.Min.X + (bounds.Dx()-side)/2
	top := bounds.Min.Y + (bounds.Dy()-side)/2
	return image.Rect(left, top, left+side, top+side)
}

// encodedPhoto is the in-memory result of a successful crop+resize+encode.
type encodedPhoto struct {
	data []byte
	side int
}

// encodeUnderBudget crops src to the given square, resizes it to side×side
// with a CatmullRom kernel, and JPEG-encodes it at the highest quality that
// fits the byte budget. Quality is found by binary search over the allowed
// range; if even the minimum quality overshoots, ErrSizeBudgetExceeded is
// returned.
func (n *PhotoNormalizer) encodeUnderBudget(src image.Image, crop image.Rectangle, side int) (*encodedPhoto, error) {
	resized := image.NewRGBA(image.Rect(0, 0, side, side))
	draw.CatmullRom.Scale(resized, resized.Bounds(), src, crop, draw.Src, nil)

	var best []byte
	low, high := minJPEGQuality, maxJPEGQuality
	for low <= high {
		q := (low + high) / 2
		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: q}); err != nil {
			return nil, fmt.Errorf("encoding JPEG at quality %d: %w", q, err)
		}
		if int64(buf.Len()) <= n.settings.MaxBytes {
			best = buf.Bytes()
			low = q + 1
		} else {
			high = q - 1
		}
	}
	if best == nil {
		return nil, fmt.Errorf("%w: minimum quality %d still above %d bytes at %dpx",
			ErrSizeBudgetExceeded, minJPEGQuality, n.settings.MaxBytes, side)
	}
	return &encodedPhoto{data: best, side: side}, nil
}
