package cv2docx

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// Photo position constants. They select where the candidate photo is placed
// in the document header.
const (
	// PhotoPositionRightParagraph renders the photo in an independent
	// right-aligned paragraph below the header text.
	PhotoPositionRightParagraph = "right-paragraph"
	// PhotoPositionRightTable renders a two-column header table with text on
	// the left and the photo on the right.
	PhotoPositionRightTable = "right-table"
	// PhotoPositionLeftTable renders a two-column header table with the photo
	// on the left and text on the right.
	PhotoPositionLeftTable = "left-table"
)

// Photo normalization defaults.
const (
	DefaultTargetSize    = 600       // target side length in pixels
	DefaultMinSize       = 400       // minimum acceptable source side length
	DefaultMaxPhotoBytes = 200 << 10 // 200 KiB encoded size budget
)

// JPEG quality search bounds for the size-budget compression loop.
const (
	minJPEGQuality = 40
	maxJPEGQuality = 95
)

// PhotoSettings holds the constraints enforced by the photo normalizer.
type PhotoSettings struct {
	TargetSize int   // side length of the normalized square image, pixels
	MinSize    int   // sources with a shorter side below this are rejected
	MaxBytes   int64 // encoded size budget in bytes
}

// DefaultPhotoSettings returns photo settings with default values.
func DefaultPhotoSettings() PhotoSettings {
	return PhotoSettings{
		TargetSize: DefaultTargetSize,
		MinSize:    DefaultMinSize,
		MaxBytes:   DefaultMaxPhotoBytes,
	}
}

// Validate checks that photo settings are internally consistent.
func (s PhotoSettings) Validate() error {
	if s.TargetSize <= 0 {
		return fmt.Errorf("%w: target size %d (must be positive)", ErrInvalidPhotoSettings, s.TargetSize)
	}
	if s.MinSize <= 0 {
		return fmt.Errorf("%w: minimum size %d (must be positive)", ErrInvalidPhotoSettings, s.MinSize)
	}
	if s.MinSize > s.TargetSize {
		return fmt.Errorf("%w: minimum size %d exceeds target size %d", ErrInvalidPhotoSettings, s.MinSize, s.TargetSize)
	}
	if s.MaxBytes <= 0 {
		return fmt.Errorf("%w: byte budget %d (must be positive)", ErrInvalidPhotoSettings, s.MaxBytes)
	}
	return nil
}

// NormalizePhotoPosition validates a photo position value and maps the empty
// string to the default placement. Comparison is case-insensitive, and
// underscore spellings (right_table) from older profile files are accepted.
func NormalizePhotoPosition(pos string) (string, error) {
	pos = strings.ToLower(strings.TrimSpace(pos))
	pos = strings.ReplaceAll(pos, "_", "-")
	switch pos {
	case "":
		return PhotoPositionRightParagraph, nil
	case PhotoPositionRightParagraph:
		return PhotoPositionRightParagraph, nil
	case PhotoPositionRightTable:
		return PhotoPositionRightTable, nil
	case PhotoPositionLeftTable:
		return PhotoPositionLeftTable, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPhotoPosition, pos)
	}
}

// Option configures a Generator.
type Option func(*Generator)

// generatorConfig holds internal configuration for Generator.
type generatorConfig struct {
	outputDir     string
	photosDir     string
	baseDir       string
	processPhotos bool
	requirePhotos bool
	photo         PhotoSettings
}

// Default output directory for rendered documents.
const defaultOutputDir = "output"

// WithOutputDir sets the directory where documents (and the processed-photos
// subdirectory) are written.
func WithOutputDir(dir string) Option {
	return func(g *Generator) {
		g.cfg.outputDir = dir
	}
}

// WithPhotosDir sets the directory searched when resolving photo references
// by basename or by candidate name.
func WithPhotosDir(dir string) Option {
	return func(g *Generator) {
		g.cfg.photosDir = dir
	}
}

// WithBaseDir sets the directory that relative photo references are resolved
// against. Defaults to the current working directory.
func WithBaseDir(dir string) Option {
	return func(g *Generator) {
		g.cfg.baseDir = dir
	}
}

// WithPhotoProcessing enables or disables photo normalization. When disabled,
// resolved photos are embedded as-is.
func WithPhotoProcessing(enabled bool) Option {
	return func(g *Generator) {
		g.cfg.processPhotos = enabled
	}
}

// WithPhotoSettings overrides the photo normalization constraints.
func WithPhotoSettings(s PhotoSettings) Option {
	return func(g *Generator) {
		g.cfg.photo = s
	}
}

// WithRequiredPhotos makes photo resolution and normalization failures fatal
// for the affected record instead of downgrading it to a photo-less document.
func WithRequiredPhotos(required bool) Option {
	return func(g *Generator) {
		g.cfg.requirePhotos = required
	}
}

// WithLogger sets the logger used for per-record diagnostics.
// The default logger discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(g *Generator) {
		g.log = log
	}
}

// WithRenderer replaces the document renderer (e.g., by tests).
func WithRenderer(r Renderer) Option {
	return func(g *Generator) {
		g.renderer = r
	}
}

// WithPhotoResolver replaces the photo resolver (e.g., by tests).
func WithPhotoResolver(r PhotoResolver) Option {
	return func(g *Generator) {
		g.resolver = r
	}
}
