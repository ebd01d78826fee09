package cv2docx

// Notes:
// - Normalize: tests the crop/resize/compress pipeline end to end on
//   generated images, including the failure paths that must not write output
// - DerivedPhotoName: tests deterministic output naming

import (
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
)

// writeTestJPEG writes a gradient JPEG of the given dimensions and returns
// its path. A gradient compresses realistically, unlike a flat color.
func writeTestJPEG(t *testing.T, dir, name string, width, height int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating test image: %v", err)
	}
	defer f.Close()
	if err := jpeg.Encode(f, gradientImage(width, height), &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("encoding test image: %v", err)
	}
	return path
}

func writeTestPNG(t *testing.T, dir, name string, width, height int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating test image: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, gradientImage(width, height)); err != nil {
		t.Fatalf("encoding test image: %v", err)
	}
	return path
}

func gradientImage(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{
				R: uint8(x * 255 / width),
				G: uint8(y * 255 / height),
				B: uint8((x + y) * 255 / (width + height)),
				A: 255,
			})
		}
	}
	return img
}

// writeNoiseJPEG writes a fixed-seed random-noise JPEG. Noise compresses
// poorly, which lets tests exercise the size-budget failure paths.
func writeNoiseJPEG(t *testing.T, dir, name string, width, height int) string {
	t.Helper()
	rng := rand.New(rand.NewSource(1))
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{
				R: uint8(rng.Intn(256)),
				G: uint8(rng.Intn(256)),
				B: uint8(rng.Intn(256)),
				A: 255,
			})
		}
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating test image: %v", err)
	}
	defer f.Close()
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: 95}); err != nil {
		t.Fatalf("encoding test image: %v", err)
	}
	return path
}

// decodeDimensions reads back the pixel size of a written file.
func decodeDimensions(t *testing.T, path string) (int, int) {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening output: %v", err)
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	return cfg.Width, cfg.Height
}

// ---------------------------------------------------------------------------
// TestPhotoNormalizer_Normalize - Pipeline Success Paths
// ---------------------------------------------------------------------------

func TestPhotoNormalizer_Normalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		width    int
		height   int
		wantSide int
	}{
		{name: "landscape above target", width: 1000, height: 800, wantSide: 600},
		{name: "portrait above target", width: 800, height: 1200, wantSide: 600},
		{name: "exactly target square", width: 600, height: 600, wantSide: 600},
		{name: "between minimum and target resizes up", width: 500, height: 450, wantSide: 600},
		{name: "shorter side exactly minimum", width: 900, height: 400, wantSide: 600},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			srcDir := t.TempDir()
			outDir := t.TempDir()
			src := writeTestJPEG(t, srcDir, "candidate.jpg", tt.width, tt.height)

			n := NewPhotoNormalizer(outDir, DefaultPhotoSettings())
			asset, err := n.Normalize(src)
			if err != nil {
				t.Fatalf("Normalize() error = %v", err)
			}

			if asset.Width != tt.wantSide || asset.Height != tt.wantSide {
				t.Errorf("asset dimensions = %dx%d, want %dx%d",
					asset.Width, asset.Height, tt.wantSide, tt.wantSide)
			}
			if asset.Size > DefaultMaxPhotoBytes {
				t.Errorf("asset size = %d bytes, want <= %d", asset.Size, DefaultMaxPhotoBytes)
			}
			if asset.SourcePath != src {
				t.Errorf("asset source = %q, want %q", asset.SourcePath, src)
			}

			w, h := decodeDimensions(t, asset.Path)
			if w != tt.wantSide || h != tt.wantSide {
				t.Errorf("written file dimensions = %dx%d, want %dx%d", w, h, tt.wantSide, tt.wantSide)
			}
			info, err := os.Stat(asset.Path)
			if err != nil {
				t.Fatalf("stat output: %v", err)
			}
			if info.Size() != asset.Size {
				t.Errorf("file size = %d, asset reports %d", info.Size(), asset.Size)
			}
		})
	}
}

func TestPhotoNormalizer_Normalize_PNGSource(t *testing.T) {
	t.Parallel()
	srcDir := t.TempDir()
	outDir := t.TempDir()
	src := writeTestPNG(t, srcDir, "candidate.png", 700, 700)

	n := NewPhotoNormalizer(outDir, DefaultPhotoSettings())
	asset, err := n.Normalize(src)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if filepath.Ext(asset.Path) != ".jpg" {
		t.Errorf("output extension = %q, want .jpg", filepath.Ext(asset.Path))
	}
	if got := filepath.Base(asset.Path); got != "candidate_600.jpg" {
		t.Errorf("output name = %q, want candidate_600.jpg", got)
	}
}

func TestPhotoNormalizer_Normalize_RepeatOverwrites(t *testing.T) {
	t.Parallel()
	srcDir := t.TempDir()
	outDir := t.TempDir()
	src := writeTestJPEG(t, srcDir, "candidate.jpg", 1000, 800)

	n := NewPhotoNormalizer(outDir, DefaultPhotoSettings())
	first, err := n.Normalize(src)
	if err != nil {
		t.Fatalf("first Normalize() error = %v", err)
	}
	second, err := n.Normalize(src)
	if err != nil {
		t.Fatalf("second Normalize() error = %v", err)
	}
	if first.Path != second.Path {
		t.Errorf("repeated runs wrote %q then %q, want same path", first.Path, second.Path)
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		t.Fatalf("reading output dir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("output dir has %d files, want 1", len(entries))
	}
}

func TestPhotoNormalizer_Normalize_ResolutionBackoff(t *testing.T) {
	t.Parallel()

	// A noise image cannot meet the budget at the target resolution even at
	// minimum quality, so the normalizer halves the resolution once. The
	// derived filename must carry the side length actually written.
	srcDir := t.TempDir()
	outDir := t.TempDir()
	src := writeNoiseJPEG(t, srcDir, "noise.jpg", 800, 800)

	settings := PhotoSettings{TargetSize: 600, MinSize: 300, MaxBytes: 30 << 10}
	n := NewPhotoNormalizer(outDir, settings)
	asset, err := n.Normalize(src)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	if asset.Width != 300 || asset.Height != 300 {
		t.Errorf("asset dimensions = %dx%d, want 300x300", asset.Width, asset.Height)
	}
	if asset.Size > settings.MaxBytes {
		t.Errorf("asset size = %d bytes, want <= %d", asset.Size, settings.MaxBytes)
	}
	if got := filepath.Base(asset.Path); got != "noise_300.jpg" {
		t.Errorf("output name = %q, want noise_300.jpg", got)
	}

	w, h := decodeDimensions(t, asset.Path)
	if w != 300 || h != 300 {
		t.Errorf("written file dimensions = %dx%d, want 300x300", w, h)
	}
}

// ---------------------------------------------------------------------------
// TestPhotoNormalizer_Normalize_Errors - Pipeline Failure Paths
// ---------------------------------------------------------------------------

func TestPhotoNormalizer_Normalize_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		settings PhotoSettings
		source   func(t *testing.T, dir string) string
		wantErr  error
	}{
		{
			name:     "resolution below minimum",
			settings: DefaultPhotoSettings(),
			source: func(t *testing.T, dir string) string {
				return writeTestJPEG(t, dir, "small.jpg", 300, 300)
			},
			wantErr: ErrResolutionTooLow,
		},
		{
			name:     "shorter side below minimum despite large longer side",
			settings: DefaultPhotoSettings(),
			source: func(t *testing.T, dir string) string {
				return writeTestJPEG(t, dir, "banner.jpg", 2000, 350)
			},
			wantErr: ErrResolutionTooLow,
		},
		{
			name:     "not an image",
			settings: DefaultPhotoSettings(),
			source: func(t *testing.T, dir string) string {
				path := filepath.Join(dir, "corrupt.jpg")
				if err := os.WriteFile(path, []byte("this is not an image"), 0o644); err != nil {
					t.Fatalf("writing corrupt file: %v", err)
				}
				return path
			},
			wantErr: ErrUnreadableImage,
		},
		{
			name:     "missing file",
			settings: DefaultPhotoSettings(),
			source: func(t *testing.T, dir string) string {
				return filepath.Join(dir, "missing.jpg")
			},
			wantErr: ErrUnreadableImage,
		},
		{
			name:     "budget unreachable at minimum quality",
			settings: PhotoSettings{TargetSize: 600, MinSize: 400, MaxBytes: 200},
			source: func(t *testing.T, dir string) string {
				return writeTestJPEG(t, dir, "big.jpg", 1000, 800)
			},
			wantErr: ErrSizeBudgetExceeded,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			srcDir := t.TempDir()
			outDir := t.TempDir()
			src := tt.source(t, srcDir)

			n := NewPhotoNormalizer(outDir, tt.settings)
			asset, err := n.Normalize(src)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Normalize() error = %v, want %v", err, tt.wantErr)
			}
			if asset != nil {
				t.Errorf("Normalize() asset = %+v, want nil", asset)
			}

			// No derived file may exist after a failure.
			entries, readErr := os.ReadDir(outDir)
			if readErr != nil {
				t.Fatalf("reading output dir: %v", readErr)
			}
			if len(entries) != 0 {
				t.Errorf("output dir has %d files after failure, want 0", len(entries))
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestDerivedPhotoName - Output Naming
// ---------------------------------------------------------------------------

func TestDerivedPhotoName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		src    string
		target int
		want   string
	}{
		{name: "jpeg source", src: "/photos/ana garcia.jpg", target: 600, want: "ana garcia_600.jpg"},
		{name: "png source", src: "photos/ana.png", target: 600, want: "ana_600.jpg"},
		{name: "no extension", src: "ana", target: 600, want: "ana_600.jpg"},
		{name: "custom target", src: "ana.webp", target: 400, want: "ana_400.jpg"},
		{name: "dotted stem keeps the last extension only", src: "ana.v2.jpeg", target: 600, want: "ana.v2_600.jpg"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := DerivedPhotoName(tt.src, tt.target); got != tt.want {
				t.Fatalf("DerivedPhotoName(%q, %d) = %q, want %q", tt.src, tt.target, got, tt.want)
			}
		})
	}
}
