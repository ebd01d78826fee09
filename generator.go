package cv2docx

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"
)

// ProcessedPhotosDirName is the subdirectory of the output directory where
// normalized photos are cached.
const ProcessedPhotosDirName = "_photos_processed"

// Generator drives the photo and rendering pipeline over profile records.
// Records are processed strictly sequentially; each record's resources are
// scoped to its own step, so one failure cannot corrupt a later record.
type Generator struct {
	cfg        generatorConfig
	resolver   PhotoResolver
	normalizer *PhotoNormalizer
	renderer   Renderer
	log        zerolog.Logger
}

// NewGenerator creates a Generator with default configuration. Use options
// to customize behavior (e.g., WithOutputDir, WithPhotoProcessing).
func NewGenerator(opts ...Option) (*Generator, error) {
	g := &Generator{
		cfg: generatorConfig{
			outputDir: defaultOutputDir,
			photo:     DefaultPhotoSettings(),
		},
		log: zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(g)
	}

	if err := g.cfg.photo.Validate(); err != nil {
		return nil, err
	}

	if g.resolver == nil {
		g.resolver = &DirPhotoResolver{BaseDir: g.cfg.baseDir, PhotosDir: g.cfg.photosDir}
	}
	if g.renderer == nil {
		g.renderer = NewDocxRenderer(g.cfg.outputDir)
	}
	g.normalizer = NewPhotoNormalizer(
		filepath.Join(g.cfg.outputDir, ProcessedPhotosDirName), g.cfg.photo)

	return g, nil
}

// GenerateBatch processes every profile in input order and returns the run
// report. Per-record failures never abort the batch. The returned error is
// ErrAllRecordsFailed when no record succeeded, nil otherwise.
func (g *Generator) GenerateBatch(profiles []*Profile) (*RunReport, error) {
	report := &RunReport{Results: make([]RecordResult, 0, len(profiles))}

	for i, p := range profiles {
		result := g.GenerateOne(p)
		if result.Failed() {
			g.log.Warn().Int("record", i).Str("name", result.Name).Err(result.Err).Msg("record failed")
		} else {
			g.log.Info().Int("record", i).Str("name", result.Name).Str("output", result.OutputPath).Msg("record done")
		}
		report.Results = append(report.Results, result)
	}

	if s := report.Summary(); len(report.Results) > 0 && s.Succeeded == 0 {
		return report, fmt.Errorf("%w: %d records", ErrAllRecordsFailed, s.Failed)
	}
	return report, nil
}

// GenerateOne runs the full pipeline for a single record: validate, resolve
// and normalize the photo when requested, render the document.
func (g *Generator) GenerateOne(p *Profile) RecordResult {
	result := RecordResult{Name: recordName(p)}

	if err := p.Validate(); err != nil {
		result.Err = err
		return result
	}

	photoPath, warn, err := g.preparePhoto(p)
	if err != nil {
		result.Err = err
		return result
	}
	if warn != "" {
		result.Warnings = append(result.Warnings, warn)
	}
	result.PhotoPath = photoPath

	outPath, err := g.renderer.Render(p, photoPath)
	if err != nil {
		result.Err = fmt.Errorf("rendering document: %w", err)
		return result
	}
	result.OutputPath = outPath
	return result
}

// preparePhoto resolves and (when enabled) normalizes the record's photo.
// Photo problems downgrade the record to photo-less rendering with a warning
// unless photos are configured as required, in which case they are fatal.
func (g *Generator) preparePhoto(p *Profile) (path, warning string, err error) {
	if !p.IncludePhoto {
		return "", "", nil
	}

	resolved, err := g.resolver.Resolve(p.PhotoRef, p.Name)
	if err != nil {
		if g.cfg.requirePhotos {
			return "", "", fmt.Errorf("%w: %v", ErrPhotoRequired, err)
		}
		g.log.Debug().Str("name", p.Name).Err(err).Msg("photo not resolved, rendering without photo")
		return "", fmt.Sprintf("photo skipped: %v", err), nil
	}

	if !g.cfg.processPhotos {
		return resolved, "", nil
	}

	asset, err := g.normalizer.Normalize(resolved)
	if err != nil {
		if g.cfg.requirePhotos {
			return "", "", fmt.Errorf("%w: %v", ErrPhotoRequired, err)
		}
		g.log.Debug().Str("name", p.Name).Str("photo", resolved).Err(err).Msg("photo normalization failed, rendering without photo")
		return "", fmt.Sprintf("photo skipped: %v", err), nil
	}
	g.log.Debug().Str("name", p.Name).Str("photo", asset.Path).Int64("bytes", asset.Size).Msg("photo normalized")
	return asset.Path, "", nil
}

// recordName returns a stable identifier for report entries, even for
// records that fail validation.
func recordName(p *Profile) string {
	if p == nil || p.Name == "" {
		return "(unnamed)"
	}
	return p.Name
}
