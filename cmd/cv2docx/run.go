package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	cv2docx "github.com/nruiz/go-cv2docx"
	"github.com/nruiz/go-cv2docx/internal/config"
	"github.com/nruiz/go-cv2docx/internal/fileutil"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput          = errors.New("no input specified")
	ErrUnsupportedInput = errors.New("input must have a .json, .xlsx, or .xlsm extension")
)

// Environment groups the writers the run reports to, so tests can capture
// output.
type Environment struct {
	Stdout io.Writer
	Stderr io.Writer
}

// run executes one batch generation: resolve configuration, load profiles,
// drive the generator, print the report. The returned error maps to an exit
// code in main.
func run(flags *cliFlags, positional []string, env *Environment, log zerolog.Logger) error {
	cfg := config.DefaultConfig()
	if flags.common.config != "" {
		loaded, err := config.LoadConfig(flags.common.config)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	// Quiet and verbose flags outrank the config file level.
	if lvl := cfg.Logging.Level; lvl != "" && !flags.common.quiet && !flags.common.verbose {
		if parsed, err := zerolog.ParseLevel(strings.ToLower(lvl)); err == nil {
			log = log.Level(parsed)
		}
	}

	inputPath := resolveInputPath(flags, positional, cfg)
	if inputPath == "" {
		return ErrNoInput
	}

	profiles, err := loadProfiles(inputPath, photosDir(flags, cfg))
	if err != nil {
		return err
	}

	if extra := resolveExtraPath(flags, cfg); extra != "" {
		extraProfiles, err := cv2docx.LoadProfilesJSON(extra)
		if err != nil {
			log.Warn().Str("file", extra).Err(err).Msg("extra profiles skipped")
		} else {
			before := len(profiles)
			profiles = cv2docx.MergeProfiles(profiles, extraProfiles)
			log.Info().Int("added", len(profiles)-before).Str("file", extra).Msg("merged extra profiles")
		}
	}

	if pos := flags.photos.position; pos != "" {
		if _, err := cv2docx.NormalizePhotoPosition(pos); err != nil {
			return err
		}
		for _, p := range profiles {
			if p.PhotoPosition == "" {
				p.PhotoPosition = pos
			}
		}
	}

	gen, err := cv2docx.NewGenerator(buildOptions(flags, cfg, log)...)
	if err != nil {
		return err
	}

	log.Info().Int("profiles", len(profiles)).Str("input", inputPath).Msg("starting batch")
	report, err := gen.GenerateBatch(profiles)
	if report != nil {
		report.Fprint(env.Stdout, env.Stderr, flags.common.quiet)
	}
	return err
}

// resolveInputPath picks the profile source: positional argument, then
// --input, then the config file default.
func resolveInputPath(flags *cliFlags, positional []string, cfg *config.Config) string {
	if len(positional) > 0 {
		return positional[0]
	}
	if flags.input.input != "" {
		return flags.input.input
	}
	return cfg.Input.ProfilesFile
}

// resolveExtraPath picks the optional extra profiles file. A config-supplied
// extra file that does not exist is silently ignored; an explicit flag value
// is passed through so its absence surfaces as an error.
func resolveExtraPath(flags *cliFlags, cfg *config.Config) string {
	if flags.input.extra != "" {
		return flags.input.extra
	}
	if cfg.Input.ExtraFile != "" && fileutil.FileExists(cfg.Input.ExtraFile) {
		return cfg.Input.ExtraFile
	}
	return ""
}

// loadProfiles dispatches on the input file extension.
func loadProfiles(path, photosDir string) ([]*cv2docx.Profile, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return cv2docx.LoadProfilesJSON(path)
	case ".xlsx", ".xlsm":
		return cv2docx.LoadProfilesXLSX(path, photosDir)
	default:
		return nil, fmt.Errorf("%w: got %q", ErrUnsupportedInput, filepath.Ext(path))
	}
}

// photosDir resolves the photo directory with flags taking precedence.
func photosDir(flags *cliFlags, cfg *config.Config) string {
	if flags.photos.dir != "" {
		return flags.photos.dir
	}
	return cfg.Photos.Dir
}

// buildOptions merges flags over config into generator options.
// Flags win; config fills the gaps; zero values fall through to library
// defaults.
func buildOptions(flags *cliFlags, cfg *config.Config, log zerolog.Logger) []cv2docx.Option {
	photo := cv2docx.DefaultPhotoSettings()
	if cfg.Photos.TargetSize > 0 {
		photo.TargetSize = cfg.Photos.TargetSize
	}
	if flags.photos.targetSize > 0 {
		photo.TargetSize = flags.photos.targetSize
	}
	if cfg.Photos.MinSize > 0 {
		photo.MinSize = cfg.Photos.MinSize
	}
	if flags.photos.minSize > 0 {
		photo.MinSize = flags.photos.minSize
	}
	if cfg.Photos.MaxBytes > 0 {
		photo.MaxBytes = cfg.Photos.MaxBytes
	}
	if flags.photos.maxBytes > 0 {
		photo.MaxBytes = flags.photos.maxBytes
	}

	outDir := cfg.Output.Dir
	if flags.outDir != "" {
		outDir = flags.outDir
	}

	opts := []cv2docx.Option{
		cv2docx.WithPhotosDir(photosDir(flags, cfg)),
		cv2docx.WithPhotoProcessing(flags.photos.process || cfg.Photos.Process),
		cv2docx.WithRequiredPhotos(flags.photos.required || cfg.Photos.Required),
		cv2docx.WithPhotoSettings(photo),
		cv2docx.WithLogger(log),
	}
	if outDir != "" {
		opts = append(opts, cv2docx.WithOutputDir(outDir))
	}
	return opts
}
