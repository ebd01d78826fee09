package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across runs.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// inputFlags holds profile source flags.
type inputFlags struct {
	input string
	extra string
}

// photoFlags holds photo resolution and normalization flags.
type photoFlags struct {
	dir        string
	process    bool
	required   bool
	targetSize int
	minSize    int
	maxBytes   int64
	position   string
}

// cliFlags holds all flags for the generate command.
type cliFlags struct {
	common  commonFlags
	input   inputFlags
	outDir  string
	photos  photoFlags
	version bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show per-record diagnostics")
}

// addInputFlags adds profile source flags to a FlagSet.
func addInputFlags(fs *flag.FlagSet, f *inputFlags) {
	fs.StringVarP(&f.input, "input", "i", "", "profiles file (.json, .xlsx)")
	fs.StringVar(&f.extra, "extra", "", "extra profiles JSON merged in memory (deduplicated)")
}

// addPhotoFlags adds photo pipeline flags to a FlagSet.
func addPhotoFlags(fs *flag.FlagSet, f *photoFlags) {
	fs.StringVar(&f.dir, "photos-dir", "", "directory searched for candidate photos")
	fs.BoolVar(&f.process, "process-photos", false, "normalize photos (square crop, resize, compress)")
	fs.BoolVar(&f.required, "require-photos", false, "fail records whose photo cannot be prepared")
	fs.IntVar(&f.targetSize, "target-size", 0, "normalized photo side length in px (0 = 600)")
	fs.IntVar(&f.minSize, "min-size", 0, "minimum acceptable source side length in px (0 = 400)")
	fs.Int64Var(&f.maxBytes, "max-bytes", 0, "photo size budget in bytes (0 = 200 KiB)")
	fs.StringVar(&f.position, "photo-position", "", "default photo placement: right-paragraph, right-table, left-table")
}

// parseFlags parses CLI flags and returns positional args.
func parseFlags(args []string) (*cliFlags, []string, error) {
	fs := flag.NewFlagSet("cv2docx", flag.ContinueOnError)
	f := &cliFlags{}

	fs.StringVarP(&f.outDir, "output", "o", "", "output directory for documents")
	fs.BoolVar(&f.version, "version", false, "print version and exit")

	addCommonFlags(fs, &f.common)
	addInputFlags(fs, &f.input)
	addPhotoFlags(fs, &f.photos)

	fs.Usage = func() { printUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
