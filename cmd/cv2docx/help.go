package main

import (
	"fmt"
	"io"
)

// printUsage writes the CLI usage text.
func printUsage(w io.Writer) {
	fmt.Fprintf(w, `cv2docx - batch CV document generator

Usage:
  cv2docx [flags] <profiles.json|profiles.xlsx>

Reads candidate profiles from a JSON or spreadsheet source and writes one
CV_<Name>_<Year>.docx file per record to the output directory. With
--process-photos, candidate photos are normalized (centered square crop,
bounded resolution, size-capped JPEG) into <output>/_photos_processed/.

Flags:
  -i, --input string          profiles file (alternative to the positional argument)
      --extra string          extra profiles JSON merged in memory (deduplicated)
  -o, --output string         output directory (default "output")
      --photos-dir string     directory searched for candidate photos
      --process-photos        normalize photos before embedding
      --require-photos        fail records whose photo cannot be prepared
      --target-size int       normalized photo side length in px (default 600)
      --min-size int          minimum source side length in px (default 400)
      --max-bytes int         photo size budget in bytes (default 204800)
      --photo-position string default photo placement: right-paragraph, right-table, left-table
  -c, --config string         config file name or path
  -q, --quiet                 only show errors
  -v, --verbose               show per-record diagnostics
      --version               print version and exit

Exit codes:
  0  at least one record succeeded
  1  unexpected error
  2  invalid flags or config
  3  input file missing or unreadable
  4  every record failed
`)
}
