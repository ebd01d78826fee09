package cv2docx

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nruiz/go-cv2docx/internal/fileutil"
	"github.com/nruiz/go-cv2docx/internal/slug"
)

// photoExtensions lists the accepted photo file extensions, in preference
// order for extension probing.
var photoExtensions = []string{".png", ".jpg", ".jpeg", ".webp"}

// PhotoResolver maps a profile's photo reference (and, as a fallback, the
// candidate's name) to an existing image path. The matching strategy is
// isolated behind this interface so it can be swapped or tested on its own.
type PhotoResolver interface {
	Resolve(ref, candidateName string) (string, error)
}

// DirPhotoResolver resolves photo references against the filesystem:
//
//  1. an explicit reference is tried as an absolute path, then relative to
//     BaseDir, then as a basename inside PhotosDir (probing known extensions
//     when the reference has none);
//  2. with no usable reference, PhotosDir is scanned for a file whose slugged
//     stem contains (or is contained by) the slugged candidate name.
//
// An explicit reference that resolves always wins over the fuzzy fallback.
type DirPhotoResolver struct {
	BaseDir   string // base for relative references; empty means cwd
	PhotosDir string // directory for basename and fuzzy lookups
}

// Resolve implements PhotoResolver.
func (r *DirPhotoResolver) Resolve(ref, candidateName string) (string, error) {
	if ref = strings.TrimSpace(ref); ref != "" {
		if path := r.resolveExplicit(ref); path != "" {
			return path, nil
		}
	}
	if path := FindPhotoByName(r.PhotosDir, candidateName); path != "" {
		return path, nil
	}
	return "", fmt.Errorf("%w: ref %q, candidate %q", ErrUnresolvedPhoto, ref, candidateName)
}

// resolveExplicit tries the explicit reference in all supported locations.
func (r *DirPhotoResolver) resolveExplicit(ref string) string {
	if filepath.IsAbs(ref) {
		if fileutil.FileExists(ref) {
			return ref
		}
		return ""
	}
	if candidate := filepath.Join(r.BaseDir, ref); fileutil.FileExists(candidate) {
		return candidate
	}
	if r.PhotosDir == "" {
		return ""
	}
	return findPhotoByBasename(r.PhotosDir, filepath.Base(ref))
}

// findPhotoByBasename looks a file up inside dir. References without an
// extension probe the known photo extensions in preference order.
func findPhotoByBasename(dir, base string) string {
	if base == "" {
		return ""
	}
	if filepath.Ext(base) != "" {
		if path := filepath.Join(dir, base); fileutil.FileExists(path) {
			return path
		}
		return ""
	}
	for _, ext := range photoExtensions {
		if path := filepath.Join(dir, base+ext); fileutil.FileExists(path) {
			return path
		}
	}
	return ""
}

// FindPhotoByName scans dir for a photo whose slugged stem matches the
// slugged candidate name by containment in either direction. Matching is
// case-, whitespace-, and diacritic-insensitive. The first directory-order
// match wins.
func FindPhotoByName(dir, candidateName string) string {
	want := slug.Make(candidateName)
	if want == "" || dir == "" {
		return ""
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if !isPhotoExtension(ext) {
			continue
		}
		stem := slug.Make(strings.TrimSuffix(name, filepath.Ext(name)))
		if stem == "" {
			continue
		}
		if strings.Contains(stem, want) || strings.Contains(want, stem) {
			return filepath.Join(dir, name)
		}
	}
	return ""
}

// isPhotoExtension reports whether ext is an accepted photo extension.
func isPhotoExtension(ext string) bool {
	for _, e := range photoExtensions {
		if ext == e {
			return true
		}
	}
	return false
}
