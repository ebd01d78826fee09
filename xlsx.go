package cv2docx

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Column synonym sets for the spreadsheet loader. Headers are matched
// case-insensitively after trimming.
var (
	colsEmail       = []string{"email", "correo"}
	colsPhone       = []string{"movil", "celular", "telefono"}
	colsWeb         = []string{"web", "sitio"}
	colsPhoto       = []string{"foto", "foto_filename", "ruta_foto"}
	colsInstitution = []string{"institucion", "universidad"}
	colsPeriod      = []string{"periodo", "fecha"}
	colsExpRole     = []string{"puesto", "cargo_experiencia"}
	colsExpLocation = []string{"ubicacion_experiencia", "ubicacion"}
)

// truthy values accepted by boolean spreadsheet cells.
var trueValues = map[string]bool{
	"1": true, "true": true, "sí": true, "si": true,
	"y": true, "yes": true, "x": true,
}

// LoadProfilesXLSX reads profile records from the first sheet of a
// spreadsheet. The first row is the header; every following non-empty row is
// one record. photosDir, when non-empty, is probed so that records whose
// candidate name matches a photo file get photo inclusion switched on, the
// way explicit photo columns do.
func LoadProfilesXLSX(path, photosDir string) ([]*Profile, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoProfiles
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: reading sheet %q: %v", ErrProfileSourceParse, sheets[0], err)
	}
	if len(rows) < 2 {
		return nil, ErrNoProfiles
	}

	header := rows[0]
	var profiles []*Profile
	for _, row := range rows[1:] {
		rec := newRowRecord(header, row)
		if rec.empty() {
			continue
		}
		profiles = append(profiles, rec.toProfile(photosDir))
	}
	if len(profiles) == 0 {
		return nil, ErrNoProfiles
	}
	return profiles, nil
}

// rowRecord gives synonym-aware access to one spreadsheet row.
type rowRecord map[string]string

func newRowRecord(header, row []string) rowRecord {
	rec := make(rowRecord, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if key == "" || i >= len(row) {
			continue
		}
		rec[key] = strings.TrimSpace(row[i])
	}
	return rec
}

// get returns the first non-empty value among the given column names.
func (r rowRecord) get(keys ...string) string {
	for _, k := range keys {
		if v := r[k]; v != "" {
			return v
		}
	}
	return ""
}

func (r rowRecord) empty() bool {
	for _, v := range r {
		if v != "" {
			return false
		}
	}
	return true
}

// toProfile builds the canonical record from one row.
func (r rowRecord) toProfile(photosDir string) *Profile {
	photoRef := r.get(colsPhoto...)
	includePhoto := parseBool(r.get("incluir_foto")) || photoRef != ""
	if !includePhoto && photosDir != "" {
		if FindPhotoByName(photosDir, r.get("nombre")) != "" {
			includePhoto = true
		}
	}

	return &Profile{
		Name:  r.get("nombre"),
		Title: r.get("cargo"),
		Contact: Contact{
			Email:    r.get(colsEmail...),
			Phone:    r.get(colsPhone...),
			Web:      r.get(colsWeb...),
			LinkedIn: r.get("linkedin"),
			Location: r.get("ubicacion"),
		},
		Summary:        r.get("resumen"),
		Experience:     r.parseExperience(),
		Education:      r.parseEducation(),
		Certifications: SplitList(r.get("certificaciones")),
		Skills:         SplitList(r.get("habilidades")),
		Languages:      ParseLanguages(r.get("idiomas")),
		IncludePhoto:   includePhoto,
		PhotoRef:       photoRef,
		PhotoPosition:  r.get("photo_position"),
	}
}

// parseExperience normalizes the row's work history: a JSON-in-cell list
// when present, otherwise flat single-entry columns. Both representations
// yield the same internal shape.
func (r rowRecord) parseExperience() []Experience {
	if cell := r.get("experiencias_json", "experiencias"); cell != "" {
		var list []experienceJSON
		if err := json.Unmarshal([]byte(cell), &list); err == nil && len(list) > 0 {
			out := make([]Experience, 0, len(list))
			for _, e := range list {
				out = append(out, e2exp(e))
			}
			return out
		}
	}

	role := r.get(colsExpRole...)
	org := r.get("empresa")
	if role == "" || org == "" {
		return nil
	}
	return []Experience{{
		Role:         role,
		Organization: org,
		Period:       r.get(colsPeriod...),
		Location:     r.get(colsExpLocation...),
		Sector:       r.get("sector"),
		Achievements: SplitList(r.get("logros")),
		Activities:   SplitList(r.get("actividades")),
		Projects:     SplitList(r.get("proyectos")),
	}}
}

// parseEducation mirrors parseExperience for education entries.
func (r rowRecord) parseEducation() []Education {
	if cell := r.get("educacion_json", "educacion"); cell != "" {
		var list []educationJSON
		if err := json.Unmarshal([]byte(cell), &list); err == nil && len(list) > 0 {
			out := make([]Education, 0, len(list))
			for _, e := range list {
				out = append(out, Education{
					Degree:      strings.TrimSpace(e.Degree),
					Institution: strings.TrimSpace(e.Institution),
					Detail:      strings.TrimSpace(e.Detail),
				})
			}
			return out
		}
	}

	degree := r.get("grado")
	inst := r.get(colsInstitution...)
	if degree == "" || inst == "" {
		return nil
	}
	return []Education{{
		Degree:      degree,
		Institution: inst,
		Detail:      r.get("detalle"),
	}}
}

// parseBool interprets permissive truthy spreadsheet values.
func parseBool(s string) bool {
	return trueValues[strings.ToLower(strings.TrimSpace(s))]
}
