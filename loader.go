package cv2docx

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// profileJSON is the wire shape of one profile record. Field names follow
// the established profile-file format; encoding/json matches keys
// case-insensitively.
type profileJSON struct {
	Name           string           `json:"nombre"`
	Title          string           `json:"cargo"`
	Contact        []string         `json:"contacto"`
	Location       string           `json:"ubicacion"`
	IncludePhoto   bool             `json:"incluir_foto"`
	PhotoRef       string           `json:"ruta_foto"`
	PhotoPosition  string           `json:"photo_position"`
	Summary        string           `json:"resumen"`
	Experience     []experienceJSON `json:"experiencias"`
	Education      []educationJSON  `json:"educacion"`
	Certifications StringList       `json:"certificaciones"`
	Skills         StringList       `json:"habilidades"`
	Languages      languageList     `json:"idiomas"`
}

type experienceJSON struct {
	Role         string     `json:"puesto"`
	Organization string     `json:"empresa"`
	Period       string     `json:"periodo"`
	Location     string     `json:"ubicacion"`
	Sector       string     `json:"sector"`
	Achievements StringList `json:"logros"`
	Activities   StringList `json:"actividades"`
	Projects     StringList `json:"proyectos"`
}

type educationJSON struct {
	Degree      string `json:"grado"`
	Institution string `json:"institucion"`
	Detail      string `json:"detalle"`
}

// languageList unmarshals from either a JSON object (order preserved) or a
// delimited Name:Level string.
type languageList []Language

func (l *languageList) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "{") {
		langs, err := parseLanguageObject(data)
		if err != nil {
			return err
		}
		*l = langs
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("languages must be an object or a delimited string: %w", err)
	}
	*l = ParseLanguages(s)
	return nil
}

// toProfile converts the wire shape into the canonical record, normalizing
// the contact list and experience/education entries.
func (pj *profileJSON) toProfile() *Profile {
	contact := ClassifyContacts(pj.Contact)
	if contact.Location == "" {
		contact.Location = strings.TrimSpace(pj.Location)
	}

	p := &Profile{
		Name:           strings.TrimSpace(pj.Name),
		Title:          strings.TrimSpace(pj.Title),
		Contact:        contact,
		Summary:        strings.TrimSpace(pj.Summary),
		Certifications: pj.Certifications,
		Skills:         pj.Skills,
		Languages:      pj.Languages,
		IncludePhoto:   pj.IncludePhoto,
		PhotoRef:       strings.TrimSpace(pj.PhotoRef),
		PhotoPosition:  strings.TrimSpace(pj.PhotoPosition),
	}
	for _, e := range pj.Experience {
		p.Experience = append(p.Experience, e2exp(e))
	}
	for _, e := range pj.Education {
		p.Education = append(p.Education, Education{
			Degree:      strings.TrimSpace(e.Degree),
			Institution: strings.TrimSpace(e.Institution),
			Detail:      strings.TrimSpace(e.Detail),
		})
	}
	return p
}

func e2exp(e experienceJSON) Experience {
	return Experience{
		Role:         strings.TrimSpace(e.Role),
		Organization: strings.TrimSpace(e.Organization),
		Period:       strings.TrimSpace(e.Period),
		Location:     strings.TrimSpace(e.Location),
		Sector:       strings.TrimSpace(e.Sector),
		Achievements: e.Achievements,
		Activities:   e.Activities,
		Projects:     e.Projects,
	}
}

// LoadProfilesJSON reads profile records from a JSON file. The document may
// be a list of profiles, an object with a "perfiles" list, or a single
// profile object.
func LoadProfilesJSON(path string) ([]*Profile, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return nil, fmt.Errorf("reading profiles file: %w", err)
	}
	profiles, err := ParseProfiles(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return profiles, nil
}

// ParseProfiles decodes profile records from JSON bytes, accepting all three
// supported document shapes.
func ParseProfiles(data []byte) ([]*Profile, error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return nil, ErrNoProfiles
	}

	// List of profiles.
	if strings.HasPrefix(trimmed, "[") {
		var list []profileJSON
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrProfileSourceParse, err)
		}
		return wireToProfiles(list)
	}

	// Wrapped object, with a single-profile fallback.
	var wrapped struct {
		Profiles []profileJSON `json:"perfiles"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProfileSourceParse, err)
	}
	if len(wrapped.Profiles) > 0 {
		return wireToProfiles(wrapped.Profiles)
	}

	var single profileJSON
	if err := json.Unmarshal(data, &single); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProfileSourceParse, err)
	}
	if single.Name == "" && single.Title == "" {
		return nil, ErrNoProfiles
	}
	return wireToProfiles([]profileJSON{single})
}

func wireToProfiles(list []profileJSON) ([]*Profile, error) {
	if len(list) == 0 {
		return nil, ErrNoProfiles
	}
	profiles := make([]*Profile, 0, len(list))
	for _, pj := range list {
		profiles = append(profiles, pj.toProfile())
	}
	return profiles, nil
}

// MergeProfiles combines base and extra profile lists, preserving order and
// dropping duplicates by (name, title, record fingerprint).
func MergeProfiles(base, extra []*Profile) []*Profile {
	seen := make(map[string]struct{}, len(base)+len(extra))
	merged := make([]*Profile, 0, len(base)+len(extra))
	for _, p := range append(append([]*Profile{}, base...), extra...) {
		key := p.fingerprint()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		merged = append(merged, p)
	}
	return merged
}
