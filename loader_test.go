package cv2docx

// Notes:
// - ParseProfiles: tests the three accepted document shapes and parse errors
// - LoadProfilesJSON: tests file-level loading
// - MergeProfiles: tests order-preserving deduplication

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleProfileJSON = `{
	"nombre": "Ana García",
	"cargo": "Ingeniera de Software",
	"contacto": ["ana@example.com", "+34 600 123 456", "linkedin.com/in/anagarcia"],
	"ubicacion": "Madrid, España",
	"incluir_foto": true,
	"ruta_foto": "ana.jpg",
	"photo_position": "right-table",
	"resumen": "Ingeniera con 8 años de experiencia.",
	"experiencias": [
		{
			"puesto": "Tech Lead",
			"empresa": "Acme",
			"periodo": "2020 - Presente",
			"ubicacion": "Madrid",
			"sector": "Fintech",
			"logros": ["Redujo latencia un 40%"],
			"actividades": "Mentoring; Arquitectura",
			"proyectos": ["Plataforma de pagos"]
		}
	],
	"educacion": [
		{"grado": "Grado en Informática", "institucion": "UCM", "detalle": "2012 - 2016"}
	],
	"certificaciones": ["AWS SAA"],
	"habilidades": "Go, Python, SQL",
	"idiomas": {"Español": "Nativo", "Inglés": "C1"}
}`

// ---------------------------------------------------------------------------
// TestParseProfiles - Document Shapes
// ---------------------------------------------------------------------------

func TestParseProfiles_SingleObject(t *testing.T) {
	t.Parallel()

	profiles, err := ParseProfiles([]byte(sampleProfileJSON))
	require.NoError(t, err)
	require.Len(t, profiles, 1)

	p := profiles[0]
	assert.Equal(t, "Ana García", p.Name)
	assert.Equal(t, "Ingeniera de Software", p.Title)
	assert.Equal(t, "ana@example.com", p.Contact.Email)
	assert.Equal(t, "+34 600 123 456", p.Contact.Phone)
	assert.Equal(t, "linkedin.com/in/anagarcia", p.Contact.LinkedIn)
	assert.Equal(t, "Madrid, España", p.Contact.Location)
	assert.True(t, p.IncludePhoto)
	assert.Equal(t, "ana.jpg", p.PhotoRef)
	assert.Equal(t, "right-table", p.PhotoPosition)
	assert.Equal(t, "Ingeniera con 8 años de experiencia.", p.Summary)

	require.Len(t, p.Experience, 1)
	exp := p.Experience[0]
	assert.Equal(t, "Tech Lead", exp.Role)
	assert.Equal(t, "Acme", exp.Organization)
	assert.Equal(t, "2020 - Presente", exp.Period)
	assert.Equal(t, []string{"Redujo latencia un 40%"}, []string(exp.Achievements))
	assert.Equal(t, []string{"Mentoring", "Arquitectura"}, []string(exp.Activities))

	require.Len(t, p.Education, 1)
	assert.Equal(t, "Grado en Informática", p.Education[0].Degree)
	assert.Equal(t, "UCM", p.Education[0].Institution)

	assert.Equal(t, []string{"AWS SAA"}, []string(p.Certifications))
	assert.Equal(t, []string{"Go", "Python", "SQL"}, []string(p.Skills))
	require.Len(t, p.Languages, 2)
	assert.Equal(t, Language{Name: "Español", Level: "Nativo"}, p.Languages[0])
	assert.Equal(t, Language{Name: "Inglés", Level: "C1"}, p.Languages[1])
}

func TestParseProfiles_List(t *testing.T) {
	t.Parallel()

	data := []byte(`[{"nombre": "Ana"}, {"nombre": "Luis"}]`)
	profiles, err := ParseProfiles(data)
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.Equal(t, "Ana", profiles[0].Name)
	assert.Equal(t, "Luis", profiles[1].Name)
}

func TestParseProfiles_WrappedObject(t *testing.T) {
	t.Parallel()

	data := []byte(`{"perfiles": [{"nombre": "Ana"}, {"nombre": "Luis"}]}`)
	profiles, err := ParseProfiles(data)
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.Equal(t, "Ana", profiles[0].Name)
	assert.Equal(t, "Luis", profiles[1].Name)
}

func TestParseProfiles_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{name: "empty input", data: "", wantErr: ErrNoProfiles},
		{name: "whitespace input", data: "  \n ", wantErr: ErrNoProfiles},
		{name: "empty list", data: "[]", wantErr: ErrNoProfiles},
		{name: "empty wrapped list", data: `{"perfiles": []}`, wantErr: ErrNoProfiles},
		{name: "object with no identity", data: `{"resumen": "texto"}`, wantErr: ErrNoProfiles},
		{name: "malformed json", data: `[{"nombre": }`, wantErr: ErrProfileSourceParse},
		{name: "wrong list element type", data: `[42]`, wantErr: ErrProfileSourceParse},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseProfiles([]byte(tt.data))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// ---------------------------------------------------------------------------
// TestLoadProfilesJSON - File Loading
// ---------------------------------------------------------------------------

func TestLoadProfilesJSON(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "perfiles.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"nombre": "Ana"}]`), 0o644))

	profiles, err := LoadProfilesJSON(path)
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, "Ana", profiles[0].Name)
}

func TestLoadProfilesJSON_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadProfilesJSON(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

// ---------------------------------------------------------------------------
// TestMergeProfiles - Deduplicating Merge
// ---------------------------------------------------------------------------

func TestMergeProfiles(t *testing.T) {
	t.Parallel()

	ana := &Profile{Name: "Ana García", Title: "Ingeniera"}
	anaDup := &Profile{Name: "Ana García", Title: "Ingeniera"}
	anaOther := &Profile{Name: "Ana García", Title: "Ingeniera", Summary: "distinta"}
	luis := &Profile{Name: "Luis Pérez"}

	tests := []struct {
		name      string
		base      []*Profile
		extra     []*Profile
		wantNames []string
	}{
		{
			name:      "no overlap",
			base:      []*Profile{ana},
			extra:     []*Profile{luis},
			wantNames: []string{"Ana García", "Luis Pérez"},
		},
		{
			name:      "identical record dropped",
			base:      []*Profile{ana},
			extra:     []*Profile{anaDup},
			wantNames: []string{"Ana García"},
		},
		{
			name:      "same name different content kept",
			base:      []*Profile{ana},
			extra:     []*Profile{anaOther},
			wantNames: []string{"Ana García", "Ana García"},
		},
		{
			name:      "base order preserved",
			base:      []*Profile{luis, ana},
			extra:     []*Profile{ana},
			wantNames: []string{"Luis Pérez", "Ana García"},
		},
		{
			name:      "empty base",
			base:      nil,
			extra:     []*Profile{ana},
			wantNames: []string{"Ana García"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			merged := MergeProfiles(tt.base, tt.extra)
			names := make([]string, 0, len(merged))
			for _, p := range merged {
				names = append(names, p.Name)
			}
			assert.Equal(t, tt.wantNames, names)
		})
	}
}
