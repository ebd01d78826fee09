package cv2docx

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Contact holds a candidate's contact fields. All fields are optional.
// LinkedIn is accepted from sources but never rendered.
type Contact struct {
	Email    string
	Phone    string
	Web      string
	LinkedIn string
	Location string
}

// Line assembles the rendered contact line from present fields only, in a
// fixed order: email | phone | web | location. Any field whose value mentions
// LinkedIn is dropped regardless of which slot it arrived in.
func (c Contact) Line() string {
	fields := []string{c.Email, c.Phone, c.Web, c.Location}
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" || isLinkedIn(f) {
			continue
		}
		parts = append(parts, f)
	}
	return strings.Join(parts, " | ")
}

// isLinkedIn reports whether a contact value refers to LinkedIn.
func isLinkedIn(s string) bool {
	return strings.Contains(strings.ToLower(s), "linkedin")
}

// ClassifyContacts maps a flat list of contact strings (the shape used by
// older profile files) onto structured contact fields. The first match per
// field wins; unclassified entries land in Web.
func ClassifyContacts(entries []string) Contact {
	var c Contact
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		switch {
		case isLinkedIn(e):
			if c.LinkedIn == "" {
				c.LinkedIn = e
			}
		case strings.Contains(e, "@"):
			if c.Email == "" {
				c.Email = e
			}
		case looksLikePhone(e):
			if c.Phone == "" {
				c.Phone = e
			}
		default:
			if c.Web == "" {
				c.Web = e
			}
		}
	}
	return c
}

// looksLikePhone reports whether a contact entry is mostly dial characters.
func looksLikePhone(s string) bool {
	if s == "" {
		return false
	}
	digits := 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '+' || r == ' ' || r == '-' || r == '(' || r == ')' || r == '.':
		default:
			return false
		}
	}
	return digits >= 6
}

// Experience is one entry in a candidate's work history. Achievement,
// activity, and project lists are optional and already normalized to plain
// ordered string slices regardless of the source representation.
type Experience struct {
	Role         string
	Organization string
	Period       string
	Location     string
	Sector       string
	Achievements []string
	Activities   []string
	Projects     []string
}

// Education is one entry in a candidate's education history.
type Education struct {
	Degree      string
	Institution string
	Detail      string
}

// Language pairs a language name with a proficiency level. Order follows the
// source document.
type Language struct {
	Name  string
	Level string
}

// Profile is the in-memory representation of one candidate's CV data.
// Name is the only required field; everything else degrades gracefully when
// absent.
type Profile struct {
	Name           string
	Title          string
	Contact        Contact
	Summary        string
	Experience     []Experience
	Education      []Education
	Certifications []string
	Skills         []string
	Languages      []Language
	IncludePhoto   bool
	PhotoRef       string
	PhotoPosition  string
}

// Validate checks the record-level invariant: a profile must have a name.
func (p *Profile) Validate() error {
	if p == nil || strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name", ErrMissingRequiredField)
	}
	return nil
}

// fingerprint returns a stable identity used for deduplication when merging
// profile sources: name and title, plus a canonical JSON dump as tie-breaker
// so distinct records sharing a name are both kept.
func (p *Profile) fingerprint() string {
	name := strings.ToLower(strings.TrimSpace(p.Name))
	title := strings.ToLower(strings.TrimSpace(p.Title))
	dump, err := json.Marshal(p)
	if err != nil {
		return name + "|" + title
	}
	return name + "|" + title + "|" + string(dump)
}

// StringList is an ordered list of strings that unmarshals from either a
// native JSON array or a single delimited string (comma, semicolon, or
// newline separated).
type StringList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *StringList) UnmarshalJSON(data []byte) error {
	var items []string
	if err := json.Unmarshal(data, &items); err == nil {
		*l = trimNonEmpty(items)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("string list must be an array or a delimited string: %w", err)
	}
	*l = SplitList(s)
	return nil
}

// SplitList splits a delimited string into an ordered list of trimmed,
// non-empty items. Commas, semicolons, and newlines all delimit.
func SplitList(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	s = strings.NewReplacer("\n", ";", ",", ";").Replace(s)
	return trimNonEmpty(strings.Split(s, ";"))
}

// trimNonEmpty trims every item and drops the empty ones, preserving order.
func trimNonEmpty(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			out = append(out, it)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// ParseLanguages reads a language list from either a JSON object
// ({"Español": "Nativo"}) or a delimited string of Name:Level pairs
// ("Español:Nativo;Inglés:B2"). Items without a level keep an empty level.
func ParseLanguages(s string) []Language {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if strings.HasPrefix(s, "{") {
		if langs, err := parseLanguageObject([]byte(s)); err == nil {
			return langs
		}
	}
	var langs []Language
	for _, item := range SplitList(s) {
		name, level, _ := strings.Cut(item, ":")
		langs = append(langs, Language{
			Name:  strings.TrimSpace(name),
			Level: strings.TrimSpace(level),
		})
	}
	return langs
}

// parseLanguageObject decodes a JSON object into languages preserving the
// key order of the document, which encoding/json maps would lose.
func parseLanguageObject(data []byte) ([]Language, error) {
	dec := json.NewDecoder(strings.NewReader(string(data)))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("languages: expected object, got %v", tok)
	}
	var langs []Language
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("languages: non-string key %v", keyTok)
		}
		var level string
		if err := dec.Decode(&level); err != nil {
			return nil, fmt.Errorf("languages: level for %q: %w", key, err)
		}
		langs = append(langs, Language{Name: key, Level: level})
	}
	return langs, nil
}
