package cv2docx

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nruiz/go-cv2docx/internal/docwriter"
	"github.com/nruiz/go-cv2docx/internal/fileutil"
)

// Visual constants, matching the house CV template.
const (
	accentColor  = "2F80ED" // professional blue accent
	photoWidthCm = 3.5      // display width of the embedded photo
)

// Run styles used throughout the document.
var (
	nameStyle         = docwriter.TextStyle{Size: 20, Bold: true}
	roleStyle         = docwriter.TextStyle{Size: 12, Color: accentColor}
	contactStyle      = docwriter.TextStyle{Size: 10.5}
	sectionTitleStyle = docwriter.TextStyle{Size: 12, Bold: true, Color: accentColor}
	bodyStyle         = docwriter.TextStyle{Size: 11}
	entryHeaderStyle  = docwriter.TextStyle{Size: 11.5, Bold: true}
	entrySubStyle     = docwriter.TextStyle{Size: 10}
	blockLabelStyle   = docwriter.TextStyle{Size: 10.5, Bold: true}
	bulletStyle       = docwriter.TextStyle{Size: 10.5}
	noteStyle         = docwriter.TextStyle{Size: 9}
)

// Renderer produces one output document from one profile record and an
// optional resolved photo path.
type Renderer interface {
	Render(p *Profile, photoPath string) (outputPath string, err error)
}

// DocxRenderer renders profiles to .docx files in a fixed output directory.
// It is a pure transformation: no state is shared across invocations.
type DocxRenderer struct {
	outDir string
	now    func() time.Time
}

// Compile-time interface implementation check.
var _ Renderer = (*DocxRenderer)(nil)

// NewDocxRenderer creates a renderer writing documents to outDir.
func NewDocxRenderer(outDir string) *DocxRenderer {
	return &DocxRenderer{outDir: outDir, now: time.Now}
}

// OutputFileName derives the deterministic document filename from the
// candidate name and a year: CV_<Name>_<Year>.docx, spaces as underscores.
// Repeated runs for the same candidate and year overwrite.
func OutputFileName(name string, year int) string {
	safe := strings.ReplaceAll(strings.TrimSpace(name), " ", "_")
	return fmt.Sprintf("CV_%s_%d.docx", safe, year)
}

// Render implements Renderer. A missing name is fatal for the record; every
// other absent field is simply omitted. An unreadable or missing photo
// degrades to a photo-less document, and an unrecognized layout hint falls
// back to the default placement.
func (r *DocxRenderer) Render(p *Profile, photoPath string) (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}
	position, err := NormalizePhotoPosition(p.PhotoPosition)
	if err != nil {
		position = PhotoPositionRightParagraph
	}

	doc := docwriter.New()
	r.renderHeader(doc, p, photoPath, position)
	renderSummary(doc.Body(), p)
	renderExperience(doc.Body(), p.Experience)
	renderEducation(doc.Body(), p.Education)
	renderBulletSection(doc.Body(), "Certificaciones", p.Certifications)
	renderBulletSection(doc.Body(), "Habilidades", p.Skills)
	renderLanguages(doc.Body(), p.Languages)

	if err := fileutil.EnsureDir(r.outDir); err != nil {
		return "", err
	}
	outPath := filepath.Join(r.outDir, OutputFileName(p.Name, r.now().Year()))
	if err := doc.SaveTo(outPath); err != nil {
		return "", fmt.Errorf("%w: %v", ErrDocxRender, err)
	}
	return outPath, nil
}

// renderHeader writes the name/role/contact block, embedding the photo per
// the requested placement when one is available.
func (r *DocxRenderer) renderHeader(doc *docwriter.Document, p *Profile, photoPath, position string) {
	hasPhoto := photoPath != "" && fileutil.FileExists(photoPath)
	useTable := position == PhotoPositionRightTable || position == PhotoPositionLeftTable

	if hasPhoto && useTable {
		left, right := doc.HeaderColumns()
		if position == PhotoPositionRightTable {
			renderHeaderText(left, p)
			embedPhoto(right, photoPath, docwriter.AlignRight)
		} else {
			embedPhoto(left, photoPath, docwriter.AlignLeft)
			renderHeaderText(right, p)
		}
		return
	}

	body := doc.Body()
	renderHeaderText(body, p)
	if hasPhoto {
		embedPhoto(body, photoPath, docwriter.AlignRight)
	}
}

// renderHeaderText writes name, role, and the contact line into a block.
func renderHeaderText(b *docwriter.Block, p *Profile) {
	b.AddText(p.Name, docwriter.AlignLeft, nameStyle)
	if p.Title != "" {
		b.AddText(p.Title, docwriter.AlignLeft, roleStyle)
	}
	if line := p.Contact.Line(); line != "" {
		b.AddText(line, docwriter.AlignLeft, contactStyle)
	}
}

// embedPhoto inserts the photo at the fixed display width. Failure is
// non-fatal: the document gets a short note instead of the image.
func embedPhoto(b *docwriter.Block, path, align string) {
	w, h := imageDimensions(path)
	if err := b.AddPicture(path, photoWidthCm, align, w, h); err != nil {
		b.AddText(fmt.Sprintf("(could not insert photo: %v)", err), docwriter.AlignLeft, noteStyle)
	}
}

// imageDimensions reads the pixel size of an image without decoding it
// fully. Returns zeros when the header cannot be read.
func imageDimensions(path string) (int, int) {
	f, err := os.Open(path) // #nosec G304 -- resolved photo path
	if err != nil {
		return 0, 0
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0
	}
	return cfg.Width, cfg.Height
}

func renderSummary(b *docwriter.Block, p *Profile) {
	if p.Summary == "" {
		return
	}
	addSectionTitle(b, "Resumen profesional")
	b.AddText(p.Summary, docwriter.AlignLeft, bodyStyle)
}

func renderExperience(b *docwriter.Block, entries []Experience) {
	if len(entries) == 0 {
		return
	}
	addSectionTitle(b, "Experiencia profesional")
	for _, exp := range entries {
		b.AddText(experienceHeader(exp), docwriter.AlignLeft, entryHeaderStyle)

		var sub []string
		if exp.Location != "" {
			sub = append(sub, exp.Location)
		}
		if exp.Sector != "" {
			sub = append(sub, exp.Sector)
		}
		if len(sub) > 0 {
			b.AddText(strings.Join(sub, " / "), docwriter.AlignLeft, entrySubStyle)
		}

		renderBulletBlock(b, "Logros:", exp.Achievements)
		renderBulletBlock(b, "Actividades:", exp.Activities)
		renderBulletBlock(b, "Proyectos:", exp.Projects)
	}
}

// experienceHeader formats the entry headline: role – organization | period.
func experienceHeader(exp Experience) string {
	header := exp.Role
	if exp.Organization != "" {
		header += " – " + exp.Organization
	}
	if exp.Period != "" {
		header += " | " + exp.Period
	}
	return header
}

func renderEducation(b *docwriter.Block, entries []Education) {
	if len(entries) == 0 {
		return
	}
	addSectionTitle(b, "Educación")
	for _, ed := range entries {
		b.AddText(ed.Degree+" – "+ed.Institution, docwriter.AlignLeft, entryHeaderStyle)
		if ed.Detail != "" {
			b.AddText(ed.Detail, docwriter.AlignLeft, bulletStyle)
		}
	}
}

func renderBulletSection(b *docwriter.Block, title string, items []string) {
	if len(items) == 0 {
		return
	}
	addSectionTitle(b, title)
	for _, item := range items {
		b.AddBullet(item, bulletStyle)
	}
}

func renderLanguages(b *docwriter.Block, langs []Language) {
	if len(langs) == 0 {
		return
	}
	addSectionTitle(b, "Idiomas")
	for _, l := range langs {
		item := l.Name
		if l.Level != "" {
			item += ": " + l.Level
		}
		b.AddBullet(item, bulletStyle)
	}
}

// addSectionTitle writes an uppercased, accent-colored section heading.
func addSectionTitle(b *docwriter.Block, title string) {
	b.AddText(strings.ToUpper(title), docwriter.AlignLeft, sectionTitleStyle)
}

// renderBulletBlock writes a bold label followed by its bullet items, or
// nothing when the list is empty.
func renderBulletBlock(b *docwriter.Block, label string, items []string) {
	if len(items) == 0 {
		return
	}
	b.AddText(label, docwriter.AlignLeft, blockLabelStyle)
	for _, item := range items {
		b.AddBullet(item, bulletStyle)
	}
}
