// Package docwriter wraps the OOXML writing library behind a small surface
// of paragraph, bullet, picture, and header-table primitives. Keeping every
// library touchpoint here allows swapping the underlying writer without
// modifying the renderer.
package docwriter

import (
	"fmt"
	"os"
	"strconv"

	"github.com/fumiama/go-docx"
)

// Paragraph alignment values.
const (
	AlignLeft   = "left"
	AlignCenter = "center"
	AlignRight  = "right"
)

// emuPerCm is the OOXML English Metric Unit count per centimeter.
const emuPerCm = 360000

// TextStyle describes run-level formatting. Size is in points; Color is a
// hex RGB string without the leading '#'. Zero values mean "library default".
type TextStyle struct {
	Size  float64
	Bold  bool
	Color string
}

// Document is an in-memory word-processing document.
type Document struct {
	file *docx.Docx
}

// New creates an empty document with the default theme.
func New() *Document {
	return &Document{file: docx.New().WithDefaultTheme()}
}

// Block is anything paragraphs can be appended to: the document body or a
// header-table cell.
type Block struct {
	add func() *docx.Paragraph
}

// Body returns the document body as a Block.
func (d *Document) Body() *Block {
	return &Block{add: d.file.AddParagraph}
}

// AddText appends one styled paragraph to the block.
func (b *Block) AddText(text, align string, style TextStyle) {
	para := b.add()
	applyAlign(para, align)
	styleRun(para.AddText(text), style)
}

// AddBullet appends one bullet item.
func (b *Block) AddBullet(text string, style TextStyle) {
	b.AddText("• "+text, AlignLeft, style)
}

// AddPicture appends a paragraph containing the image at path, displayed at
// widthCm with proportional height. The image dimensions are used to keep
// the aspect ratio.
func (b *Block) AddPicture(path string, widthCm float64, align string, imgWidth, imgHeight int) error {
	para := b.add()
	applyAlign(para, align)
	run, err := para.AddInlineDrawingFrom(path)
	if err != nil {
		return fmt.Errorf("inserting picture %s: %w", path, err)
	}
	if imgWidth > 0 && imgHeight > 0 {
		cx := int64(widthCm * emuPerCm)
		cy := cx * int64(imgHeight) / int64(imgWidth)
		resizeDrawing(run, cx, cy)
	}
	return nil
}

// HeaderColumns appends a one-row, two-column layout table and returns the
// cells as blocks, left first.
func (d *Document) HeaderColumns() (left, right *Block) {
	table := d.file.AddTable(1, 2, 0, nil)
	row := table.TableRows[0]
	left = &Block{add: row.TableCells[0].AddParagraph}
	right = &Block{add: row.TableCells[1].AddParagraph}
	return left, right
}

// SaveTo writes the document to path, overwriting an existing file.
func (d *Document) SaveTo(path string) error {
	f, err := os.Create(path) // #nosec G304 -- derived output path
	if err != nil {
		return fmt.Errorf("creating document file: %w", err)
	}
	defer f.Close()

	if _, err := d.file.WriteTo(f); err != nil {
		return fmt.Errorf("writing document: %w", err)
	}
	return nil
}

// styleRun applies a TextStyle to a run. The library takes sizes in
// half-points encoded as strings.
func styleRun(run *docx.Run, style TextStyle) {
	if style.Size > 0 {
		run.Size(strconv.Itoa(int(style.Size * 2)))
	}
	if style.Bold {
		run.Bold()
	}
	if style.Color != "" {
		run.Color(style.Color)
	}
}

// applyAlign sets paragraph justification for non-default alignments.
func applyAlign(para *docx.Paragraph, align string) {
	if align != "" && align != AlignLeft {
		para.Justification(align)
	}
}

// resizeDrawing overrides the inline drawing extent of the run, if one was
// produced, to the given EMU dimensions.
func resizeDrawing(run *docx.Run, cx, cy int64) {
	for _, child := range run.Children {
		drawing, ok := child.(*docx.Drawing)
		if !ok || drawing.Inline == nil {
			continue
		}
		if drawing.Inline.Extent != nil {
			drawing.Inline.Extent.CX = cx
			drawing.Inline.Extent.CY = cy
		}
	}
}
