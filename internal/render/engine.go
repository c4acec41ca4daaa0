// Package render draws a composed document with go-pdf/fpdf and returns the
// binary PDF. It holds no business logic: every visual decision is already
// encoded in the element tree.
package render

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/trustlab/trust-report-service/internal/document"
	"github.com/trustlab/trust-report-service/pkg/assets"
)

// Engine renders documents with a fixed set of font faces. When no faces are
// loaded it falls back to the built-in Helvetica core font, which keeps the
// pipeline usable without the asset host.
type Engine struct {
	fonts []assets.Font
}

func NewEngine(fonts []assets.Font) *Engine {
	return &Engine{fonts: fonts}
}

// Render serializes the document into PDF bytes.
func (e *Engine) Render(doc *document.Document) ([]byte, error) {
	size := doc.PageSize
	if size == "" {
		size = "A5"
	}
	pdf := fpdf.New("P", "mm", size, "")
	pdf.SetAutoPageBreak(true, 12)

	registered := make(map[string]map[string]bool)
	for _, f := range e.fonts {
		pdf.AddUTF8FontFromBytes(f.Family, f.Style, f.Data)
		if registered[f.Family] == nil {
			registered[f.Family] = make(map[string]bool)
		}
		registered[f.Family][f.Style] = true
	}

	rs := &renderer{pdf: pdf, registered: registered}
	pdf.AddPage()
	for _, el := range doc.Elements {
		rs.element(el)
	}

	if pdf.Err() {
		return nil, fmt.Errorf("render document: %w", pdf.Error())
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

type renderer struct {
	pdf        *fpdf.Fpdf
	registered map[string]map[string]bool
	imgSeq     int
}

func (rs *renderer) element(el document.Element) {
	switch el.Type {
	case document.TypeHeading:
		rs.setFont(el.Font)
		rs.setTextColor(el.Color)
		rs.pdf.CellFormat(0, 8, el.Text, "", 1, align(el.Align), false, 0, "")
	case document.TypeParagraph:
		rs.setFont(el.Font)
		rs.setTextColor(el.Color)
		rs.pdf.MultiCell(0, 5, el.Text, "", align(el.Align), false)
	case document.TypeColumns:
		rs.columns(el)
	case document.TypeTable:
		rs.table(el)
	case document.TypeImage:
		rs.image(el)
	case document.TypeSpacer:
		rs.pdf.Ln(el.SpacerHeight)
	case document.TypeStamp:
		rs.stamp(el)
	default:
		rs.pdf.SetErrorf("unknown element type %q", el.Type)
	}
}

func (rs *renderer) columns(el document.Element) {
	left, _, right, _ := rs.pdf.GetMargins()
	pageW, _ := rs.pdf.GetPageSize()
	y0 := rs.pdf.GetY()
	x := left
	var maxH float64

	for _, cell := range el.Cells {
		w := cell.Width
		if w == 0 {
			w = pageW - right - x
		}
		var h float64
		if cell.Image != nil {
			name := rs.registerImage(cell.Image)
			rs.pdf.ImageOptions(name, x, y0, cell.ImageW, cell.ImageH, false,
				fpdf.ImageOptions{ImageType: sniffImageType(cell.Image)}, 0, "")
			h = cell.ImageH
		} else {
			y := y0
			for _, line := range cell.Lines {
				rs.setFont(line.Font)
				rs.setTextColor(line.Color)
				lh := lineHeight(line.Font)
				rs.pdf.SetXY(x, y)
				rs.pdf.CellFormat(w, lh, line.Text, "", 0, align(cell.Align), false, 0, "")
				y += lh
			}
			h = y - y0
		}
		if h > maxH {
			maxH = h
		}
		x += w
	}
	rs.pdf.SetY(y0 + maxH + 2)
}

func (rs *renderer) table(el document.Element) {
	rs.pdf.SetDrawColor(210, 210, 210)
	for _, row := range el.Rows {
		for i, col := range el.Columns {
			var text string
			if i < len(row) {
				text = row[i]
			}
			ln := 0
			if i == len(el.Columns)-1 {
				ln = 1
			}
			rs.setFont(&document.Font{Family: document.FamilyBody, Size: 10})
			rs.setTextColor(nil)
			rs.pdf.CellFormat(col.Width, 6, text, "B", ln, align(col.Align), false, 0, "")
		}
	}
}

func (rs *renderer) image(el document.Element) {
	left, _, right, _ := rs.pdf.GetMargins()
	pageW, _ := rs.pdf.GetPageSize()
	x := left
	if align(el.Align) == "C" {
		x = left + (pageW-left-right-el.Width)/2
	}
	name := rs.registerImage(el.Image)
	rs.pdf.ImageOptions(name, x, 0, el.Width, el.Height, true,
		fpdf.ImageOptions{ImageType: sniffImageType(el.Image)}, 0, "")
}

// stamp draws a rotated bordered label near the top-right corner and leaves
// the layout cursor where it was: the overlay never affects flow.
func (rs *renderer) stamp(el document.Element) {
	x0, y0 := rs.pdf.GetXY()
	pageW, _ := rs.pdf.GetPageSize()

	rs.setFont(el.Font)
	rs.setTextColor(el.Color)
	if el.Color != nil {
		rs.pdf.SetDrawColor(el.Color.R, el.Color.G, el.Color.B)
	}
	rs.pdf.SetLineWidth(0.8)

	w := rs.pdf.GetStringWidth(el.Text) + 8
	h := 11.0
	x := pageW - el.OffsetRight - w
	y := el.OffsetTop

	rs.pdf.TransformBegin()
	rs.pdf.TransformRotate(el.Rotation, x+w/2, y+h/2)
	rs.pdf.SetXY(x, y)
	rs.pdf.CellFormat(w, h, el.Text, "1", 0, "CM", false, 0, "")
	rs.pdf.TransformEnd()

	rs.pdf.SetLineWidth(0.2)
	rs.pdf.SetXY(x0, y0)
}

func (rs *renderer) registerImage(data []byte) string {
	rs.imgSeq++
	name := fmt.Sprintf("img-%d", rs.imgSeq)
	rs.pdf.RegisterImageOptionsReader(name,
		fpdf.ImageOptions{ImageType: sniffImageType(data)}, bytes.NewReader(data))
	return name
}

func (rs *renderer) setFont(f *document.Font) {
	family, style, size := document.FamilyBody, "", 10.0
	if f != nil {
		if f.Family != "" {
			family = f.Family
		}
		if f.Bold {
			style = "B"
		}
		if f.Size > 0 {
			size = f.Size
		}
	}
	if !rs.registered[family][style] {
		family = "Helvetica"
	}
	rs.pdf.SetFont(family, style, size)
}

func (rs *renderer) setTextColor(c *document.Color) {
	if c == nil {
		rs.pdf.SetTextColor(0, 0, 0)
		return
	}
	rs.pdf.SetTextColor(c.R, c.G, c.B)
}

func lineHeight(f *document.Font) float64 {
	size := 10.0
	if f != nil && f.Size > 0 {
		size = f.Size
	}
	// points to mm with a little leading
	return size * 0.3528 * 1.45
}

func align(a string) string {
	if a == "" {
		return "L"
	}
	return a
}

func sniffImageType(data []byte) string {
	switch {
	case len(data) > 3 && data[0] == 0x89 && data[1] == 'P' && data[2] == 'N' && data[3] == 'G':
		return "PNG"
	case len(data) > 2 && data[0] == 0xFF && data[1] == 0xD8:
		return "JPG"
	case len(data) > 2 && data[0] == 'G' && data[1] == 'I' && data[2] == 'F':
		return "GIF"
	default:
		return "PNG"
	}
}
