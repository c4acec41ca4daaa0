// Package document builds the declarative element tree for a trust report.
// The tree is plain data: the render package walks it and draws each element,
// so composing stays pure and inspectable in tests.
package document

// Element types understood by the render engine.
const (
	TypeHeading   = "heading"
	TypeParagraph = "paragraph"
	TypeColumns   = "columns"
	TypeTable     = "table"
	TypeImage     = "image"
	TypeSpacer    = "spacer"
	TypeStamp     = "stamp"
)

// Font families referenced by composed elements. The render engine maps them
// to registered faces, or to a core font when none were loaded.
const (
	FamilyBody    = "Inter"
	FamilyDisplay = "PlayfairDisplay"
)

// Document is a single-page report description.
type Document struct {
	PageSize string
	Elements []Element
}

// Color is an RGB color.
type Color struct {
	R, G, B int
}

// Font selects a face for a run of text.
type Font struct {
	Family string
	Bold   bool
	Size   float64
}

// Inline is one line of styled text inside a column cell.
type Inline struct {
	Text  string
	Font  *Font
	Color *Color
}

// Cell is one column of a columns element. A cell holds either an image or a
// vertical run of text lines.
type Cell struct {
	Width  float64 // mm; 0 = take the remaining width
	Align  string  // L, C, R (default L)
	Image  []byte
	ImageW float64
	ImageH float64
	Lines  []Inline
}

// TableColumn defines one column of a table element.
type TableColumn struct {
	Width float64
	Align string
}

// Element is a single visual element. Type determines which fields apply.
type Element struct {
	Type string

	// heading, paragraph
	Text  string
	Font  *Font
	Color *Color
	Align string

	// columns
	Cells []Cell

	// table
	Columns []TableColumn
	Rows    [][]string

	// image
	Image  []byte
	Width  float64
	Height float64

	// spacer
	SpacerHeight float64

	// stamp: a rotated bordered label overlaid near the top-right corner.
	// Offsets are measured from the top and right page edges.
	Rotation    float64
	OffsetTop   float64
	OffsetRight float64
}
