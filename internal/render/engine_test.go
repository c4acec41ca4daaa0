package render

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trustlab/trust-report-service/internal/document"
	"github.com/trustlab/trust-report-service/internal/report/entity"
)

func tinyPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 200, B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func composedReport(t *testing.T) *document.Document {
	t.Helper()
	pngBytes := tinyPNG(t)
	comp := document.NewComposer(pngBytes, pngBytes)
	rec := &entity.TrustAnalytics{
		TrustScore:         json.Number("80"),
		ModTrustScore:      json.Number("5"),
		Verdict:            "GoodStage",
		ReportCreationDate: 1700000000,
		Issuer:             entity.Issuer{ID: "CERT-77", ReportID: "rep-0001"},
		Factors: []entity.Factor{
			{Sampler: "text", Score: json.Number("10"), MaxScore: json.Number("20")},
		},
	}
	user := entity.User{ID: "42", FirstName: "Ivan", LastName: "Petrov", Username: "ivanp"}
	doc, err := comp.Compose(rec, user, pngBytes, "TestChat")
	require.NoError(t, err)
	return doc
}

func TestRenderProducesValidPDF(t *testing.T) {
	out, err := NewEngine(nil).Render(composedReport(t))
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "output should start with a PDF header")
	assert.NoError(t, api.Validate(bytes.NewReader(out), nil))
}

func TestRenderEmptyTableAndNoImages(t *testing.T) {
	doc := &document.Document{Elements: []document.Element{
		{Type: document.TypeHeading, Text: "Factors"},
		{Type: document.TypeTable, Columns: []document.TableColumn{
			{Width: 58}, {Width: 30, Align: "C"}, {Width: 30, Align: "C"},
		}},
		{Type: document.TypeSpacer, SpacerHeight: 5},
		{Type: document.TypeParagraph, Text: "no factors recorded"},
	}}

	out, err := NewEngine(nil).Render(doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestRenderUnknownElementFails(t *testing.T) {
	doc := &document.Document{Elements: []document.Element{{Type: "marquee"}}}
	_, err := NewEngine(nil).Render(doc)
	assert.Error(t, err)
}

func TestSniffImageType(t *testing.T) {
	assert.Equal(t, "PNG", sniffImageType(tinyPNG(t)))
	assert.Equal(t, "JPG", sniffImageType([]byte{0xFF, 0xD8, 0xFF, 0xE0}))
	assert.Equal(t, "GIF", sniffImageType([]byte("GIF89a")))
}
