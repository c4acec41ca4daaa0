package document

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/trustlab/trust-report-service/internal/report/entity"
)

// Report dates are shown in Moscow time. Russia dropped DST in 2014, so a
// fixed offset is exact and avoids a tzdata dependency.
var moscow = time.FixedZone("MSK", 3*60*60)

const dateLayout = "02.01.2006, 15:04"

// Composer turns an analytics record into a report document. It is pure
// except for the stamp jitter, which only moves the decorative seal.
type Composer struct {
	logo    []byte
	stamp   []byte
	randInt func(lo, hi int) int
}

func NewComposer(logo, stamp []byte) *Composer {
	return &Composer{
		logo:    logo,
		stamp:   stamp,
		randInt: func(lo, hi int) int { return lo + rand.IntN(hi-lo) },
	}
}

// WithRand replaces the jitter source. Used by tests to pin stamp placement.
func (c *Composer) WithRand(randInt func(lo, hi int) int) *Composer {
	c.randInt = randInt
	return c
}

// Compose builds the full element tree for one report.
func (c *Composer) Compose(rec *entity.TrustAnalytics, user entity.User, avatar []byte, contextLabel string) (*Document, error) {
	verdictShort := ShortVerdict(rec.Verdict)
	verdictColor, err := VerdictColor(rec.Verdict)
	if err != nil {
		return nil, err
	}

	maxScore, err := sumMaxScore(rec.Factors)
	if err != nil {
		return nil, err
	}
	scoreText := fmt.Sprintf("%s+(%s)/%s", rec.TrustScore.String(), rec.ModTrustScore.String(), maxScore)

	issued := time.Unix(rec.ReportCreationDate, 0).In(moscow).Format(dateLayout)
	fullName := strings.TrimSpace(user.FirstName + " " + user.LastName)

	doc := &Document{PageSize: "A5"}

	doc.Elements = append(doc.Elements,
		Element{Type: TypeImage, Image: c.logo, Width: 36, Align: "C"},
		Element{Type: TypeSpacer, SpacerHeight: 6},
	)

	identity := Cell{Lines: []Inline{
		{Text: fullName, Font: &Font{Family: FamilyBody, Bold: true, Size: 13}},
		{Text: user.ID, Font: &Font{Family: FamilyBody, Size: 9}, Color: &Color{R: 120, G: 120, B: 120}},
	}}
	if user.Username != "" {
		identity.Lines = append(identity.Lines, Inline{
			Text:  "@" + user.Username,
			Font:  &Font{Family: FamilyBody, Size: 9},
			Color: &Color{R: 120, G: 120, B: 120},
		})
	}
	doc.Elements = append(doc.Elements,
		Element{Type: TypeColumns, Cells: []Cell{
			{Width: 28, Image: avatar, ImageW: 24, ImageH: 24},
			identity,
		}},
		Element{Type: TypeSpacer, SpacerHeight: 4},
	)

	doc.Elements = append(doc.Elements,
		Element{Type: TypeHeading, Text: "Summary", Font: &Font{Family: FamilyDisplay, Bold: true, Size: 13}},
		Element{Type: TypeColumns, Cells: []Cell{
			{Width: 58, Lines: []Inline{{Text: verdictShort, Font: &Font{Family: FamilyBody, Bold: true, Size: 11}, Color: &verdictColor}}},
			{Lines: []Inline{{Text: scoreText, Font: &Font{Family: FamilyBody, Size: 11}}}},
		}},
		Element{Type: TypeSpacer, SpacerHeight: 4},
	)

	factors := Element{
		Type: TypeTable,
		Columns: []TableColumn{
			{Width: 58, Align: "L"},
			{Width: 30, Align: "C"},
			{Width: 30, Align: "C"},
		},
	}
	for _, f := range rec.Factors {
		factors.Rows = append(factors.Rows, []string{
			capitalize(f.Sampler), f.Score.String(), f.MaxScore.String(),
		})
	}
	doc.Elements = append(doc.Elements,
		Element{Type: TypeHeading, Text: "Factors", Font: &Font{Family: FamilyDisplay, Bold: true, Size: 13}},
		factors,
		Element{Type: TypeSpacer, SpacerHeight: 8},
	)

	doc.Elements = append(doc.Elements, Element{Type: TypeColumns, Cells: []Cell{
		{Width: 24, Image: c.stamp, ImageW: 20, ImageH: 20},
		{Lines: []Inline{
			{Text: rec.Issuer.ID, Font: &Font{Family: FamilyBody, Size: 9}},
			{Text: contextLabel, Font: &Font{Family: FamilyBody, Size: 9}},
			{Text: issued, Font: &Font{Family: FamilyBody, Size: 9}},
			{Text: rec.Issuer.ReportID, Font: &Font{Family: FamilyBody, Size: 8}, Color: &Color{R: 120, G: 120, B: 120}},
		}},
	}})

	// drawn last so the seal overlays the content beneath it
	doc.Elements = append(doc.Elements, Element{
		Type:        TypeStamp,
		Text:        verdictShort,
		Color:       &verdictColor,
		Font:        &Font{Family: FamilyDisplay, Bold: true, Size: 16},
		Rotation:    float64(c.randInt(30, 40)),
		OffsetTop:   float64(c.randInt(65, 75)),
		OffsetRight: float64(c.randInt(40, 50)),
	})

	return doc, nil
}

// sumMaxScore derives the display denominator: the sum of every factor's
// max_score. An empty factor list sums to 0.
func sumMaxScore(factors []entity.Factor) (string, error) {
	var sum float64
	for _, f := range factors {
		v, err := f.MaxScore.Float64()
		if err != nil {
			return "", fmt.Errorf("malformed factor max_score %q: %w", f.MaxScore, err)
		}
		sum += v
	}
	return strconv.FormatFloat(sum, 'f', -1, 64), nil
}

func capitalize(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
