// Package pdf genera el comprobante PDF de una entrada de insumos.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Logo + Empresa + RUC │  N° Entrada + Fecha          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  EMPRESA: Dirección / Tel / Web                              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Producto | P.Unit | Subtotal                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL                                                       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"os"
	"path/filepath"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/pos-api/internal/application/entrada"
	"github.com/jhoicas/pos-api/internal/domain/entity"
)

var _ entrada.EntradaPDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var printer = message.NewPrinter(language.Spanish)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa entrada.EntradaPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	mediaRoot string // directorio base del logo de la empresa
}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator(mediaRoot string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{mediaRoot: mediaRoot}
}

// Generate genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) Generate(company *entity.Company, e *entity.Entrada, items []*entity.EntradaInsumo) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(fmt.Sprintf("Entrada N° %d", e.ID), true).
		WithAuthor(company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(company, e, g.logoPath(company)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(companyRow(company))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRows(items)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(e.Total))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// logoPath devuelve la ruta del logo si existe en disco; vacío si no.
func (g *MarotoPDFGenerator) logoPath(company *entity.Company) string {
	if company.Image == "" {
		return ""
	}
	path := company.Image
	if !filepath.IsAbs(path) {
		path = filepath.Join(g.mediaRoot, path)
	}
	if st, err := os.Stat(path); err != nil || st.IsDir() {
		return ""
	}
	return path
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: logo opcional + empresa + RUC (izq) y N° Entrada + Fecha (der).
func headerRow(company *entity.Company, e *entity.Entrada, logo string) core.Row {
	name := col.New(7).Add(
		text.New(company.Name, props.Text{
			Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
		}),
		text.New("RUC: "+company.RUC, props.Text{
			Size: 9, Top: 9, Color: colorGray,
		}),
	)
	cols := []core.Col{name}
	if logo != "" {
		name = col.New(5).Add(
			text.New(company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("RUC: "+company.RUC, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		)
		cols = []core.Col{col.New(2).Add(image.NewFromFile(logo, props.Rect{Percent: 90, Center: true})), name}
	}
	cols = append(cols, col.New(5).Add(
		text.New("COMPROBANTE DE ENTRADA", props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Right,
			Color: colorPrimary, Top: 1,
		}),
		text.New(fmt.Sprintf("N° %06d", e.ID), props.Text{
			Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
		}),
		text.New("Fecha: "+e.FechaEntrada.Format("02/01/2006"), props.Text{
			Size: 8, Align: align.Right, Top: 14, Color: colorGray,
		}),
	))
	return row.New(20).Add(cols...)
}

// companyRow: datos de contacto de la empresa.
func companyRow(company *entity.Company) core.Row {
	phone := company.Phone
	if phone == "" {
		phone = company.Mobile
	}
	return row.New(8).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Dirección: %s   |   Tel: %s   |   Web: %s",
				nonEmpty(company.Address, "-"),
				nonEmpty(phone, "-"),
				nonEmpty(company.Website, "-"),
			), props.Text{Size: 8, Top: 2, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Producto", 6, align.Left),
		h("P.Unit", 2, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

// tableDetailRows: una fila por línea de detalle.
func tableDetailRows(items []*entity.EntradaInsumo) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, d := range items {
		name := fmt.Sprintf("Producto %d", d.ProductID)
		if d.Product != nil {
			name = d.Product.String()
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", d.Cant),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(6).Add(text.New(
				name,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				formatMoney(d.Price),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				formatMoney(d.Subtotal),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

func totalRow(total decimal.Decimal) core.Row {
	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2, Top: 2,
		})),
		col.New(3).Add(text.New(formatMoney(total), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1, Top: 2,
		})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney formatea con separadores en español y dos decimales. Ej: 1234567.8 → "$1.234.567,80".
func formatMoney(d decimal.Decimal) string {
	return "$" + printer.Sprintf("%.2f", d.Round(2).InexactFloat64())
}
