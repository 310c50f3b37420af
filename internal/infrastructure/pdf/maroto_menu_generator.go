// Package pdf implementa a geração do cardápio semanal em PDF para
// distribuição às escolas.
//
// Layout da página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Escola + semana (período)                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  Por dia: SEGUNDA ... SEXTA                                 │
//	│    Refeição | Descrição | Porção                            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RODAPÉ: observações do cardápio                            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/semed-merenda/merenda-api/internal/application/usecase"
	"github.com/semed-merenda/merenda-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 21, Green: 101, Blue: 52}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ usecase.MenuPDFGenerator = (*MarotoMenuGenerator)(nil)

// MarotoMenuGenerator implementa usecase.MenuPDFGenerator usando Maroto v2.
type MarotoMenuGenerator struct{}

// NewMarotoMenuGenerator constrói o gerador.
func NewMarotoMenuGenerator() *MarotoMenuGenerator { return &MarotoMenuGenerator{} }

var dayLabels = map[string]string{
	entity.DayMon: "SEGUNDA-FEIRA",
	entity.DayTue: "TERÇA-FEIRA",
	entity.DayWed: "QUARTA-FEIRA",
	entity.DayThu: "QUINTA-FEIRA",
	entity.DayFri: "SEXTA-FEIRA",
}

var mealLabels = map[string]string{
	entity.MealBreakfast1:   "Café da manhã",
	entity.MealSnack1:       "Lanche da manhã",
	entity.MealLunch:        "Almoço",
	entity.MealSnack2:       "Lanche da tarde",
	entity.MealBreakfast2:   "Café da tarde",
	entity.MealDinnerCoffee: "Jantar/Café",
}

var dayOrder = []string{entity.DayMon, entity.DayTue, entity.DayWed, entity.DayThu, entity.DayFri}

var mealOrder = []string{
	entity.MealBreakfast1, entity.MealSnack1, entity.MealLunch,
	entity.MealSnack2, entity.MealBreakfast2, entity.MealDinnerCoffee,
}

// Generate gera o PDF do cardápio e devolve seus bytes.
func (g *MarotoMenuGenerator) Generate(menu *entity.Menu, school *entity.School) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Cardápio Semanal", true).
		WithAuthor(school.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(menu, school))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	byDay := make(map[string][]entity.MenuItem)
	for _, it := range menu.Items {
		byDay[it.DayOfWeek] = append(byDay[it.DayOfWeek], it)
	}
	for _, day := range dayOrder {
		items := byDay[day]
		if len(items) == 0 {
			continue
		}
		m.AddRows(dayTitleRow(day))
		for _, meal := range mealOrder {
			for _, it := range items {
				if it.MealType != meal {
					continue
				}
				m.AddRows(mealRow(it))
			}
		}
		m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	}

	if menu.Notes != "" {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("Observações: "+menu.Notes, props.Text{Size: 8, Color: colorGray, Top: 2}),
		)))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: escola (esq) e período da semana (dir).
func headerRow(menu *entity.Menu, school *entity.School) core.Row {
	period := fmt.Sprintf("%s a %s",
		menu.WeekStart.Format("02/01/2006"),
		menu.WeekEnd.Format("02/01/2006"),
	)
	title := menu.Name
	if title == "" {
		title = "Cardápio Semanal"
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(school.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(title, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("CARDÁPIO DA MERENDA ESCOLAR", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(period, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 8,
			}),
		),
	)
}

func dayTitleRow(day string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(dayLabels[day], props.Text{
			Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 2,
		}),
	))
}

func mealRow(it entity.MenuItem) core.Row {
	desc := it.Description
	if it.MealName != "" {
		desc = it.MealName + " - " + it.Description
	}
	return row.New(7).Add(
		col.New(3).Add(text.New(mealLabels[it.MealType], props.Text{
			Style: fontstyle.Bold, Size: 8, Top: 1,
		})),
		col.New(7).Add(text.New(desc, props.Text{Size: 8, Top: 1, Left: 1})),
		col.New(2).Add(text.New(it.PortionText, props.Text{
			Size: 8, Align: align.Right, Top: 1, Color: colorGray,
		})),
	)
}
