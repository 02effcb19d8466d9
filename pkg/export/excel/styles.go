package excel

import (
	"github.com/xuri/excelize/v2"

	"github.com/de-tools/customs-atlas/pkg/models/domain"
)

// styleSet holds the style IDs registered once per workbook.
type styleSet struct {
	coverTitle    int
	coverSubtitle int
	cardLabel     int
	cardValue     int
	cardNote      int
	sheetTitle    int
	header        int
	footnote      int

	plain map[domain.ColumnKind]int
	zebra map[domain.ColumnKind]int

	status map[string]int
}

func (s *styleSet) cell(kind domain.ColumnKind, zebra bool) int {
	if zebra {
		return s.zebra[kind]
	}
	return s.plain[kind]
}

func newStyleSet(f *excelize.File) (*styleSet, error) {
	s := &styleSet{
		plain:  make(map[domain.ColumnKind]int),
		zebra:  make(map[domain.ColumnKind]int),
		status: make(map[string]int),
	}
	var err error

	if s.coverTitle, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 22, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{headerFill}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	}); err != nil {
		return nil, err
	}
	if s.coverSubtitle, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Italic: true, Size: 12, Color: accentColor},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	}); err != nil {
		return nil, err
	}
	if s.cardLabel, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 10, Color: "595959"},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	}); err != nil {
		return nil, err
	}
	if s.cardValue, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 16, Color: headerFill},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	}); err != nil {
		return nil, err
	}
	if s.cardNote, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 9, Color: "808080"},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	}); err != nil {
		return nil, err
	}
	if s.sheetTitle, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14, Color: headerFill},
	}); err != nil {
		return nil, err
	}
	if s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{headerFill}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	}); err != nil {
		return nil, err
	}
	if s.footnote, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Italic: true, Size: 9, Color: "808080"},
	}); err != nil {
		return nil, err
	}

	formats := map[domain.ColumnKind]string{
		domain.ColumnText:    "",
		domain.ColumnInteger: "#,##0",
		domain.ColumnAmount:  "#,##0",
		domain.ColumnPercent: "0.00",
		domain.ColumnStatus:  "",
	}
	for kind, numFmt := range formats {
		style := excelize.Style{Font: &excelize.Font{Size: 10}}
		if numFmt != "" {
			style.CustomNumFmt = &numFmt
		}
		if s.plain[kind], err = f.NewStyle(&style); err != nil {
			return nil, err
		}

		zebraStyle := style
		zebraStyle.Fill = excelize.Fill{Type: "pattern", Color: []string{zebraFill}, Pattern: 1}
		if s.zebra[kind], err = f.NewStyle(&zebraStyle); err != nil {
			return nil, err
		}
	}

	for value, fill := range statusFills {
		if s.status[value], err = f.NewStyle(&excelize.Style{
			Font:      &excelize.Font{Bold: true, Size: 10},
			Fill:      excelize.Fill{Type: "pattern", Color: []string{fill}, Pattern: 1},
			Alignment: &excelize.Alignment{Horizontal: "center"},
		}); err != nil {
			return nil, err
		}
	}
	return s, nil
}
