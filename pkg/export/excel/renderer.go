// Package excel renders assembled reports into styled XLSX workbooks.
package excel

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/de-tools/customs-atlas/pkg/models/domain"
)

const (
	coverSheetName = "Cover"

	headerFill  = "1F4E79"
	zebraFill   = "F2F7FB"
	accentColor = "2E75B6"

	tableStartRow = 3
)

// statusFills maps status and grade values to card colors.
var statusFills = map[string]string{
	domain.StatusExcellent:        "C6EFCE",
	domain.StatusGood:             "BDD7EE",
	domain.StatusNeedsImprovement: "FFC7CE",
	domain.RiskGradeNormal:        "C6EFCE",
	domain.RiskGradeLow:           "BDD7EE",
	domain.RiskGradeMedium:        "FFEB9C",
	domain.RiskGradeHigh:          "FFC7CE",
}

// Renderer writes a report workbook to a fixed output path.
type Renderer struct {
	outputPath string
}

func NewRenderer(outputPath string) (*Renderer, error) {
	if outputPath == "" {
		return nil, fmt.Errorf("output path is empty")
	}
	return &Renderer{outputPath: outputPath}, nil
}

// Render builds the workbook: a cover sheet followed by one styled
// worksheet per report sheet, with charts and conditional formats.
func (r *Renderer) Render(ctx context.Context, report *domain.Report) error {
	logger := zerolog.Ctx(ctx)

	f := excelize.NewFile()
	defer f.Close()

	styles, err := newStyleSet(f)
	if err != nil {
		return fmt.Errorf("create workbook styles: %w", err)
	}

	if err := r.renderCover(f, styles, report); err != nil {
		return fmt.Errorf("render cover: %w", err)
	}

	for _, sheet := range report.Sheets {
		if err := r.renderSheet(f, styles, sheet); err != nil {
			return fmt.Errorf("render sheet %q: %w", sheet.Name, err)
		}
	}

	// The default sheet is replaced by the cover.
	if idx, err := f.GetSheetIndex("Sheet1"); err == nil && idx >= 0 {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return fmt.Errorf("drop default sheet: %w", err)
		}
	}
	if idx, err := f.GetSheetIndex(coverSheetName); err == nil && idx >= 0 {
		f.SetActiveSheet(idx)
	}

	if err := f.SaveAs(r.outputPath); err != nil {
		return fmt.Errorf("save workbook %s: %w", r.outputPath, err)
	}
	logger.Info().
		Str("path", r.outputPath).
		Int("sheets", len(report.Sheets)).
		Msg("workbook written")
	return nil
}

func (r *Renderer) renderCover(f *excelize.File, styles *styleSet, report *domain.Report) error {
	if _, err := f.NewSheet(coverSheetName); err != nil {
		return err
	}

	if err := f.MergeCell(coverSheetName, "B2", "G3"); err != nil {
		return err
	}
	if err := f.SetCellValue(coverSheetName, "B2", report.Title); err != nil {
		return err
	}
	if err := f.SetCellStyle(coverSheetName, "B2", "G3", styles.coverTitle); err != nil {
		return err
	}

	if report.Subtitle != "" {
		if err := f.MergeCell(coverSheetName, "B4", "G4"); err != nil {
			return err
		}
		if err := f.SetCellValue(coverSheetName, "B4", report.Subtitle); err != nil {
			return err
		}
		if err := f.SetCellStyle(coverSheetName, "B4", "G4", styles.coverSubtitle); err != nil {
			return err
		}
	}

	// Metric cards in a 2x2 grid, two columns wide each.
	for i, m := range report.Cover.Metrics {
		col := 2 + (i%2)*3
		row := 6 + (i/2)*4

		labelCell, _ := excelize.CoordinatesToCellName(col, row)
		labelEnd, _ := excelize.CoordinatesToCellName(col+1, row)
		valueCell, _ := excelize.CoordinatesToCellName(col, row+1)
		valueEnd, _ := excelize.CoordinatesToCellName(col+1, row+1)
		noteCell, _ := excelize.CoordinatesToCellName(col, row+2)
		noteEnd, _ := excelize.CoordinatesToCellName(col+1, row+2)

		if err := f.MergeCell(coverSheetName, labelCell, labelEnd); err != nil {
			return err
		}
		if err := f.SetCellValue(coverSheetName, labelCell, m.Label); err != nil {
			return err
		}
		if err := f.SetCellStyle(coverSheetName, labelCell, labelEnd, styles.cardLabel); err != nil {
			return err
		}

		if err := f.MergeCell(coverSheetName, valueCell, valueEnd); err != nil {
			return err
		}
		if err := f.SetCellValue(coverSheetName, valueCell, m.Value); err != nil {
			return err
		}
		if err := f.SetCellStyle(coverSheetName, valueCell, valueEnd, styles.cardValue); err != nil {
			return err
		}

		if m.Note != "" {
			if err := f.MergeCell(coverSheetName, noteCell, noteEnd); err != nil {
				return err
			}
			if err := f.SetCellValue(coverSheetName, noteCell, m.Note); err != nil {
				return err
			}
			if err := f.SetCellStyle(coverSheetName, noteCell, noteEnd, styles.cardNote); err != nil {
				return err
			}
		}
	}

	if report.Cover.Footer != "" {
		rows := 6 + ((len(report.Cover.Metrics)+1)/2)*4 + 1
		footerCell, _ := excelize.CoordinatesToCellName(2, rows)
		if err := f.SetCellValue(coverSheetName, footerCell, report.Cover.Footer); err != nil {
			return err
		}
		if err := f.SetCellStyle(coverSheetName, footerCell, footerCell, styles.footnote); err != nil {
			return err
		}
	}

	return f.SetColWidth(coverSheetName, "B", "G", 18)
}

func (r *Renderer) renderSheet(f *excelize.File, styles *styleSet, sheet domain.Sheet) error {
	if _, err := f.NewSheet(sheet.Name); err != nil {
		return err
	}

	cols := len(sheet.Table.Columns)
	titleStart, _ := excelize.CoordinatesToCellName(1, 1)
	titleEnd, _ := excelize.CoordinatesToCellName(cols, 1)
	if err := f.MergeCell(sheet.Name, titleStart, titleEnd); err != nil {
		return err
	}
	if err := f.SetCellValue(sheet.Name, titleStart, sheet.Title); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet.Name, titleStart, titleEnd, styles.sheetTitle); err != nil {
		return err
	}

	if err := r.renderTable(f, styles, sheet); err != nil {
		return err
	}

	dataEnd := tableStartRow + len(sheet.Table.Rows)
	for _, format := range sheet.Formats {
		if err := applyConditionalFormat(f, sheet.Name, format, dataEnd); err != nil {
			return err
		}
	}

	chartCol := cols + 2
	chartRow := tableStartRow
	for _, chart := range sheet.Charts {
		anchor, _ := excelize.CoordinatesToCellName(chartCol, chartRow)
		if err := addChart(f, sheet.Name, anchor, chart, len(sheet.Table.Rows)); err != nil {
			return err
		}
		chartRow += 16
	}

	footRow := dataEnd + 2
	for i, note := range sheet.Footnotes {
		cell, _ := excelize.CoordinatesToCellName(1, footRow+i)
		if err := f.SetCellValue(sheet.Name, cell, note); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet.Name, cell, cell, styles.footnote); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) renderTable(f *excelize.File, styles *styleSet, sheet domain.Sheet) error {
	table := sheet.Table

	for i, col := range table.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, tableStartRow)
		if err := f.SetCellValue(sheet.Name, cell, col.Name); err != nil {
			return err
		}
	}
	headStart, _ := excelize.CoordinatesToCellName(1, tableStartRow)
	headEnd, _ := excelize.CoordinatesToCellName(len(table.Columns), tableStartRow)
	if err := f.SetCellStyle(sheet.Name, headStart, headEnd, styles.header); err != nil {
		return err
	}

	for rowIdx, row := range table.Rows {
		rowNum := tableStartRow + 1 + rowIdx
		for colIdx, value := range row {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowNum)
			if err := f.SetCellValue(sheet.Name, cell, value); err != nil {
				return err
			}

			kind := table.Columns[colIdx].Kind
			styleID := styles.cell(kind, rowIdx%2 == 1)
			if kind == domain.ColumnStatus {
				if s, ok := value.(string); ok {
					if id, ok := styles.status[s]; ok {
						styleID = id
					}
				}
			}
			if err := f.SetCellStyle(sheet.Name, cell, cell, styleID); err != nil {
				return err
			}
		}
	}

	return sizeColumns(f, sheet.Name, table)
}

// sizeColumns widens each column to its longest rendered value, capped
// to keep text columns readable.
func sizeColumns(f *excelize.File, sheetName string, table domain.Table) error {
	for i, col := range table.Columns {
		width := len(col.Name)
		for _, row := range table.Rows {
			if i >= len(row) {
				continue
			}
			if l := len(fmt.Sprintf("%v", row[i])); l > width {
				width = l
			}
		}
		if width > 60 {
			width = 60
		}
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheetName, name, name, float64(width)+4); err != nil {
			return err
		}
	}
	return nil
}

func applyConditionalFormat(f *excelize.File, sheetName string, format domain.ConditionalFormat, dataEnd int) error {
	start, _ := excelize.CoordinatesToCellName(format.Column, tableStartRow+1)
	end, _ := excelize.CoordinatesToCellName(format.Column, dataEnd)
	area := start + ":" + end

	switch format.Kind {
	case domain.FormatDataBar:
		return f.SetConditionalFormat(sheetName, area, []excelize.ConditionalFormatOptions{{
			Type:     "data_bar",
			Criteria: "=",
			MinType:  "min",
			MaxType:  "max",
			BarColor: "#638EC6",
		}})
	case domain.FormatColorScale:
		minColor, maxColor := "#F8696B", "#63BE7B"
		if format.Reverse {
			minColor, maxColor = maxColor, minColor
		}
		return f.SetConditionalFormat(sheetName, area, []excelize.ConditionalFormatOptions{{
			Type:     "3_color_scale",
			Criteria: "=",
			MinType:  "min",
			MinColor: minColor,
			MidType:  "percentile",
			MidValue: "50",
			MidColor: "#FFEB84",
			MaxType:  "max",
			MaxColor: maxColor,
		}})
	default:
		return fmt.Errorf("unknown conditional format kind: %s", format.Kind)
	}
}

func addChart(f *excelize.File, sheetName, anchor string, chart domain.Chart, rowCount int) error {
	if rowCount == 0 {
		return nil
	}
	if chart.MaxRows > 0 && chart.MaxRows < rowCount {
		rowCount = chart.MaxRows
	}

	catName, err := excelize.ColumnNumberToName(chart.LabelColumn)
	if err != nil {
		return err
	}
	valName, err := excelize.ColumnNumberToName(chart.ValueColumn)
	if err != nil {
		return err
	}

	firstData := tableStartRow + 1
	lastData := tableStartRow + rowCount
	categories := fmt.Sprintf("%s!$%s$%d:$%s$%d", sheetName, catName, firstData, catName, lastData)
	values := fmt.Sprintf("%s!$%s$%d:$%s$%d", sheetName, valName, firstData, valName, lastData)

	base := excelize.Chart{
		Series: []excelize.ChartSeries{{
			Name:       chart.Title,
			Categories: categories,
			Values:     values,
		}},
		Title: []excelize.RichTextRun{{Text: chart.Title}},
		Legend: excelize.ChartLegend{
			Position: "bottom",
		},
	}

	switch chart.Kind {
	case domain.ChartBar:
		base.Type = excelize.Col
		return f.AddChart(sheetName, anchor, &base)
	case domain.ChartLine:
		base.Type = excelize.Line
		return f.AddChart(sheetName, anchor, &base)
	case domain.ChartDoughnut:
		base.Type = excelize.Doughnut
		return f.AddChart(sheetName, anchor, &base)
	case domain.ChartCombo:
		base.Type = excelize.Col
		lineName, err := excelize.ColumnNumberToName(chart.LineColumn)
		if err != nil {
			return err
		}
		lineValues := fmt.Sprintf("%s!$%s$%d:$%s$%d", sheetName, lineName, firstData, lineName, lastData)
		overlay := excelize.Chart{
			Type: excelize.Line,
			Series: []excelize.ChartSeries{{
				Name:       chart.Title + " (line)",
				Categories: categories,
				Values:     lineValues,
			}},
		}
		return f.AddChart(sheetName, anchor, &base, &overlay)
	default:
		return fmt.Errorf("unknown chart kind: %s", chart.Kind)
	}
}
