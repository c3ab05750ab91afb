// ABOUTME: Spreadsheet writer producing a single-sheet XLSX workbook.
// ABOUTME: Writes native datetime and number cells with a bold header row.
package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/harperreed/healthlens/internal/models"
	"github.com/unidoc/unioffice/spreadsheet"
)

const (
	DefaultSheetName     = "Data"
	FallbackDateFormat   = "yyyy-mm-dd hh:mm:ss"
	FallbackNumberFormat = "#,##0.00"
)

// Column widths in character units. The datetime column is the widest.
var columnWidths = [4]float64{22, 34, 12, 16}

var excelEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// XLSXWriter writes rows into a workbook with one worksheet.
type XLSXWriter struct {
	SheetName    string
	DateFormat   string
	NumberFormat string
	Location     *time.Location
}

// Format returns models.FormatXLSX.
func (x *XLSXWriter) Format() models.Format {
	return models.FormatXLSX
}

// Write builds the workbook and saves it to w.
func (x *XLSXWriter) Write(w io.Writer, rows []models.Row, headers [4]string) error {
	name := x.SheetName
	if name == "" {
		name = DefaultSheetName
	}
	if err := validateSheetName(name); err != nil {
		return fmt.Errorf("%w: %v", ErrWorksheetCreate, err)
	}

	wb, err := x.build(name, rows, headers)
	if err != nil {
		return err
	}

	if err := wb.Save(w); err != nil {
		return fmt.Errorf("%w: save workbook: %v", ErrFileWrite, err)
	}
	return nil
}

func (x *XLSXWriter) build(name string, rows []models.Row, headers [4]string) (wb *spreadsheet.Workbook, err error) {
	// unioffice reports malformed builder state by panicking.
	defer func() {
		if r := recover(); r != nil {
			wb = nil
			err = fmt.Errorf("%w: %v", ErrWorkbookCreate, r)
		}
	}()

	wb = spreadsheet.New()
	sheet := wb.AddSheet()
	sheet.SetName(name)

	bold := wb.StyleSheet.AddFont()
	bold.SetBold(true)
	headerStyle := wb.StyleSheet.AddCellStyle()
	headerStyle.SetFont(bold)

	dateStyle := wb.StyleSheet.AddCellStyle()
	dateStyle.SetNumberFormat(orDefault(x.DateFormat, FallbackDateFormat))

	numberStyle := wb.StyleSheet.AddCellStyle()
	numberStyle.SetNumberFormat(orDefault(x.NumberFormat, FallbackNumberFormat))

	for i, width := range columnWidths {
		w := width
		custom := true
		col := sheet.Column(uint32(i + 1))
		col.X().WidthAttr = &w
		col.X().CustomWidthAttr = &custom
	}

	header := sheet.AddRow()
	for _, h := range headers {
		cell := header.AddCell()
		cell.SetString(h)
		cell.SetStyle(headerStyle)
	}

	loc := x.Location
	if loc == nil {
		loc = time.Local
	}

	for _, r := range rows {
		row := sheet.AddRow()

		dt := row.AddCell()
		dt.SetNumber(excelSerial(r.Time, loc))
		dt.SetStyle(dateStyle)

		row.AddCell().SetString(r.Category)
		row.AddCell().SetString(r.Unit)

		num := row.AddCell()
		num.SetNumber(r.Number)
		num.SetStyle(numberStyle)
	}

	return wb, nil
}

// excelSerial converts t to a spreadsheet serial date using the wall
// clock in loc. Serial 1.0 is 1899-12-31 00:00.
func excelSerial(t time.Time, loc *time.Location) float64 {
	local := t.In(loc)
	wall := time.Date(local.Year(), local.Month(), local.Day(),
		local.Hour(), local.Minute(), local.Second(), local.Nanosecond(), time.UTC)
	return float64(wall.Sub(excelEpoch)) / float64(24*time.Hour)
}

func validateSheetName(name string) error {
	if n := len([]rune(name)); n == 0 || n > 31 {
		return fmt.Errorf("sheet name %q must be 1-31 characters", name)
	}
	if strings.ContainsAny(name, `[]:*?/\`) {
		return fmt.Errorf("sheet name %q contains a reserved character", name)
	}
	return nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
