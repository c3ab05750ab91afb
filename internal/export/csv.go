// ABOUTME: Delimited-text writer for normalized rows.
// ABOUTME: Quotes only fields containing a comma, quote, or line break.
package export

import (
	"bufio"
	"io"
	"strings"

	"github.com/harperreed/healthlens/internal/models"
)

// EscapeField quotes s when it contains a comma, double quote, or line
// break, doubling any inner quotes. Other fields are returned unchanged.
func EscapeField(s string) string {
	if !strings.ContainsAny(s, ",\"\n\r") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// CSVWriter writes rows as UTF-8 comma separated text without a BOM.
type CSVWriter struct{}

// Format returns models.FormatCSV.
func (CSVWriter) Format() models.Format {
	return models.FormatCSV
}

// Write emits the header line followed by one line per row.
func (CSVWriter) Write(w io.Writer, rows []models.Row, headers [4]string) error {
	bw := bufio.NewWriter(w)

	writeLine(bw, headers[0], headers[1], headers[2], headers[3])
	for _, r := range rows {
		writeLine(bw, r.Datetime, r.Category, r.Unit, r.Value)
	}

	return bw.Flush()
}

// bufio.Writer keeps the first error and reports it from Flush.
func writeLine(bw *bufio.Writer, fields ...string) {
	for i, f := range fields {
		if i > 0 {
			_ = bw.WriteByte(',')
		}
		_, _ = bw.WriteString(EscapeField(f))
	}
	_ = bw.WriteByte('\n')
}
