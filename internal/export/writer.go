// ABOUTME: Writer interface shared by the CSV and XLSX writers.
// ABOUTME: Also defines the default column headers.
package export

import (
	"io"

	"github.com/harperreed/healthlens/internal/models"
)

// DefaultHeaders are the column titles of every export.
var DefaultHeaders = [4]string{"Datetime", "Category", "Unit", "Value"}

// Writer serializes normalized rows in one file format.
type Writer interface {
	Format() models.Format
	Write(w io.Writer, rows []models.Row, headers [4]string) error
}
