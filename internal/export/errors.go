// ABOUTME: Sentinel errors for the export pipeline.
// ABOUTME: Per-sample errors are skipped; the rest abort the export.
package export

import (
	"errors"

	"github.com/harperreed/healthlens/internal/normalize"
)

var (
	// ErrNoCompatibleUnit is recorded as a skip, never returned from Export.
	ErrNoCompatibleUnit = normalize.ErrNoCompatibleUnit

	ErrWorkbookCreate  = errors.New("create workbook")
	ErrWorksheetCreate = errors.New("create worksheet")
	ErrFileWrite       = errors.New("write export file")
	ErrUnknownFormat   = errors.New("unknown export format")
)
