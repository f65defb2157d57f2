// Package sheet provides access to the schedule spreadsheet.
package sheet

import "context"

// TableStore reads and writes rectangular cell regions addressed in A1
// notation. Date cells are returned as numeric serials, text cells as
// strings, empty cells as "". Writes replace the whole region.
type TableStore interface {
	Read(ctx context.Context, rangeA1 string) ([][]any, error)
	Write(ctx context.Context, rangeA1 string, values [][]any) error
}
