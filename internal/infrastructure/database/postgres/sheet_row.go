// internal/infrastructure/database/postgres/sheet_row.go
package postgres

import (
	"time"

	"github.com/lib/pq"
)

// SheetRow stores one positional row of a table. Position 0 holds the
// header; data rows start at 1, mirroring spreadsheet row numbers minus one.
type SheetRow struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Sheet     string         `gorm:"not null;size:100;uniqueIndex:idx_sheet_rows_sheet_position,priority:1" json:"sheet"`
	Position  int            `gorm:"not null;uniqueIndex:idx_sheet_rows_sheet_position,priority:2" json:"position"`
	Cells     pq.StringArray `gorm:"type:text[];not null" json:"cells"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// TableName overrides the table name
func (SheetRow) TableName() string {
	return "sheet_rows"
}
