// internal/infrastructure/datastore/pgstore/pgstore.go
package pgstore

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/your-org/pos-backend/internal/infrastructure/database/postgres"
	"github.com/your-org/pos-backend/internal/infrastructure/datastore"
	"gorm.io/gorm"
)

// Backend serves the tabular datastore from the sheet_rows table. There is
// no external identity provider, so any non-empty credential opens it.
type Backend struct {
	db     *gorm.DB
	names  datastore.Names
	logger *logrus.Logger
}

// NewBackend creates a PostgreSQL-backed datastore
func NewBackend(db *gorm.DB, names datastore.Names, logger *logrus.Logger) *Backend {
	return &Backend{db: db, names: names, logger: logger}
}

// Open returns the shared source
func (b *Backend) Open(_ context.Context, credential string) (datastore.Source, error) {
	if credential == "" {
		return nil, datastore.ErrUnauthorized
	}
	return &Source{db: b.db, names: b.names, logger: b.logger}, nil
}

// ResolveEmail returns "" so sales fall back to the default cashier
func (b *Backend) ResolveEmail(context.Context, string) (string, error) {
	return "", nil
}

// Revoke is a no-op
func (b *Backend) Revoke(context.Context, string) error {
	return nil
}

// Source reads and appends sheet_rows
type Source struct {
	db     *gorm.DB
	names  datastore.Names
	logger *logrus.Logger
}

// ReadRows returns data rows 1..LastRow-1 in position order
func (s *Source) ReadRows(ctx context.Context, table datastore.Table) ([][]string, error) {
	var records []postgres.SheetRow
	err := s.db.WithContext(ctx).
		Where("sheet = ? AND position BETWEEN 1 AND ?", s.names.Name(table), table.LastRow()-1).
		Order("position ASC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", table, err)
	}

	rows := make([][]string, len(records))
	for i, r := range records {
		cells := []string(r.Cells)
		if len(cells) > table.Columns() {
			cells = cells[:table.Columns()]
		}
		rows[i] = append([]string(nil), cells...)
	}
	return rows, nil
}

// AppendRows inserts rows after the current last position. Appends to the
// same table are serialised with a transaction-scoped advisory lock.
func (s *Source) AppendRows(ctx context.Context, table datastore.Table, rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}
	name := s.names.Name(table)

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", name).Error; err != nil {
			return fmt.Errorf("failed to lock %s: %w", table, err)
		}

		var last int
		err := tx.Model(&postgres.SheetRow{}).
			Where("sheet = ?", name).
			Select("COALESCE(MAX(position), 0)").
			Scan(&last).Error
		if err != nil {
			return fmt.Errorf("failed to find end of %s: %w", table, err)
		}

		records := make([]postgres.SheetRow, len(rows))
		for i, r := range rows {
			records[i] = postgres.SheetRow{Sheet: name, Position: last + 1 + i, Cells: append([]string(nil), r...)}
		}
		if err := tx.Create(&records).Error; err != nil {
			return fmt.Errorf("failed to append to %s: %w", table, err)
		}
		return nil
	})
}

// EnsureSchema creates the sheet_rows table if needed and writes every header row
func (s *Source) EnsureSchema(ctx context.Context) error {
	migration := postgres.NewMigration(s.db.WithContext(ctx), s.names)
	if err := migration.RunAutoMigrations(); err != nil {
		return err
	}
	if err := migration.WriteHeaders(ctx); err != nil {
		return err
	}
	s.logger.Info("Datastore headers written")
	return nil
}

// Probe pings the database
func (s *Source) Probe(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
