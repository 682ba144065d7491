// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"github.com/your-org/pos-backend/internal/domain/catalog"
	"github.com/your-org/pos-backend/internal/infrastructure/datastore"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Migration handles database migrations
type Migration struct {
	db    *gorm.DB
	names datastore.Names
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB, names datastore.Names) *Migration {
	return &Migration{
		db:    db,
		names: names,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("🔄 Running database auto-migrations...")

	models := []interface{}{
		&SheetRow{},
	}

	for _, model := range models {
		log.Printf("Migrating model: %T", model)
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	log.Println("✅ Database auto-migrations completed successfully")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	log.Println("🔄 Creating additional database indexes...")

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_sheet_rows_created_at ON sheet_rows(created_at DESC)",
		// order number lookups on the sales and detail tables
		"CREATE INDEX IF NOT EXISTS idx_sheet_rows_sheet_first_cell ON sheet_rows(sheet, (cells[1]))",
		"CREATE INDEX IF NOT EXISTS idx_sheet_rows_sheet_second_cell ON sheet_rows(sheet, (cells[2]))",
	}

	successCount := 0
	failCount := 0

	for _, indexSQL := range indexes {
		if err := m.db.Exec(indexSQL).Error; err != nil {
			log.Printf("⚠️ Failed to create index: %v", err)
			failCount++
		} else {
			successCount++
		}
	}

	log.Printf("✅ Created %d indexes successfully (%d failed)", successCount, failCount)
	return nil
}

// WriteHeaders upserts the header row (position 0) of every table
func (m *Migration) WriteHeaders(ctx context.Context) error {
	for _, t := range datastore.AllTables() {
		header := SheetRow{Sheet: m.names.Name(t), Position: 0, Cells: t.Header()}
		err := m.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "sheet"}, {Name: "position"}},
			DoUpdates: clause.AssignmentColumns([]string{"cells", "updated_at"}),
		}).Create(&header).Error
		if err != nil {
			return fmt.Errorf("failed to write header for %s: %w", t, err)
		}
	}
	return nil
}

// SeedInitialData writes header rows and, for empty catalog tables, the
// default categories and side options
func (m *Migration) SeedInitialData() error {
	log.Println("🌱 Seeding initial data...")

	if err := m.WriteHeaders(context.Background()); err != nil {
		return err
	}

	if err := m.seedCategories(); err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}

	if err := m.seedSides(); err != nil {
		return fmt.Errorf("failed to seed side options: %w", err)
	}

	log.Println("✅ Initial data seeded successfully")
	return nil
}

func (m *Migration) seedCategories() error {
	log.Println("🏷️ Seeding categories...")

	var rows [][]string
	for _, c := range catalog.DefaultCategories() {
		rows = append(rows, []string{c.ID, c.Name, c.Icon, strconv.Itoa(c.Order), "TRUE"})
	}
	return m.seedIfEmpty(datastore.TableCategories, rows)
}

func (m *Migration) seedSides() error {
	log.Println("🍚 Seeding side options...")

	var rows [][]string
	for _, s := range catalog.DefaultSides() {
		rows = append(rows, []string{strconv.Itoa(s.ID), s.Name, strconv.Itoa(s.Order), "TRUE"})
	}
	return m.seedIfEmpty(datastore.TableSides, rows)
}

func (m *Migration) seedIfEmpty(t datastore.Table, rows [][]string) error {
	name := m.names.Name(t)

	var count int64
	if err := m.db.Model(&SheetRow{}).Where("sheet = ? AND position > 0", name).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Printf("⏭️ %s already has %d rows", name, count)
		return nil
	}

	records := make([]SheetRow, len(rows))
	for i, r := range rows {
		records[i] = SheetRow{Sheet: name, Position: i + 1, Cells: r}
	}
	if err := m.db.Create(&records).Error; err != nil {
		return err
	}
	log.Printf("✅ Seeded %d rows into %s", len(records), name)
	return nil
}

// DropAllTables drops every table owned by the application
func (m *Migration) DropAllTables() error {
	log.Println("⚠️ WARNING: Dropping all database tables...")

	if err := m.db.Exec("DROP TABLE IF EXISTS sheet_rows CASCADE").Error; err != nil {
		return fmt.Errorf("failed to drop sheet_rows: %w", err)
	}

	log.Println("✅ All tables dropped successfully")
	return nil
}

// GetTableInfo logs the number of data rows per table
func (m *Migration) GetTableInfo() error {
	log.Println("📊 Datastore Tables Information:")
	log.Println("================================")

	var total int64
	for _, t := range datastore.AllTables() {
		var count int64
		if err := m.db.Model(&SheetRow{}).Where("sheet = ? AND position > 0", m.names.Name(t)).Count(&count).Error; err != nil {
			return err
		}
		total += count

		status := "✅"
		if count == 0 {
			status = "📭"
		}
		log.Printf("%s %-25s | %d rows", status, m.names.Name(t), count)
	}

	log.Println("================================")
	log.Printf("📈 Total rows across all tables: %d", total)
	return nil
}
