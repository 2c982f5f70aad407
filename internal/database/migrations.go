package database

import (
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type index struct {
	table   string
	name    string
	columns string
}

// compositeIndexes backs the queries that filter on more than one column.
// Single column indexes are declared on the models.
var compositeIndexes = []index{
	// my-tasks with a status filter
	{"tasks", "idx_tasks_assignee_status", "assignee_id, status"},
	// project task listings ordered by deadline
	{"tasks", "idx_tasks_project_deadline", "project_id, deadline"},
	// time entries of a task, newest day first
	{"time_entries", "idx_time_entries_task_date", "task_id, date"},
}

// AddIndexes adds the composite indexes that AutoMigrate does not create.
func AddIndexes(db *gorm.DB, log zerolog.Logger) error {
	migrator := db.Migrator()

	for _, idx := range compositeIndexes {
		if migrator.HasIndex(idx.table, idx.name) {
			log.Debug().Str("index", idx.name).Msg("index already exists, skipping")
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Info().
			Str("index", idx.name).
			Str("table", idx.table).
			Str("columns", idx.columns).
			Msg("created index")
	}

	return nil
}

// MigrateDatabase runs the schema migration followed by the index migration.
func MigrateDatabase(db *gorm.DB, log zerolog.Logger) error {
	if err := Migrate(db, log); err != nil {
		return err
	}

	if err := AddIndexes(db, log); err != nil {
		return fmt.Errorf("failed to add indexes: %w", err)
	}

	return nil
}
