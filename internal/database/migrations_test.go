package database

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/project-tracker-api/internal/config"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMigrateDatabase_IsIdempotent(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	log := zerolog.Nop()
	require.NoError(t, MigrateDatabase(db, log))
	require.NoError(t, MigrateDatabase(db, log))

	for _, idx := range compositeIndexes {
		require.True(t, db.Migrator().HasIndex(idx.table, idx.name), "missing index %s", idx.name)
	}
	for _, table := range []string{"users", "projects", "project_programmers", "tasks", "time_entries"} {
		require.True(t, db.Migrator().HasTable(table), "missing table %s", table)
	}
}

func TestDialectorFor_UnknownDriver(t *testing.T) {
	_, err := dialectorFor(config.DBConfig{Driver: "sqlserver"})
	require.Error(t, err)
}

func TestGormLogLevel_FollowsEnv(t *testing.T) {
	require.Equal(t, logger.Info, gormLogLevel(&config.Config{Env: config.EnvLocal}))
	require.Equal(t, logger.Warn, gormLogLevel(&config.Config{Env: config.EnvDev}))
	require.Equal(t, logger.Error, gormLogLevel(&config.Config{Env: config.EnvProd}))
}
