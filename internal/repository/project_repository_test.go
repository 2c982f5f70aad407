package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return db, mock
}

func TestReplaceAllocations_RejectsNonProgrammerWithoutWriting(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProjectRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `users` WHERE id IN \\(\\?,\\?\\) AND user_type = \\?").
		WithArgs(5, 6, 2).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	err := repo.ReplaceAllocations(context.Background(), 9, []uint64{5, 6}, time.Now())
	require.ErrorIs(t, err, ErrProgrammerNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceAllocations_DeletesThenInserts(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProjectRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectExec("DELETE FROM `project_programmers` WHERE project_id = \\?").
		WithArgs(9).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `project_programmers`").
		WillReturnResult(sqlmock.NewResult(10, 2))
	mock.ExpectCommit()

	err := repo.ReplaceAllocations(context.Background(), 9, []uint64{2, 3}, time.Now())
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceAllocations_EmptyListOnlyClears(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProjectRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `project_programmers` WHERE project_id = \\?").
		WithArgs(9).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	err := repo.ReplaceAllocations(context.Background(), 9, nil, time.Now())
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteProject_CascadesInOneTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProjectRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `time_entries` WHERE task_id IN \\(SELECT `id` FROM `tasks` WHERE project_id = \\?\\)").
		WithArgs(9).
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectExec("DELETE FROM `tasks` WHERE project_id = \\?").
		WithArgs(9).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM `project_programmers` WHERE project_id = \\?").
		WithArgs(9).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM `projects` WHERE `projects`.`id` = \\?").
		WithArgs(9).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), 9))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteProject_RollsBackOnFailure(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProjectRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `time_entries`").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM `tasks`").
		WillReturnError(gorm.ErrInvalidDB)
	mock.ExpectRollback()

	require.Error(t, repo.Delete(context.Background(), 9))
	require.NoError(t, mock.ExpectationsWereMet())
}
