package auth

import (
	"errors"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/campushub/portal-api/model"
	"github.com/campushub/portal-api/services"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func mockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Discard,
	})
	if err != nil {
		t.Fatalf("failed to open gorm: %v", err)
	}
	return gdb, mock
}

func TestPersistLockoutWritesCounters(t *testing.T) {
	gdb, mock := mockDB(t)
	h := &AuthHandler{db: gdb}

	mock.ExpectExec(`UPDATE "users"`).WillReturnResult(sqlmock.NewResult(0, 1))

	until := time.Now().Add(10 * time.Minute)
	user := &model.User{ID: 1, Email: "user@university.edu"}
	if err := h.persistLockout(user, services.LockoutState{FailedAttempts: 0, LockoutUntil: &until}); err != nil {
		t.Fatalf("persistLockout failed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPersistLockoutSurfacesWriteFailure(t *testing.T) {
	gdb, mock := mockDB(t)
	h := &AuthHandler{db: gdb}

	mock.ExpectExec(`UPDATE "users"`).WillReturnError(errors.New("connection reset"))

	user := &model.User{ID: 1, Email: "user@university.edu"}
	err := h.persistLockout(user, services.LockoutState{FailedAttempts: 2})
	if err == nil {
		t.Fatal("expected a write failure to surface")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
