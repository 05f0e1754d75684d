package db

import (
	"errors"
	"log"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/edenzconsultants/portal-api/internal/application"
	"github.com/edenzconsultants/portal-api/internal/auth"
	"github.com/edenzconsultants/portal-api/internal/chat"
	"github.com/edenzconsultants/portal-api/internal/consult"
	"github.com/edenzconsultants/portal-api/internal/document"
	"github.com/edenzconsultants/portal-api/internal/models"
)

// Connect opens MySQL when a DSN is configured, otherwise an embedded
// sqlite file, and runs migrations.
func Connect(dsn, sqlitePath string) *gorm.DB {
	var (
		gdb *gorm.DB
		err error
	)
	if dsn != "" {
		gdb, err = gorm.Open(mysql.Open(dsn), &gorm.Config{})
	} else {
		gdb, err = gorm.Open(gormsqlite.Open(sqlitePath), &gorm.Config{})
	}
	if err != nil {
		log.Fatalf("db open: %v", err)
	}

	if err := gdb.AutoMigrate(
		&models.User{},
		&chat.Session{},
		&chat.Message{},
		&chat.Job{},
		&consult.Consultation{},
		&document.Document{},
		&application.Application{},
		&application.HistoryEntry{},
	); err != nil {
		log.Fatalf("db migrate: %v", err)
	}
	return gdb
}

// EnsureAdmin provisions the bootstrap admin account. Public registration
// only ever creates students, so staff accounts come from here (or from an
// existing admin). Idempotent: an existing user with the email is left
// untouched.
func EnsureAdmin(gdb *gorm.DB, email, password string) error {
	var existing models.User
	err := gdb.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	return gdb.Create(&models.User{
		Email:        email,
		Name:         "Administrator",
		Role:         models.RoleAdmin,
		PasswordHash: hash,
	}).Error
}
