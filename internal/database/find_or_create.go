package database

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"careernest-backend/internal/model"
)

// uniqueViolation is the Postgres error code raised when an insert loses a
// race against the unique indexes backing the find-or-create keys.
const uniqueViolation = "23505"

// FindOrCreateCompany returns the company whose name matches the given one
// case-insensitively, creating a profile when none exists. The functional
// unique index on LOWER(name) makes the create side race-safe: a concurrent
// insert of the same name fails the unique check and the winner is reloaded.
func (d *DBinstanceStruct) FindOrCreateCompany(ctx context.Context, name string) (model.Company, bool, error) {
	var company model.Company
	created := false

	err := d.Do(ctx, func(tx *gorm.DB) error {
		err := tx.Where("LOWER(name) = LOWER(?)", strings.TrimSpace(name)).First(&company).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		company = model.Company{Name: strings.TrimSpace(name)}
		err = tx.Create(&company).Error
		if err == nil {
			created = true
			return nil
		}

		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			// Lost the race, the other writer's row is the profile.
			return tx.Where("LOWER(name) = LOWER(?)", strings.TrimSpace(name)).First(&company).Error
		}
		return err
	})

	return company, created, err
}

// FindOrCreateStudent returns the student row for the given verified email,
// creating it on first contact. Email is the primary key, so the concurrent
// double-create resolves the same way as companies.
func (d *DBinstanceStruct) FindOrCreateStudent(ctx context.Context, email string, info model.EditableStudentInfo) (model.Student, bool, error) {
	var student model.Student
	created := false
	email = strings.ToLower(strings.TrimSpace(email))

	err := d.Do(ctx, func(tx *gorm.DB) error {
		err := tx.Where("email = ?", email).First(&student).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		student = model.Student{Email: email, EditableStudentInfo: info}
		err = tx.Create(&student).Error
		if err == nil {
			created = true
			return nil
		}

		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return tx.Where("email = ?", email).First(&student).Error
		}
		return err
	})

	return student, created, err
}
