package application

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

// Create opens an application and writes its first history line in one
// transaction.
func (r *Repo) Create(ctx context.Context, app *Application) error {
	if app.Status == "" {
		app.Status = StatusNew
	}
	if app.Progress == 0 {
		app.Progress = initialProgress
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(app).Error; err != nil {
			return err
		}
		return tx.Create(&HistoryEntry{
			ApplicationID: app.ID,
			Status:        app.Status,
			Progress:      app.Progress,
			Notes:         fmt.Sprintf("Application created for %s, %s", app.UniversityName, app.ProgramName),
			CreatedBy:     app.CreatedBy,
		}).Error
	})
}

func (r *Repo) GetByID(ctx context.Context, id uint64) (*Application, error) {
	var app Application
	if err := r.db.WithContext(ctx).First(&app, id).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

// ListByStudent returns a student's applications newest first.
func (r *Repo) ListByStudent(ctx context.Context, studentID uint64) ([]Application, error) {
	var out []Application
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("id DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Update carries the fields of a status/progress change. Nil pointers
// leave the stored value alone. Message becomes the history note shown to
// the student.
type Update struct {
	Status    *string
	Progress  *int
	Notes     *string
	Message   string
	UpdatedBy uint64
}

// Update applies the change and appends a history line atomically.
func (r *Repo) Update(ctx context.Context, id uint64, upd Update) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var app Application
		if err := tx.First(&app, id).Error; err != nil {
			return err
		}

		updates := map[string]any{}
		if upd.Status != nil {
			updates["status"] = *upd.Status
			app.Status = *upd.Status
		}
		if upd.Progress != nil {
			updates["progress"] = *upd.Progress
			app.Progress = *upd.Progress
		}
		if upd.Notes != nil {
			updates["notes"] = *upd.Notes
		}
		if len(updates) > 0 {
			if err := tx.Model(&Application{}).Where("id = ?", id).Updates(updates).Error; err != nil {
				return err
			}
		}

		message := upd.Message
		if message == "" {
			message = "Application updated"
		}
		return tx.Create(&HistoryEntry{
			ApplicationID: id,
			Status:        app.Status,
			Progress:      app.Progress,
			Notes:         message,
			CreatedBy:     upd.UpdatedBy,
		}).Error
	})
}

// History returns an application's audit lines newest first.
func (r *Repo) History(ctx context.Context, applicationID uint64) ([]HistoryEntry, error) {
	var out []HistoryEntry
	err := r.db.WithContext(ctx).
		Where("application_id = ?", applicationID).
		Order("id DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
