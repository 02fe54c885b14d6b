package models

import (
	"castbook/src/db"
	"castbook/src/lib"
	"castbook/src/types"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JobTask persists one-shot scheduler jobs (contract due-date reminders) so
// they survive restarts. Pending rows are re-enqueued at boot.
type JobTask struct {
	ID uuid.UUID `gorm:"primarykey;type:uuid;default:gen_random_uuid()" json:"id"`

	Name      string      `json:"-"`
	JobType   string      `json:"-"`
	RunsAt    time.Time   `json:"-"`
	PayloadID string      `json:"-"`
	Payload   types.JSONB `gorm:"type:jsonb" json:"-"`
	Source    string      `json:"-"`
	Status    string      `gorm:"default:'pending'" json:"-"`
}

func (self *JobTask) CreateAndEnqueueJobTask(jobTask JobTask, handler func()) (string, error) {
	var jobID string
	db := db.GetDb()
	err := db.Transaction(func(tx *gorm.DB) error {
		jobTask.ID = uuid.New()
		jobTask.PayloadID = jobTask.ID.String()
		if err := tx.Create(&jobTask).Error; err != nil {
			return err
		}
		sid, err := lib.CreateOneTimeJob(jobTask.RunsAt, func() {
			handler()
			markJobTaskDone(jobTask.ID)
		})
		if err != nil {
			log.Printf("Error scheduling job %s: %s\n", jobTask.Name, err.Error())
			return err
		}
		jobID = *sid
		return nil
	})
	if err != nil {
		return "", err
	}
	log.Printf("Created schedule for job %s with name %s at %s\n", jobID, jobTask.Name, jobTask.RunsAt.Format(time.RFC3339))
	return jobID, nil
}

func markJobTaskDone(id uuid.UUID) {
	db := db.GetDb()
	if err := db.
		Model(&JobTask{}).
		Where("id = ?", id).
		Update("status", "done").
		Error; err != nil {
		log.Printf("Error updating job task [%s]: %s\n", id.String(), err.Error())
	}
}
