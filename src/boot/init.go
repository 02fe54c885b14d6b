package boot

import (
	"castbook/src/common"
	"castbook/src/db"
	"castbook/src/lib"
	"castbook/src/models"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func InitDb() *gorm.DB {
	db := db.GetDb()

	err := db.AutoMigrate(
		&models.User{},
		&models.TalentProfile{},
		&models.Booking{},
		&models.BookingTalent{},
		&models.Contract{},
		&models.Signature{},
		&models.Task{},
		&models.JobTask{},
	)
	if err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}

	return db
}

func InitScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("An error has occurred. Check logs for info")
		return
	}
	go RecoverQueuedJobs()
	sched.Start()
}

func StopScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("Error retrieving Scheduler. Check logs for info")
		return
	}
	if err := sched.Shutdown(); err != nil {
		log.Println("An error has occurred while stopping Scheduler. Check logs for info")
		return
	}
}

// RecoverQueuedJobs re-enqueues pending reminder jobs after a restart. Jobs
// whose run time has already passed fire immediately.
func RecoverQueuedJobs() error {
	db := db.GetDb()
	var jobTasks []models.JobTask
	err := db.
		Model(&models.JobTask{}).
		Where(&models.JobTask{Status: "pending", JobType: "OneTimeJobStartDateTime"}).
		Find(&jobTasks).
		Error
	if err != nil {
		log.Printf("Error loading queued jobs: %s\n", err.Error())
		return err
	}
	now := time.Now()
	for _, jobTask := range jobTasks {
		contractIDRaw, ok := jobTask.Payload["contract_id"].(string)
		if !ok {
			log.Printf("Failing job %s with unreadable payload\n", jobTask.ID.String())
			markStatus(jobTask.ID, "failed")
			continue
		}
		contractID, err := uuid.Parse(contractIDRaw)
		if err != nil {
			log.Printf("Failing job %s with invalid contract id: %s\n", jobTask.ID.String(), err.Error())
			markStatus(jobTask.ID, "failed")
			continue
		}
		runsAt := jobTask.RunsAt
		if runsAt.Before(now) {
			runsAt = now.Add(1 * time.Minute)
		}
		taskID := jobTask.ID
		if _, err := lib.CreateOneTimeJob(runsAt, func() {
			common.SendContractReminder(contractID)
			markDone(taskID)
		}); err != nil {
			log.Printf("Error re-enqueueing job %s: %s\n", jobTask.ID.String(), err.Error())
		}
	}
	log.Printf("Recovered %d queued jobs\n", len(jobTasks))
	return nil
}

func markDone(id uuid.UUID) {
	markStatus(id, "done")
}

func markStatus(id uuid.UUID, status string) {
	db := db.GetDb()
	if err := db.
		Model(&models.JobTask{}).
		Where("id = ?", id).
		Update("status", status).
		Error; err != nil {
		log.Printf("Error updating job task [%s]: %s\n", id.String(), err.Error())
	}
}
