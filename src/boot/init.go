package boot

import (
	"log"
	"venuebook/src/common"
	"venuebook/src/lib"
	"venuebook/src/models"

	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

func InitDb(db *gorm.DB) *gorm.DB {
	err := db.AutoMigrate(
		&models.User{},
		&models.Venue{},
		&models.VenueTable{},
		&models.VenueImage{},
		&models.Booking{},
		&models.Payment{},
		&models.Widget{},
		&models.Notification{},
		&models.AnalyticsRecord{},
	)
	if err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}

	return db
}

// InitScheduler starts the background scheduler with the nightly
// analytics rollup job. The rollup runs shortly after midnight so the
// previous day's bookings and payments are final.
func InitScheduler(db *gorm.DB) {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("An error has occurred. Check logs for info")
		return
	}
	j, err := sched.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(0, 15, 0))),
		gocron.NewTask(func() {
			if err := common.RunAnalyticsRollup(db); err != nil {
				log.Printf("Error running analytics rollup: %s\n", err.Error())
			}
		}),
	)
	if err != nil {
		log.Printf("Error running job: %s\n", err.Error())
		return
	}
	log.Printf("Job ID: %s %s\n", j.Name(), j.ID().String())
	sched.Start()
}

func StopScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("Error retrieving Scheduler. Check logs for info")
		return
	}
	err = sched.Shutdown()
	if err != nil {
		log.Println("An error has occurred while stopping Scheduler. Check logs for info")
		return
	}
}
