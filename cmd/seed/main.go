package main

import (
	"context"
	"log"
	"time"

	"tidyteam/internal/database"
	"tidyteam/internal/domain"
	"tidyteam/internal/repository"
)

// Development seeder: wipes the dev database and loads a small team
// scenario covering the main flows (open job, pending offer, running
// checklist, appointment awaiting response).
func main() {
	db, err := database.Connect("tidyteam.db")
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running migrations...")
	if err := repository.Migrate(db); err != nil {
		log.Fatal("Migrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM messages")
	db.Exec("DELETE FROM conversations")
	db.Exec("DELETE FROM bonuses")
	db.Exec("DELETE FROM incentive_configs")
	db.Exec("DELETE FROM user_appointments")
	db.Exec("DELETE FROM solo_offers")
	db.Exec("DELETE FROM offers")
	db.Exec("DELETE FROM checklist_items")
	db.Exec("DELETE FROM room_assignments")
	db.Exec("DELETE FROM jobs")
	db.Exec("DELETE FROM users")

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	jobsRepo := repository.NewJobRepository(db)
	offers := repository.NewOfferRepository(db)
	assignments := repository.NewAssignmentRepository(db)
	appointmentsRepo := repository.NewAppointmentRepository(db)
	incentiveRepo := repository.NewIncentiveRepository(db)

	log.Println("Creating users...")
	admin := &domain.User{Email: "admin@tidyteam.app", Role: domain.RoleAdmin, Name: "Admin"}
	homeowner := &domain.User{Email: "dana@example.com", Role: domain.RoleHomeowner, Name: "Dana Wells", Phone: "+1-512-555-0117"}
	owner := &domain.User{Email: "crew@sparklepro.com", Role: domain.RoleBusinessOwner, Name: "Sparkle Pro Cleaning"}
	for _, u := range []*domain.User{admin, homeowner, owner} {
		if err := users.Create(ctx, u); err != nil {
			log.Fatal(err)
		}
	}

	maria := &domain.User{Email: "maria@example.com", Role: domain.RoleCleaner, Name: "Maria Lopez"}
	james := &domain.User{Email: "james@example.com", Role: domain.RoleCleaner, Name: "James Carter"}
	emp1 := &domain.User{Email: "kim@sparklepro.com", Role: domain.RoleCleaner, Name: "Kim Tran", EmployerID: &owner.ID}
	emp2 := &domain.User{Email: "leo@sparklepro.com", Role: domain.RoleCleaner, Name: "Leo Park", EmployerID: &owner.ID}
	for _, u := range []*domain.User{maria, james, emp1, emp2} {
		if err := users.Create(ctx, u); err != nil {
			log.Fatal(err)
		}
	}

	log.Println("Creating jobs...")
	openJob := &domain.Job{
		HomeownerID:           homeowner.ID,
		AppointmentDate:       time.Now().Add(96 * time.Hour),
		Address:               "427 Brook Hollow Dr",
		City:                  "Austin",
		State:                 "TX",
		NumBeds:               5,
		NumBaths:              4,
		TotalCleanersRequired: 3,
		Status:                domain.JobOpen,
		TotalJobPrice:         domain.CentsFromDollars(450),
		TimeToBeCompleted:     "before 3pm",
	}
	if err := jobsRepo.Create(ctx, openJob); err != nil {
		log.Fatal(err)
	}

	runningJob := &domain.Job{
		HomeownerID:           homeowner.ID,
		AppointmentDate:       time.Now().Add(-2 * time.Hour),
		Address:               "12 Pecan Ct",
		City:                  "Austin",
		State:                 "TX",
		NumBeds:               4,
		NumBaths:              3,
		TotalCleanersRequired: 2,
		Status:                domain.JobOpen,
		TotalJobPrice:         domain.CentsFromDollars(300),
		TimeToBeCompleted:     "anytime",
	}
	if err := jobsRepo.Create(ctx, runningJob); err != nil {
		log.Fatal(err)
	}
	// flip the second job into its mid-clean state
	db.Exec("UPDATE jobs SET status = ?, cleaners_confirmed = ? WHERE id = ?",
		string(domain.JobInProgress), 2, runningJob.ID)

	log.Println("Creating room assignments...")
	rooms := []*domain.RoomAssignment{
		{
			JobID: runningJob.ID, CleanerID: maria.ID,
			RoomType: domain.RoomBedroom, DisplayLabel: "Master Bedroom",
			Status: domain.RoomInProgress, EstimatedMinutes: 45,
			RoomEarnings: domain.CentsFromDollars(65),
			Items: []domain.ChecklistItem{
				{Text: "Dust all surfaces", Completed: true, Position: 1},
				{Text: "Vacuum carpet", Completed: true, Position: 2},
				{Text: "Change bed linens", Position: 3},
			},
		},
		{
			JobID: runningJob.ID, CleanerID: maria.ID,
			RoomType: domain.RoomBathroom, DisplayLabel: "Guest Bathroom",
			Status: domain.RoomPending, EstimatedMinutes: 30,
			RoomEarnings: domain.CentsFromDollars(65),
			Items: []domain.ChecklistItem{
				{Text: "Scrub shower and tub", Position: 1},
				{Text: "Clean mirror and sink", Position: 2},
				{Text: "Mop floor", Position: 3},
			},
		},
		{
			JobID: runningJob.ID, CleanerID: james.ID,
			RoomType: domain.RoomKitchen, DisplayLabel: "Kitchen",
			Status: domain.RoomInProgress, EstimatedMinutes: 60,
			RoomEarnings: domain.CentsFromDollars(130),
			Items: []domain.ChecklistItem{
				{Text: "Wipe counters and backsplash", Completed: true, Position: 1},
				{Text: "Clean inside microwave", Position: 2},
				{Text: "Mop floor", Position: 3},
			},
		},
	}
	for _, r := range rooms {
		if err := assignments.Create(ctx, r); err != nil {
			log.Fatal(err)
		}
	}

	log.Println("Creating offers...")
	perCleaner := domain.Cents(int64(openJob.TotalJobPrice) / int64(openJob.TotalCleanersRequired))
	fee, earnings := domain.SplitFee(perCleaner, 0.13)
	offer := &domain.Offer{
		JobID:           openJob.ID,
		CleanerID:       maria.ID,
		Status:          domain.OfferPending,
		ExpiresAt:       time.Now().Add(48 * time.Hour),
		TotalJobPrice:   perCleaner,
		PlatformFee:     fee,
		EarningsOffered: earnings,
		PercentOfWork:   100.0 / float64(openJob.TotalCleanersRequired),
	}
	if err := offers.Create(ctx, offer); err != nil {
		log.Fatal(err)
	}

	log.Println("Creating appointments...")
	expires := time.Now().Add(48 * time.Hour)
	appt := &domain.Appointment{
		JobID:             &openJob.ID,
		HomeownerID:       homeowner.ID,
		ScheduledAt:       openJob.AppointmentDate,
		BookedByCleanerID: &maria.ID,
		ExpiresAt:         &expires,
	}
	if err := appointmentsRepo.Create(ctx, appt); err != nil {
		log.Fatal(err)
	}

	log.Println("Creating incentive config...")
	cfg := &domain.IncentiveConfig{
		Active:    true,
		Cleaner:   []byte(`{"title":"Team player bonus","body":"Earn an extra $20 on your first multi-cleaner job."}`),
		Homeowner: []byte(`{"title":"Big home discount","body":"10% off your first 3+ bedroom clean."}`),
		UpdatedBy: &admin.ID,
	}
	if err := incentiveRepo.Save(ctx, cfg); err != nil {
		log.Fatal(err)
	}

	log.Println("Seed complete.")
	log.Printf("  homeowner: %s (id %d)", homeowner.Email, homeowner.ID)
	log.Printf("  cleaners:  %s, %s", maria.Email, james.Email)
	log.Printf("  business:  %s with employees %s, %s", owner.Email, emp1.Email, emp2.Email)
	log.Printf("  open job %d (offer %d pending), running job %d", openJob.ID, offer.ID, runningJob.ID)
}
