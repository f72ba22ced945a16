package main

import (
	"fmt"
	"log"
	"time"

	"clubhub/internal/computers"
	"clubhub/internal/shared/config"
	"clubhub/internal/shared/database"
	"clubhub/internal/tournaments"
	"clubhub/internal/users"

	"golang.org/x/crypto/bcrypt"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting ClubHub Database Seeder...")

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in the correct order (respecting foreign key constraints)
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"payments",
		"tournament_registrations",
		"tournaments",
		"sessions",
		"reservations",
		"computers",
		"users",
	}

	for _, table := range tables {
		if err := s.db.GetPostgreSQL().Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)).Error; err != nil {
			return fmt.Errorf("failed to truncate %s: %w", table, err)
		}
	}
	return nil
}

func (s *Seeder) SeedAll() error {
	if err := s.seedUsers(); err != nil {
		return err
	}
	if err := s.seedComputers(); err != nil {
		return err
	}
	if err := s.seedTournaments(); err != nil {
		return err
	}
	return nil
}

func (s *Seeder) seedUsers() error {
	adminPassword, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	clientPassword, err := bcrypt.GenerateFromPassword([]byte("client123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	seedUsers := []users.User{
		{
			FullName: "Club Administrator",
			Email:    "admin@clubhub.local",
			Phone:    "+10000000001",
			Password: string(adminPassword),
			Role:     users.RoleAdmin,
			IsActive: true,
		},
		{
			FullName: "Demo Client",
			Email:    "client@clubhub.local",
			Phone:    "+10000000002",
			Password: string(clientPassword),
			Role:     users.RoleClient,
			Balance:  500,
			IsActive: true,
		},
	}

	for i := range seedUsers {
		if err := s.db.GetPostgreSQL().Create(&seedUsers[i]).Error; err != nil {
			return fmt.Errorf("failed to create user %s: %w", seedUsers[i].Email, err)
		}
	}
	fmt.Printf("  👤 Created %d users\n", len(seedUsers))
	return nil
}

// seedComputers lays out the hall: three rows of five seats, the back row on
// a premium tariff.
func (s *Seeder) seedComputers() error {
	count := 0
	for row := 1; row <= 3; row++ {
		for place := 1; place <= 5; place++ {
			price := 150.0
			specs := [4]string{"Intel Core i5-12400F", "16GB DDR4", "RTX 3060", "24\" 144Hz"}
			if row == 3 {
				price = 250.0
				specs = [4]string{"Intel Core i9-13900K", "32GB DDR5", "RTX 4080", "27\" 240Hz"}
			}

			computer := computers.Computer{
				Name:         fmt.Sprintf("PC-%d%02d", row, place),
				Row:          row,
				Place:        place,
				PricePerHour: price,
				Processor:    specs[0],
				RAM:          specs[1],
				GraphicsCard: specs[2],
				Monitor:      specs[3],
				Status:       computers.StatusAvailable,
				IsActive:     true,
			}
			if err := s.db.GetPostgreSQL().Create(&computer).Error; err != nil {
				return fmt.Errorf("failed to create computer %s: %w", computer.Name, err)
			}
			count++
		}
	}
	fmt.Printf("  💻 Created %d computers\n", count)
	return nil
}

func (s *Seeder) seedTournaments() error {
	start := time.Now().AddDate(0, 0, 14).Truncate(time.Hour)
	tournament := tournaments.Tournament{
		Name:                 "ClubHub CS2 Open",
		Description:          "Monthly 5v5 tournament, open registration.",
		Game:                 "Counter-Strike 2",
		StartTime:            start,
		RegistrationDeadline: start.AddDate(0, 0, -2),
		MaxParticipants:      32,
		EntryFee:             100,
		PrizePool:            10000,
		Status:               tournaments.StatusRegistration,
	}
	if err := s.db.GetPostgreSQL().Create(&tournament).Error; err != nil {
		return fmt.Errorf("failed to create tournament: %w", err)
	}
	fmt.Println("  🏆 Created 1 tournament")
	return nil
}
