package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"turfbook/internal/database"
	"turfbook/internal/domain"
	"turfbook/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	db, err := database.Connect("turfbook.db")
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM notifications")
	db.Exec("DELETE FROM checkout_sessions")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM turfs")
	db.Exec("DELETE FROM users")

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	turfs := repository.NewTurfRepository(db)
	bookings := repository.NewBookingRepository(db)

	log.Println("Creating users...")
	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := &domain.User{
		Email:        "admin@turfbook.in",
		PasswordHash: string(adminHash),
		Name:         "Administrator",
		IsAdmin:      true,
	}
	if err := users.Create(ctx, admin); err != nil {
		log.Fatal(err)
	}
	log.Println("Admin created: admin@turfbook.in / admin123")

	var players []*domain.User
	for i, email := range []string{"rahul@gmail.com", "priya@gmail.com", "arjun@gmail.com"} {
		hash, _ := bcrypt.GenerateFromPassword([]byte("player123"), bcrypt.DefaultCost)
		u := &domain.User{
			Email:        email,
			PasswordHash: string(hash),
			Name:         fmt.Sprintf("Player %d", i+1),
		}
		if err := users.Create(ctx, u); err != nil {
			log.Fatal(err)
		}
		players = append(players, u)
	}

	log.Println("Creating turfs...")
	seedTurfs := []*domain.Turf{
		{
			Name:         "Green Arena",
			Location:     "Andheri West, Mumbai",
			PricePerHour: 1200,
			Size:         "5-a-side",
			ImageURL:     "/images/green-arena.jpg",
			Description:  "Artificial grass turf with floodlights, ideal for evening games.",
			Facilities:   []string{"Floodlights", "Parking", "Changing Room", "Drinking Water"},
		},
		{
			Name:         "Victory Grounds",
			Location:     "Koramangala, Bangalore",
			PricePerHour: 1500,
			Size:         "7-a-side",
			ImageURL:     "/images/victory-grounds.jpg",
			Description:  "Full-size cricket practice turf with bowling machine on request.",
			Facilities:   []string{"Bowling Machine", "Cafeteria", "First Aid"},
		},
		{
			Name:         "Seaside Sports Park",
			Location:     "Besant Nagar, Chennai",
			PricePerHour: 900,
			Size:         "5-a-side",
			ImageURL:     "/images/seaside-park.jpg",
			Description:  "Open-air turf near the beach, mornings recommended.",
			Facilities:   []string{"Parking", "Washroom"},
		},
	}
	for _, t := range seedTurfs {
		if err := turfs.Create(ctx, t); err != nil {
			log.Fatal(err)
		}
	}

	log.Println("Creating sample bookings...")
	date := time.Now().UTC().AddDate(0, 0, 3)
	date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	samples := []*domain.Booking{
		{UserID: players[0].ID, TurfID: seedTurfs[0].ID, BookingDate: date, StartTime: "09:00", EndTime: "10:00", TotalAmount: 1200, PaymentStatus: domain.PaymentPaid},
		{UserID: players[1].ID, TurfID: seedTurfs[0].ID, BookingDate: date, StartTime: "18:00", EndTime: "20:00", TotalAmount: 2400, PaymentStatus: domain.PaymentPending},
		{UserID: players[2].ID, TurfID: seedTurfs[1].ID, BookingDate: date, StartTime: "07:00", EndTime: "08:00", TotalAmount: 1500, PaymentStatus: domain.PaymentCancelled},
	}
	for _, b := range samples {
		if conflict, err := bookings.CreateInSlot(ctx, b); err != nil {
			log.Fatal(err)
		} else if conflict != nil {
			log.Fatalf("seed booking conflicts with booking %d", conflict.ID)
		}
	}

	log.Println("Seed complete.")
}
