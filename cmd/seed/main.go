package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/simagang/simagang-backend-go/internal/config"
	"github.com/simagang/simagang-backend-go/internal/domain/internship"
	"github.com/simagang/simagang-backend-go/internal/domain/user"
	"github.com/simagang/simagang-backend-go/internal/pkg/database"
	"github.com/simagang/simagang-backend-go/internal/repository/postgresql"
	"golang.org/x/crypto/bcrypt"
)

// Seeds a development database with one account per role and an active
// internship for the intern. Safe to re-run: existing emails are skipped.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}

	ctx := context.Background()
	userRepo := postgresql.NewUserRepository(db)
	internshipRepo := postgresql.NewInternshipRepository(db)

	accounts := []struct {
		fullName string
		email    string
		position string
		role     user.Role
	}{
		{"Admin Simagang", "admin@simagang.local", "Administrator", user.RoleAdmin},
		{"Budi Santoso", "mentor@simagang.local", "Backend Engineering", user.RoleMentor},
		{"Sri Rahayu", "kadiv@simagang.local", "Head of Engineering", user.RoleKadiv},
		{"Andi Pratama", "intern@simagang.local", "Backend Engineering", user.RoleIntern},
	}

	var intern user.User
	for _, a := range accounts {
		if existing, err := userRepo.GetByEmail(ctx, a.email); err == nil {
			fmt.Printf("skip %s (already exists)\n", a.email)
			if a.role == user.RoleIntern {
				intern = existing
			}
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal("Error hashing password: ", err)
		}

		created, err := userRepo.Create(ctx, user.User{
			FullName:     a.fullName,
			Email:        a.email,
			PasswordHash: string(hash),
			Position:     a.position,
			Role:         a.role,
		})
		if err != nil {
			log.Fatal("Error creating user: ", err)
		}
		fmt.Printf("created %s (%s)\n", created.Email, created.Role)

		if a.role == user.RoleIntern {
			intern = created
		}
	}

	if _, err := internshipRepo.GetActiveByUserID(ctx, intern.ID); err == nil {
		fmt.Println("skip internship (already active)")
		return
	}

	now := time.Now().UTC()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	created, err := internshipRepo.Create(ctx, internship.Internship{
		UserID:    intern.ID,
		StartDate: start,
		EndDate:   start.AddDate(0, 6, 0),
		Status:    internship.StatusActive,
	})
	if err != nil {
		log.Fatal("Error creating internship: ", err)
	}
	fmt.Printf("created internship %s (%s to %s)\n",
		created.ID,
		created.StartDate.Format("2006-01-02"),
		created.EndDate.Format("2006-01-02"),
	)
}
