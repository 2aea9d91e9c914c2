package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"projman/internal/config"
	"projman/internal/db"
	"projman/internal/model"
	"projman/internal/repository"
)

// seedUser is one demo account with its projects.
type seedUser struct {
	Login    string
	Password string
	Projects []seedProject
}

type seedProject struct {
	Name        string
	Description string
}

var demoUsers = []seedUser{
	{
		Login:    "alice",
		Password: "alice-password",
		Projects: []seedProject{
			{Name: "Website Redesign", Description: "Marketing site overhaul for Q3."},
			{Name: "Data Pipeline", Description: "Nightly ingest and reporting jobs."},
		},
	},
	{
		Login:    "bob",
		Password: "bob-password",
		Projects: []seedProject{
			{Name: "Mobile App", Description: "Customer-facing Android/iOS client."},
		},
	},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Project{},
		&model.Participant{},
		&model.Document{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	userRepo := repository.NewUserRepository(gormDB)
	projectRepo := repository.NewProjectRepository(gormDB)
	ctx := context.Background()

	users, projects, err := seed(ctx, userRepo, projectRepo)
	if err != nil {
		log.Fatalf("Failed to seed: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Users created: %d", users)
	log.Printf("  - Projects created: %d", projects)
}

// seed inserts demo users and their projects, skipping logins that already exist.
func seed(ctx context.Context, userRepo repository.UserRepository, projectRepo repository.ProjectRepository) (users int, projects int, err error) {
	for _, demo := range demoUsers {
		existing, err := userRepo.FindByLogin(ctx, demo.Login)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return users, projects, fmt.Errorf("check user %s: %w", demo.Login, err)
		}
		if existing != nil {
			log.Printf("User %s already exists, skipping", demo.Login)
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(demo.Password), 10)
		if err != nil {
			return users, projects, fmt.Errorf("hash password for %s: %w", demo.Login, err)
		}

		user := &model.User{Login: demo.Login, PasswordHash: string(hash)}
		if err := userRepo.Create(ctx, user); err != nil {
			return users, projects, fmt.Errorf("create user %s: %w", demo.Login, err)
		}
		users++

		for _, p := range demo.Projects {
			project := &model.Project{Name: p.Name, Description: p.Description, OwnerID: user.ID}
			if err := projectRepo.Create(ctx, project); err != nil {
				return users, projects, fmt.Errorf("create project %s: %w", p.Name, err)
			}
			projects++
		}
	}
	return users, projects, nil
}
