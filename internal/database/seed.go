package database

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/taskbridge/task-marketplace-api/internal/models"
)

// Seed loads the fixed mock dataset: a handful of JPTs and associates plus
// sample tasks in every lifecycle state. Runs once; a non-empty users table
// means the dataset is already in place.
func Seed() error {
	var count int64
	if err := DB.Model(&models.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check existing users: %w", err)
	}
	if count > 0 {
		return nil
	}

	log.Println("Seeding mock dataset...")

	users := []models.User{
		{ID: 1, Name: "Priya Mehta", Role: models.RoleJPT, Avatar: "https://i.pravatar.cc/150?img=1"},
		{ID: 2, Name: "Daniel Okafor", Role: models.RoleJPT, Avatar: "https://i.pravatar.cc/150?img=2"},
		{ID: 3, Name: "Sofia Reyes", Role: models.RoleAssociate, Avatar: "https://i.pravatar.cc/150?img=3"},
		{ID: 4, Name: "Liam Carter", Role: models.RoleAssociate, Avatar: "https://i.pravatar.cc/150?img=4"},
		{ID: 5, Name: "Aisha Khan", Role: models.RoleAssociate, Avatar: "https://i.pravatar.cc/150?img=5"},
		{ID: 6, Name: "Marco Rossi", Role: models.RoleAssociate, Avatar: "https://i.pravatar.cc/150?img=6"},
	}
	if err := DB.Create(&users).Error; err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	now := time.Now()
	completedAt := now.Add(-24 * time.Hour)

	tasks := []models.Task{
		{
			ID:                 1,
			Title:              "Prepare Q3 market research deck",
			Description:        "Compile competitor pricing data and summarize the findings in a short slide deck for the quarterly review.",
			Tags:               []string{"research", "slides"},
			Status:             models.TaskStatusOpen,
			CreatedBy:          1,
			RequiredAssociates: 2,
			CreatedAt:          now.Add(-48 * time.Hour),
		},
		{
			ID:                 2,
			Title:              "Migrate customer records spreadsheet",
			Description:        "Move the legacy customer records into the new CRM, normalizing phone numbers and deduplicating entries.",
			Tags:               []string{"data-entry", "crm"},
			Status:             models.TaskStatusInProgress,
			CreatedBy:          1,
			RequiredAssociates: 2,
			CreatedAt:          now.Add(-72 * time.Hour),
		},
		{
			ID:                 3,
			Title:              "Proofread onboarding handbook",
			Description:        "Read through the new-hire onboarding handbook and fix typos, broken links and outdated screenshots.",
			Tags:               []string{"writing", "review"},
			Status:             models.TaskStatusCompleted,
			CreatedBy:          2,
			RequiredAssociates: 1,
			CreatedAt:          now.Add(-120 * time.Hour),
			CompletedAt:        &completedAt,
		},
		{
			ID:                 4,
			Title:              "Translate landing page to Spanish",
			Description:        "Produce a Spanish translation of the marketing landing page, keeping the tone consistent with the English copy.",
			Tags:               []string{"translation", "marketing"},
			Status:             models.TaskStatusOpen,
			CreatedBy:          2,
			RequiredAssociates: 3,
			CreatedAt:          now.Add(-12 * time.Hour),
		},
	}
	if err := DB.Create(&tasks).Error; err != nil {
		return fmt.Errorf("failed to seed tasks: %w", err)
	}

	assignments := []models.TaskAssignment{
		{TaskID: 1, UserID: 3, Position: 1},
		{TaskID: 2, UserID: 4, Position: 1},
		{TaskID: 2, UserID: 5, Position: 2},
		{TaskID: 3, UserID: 6, Position: 1},
	}
	if err := DB.Create(&assignments).Error; err != nil {
		return fmt.Errorf("failed to seed assignments: %w", err)
	}

	messages := []models.Message{
		{ID: uuid.NewString(), TaskID: 2, UserID: 4, Text: "Started on the A-F batch, about a third done.", CreatedAt: now.Add(-30 * time.Hour)},
		{ID: uuid.NewString(), TaskID: 2, UserID: 1, Text: "Great. Flag any records missing an email, we'll chase those separately.", CreatedAt: now.Add(-29 * time.Hour)},
		{ID: uuid.NewString(), TaskID: 2, UserID: 5, Text: "Taking G-M next, the dedupe rules doc was really helpful.", CreatedAt: now.Add(-20 * time.Hour)},
		{ID: uuid.NewString(), TaskID: 3, UserID: 6, Text: "All chapters reviewed, screenshots in chapter 4 replaced.", CreatedAt: now.Add(-26 * time.Hour)},
	}
	if err := DB.Create(&messages).Error; err != nil {
		return fmt.Errorf("failed to seed messages: %w", err)
	}

	log.Println("Mock dataset seeded")
	return nil
}
