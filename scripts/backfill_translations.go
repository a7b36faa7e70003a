// Manual backfill for lesson translations.
//
// Translating lessons is normally triggered per lesson from the admin API.
// This script sweeps every lesson that has English content but no Dari
// content, for first deployments or after bulk content imports.
//
// Usage: go run scripts/backfill_translations.go
package main

import (
	"context"
	"log"

	"akaraka_backend/internal/config"
	"akaraka_backend/internal/repository"
	"akaraka_backend/internal/service"
	"akaraka_backend/pkg/database"
	"akaraka_backend/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger.InitLogger(cfg.Server.Mode)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	lessonRepo := repository.NewLessonRepository(db)

	ctx := context.Background()
	translation, err := service.NewTranslationService(ctx, cfg.Google.TranslateEnabled, lessonRepo)
	if err != nil {
		log.Fatalf("failed to create translation client: %v", err)
	}
	defer translation.Close()
	if !translation.Enabled() {
		log.Fatal("translation is disabled; set google.translate_enabled")
	}

	lessons, err := lessonRepo.ListMissingTranslations()
	if err != nil {
		log.Fatalf("failed to list lessons: %v", err)
	}
	log.Printf("found %d lessons without Dari content", len(lessons))

	translated := 0
	for _, lesson := range lessons {
		ok, err := translation.FillLessonTranslation(ctx, lesson.ID)
		if err != nil {
			log.Printf("lesson %d: %v", lesson.ID, err)
			continue
		}
		if ok {
			translated++
		}
	}
	log.Printf("done, translated %d lessons", translated)
}
