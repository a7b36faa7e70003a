package service

import (
	"context"
	"fmt"

	"akaraka_backend/internal/repository"
	"akaraka_backend/pkg/logger"

	"cloud.google.com/go/translate"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

// Dari has no dedicated code in the translation API; Persian is the closest
// supported target.
var dariTarget = language.Persian

type TranslationService struct {
	client     *translate.Client
	LessonRepo *repository.LessonRepository
	enabled    bool
}

func NewTranslationService(ctx context.Context, enabled bool, lessonRepo *repository.LessonRepository) (*TranslationService, error) {
	s := &TranslationService{LessonRepo: lessonRepo, enabled: enabled}
	if !enabled {
		return s, nil
	}

	client, err := translate.NewClient(ctx)
	if err != nil {
		return nil, err
	}
	s.client = client
	return s, nil
}

func (s *TranslationService) Enabled() bool {
	return s.enabled && s.client != nil
}

func (s *TranslationService) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}

// TranslateToDari translates English text to Dari (via Persian).
func (s *TranslationService) TranslateToDari(ctx context.Context, text string) (string, error) {
	if !s.Enabled() {
		return "", fmt.Errorf("translation is disabled")
	}
	if text == "" {
		return "", nil
	}

	translations, err := s.client.Translate(ctx, []string{text}, dariTarget, &translate.Options{
		Source: language.English,
	})
	if err != nil {
		return "", err
	}
	if len(translations) == 0 {
		return "", fmt.Errorf("empty translation result")
	}
	return translations[0].Text, nil
}

// FillLessonTranslation backfills ContentDari when the author left it empty.
// Already-translated lessons are untouched so manual edits survive.
func (s *TranslationService) FillLessonTranslation(ctx context.Context, lessonID uint) (bool, error) {
	lesson, err := s.LessonRepo.FindByID(lessonID)
	if err != nil {
		return false, err
	}
	if lesson.ContentDari != "" || lesson.ContentEnglish == "" {
		return false, nil
	}

	translated, err := s.TranslateToDari(ctx, lesson.ContentEnglish)
	if err != nil {
		return false, err
	}
	lesson.ContentDari = translated
	if err := s.LessonRepo.Update(lesson); err != nil {
		return false, err
	}

	logger.Log.Info("lesson content translated", zap.Uint("lessonId", lessonID))
	return true, nil
}
