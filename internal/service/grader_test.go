package service

import (
	"testing"

	"akaraka_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func choiceQuestion(id, correctOption uint, wrongOptions ...uint) model.ChoiceQuestion {
	q := model.ChoiceQuestion{}
	q.ID = id
	correct := model.ChoiceOption{IsCorrect: true}
	correct.ID = correctOption
	q.Options = append(q.Options, correct)
	for _, optID := range wrongOptions {
		opt := model.ChoiceOption{}
		opt.ID = optID
		q.Options = append(q.Options, opt)
	}
	return q
}

func TestGradeChoice(t *testing.T) {
	questions := []model.ChoiceQuestion{
		choiceQuestion(1, 11, 12, 13),
		choiceQuestion(2, 21, 22),
		choiceQuestion(3, 31, 32),
		choiceQuestion(4, 41, 42),
	}

	tests := []struct {
		name string
		sub  ChoiceSubmission
		want int
	}{
		{"all correct", ChoiceSubmission{1: 11, 2: 21, 3: 31, 4: 41}, 100},
		{"half correct", ChoiceSubmission{1: 11, 2: 21, 3: 32, 4: 42}, 50},
		{"none correct", ChoiceSubmission{1: 12, 2: 22, 3: 32, 4: 42}, 0},
		{"unanswered count as wrong", ChoiceSubmission{1: 11}, 25},
		{"unknown question id skipped", ChoiceSubmission{1: 11, 99: 11}, 25},
		{"unknown option id wrong", ChoiceSubmission{1: 999, 2: 21}, 25},
		{"empty submission", ChoiceSubmission{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GradeChoice(questions, tt.sub)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, 0)
			assert.LessOrEqual(t, got, 100)
		})
	}
}

func TestGradeChoiceNoQuestions(t *testing.T) {
	assert.Equal(t, 0, GradeChoice(nil, ChoiceSubmission{1: 1}))
}

func TestGradeMatching(t *testing.T) {
	pairs := make([]model.MatchingPair, 4)
	for i := range pairs {
		pairs[i].ID = uint(i + 1)
		pairs[i].Order = i
	}

	tests := []struct {
		name string
		sub  MatchingSubmission
		want int
	}{
		{"perfect order", MatchingSubmission{1, 2, 3, 4}, 100},
		{"two swapped", MatchingSubmission{2, 1, 3, 4}, 50},
		{"fully reversed", MatchingSubmission{4, 3, 2, 1}, 0},
		{"partial submission", MatchingSubmission{1, 2}, 50},
		{"unknown pair id skipped", MatchingSubmission{1, 99, 3, 4}, 75},
		{"empty", MatchingSubmission{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GradeMatching(pairs, tt.sub))
		})
	}
}

func TestGradeTyping(t *testing.T) {
	prompts := []model.TypingPrompt{
		{CorrectAnswer: "kabul"},
		{CorrectAnswer: "Hello, how are you?"},
	}
	prompts[0].ID = 1
	prompts[1].ID = 2

	tests := []struct {
		name string
		sub  TypingSubmission
		want int
	}{
		{"exact", TypingSubmission{1: "kabul", 2: "Hello, how are you?"}, 100},
		{"case and whitespace ignored", TypingSubmission{1: " Kabul ", 2: "hello, HOW are you?"}, 100},
		{"one wrong", TypingSubmission{1: "kandahar", 2: "Hello, how are you?"}, 50},
		{"interior whitespace matters", TypingSubmission{1: "ka bul", 2: "Hello, how are you?"}, 50},
		{"unanswered prompt wrong", TypingSubmission{1: "kabul"}, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GradeTyping(prompts, tt.sub))
		})
	}
}

func TestGradeListening(t *testing.T) {
	q := model.ListeningQuestion{}
	q.ID = 1
	correct := model.ListeningOption{IsCorrect: true}
	correct.ID = 10
	wrong := model.ListeningOption{}
	wrong.ID = 11
	q.Options = []model.ListeningOption{correct, wrong}

	questions := []model.ListeningQuestion{q}

	assert.Equal(t, 100, GradeListening(questions, ListeningSubmission{1: 10}))
	assert.Equal(t, 0, GradeListening(questions, ListeningSubmission{1: 11}))
	assert.Equal(t, 0, GradeListening(questions, ListeningSubmission{}))
}

func TestAwardXP(t *testing.T) {
	tests := []struct {
		score  int
		reward int
		want   int
	}{
		{100, 10, 10},
		{80, 10, 10},
		{79, 10, 7},
		{60, 10, 7},
		{59, 10, 5},
		{40, 10, 5},
		{39, 10, 0},
		{0, 10, 0},
		{75, 5, 3},  // 0.7 * 5 floors to 3
		{50, 5, 2},  // 0.5 * 5 floors to 2
		{100, 0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, AwardXP(tt.reward, tt.score), "score %d reward %d", tt.score, tt.reward)
	}
}
