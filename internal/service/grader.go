package service

import (
	"akaraka_backend/internal/model"
	"math"
	"strings"
)

// Submission payloads, keyed by the ids of the answer-key records. JSON
// objects with numeric keys bind onto integer-keyed maps directly.
type (
	ChoiceSubmission    map[uint]uint // question id -> chosen option id
	MatchingSubmission  []uint        // pair ids in the submitted order
	TypingSubmission    map[uint]string
	ListeningSubmission map[uint]uint // question id -> chosen option id
)

// percentage rounds correct/total into [0,100]. Zero total scores zero, never
// panics.
func percentage(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}

// GradeChoice scores a multiple-choice submission. The denominator is the
// number of configured questions; unanswered questions and unknown
// question/option ids count as wrong, never as errors.
func GradeChoice(questions []model.ChoiceQuestion, sub ChoiceSubmission) int {
	correct := 0
	for _, q := range questions {
		optionID, ok := sub[q.ID]
		if !ok {
			continue
		}
		for _, opt := range q.Options {
			if opt.ID == optionID && opt.IsCorrect {
				correct++
				break
			}
		}
	}
	return percentage(correct, len(questions))
}

// GradeMatching awards a point for every pair placed at its canonical
// position. Pairs must arrive ordered by their configured position.
func GradeMatching(pairs []model.MatchingPair, sub MatchingSubmission) int {
	position := make(map[uint]int, len(pairs))
	for i, p := range pairs {
		position[p.ID] = i
	}

	correct := 0
	for idx, pairID := range sub {
		canonical, ok := position[pairID]
		if !ok {
			continue
		}
		if idx == canonical {
			correct++
		}
	}
	return percentage(correct, len(pairs))
}

// GradeTyping compares each submitted answer against the prompt's expected
// string, ignoring case and surrounding whitespace.
func GradeTyping(prompts []model.TypingPrompt, sub TypingSubmission) int {
	correct := 0
	for _, p := range prompts {
		answer, ok := sub[p.ID]
		if !ok {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(p.CorrectAnswer)) {
			correct++
		}
	}
	return percentage(correct, len(prompts))
}

func GradeListening(questions []model.ListeningQuestion, sub ListeningSubmission) int {
	correct := 0
	for _, q := range questions {
		optionID, ok := sub[q.ID]
		if !ok {
			continue
		}
		for _, opt := range q.Options {
			if opt.ID == optionID && opt.IsCorrect {
				correct++
				break
			}
		}
	}
	return percentage(correct, len(questions))
}

// PassingScore is the threshold for a passed attempt.
const PassingScore = 80

// AwardXP maps a score onto the exercise's XP reward: full reward at 80+,
// 70% at 60+, half at 40+, nothing below.
func AwardXP(xpReward, score int) int {
	switch {
	case score >= 80:
		return xpReward
	case score >= 60:
		return int(float64(xpReward) * 0.7)
	case score >= 40:
		return int(float64(xpReward) * 0.5)
	default:
		return 0
	}
}
