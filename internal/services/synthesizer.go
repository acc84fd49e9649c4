package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/skillpath-backend/internal/logger"
	"github.com/yungbote/skillpath-backend/internal/repos"
	"github.com/yungbote/skillpath-backend/internal/types"
)

// Per-source trust multipliers for cross-source fusion. Quiz evidence is
// trusted slightly above raw signal, resume keyword matching well below.
var sourceMultipliers = map[string]float64{
	types.SourceGithub:     1.0,
	types.SourceResume:     0.6,
	types.SourceQuiz:       1.3,
	types.SourceEngagement: 1.1,
}

// SynthesizedSkill is the coarse, stateless cross-source estimate. A nil
// result means "no data", which is distinct from a zero score.
type SynthesizedSkill struct {
	Weight     float64 `json:"weight"`
	Confidence float64 `json:"confidence"`
}

type SynthesizerService interface {
	Synthesize(ctx context.Context, userID uuid.UUID, skillName string) (*SynthesizedSkill, error)
}

type synthesizerService struct {
	db         *gorm.DB
	log        *logger.Logger
	weightRepo repos.SkillWeightRepo
}

func NewSynthesizerService(db *gorm.DB, log *logger.Logger, weightRepo repos.SkillWeightRepo) SynthesizerService {
	return &synthesizerService{
		db:         db,
		log:        log.With("service", "SynthesizerService"),
		weightRepo: weightRepo,
	}
}

// Synthesize is a pure function of the current evidence rows; it never
// persists anything, so repeated calls without evidence changes return
// identical output.
func (s *synthesizerService) Synthesize(ctx context.Context, userID uuid.UUID, skillName string) (*SynthesizedSkill, error) {
	weights, err := s.weightRepo.GetByUserAndSkill(ctx, nil, userID, skillName)
	if err != nil {
		return nil, fmt.Errorf("load evidence for user=%s skill=%s: %w", userID, skillName, err)
	}
	return FuseEvidence(weights), nil
}

// FuseEvidence computes the confidence-weighted mean of all evidence
// rows. Zero rows or an all-zero confidence denominator both mean "no
// data".
func FuseEvidence(weights []*types.SkillWeight) *SynthesizedSkill {
	if len(weights) == 0 {
		return nil
	}

	numerator := 0.0
	denominator := 0.0
	for _, w := range weights {
		multiplier, ok := sourceMultipliers[w.Source]
		if !ok {
			multiplier = 1.0
		}
		numerator += w.Weight * w.Confidence * multiplier
		denominator += w.Confidence * multiplier
	}
	if denominator == 0 {
		return nil
	}

	confidence := denominator / float64(len(weights))
	if confidence > 1 {
		confidence = 1
	}
	return &SynthesizedSkill{
		Weight:     numerator / denominator,
		Confidence: confidence,
	}
}
