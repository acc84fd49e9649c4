package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/skillpath-backend/internal/logger"
	"github.com/yungbote/skillpath-backend/internal/normalization"
	"github.com/yungbote/skillpath-backend/internal/repos"
	"github.com/yungbote/skillpath-backend/internal/types"
)

// EvidenceTuple is one observation of a skill from a single source.
type EvidenceTuple struct {
	SkillName  string  `json:"skill_name"`
	Source     string  `json:"source"`
	Weight     float64 `json:"weight"`
	Confidence float64 `json:"confidence"`
}

type EvidenceService interface {
	// Ingest validates and upserts a batch of tuples. The batch is
	// all-or-nothing; a single bad tuple rejects the whole request.
	Ingest(ctx context.Context, userID uuid.UUID, tuples []EvidenceTuple) error
	// List returns every stored tuple for one of the user's skills.
	List(ctx context.Context, userID uuid.UUID, skillName string) ([]*types.SkillWeight, error)
}

type evidenceService struct {
	db         *gorm.DB
	log        *logger.Logger
	weightRepo repos.SkillWeightRepo
	scorer     AdaptiveScoreService
}

func NewEvidenceService(db *gorm.DB, log *logger.Logger, weightRepo repos.SkillWeightRepo, scorer AdaptiveScoreService) EvidenceService {
	return &evidenceService{
		db:         db,
		log:        log.With("service", "EvidenceService"),
		weightRepo: weightRepo,
		scorer:     scorer,
	}
}

var validSources = map[string]bool{
	types.SourceGithub:     true,
	types.SourceResume:     true,
	types.SourceQuiz:       true,
	types.SourceEngagement: true,
}

func ValidateEvidence(t EvidenceTuple) error {
	if t.SkillName == "" {
		return fmt.Errorf("empty skill name: %w", ErrInvalidEvidence)
	}
	if !validSources[t.Source] {
		return fmt.Errorf("unknown source %q: %w", t.Source, ErrInvalidEvidence)
	}
	if t.Weight < 0 || t.Weight > 1 {
		return fmt.Errorf("weight %.3f out of range: %w", t.Weight, ErrInvalidEvidence)
	}
	if t.Confidence < 0 || t.Confidence > 1 {
		return fmt.Errorf("confidence %.3f out of range: %w", t.Confidence, ErrInvalidEvidence)
	}
	return nil
}

func (s *evidenceService) Ingest(ctx context.Context, userID uuid.UUID, tuples []EvidenceTuple) error {
	if len(tuples) == 0 {
		return nil
	}
	for i := range tuples {
		tuples[i].SkillName = normalization.ParseInputString(tuples[i].SkillName)
		tuples[i].Source = normalization.ParseInputString(tuples[i].Source)
		if err := ValidateEvidence(tuples[i]); err != nil {
			return err
		}
	}
	now := time.Now().UTC()
	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, t := range tuples {
			row := &types.SkillWeight{
				UserID:      userID,
				SkillName:   t.SkillName,
				Source:      t.Source,
				Weight:      t.Weight,
				Confidence:  t.Confidence,
				LastUpdated: now,
			}
			if err := s.weightRepo.Upsert(ctx, tx, row); err != nil {
				return fmt.Errorf("upsert evidence %s/%s: %w", t.SkillName, t.Source, err)
			}
		}
		return nil
	}); err != nil {
		return err
	}
	seen := map[string]bool{}
	for _, t := range tuples {
		if !seen[t.SkillName] {
			seen[t.SkillName] = true
			s.scorer.Invalidate(ctx, userID, t.SkillName)
		}
	}
	s.log.Info("Evidence ingested", "user_id", userID, "tuples", len(tuples))
	return nil
}

func (s *evidenceService) List(ctx context.Context, userID uuid.UUID, skillName string) ([]*types.SkillWeight, error) {
	skillName = normalization.ParseInputString(skillName)
	if skillName == "" {
		return nil, fmt.Errorf("empty skill name: %w", ErrInvalidEvidence)
	}
	return s.weightRepo.GetByUserAndSkill(ctx, nil, userID, skillName)
}
