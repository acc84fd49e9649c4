package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/skillpath-backend/internal/logger"
	"github.com/yungbote/skillpath-backend/internal/repos"
	"github.com/yungbote/skillpath-backend/internal/types"
)

// ResumeSkill is one skill mention count extracted from resume text.
type ResumeSkill struct {
	SkillName  string  `json:"skill_name"`
	Mentions   int     `json:"mentions"`
	Weight     float64 `json:"weight"`
	Confidence float64 `json:"confidence"`
}

type ResumeService interface {
	// IngestText scans already-extracted resume text for known skill
	// names and stores the matches as resume evidence.
	IngestText(ctx context.Context, userID uuid.UUID, text string) ([]ResumeSkill, error)
}

type resumeService struct {
	db         *gorm.DB
	log        *logger.Logger
	courseRepo repos.CourseRepo
	weightRepo repos.SkillWeightRepo
	scorer     AdaptiveScoreService
}

func NewResumeService(db *gorm.DB, log *logger.Logger, courseRepo repos.CourseRepo, weightRepo repos.SkillWeightRepo, scorer AdaptiveScoreService) ResumeService {
	return &resumeService{
		db:         db,
		log:        log.With("service", "ResumeService"),
		courseRepo: courseRepo,
		weightRepo: weightRepo,
		scorer:     scorer,
	}
}

func (s *resumeService) IngestText(ctx context.Context, userID uuid.UUID, text string) ([]ResumeSkill, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	known, err := s.courseRepo.DistinctRoadmapIDs(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("load known skills: %w", err)
	}

	matches := ExtractResumeSkills(text, known)
	if len(matches) == 0 {
		return nil, nil
	}

	now := time.Now().UTC()
	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range matches {
			row := &types.SkillWeight{
				UserID:      userID,
				SkillName:   m.SkillName,
				Source:      types.SourceResume,
				Weight:      m.Weight,
				Confidence:  m.Confidence,
				LastUpdated: now,
			}
			if err := s.weightRepo.Upsert(ctx, tx, row); err != nil {
				return fmt.Errorf("upsert resume evidence %s: %w", m.SkillName, err)
			}
		}
		return nil
	}); err != nil {
		return nil, err
	}

	for _, m := range matches {
		s.scorer.Invalidate(ctx, userID, m.SkillName)
	}
	s.log.Info("Resume evidence ingested", "user_id", userID, "skills", len(matches))
	return matches, nil
}

// ExtractResumeSkills counts whole-word mentions of each known skill in
// the text. Weight is each skill's share of the heaviest mention count;
// confidence saturates at five mentions.
func ExtractResumeSkills(text string, knownSkills []string) []ResumeSkill {
	lowered := strings.ToLower(text)
	words := strings.FieldsFunc(lowered, func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9' || r == '-' || r == '+' || r == '#' || r == '.')
	})
	counts := map[string]int{}
	for _, w := range words {
		counts[strings.Trim(w, ".")]++
	}

	var matches []ResumeSkill
	maxMentions := 0
	for _, skill := range knownSkills {
		name := strings.ToLower(strings.TrimSpace(skill))
		if name == "" {
			continue
		}
		n := counts[name]
		if n == 0 && strings.ContainsAny(name, " -") {
			n = strings.Count(lowered, name)
		}
		if n == 0 {
			continue
		}
		if n > maxMentions {
			maxMentions = n
		}
		matches = append(matches, ResumeSkill{SkillName: name, Mentions: n})
	}
	for i := range matches {
		matches[i].Weight = float64(matches[i].Mentions) / float64(maxMentions)
		matches[i].Confidence = min(1, float64(matches[i].Mentions)/5)
	}
	return matches
}
