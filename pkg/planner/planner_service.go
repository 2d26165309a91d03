package planner

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/yann-lu/mind-balance/internal/utils"
	"github.com/yann-lu/mind-balance/pkg/ai"
	"github.com/yann-lu/mind-balance/pkg/user"
)

const (
	ModeRules = "rules"
	ModeAI    = "ai"

	lookbackDays = 7
)

var ErrNoProjects = errors.New("no projects to plan for")

// TargetSource provides the open budget target of every project owned by
// the current user.
type TargetSource interface {
	CurrentTargets(ctx context.Context) (map[string]int, error)
}

// ProviderSource yields the chat provider of the caller's active AI
// configuration.
type ProviderSource interface {
	ActiveProvider(ctx context.Context) (ai.Provider, error)
}

type PlannerService interface {
	// GeneratePlan builds the rule-based plan and, when an AI provider is
	// configured, lets it rewrite the plan. AI failures of any kind fall
	// back to the rule-based result.
	GeneratePlan(ctx context.Context) (Plan, string, error)
	// RulePlan builds the plan without consulting any AI provider.
	RulePlan(ctx context.Context) (Plan, error)
	// EnergyWarnings reports rule-based over/under-investment flags.
	EnergyWarnings(ctx context.Context) ([]Warning, error)
	// Recommendations ranks pending tasks for today.
	Recommendations(ctx context.Context) ([]Recommendation, error)
	// StreamPlan emits the rule-based plan immediately and follows up with
	// the AI-enhanced plan or a fallback notice.
	StreamPlan(ctx context.Context, emit func(event string, data any) error) error
}

type PlannerServiceImpl struct {
	repo      PlannerRepo
	targets   TargetSource
	providers ProviderSource
	clock     utils.Clock
}

func NewPlannerService(repo PlannerRepo, targets TargetSource, providers ProviderSource, clock utils.Clock) *PlannerServiceImpl {
	return &PlannerServiceImpl{repo: repo, targets: targets, providers: providers, clock: clock}
}

func (s *PlannerServiceImpl) loadSnapshot(ctx context.Context) (snapshot, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return snapshot{}, err
	}

	projects, err := s.repo.Projects(ctx, userId)
	if err != nil {
		return snapshot{}, err
	}
	if len(projects) == 0 {
		return snapshot{}, ErrNoProjects
	}

	fromDate := s.clock.Now().AddDate(0, 0, -lookbackDays).Format("2006-01-02")
	durations, err := s.repo.DurationsByProject(ctx, userId, fromDate)
	if err != nil {
		return snapshot{}, err
	}
	var total int64
	for _, seconds := range durations {
		total += seconds
	}

	targets, err := s.targets.CurrentTargets(ctx)
	if err != nil {
		return snapshot{}, err
	}
	pending, err := s.repo.PendingTasks(ctx, userId)
	if err != nil {
		return snapshot{}, err
	}

	return snapshot{
		projects:  projects,
		targets:   targets,
		durations: durations,
		total:     total,
		pending:   pending,
	}, nil
}

func (s *PlannerServiceImpl) RulePlan(ctx context.Context) (Plan, error) {
	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		return Plan{}, err
	}
	return buildRulePlan(snap), nil
}

func (s *PlannerServiceImpl) GeneratePlan(ctx context.Context) (Plan, string, error) {
	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		return Plan{}, "", err
	}
	rulePlan := buildRulePlan(snap)

	aiPlan, err := s.aiPlan(ctx, snap)
	if err != nil {
		if !errors.Is(err, ai.ErrNoActiveConfig) {
			log.Warnf("AI plan generation failed, serving rule-based plan: %v", err)
		}
		return rulePlan, ModeRules, nil
	}
	return aiPlan, ModeAI, nil
}

// aiPlan asks the active provider to produce the plan and normalizes the
// result against the snapshot.
func (s *PlannerServiceImpl) aiPlan(ctx context.Context, snap snapshot) (Plan, error) {
	provider, err := s.providers.ActiveProvider(ctx)
	if err != nil {
		return Plan{}, err
	}

	response, err := provider.Chat(ctx, []ai.Message{
		{Role: ai.RoleSystem, Content: systemPrompt},
		{Role: ai.RoleUser, Content: buildPlanPrompt(snap)},
	}, ai.ChatOptions{Temperature: 0.7})
	if err != nil {
		return Plan{}, err
	}

	plan, err := parsePlanResponse(response)
	if err != nil {
		return Plan{}, err
	}
	normalizePlan(&plan, snap)
	return plan, nil
}

// normalizePlan backfills fields AI responses tend to omit: warning ids
// and the project ids of energy suggestions.
func normalizePlan(plan *Plan, snap snapshot) {
	for i := range plan.Warnings {
		if plan.Warnings[i].ID == "" {
			plan.Warnings[i].ID = fmt.Sprintf("warning_%d", i)
		}
	}

	nameToId := map[string]string{}
	for _, project := range snap.projects {
		nameToId[project.Name] = project.ID
	}
	for i := range plan.EnergySuggestions {
		if plan.EnergySuggestions[i].ProjectID == "" {
			plan.EnergySuggestions[i].ProjectID = nameToId[plan.EnergySuggestions[i].ProjectName]
		}
	}
}

func (s *PlannerServiceImpl) EnergyWarnings(ctx context.Context) ([]Warning, error) {
	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		if errors.Is(err, ErrNoProjects) {
			return []Warning{}, nil
		}
		return nil, err
	}
	return buildWarnings(snap), nil
}

func (s *PlannerServiceImpl) Recommendations(ctx context.Context) ([]Recommendation, error) {
	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		if errors.Is(err, ErrNoProjects) {
			return []Recommendation{}, nil
		}
		return nil, err
	}
	return buildRecommendations(snap), nil
}

func (s *PlannerServiceImpl) StreamPlan(ctx context.Context, emit func(event string, data any) error) error {
	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		return err
	}
	rulePlan := buildRulePlan(snap)

	if err := emit("init", map[string]any{
		"message": "Plan ready",
		"data":    rulePlan,
	}); err != nil {
		return err
	}

	aiPlan, err := s.aiPlan(ctx, snap)
	if err != nil {
		if !errors.Is(err, ai.ErrNoActiveConfig) {
			log.Warnf("AI plan generation failed during stream: %v", err)
			if err := emit("warning", map[string]any{"message": "AI enhancement failed, keeping the rule-based plan"}); err != nil {
				return err
			}
		}
		return emit("complete", map[string]any{"mode": ModeRules})
	}

	if err := emit("update", map[string]any{"data": aiPlan}); err != nil {
		return err
	}
	return emit("complete", map[string]any{"mode": ModeAI})
}
