package planner

import (
	"fmt"
	"sort"
)

// snapshot is the aggregate view of a user's week the planner reasons about.
type snapshot struct {
	projects  []ProjectSnapshot
	targets   map[string]int
	durations map[string]int64
	total     int64
	pending   []PendingTask
}

func (s snapshot) actualPercent(projectId string) int {
	if s.total == 0 {
		return 0
	}
	return int(float64(s.durations[projectId]) / float64(s.total) * 100)
}

func (s snapshot) projectName(projectId string) string {
	for _, project := range s.projects {
		if project.ID == projectId {
			return project.Name
		}
	}
	return "Unknown"
}

var priorityRank = map[string]int{"high": 0, "medium": 1, "low": 2}

const maxRecommendations = 4

var estimatedTimes = []string{"30 minutes", "45 minutes", "25 minutes", "15 minutes"}

var dailyTips = []string{
	"Evenings suit review sessions; summarize what you covered today",
	"Schedule the hardest material for your peak focus hours",
	"Keep the streak going: short daily sessions beat weekend marathons",
	"Try the pomodoro rhythm: 25 minutes of focus, then a 5 minute break",
}

// buildRulePlan derives a daily plan from the week's aggregates without
// calling any AI provider.
func buildRulePlan(s snapshot) Plan {
	return Plan{
		Warnings:          buildWarnings(s),
		Recommendations:   buildRecommendations(s),
		EnergySuggestions: buildEnergySuggestions(s),
		DailyTips:         dailyTips,
	}
}

// buildWarnings flags budgeted projects drifting more than ten points from
// their target. Over-investment past twenty points escalates to high.
func buildWarnings(s snapshot) []Warning {
	warnings := []Warning{}
	for _, project := range s.projects {
		target, budgeted := s.targets[project.ID]
		if !budgeted {
			continue
		}
		actual := s.actualPercent(project.ID)

		switch {
		case actual > target+10:
			level := LevelMedium
			if actual > target+20 {
				level = LevelHigh
			}
			warnings = append(warnings, Warning{
				ID:      "warning_" + project.ID,
				Title:   fmt.Sprintf("%s is over budget", project.Name),
				Message: fmt.Sprintf("%s received %d%% of your energy this week, well above the %d%% target", project.Name, actual, target),
				Level:   level,
				Suggestions: []ActionSuggestion{
					{Text: "Adjust today's plan", Action: "adjust_task"},
					{Text: "Review the statistics", Action: "view_stats"},
				},
			})
		case actual < target-10:
			warnings = append(warnings, Warning{
				ID:      "warning_" + project.ID,
				Title:   fmt.Sprintf("%s is falling behind", project.Name),
				Message: fmt.Sprintf("%s received only %d%% of your energy this week, below the %d%% target", project.Name, actual, target),
				Level:   LevelMedium,
				Suggestions: []ActionSuggestion{
					{Text: fmt.Sprintf("Add a %s task", project.Name), Action: "add_task"},
				},
			})
		}
	}
	return warnings
}

// buildRecommendations ranks pending tasks: tasks of under-invested
// projects come first, then higher priority wins. Order of arrival breaks
// the remaining ties.
func buildRecommendations(s snapshot) []Recommendation {
	underInvested := map[string]bool{}
	for projectId, target := range s.targets {
		if s.actualPercent(projectId) < target-10 {
			underInvested[projectId] = true
		}
	}

	ranked := make([]PendingTask, len(s.pending))
	copy(ranked, s.pending)
	sort.SliceStable(ranked, func(i, j int) bool {
		ui, uj := underInvested[ranked[i].ProjectID], underInvested[ranked[j].ProjectID]
		if ui != uj {
			return ui
		}
		return priorityRank[ranked[i].Priority] < priorityRank[ranked[j].Priority]
	})

	if len(ranked) > maxRecommendations {
		ranked = ranked[:maxRecommendations]
	}

	recommendations := []Recommendation{}
	for i, task := range ranked {
		projectName := s.projectName(task.ProjectID)
		reason := fmt.Sprintf("Keeps %s moving", projectName)
		if underInvested[task.ProjectID] {
			reason = fmt.Sprintf("%s needs more of your energy this week", projectName)
		}
		recommendations = append(recommendations, Recommendation{
			ID:            task.ID,
			Name:          task.Title,
			ProjectName:   projectName,
			Priority:      task.Priority,
			EstimatedTime: estimatedTimes[i%len(estimatedTimes)],
			Reason:        reason,
		})
	}
	return recommendations
}

func buildEnergySuggestions(s snapshot) []EnergySuggestion {
	suggestions := []EnergySuggestion{}
	for _, project := range s.projects {
		target, budgeted := s.targets[project.ID]
		if !budgeted {
			continue
		}
		actual := s.actualPercent(project.ID)

		status := EnergyBalanced
		suggestion := "Keep your current pace"
		if abs(actual-target) > 10 {
			status = EnergyUnbalanced
			suggestion = "Consider rebalancing your study time"
		}
		suggestions = append(suggestions, EnergySuggestion{
			ProjectID:   project.ID,
			ProjectName: project.Name,
			Target:      target,
			Actual:      actual,
			Status:      status,
			Suggestion:  suggestion,
		})
	}
	return suggestions
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
