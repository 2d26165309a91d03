package planner

import (
	"encoding/json"
	"fmt"
	"strings"
)

const systemPrompt = "You are a study planning assistant. You help students balance their energy across projects. Respond with pure JSON only."

type promptProject struct {
	Name          string `json:"name"`
	TargetPercent int    `json:"target_percent"`
	ActualPercent int    `json:"actual_percent"`
	Status        string `json:"status"`
}

type promptTask struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	ProjectID string `json:"project_id"`
	Priority  string `json:"priority"`
}

const maxPromptTasks = 10

// buildPlanPrompt renders the week's aggregates into the instruction sent
// to the AI provider.
func buildPlanPrompt(s snapshot) string {
	projects := make([]promptProject, 0, len(s.projects))
	for _, project := range s.projects {
		target := s.targets[project.ID]
		actual := s.actualPercent(project.ID)
		status := "normal"
		if actual > target+10 {
			status = "over"
		} else if actual < target-10 {
			status = "under"
		}
		projects = append(projects, promptProject{
			Name:          project.Name,
			TargetPercent: target,
			ActualPercent: actual,
			Status:        status,
		})
	}

	pending := s.pending
	if len(pending) > maxPromptTasks {
		pending = pending[:maxPromptTasks]
	}
	tasks := make([]promptTask, 0, len(pending))
	for _, task := range pending {
		tasks = append(tasks, promptTask{
			ID:        task.ID,
			Title:     task.Title,
			ProjectID: task.ProjectID,
			Priority:  task.Priority,
		})
	}

	projectsJSON, _ := json.MarshalIndent(projects, "", "  ")
	tasksJSON, _ := json.MarshalIndent(tasks, "", "  ")

	var sb strings.Builder
	sb.WriteString("Analyze the data below and produce today's study plan.\n\n")
	sb.WriteString("## Projects\n")
	sb.Write(projectsJSON)
	sb.WriteString("\n\n## Pending tasks\n")
	sb.Write(tasksJSON)
	sb.WriteString("\n\nReturn a JSON object with exactly these fields:\n")
	sb.WriteString(`{
  "warnings": [{"title": "...", "message": "...", "level": "high|medium|low", "suggestions": [{"text": "...", "action": "..."}]}],
  "recommendations": [{"id": "task id", "name": "task title", "projectName": "...", "priority": "high|medium|low", "estimatedTime": "minutes", "reason": "..."}],
  "energySuggestions": [{"projectName": "...", "target": 0, "actual": 0, "status": "balanced|unbalanced", "suggestion": "..."}],
  "dailyTips": ["...", "..."]
}`)
	sb.WriteString("\n\nRules:\n")
	sb.WriteString(fmt.Sprintf("1. Recommend at most %d tasks and only use real pending task ids\n", maxRecommendations))
	sb.WriteString("2. Prefer tasks from under-invested projects\n")
	sb.WriteString("3. Keep every suggestion concrete and actionable\n")
	sb.WriteString("4. Return pure JSON without any surrounding text\n")
	return sb.String()
}

// stripMarkdownFences removes a surrounding ``` or ```json code block,
// which chat models add despite being told not to.
func stripMarkdownFences(response string) string {
	cleaned := strings.TrimSpace(response)
	if strings.HasPrefix(cleaned, "```json") {
		cleaned = cleaned[len("```json"):]
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = cleaned[len("```"):]
	}
	cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")
	return strings.TrimSpace(cleaned)
}

// parsePlanResponse decodes an AI response into a plan.
func parsePlanResponse(response string) (Plan, error) {
	var plan Plan
	if err := json.Unmarshal([]byte(stripMarkdownFences(response)), &plan); err != nil {
		return Plan{}, fmt.Errorf("malformed plan response: %w", err)
	}
	return plan, nil
}
