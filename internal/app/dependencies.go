package app

import (
	"database/sql"

	"github.com/yann-lu/mind-balance/internal/config"
	"github.com/yann-lu/mind-balance/internal/event_bus"
	"github.com/yann-lu/mind-balance/internal/utils"
	"github.com/yann-lu/mind-balance/pkg/ai"
	"github.com/yann-lu/mind-balance/pkg/analysis"
	"github.com/yann-lu/mind-balance/pkg/budget"
	"github.com/yann-lu/mind-balance/pkg/planner"
	"github.com/yann-lu/mind-balance/pkg/project"
	"github.com/yann-lu/mind-balance/pkg/stats"
	"github.com/yann-lu/mind-balance/pkg/task"
	"github.com/yann-lu/mind-balance/pkg/timelog"
	"github.com/yann-lu/mind-balance/pkg/user"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus *event_bus.EventBus
	Clock    utils.Clock

	UserService user.Service
	UserHandler *user.Handler

	BudgetRepo    budget.BudgetRepo
	BudgetService *budget.BudgetServiceImpl
	BudgetHandler *budget.BudgetHandler

	ProjectRepo    project.ProjectRepo
	ProjectService *project.ProjectServiceImpl
	ProjectHandler *project.ProjectHandler

	TaskRepo    task.TaskRepo
	TaskService *task.TaskServiceImpl
	TaskHandler *task.TaskHandler

	TimeLogRepo    timelog.TimeLogRepo
	TimeLogService *timelog.TimeLogServiceImpl
	TimeLogHandler *timelog.TimeLogHandler
	ExportHandler  *timelog.ExportHandler

	AnalysisRepo    analysis.AnalysisRepo
	AnalysisService *analysis.AnalysisServiceImpl
	AnalysisHandler *analysis.AnalysisHandler

	StatsRepo    stats.StatsRepo
	StatsService *stats.StatsServiceImpl
	StatsHandler *stats.StatsHandler

	ProviderFactory *ai.ProviderFactory
	AIConfigRepo    ai.ConfigRepo
	AIConfigService *ai.ConfigServiceImpl
	AIConfigHandler *ai.ConfigHandler

	PlannerRepo    planner.PlannerRepo
	PlannerService *planner.PlannerServiceImpl
	PlannerHandler *planner.PlannerHandler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *sql.DB, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.EventBus = event_bus.NewEventBus()
	deps.Clock = utils.SystemClock{}

	deps.UserService = user.NewUserService(user.NewUserRepo(db))
	deps.UserHandler = user.NewHandler(deps.UserService)

	deps.BudgetRepo = budget.NewBudgetRepo(db)
	deps.BudgetService = budget.NewBudgetService(deps.BudgetRepo, deps.Clock)
	deps.BudgetHandler = budget.NewBudgetHandler(deps.BudgetService)

	deps.ProjectRepo = project.NewProjectRepo(db)
	deps.ProjectService = project.NewProjectService(deps.ProjectRepo, deps.BudgetService, deps.Clock)
	deps.ProjectHandler = project.NewProjectHandler(deps.ProjectService)

	deps.TaskRepo = task.NewTaskRepo(db)
	deps.TaskService = task.NewTaskService(deps.TaskRepo, deps.EventBus, deps.Clock)
	deps.TaskHandler = task.NewTaskHandler(deps.TaskService)

	deps.TimeLogRepo = timelog.NewTimeLogRepo(db)
	deps.TimeLogService = timelog.NewTimeLogService(deps.TimeLogRepo, deps.Clock)
	deps.TimeLogHandler = timelog.NewTimeLogHandler(deps.TimeLogService)
	deps.ExportHandler = timelog.NewExportHandler(deps.TimeLogService)
	// Completing a task closes its running timer.
	deps.TimeLogService.SubscribeToTaskCompletions(deps.EventBus)

	deps.AnalysisRepo = analysis.NewAnalysisRepo(db)
	deps.AnalysisService = analysis.NewAnalysisService(deps.AnalysisRepo, deps.BudgetService, deps.Clock)
	deps.AnalysisHandler = analysis.NewAnalysisHandler(deps.AnalysisService)

	deps.StatsRepo = stats.NewStatsRepo(db)
	deps.StatsService = stats.NewStatsService(deps.StatsRepo, deps.BudgetService, deps.Clock)
	deps.StatsHandler = stats.NewStatsHandler(deps.StatsService)

	deps.ProviderFactory = ai.NewProviderFactory(cfg.AI)
	deps.AIConfigRepo = ai.NewConfigRepo(db)
	deps.AIConfigService = ai.NewConfigService(deps.AIConfigRepo, deps.ProviderFactory)
	deps.AIConfigHandler = ai.NewConfigHandler(deps.AIConfigService)

	deps.PlannerRepo = planner.NewPlannerRepo(db)
	deps.PlannerService = planner.NewPlannerService(deps.PlannerRepo, deps.BudgetService, deps.AIConfigService, deps.Clock)
	deps.PlannerHandler = planner.NewPlannerHandler(deps.PlannerService)

	return deps
}
