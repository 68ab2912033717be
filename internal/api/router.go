package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/classpulse/classpulse/internal/services"
)

// Deps bundles the services the HTTP layer dispatches into.
type Deps struct {
	Auth      *services.AuthService
	Responses *services.ResponseService
	Analytics *services.AnalyticsService
	Rollups   *services.RollupService
	Export    *services.ExportService
	Registry  *services.RegistryService
}

// Register wires all routes onto the app. The submission endpoint is public;
// everything else sits behind admin auth.
func Register(app *fiber.App, deps Deps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})

	apiGroup := app.Group("/api")
	apiGroup.Post("/auth/login", handleLogin(deps.Auth))
	apiGroup.Post("/submit-responses", handleSubmit(deps.Responses))

	admin := apiGroup.Group("", RequireAuth(deps.Auth))

	admin.Get("/responses", handleListResponses(deps.Responses))
	admin.Get("/responses/analytics/questions", handleFormAnalytics(deps.Analytics))
	admin.Get("/responses/stats/overview", handleOverview(deps.Rollups))
	admin.Get("/responses/stats/faculty-performance", handleFacultyPerformance(deps.Rollups))
	admin.Get("/responses/export/csv", handleExportCSV(deps.Export))
	admin.Get("/responses/:id", handleGetResponse(deps.Responses))
	admin.Delete("/responses/:id", handleDeleteResponse(deps.Responses))

	admin.Post("/courses", handleCreateCourse(deps.Registry))
	admin.Get("/courses", handleListCourses(deps.Registry))
	admin.Get("/courses/:id", handleGetCourse(deps.Registry))
	admin.Delete("/courses/:id", handleDeleteCourse(deps.Registry))

	admin.Post("/subjects", handleCreateSubject(deps.Registry))
	admin.Get("/subjects", handleListSubjects(deps.Registry))
	admin.Put("/subjects/:id/faculty", handleAssignFaculty(deps.Registry))
	admin.Put("/subjects/:id/active", handleSetSubjectActive(deps.Registry))
	admin.Delete("/subjects/:id", handleDeleteSubject(deps.Registry))

	admin.Post("/faculty", handleCreateFaculty(deps.Registry))
	admin.Get("/faculty", handleListFaculty(deps.Registry))
	admin.Delete("/faculty/:id", handleDeleteFaculty(deps.Registry))

	admin.Post("/forms", handleCreateForm(deps.Registry))
	admin.Get("/forms", handleListForms(deps.Registry))
	admin.Get("/forms/:id", handleGetForm(deps.Registry))
	admin.Put("/forms/:id", handleUpdateForm(deps.Registry))
	admin.Put("/forms/:id/active", handleSetFormActive(deps.Registry))
	admin.Delete("/forms/:id", handleDeleteForm(deps.Registry))
}
