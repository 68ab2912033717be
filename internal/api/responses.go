package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/classpulse/classpulse/internal/services"
)

// criteriaFromQuery builds filter criteria from the shared query parameters.
func criteriaFromQuery(c *fiber.Ctx) services.FilterCriteria {
	return services.FilterCriteria{
		CourseID:    c.Query("course"),
		Year:        c.QueryInt("year"),
		Semester:    c.QueryInt("semester"),
		SubjectID:   c.Query("subject"),
		FacultyID:   c.Query("faculty"),
		FormID:      c.Query("formId"),
		StudentName: c.Query("studentName"),
		RollNumber:  c.Query("rollNumber"),
	}
}

func handleListResponses(svc *services.ResponseService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, err := svc.List(criteriaFromQuery(c), c.QueryInt("page", 1), c.QueryInt("limit", 10))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(page)
	}
}

func handleGetResponse(svc *services.ResponseService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rec, err := svc.Get(c.Params("id"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(rec)
	}
}

func handleDeleteResponse(svc *services.ResponseService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.Params("id")); err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"message": "response deleted"})
	}
}

func handleFormAnalytics(svc *services.AnalyticsService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		criteria := criteriaFromQuery(c)
		criteria.SubjectID = c.Query("subjectId", criteria.SubjectID)
		criteria.CourseID = c.Query("courseId", criteria.CourseID)
		report, err := svc.FormAnalytics(c.Query("formId"), criteria)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(report)
	}
}

func handleOverview(svc *services.RollupService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		report, err := svc.Overview(criteriaFromQuery(c))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(report)
	}
}

func handleFacultyPerformance(svc *services.RollupService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		criteria := criteriaFromQuery(c)
		criteria.FacultyID = ""
		report, err := svc.Performance(c.Query("facultyId"), criteria)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(report)
	}
}

func handleExportCSV(svc *services.ExportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.ExportCSV(c.Query("formId"), criteriaFromQuery(c))
		if err != nil {
			return respondError(c, err)
		}
		c.Set(fiber.HeaderContentType, res.ContentType)
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+res.Filename+`"`)
		return c.Send(res.Data)
	}
}
