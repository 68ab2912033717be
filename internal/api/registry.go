package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/classpulse/classpulse/internal/services"
)

func handleCreateCourse(svc *services.RegistryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in services.CourseInput
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
		}
		course, err := svc.CreateCourse(in)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(course)
	}
}

func handleListCourses(svc *services.RegistryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		courses, err := svc.ListCourses()
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"courses": courses, "count": len(courses)})
	}
}

func handleGetCourse(svc *services.RegistryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		course, err := svc.GetCourse(c.Params("id"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(course)
	}
}

func handleDeleteCourse(svc *services.RegistryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.DeleteCourse(c.Params("id")); err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"message": "course deleted"})
	}
}

func handleCreateSubject(svc *services.RegistryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in services.SubjectInput
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
		}
		subject, err := svc.CreateSubject(in)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(subject)
	}
}

func handleListSubjects(svc *services.RegistryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		subjects, err := svc.ListSubjects()
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"subjects": subjects, "count": len(subjects)})
	}
}

func handleAssignFaculty(svc *services.RegistryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in struct {
			FacultyID string `json:"faculty_id"`
		}
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
		}
		subject, err := svc.AssignFaculty(c.Params("id"), in.FacultyID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(subject)
	}
}

func handleSetSubjectActive(svc *services.RegistryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in struct {
			Active bool `json:"active"`
		}
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
		}
		subject, err := svc.SetSubjectActive(c.Params("id"), in.Active)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(subject)
	}
}

func handleDeleteSubject(svc *services.RegistryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.DeleteSubject(c.Params("id")); err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"message": "subject deleted"})
	}
}

func handleCreateFaculty(svc *services.RegistryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in services.FacultyInput
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
		}
		faculty, err := svc.CreateFaculty(in)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(faculty)
	}
}

func handleListFaculty(svc *services.RegistryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		faculty, err := svc.ListFaculty()
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"faculty": faculty, "count": len(faculty)})
	}
}

func handleDeleteFaculty(svc *services.RegistryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.DeleteFaculty(c.Params("id")); err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"message": "faculty deleted"})
	}
}

func handleCreateForm(svc *services.RegistryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in services.FormInput
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
		}
		form, err := svc.CreateForm(in)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(form)
	}
}

func handleListForms(svc *services.RegistryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		forms, err := svc.ListForms()
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"forms": forms, "count": len(forms)})
	}
}

func handleGetForm(svc *services.RegistryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		form, err := svc.GetForm(c.Params("id"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(form)
	}
}

func handleUpdateForm(svc *services.RegistryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in services.FormInput
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
		}
		form, err := svc.UpdateForm(c.Params("id"), in)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(form)
	}
}

func handleSetFormActive(svc *services.RegistryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in struct {
			Active bool `json:"active"`
		}
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
		}
		form, err := svc.SetFormActive(c.Params("id"), in.Active)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(form)
	}
}

func handleDeleteForm(svc *services.RegistryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.DeleteForm(c.Params("id")); err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"message": "form deleted"})
	}
}
