package rest

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/aliskhannn/vocab-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/vocab-quiz-bot/internal/service"
)

type QuizService interface {
	ListGroups(ctx context.Context) ([]entities.GroupSummary, error)
	GenerateQuestions(ctx context.Context, group string) ([]entities.Question, error)
}

// Handler serves the JSON API used by the browser front-end.
type Handler struct {
	quizService QuizService
}

func NewHandler(quizService QuizService) *Handler {
	return &Handler{quizService: quizService}
}

// RegisterRoutes mounts the API on app.
func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/health", h.Health)

	api := app.Group("/api/v1")
	api.Get("/groups", h.ListGroups)
	api.Get("/groups/:group/questions", h.GetQuestions)
	api.Post("/results", h.ComputeResult)
}

// Health handles GET /health
func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{Status: "ok"})
}

// ListGroups handles GET /api/v1/groups
func (h *Handler) ListGroups(c *fiber.Ctx) error {
	groups, err := h.quizService.ListGroups(c.UserContext())
	if err != nil {
		return fmt.Errorf("list groups: %w", err)
	}
	return c.JSON(toGroupResponses(groups))
}

// GetQuestions handles GET /api/v1/groups/:group/questions.
// Every call returns a freshly shuffled set.
func (h *Handler) GetQuestions(c *fiber.Ctx) error {
	group := c.Params("group")

	questions, err := h.quizService.GenerateQuestions(c.UserContext(), group)
	if err != nil {
		return err
	}
	return c.JSON(toQuestionsResponse(group, questions))
}

// ComputeResult handles POST /api/v1/results
func (h *Handler) ComputeResult(c *fiber.Ctx) error {
	var req ResultRequest
	if err := c.BodyParser(&req); err != nil {
		return fmt.Errorf("%w: %v", errInvalidBody, err)
	}
	if req.Score == nil || req.Total == nil {
		return errInvalidBody
	}

	result, err := service.Result(*req.Score, *req.Total)
	if err != nil {
		return err
	}
	return c.JSON(result)
}
