package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/crackit360/practice-platform/internal/core/domain"
	"github.com/crackit360/practice-platform/internal/core/ports"
)

// questionWithAnswer augments a question with the fields hidden from the
// default JSON rendering. Practice modes reveal the answer so the client can
// grade locally; timed modes keep using domain.Question.
type questionWithAnswer struct {
	domain.Question
	CorrectAnswer int `json:"correct_answer"`
}

func revealAnswers(questions []domain.Question) []questionWithAnswer {
	out := make([]questionWithAnswer, len(questions))
	for i, q := range questions {
		out[i] = questionWithAnswer{Question: q, CorrectAnswer: q.CorrectAnswer}
	}
	return out
}

type PracticeHandler struct {
	practiceService ports.PracticeService
}

func NewPracticeHandler(practiceService ports.PracticeService) *PracticeHandler {
	return &PracticeHandler{practiceService: practiceService}
}

// FreePractice returns every question for a section and topic, answers included.
//
// @Summary      Free practice questions
// @Tags         practice
// @Produce      json
// @Security     BearerAuth
// @Param        section  query     string  true  "Section"
// @Param        topic    query     string  true  "Topic"
// @Success      200      {array}   questionWithAnswer
// @Failure      400      {object}  errorResponse
// @Router       /api/practice/free [get]
func (h *PracticeHandler) FreePractice(c echo.Context) error {
	section := c.QueryParam("section")
	topic := c.QueryParam("topic")
	if section == "" || topic == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "section and topic are required")
	}

	questions, err := h.practiceService.FreePractice(c.Request().Context(), section, topic)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, revealAnswers(questions))
}

// PracticeSet returns a random set of questions for a section, topic and
// difficulty, answers included.
//
// @Summary      Random practice set
// @Tags         practice
// @Produce      json
// @Security     BearerAuth
// @Param        section     query     string  true   "Section"
// @Param        topic       query     string  true   "Topic"
// @Param        difficulty  query     string  true   "Difficulty"
// @Param        limit       query     int     false  "Number of questions (default 15, max 50)"
// @Success      200         {array}   questionWithAnswer
// @Failure      400         {object}  errorResponse
// @Router       /api/practice/questions [get]
func (h *PracticeHandler) PracticeSet(c echo.Context) error {
	section := c.QueryParam("section")
	topic := c.QueryParam("topic")
	difficulty := c.QueryParam("difficulty")
	if section == "" || topic == "" || difficulty == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "section, topic and difficulty are required")
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	questions, err := h.practiceService.PracticeSet(c.Request().Context(), section, topic, difficulty, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, revealAnswers(questions))
}
