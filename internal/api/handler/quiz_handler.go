package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/crackit360/practice-platform/internal/core/ports"
)

type quizSubmitRequest struct {
	Track       string   `json:"track"        validate:"required"`
	QuestionIDs []string `json:"question_ids" validate:"required,min=1"`
	// Null entries mark unanswered questions.
	Answers   []*int `json:"answers" validate:"required"`
	TimeTaken int    `json:"time_taken" validate:"gte=0"`
}

type QuizHandler struct {
	quizService ports.QuizService
}

func NewQuizHandler(quizService ports.QuizService) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

// Submit grades and records a daily-quiz attempt.
//
// @Summary      Submit a daily quiz
// @Tags         quiz
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      quizSubmitRequest  true  "Submission"
// @Success      200   {object}  domain.QuizSubmission
// @Failure      400   {object}  errorResponse
// @Router       /api/quiz/submit [post]
func (h *QuizHandler) Submit(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req quizSubmitRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	submission, err := h.quizService.Submit(c.Request().Context(), ports.QuizSubmissionInput{
		UserID:      user.ID,
		UserName:    user.Name,
		Track:       req.Track,
		QuestionIDs: req.QuestionIDs,
		Answers:     flattenAnswers(req.Answers),
		TimeTaken:   req.TimeTaken,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, submission)
}

// Results returns the caller's recent quiz history, newest first.
//
// @Summary      List quiz results
// @Tags         quiz
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Maximum entries (default 50)"
// @Success      200    {array}   domain.QuizSubmission
// @Router       /api/quiz/results [get]
func (h *QuizHandler) Results(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	results, err := h.quizService.Results(c.Request().Context(), user.ID, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, results)
}
