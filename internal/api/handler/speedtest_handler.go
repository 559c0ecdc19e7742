package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/crackit360/practice-platform/internal/core/ports"
	"github.com/crackit360/practice-platform/internal/core/service"
)

type speedTestSubmitRequest struct {
	Topic       string   `json:"topic"        validate:"required"`
	Level       string   `json:"level"        validate:"required"`
	QuestionIDs []string `json:"question_ids" validate:"required,min=1"`
	// Null entries mark unanswered questions.
	Answers []*int `json:"answers" validate:"required"`
}

type timeLimitResponse struct {
	Level          string `json:"level"`
	TotalQuestions int    `json:"total_questions"`
	TimeLimit      int    `json:"time_limit"`
}

type SpeedTestHandler struct {
	speedTestService ports.SpeedTestService
}

func NewSpeedTestHandler(speedTestService ports.SpeedTestService) *SpeedTestHandler {
	return &SpeedTestHandler{speedTestService: speedTestService}
}

// TimeLimit returns the allowed seconds for a test of the given size.
//
// @Summary      Speed-test time limit
// @Tags         speed-test
// @Produce      json
// @Security     BearerAuth
// @Param        level      query     string  true   "Difficulty level"
// @Param        questions  query     int     false  "Number of questions (default 10)"
// @Success      200        {object}  timeLimitResponse
// @Router       /api/speed-test/time-limit [get]
func (h *SpeedTestHandler) TimeLimit(c echo.Context) error {
	level := c.QueryParam("level")
	questions, err := strconv.Atoi(c.QueryParam("questions"))
	if err != nil || questions <= 0 {
		questions = 10
	}

	return c.JSON(http.StatusOK, timeLimitResponse{
		Level:          level,
		TotalQuestions: questions,
		TimeLimit:      h.speedTestService.TimeLimit(level, questions),
	})
}

// Questions returns a random timed-test set with answers withheld.
//
// @Summary      Speed-test questions
// @Tags         speed-test
// @Produce      json
// @Security     BearerAuth
// @Param        topic  query     string  true   "Topic"
// @Param        level  query     string  true   "Difficulty level"
// @Param        limit  query     int     false  "Number of questions (default 10)"
// @Success      200    {array}   domain.Question
// @Failure      400    {object}  errorResponse
// @Router       /api/speed-test/questions [get]
func (h *SpeedTestHandler) Questions(c echo.Context) error {
	topic := c.QueryParam("topic")
	level := c.QueryParam("level")
	if topic == "" || level == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "topic and level are required")
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	questions, err := h.speedTestService.Questions(c.Request().Context(), topic, level, limit)
	if err != nil {
		return err
	}
	// domain.Question hides correct_answer in JSON, so the set is safe to
	// hand to the client mid-test.
	return c.JSON(http.StatusOK, questions)
}

// Submit grades a finished speed test.
//
// @Summary      Submit a speed test
// @Tags         speed-test
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      speedTestSubmitRequest  true  "Submission"
// @Success      200   {object}  ports.SpeedTestResult
// @Failure      400   {object}  errorResponse
// @Router       /api/speed-test/submit [post]
func (h *SpeedTestHandler) Submit(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req speedTestSubmitRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.speedTestService.Submit(c.Request().Context(), ports.SpeedTestSubmission{
		UserID:      user.ID,
		Topic:       req.Topic,
		Level:       req.Level,
		QuestionIDs: req.QuestionIDs,
		Answers:     flattenAnswers(req.Answers),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// flattenAnswers converts nullable option indexes to the internal encoding
// where Unanswered stands for a skipped question.
func flattenAnswers(answers []*int) []int {
	out := make([]int, len(answers))
	for i, a := range answers {
		if a == nil {
			out[i] = service.Unanswered
			continue
		}
		out[i] = *a
	}
	return out
}
