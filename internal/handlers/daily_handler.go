package handlers

import (
	"context"
	"errors"

	"hexaboard-service/internal/repository"
	"hexaboard-service/internal/service"
	"hexaboard-service/internal/utils"

	"github.com/gin-gonic/gin"
)

// DailyHandler serves the daily coding problem and the daily quiz.
type DailyHandler struct {
	Problems  *service.DailyProblemService
	Quizzes   *service.DailyQuizService
	Dashboard *service.DashboardService
}

func NewDailyHandler(problems *service.DailyProblemService, quizzes *service.DailyQuizService, dashboard *service.DashboardService) *DailyHandler {
	return &DailyHandler{Problems: problems, Quizzes: quizzes, Dashboard: dashboard}
}

func (h *DailyHandler) TodayProblem(c *gin.Context) {
	status, err := h.Problems.Today(context.Background(), currentUserID(c))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.NotFoundResponse(c, "User not found")
			return
		}
		utils.InternalErrorResponse(c, "Failed to load daily problem", err)
		return
	}
	utils.SuccessResponse(c, "Daily problem", status)
}

type problemSubmission struct {
	Question string `json:"question" binding:"required"`
	Code     string `json:"code" binding:"required"`
}

func (h *DailyHandler) SubmitProblem(c *gin.Context) {
	var req problemSubmission
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Question and code are required")
		return
	}
	userID := currentUserID(c)
	result, err := h.Problems.Submit(context.Background(), userID, req.Question, req.Code)
	if err != nil {
		if errors.Is(err, service.ErrAlreadySubmitted) {
			utils.ConflictResponse(c, "Daily problem already submitted today")
			return
		}
		if errors.Is(err, repository.ErrNotFound) {
			utils.NotFoundResponse(c, "User not found")
			return
		}
		utils.InternalErrorResponse(c, "Failed to submit solution", err)
		return
	}
	if result.Correct {
		h.Dashboard.Invalidate(context.Background(), userID)
	}
	utils.SuccessResponse(c, "Solution evaluated", result)
}

func (h *DailyHandler) ProblemHistory(c *gin.Context) {
	attempts, err := h.Problems.History(context.Background(), currentUserID(c))
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to load problem history", err)
		return
	}
	utils.SuccessResponse(c, "Problem history", attempts)
}

func (h *DailyHandler) TodayQuiz(c *gin.Context) {
	view, err := h.Quizzes.Today(context.Background(), currentUserID(c))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.NotFoundResponse(c, "User not found")
			return
		}
		utils.InternalErrorResponse(c, "Failed to load daily quiz", err)
		return
	}
	utils.SuccessResponse(c, "Daily quiz", view)
}

type quizSubmission struct {
	QuizID  string `json:"quiz_id" binding:"required"`
	Answers []int  `json:"answers" binding:"required"`
}

func (h *DailyHandler) SubmitQuiz(c *gin.Context) {
	var req quizSubmission
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Quiz ID and answers are required")
		return
	}
	userID := currentUserID(c)
	result, err := h.Quizzes.Submit(context.Background(), userID, req.QuizID, req.Answers)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAlreadySubmitted):
			utils.ConflictResponse(c, "Daily quiz already submitted today")
		case errors.Is(err, service.ErrQuizExpired):
			utils.ConflictResponse(c, "Quiz has expired, request today's quiz")
		case errors.Is(err, service.ErrAnswerCountMismatch):
			utils.BadRequestResponse(c, "Answer count does not match question count")
		case errors.Is(err, repository.ErrNotFound):
			utils.NotFoundResponse(c, "Quiz not found")
		default:
			utils.InternalErrorResponse(c, "Failed to submit quiz", err)
		}
		return
	}
	h.Dashboard.Invalidate(context.Background(), userID)
	utils.SuccessResponse(c, "Quiz graded", result)
}

func (h *DailyHandler) QuizHistory(c *gin.Context) {
	attempts, err := h.Quizzes.History(context.Background(), currentUserID(c))
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to load quiz history", err)
		return
	}
	utils.SuccessResponse(c, "Quiz history", attempts)
}
