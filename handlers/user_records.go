package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"

	"github.com/lumiere-fiap-soat-hackaton/fiap-lumiere-auth-lambda/failure"
	"github.com/lumiere-fiap-soat-hackaton/fiap-lumiere-auth-lambda/records"
)

// UserRecordsHandler возвращает записи обработки файлов пользователя
type UserRecordsHandler struct {
	base
	repo records.Repository
}

// NewUserRecordsHandler создает обработчик
func NewUserRecordsHandler(repo records.Repository) *UserRecordsHandler {
	return &UserRecordsHandler{
		base: newBase("UserRecordsFunction"),
		repo: repo,
	}
}

// Handle обрабатывает GET api/records?statuses=A,B
func (h *UserRecordsHandler) Handle(_ context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	start := time.Now()

	userID := authorizerValue(req, "userId")
	if userID == "" {
		return h.finish(start, h.fail(failure.NotAuthorized("User is not authorized to access this resource. Missing or invalid userId."), nil))
	}

	statuses := records.ParseStatuses(req.QueryStringParameters["statuses"])
	result := h.repo.List(userID, statuses)
	h.log.Debug("Returning %d records for user %s (statuses %v)", len(result), userID, statuses)

	return h.finish(start, jsonResponse(http.StatusOK, result, nil))
}
