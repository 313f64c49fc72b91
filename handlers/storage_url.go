package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"

	"github.com/lumiere-fiap-soat-hackaton/fiap-lumiere-auth-lambda/failure"
	"github.com/lumiere-fiap-soat-hackaton/fiap-lumiere-auth-lambda/storage"
)

// FileItem - элемент тела запроса api/storage/{action}
type FileItem struct {
	FileName string `json:"fileName"`
	FileType string `json:"fileType"`
}

// StorageURLHandler выдает пакеты подписанных ссылок на загрузку и скачивание
type StorageURLHandler struct {
	base
	issuer  storage.URLIssuer
	expires time.Duration
}

// NewStorageURLHandler создает обработчик. expires <= 0 означает срок хранилища по умолчанию.
func NewStorageURLHandler(issuer storage.URLIssuer, expires time.Duration) *StorageURLHandler {
	return &StorageURLHandler{
		base:    newBase("StorageUrlFunction"),
		issuer:  issuer,
		expires: expires,
	}
}

type storageURLInput struct {
	action    StorageAction
	userID    string
	userEmail string
	items     []FileItem
	bodyErr   error
}

// Handle обрабатывает POST api/storage/{action}
func (h *StorageURLHandler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	start := time.Now()
	h.log.Info("Received storage-url request: %s %s", req.HTTPMethod, req.Path)

	in := h.extract(req)
	if err := h.validate(in); err != nil {
		return h.finish(start, h.fail(err, nil))
	}

	result, err := h.dispatch(ctx, in)
	if err != nil {
		return h.finish(start, h.fail(err, nil))
	}

	return h.finish(start, jsonResponse(http.StatusOK, result, nil))
}

func (h *StorageURLHandler) extract(req events.APIGatewayProxyRequest) storageURLInput {
	in := storageURLInput{
		action:    ParseStorageAction(req.PathParameters["action"]),
		userID:    authorizerValue(req, "userId"),
		userEmail: authorizerValue(req, "email"),
	}
	in.bodyErr = decodeBody(req, &in.items)
	h.log.Debug("Storage-url request for action %s, user %q, %d items", in.action, in.userID, len(in.items))
	return in
}

func (h *StorageURLHandler) validate(in storageURLInput) error {
	if in.action == StorageActionUnknown {
		return failure.InvalidInput("URL pathParam for StorageUrl is missing or invalid. (expected: api/storage/{upload-url|download-url}")
	}
	if in.userID == "" {
		return failure.NotAuthorized("User is not authorized to access this resource. Missing or invalid userId.")
	}
	if in.bodyErr != nil {
		return failure.InvalidInput(fmt.Sprintf("Request body is missing or invalid. Expected a list of file items. (%v)", in.bodyErr)).WithCause(in.bodyErr)
	}
	if len(in.items) == 0 {
		return failure.InvalidInput("Request body is missing or invalid. Expected a list of file items.")
	}
	for i, item := range in.items {
		if item.FileName == "" {
			return failure.InvalidInput(fmt.Sprintf("File item at index %d is missing fileName.", i))
		}
	}
	return nil
}

// dispatch строит ключи и метаданные, затем вызывает пакетную операцию действия
func (h *StorageURLHandler) dispatch(ctx context.Context, in storageURLInput) ([]storage.PresignedItem, error) {
	items := make([]storage.StorageItem, len(in.items))
	for i, item := range in.items {
		key := fmt.Sprintf("%s/%s/%s", in.action.KeyPrefix(), in.userID, item.FileName)
		items[i] = storage.StorageItem{
			Key:      key,
			FileName: item.FileName,
			FileType: item.FileType,
			Metadata: map[string]string{
				storage.MetaUserID:         in.userID,
				storage.MetaUserEmail:      in.userEmail,
				storage.MetaSourceFileKey:  key,
				storage.MetaSourceFileName: item.FileName,
			},
		}
	}

	switch in.action {
	case StorageActionUploadURL:
		return h.issuer.GetBatchUploadUrls(ctx, items, h.expires)
	case StorageActionDownloadURL:
		return h.issuer.GetBatchDownloadUrls(ctx, items, h.expires)
	default:
		return nil, failure.Unexpected(fmt.Sprintf("unhandled storage action %s", in.action))
	}
}
