package storage

import (
	"context"
	"time"
)

// Ключи пользовательских метаданных загружаемого объекта
const (
	MetaUserID         = "user-id"
	MetaUserEmail      = "user-email"
	MetaSourceFileKey  = "source-file-key"
	MetaSourceFileName = "source-file-name"
)

// StorageItem - файл, для которого нужна подписанная ссылка
type StorageItem struct {
	Key      string            `json:"key"`
	FileName string            `json:"fileName"`
	FileType string            `json:"fileType"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// PresignedItem - результат подписи одного файла
type PresignedItem struct {
	Key          string            `json:"key"`
	FileName     string            `json:"fileName"`
	PresignedURL string            `json:"presignedUrl"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

// URLSigner выпускает подписанные ссылки конкретного провайдера
type URLSigner interface {
	// PresignPut подписывает PUT с Content-Type и метаданными
	PresignPut(ctx context.Context, bucket string, item StorageItem, expires time.Duration) (string, error)

	// PresignGet подписывает GET
	PresignGet(ctx context.Context, bucket, key string, expires time.Duration) (string, error)

	// CheckBucket проверяет доступность бакета
	CheckBucket(ctx context.Context, bucket string) error
}

// URLIssuer - операции пакетной выдачи ссылок, которые используют обработчики
type URLIssuer interface {
	GetBatchUploadUrls(ctx context.Context, items []StorageItem, expires time.Duration) ([]PresignedItem, error)
	GetBatchDownloadUrls(ctx context.Context, items []StorageItem, expires time.Duration) ([]PresignedItem, error)
}
