package records

import (
	"strings"
)

// RecordStatus - статус обработки файла пользователя
type RecordStatus string

const (
	StatusPending   RecordStatus = "PENDING"
	StatusCompleted RecordStatus = "COMPLETED"
	StatusFailed    RecordStatus = "FAILED"
)

// UserRecord - запись об обработке исходного файла
type UserRecord struct {
	ID             string       `json:"id"`
	SourceFileKey  string       `json:"sourceFileKey"`
	SourceFileName string       `json:"sourceFileName"`
	ResultFileKey  *string      `json:"resultFileKey"`
	ResultFileName *string      `json:"resultFileName"`
	Status         RecordStatus `json:"status"`
	CreatedAt      string       `json:"createdAt"`
	UpdatedAt      *string      `json:"updatedAt"`
}

// Repository - источник записей пользователя
type Repository interface {
	List(userID string, statuses []RecordStatus) []UserRecord
}

// ParseStatuses разбирает параметр "statuses" (через запятую).
// Пустая строка дает nil, то есть без фильтра.
func ParseStatuses(raw string) []RecordStatus {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	statuses := make([]RecordStatus, 0, len(parts))
	for _, p := range parts {
		statuses = append(statuses, RecordStatus(p))
	}
	return statuses
}

// Filter оставляет записи с перечисленными статусами, сохраняя порядок.
// Пустой список статусов возвращает все записи.
func Filter(all []UserRecord, statuses []RecordStatus) []UserRecord {
	if len(statuses) == 0 {
		return all
	}

	wanted := make(map[RecordStatus]struct{}, len(statuses))
	for _, s := range statuses {
		wanted[s] = struct{}{}
	}

	filtered := make([]UserRecord, 0, len(all))
	for _, r := range all {
		if _, ok := wanted[r.Status]; ok {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
