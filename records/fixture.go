package records

// FixtureRepository отдает статический набор записей, одинаковый для любого пользователя.
// Постоянное хранилище записей появится вместе с сервисом обработки.
type FixtureRepository struct {
	records []UserRecord
}

// NewFixtureRepository создает репозиторий с демонстрационными данными
func NewFixtureRepository() *FixtureRepository {
	return &FixtureRepository{records: fixture()}
}

// List реализует Repository
func (f *FixtureRepository) List(_ string, statuses []RecordStatus) []UserRecord {
	return Filter(f.records, statuses)
}

func str(s string) *string { return &s }

func fixture() []UserRecord {
	return []UserRecord{
		{
			ID:             "a2f8e631-e32b-4a89-a92f-6e756a5432d1",
			SourceFileKey:  "sources/abc-123/1718832000000-video1.mp4",
			SourceFileName: "video1.mp4",
			ResultFileKey:  str("results/abc-123/1718832000000-video1.mp4.zip"),
			ResultFileName: str("video1.mp4.zip"),
			Status:         StatusCompleted,
			CreatedAt:      "2024-06-20T15:00:00Z",
			UpdatedAt:      str("2024-06-20T15:03:20Z"),
		},
		{
			ID:             "b7c5d902-1a4f-48e7-b83e-9d25f8e63c04",
			SourceFileKey:  "sources/abc-123/1718835600000-video2.mp4",
			SourceFileName: "video2.mp4",
			Status:         StatusPending,
			CreatedAt:      "2024-06-20T16:00:00Z",
		},
		{
			ID:             "c9e2a1b8-7d56-4f3c-9810-42a8e7d93b15",
			SourceFileKey:  "sources/abc-123/1718839200000-video3.mp4",
			SourceFileName: "video3.mp4",
			Status:         StatusFailed,
			CreatedAt:      "2024-06-20T17:00:00Z",
			UpdatedAt:      str("2024-06-20T17:05:22Z"),
		},
		{
			ID:             "d1f4c6e3-5b2a-48d9-a73e-6c94f5b21d87",
			SourceFileKey:  "sources/abc-123/1718842800000-palestra.mp4",
			SourceFileName: "palestra.mp4",
			ResultFileKey:  str("results/abc-123/1718842800000-palestra.mp4.zip"),
			ResultFileName: str("palestra.mp4.zip"),
			Status:         StatusCompleted,
			CreatedAt:      "2024-06-20T18:00:00Z",
			UpdatedAt:      str("2024-06-20T18:05:40Z"),
		},
		{
			ID:             "e5a8d2f7-9c3b-47e6-b52d-8f1e3c7a9456",
			SourceFileKey:  "sources/abc-123/1718846400000-aula01.mp4",
			SourceFileName: "aula01.mp4",
			Status:         StatusPending,
			CreatedAt:      "2024-06-20T19:00:00Z",
		},
		{
			ID:             "f2e1d3c5-6a8b-49f7-b0a9-7c4e5d2f1b83",
			SourceFileKey:  "sources/abc-123/1718850000000-apresentacao-final.mp4",
			SourceFileName: "apresentacao-final.mp4",
			ResultFileKey:  str("results/abc-123/1718850000000-apresentacao-final.mp4.zip"),
			ResultFileName: str("apresentacao-final.mp4.zip"),
			Status:         StatusCompleted,
			CreatedAt:      "2024-06-20T20:00:00Z",
			UpdatedAt:      str("2024-06-20T20:02:00Z"),
		},
		{
			ID:             "g7h9j2k4-5l6m-4n8p-q1r2-s3t5u7v9w0x0",
			SourceFileKey:  "sources/abc-123/1718853600000-depoimento.mp4",
			SourceFileName: "depoimento.mp4",
			Status:         StatusFailed,
			CreatedAt:      "2024-06-20T21:00:00Z",
			UpdatedAt:      str("2024-06-20T21:05:00Z"),
		},
	}
}
