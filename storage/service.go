package storage

import (
	"context"
	"sync"
	"time"

	"github.com/lumiere-fiap-soat-hackaton/fiap-lumiere-auth-lambda/failure"
	"github.com/lumiere-fiap-soat-hackaton/fiap-lumiere-auth-lambda/logger"
)

// Service выдает пакеты подписанных ссылок для одного бакета
type Service struct {
	signer        URLSigner
	bucket        string
	defaultExpiry time.Duration
	checkTimeout  time.Duration

	// Семафор для ограничения количества одновременных подписей
	semaphore chan struct{}
	metrics   *Metrics
}

// NewService создает сервис. Пустое имя бакета дает Unexpected.
func NewService(signer URLSigner, cfg Config) (*Service, error) {
	if cfg.Bucket == "" {
		return nil, failure.Unexpected("Error instantiating the StorageService: Bucket name is missing")
	}
	if signer == nil {
		return nil, failure.Unexpected("Error instantiating the StorageService: signer is missing")
	}

	defaults := DefaultConfig()
	if cfg.DefaultExpiry <= 0 {
		cfg.DefaultExpiry = defaults.DefaultExpiry
	}
	if cfg.MaxConcurrentOperations <= 0 {
		cfg.MaxConcurrentOperations = defaults.MaxConcurrentOperations
	}
	if cfg.CheckTimeout <= 0 {
		cfg.CheckTimeout = defaults.CheckTimeout
	}

	return &Service{
		signer:        signer,
		bucket:        cfg.Bucket,
		defaultExpiry: cfg.DefaultExpiry,
		checkTimeout:  cfg.CheckTimeout,
		semaphore:     make(chan struct{}, cfg.MaxConcurrentOperations),
		metrics:       NewMetrics(),
	}, nil
}

// Bucket возвращает имя обслуживаемого бакета
func (s *Service) Bucket() string {
	return s.bucket
}

// GetBatchUploadUrls подписывает PUT для каждого элемента.
// expires <= 0 означает срок по умолчанию.
func (s *Service) GetBatchUploadUrls(ctx context.Context, items []StorageItem, expires time.Duration) ([]PresignedItem, error) {
	expires = s.expiry(expires)
	return s.fanOut("upload", items, func(item StorageItem) (PresignedItem, error) {
		u, err := s.signer.PresignPut(ctx, s.bucket, item, expires)
		if err != nil {
			return PresignedItem{}, err
		}
		return PresignedItem{
			Key:          item.Key,
			FileName:     item.FileName,
			PresignedURL: u,
			Metadata:     item.Metadata,
		}, nil
	})
}

// GetBatchDownloadUrls подписывает GET для каждого элемента. Метаданные в ответ не попадают.
func (s *Service) GetBatchDownloadUrls(ctx context.Context, items []StorageItem, expires time.Duration) ([]PresignedItem, error) {
	expires = s.expiry(expires)
	return s.fanOut("download", items, func(item StorageItem) (PresignedItem, error) {
		u, err := s.signer.PresignGet(ctx, s.bucket, item.Key, expires)
		if err != nil {
			return PresignedItem{}, err
		}
		return PresignedItem{
			Key:          item.Key,
			FileName:     item.FileName,
			PresignedURL: u,
		}, nil
	})
}

// Ping проверяет доступность бакета (readiness)
func (s *Service) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.checkTimeout)
	defer cancel()

	if err := s.signer.CheckBucket(ctx, s.bucket); err != nil {
		s.metrics.BucketReachable.Set(0)
		logger.Warn("Bucket %s is not reachable: %v", s.bucket, err)
		return failure.ServiceProvider(err.Error(), err)
	}
	s.metrics.BucketReachable.Set(1)
	return nil
}

func (s *Service) expiry(expires time.Duration) time.Duration {
	if expires <= 0 {
		return s.defaultExpiry
	}
	return expires
}

// fanOut запускает подпись всех элементов параллельно и дожидается всех.
// Порядок результата совпадает с порядком входа; при любой ошибке
// возвращается первая зафиксированная ошибка без частичных результатов.
func (s *Service) fanOut(operation string, items []StorageItem, sign func(StorageItem) (PresignedItem, error)) ([]PresignedItem, error) {
	start := time.Now()
	s.metrics.BatchSize.WithLabelValues(operation).Observe(float64(len(items)))
	defer func() {
		s.metrics.BatchLatency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	}()

	results := make([]PresignedItem, len(items))

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	for i, item := range items {
		wg.Add(1)
		go func(i int, item StorageItem) {
			defer wg.Done()

			s.semaphore <- struct{}{}
			defer func() { <-s.semaphore }()

			res, err := sign(item)
			if err != nil {
				s.metrics.PresignTotal.WithLabelValues(operation, "failure").Inc()
				logger.Debug("Presign %s failed for key %s: %v", operation, item.Key, err)

				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return
			}

			s.metrics.PresignTotal.WithLabelValues(operation, "success").Inc()
			results[i] = res
		}(i, item)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, failure.ServiceProvider(firstErr.Error(), firstErr)
	}

	logger.Debug("Presigned %d %s URLs for bucket %s", len(results), operation, s.bucket)
	return results, nil
}
