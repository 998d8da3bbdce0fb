package processor

import (
	"context"

	"storetrack/pkg/logger"

	"github.com/robfig/cron/v3"
)

// LowStockAlerter отправляет сводку по товарам с низким остатком
type LowStockAlerter interface {
	PublishLowStockAlert(ctx context.Context) error
}

// CronScheduler запускает фоновую проверку низких остатков по расписанию
type CronScheduler struct {
	cron    *cron.Cron
	alerter LowStockAlerter
}

// NewCronScheduler создает новый планировщик фоновых задач
func NewCronScheduler(alerter LowStockAlerter) *CronScheduler {
	return &CronScheduler{
		cron:    cron.New(),
		alerter: alerter,
	}
}

// Start регистрирует задачу по cron-выражению и запускает планировщик
func (s *CronScheduler) Start(ctx context.Context, schedule string) error {
	logger.Info().Str("schedule", schedule).Msg("starting cron scheduler")

	_, err := s.cron.AddFunc(schedule, func() {
		logger.Info().Msg("cron job triggered: checking low stock products")

		if err := s.alerter.PublishLowStockAlert(ctx); err != nil {
			logger.Error().Err(err).Msg("failed to publish low stock alert")
		}
	})

	if err != nil {
		return err
	}

	s.cron.Start()

	return nil
}

// Stop останавливает планировщик и дожидается завершения текущих задач
func (s *CronScheduler) Stop() {
	logger.Info().Msg("stopping cron scheduler")
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// GetEntries возвращает зарегистрированные задачи планировщика
func (s *CronScheduler) GetEntries() []cron.Entry {
	return s.cron.Entries()
}
