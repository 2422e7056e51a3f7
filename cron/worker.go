package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"fairway/config"
	sync "fairway/services/sync"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

const (
	// TypeBookingSync repairs a single booking's calendar mirror.
	TypeBookingSync = "calendar:sync"
	// TypeReconcileSweep runs a bounded batch sweep over all bookings
	// still needing sync.
	TypeReconcileSweep = "calendar:sweep"
)

// SyncPayload identifies the booking a calendar:sync task targets.
type SyncPayload struct {
	BookingID string `json:"bookingId"`
}

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// Enqueuer queues sync tasks from the booking flow.
type Enqueuer struct {
	client *asynq.Client
}

func NewEnqueuer() *Enqueuer {
	return &Enqueuer{client: asynq.NewClient(redisOpts())}
}

func (e *Enqueuer) EnqueueBookingSync(ctx context.Context, bookingID string) error {
	payload, err := json.Marshal(SyncPayload{BookingID: bookingID})
	if err != nil {
		return err
	}
	task := asynq.NewTask(TypeBookingSync, payload)
	// The reconciler has its own backoff; keep queue-level retries modest.
	_, err = e.client.EnqueueContext(ctx, task, asynq.MaxRetry(2), asynq.Timeout(2*time.Minute))
	return err
}

// InitSyncWorker runs the async worker and the periodic sweep in background.
func InitSyncWorker(rec *sync.Reconciler) {
	srv := asynq.NewServer(
		redisOpts(),
		asynq.Config{
			Concurrency: config.AppConfig.SyncConcurrency,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeBookingSync, handleBookingSync(rec))
	mux.HandleFunc(TypeReconcileSweep, handleReconcileSweep(rec))

	// Start Redis health monitor
	go monitorRedisConnection()

	// Start async worker with retry logic
	go func() {
		log.Println("[SyncWorker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[SyncWorker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[SyncWorker] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()

	// Periodic sweep so bookings stuck in pending/failed states are
	// eventually picked up even without an operator trigger.
	go func() {
		scheduler := asynq.NewScheduler(redisOpts(), &asynq.SchedulerOpts{})
		task := asynq.NewTask(TypeReconcileSweep, nil)
		if _, err := scheduler.Register(config.AppConfig.SyncSweepInterval, task); err != nil {
			log.Printf("[SyncWorker] Failed to register periodic sweep: %v", err)
			return
		}
		if err := scheduler.Run(); err != nil {
			log.Printf("[SyncWorker] Scheduler stopped: %v", err)
		}
	}()
}

func handleBookingSync(rec *sync.Reconciler) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p SyncPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[SyncHandler] Invalid payload: %v", err)
			return err
		}

		ok, err := rec.RetryBooking(ctx, p.BookingID)
		if err != nil {
			return err
		}
		if !ok {
			log.Printf("[SyncHandler] Booking %s still unsynced after this pass", p.BookingID)
		}
		return nil
	}
}

func handleReconcileSweep(rec *sync.Reconciler) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		result, err := rec.BatchRetry(ctx, int64(config.AppConfig.SyncSweepBatchLimit))
		if err != nil {
			return err
		}
		log.Printf("[SyncSweep] success=%d failed=%d", result.SuccessCount, result.FailedCount)
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[SyncWorker] Redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
