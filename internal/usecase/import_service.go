package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/wicketbid/cricket-auction/internal/platform/logging"
)

const (
	importStatusCreated = "created"
	importStatusFailed  = "failed"
)

// ImportInput carries a batch of players to register before an auction.
type ImportInput struct {
	Players    []CreatePlayerInput
	MaxWorkers int
}

type ImportResult struct {
	TotalCount   int               `json:"totalCount"`
	CreatedCount int               `json:"createdCount"`
	FailedCount  int               `json:"failedCount"`
	WorkerCount  int               `json:"workerCount"`
	Rows         []ImportRowResult `json:"rows"`
}

type ImportRowResult struct {
	Index      int    `json:"index"`
	Name       string `json:"name"`
	Status     string `json:"status"`
	PlayerID   string `json:"playerId,omitempty"`
	DurationMs int64  `json:"durationMs"`
	Message    string `json:"message,omitempty"`
}

// ImportService registers whole auction pools in one call, fanning the rows
// out over a bounded worker pool.
type ImportService struct {
	roster     *RosterService
	maxWorkers int
	logger     *logging.Logger
}

func NewImportService(roster *RosterService, maxWorkers int, logger *logging.Logger) *ImportService {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &ImportService{
		roster:     roster,
		maxWorkers: maxWorkers,
		logger:     logger,
	}
}

func (s *ImportService) ImportPlayers(ctx context.Context, input ImportInput) (ImportResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ImportService.ImportPlayers")
	defer span.End()

	if len(input.Players) == 0 {
		return ImportResult{}, fmt.Errorf("%w: at least one player is required", ErrInvalidInput)
	}

	workerCount := input.MaxWorkers
	if workerCount < 1 || workerCount > s.maxWorkers {
		workerCount = s.maxWorkers
	}
	if workerCount > len(input.Players) {
		workerCount = len(input.Players)
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return ImportResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	results := make(chan ImportRowResult, len(input.Players))

	var createdCount atomic.Int32
	var failedCount atomic.Int32

	var workers sync.WaitGroup
	for idx, row := range input.Players {
		idx, row := idx, row
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			out := ImportRowResult{Index: idx, Name: row.Name}

			created, createErr := s.roster.CreatePlayer(ctx, row)
			if createErr != nil {
				out.Status = importStatusFailed
				out.Message = createErr.Error()
				failedCount.Add(1)
			} else {
				out.Status = importStatusCreated
				out.PlayerID = created.ID
				createdCount.Add(1)
			}
			out.DurationMs = time.Since(start).Milliseconds()

			results <- out
		}); err != nil {
			workers.Done()
			return ImportResult{}, fmt.Errorf("submit row to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	result := ImportResult{
		TotalCount:  len(input.Players),
		WorkerCount: workerCount,
		Rows:        make([]ImportRowResult, 0, len(input.Players)),
	}
	for row := range results {
		result.Rows = append(result.Rows, row)
	}
	sort.SliceStable(result.Rows, func(i, j int) bool {
		return result.Rows[i].Index < result.Rows[j].Index
	})

	result.CreatedCount = int(createdCount.Load())
	result.FailedCount = int(failedCount.Load())

	s.logger.InfoContext(ctx, "player import finished",
		"total", result.TotalCount,
		"created", result.CreatedCount,
		"failed", result.FailedCount,
		"workers", result.WorkerCount,
	)

	return result, nil
}
