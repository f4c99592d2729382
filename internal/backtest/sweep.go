package backtest

import (
	"context"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/coinmetrics-lab/dca-backtest/internal/series"
)

// SweepJob is one target-month simulation in a sweep.
type SweepJob struct {
	Month         time.Month
	MonthlyAmount float64
}

// SweepResult pairs a sweep job with its outcome. Result is nil when the
// target month never occurs in the series.
type SweepResult struct {
	Month    time.Month
	Result   *Result
	Err      error
	Duration time.Duration
}

// WorkerPool fans independent simulations out over goroutines. Each run only
// shares the immutable input series, so no locking is needed beyond the
// channels themselves.
type WorkerPool struct {
	workerCount int
	jobQueue    chan SweepJob
	resultQueue chan SweepResult
	wg          sync.WaitGroup
	ctx         context.Context
	cancel      context.CancelFunc
	data        *series.PriceSeries
}

func NewWorkerPool(workerCount int, s *series.PriceSeries) *WorkerPool {
	if workerCount <= 0 {
		workerCount = runtime.NumCPU()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &WorkerPool{
		workerCount: workerCount,
		jobQueue:    make(chan SweepJob, 12),
		resultQueue: make(chan SweepResult, 12),
		ctx:         ctx,
		cancel:      cancel,
		data:        s,
	}
}

func (wp *WorkerPool) Start() {
	for i := 0; i < wp.workerCount; i++ {
		wp.wg.Add(1)
		go wp.worker()
	}
}

func (wp *WorkerPool) Stop() {
	close(wp.jobQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
	wp.cancel()
}

func (wp *WorkerPool) Submit(job SweepJob) error {
	select {
	case wp.jobQueue <- job:
		return nil
	case <-wp.ctx.Done():
		return wp.ctx.Err()
	}
}

func (wp *WorkerPool) Results() <-chan SweepResult {
	return wp.resultQueue
}

func (wp *WorkerPool) worker() {
	defer wp.wg.Done()
	for {
		select {
		case job, ok := <-wp.jobQueue:
			if !ok {
				return
			}
			started := time.Now()
			res, err := NewTargetMonthInvestor(job.MonthlyAmount, job.Month).Run(wp.data)
			out := SweepResult{
				Month:    job.Month,
				Result:   res,
				Err:      err,
				Duration: time.Since(started),
			}
			select {
			case wp.resultQueue <- out:
			case <-wp.ctx.Done():
				return
			}
		case <-wp.ctx.Done():
			return
		}
	}
}

// SweepTargetMonths backtests all 12 target months over the same series in
// parallel and returns the results ordered January..December.
func SweepTargetMonths(s *series.PriceSeries, monthlyAmount float64, workers int) []SweepResult {
	pool := NewWorkerPool(workers, s)
	pool.Start()

	go func() {
		for m := time.January; m <= time.December; m++ {
			if err := pool.Submit(SweepJob{Month: m, MonthlyAmount: monthlyAmount}); err != nil {
				return
			}
		}
	}()

	results := make([]SweepResult, 0, 12)
	for i := 0; i < 12; i++ {
		results = append(results, <-pool.Results())
	}
	pool.Stop()

	sort.Slice(results, func(i, j int) bool { return results[i].Month < results[j].Month })
	return results
}
