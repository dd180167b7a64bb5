package concurrent

import (
	"fmt"
	"sync"

	"github.com/gofiber/fiber/v2/log"
)

// WorkerFunc defines the function signature for work to be executed.
// It receives the item to process and channels for communication.
type WorkerFunc[T any, R any] func(item T, messages chan<- string, results chan<- R, errors chan<- error)

// RunnerConfig configures the concurrent runner.
type RunnerConfig struct {
	MaxConcurrency int    // 0 means unlimited concurrency
	LogPrefix      string // Prefix for log messages
}

// Runner encapsulates concurrent processing with channels and wait groups.
type Runner[T any, R any] struct {
	config RunnerConfig
}

// NewRunner creates a new concurrent runner with the given configuration.
func NewRunner[T any, R any](config RunnerConfig) *Runner[T, R] {
	if config.LogPrefix == "" {
		config.LogPrefix = "Runner"
	}
	return &Runner[T, R]{
		config: config,
	}
}

// RunResult contains the results of a concurrent run.
type RunResult[R any] struct {
	Results []R
	Errors  []error
}

// Run executes the worker function for each item concurrently and
// returns the aggregated results and errors.
func (r *Runner[T, R]) Run(items []T, worker WorkerFunc[T, R]) RunResult[R] {
	if len(items) == 0 {
		return RunResult[R]{
			Results: []R{},
			Errors:  []error{},
		}
	}

	var collectorsWg sync.WaitGroup

	// Messages channel for logging
	messages := make(chan string)
	collectorsWg.Add(1)
	go func() {
		defer collectorsWg.Done()
		for message := range messages {
			r.logInfo(message)
		}
	}()

	// Results channel for successful completions
	results := make(chan R)
	var resultsList []R
	collectorsWg.Add(1)
	go func() {
		defer collectorsWg.Done()
		for result := range results {
			resultsList = append(resultsList, result)
		}
	}()

	// Errors channel for failures
	errors := make(chan error)
	var errorsList []error
	collectorsWg.Add(1)
	go func() {
		defer collectorsWg.Done()
		for err := range errors {
			errorsList = append(errorsList, err)
		}
	}()

	var workersWg sync.WaitGroup

	// Throttle channel for limiting concurrency (if configured)
	var throttle chan int
	if r.config.MaxConcurrency > 0 {
		throttle = make(chan int, r.config.MaxConcurrency)
	}

	for _, item := range items {
		workersWg.Add(1)

		if throttle != nil {
			throttle <- 1
		}

		go func(item T) {
			defer workersWg.Done()

			if throttle != nil {
				defer func() { <-throttle }()
			}

			worker(item, messages, results, errors)
		}(item)
	}

	workersWg.Wait()

	close(messages)
	close(results)
	close(errors)

	collectorsWg.Wait()

	return RunResult[R]{
		Results: resultsList,
		Errors:  errorsList,
	}
}

func (r *Runner[T, R]) logInfo(message string) {
	log.Info(fmt.Sprintf("%s: %s", r.config.LogPrefix, message))
}
