package runner

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/yaklabco/jiphy/internal/logging"
	"github.com/yaklabco/jiphy/pkg/convert"
)

// Runner converts a set of discovered files on a pool of workers.
type Runner struct {
	Pipeline *Pipeline
}

// New returns a Runner converting with conv.
func New(conv *convert.Converter) *Runner {
	return &Runner{Pipeline: NewPipeline(conv)}
}

// job is one file to convert and its position in the discovery order.
type job struct {
	index int
	path  string
}

// Run discovers the files named by opts and converts them on up to
// opts.Jobs workers. Outcomes are reported in discovery order whatever
// order the workers finish in. Cancelling ctx stops dispatch; the partial
// result is returned with the context error.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	logger := logging.FromContext(ctx)
	logger.Debug("discovered files", logging.FieldFilesDiscovered, len(files))

	result := &Result{Stats: newStats()}
	result.Stats.FilesDiscovered = len(files)
	if len(files) == 0 {
		return result, nil
	}

	pipelineOpts, err := r.pipelineOptions(opts)
	if err != nil {
		return nil, err
	}

	workers := opts.Jobs
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	workers = min(workers, len(files))
	logger.Debug("starting workers", logging.FieldJobs, workers)

	outcomes := make([]*FileOutcome, len(files))
	jobs := make(chan job)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				outcome := r.Pipeline.ProcessFile(ctx, j.path, pipelineOpts)
				// Each index is written by exactly one worker.
				outcomes[j.index] = &outcome
			}
		}()
	}

dispatch:
	for i, path := range files {
		select {
		case <-ctx.Done():
			break dispatch
		case jobs <- job{index: i, path: path}:
		}
	}
	close(jobs)
	wg.Wait()

	result.Files = make([]FileOutcome, 0, len(files))
	for _, outcome := range outcomes {
		if outcome != nil {
			result.accumulate(*outcome)
		}
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}

	logger.Debug("run complete",
		logging.FieldFilesConverted, result.Stats.FilesConverted,
		logging.FieldFilesWritten, result.Stats.FilesWritten,
		logging.FieldFilesFailed, result.Stats.FilesErrored,
		logging.FieldUnterminated, result.Stats.Unterminated,
	)
	return result, nil
}

// pipelineOptions anchors relative output directories and the mirroring
// base at the working directory.
func (r *Runner) pipelineOptions(opts Options) (PipelineOptions, error) {
	pipelineOpts := PipelineOptionsFromConfig(opts.effectiveConfig())

	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return PipelineOptions{}, fmt.Errorf("resolve working directory: %w", err)
	}
	pipelineOpts.BaseDir = workDir

	if pipelineOpts.OutDir != "" && !filepath.IsAbs(pipelineOpts.OutDir) {
		pipelineOpts.OutDir = filepath.Join(workDir, pipelineOpts.OutDir)
	}
	return pipelineOpts, nil
}
