package sizeindex

import (
	"context"
	"sync"

	"github.com/sdejongh/sizediff/pkg/storage"
)

// measurePool gzips files with a bounded number of goroutines.
// Results are stored by file index so output order never depends on scheduling.
type measurePool struct {
	backend    storage.Backend
	sizer      GzipSizer
	maxWorkers int
	semaphore  chan struct{}
	progress   Progress
}

func newMeasurePool(backend storage.Backend, sizer GzipSizer, maxWorkers int, progress Progress) *measurePool {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	return &measurePool{
		backend:    backend,
		sizer:      sizer,
		maxWorkers: maxWorkers,
		semaphore:  make(chan struct{}, maxWorkers),
		progress:   progress,
	}
}

// run returns the gzip size of every file, stopping at the first error
func (p *measurePool) run(parent context.Context, files []storage.FileInfo) ([]int64, error) {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	sizes := make([]int64, len(files))

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)

	for i := range files {
		// Acquire semaphore slot
		select {
		case p.semaphore <- struct{}{}:
		case <-ctx.Done():
		}
		if ctx.Err() != nil {
			break
		}

		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer func() { <-p.semaphore }()

			n, err := measure(ctx, p.backend, p.sizer, files[i])
			if err != nil {
				errOnce.Do(func() {
					firstErr = err
					cancel()
				})
				return
			}
			sizes[i] = n

			if p.progress != nil {
				p.progress.Increment()
			}
		}(i)
	}

	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := parent.Err(); err != nil {
		return nil, err
	}
	return sizes, nil
}
