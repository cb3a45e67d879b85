package streaming

import (
	"context"
	"sync"
	"time"

	"mini-voxel/internal/profiling"
	"mini-voxel/internal/world"
)

// result is one finished generation handed back to the frame loop.
type result struct {
	chunk   *world.Chunk
	elapsed time.Duration
}

// Worker generates one chunk at a time on its own goroutine. Requests and
// results each pass through a single-slot channel, so at most one
// generation is ever outstanding.
type Worker struct {
	gen      world.TerrainGenerator
	requests chan world.ChunkCoord
	results  chan result
	metrics  *profiling.Metrics
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// NewWorker starts the generation goroutine.
func NewWorker(gen world.TerrainGenerator, metrics *profiling.Metrics) *Worker {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Worker{
		gen:      gen,
		requests: make(chan world.ChunkCoord, 1),
		results:  make(chan result, 1),
		metrics:  metrics,
		ctx:      ctx,
		cancel:   cancel,
	}
	w.wg.Add(1)
	go w.run()
	return w
}

// Submit queues a generation request. It returns false if the request slot
// is occupied or the worker is shut down.
func (w *Worker) Submit(coord world.ChunkCoord) bool {
	if w.ctx.Err() != nil {
		return false
	}
	select {
	case w.requests <- coord:
		return true
	default:
		return false
	}
}

// TryResult returns the finished chunk, if one is waiting. It never blocks.
func (w *Worker) TryResult() (*world.Chunk, time.Duration, bool) {
	select {
	case r := <-w.results:
		return r.chunk, r.elapsed, true
	default:
		return nil, 0, false
	}
}

func (w *Worker) run() {
	defer w.wg.Done()

	for {
		select {
		case coord := <-w.requests:
			start := time.Now()
			// A started generation always runs to completion.
			c := w.gen.Generate(coord)
			w.metrics.ChunkGenerated()

			select {
			case w.results <- result{chunk: c, elapsed: time.Since(start)}:
			case <-w.ctx.Done():
				return
			}

		case <-w.ctx.Done():
			return
		}
	}
}

// Shutdown stops the worker and waits for a running generation to finish.
func (w *Worker) Shutdown() {
	w.cancel()
	w.wg.Wait()
}
