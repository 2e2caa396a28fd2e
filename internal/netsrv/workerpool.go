package netsrv

import (
	"net"

	"github.com/rs/zerolog/log"
	tomb "gopkg.in/tomb.v2"
)

const taskChanSize = 100

type WorkerFunction = func(t *tomb.Tomb, task any) error

// WorkerPool hands queued tasks (accepted order-entry connections) off to
// a bounded number of goroutines, each exiting after one task and being
// replaced by Setup's loop — a fresh goroutine per task rather than a
// long-lived worker loop.
type WorkerPool struct {
	n     int
	tasks chan any
	work  WorkerFunction
}

func NewWorkerPool(size int) WorkerPool {
	return WorkerPool{
		tasks: make(chan any, taskChanSize),
		n:     size,
	}
}

func (pool *WorkerPool) AddTask(task any) {
	pool.tasks <- task
	log.Debug().Int("queueDepth", len(pool.tasks)).Msg("connection queued")
}

func (pool *WorkerPool) Setup(t *tomb.Tomb, work WorkerFunction) {
	log.Info().Int("activeWorkers", pool.n).Msg("adding workers")
	activeWorkers := 0
	for {
		select {
		case <-t.Dying():
			return
		default:
			if activeWorkers < pool.n {
				t.Go(func() error {
					err := pool.worker(t, work)
					activeWorkers--
					return err
				})
				activeWorkers++
			}
		}
	}
}

// worker waits on a single task in the pool and actions it. A task is
// always an accepted net.Conn from the order-entry listener; its remote
// address is logged so a submitting client can be traced through a
// worker's lifetime.
func (pool *WorkerPool) worker(t *tomb.Tomb, work WorkerFunction) error {
	select {
	case <-t.Dying():
		return nil
	case task := <-pool.tasks:
		logCtx := log.Debug()
		if conn, ok := task.(net.Conn); ok {
			logCtx = logCtx.Stringer("remote", conn.RemoteAddr())
		}
		logCtx.Msg("worker picked up connection")
		if err := work(t, task); err != nil {
			log.Error().Err(err).Msg("worker exiting")
			return err
		}
	}
	return nil
}
