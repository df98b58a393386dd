package samples

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
)

// decodeResult is delivered to every caller waiting on a sample id.
type decodeResult struct {
	buf *Buffer
	err error
}

// Dispatcher fetches raw sample bytes and turns them into decoded buffers.
// Buffers are cached by sample id for the process lifetime. Concurrent
// requests for the same id are coalesced: only one fetch-and-decode runs,
// and every waiter receives its result.
type Dispatcher struct {
	cfg     Config
	fetcher *Fetcher
	logger  *log.Logger

	mu      sync.Mutex
	buffers map[string]*Buffer
	pending map[string][]chan decodeResult
	closed  bool

	worker   *decodeWorker
	syncWarn sync.Once
}

// NewDispatcher creates a dispatcher. When worker decoding is enabled the
// single background decode goroutine is started here and lives until Close.
func NewDispatcher(cfg Config, fetcher *Fetcher, logger *log.Logger) *Dispatcher {
	if logger == nil {
		logger = log.Default()
	}
	if fetcher == nil {
		fetcher = NewFetcher(nil, cfg.FetchCacheBytes, logger)
	}

	d := &Dispatcher{
		cfg:     cfg,
		fetcher: fetcher,
		logger:  logger,
		buffers: make(map[string]*Buffer),
		pending: make(map[string][]chan decodeResult),
	}

	if cfg.UseWorkerDecoding {
		d.worker = newDecodeWorker(logger)
		go d.pumpReplies()
	}

	return d
}

// Decode returns the decoded buffer for the sample id, fetching and decoding
// the bytes at url on first use. A cached id returns immediately with no
// network or decode work. On any failure the caller gets (nil, err); the
// error is logged and never panics.
func (d *Dispatcher) Decode(ctx context.Context, url, id string) (*Buffer, error) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil, ErrDispatcherClosed
	}
	if buf, ok := d.buffers[id]; ok {
		d.mu.Unlock()
		return buf, nil
	}

	ch := make(chan decodeResult, 1)
	if waiters, ok := d.pending[id]; ok {
		// A decode for this id is already in flight; join it.
		d.pending[id] = append(waiters, ch)
		d.mu.Unlock()
	} else {
		d.pending[id] = []chan decodeResult{ch}
		d.mu.Unlock()
		d.start(ctx, url, id)
	}

	select {
	case res := <-ch:
		if res.err != nil {
			d.logger.Error("sample decode failed", "id", id, "url", url, "error", res.err)
		}
		return res.buf, res.err
	case <-ctx.Done():
		// The in-flight work keeps running; only this caller stops waiting.
		return nil, ctx.Err()
	}
}

// Cached returns the decoded buffer for id, if one exists.
func (d *Dispatcher) Cached(id string) (*Buffer, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	buf, ok := d.buffers[id]
	return buf, ok
}

// Close stops the background worker. Cached buffers stay available.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	worker := d.worker
	d.mu.Unlock()

	if worker != nil {
		worker.stop()
	}
}

// start performs the fetch and hands the bytes to the decode path. It runs
// in the first caller's goroutine; joiners are already parked on the pending
// entry.
func (d *Dispatcher) start(ctx context.Context, url, id string) {
	data, err := d.fetcher.Fetch(ctx, url)
	if err != nil {
		d.complete(id, nil, err)
		return
	}

	if d.worker != nil {
		if d.worker.submit(decodeRequest{id: id, data: data}) {
			return
		}
		// Worker already stopped; fall through to synchronous decode.
	}

	if d.cfg.UseWorkerDecoding {
		d.syncWarn.Do(func() {
			d.logger.Warn("decode worker unavailable, decoding synchronously from now on")
		})
	}

	buf, err := DecodeBytes(data)
	d.complete(id, buf, err)
}

// pumpReplies applies worker replies to the pending registry. Inline decode
// of deferred formats happens here, on the dispatcher's side of the channel.
func (d *Dispatcher) pumpReplies() {
	for reply := range d.worker.replies {
		switch {
		case reply.needsInlineDecode:
			buf, err := DecodeBytes(reply.data)
			d.complete(reply.id, buf, err)
		case reply.err != nil:
			d.complete(reply.id, nil, reply.err)
		default:
			d.complete(reply.id, reply.buf, nil)
		}
	}
}

// complete caches a successful result and resolves every waiter for the id.
// The pending entry is cleared in all outcomes.
func (d *Dispatcher) complete(id string, buf *Buffer, err error) {
	d.mu.Lock()
	if err == nil && buf != nil {
		d.buffers[id] = buf
	}
	waiters := d.pending[id]
	delete(d.pending, id)
	d.mu.Unlock()

	for _, ch := range waiters {
		ch <- decodeResult{buf: buf, err: err}
	}
}
