package samples

import (
	"github.com/charmbracelet/log"
)

// decodeRequest asks the worker to decode raw audio bytes for a sample id.
type decodeRequest struct {
	id   string
	data []byte
}

// decodeReply is the worker's answer. Exactly one of buf, needsInlineDecode
// or err is meaningful. When needsInlineDecode is set the original bytes are
// handed back so the dispatcher can decode them on the caller's side.
type decodeReply struct {
	id                string
	buf               *Buffer
	needsInlineDecode bool
	data              []byte
	err               error
}

// decodeWorker is the single background decode goroutine. It owns the pure-Go
// decoder set; formats that need capabilities it does not carry (opus links
// against libopusfile) are deferred back to the dispatcher.
type decodeWorker struct {
	requests chan decodeRequest
	replies  chan decodeReply
	quit     chan struct{}
	logger   *log.Logger
}

// newDecodeWorker starts the background decode goroutine. At most one worker
// exists per dispatcher.
func newDecodeWorker(logger *log.Logger) *decodeWorker {
	w := &decodeWorker{
		requests: make(chan decodeRequest, 16),
		replies:  make(chan decodeReply, 16),
		quit:     make(chan struct{}),
		logger:   logger,
	}
	go w.run()
	return w
}

func (w *decodeWorker) run() {
	for {
		select {
		case req := <-w.requests:
			w.replies <- w.handle(req)
		case <-w.quit:
			// Drain requests already queued so no waiter is left hanging.
			for {
				select {
				case req := <-w.requests:
					w.replies <- w.handle(req)
				default:
					close(w.replies)
					return
				}
			}
		}
	}
}

func (w *decodeWorker) handle(req decodeRequest) decodeReply {
	format, err := SniffFormat(req.data)
	if err != nil {
		return decodeReply{id: req.id, err: err}
	}

	// The worker cannot decode opus itself; hand the bytes back so the
	// dispatcher decodes them inline.
	if format == FormatOpus {
		w.logger.Debug("worker deferring to inline decode", "id", req.id, "format", format)
		return decodeReply{id: req.id, needsInlineDecode: true, data: req.data}
	}

	buf, err := DecodeBytes(req.data)
	if err != nil {
		return decodeReply{id: req.id, err: err}
	}
	return decodeReply{id: req.id, buf: buf}
}

// submit queues a decode request. It reports false when the worker has been
// stopped.
func (w *decodeWorker) submit(req decodeRequest) bool {
	select {
	case w.requests <- req:
		return true
	case <-w.quit:
		return false
	}
}

// stop shuts the worker down. Pending replies are drained by the reply pump
// until the replies channel closes.
func (w *decodeWorker) stop() {
	close(w.quit)
}
