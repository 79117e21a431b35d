package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/five82/triage/internal/client"
	"github.com/five82/triage/internal/deadline"
	"github.com/five82/triage/internal/logging"
	"github.com/five82/triage/internal/stream"
	"github.com/five82/triage/internal/triage"
)

const defaultReadSize = 4096

// Submitter sends a validated request and returns the open response stream.
type Submitter interface {
	Submit(ctx context.Context, req triage.Request) (*client.Response, error)
}

// Options configure a Controller.
type Options struct {
	Deadline time.Duration // zero uses deadline.Default
	ReadSize int           // bytes per stream read; zero uses 4096
	Logger   *slog.Logger
}

// Outcome summarizes a finished session.
type Outcome struct {
	SessionID uint64
	State     State
	Text      string
	Err       error
	Expired   bool // the deadline token fired
}

// Controller runs submission sessions and drives a View through the
// lifecycle states. Sessions are numbered; starting one supersedes the
// previous session, whose token is released and whose later View writes are
// dropped.
type Controller struct {
	submitter Submitter
	view      View
	deadline  time.Duration
	readSize  int
	logger    *slog.Logger

	mu      sync.Mutex
	current uint64
	active  *deadline.Token
	busy    bool
}

// NewController wires a submitter and a view.
func NewController(submitter Submitter, view View, opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	readSize := opts.ReadSize
	if readSize <= 0 {
		readSize = defaultReadSize
	}
	d := opts.Deadline
	if d <= 0 {
		d = deadline.Default
	}
	return &Controller{
		submitter: submitter,
		view:      view,
		deadline:  d,
		readSize:  readSize,
		logger:    logger,
	}
}

// Busy reports whether a session is in flight.
func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

// Cancel aborts the in-flight session, if any.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active != nil {
		c.active.End()
	}
}

// Submit runs one session to completion: validate, submit, stream, and
// finalize into Complete or Error. It blocks, so UI callers run it off
// their event loop. The submit control is re-enabled on every path.
func (c *Controller) Submit(ctx context.Context, form triage.Form) (out Outcome) {
	id := c.begin()
	v := sessionView{c: c, id: id}
	out.SessionID = id
	logger := c.logger.With("session", id)

	defer func() {
		if r := recover(); r != nil {
			logger.Error("session panic", "panic", r)
			out = c.fail(v, out, fmt.Errorf("session panic: %v", r))
		}
		v.SetSubmitEnabled(true)
		c.finish(id)
	}()

	req, err := triage.Validate(form)
	if err != nil {
		logger.Info("validation failed", "error", err)
		return c.fail(v, out, err)
	}

	token := deadline.Begin(ctx, c.deadline)
	defer token.End()
	if !c.track(id, token) {
		// Superseded before dispatch.
		token.End()
	}

	v.SetState(Processing)
	v.ShowPending()

	start := time.Now()
	resp, err := c.submitter.Submit(token.Context(), req)
	if err != nil {
		out.Expired = token.Expired()
		logger.Warn("submit failed", "error", err, "expired", out.Expired)
		return c.fail(v, out, err)
	}
	defer func() { _ = resp.Close() }()
	logger.Info("stream opened", "status", resp.Status, "request_id", resp.RequestID)

	text, err := c.consume(token, resp.Body, v)
	out.Text = text
	if err != nil {
		out.Expired = token.Expired()
		logger.Warn("stream failed", "error", err, "expired", out.Expired, "bytes", len(text))
		return c.fail(v, out, err)
	}
	if strings.TrimSpace(text) == "" {
		logger.Warn("empty response", "request_id", resp.RequestID)
		return c.fail(v, out, &triage.EmptyResponseError{})
	}

	v.Render(text)
	v.SetState(Complete)
	v.MarkComplete()
	out.State = Complete
	logger.Info("session complete", "bytes", len(text), "elapsed", time.Since(start))
	return out
}

// consume reads the body chunk by chunk, rendering the accumulated text once
// the first non-blank content arrives.
func (c *Controller) consume(token *deadline.Token, body io.Reader, v View) (string, error) {
	dec := stream.NewDecoder()
	buf := make([]byte, c.readSize)
	seen := false

	for {
		if token.Signaled() {
			return dec.Text(), &triage.NetworkError{Err: token.Cause()}
		}
		n, err := body.Read(buf)
		if n > 0 {
			delta := dec.Write(buf[:n])
			if !seen && strings.TrimSpace(delta) != "" {
				seen = true
				v.SetState(Streaming)
			}
			if seen {
				v.Render(dec.Text())
			}
		}
		if errors.Is(err, io.EOF) {
			dec.Flush()
			return dec.Text(), nil
		}
		if err != nil {
			if token.Signaled() {
				return dec.Text(), &triage.NetworkError{Err: err}
			}
			return dec.Text(), &triage.TransportError{Err: fmt.Errorf("read stream: %w", err)}
		}
	}
}

func (c *Controller) fail(v View, out Outcome, err error) Outcome {
	out.State = Error
	out.Err = err
	v.ShowError(triage.UserMessage(err))
	v.SetState(Error)
	return out
}

func (c *Controller) begin() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active != nil {
		c.active.End()
		c.active = nil
	}
	c.current++
	c.busy = true
	c.view.Reset(c.current)
	return c.current
}

func (c *Controller) track(id uint64, token *deadline.Token) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if id != c.current {
		return false
	}
	c.active = token
	return true
}

func (c *Controller) finish(id uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if id != c.current {
		return
	}
	c.active = nil
	c.busy = false
}

// emit forwards a View write unless the session has been superseded.
func (c *Controller) emit(id uint64, fn func(View)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if id != c.current {
		return
	}
	fn(c.view)
}

type sessionView struct {
	c  *Controller
	id uint64
}

func (sessionView) Reset(uint64) {}

func (v sessionView) SetState(s State) {
	v.c.emit(v.id, func(view View) { view.SetState(s) })
}

func (v sessionView) SetSubmitEnabled(enabled bool) {
	v.c.emit(v.id, func(view View) { view.SetSubmitEnabled(enabled) })
}

func (v sessionView) ShowPending() {
	v.c.emit(v.id, func(view View) { view.ShowPending() })
}

func (v sessionView) Render(text string) {
	v.c.emit(v.id, func(view View) { view.Render(text) })
}

func (v sessionView) MarkComplete() {
	v.c.emit(v.id, func(view View) { view.MarkComplete() })
}

func (v sessionView) ShowError(message string) {
	v.c.emit(v.id, func(view View) { view.ShowError(message) })
}
