package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"
)

// Generator produces model output for a prompt.
type Generator interface {
	// Start begins generation. An error means nothing was produced and the
	// request can still be answered with an error status.
	Start(ctx context.Context, prompt string) (Stream, error)
}

// Stream yields generated text. Next returns io.EOF after the last piece.
type Stream interface {
	Next() (string, error)
	Close() error
}

// Ollama generates text through a local Ollama server.
type Ollama struct {
	model  string
	client *api.Client
}

// NewOllama connects to host, or to OLLAMA_HOST when host is empty.
func NewOllama(host, model string) (*Ollama, error) {
	var (
		client *api.Client
		err    error
	)
	host = strings.TrimSpace(host)
	if host == "" {
		client, err = api.ClientFromEnvironment()
		if err != nil {
			return nil, fmt.Errorf("ollama client from environment: %w", err)
		}
	} else {
		u, perr := url.Parse(host)
		if perr != nil {
			return nil, fmt.Errorf("parse ollama host %q: %w", host, perr)
		}
		client = api.NewClient(u, &http.Client{})
	}
	return &Ollama{model: model, client: client}, nil
}

// Model returns the model name used for generation.
func (o *Ollama) Model() string { return o.model }

// Ping checks that the Ollama server is reachable.
func (o *Ollama) Ping(ctx context.Context) error {
	return o.client.Heartbeat(ctx)
}

type piece struct {
	text string
	err  error
}

// Start runs a streaming generate call and waits for its first piece so
// that connection and model errors surface before any output is written.
func (o *Ollama) Start(ctx context.Context, prompt string) (Stream, error) {
	ctx, cancel := context.WithCancel(ctx)
	pieces := make(chan piece)

	go func() {
		defer close(pieces)
		stream := true
		req := &api.GenerateRequest{Model: o.model, Prompt: prompt, Stream: &stream}
		err := o.client.Generate(ctx, req, func(res api.GenerateResponse) error {
			if res.Response == "" {
				return nil
			}
			select {
			case pieces <- piece{text: res.Response}:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			select {
			case pieces <- piece{err: err}:
			case <-ctx.Done():
			}
		}
	}()

	first, ok := <-pieces
	if !ok {
		return &ollamaStream{pieces: pieces, cancel: cancel}, nil
	}
	if first.err != nil {
		cancel()
		return nil, fmt.Errorf("ollama generate: %w", first.err)
	}
	return &ollamaStream{pieces: pieces, cancel: cancel, head: first.text, hasHead: true}, nil
}

type ollamaStream struct {
	pieces  <-chan piece
	cancel  context.CancelFunc
	head    string
	hasHead bool
}

func (s *ollamaStream) Next() (string, error) {
	if s.hasHead {
		s.hasHead = false
		return s.head, nil
	}
	p, ok := <-s.pieces
	if !ok {
		return "", io.EOF
	}
	if p.err != nil {
		return "", p.err
	}
	return p.text, nil
}

func (s *ollamaStream) Close() error {
	s.cancel()
	// Drain so the generate goroutine can exit.
	for range s.pieces {
	}
	return nil
}
