package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"
)

// RelayState tracks a single forward attempt.
type RelayState int

const (
	RelayIdle RelayState = iota
	RelayRequesting
	RelayStreaming
	RelayFailed
)

func (s RelayState) String() string {
	switch s {
	case RelayIdle:
		return "idle"
	case RelayRequesting:
		return "requesting"
	case RelayStreaming:
		return "streaming"
	case RelayFailed:
		return "failed"
	default:
		return "unknown"
	}
}

const providerErrorSnippetLimit = 8 << 10

// Relay forwards one prompt to the provider and hands back its raw event stream.
// A Relay is single-use.
type Relay struct {
	provider CompletionProvider
	logger   *zap.Logger
	state    RelayState
}

// NewRelay creates an idle relay.
func NewRelay(provider CompletionProvider, logger *zap.Logger) *Relay {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Relay{provider: provider, logger: logger}
}

// State returns the current state.
func (r *Relay) State() RelayState {
	return r.state
}

// Open issues the streaming request and classifies the initial response.
// On success the caller owns the returned body.
func (r *Relay) Open(ctx context.Context, req CompletionRequest) (io.ReadCloser, error) {
	if r.state != RelayIdle {
		return nil, fmt.Errorf("%w: relay already used (state=%s)", ErrProvider, r.state)
	}
	r.state = RelayRequesting

	resp, err := r.provider.OpenStream(ctx, req)
	if err != nil {
		r.state = RelayFailed
		return nil, fmt.Errorf("%w: %w", ErrProvider, err)
	}
	if err := r.classify(resp); err != nil {
		r.state = RelayFailed
		return nil, err
	}

	r.state = RelayStreaming
	return resp.Body, nil
}

func (r *Relay) classify(resp *ProviderResponse) error {
	if resp == nil {
		return fmt.Errorf("%w: empty provider response", ErrProvider)
	}
	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		discard(resp.Body)
		return ErrRateLimited
	case resp.StatusCode == http.StatusPaymentRequired:
		discard(resp.Body)
		return ErrQuotaExhausted
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		snippet := readSnippet(resp.Body)
		r.logger.Error("provider request failed",
			zap.Int("status", resp.StatusCode),
			zap.String("body", snippet),
		)
		return fmt.Errorf("%w: status %d", ErrProvider, resp.StatusCode)
	case resp.Body == nil:
		return fmt.Errorf("%w: no response stream", ErrProvider)
	}
	return nil
}

func discard(body io.ReadCloser) {
	if body != nil {
		_ = body.Close()
	}
}

func readSnippet(body io.ReadCloser) string {
	if body == nil {
		return ""
	}
	defer body.Close()
	raw, _ := io.ReadAll(io.LimitReader(body, providerErrorSnippetLimit))
	return string(raw)
}

// Pipe copies src to dst chunk by chunk, flushing after every write, until src is
// exhausted, a write fails, or ctx is cancelled. Cancellation closes src so a blocked
// read returns promptly. src is always closed on return.
func Pipe(ctx context.Context, dst io.Writer, flush func(), src io.ReadCloser) (int64, error) {
	defer src.Close()
	stop := context.AfterFunc(ctx, func() { _ = src.Close() })
	defer stop()

	buf := make([]byte, 4<<10)
	var written int64
	for {
		n, readErr := src.Read(buf)
		if n > 0 {
			w, err := dst.Write(buf[:n])
			written += int64(w)
			if err != nil {
				return written, err
			}
			if flush != nil {
				flush()
			}
		}
		if errors.Is(readErr, io.EOF) {
			return written, nil
		}
		if readErr != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return written, ctxErr
			}
			return written, readErr
		}
	}
}
