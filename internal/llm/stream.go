package llm

import (
	"context"
	"strings"
	"sync"
)

// StreamChunk represents a piece of a streaming response.
type StreamChunk struct {
	Text  string // Text content in this chunk
	Done  bool   // True if this is the final chunk
	Error error  // Error if streaming failed
}

// StreamReader provides an iterator interface for streaming responses.
type StreamReader struct {
	chunks  chan StreamChunk
	current StreamChunk
	closed  bool
	mu      sync.Mutex
}

// NewStreamReader creates a new stream reader.
func NewStreamReader() *StreamReader {
	return &StreamReader{
		chunks: make(chan StreamChunk, 100),
	}
}

// Send queues a chunk. Chunks sent after Close are dropped.
func (sr *StreamReader) Send(chunk StreamChunk) {
	sr.mu.Lock()
	defer sr.mu.Unlock()

	if sr.closed {
		return
	}

	sr.chunks <- chunk
}

// Close closes the stream. Called by provider implementations when done.
func (sr *StreamReader) Close() {
	sr.mu.Lock()
	defer sr.mu.Unlock()

	if !sr.closed {
		sr.closed = true
		close(sr.chunks)
	}
}

// Next advances to the next chunk. Returns false when stream is exhausted.
func (sr *StreamReader) Next() bool {
	chunk, ok := <-sr.chunks
	if !ok {
		return false
	}
	sr.current = chunk
	return true
}

// Current returns the current chunk. Call after Next() returns true.
func (sr *StreamReader) Current() StreamChunk {
	return sr.current
}

// Err returns any error from the current chunk.
func (sr *StreamReader) Err() error {
	return sr.current.Error
}

// Collect reads all chunks and returns the complete text.
func (sr *StreamReader) Collect() (string, error) {
	return sr.CollectWithCallback(nil)
}

// CollectWithCallback reads all chunks, calling the callback for each.
// The last chunk error, if any, is returned with whatever text arrived.
func (sr *StreamReader) CollectWithCallback(callback func(chunk StreamChunk)) (string, error) {
	return sr.CollectContext(context.Background(), callback)
}

// CollectContext is CollectWithCallback that gives up when ctx is done,
// returning the text received so far and ctx's error. The producer is
// expected to stop on the same ctx and close the stream.
func (sr *StreamReader) CollectContext(ctx context.Context, callback func(chunk StreamChunk)) (string, error) {
	var builder strings.Builder
	var lastErr error

	for {
		var chunk StreamChunk
		select {
		case <-ctx.Done():
			return builder.String(), ctx.Err()
		case c, ok := <-sr.chunks:
			if !ok {
				return builder.String(), lastErr
			}
			chunk = c
		}
		sr.current = chunk

		if callback != nil {
			callback(chunk)
		}
		if chunk.Error != nil {
			lastErr = chunk.Error
			continue
		}
		builder.WriteString(chunk.Text)
		if chunk.Done {
			return builder.String(), lastErr
		}
	}
}
