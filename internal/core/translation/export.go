// Copyright (c) 2026 Lexicon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package translation

import (
	"bufio"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/taibuivan/lexicon/internal/platform/ctxutil"
)

// exportFlushEvery bounds how many pairs sit in the buffer before a flush.
const exportFlushEvery = 1000

// exportStream writes a JSON object one member at a time.
type exportStream struct {
	writer     http.ResponseWriter
	controller *http.ResponseController
	buffer     *bufio.Writer
	started    bool
	written    int
}

func newExportStream(writer http.ResponseWriter) *exportStream {
	return &exportStream{
		writer:     writer,
		controller: http.NewResponseController(writer),
		buffer:     bufio.NewWriterSize(writer, 32*1024),
	}
}

func (stream *exportStream) begin() {
	if stream.started {
		return
	}
	stream.started = true
	stream.writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	stream.writer.WriteHeader(http.StatusOK)
	_ = stream.buffer.WriteByte('{')
}

// write appends one "key": "value" member.
func (stream *exportStream) write(key, value string) error {
	stream.begin()

	encodedKey, err := json.Marshal(key)
	if err != nil {
		return err
	}
	encodedValue, err := json.Marshal(value)
	if err != nil {
		return err
	}

	if stream.written > 0 {
		_ = stream.buffer.WriteByte(',')
	}
	_, _ = stream.buffer.Write(encodedKey)
	_ = stream.buffer.WriteByte(':')
	if _, err := stream.buffer.Write(encodedValue); err != nil {
		return err
	}
	stream.written++

	if stream.written%exportFlushEvery == 0 {
		if err := stream.buffer.Flush(); err != nil {
			return err
		}
		_ = stream.controller.Flush()
	}
	return nil
}

// close terminates the object. An empty locale yields {}.
func (stream *exportStream) close() {
	stream.begin()
	_ = stream.buffer.WriteByte('}')
	_ = stream.buffer.Flush()
}

// abort leaves the object unterminated so clients see a truncated document.
func (stream *exportStream) abort(request *http.Request, err error) {
	_ = stream.buffer.Flush()
	ctxutil.GetLogger(request.Context()).WarnContext(request.Context(), "export_aborted",
		slog.Int("written", stream.written),
		slog.String("error", err.Error()),
	)
}
