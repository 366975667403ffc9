// Package sinks provides ready-made logging sinks for hosts.
package sinks

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"

	"hordehouse/sim/logging"
)

// ConsoleSink writes one formatted line per event.
type ConsoleSink struct {
	logger *log.Logger
}

func NewConsoleSink(w io.Writer) *ConsoleSink {
	return &ConsoleSink{logger: log.New(w, "", log.LstdFlags)}
}

func (s *ConsoleSink) Write(event logging.Event) error {
	if s == nil || s.logger == nil {
		return nil
	}
	s.logger.Printf("[%s] tick=%d actor=%s severity=%s%s",
		event.Type, event.Tick, formatEntity(event.Actor), formatSeverity(event.Severity), formatPayload(event.Payload))
	return nil
}

func (s *ConsoleSink) Close(context.Context) error {
	return nil
}

// JSONSink writes one JSON object per line.
type JSONSink struct {
	encoder *json.Encoder
	closer  io.Closer
}

func NewJSONSink(w io.Writer) *JSONSink {
	sink := &JSONSink{encoder: json.NewEncoder(w)}
	if closer, ok := w.(io.Closer); ok {
		sink.closer = closer
	}
	return sink
}

func (s *JSONSink) Write(event logging.Event) error {
	if s == nil || s.encoder == nil {
		return nil
	}
	return s.encoder.Encode(event)
}

func (s *JSONSink) Close(context.Context) error {
	if s == nil || s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

func formatSeverity(sev logging.Severity) string {
	switch sev {
	case logging.SeverityDebug:
		return "debug"
	case logging.SeverityInfo:
		return "info"
	case logging.SeverityWarn:
		return "warn"
	case logging.SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

func formatEntity(ref logging.EntityRef) string {
	if ref.ID == "" {
		return string(ref.Kind)
	}
	if ref.Kind == "" {
		return ref.ID
	}
	return fmt.Sprintf("%s:%s", ref.Kind, ref.ID)
}

func formatPayload(payload any) string {
	if payload == nil {
		return ""
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Sprintf(" payload=%v", payload)
	}
	return fmt.Sprintf(" payload=%s", data)
}
