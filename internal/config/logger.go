// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// ParseLevel returns the slog level named s, such as "debug" or "warn+2". An
// empty name is the info level and "warning" is accepted for "warn".
func ParseLevel(s string) (slog.Level, error) {
	level := slog.LevelInfo
	switch strings.ToLower(s) {
	case "":
		return level, nil
	case "warning":
		s = "warn"
	}
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log level %q: %w", s, err)
	}
	return level, nil
}

// NewLogger returns a logger writing to w with the level and format of c.
func NewLogger(c LogConfig, w io.Writer) (*slog.Logger, error) {
	level, err := ParseLevel(c.Level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch c.Format {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	case "text", "":
		handler = slog.NewTextHandler(w, opts)
	default:
		return nil, fmt.Errorf("unknown log format %q", c.Format)
	}
	return slog.New(handler), nil
}
