package config

import (
	"bytes"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func newBufferedLogger(buf *bytes.Buffer) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(buf)
	return logger
}

func TestLogError(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferedLogger(&buf)

	LogError(logger, "gateway", "ReadTable", "Master Data", nil, errors.New("store offline"))

	out := buf.String()
	assert.Contains(t, out, `"module":"gateway"`)
	assert.Contains(t, out, `"funcName":"ReadTable"`)
	assert.Contains(t, out, `"context":"Master Data"`)
	assert.Contains(t, out, "store offline")
	assert.NotContains(t, out, `"data"`)
}

func TestLogError_WithData(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferedLogger(&buf)

	LogError(logger, "cmd", "save", "save edits", map[string]int{"skipped": 2}, errors.New("row gone"))

	out := buf.String()
	assert.Contains(t, out, `"data"`)
	assert.Contains(t, out, `"skipped":2`)
	assert.Contains(t, out, "row gone")
}

func TestSetLogLevel(t *testing.T) {
	defer SetLogLevel("warn")

	SetLogLevel("debug")
	assert.Equal(t, logrus.DebugLevel, GetLogger().GetLevel())

	SetLogLevel("not-a-level")
	assert.Equal(t, logrus.WarnLevel, GetLogger().GetLevel())
}
