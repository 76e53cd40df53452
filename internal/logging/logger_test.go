package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewJSONLoggerRedacts(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "info", Format: "json", Output: &buf})

	logger.Info("provider call failed", "key", "sk-abcdefghijklmnopqrstuvwxyz123456")

	line := buf.String()
	if strings.Contains(line, "sk-abcdefghijklmnopqrstuvwxyz123456") {
		t.Errorf("credential leaked into log output: %s", line)
	}
	if !strings.Contains(line, "[REDACTED]") {
		t.Errorf("expected redaction marker in: %s", line)
	}

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("json format expected: %v", err)
	}
	if entry["msg"] != "provider call failed" {
		t.Errorf("msg = %v", entry["msg"])
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "warn", Format: "json", Output: &buf})

	logger.Info("hidden")
	logger.Warn("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info line should be filtered at warn level")
	}
	if !strings.Contains(out, "visible") {
		t.Error("warn line missing")
	}
}

func TestContextualLoggers(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "debug", Format: "json", Output: &buf})

	logger.WithAgent("technical").WithEvaluation("eval-42").Info("scoped")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if entry["agent"] != "technical" || entry["evaluation_id"] != "eval-42" {
		t.Errorf("entry = %v", entry)
	}
}

func TestNonTerminalAutoFormatIsJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "info", Format: "auto", Output: &buf})

	logger.Info("hello")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("auto format on a non-terminal writer should be JSON: %v", err)
	}
}
