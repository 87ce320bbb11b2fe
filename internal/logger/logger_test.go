package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func initFileLogger(t *testing.T, level string) string {
	t.Helper()
	logFile := filepath.Join(t.TempDir(), level+".log")
	cfg := FileConfig{
		Path:       logFile,
		MaxSizeMB:  10,
		MaxBackups: 1,
		MaxAgeDays: 1,
	}
	if err := InitWithFileConfig(level, cfg, false); err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}
	return logFile
}

func readLog(t *testing.T, path string) string {
	t.Helper()
	Sync()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	return string(content)
}

func TestLogLevels(t *testing.T) {
	tests := []struct {
		level    string
		expected []string
		excluded []string
	}{
		{
			level:    "error",
			expected: []string{"ERROR"},
			excluded: []string{"WARN", "INFO", "DEBUG"},
		},
		{
			level:    "warn",
			expected: []string{"ERROR", "WARN"},
			excluded: []string{"INFO", "DEBUG"},
		},
		{
			level:    "info",
			expected: []string{"ERROR", "WARN", "INFO"},
			excluded: []string{"DEBUG"},
		},
		{
			level:    "debug",
			expected: []string{"ERROR", "WARN", "INFO", "DEBUG"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logFile := initFileLogger(t, tt.level)

			Debug("debug message")
			Info("info message")
			Warn("warn message")
			Error("error message")

			logContent := readLog(t, logFile)

			for _, exp := range tt.expected {
				if !strings.Contains(logContent, exp) {
					t.Errorf("expected %s in log output", exp)
				}
			}
			for _, exc := range tt.excluded {
				if strings.Contains(logContent, exc) {
					t.Errorf("unexpected %s in log output for level %s", exc, tt.level)
				}
			}
		})
	}
}

func TestNamedLogger(t *testing.T) {
	logFile := initFileLogger(t, "info")

	Named("player").Info("body created")

	logContent := readLog(t, logFile)
	if !strings.Contains(logContent, "player") || !strings.Contains(logContent, "body created") {
		t.Errorf("named logger output missing component or message: %q", logContent)
	}
}

func TestSampledLogger(t *testing.T) {
	logFile := initFileLogger(t, "debug")

	frames := Sampled("frame")
	for i := 0; i < 50; i++ {
		frames.Debug("frame integrated")
	}

	lines := strings.Count(readLog(t, logFile), "frame integrated")
	if lines == 0 {
		t.Fatal("sampled logger dropped every entry")
	}
	if lines >= 50 {
		t.Errorf("sampled logger let all %d entries through", lines)
	}
}

func TestDefaultFileConfig(t *testing.T) {
	cfg := DefaultFileConfig("/tmp/test.log")

	if cfg.Path != "/tmp/test.log" {
		t.Errorf("expected path /tmp/test.log, got %s", cfg.Path)
	}
	if cfg.MaxSizeMB != 20 {
		t.Errorf("expected MaxSizeMB 20, got %d", cfg.MaxSizeMB)
	}
	if cfg.MaxBackups != 3 {
		t.Errorf("expected MaxBackups 3, got %d", cfg.MaxBackups)
	}
	if !cfg.Compress {
		t.Error("expected Compress to be true")
	}
}
