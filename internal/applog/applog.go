// Package applog routes the standard logger to avgang's log file and reads it back.
//
// Bubble Tea owns the terminal while the widget runs, so refresh failures are
// written to a file instead of stderr. `avgang logs` prints the tail of that file.
package applog

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const prefix = "avgang "

// Open creates the log directory and points the standard logger at path.
// The caller closes the returned file on exit.
func Open(path string) (io.Closer, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("log path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := tea.LogToFile(path, prefix)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	return file, nil
}

// Tail returns at most maxLines from the end of the file at path. maxLines <= 0
// returns every line. A missing file yields no lines and no error.
func Tail(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer func() { _ = file.Close() }()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
		if maxLines > 0 && len(lines) > maxLines {
			// Drop the oldest line; the backing array is reused by append.
			lines = lines[1:]
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	return lines, nil
}

var (
	failureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#c94f6d")).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#738091"))
)

// Highlight styles failure lines so they stand out in `avgang logs`.
func Highlight(line string) string {
	if strings.Contains(line, "failed") {
		return failureStyle.Render(line)
	}
	return mutedStyle.Render(line)
}
