package diag

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

// Tail returns at most maxLines from the end of the file at path. A missing
// file yields no lines and no error.
func Tail(path string, maxLines int) ([]string, error) {
	if maxLines <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	ring := make([]string, maxLines)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Record is one decoded line of the JSON log.
type Record struct {
	Time    time.Time
	Level   string
	Message string
	LoadID  string
	Error   string
}

// ParseRecord decodes a line written by a logger from New. ok is false for
// lines that are not JSON log records.
func ParseRecord(line string) (Record, bool) {
	var raw struct {
		Time   time.Time `json:"time"`
		Level  string    `json:"level"`
		Msg    string    `json:"msg"`
		LoadID string    `json:"load_id"`
		Error  string    `json:"error"`
	}
	if err := json.Unmarshal([]byte(line), &raw); err != nil || raw.Level == "" {
		return Record{}, false
	}
	return Record{
		Time:    raw.Time,
		Level:   raw.Level,
		Message: raw.Msg,
		LoadID:  raw.LoadID,
		Error:   raw.Error,
	}, true
}
