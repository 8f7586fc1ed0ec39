package parse

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/valyala/fastjson"
)

// PeekStartTime returns the timestamp of the first dated record in a session
// log without decoding the whole file. It is used to order chats
// chronologically before the full per-chat processing runs.
func PeekStartTime(path string) (time.Time, error) {
	f, err := os.Open(path)
	if err != nil {
		return time.Time{}, fmt.Errorf("open chat file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var p fastjson.Parser
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		v, err := p.ParseBytes(line)
		if err != nil {
			continue
		}
		ts := parseTimestamp(string(v.GetStringBytes("timestamp")))
		if !ts.IsZero() {
			return ts, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return time.Time{}, fmt.Errorf("read chat file: %w", err)
	}
	return time.Time{}, nil
}
