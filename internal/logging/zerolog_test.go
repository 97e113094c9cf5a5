package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestZerologLogger_JSONFieldsAndLevels(t *testing.T) {
	var buf bytes.Buffer
	log := Setup(&buf, false)
	ctx := context.Background()

	log.Debug(ctx, "hidden")
	log.Info(ctx, "inf", "user", "u1", "count", 2)
	log.Warn(ctx, "wrn")
	log.Error(ctx, "err", "dangling")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 3, "debug must be filtered out at info level")

	assert.Equal(t, "info", lines[0]["level"])
	assert.Equal(t, "inf", lines[0]["message"])
	assert.Equal(t, "u1", lines[0]["user"])
	assert.EqualValues(t, 2, lines[0]["count"])

	assert.Equal(t, "warn", lines[1]["level"])
	assert.Equal(t, "error", lines[2]["level"])
	assert.Equal(t, "dangling", lines[2]["!BADKEY"])
}

func TestZerologLogger_With(t *testing.T) {
	var buf bytes.Buffer
	log := Setup(&buf, false).With("component", "session")

	log.Info(context.Background(), "hello", "k", "v")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "session", lines[0]["component"])
	assert.Equal(t, "v", lines[0]["k"])
}

func TestZerologLogger_DebugModeUsesConsoleWriter(t *testing.T) {
	var buf bytes.Buffer
	log := Setup(&buf, true)

	log.Debug(context.Background(), "visible", "a", 1)

	out := buf.String()
	assert.Contains(t, out, "visible")
	assert.Contains(t, out, "a=")
}
