package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteDailyReport(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.Local)

	var buf bytes.Buffer
	require.NoError(t, WriteDailyReport(&buf, day, exportEntries(), exportWorkers, exportProjects, "€"))
	out := buf.String()

	assert.Contains(t, out, "DAILY REPORT  2026-03-02")

	// Workers are grouped and sorted by name.
	anaIdx := strings.Index(out, "Ana Kovač")
	bobIdx := strings.Index(out, "Bob")
	require.Greater(t, anaIdx, -1)
	require.Greater(t, bobIdx, -1)
	assert.Less(t, anaIdx, bobIdx)

	// Ana: 40 task reward + 40 hourly. Bob: 40 task reward. The grand
	// total credits the full reward to each worker.
	assert.Contains(t, out, "€80.00")
	assert.Contains(t, out, "€40.00")
	assert.Contains(t, out, "GRAND TOTAL:")
	assert.Contains(t, out, "€120.00")

	assert.Contains(t, out, "Table T-12")
	assert.Contains(t, out, "2.00 h worked")
}

func TestWriteDailyReportEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDailyReport(&buf, time.Now(), nil, nil, nil, "€"))

	out := buf.String()
	assert.Contains(t, out, "GRAND TOTAL:")
	assert.Contains(t, out, "€0.00")
}

func TestAmountLineAlignment(t *testing.T) {
	line := amountLine("  Worker total:", 42.5, "€")
	require.True(t, strings.HasSuffix(line, "€42.50\n"))
	assert.Len(t, []rune(strings.TrimSuffix(line, "\n")), reportWidth)
}
