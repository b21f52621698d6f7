package hostinterface

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/interactiv/extension/internal/monitor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDispatchResponse(t *testing.T) {
	tests := []struct {
		name     string
		result   any
		err      error
		expected string
	}{
		{
			name:     "version pair",
			result:   []string{"1.0.0", "2026-10-01"},
			expected: `["ok", ["1.0.0","2026-10-01"]]`,
		},
		{
			name:     "windows path",
			result:   `C:\Games\GTAV\propsList.xml`,
			expected: `["ok", "C:\\Games\\GTAV\\propsList.xml"]`,
		},
		{
			name:     "quotes in string",
			result:   `Press "E" to sit`,
			expected: `["ok", "Press \"E\" to sit"]`,
		},
		{
			name:     "html characters kept",
			result:   "<props> & more",
			expected: `["ok", "<props> & more"]`,
		},
		{
			name:     "nil result",
			expected: `["ok"]`,
		},
		{
			name:     "reload count",
			result:   12,
			expected: `["ok", 12]`,
		},
		{
			name:     "map",
			result:   map[string]int{"props": 3},
			expected: `["ok", {"props":3}]`,
		},
		{
			name:     "error",
			err:      errors.New("queue full"),
			expected: `["error", "queue full"]`,
		},
		{
			name:     "quotes in error",
			err:      errors.New(`opening "C:\props.xml": denied`),
			expected: `["error", "opening \"C:\\props.xml\": denied"]`,
		},
		{
			name:     "error wins over result",
			result:   "queued",
			err:      errors.New("dispatcher closed"),
			expected: `["error", "dispatcher closed"]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatDispatchResponse(tt.result, tt.err))
		})
	}
}

func TestFormatDispatchResponse_UnmarshalableFallsBack(t *testing.T) {
	got := formatDispatchResponse(make(chan int), nil)
	assert.True(t, strings.HasPrefix(got, `["ok", "0x`), got)

	var reply []string
	require.NoError(t, json.Unmarshal([]byte(got), &reply))
	assert.Equal(t, "ok", reply[0])
}

func TestFormatDispatchResponse_IsValidJSON(t *testing.T) {
	got := formatDispatchResponse(nil, errors.New("bad \"props\"\tfile\n"))

	var reply []string
	require.NoError(t, json.Unmarshal([]byte(got), &reply))
	assert.Equal(t, []string{"error", "bad \"props\"\tfile\n"}, reply)
}

func TestFormatDispatchResponse_Status(t *testing.T) {
	got := formatDispatchResponse(monitor.Status{
		Time:        time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC),
		SessionID:   "abc",
		Ticks:       5,
		PropsLoaded: 2,
		LastTick:    time.Millisecond,
	}, nil)

	assert.True(t, strings.HasPrefix(got, `["ok", {`))
	assert.Contains(t, got, `"sessionId":"abc"`)
	assert.Contains(t, got, `"ticks":5`)
	assert.Contains(t, got, `"lastTickNs":1000000`)
}

func TestUnknownCommand(t *testing.T) {
	assert.Equal(t, `["error", ":NOPE:", "no handler registered"]`, unknownCommand(":NOPE:"))
}

func TestSplitCommand(t *testing.T) {
	tests := []struct {
		input   string
		command string
		args    []string
	}{
		{":VERSION:", ":VERSION:", []string{}},
		{":RELOAD:|props.xml", ":RELOAD:", []string{"props.xml"}},
		{":KEYDOWN:|69|extra", ":KEYDOWN:", []string{"69", "extra"}},
		{"", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			command, args := splitCommand(tt.input)
			assert.Equal(t, tt.command, command)
			assert.Equal(t, tt.args, args)
		})
	}
}

func TestNatives_NotReadyReturnsZero(t *testing.T) {
	assert.False(t, NativesReady())
	assert.Equal(t, uint64(0), Natives().Invoke(0x1234).Word())
	assert.Equal(t, "", Natives().ReadString(0))
}
