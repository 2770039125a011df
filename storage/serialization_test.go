package storage

import (
	"testing"
	"time"

	"github.com/poiesic/omnisearch/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalID(t *testing.T) {
	tests := []struct {
		name string
		id   core.ID
	}{
		{"zero ID", core.ID(0)},
		{"small ID", core.ID(42)},
		{"large ID", core.ID(18446744073709551615)}, // max uint64
		{"content-based ID", core.IDFromContent("test content")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Marshal
			data := MarshalID(tt.id)
			require.NotNil(t, data)
			require.NotEmpty(t, data)

			// Unmarshal
			decoded, err := UnmarshalID(data)
			require.NoError(t, err)
			assert.Equal(t, tt.id, decoded)
		})
	}
}

func TestUnmarshalID_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty data", []byte{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalID(tt.data)
			assert.Error(t, err)
		})
	}
}

func TestMarshalUnmarshalHistoryEntry(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	tests := []struct {
		name  string
		entry *core.HistoryEntry
	}{
		{
			name:  "minimal entry",
			entry: core.NewHistoryEntry("hello", nil, 0, now),
		},
		{
			name:  "entry with sources",
			entry: core.NewHistoryEntry(`project:core "race condition"`, []string{"jira", "slack"}, 17, now),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalHistoryEntry(tt.entry)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalHistoryEntry(data)
			require.NoError(t, err)
			assert.Equal(t, tt.entry.Id, decoded.Id)
			assert.Equal(t, tt.entry.Query, decoded.Query)
			assert.Equal(t, tt.entry.Sources, decoded.Sources)
			assert.Equal(t, tt.entry.ResultCount, decoded.ResultCount)
			assert.True(t, tt.entry.SearchedAt.Equal(decoded.SearchedAt))
			// Decoded entries match what NewHistoryEntry builds
			assert.Equal(t, tt.entry, decoded)
		})
	}
}

func TestUnmarshalHistoryEntry_Invalid(t *testing.T) {
	entry := core.NewHistoryEntry("status:open", []string{"jira"}, 1, time.Now())
	data := MarshalHistoryEntry(entry)

	tests := []struct {
		name string
		data []byte
	}{
		{"empty data", []byte{}},
		{"truncated data", data[:len(data)-1]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalHistoryEntry(tt.data)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrSerializationFailed)
		})
	}
}
