package event

import (
	"bufio"
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readDeadLetters(t *testing.T, path string) []DeadLetterEntry {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var entries []DeadLetterEntry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry DeadLetterEntry
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
		entries = append(entries, entry)
	}
	require.NoError(t, scanner.Err())
	return entries
}

func TestDeadLetterWriterAppendsJSONLines(t *testing.T) {
	path := t.TempDir() + "/events.jsonl"
	writer, err := NewDeadLetterWriter(path)
	require.NoError(t, err)
	defer writer.Close()

	first := Event{Version: EventSchemaVersion, Type: ItemBroken}
	second := Event{Version: EventSchemaVersion, Type: CreatureDied}
	require.NoError(t, writer.Write(first, errors.New("sink one")))
	require.NoError(t, writer.Write(second, errors.New("sink two")))

	entries := readDeadLetters(t, path)
	require.Len(t, entries, 2)
	assert.Equal(t, ItemBroken, entries[0].Event.Type)
	assert.Equal(t, "sink one", entries[0].LastError)
	assert.Equal(t, CreatureDied, entries[1].Event.Type)
	assert.False(t, entries[0].Timestamp.IsZero())
}

func TestNewDeadLetterWriterCreatesParentDirectory(t *testing.T) {
	path := t.TempDir() + "/nested/dir/events.jsonl"

	writer, err := NewDeadLetterWriter(path)

	require.NoError(t, err)
	require.NoError(t, writer.Close())
	_, err = os.Stat(path)
	assert.NoError(t, err)
}
