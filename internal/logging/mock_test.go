package logging

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockLogger_DerivedLoggersShareEntries(t *testing.T) {
	mock := NewMockLogger()
	child := mock.WithField(FieldComponent, "store")
	grandchild := child.WithError(errors.New("boom"))

	mock.Debug("root")
	child.Info("child", Field{Key: FieldCount, Value: 2})
	grandchild.Error("failed")

	entries := mock.GetEntries()
	require.Len(t, entries, 3)
	assert.Equal(t, "DEBUG", entries[0].Level)
	assert.Empty(t, entries[0].Fields)

	component, ok := entries[1].FieldValue(FieldComponent)
	require.True(t, ok)
	assert.Equal(t, "store", component)
	count, _ := entries[1].FieldValue(FieldCount)
	assert.Equal(t, 2, count)

	assert.EqualError(t, entries[2].Error, "boom")
	assert.True(t, mock.HasEntry("ERROR", "failed"))
	assert.Len(t, mock.GetEntriesByLevel("INFO"), 1)

	mock.Clear()
	assert.Empty(t, mock.GetEntries())
}

func TestMockLogger_ZeroValueUsable(t *testing.T) {
	var mock MockLogger
	mock.Warn("careful")
	assert.True(t, mock.HasEntry("WARN", "careful"))
}

func TestConstants(t *testing.T) {
	for _, name := range []string{FieldFile, FieldRunID, FieldLine, FieldCategory, FieldCount, FieldInputFile, FieldOutputFile} {
		assert.NotEmpty(t, name)
	}
}
