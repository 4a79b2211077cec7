package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleEvent struct {
	At    time.Time `json:"at"`
	Run   string    `json:"run"`
	Count int       `json:"count"`
}

func (e sampleEvent) EventType() string     { return "sample.happened" }
func (e sampleEvent) AggregateID() string   { return e.Run }
func (e sampleEvent) OccurredAt() time.Time { return e.At }

func TestNewEnvelope(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.FixedZone("X", 3600))
	env, err := NewEnvelope(sampleEvent{At: at, Run: "run-1", Count: 3})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, env.ID)
	assert.Equal(t, "sample.happened", env.Type)
	assert.Equal(t, "run-1", env.AggregateID)
	assert.Equal(t, time.UTC, env.OccurredAt.Location())

	var decoded sampleEvent
	require.NoError(t, json.Unmarshal(env.Payload, &decoded))
	assert.Equal(t, 3, decoded.Count)
}

func TestEventCollector(t *testing.T) {
	var c EventCollector
	assert.Equal(t, 0, c.PendingEvents())

	c.Record(sampleEvent{Run: "a"})
	c.Record(sampleEvent{Run: "b"})
	assert.Equal(t, 2, c.PendingEvents())

	drained := c.DrainEvents()
	require.Len(t, drained, 2)
	assert.Equal(t, "a", drained[0].AggregateID())
	assert.Equal(t, 0, c.PendingEvents())
	assert.Empty(t, c.DrainEvents())
}
