package kafka

import (
	"context"
	"testing"
	"time"

	"github.com/segmentio/kafka-go/sasl/plain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProducer(t *testing.T) {
	p, err := NewProducer(Config{
		Brokers:  []string{"localhost:9092", "localhost:9093"},
		ClientID: "risk-analysis",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"localhost:9092", "localhost:9093"}, p.brokers)
	assert.Equal(t, 10*time.Millisecond, p.batchTimeout)
	assert.Equal(t, "risk-analysis", p.transport.ClientID)
	assert.Nil(t, p.transport.TLS)
	assert.Nil(t, p.transport.SASL)
	assert.Empty(t, p.writers)
}

func TestNewProducerRequiresBrokers(t *testing.T) {
	_, err := NewProducer(Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one broker")
}

func TestNewProducerSecurity(t *testing.T) {
	tests := []struct {
		name      string
		mechanism string
		wantErr   bool
	}{
		{name: "default is plain", mechanism: ""},
		{name: "plain", mechanism: "PLAIN"},
		{name: "scram sha256", mechanism: "SCRAM-SHA-256"},
		{name: "scram sha512", mechanism: "scram-sha-512"},
		{name: "unsupported", mechanism: "GSSAPI", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProducer(Config{
				Brokers:       []string{"kafka:9092"},
				TLS:           true,
				SASLEnabled:   true,
				SASLMechanism: tt.mechanism,
				SASLUsername:  "user",
				SASLPassword:  "secret",
			})
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, p.transport.TLS)
			assert.NotNil(t, p.transport.SASL)
		})
	}
}

func TestPlainMechanismCarriesCredentials(t *testing.T) {
	mechanism, err := Config{SASLMechanism: "PLAIN", SASLUsername: "u", SASLPassword: "p"}.saslMechanism()
	require.NoError(t, err)
	assert.Equal(t, plain.Mechanism{Username: "u", Password: "p"}, mechanism)
}

func TestGetOrCreateWriter(t *testing.T) {
	p, err := NewProducer(Config{Brokers: []string{"localhost:9092"}, BatchTimeout: time.Second})
	require.NoError(t, err)

	w1 := p.getOrCreateWriter("topic-a")
	require.NotNil(t, w1)
	assert.Equal(t, time.Second, w1.BatchTimeout)

	// Same topic should return the same writer instance.
	assert.Same(t, w1, p.getOrCreateWriter("topic-a"))

	w3 := p.getOrCreateWriter("topic-b")
	assert.NotSame(t, w1, w3)
	assert.Len(t, p.writers, 2)
}

func TestPublishWithoutMessagesIsNoop(t *testing.T) {
	p, err := NewProducer(Config{Brokers: []string{"localhost:9092"}})
	require.NoError(t, err)

	require.NoError(t, p.Publish(context.Background(), "topic-a"))
	assert.Empty(t, p.writers)
}

func TestProducerClose(t *testing.T) {
	p, err := NewProducer(Config{Brokers: []string{"localhost:9092"}})
	require.NoError(t, err)

	_ = p.getOrCreateWriter("topic-a")
	_ = p.getOrCreateWriter("topic-b")
	require.Len(t, p.writers, 2)

	require.NoError(t, p.Close())
	assert.Empty(t, p.writers)
}
