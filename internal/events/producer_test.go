package events

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/internal/config"
)

func TestBuildMessage(t *testing.T) {
	msg, err := buildMessage(TopicCart, "user-1", map[string]any{
		"type":     CartItemAdded,
		"userId":   "user-1",
		"quantity": 2,
	})
	require.NoError(t, err)

	assert.Equal(t, TopicCart, msg.Topic)
	assert.Equal(t, []byte("user-1"), msg.Key)
	assert.WithinDuration(t, time.Now(), msg.Time, time.Minute)

	var event map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &event))
	assert.Equal(t, CartItemAdded, event["type"])
	assert.EqualValues(t, 2, event["quantity"])

	_, err = buildMessage(TopicCart, "k", map[string]any{"bad": make(chan int)})
	require.Error(t, err)
}

func TestRecorder(t *testing.T) {
	var p Publisher = &Recorder{}
	require.NoError(t, p.PublishEvent(context.Background(), TopicProduct, "p1", map[string]any{"type": ProductCreated}))

	events := p.(*Recorder).Events()
	require.Len(t, events, 1)
	assert.Equal(t, TopicProduct, events[0].Topic)
	assert.Equal(t, "p1", events[0].Key)
	assert.Equal(t, ProductCreated, events[0].Event["type"])

	failing := &Recorder{Err: errors.New("broker down")}
	require.Error(t, failing.PublishEvent(context.Background(), TopicCart, "u", map[string]any{}))
	assert.Empty(t, failing.Events())

	var nop Publisher = Nop{}
	require.NoError(t, nop.PublishEvent(context.Background(), TopicCart, "u", nil))
	require.NoError(t, nop.Close())
}

func TestProducer_Kafka(t *testing.T) {
	brokers := config.CSV(os.Getenv("KAFKA_BROKERS"))
	if len(brokers) == 0 {
		t.Skip("KAFKA_BROKERS not set")
	}
	require.NoError(t, EnsureTopics(brokers[0], TopicCart, TopicProduct))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	conn, err := kafka.DialLeader(ctx, "tcp", brokers[0], TopicCart, 0)
	require.NoError(t, err)
	end, err := conn.ReadLastOffset()
	require.NoError(t, err)
	_ = conn.Close()

	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:   brokers,
		Topic:     TopicCart,
		Partition: 0,
		MinBytes:  1,
		MaxBytes:  10e6,
		MaxWait:   time.Second,
	})
	defer r.Close()
	require.NoError(t, r.SetOffset(end))

	p := NewProducer(brokers)
	defer p.Close()
	require.NoError(t, p.PublishEvent(ctx, TopicCart, "it-user", map[string]any{"type": CartCleared, "userId": "it-user"}))

	m, err := r.ReadMessage(ctx)
	require.NoError(t, err)
	var event map[string]any
	require.NoError(t, json.Unmarshal(m.Value, &event))
	assert.Equal(t, CartCleared, event["type"])
	assert.Equal(t, "it-user", string(m.Key))
}
