package event

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/sereci/sirepre/internal/domain/registration"
	"github.com/sereci/sirepre/internal/domain/shared"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func registeredEvent() *registration.ApplicantRegisteredEvent {
	venue := uuid.New()
	return &registration.ApplicantRegisteredEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(registration.EventTypeApplicantRegistered, registration.AggregateTypeApplicant, uuid.New()),
		CedulaIdentidad:  4567890,
		Complemento:      "1A",
		NombreCompleto:   "JUAN PEREZ MAMANI",
		CargoPostulacion: "NOTARIO ELECTORAL",
		RecintoPrimera:   &venue,
	}
}

func TestKafkaForwarder_Handle(t *testing.T) {
	w := &fakeWriter{}
	f := NewKafkaForwarder(w, nil, nil)
	ev := registeredEvent()

	require.NoError(t, f.Handle(context.Background(), ev))
	require.Len(t, w.msgs, 1)
	msg := w.msgs[0]
	assert.Equal(t, ev.AggregateID().String(), string(msg.Key))
	assert.Equal(t, "event_type", msg.Headers[0].Key)
	assert.Equal(t, registration.EventTypeApplicantRegistered, string(msg.Headers[0].Value))

	decoded, err := NewEventSerializer().Deserialize(msg.Value)
	require.NoError(t, err)
	got, ok := decoded.(*registration.ApplicantRegisteredEvent)
	require.True(t, ok)
	assert.Equal(t, ev.CedulaIdentidad, got.CedulaIdentidad)
	assert.Equal(t, ev.EventID(), got.EventID())
	assert.Equal(t, *ev.RecintoPrimera, *got.RecintoPrimera)

	require.NoError(t, f.Close())
	assert.True(t, w.closed)
	assert.Empty(t, f.EventTypes())
}

func TestKafkaForwarder_WriteFailureStaysInsideBus(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	bus := NewInMemoryEventBus(zap.New(core))
	bus.Subscribe(NewKafkaForwarder(&fakeWriter{err: errors.New("broker down")}, nil, nil))

	require.NoError(t, bus.Publish(context.Background(), registeredEvent()))
	assert.Equal(t, 1, logs.Len())
}

func TestEventSerializer_UnknownType(t *testing.T) {
	s := NewEventSerializer()
	assert.True(t, s.IsRegistered(registration.EventTypeReviewRecorded))

	data, err := s.Serialize(newTestEvent("Mystery"))
	require.NoError(t, err)
	_, err = s.Deserialize(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown event type")
}

func TestAuditLogHandler(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	h := NewAuditLogHandler(zap.New(core))

	require.NoError(t, h.Handle(context.Background(), registeredEvent()))
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "audit", entry.LoggerName)
	assert.Equal(t, int64(4567890), entry.ContextMap()["cedula"])
	assert.Len(t, h.EventTypes(), 2)
}
