package main

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/six-cities-api/pkg/mailer"
)

type ackRecorder struct {
	acked   bool
	nacked  bool
	requeue bool
}

func (a *ackRecorder) Ack(uint64, bool) error {
	a.acked = true
	return nil
}
func (a *ackRecorder) Nack(_ uint64, _ bool, requeue bool) error {
	a.nacked, a.requeue = true, requeue
	return nil
}
func (a *ackRecorder) Reject(_ uint64, requeue bool) error {
	a.nacked, a.requeue = true, requeue
	return nil
}

type sent struct{ to, subject, text, html string }

type fakeSender struct {
	err  error
	sent []sent
}

func (s *fakeSender) Send(_ context.Context, to, subject, text, html string) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, sent{to, subject, text, html})
	return nil
}

func delivery(t *testing.T, ack amqp.Acknowledger, job any) amqp.Delivery {
	t.Helper()
	body, err := json.Marshal(job)
	require.NoError(t, err)
	return amqp.Delivery{Acknowledger: ack, DeliveryTag: 1, Body: body}
}

func TestHandle_RendersTemplateAndAcks(t *testing.T) {
	logger, _ := test.NewNullLogger()
	ack := &ackRecorder{}
	sender := &fakeSender{}

	job := mailer.EmailJob{To: "ann@example.test", Template: "welcome", Data: map[string]any{"Name": "Ann", "AppName": "six-cities"}}
	handle(t.Context(), logger, sender, delivery(t, ack, job))

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "ann@example.test", sender.sent[0].to)
	assert.Equal(t, "Welcome to six-cities, Ann", sender.sent[0].subject)
	assert.Contains(t, sender.sent[0].text, "(ann@example.test)")
	assert.True(t, ack.acked)
	assert.False(t, ack.nacked)
}

func TestHandle_BadPayloadIsDropped(t *testing.T) {
	logger, hook := test.NewNullLogger()
	ack := &ackRecorder{}
	sender := &fakeSender{}

	handle(t.Context(), logger, sender, amqp.Delivery{Acknowledger: ack, Body: []byte("{")})

	assert.Empty(t, sender.sent)
	assert.True(t, ack.nacked)
	assert.False(t, ack.requeue)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "bad message", hook.LastEntry().Message)
}

func TestHandle_UnknownTemplateIsDropped(t *testing.T) {
	logger, _ := test.NewNullLogger()
	ack := &ackRecorder{}

	handle(t.Context(), logger, &fakeSender{}, delivery(t, ack, mailer.EmailJob{To: "a@b.test", Template: "nope"}))

	assert.True(t, ack.nacked)
	assert.False(t, ack.requeue)
}

func TestHandle_SendFailureRequeues(t *testing.T) {
	logger, _ := test.NewNullLogger()
	ack := &ackRecorder{}

	job := mailer.EmailJob{To: "a@b.test", Subject: "hi", Text: "plain"}
	handle(t.Context(), logger, &fakeSender{err: errors.New("mailgun down")}, delivery(t, ack, job))

	assert.True(t, ack.nacked)
	assert.True(t, ack.requeue)
	assert.False(t, ack.acked)
}
