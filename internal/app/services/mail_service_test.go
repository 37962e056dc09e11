package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/dstcrm/dstcrm/internal/pkg/apperrors"
)

type fakeSender struct {
	sent    []string
	failFor map[string]error
}

func (f *fakeSender) Send(toEmail, subject, body string) error {
	if err, ok := f.failFor[toEmail]; ok {
		return err
	}
	f.sent = append(f.sent, toEmail)
	return nil
}

func TestMailServiceSendsOnePerRecipient(t *testing.T) {
	sender := &fakeSender{}
	svc := NewMailService(sender, zerolog.Nop())

	resp, err := svc.Send(context.Background(), []string{"a@x.com", "b@x.com"}, "Subject", "Body")
	assert.NoError(t, err)
	assert.True(t, resp.OK)
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, []string{"a@x.com", "b@x.com"}, sender.sent)

	for _, result := range resp.Results {
		assert.Equal(t, "sent", result.Status)
	}
}

func TestMailServiceEmptyRecipients(t *testing.T) {
	sender := &fakeSender{}
	svc := NewMailService(sender, zerolog.Nop())

	_, err := svc.Send(context.Background(), nil, "Subject", "Body")
	assert.ErrorIs(t, err, apperrors.ErrNoRecipients)
	assert.Empty(t, sender.sent, "no send may be issued for an empty list")
}

func TestMailServicePartialFailure(t *testing.T) {
	sender := &fakeSender{failFor: map[string]error{"b@x.com": errors.New("mailbox full")}}
	svc := NewMailService(sender, zerolog.Nop())

	resp, err := svc.Send(context.Background(), []string{"a@x.com", "b@x.com"}, "Subject", "Body")
	assert.NoError(t, err)
	assert.Equal(t, 1, resp.Count)
	assert.Len(t, resp.Results, 2)
	assert.Equal(t, "sent", resp.Results[0].Status)
	assert.Equal(t, "error", resp.Results[1].Status)
	assert.Contains(t, resp.Results[1].Info, "mailbox full")
}

func TestMailServiceAllSendsFailed(t *testing.T) {
	sender := &fakeSender{failFor: map[string]error{
		"a@x.com": errors.New("down"),
		"b@x.com": errors.New("down"),
	}}
	svc := NewMailService(sender, zerolog.Nop())

	_, err := svc.Send(context.Background(), []string{"a@x.com", "b@x.com"}, "Subject", "Body")
	assert.ErrorIs(t, err, apperrors.ErrAllSendsFailed)
}
