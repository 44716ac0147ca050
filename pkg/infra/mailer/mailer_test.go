package mailer

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/NeuralTrust/SafeChat/pkg/config"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"
)

type fakeDeliverer struct {
	sent []*mail.Msg
	err  error
}

func (f *fakeDeliverer) DialAndSendWithContext(_ context.Context, messages ...*mail.Msg) error {
	f.sent = append(f.sent, messages...)
	return f.err
}

func newTestMailer(d deliverer) *smtpMailer {
	logger, _ := logrustest.NewNullLogger()
	return &smtpMailer{from: "alerts@example.com", logger: logger, client: d}
}

func TestSend_NoHostIsNoop(t *testing.T) {
	logger, _ := logrustest.NewNullLogger()
	m, err := NewSMTPMailer(config.SMTPConfig{}, logger)
	require.NoError(t, err)

	assert.NoError(t, m.Send(context.Background(), []string{"ops@example.com"}, "hi", "body"))
}

func TestNewSMTPMailer_WithHost(t *testing.T) {
	logger, _ := logrustest.NewNullLogger()
	m, err := NewSMTPMailer(config.SMTPConfig{
		Host:     "smtp.example.com",
		Port:     587,
		Username: "alerts",
		Password: "secret",
		From:     "alerts@example.com",
	}, logger)

	require.NoError(t, err)
	assert.NotNil(t, m.(*smtpMailer).client)
}

func TestSend_DeliversMessage(t *testing.T) {
	d := &fakeDeliverer{}
	m := newTestMailer(d)

	err := m.Send(context.Background(), []string{"a@example.com", "b@example.com"}, "Crisis alert", "line1\nline2")

	require.NoError(t, err)
	require.Len(t, d.sent, 1)
	recipients, err := d.sent[0].GetRecipients()
	require.NoError(t, err)
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, recipients)
	assert.Equal(t, []string{"Crisis alert"}, d.sent[0].GetGenHeader(mail.HeaderSubject))

	var raw bytes.Buffer
	_, err = d.sent[0].WriteTo(&raw)
	require.NoError(t, err)
	assert.Contains(t, raw.String(), "line1")
	assert.Contains(t, raw.String(), "line2")
}

func TestSend_Errors(t *testing.T) {
	m := newTestMailer(&fakeDeliverer{err: errors.New("connection refused")})

	assert.ErrorIs(t, m.Send(context.Background(), nil, "s", "b"), ErrNoRecipients)
	assert.Error(t, m.Send(context.Background(), []string{"a@example.com"}, "s", "b"))
	assert.Error(t, m.Send(context.Background(), []string{"not an address"}, "s", "b"))
}

func TestSend_StripsHeaderInjection(t *testing.T) {
	d := &fakeDeliverer{}
	m := newTestMailer(d)

	require.NoError(t, m.Send(context.Background(), []string{"to@example.com"}, "x\r\nBcc: evil@example.com", "b"))

	require.Len(t, d.sent, 1)
	subject := d.sent[0].GetGenHeader(mail.HeaderSubject)
	require.Len(t, subject, 1)
	assert.NotContains(t, subject[0], "\n")
	assert.Empty(t, d.sent[0].GetBccString())
}
