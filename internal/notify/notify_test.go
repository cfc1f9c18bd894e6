package notify

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/glory-keeper/internal/logger"
	"github.com/MKhiriev/glory-keeper/internal/utils"
	"github.com/MKhiriev/glory-keeper/models"
)

type recordingHandler struct {
	mu     sync.Mutex
	events []models.Event
	block  chan struct{}
	err    error
}

func (r *recordingHandler) Name() string { return "recording" }

func (r *recordingHandler) Handle(_ context.Context, e models.Event) error {
	if r.block != nil {
		<-r.block
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return r.err
}

func (r *recordingHandler) snapshot() []models.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Event(nil), r.events...)
}

type panickingHandler struct{}

func (panickingHandler) Name() string { return "panic" }

func (panickingHandler) Handle(context.Context, models.Event) error { panic("boom") }

func TestDispatcher_DeliversInOrderAndDrainsOnClose(t *testing.T) {
	rec := &recordingHandler{}
	d := NewDispatcher(16, time.Second, logger.Nop(), rec)

	d.Notify(models.Event{Kind: models.EventStarted, AccountID: "a"})
	d.Notify(models.Event{Kind: models.EventStopped, AccountID: "a"})

	require.NoError(t, d.Close(context.Background()))

	got := rec.snapshot()
	require.Len(t, got, 2)
	assert.Equal(t, models.EventStarted, got[0].Kind)
	assert.Equal(t, models.EventStopped, got[1].Kind)
	assert.False(t, got[0].At.IsZero())
}

func TestDispatcher_DropsWhenFull(t *testing.T) {
	rec := &recordingHandler{block: make(chan struct{})}
	d := NewDispatcher(1, time.Second, logger.Nop(), rec)

	// One event is picked up by the blocked handler, one sits in the queue.
	d.Notify(models.Event{Kind: models.EventStarted})
	require.Eventually(t, func() bool { return len(d.queue) == 0 }, time.Second, time.Millisecond)
	d.Notify(models.Event{Kind: models.EventStarted})
	d.Notify(models.Event{Kind: models.EventStarted})

	assert.Equal(t, int64(1), d.Dropped())

	close(rec.block)
	require.NoError(t, d.Close(context.Background()))
	assert.Len(t, rec.snapshot(), 2)
}

func TestDispatcher_HandlerFailuresAreIsolated(t *testing.T) {
	failing := &recordingHandler{err: errors.New("down")}
	ok := &recordingHandler{}
	d := NewDispatcher(4, time.Second, logger.Nop(), panickingHandler{}, failing, ok)

	d.Notify(models.Event{Kind: models.EventError, Message: "x"})
	require.NoError(t, d.Close(context.Background()))

	assert.Len(t, failing.snapshot(), 1)
	assert.Len(t, ok.snapshot(), 1)
}

func TestDispatcher_NotifyAfterCloseIsIgnored(t *testing.T) {
	rec := &recordingHandler{}
	d := NewDispatcher(4, time.Second, logger.Nop(), rec)
	require.NoError(t, d.Close(context.Background()))
	require.NoError(t, d.Close(context.Background()))

	assert.NotPanics(t, func() { d.Notify(models.Event{Kind: models.EventStarted}) })
	assert.Empty(t, rec.snapshot())
}

func TestDispatcher_CloseBoundedByContext(t *testing.T) {
	rec := &recordingHandler{block: make(chan struct{})}
	defer close(rec.block)
	d := NewDispatcher(4, time.Second, logger.Nop(), rec)
	d.Notify(models.Event{Kind: models.EventStarted})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, d.Close(ctx), context.DeadlineExceeded)
}

func TestLogHandler(t *testing.T) {
	h := NewLogHandler(logger.Nop())
	assert.Equal(t, "log", h.Name())
	assert.NoError(t, h.Handle(context.Background(), models.Event{Kind: models.EventError}))
}

func TestWebhookHandler_SignsBody(t *testing.T) {
	var gotSig string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSig = r.Header.Get(SignatureHeader)
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	h := NewWebhookHandler(srv.URL, "secret", time.Second)
	err := h.Handle(context.Background(), models.Event{Kind: models.EventSyncCompleted, Message: "ok"})
	require.NoError(t, err)

	assert.Contains(t, string(gotBody), `"kind":"syncCompleted"`)
	assert.Equal(t, utils.HashString(gotBody, "secret"), gotSig)
}

func TestWebhookHandler_NoSecretNoSignature(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get(SignatureHeader))
	}))
	defer srv.Close()

	h := NewWebhookHandler(srv.URL, "", time.Second)
	assert.NoError(t, h.Handle(context.Background(), models.Event{Kind: models.EventStarted}))
}

func TestWebhookHandler_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	h := NewWebhookHandler(srv.URL, "", time.Second)
	err := h.Handle(context.Background(), models.Event{Kind: models.EventStarted})
	assert.ErrorIs(t, err, ErrWebhookRejected)
}
