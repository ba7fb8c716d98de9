package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"puericultura/internal/calendar"
	"puericultura/internal/domain/visits"
	"puericultura/internal/platform/httpclient"
	"puericultura/internal/ports/reminders"
)

func TestDispatch(t *testing.T) {
	var got payload
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	d, err := New(srv.URL, "tok", time.Second)
	require.NoError(t, err)

	err = d.Dispatch(context.Background(), reminders.Message{
		ChildID:   "c1",
		VisitID:   "2024-01-03-2",
		Contact:   "+55 11 99999-0000",
		Milestone: "1 Mês",
		DueDate:   calendar.New(2024, time.February, 5),
		Reminder:  visits.Reminder{WhatsApp: "oi", EmailSubject: "s", EmailBody: "b"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok", auth)
	assert.Equal(t, "2024-02-05", got.ScheduledDate)
	assert.Equal(t, "oi", got.WhatsApp)
	assert.Equal(t, "+55 11 99999-0000", got.Contact)
}

func TestDispatch_GatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "number not on whatsapp", http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	d, err := New(srv.URL, "", time.Second)
	require.NoError(t, err)

	err = d.Dispatch(context.Background(), reminders.Message{Contact: "x"})
	var httpErr *httpclient.StatusError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnprocessableEntity, httpErr.StatusCode)

	assert.Error(t, d.Dispatch(context.Background(), reminders.Message{}))

	_, err = New(" ", "", time.Second)
	assert.Error(t, err)
}
