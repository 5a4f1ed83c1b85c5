package job

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/deppfellow/venues/internal/config"
	"github.com/deppfellow/venues/internal/model"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestJobService allows loopback targets so httptest servers are reachable.
func newTestJobService(t *testing.T) *JobService {
	t.Helper()

	j := newGuardedJobService(t)
	j.httpClient = newLinkCheckClient(time.Second, nil)
	return j
}

func newGuardedJobService(t *testing.T) *JobService {
	t.Helper()

	logger := zerolog.Nop()
	j := &JobService{logger: &logger}
	j.InitHandlers(&config.Config{Jobs: config.JobsConfig{LinkCheckTimeout: time.Second}}, &logger)
	return j
}

func TestHandleLinkCheckTask_HeadsVenueURL(t *testing.T) {
	var method string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	task, err := NewLinkCheckTask(model.Venue{ID: "1", URL: srv.URL})
	require.NoError(t, err)
	assert.Equal(t, TaskVenueLinkCheck, task.Type())

	require.NoError(t, newTestJobService(t).handleLinkCheckTask(context.Background(), task))
	assert.Equal(t, http.MethodHead, method)
}

func TestHandleLinkCheckTask_SkipsNonHTTPURL(t *testing.T) {
	task, err := NewLinkCheckTask(model.Venue{ID: "1", URL: "not a url"})
	require.NoError(t, err)

	assert.NoError(t, newTestJobService(t).handleLinkCheckTask(context.Background(), task))
}

func TestHandleLinkCheckTask_BadPayloadSkipsRetry(t *testing.T) {
	task := asynq.NewTask(TaskVenueLinkCheck, []byte("{"))

	err := newTestJobService(t).handleLinkCheckTask(context.Background(), task)
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestHandleLinkCheckTask_UnreachableIsRetried(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	unreachable := srv.URL
	srv.Close()

	task, err := NewLinkCheckTask(model.Venue{ID: "1", URL: unreachable})
	require.NoError(t, err)

	err = newTestJobService(t).handleLinkCheckTask(context.Background(), task)
	require.Error(t, err)
	assert.NotErrorIs(t, err, asynq.SkipRetry)
}

func TestHandleLinkCheckTask_RefusesInternalAddresses(t *testing.T) {
	hit := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hit = true
	}))
	defer srv.Close()

	for _, target := range []string{srv.URL, "http://localhost:" + strconv.Itoa(srv.Listener.Addr().(*net.TCPAddr).Port) + "/"} {
		task, err := NewLinkCheckTask(model.Venue{ID: "1", URL: target})
		require.NoError(t, err)

		assert.NoError(t, newGuardedJobService(t).handleLinkCheckTask(context.Background(), task), target)
	}
	assert.False(t, hit)
}

func TestHandleLinkCheckTask_DoesNotFollowRedirects(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		if r.URL.Path == "/venue" {
			http.Redirect(w, r, "/internal", http.StatusFound)
		}
	}))
	defer srv.Close()

	task, err := NewLinkCheckTask(model.Venue{ID: "1", URL: srv.URL + "/venue"})
	require.NoError(t, err)

	require.NoError(t, newTestJobService(t).handleLinkCheckTask(context.Background(), task))
	assert.Equal(t, []string{"/venue"}, paths)
}

func TestPublicAddressOnly(t *testing.T) {
	for _, blocked := range []string{"127.0.0.1", "::1", "10.1.2.3", "172.16.0.1", "192.168.1.1", "169.254.169.254", "100.64.0.1", "0.0.0.0", "fe80::1", "fd00::1"} {
		assert.ErrorIs(t, publicAddressOnly(net.ParseIP(blocked)), ErrBlockedAddress, blocked)
	}
	for _, allowed := range []string{"93.184.216.34", "2606:2800:220:1::"} {
		assert.NoError(t, publicAddressOnly(net.ParseIP(allowed)), allowed)
	}
}
