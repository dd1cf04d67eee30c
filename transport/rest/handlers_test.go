package rest

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-scoreboard/internal/entity"
	"github.com/rocketscienceinc/tictactoe-scoreboard/internal/metrics"
	"github.com/rocketscienceinc/tictactoe-scoreboard/internal/sessionstore"
	"github.com/rocketscienceinc/tictactoe-scoreboard/internal/usecase"
)

const testSessionName = "session"

type testServer struct {
	*httptest.Server
	client  *http.Client
	metrics *metrics.Metrics
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := sessionstore.NewCookieStore([]byte("0123456789abcdef0123456789abcdef"), sessionstore.Options{MaxAge: 3600})
	appMetrics := metrics.New(prometheus.NewRegistry())

	handler := NewScoreHandler(logger, testSessionName, usecase.NewScoreUseCase(logger), appMetrics)
	server, err := New(logger, "0", store, handler, appMetrics)
	require.NoError(t, err)

	httpServer := httptest.NewServer(server.Handler())
	t.Cleanup(httpServer.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &testServer{
		Server:  httpServer,
		client:  &http.Client{Jar: jar},
		metrics: appMetrics,
	}
}

func (that *testServer) get(t *testing.T, path string) (int, string) {
	t.Helper()

	resp, err := that.client.Get(that.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, string(body)
}

func (that *testServer) getScores(t *testing.T, path string) entity.ScoreState {
	t.Helper()

	status, body := that.get(t, path)
	require.Equal(t, http.StatusOK, status)

	var state entity.ScoreState
	require.NoError(t, json.Unmarshal([]byte(body), &state))

	return state
}

func TestIndex(t *testing.T) {
	t.Run("New session renders zero scores", func(t *testing.T) {
		srv := newTestServer(t)

		// When: a new visitor opens the page
		status, body := srv.get(t, "/")

		// Then: both scores are shown as zero
		require.Equal(t, http.StatusOK, status)
		assert.Contains(t, body, `<span id="player-x-score">0</span>`)
		assert.Contains(t, body, `<span id="player-o-score">0</span>`)
		assert.InDelta(t, 1, testutil.ToFloat64(srv.metrics.ScoreViews), 0)
	})

	t.Run("Page view initializes the session", func(t *testing.T) {
		srv := newTestServer(t)

		// When: the page is opened
		srv.get(t, "/")

		// Then: a session cookie was issued
		cookies := srv.client.Jar.Cookies(mustURL(t, srv.URL))
		require.Len(t, cookies, 1)
		assert.Equal(t, testSessionName, cookies[0].Name)
	})
}

func TestUpdateScore(t *testing.T) {
	t.Run("Three X increments", func(t *testing.T) {
		srv := newTestServer(t)

		// When: X scores three times
		var state entity.ScoreState
		for i := 0; i < 3; i++ {
			state = srv.getScores(t, "/update_score/X")
		}

		// Then: the last response counts three points for X
		assert.Equal(t, entity.ScoreState{PlayerXScore: 3, PlayerOScore: 0}, state)
		assert.InDelta(t, 3, testutil.ToFloat64(srv.metrics.ScoreIncrements.WithLabelValues("X")), 0)
	})

	t.Run("Response uses camel case keys", func(t *testing.T) {
		srv := newTestServer(t)

		status, body := srv.get(t, "/update_score/O")

		require.Equal(t, http.StatusOK, status)
		assert.JSONEq(t, `{"playerXScore":0,"playerOScore":1}`, body)
	})

	t.Run("Invalid player is a silent no-op", func(t *testing.T) {
		srv := newTestServer(t)

		// Given: O has scored once
		srv.getScores(t, "/update_score/O")

		// When: an unknown player scores
		state := srv.getScores(t, "/update_score/Q")

		// Then: the scores are unchanged and no error is reported
		assert.Equal(t, entity.ScoreState{PlayerOScore: 1}, state)
		assert.InDelta(t, 1, testutil.ToFloat64(srv.metrics.InvalidPlayers), 0)
	})

	t.Run("Invalid player on a new session returns zeros without a cookie", func(t *testing.T) {
		srv := newTestServer(t)

		state := srv.getScores(t, "/update_score/Q")

		assert.Equal(t, entity.ScoreState{}, state)
		assert.Empty(t, srv.client.Jar.Cookies(mustURL(t, srv.URL)))
	})
}

func TestResetScores(t *testing.T) {
	srv := newTestServer(t)

	// Given: both players have scores
	srv.getScores(t, "/update_score/X")
	srv.getScores(t, "/update_score/X")
	srv.getScores(t, "/update_score/X")
	srv.getScores(t, "/update_score/O")

	// When: the scores are reset
	state := srv.getScores(t, "/reset_scores")

	// Then: both are zero and the page reflects it
	assert.Equal(t, entity.ScoreState{}, state)

	status, body := srv.get(t, "/")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `<span id="player-x-score">0</span>`)
	assert.Contains(t, body, `<span id="player-o-score">0</span>`)

	// And: counting starts again from zero
	assert.Equal(t, entity.ScoreState{PlayerOScore: 1}, srv.getScores(t, "/update_score/O"))
}

func TestSessionsAreIsolated(t *testing.T) {
	srv := newTestServer(t)

	// Given: one visitor has scored
	srv.getScores(t, "/update_score/X")

	// When: another visitor without cookies asks
	resp, err := http.Get(srv.URL + "/update_score/O")
	require.NoError(t, err)
	defer resp.Body.Close()

	var state entity.ScoreState
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&state))

	// Then: it sees only its own score
	assert.Equal(t, entity.ScoreState{PlayerOScore: 1}, state)
}

func TestTamperedCookieStartsFreshSession(t *testing.T) {
	srv := newTestServer(t)

	// Given: a request with a forged session cookie
	req, err := http.NewRequest(http.MethodGet, srv.URL+"/update_score/X", nil)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: testSessionName, Value: "forged"})

	// When: it is served
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	// Then: it is handled as a new session
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var state entity.ScoreState
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&state))
	assert.Equal(t, entity.ScoreState{PlayerXScore: 1}, state)
}

func TestPingAndMetrics(t *testing.T) {
	srv := newTestServer(t)

	status, body := srv.get(t, "/ping")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "pong", body)

	srv.getScores(t, "/reset_scores")

	status, body = srv.get(t, "/metrics")
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, strings.Contains(body, "scoreboard_score_resets_total 1"))
}

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()

	parsed, err := url.Parse(raw)
	require.NoError(t, err)

	return parsed
}
