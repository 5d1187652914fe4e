package transport

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Anees44/trae-dating-project/internal/pkg/log"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

type capHandler struct {
	base    []slog.Attr
	lastMsg string
	lastLvl slog.Level
	attrs   map[string]any
	count   map[string]int
}

func (h *capHandler) Enabled(context.Context, slog.Level) bool { return true }
func (h *capHandler) Handle(_ context.Context, r slog.Record) error {
	out := make(map[string]any, len(h.base)+8)
	for _, a := range h.base {
		out[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		out[a.Key] = a.Value.Any()
		return true
	})
	if h.count == nil {
		h.count = make(map[string]int)
	}
	h.count[r.Message]++
	h.lastMsg = r.Message
	h.lastLvl = r.Level
	h.attrs = out
	return nil
}

func (h *capHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h.base = append(h.base, attrs...)
	return h
}

func (h *capHandler) WithGroup(string) slog.Handler { return h }

func okResponse(r *http.Request) *http.Response {
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader("{}")),
		Header:     http.Header{},
		Request:    r,
	}
}

func newRequest(t *testing.T, ctx context.Context) *http.Request {
	t.Helper()
	r, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://backend/api/matches", nil)
	require.NoError(t, err)
	return r
}

func TestWithMetadata_SetsHeaders(t *testing.T) {
	t.Parallel()

	var got http.Header
	rt := WithMetadata("portal-test")(RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		got = r.Header
		return okResponse(r), nil
	}))

	orig := newRequest(t, WithRequestID(context.Background(), "rid-1"))
	_, err := rt.RoundTrip(orig)
	require.NoError(t, err)

	require.Equal(t, "rid-1", got.Get("X-Request-Id"))
	require.Equal(t, "portal-test", got.Get("User-Agent"))
	// исходный запрос не мутируется.
	require.Empty(t, orig.Header.Get("X-Request-Id"))
}

func TestWithMetadata_GeneratesRequestID(t *testing.T) {
	t.Parallel()

	var rid string
	rt := WithMetadata("")(RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		rid = r.Header.Get("X-Request-Id")
		require.Empty(t, r.Header.Get("User-Agent"))
		return okResponse(r), nil
	}))

	_, err := rt.RoundTrip(newRequest(t, context.Background()))
	require.NoError(t, err)

	_, err = uuid.Parse(rid)
	require.NoError(t, err)
}

func TestWithTimeout_DeadlineExceeded(t *testing.T) {
	t.Parallel()

	const d = 40 * time.Millisecond
	rt := WithTimeout(d)(RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		<-r.Context().Done()
		return nil, r.Context().Err()
	}))

	start := time.Now()
	_, err := rt.RoundTrip(newRequest(t, context.Background()))
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.GreaterOrEqual(t, time.Since(start), d)
}

func TestWithTimeout_Zero(t *testing.T) {
	t.Parallel()

	var hasDL bool
	rt := WithTimeout(0)(RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		_, hasDL = r.Context().Deadline()
		return okResponse(r), nil
	}))
	_, err := rt.RoundTrip(newRequest(t, context.Background()))
	require.NoError(t, err)
	require.False(t, hasDL)
}

func TestWithTimeout_ShorterThanRequestDeadline(t *testing.T) {
	t.Parallel()

	// входящий запрос живёт 15s, вызов к бэкенду должен оборваться по своему сроку
	parent, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	rt := Chain(RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		select {
		case <-time.After(time.Second):
			return okResponse(r), nil
		case <-r.Context().Done():
			return nil, r.Context().Err()
		}
	}), WithTimeout(100*time.Millisecond))

	start := time.Now()
	_, err := rt.RoundTrip(newRequest(t, parent))
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Less(t, time.Since(start), 900*time.Millisecond)
}

func TestWithTimeout_EarlierRequestDeadlineKept(t *testing.T) {
	t.Parallel()

	parent, cancel := context.WithTimeout(context.Background(), 25*time.Millisecond)
	defer cancel()
	parentDL, _ := parent.Deadline()

	var childDL time.Time
	rt := WithTimeout(time.Second)(RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		childDL, _ = r.Context().Deadline()
		return okResponse(r), nil
	}))
	_, err := rt.RoundTrip(newRequest(t, parent))
	require.NoError(t, err)
	require.Equal(t, parentDL, childDL)
}

func TestWithTimeout_BodyReadableAfterReturn(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"ok":true}`)
	}))
	defer srv.Close()

	client := &http.Client{Transport: Chain(http.DefaultTransport, WithTimeout(time.Second))}
	resp, err := client.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.JSONEq(t, `{"ok":true}`, string(b))
}

func TestWithLogging_LogsAndPutsLoggerIntoContext(t *testing.T) {
	t.Parallel()

	h := &capHandler{}
	rt := WithLogging(slog.New(h))(RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		log.From(r.Context()).Info("inner")
		return &http.Response{StatusCode: http.StatusNotFound, Body: http.NoBody, Request: r}, nil
	}))

	r := newRequest(t, WithOperation(context.Background(), "Matches"))
	r.Header.Set("X-Request-Id", "rid-9")
	_, err := rt.RoundTrip(r)
	require.NoError(t, err)

	require.Equal(t, 1, h.count["inner"])
	require.Equal(t, "backend_call", h.lastMsg)
	require.Equal(t, slog.LevelInfo, h.lastLvl)
	require.EqualValues(t, http.StatusNotFound, h.attrs["status"])
	require.Equal(t, "Matches", h.attrs["operation"])
	require.Equal(t, "rid-9", h.attrs["request_id"])
	require.Equal(t, "/api/matches", h.attrs["path"])
}

func TestWithLogging_TransportError(t *testing.T) {
	t.Parallel()

	h := &capHandler{}
	rt := WithLogging(slog.New(h))(RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		return nil, errors.New("dial tcp: refused")
	}))

	_, err := rt.RoundTrip(newRequest(t, context.Background()))
	require.Error(t, err)
	require.Equal(t, slog.LevelWarn, h.lastLvl)
	require.Equal(t, "unknown", h.attrs["operation"])
}

func TestWithMetrics_CountsByStatusClass(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	status := http.StatusOK
	rt := Chain(RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		if status == 0 {
			return nil, errors.New("down")
		}
		return &http.Response{StatusCode: status, Body: http.NoBody, Request: r}, nil
	}), WithMetrics(m))

	ctx := WithOperation(context.Background(), "Dashboard")
	_, _ = rt.RoundTrip(newRequest(t, ctx))
	status = http.StatusUnauthorized
	_, _ = rt.RoundTrip(newRequest(t, ctx))
	status = 0
	_, _ = rt.RoundTrip(newRequest(t, ctx))

	require.InDelta(t, 1, testutil.ToFloat64(m.calls.WithLabelValues("Dashboard", "2xx")), 0)
	require.InDelta(t, 1, testutil.ToFloat64(m.calls.WithLabelValues("Dashboard", "4xx")), 0)
	require.InDelta(t, 1, testutil.ToFloat64(m.calls.WithLabelValues("Dashboard", "error")), 0)
}

func TestChain_Order(t *testing.T) {
	t.Parallel()

	var order []string
	mw := func(name string) Middleware {
		return func(next http.RoundTripper) http.RoundTripper {
			return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
				order = append(order, name)
				return next.RoundTrip(r)
			})
		}
	}

	rt := Chain(RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		order = append(order, "base")
		return okResponse(r), nil
	}), mw("a"), mw("b"))

	_, err := rt.RoundTrip(newRequest(t, context.Background()))
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "base"}, order)
}
