package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/DoyleJ11/spin-wheel/internal/options"
	"github.com/DoyleJ11/spin-wheel/internal/session"
	"github.com/DoyleJ11/spin-wheel/internal/types"
	"github.com/DoyleJ11/spin-wheel/internal/wheel"
)

type stubProvider struct {
	text string
	err  error
}

func (p stubProvider) Name() string { return "stub" }

func (p stubProvider) Complete(context.Context, string) (string, error) { return p.text, p.err }

func newRouter(t *testing.T, provider options.Provider, duration time.Duration) (http.Handler, *session.Session) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	logger := zaptest.NewLogger(t)
	s, err := session.New(ctx, session.Config{
		Layout:        wheel.DefaultReel(),
		Duration:      duration,
		FrameInterval: 2 * time.Millisecond,
		Logger:        logger,
	}, wheel.DefaultOptions())
	require.NoError(t, err)

	return SetupRoutes(s, options.NewService(nil, provider, logger), logger), s
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) options.GenerateResponse {
	t.Helper()
	var out options.GenerateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHealth(t *testing.T) {
	h, _ := newRouter(t, nil, time.Second)
	rec := do(t, h, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestCORS(t *testing.T) {
	h, _ := newRouter(t, nil, time.Second)
	req := httptest.NewRequest(http.MethodOptions, "/api/generate-options", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCurrentOptions_Defaults(t *testing.T) {
	h, _ := newRouter(t, nil, time.Second)
	rec := do(t, h, http.MethodGet, "/api/current-options", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, wheel.DefaultLabels(), decode(t, rec).Options)
}

func TestGenerateOptions(t *testing.T) {
	tests := []struct {
		name     string
		provider options.Provider
		body     string
		status   int
		options  []string
		errMsg   string
	}{
		{name: "comma list", body: `{"prompt":"a, b, c"}`, status: http.StatusOK, options: []string{"a", "b", "c"}},
		{name: "static wheel", body: `{"prompt":"NBA"}`, status: http.StatusOK},
		{name: "provider", provider: stubProvider{text: "Here is the list: x, y"}, body: `{"prompt":"letters"}`, status: http.StatusOK, options: []string{"x", "y"}},
		{name: "bad json", body: `{`, status: http.StatusBadRequest, errMsg: "Invalid request format"},
		{name: "missing prompt", body: `{}`, status: http.StatusBadRequest, errMsg: "Prompt cannot be empty"},
		{name: "blank prompt", body: `{"prompt":"   "}`, status: http.StatusBadRequest},
		{name: "no provider", body: `{"prompt":"letters"}`, status: http.StatusServiceUnavailable},
		{name: "provider fails", provider: stubProvider{err: errors.New("down")}, body: `{"prompt":"letters"}`, status: http.StatusBadGateway},
		{name: "nothing parsed", provider: stubProvider{text: ", ,"}, body: `{"prompt":"letters"}`, status: http.StatusUnprocessableEntity},
		{name: "all-empty comma list", body: `{"prompt":", ,"}`, status: http.StatusUnprocessableEntity, errMsg: "no options generated"},
		{name: "longest prompt", body: `{"prompt":"` + strings.Repeat("ab,", 66) + `ab"}`, status: http.StatusOK},
		{name: "prompt too long", body: `{"prompt":"` + strings.Repeat("ab,", 67) + `"}`, status: http.StatusBadRequest, errMsg: "Prompt cannot be longer than 200 characters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newRouter(t, tt.provider, time.Second)
			rec := do(t, h, http.MethodPost, "/api/generate-options", tt.body)
			require.Equal(t, tt.status, rec.Code, rec.Body.String())

			out := decode(t, rec)
			if tt.status != http.StatusOK {
				assert.NotEmpty(t, out.Error)
				if tt.errMsg != "" {
					assert.Equal(t, tt.errMsg, out.Error)
				}
				return
			}
			if tt.options != nil {
				assert.Equal(t, tt.options, out.Options)
			}

			// the wheel now carries the generated set
			cur := decode(t, do(t, h, http.MethodGet, "/api/current-options", ""))
			assert.Equal(t, out.Options, cur.Options)
		})
	}
}

func TestSpin(t *testing.T) {
	h, _ := newRouter(t, nil, 200*time.Millisecond)

	rec := do(t, h, http.MethodPost, "/api/spin", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var spin types.SpinResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &spin))
	assert.NotEmpty(t, spin.SpinID)
	assert.EqualValues(t, 200, spin.DurationMS)

	again := do(t, h, http.MethodPost, "/api/spin", "")
	assert.Equal(t, http.StatusConflict, again.Code)

	gen := do(t, h, http.MethodPost, "/api/generate-options", `{"prompt":"a, b"}`)
	assert.Equal(t, http.StatusConflict, gen.Code)

	var view types.WheelView
	require.NoError(t, json.Unmarshal(do(t, h, http.MethodGet, "/api/wheel", "").Body.Bytes(), &view))
	assert.Equal(t, spin.SpinID, view.SpinID)
	assert.Equal(t, wheel.PhaseSpinning, view.Frame.Phase)
	assert.Len(t, view.Options, 30)

	assert.Eventually(t, func() bool {
		var v types.WheelView
		_ = json.Unmarshal(do(t, h, http.MethodGet, "/api/wheel", "").Body.Bytes(), &v)
		return v.LastOutcome != nil && v.LastOutcome.SpinID == spin.SpinID && v.Frame.Phase == wheel.PhaseIdle
	}, 2*time.Second, 10*time.Millisecond)
}

func TestSessionClosed(t *testing.T) {
	h, s := newRouter(t, nil, time.Second)
	require.NoError(t, session.Send(context.Background(), s, session.Shutdown{}))
	<-s.Done()

	rec := do(t, h, http.MethodGet, "/api/current-options", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
