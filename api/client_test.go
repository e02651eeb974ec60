package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediapulse/pulse/config"
	"github.com/mediapulse/pulse/errors"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(config.BackendConfig{URL: srv.URL})
}

func TestScanStatusDecoding(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/scan/status", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"running": true, "progress": "Escaneando prensa (Google News + RSS)...", "player_id": null}`))
	}))

	status, err := client.ScanStatus(context.Background())
	require.NoError(t, err)
	assert.True(t, status.Running)
	assert.Equal(t, "Escaneando prensa (Google News + RSS)...", status.Progress)
	assert.Nil(t, status.SubjectID)
}

func TestSummaryQueryParams(t *testing.T) {
	var gotQuery map[string][]string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"press_count": 12, "mentions_count": 3, "posts_count": 5, "alerts_count": 2, "press_sentiment": 0.4}`))
	}))

	summary, err := client.Summary(context.Background(), 42, "2025-03-01T00:00:00", "")
	require.NoError(t, err)

	assert.Equal(t, []string{"42"}, gotQuery["player_id"])
	assert.Equal(t, []string{"2025-03-01T00:00:00"}, gotQuery["date_from"])
	assert.NotContains(t, gotQuery, "date_to")

	assert.Equal(t, 12, summary.PressCount)
	assert.Equal(t, 2, summary.AlertsCount)
	require.NotNil(t, summary.PressSentiment)
	assert.InDelta(t, 0.4, *summary.PressSentiment, 0.001)
	assert.Nil(t, summary.SocialSentiment)
}

func TestPressPagination(t *testing.T) {
	var gotQuery map[string][]string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`[{"id": 1, "source": "Marca", "title": "headline", "sentiment_label": "positivo"}]`))
	}))

	items, err := client.Press(context.Background(), 7, 50, 100, "", "")
	require.NoError(t, err)

	assert.Equal(t, []string{"50"}, gotQuery["limit"])
	assert.Equal(t, []string{"100"}, gotQuery["offset"])
	require.Len(t, items, 1)
	assert.Equal(t, "Marca", items[0].Source)
}

func TestStartScanRejected(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail": "Ya hay un escaneo en curso"}`))
	}))

	err := client.StartScan(context.Background(), SubjectInput{Name: "Test"})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeScanRejected, errors.GetCode(err))
	assert.Contains(t, err.Error(), "Ya hay un escaneo en curso")
}

func TestUnauthorizedMapsToAuthRequired(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "No autenticado"}`))
	}))

	_, err := client.Summary(context.Background(), 1, "", "")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeAuthRequired, errors.GetCode(err))
}

func TestGetSubjectNotFound(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail": "Jugador no encontrado"}`))
	}))

	_, err := client.GetSubject(context.Background(), 99)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeSubjectNotFound, errors.GetCode(err))
}

func TestBackendUnreachable(t *testing.T) {
	client := NewClient(config.BackendConfig{URL: "http://127.0.0.1:1"})

	_, err := client.ScanStatus(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeBackendUnreachable, errors.GetCode(err))
}

func TestLogin(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/login", r.URL.Path)
		require.NoError(t, r.ParseForm())
		if r.Form.Get("password") == "secret" {
			http.SetCookie(w, &http.Cookie{Name: "ar_token", Value: "tok-abc"})
			w.Header().Set("Location", "/")
			w.WriteHeader(http.StatusFound)
			return
		}
		w.Header().Set("Location", "/login?error=1")
		w.WriteHeader(http.StatusFound)
	}))

	token, err := client.Login(context.Background(), "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", token)
	assert.Equal(t, "tok-abc", client.Token())

	client.SetToken("")
	_, err = client.Login(context.Background(), "wrong")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeAuthFailed, errors.GetCode(err))
}

func TestAuthCookieSent(t *testing.T) {
	var gotToken string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie("ar_token"); err == nil {
			gotToken = cookie.Value
		}
		w.Write([]byte(`[]`))
	}))
	client.SetToken("tok-xyz")

	_, err := client.ListSubjects(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-xyz", gotToken)
}

func TestAlertsFilters(t *testing.T) {
	var gotQuery map[string][]string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`[{"id": 5, "severity": "high", "title": "Crisis", "read": 0}]`))
	}))

	alerts, err := client.Alerts(context.Background(), 3, 50, "high", true)
	require.NoError(t, err)

	assert.Equal(t, []string{"high"}, gotQuery["severity"])
	assert.Equal(t, []string{"true"}, gotQuery["unread_only"])
	require.Len(t, alerts, 1)
	assert.False(t, alerts[0].IsRead())
}

func TestAlertActions(t *testing.T) {
	var gotMethod, gotPath string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		w.Write([]byte(`{"ok": true}`))
	}))

	require.NoError(t, client.MarkAlertRead(context.Background(), 17))
	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.Equal(t, "/api/alerts/17/read", gotPath)

	require.NoError(t, client.DismissAlert(context.Background(), 17))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/api/alerts/17", gotPath)
}

func TestCompareSubjectsValidation(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1,2,3", r.URL.Query().Get("player_ids"))
		w.Write([]byte(`[]`))
	}))

	_, err := client.CompareSubjects(context.Background(), []int{1})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidInput, errors.GetCode(err))

	_, err = client.CompareSubjects(context.Background(), []int{1, 2, 3})
	require.NoError(t, err)
}

func TestExportCSVWritesFile(t *testing.T) {
	csv := "source,title\nMarca,headline\n"
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/export/csv", r.URL.Path)
		require.Equal(t, "press", r.URL.Query().Get("type"))
		w.Header().Set("Content-Type", "text/csv")
		w.Write([]byte(csv))
	}))

	dest := filepath.Join(t.TempDir(), "press_7.csv")
	require.NoError(t, client.ExportCSV(context.Background(), 7, ExportPress, dest))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, csv, string(data))
}

func TestExportCSVInvalidType(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	err := client.ExportCSV(context.Background(), 7, "bogus", filepath.Join(t.TempDir(), "x.csv"))
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidInput, errors.GetCode(err))
}

func TestMalformedBaseURLMapsToInternal(t *testing.T) {
	client := NewClient(config.BackendConfig{URL: "http://127.0.0.1:0\n"})

	_, err := client.ScanStatus(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInternal, errors.GetCode(err))
}
