package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/somnahealth/somna-backend/internal/api"
	"github.com/somnahealth/somna-backend/internal/config"
	"github.com/somnahealth/somna-backend/internal/store/sqlite"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	st, err := sqlite.New(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)

	cfg := &config.Config{
		ProjectName:              "CBT-I Sleep Application",
		APIPrefix:                "/api",
		HTTPPort:                 0,
		DBDriver:                 "sqlite",
		SecretKey:                "api-test-secret",
		AccessTokenExpireMinutes: 60,
		CORSOrigins:              []string{"http://localhost:3000"},
	}

	srv := httptest.NewServer(api.NewRouter(cfg, zerolog.Nop(), st))
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	var decoded map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded), string(raw))
	}
	return resp, decoded
}

func createUser(t *testing.T, base, email string) string {
	t.Helper()
	resp, body := doJSON(t, http.MethodPost, base+"/api/users", map[string]interface{}{
		"email":    email,
		"password": "pw123456",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return body["id"].(string)
}

func diaryPayload(date string) map[string]interface{} {
	return map[string]interface{}{
		"date":           date,
		"bedTime":        "23:00",
		"fallAsleepTime": "23:20",
		"wakeTime":       "06:55",
		"getUpTime":      "07:00",
		"awakenings":     1,
		"totalAwakeTime": 20,
		"sleepQuality":   4,
		"restedness":     3,
		"mood":           4,
	}
}

func TestWelcomeAndHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "online", body["status"])
	assert.Contains(t, body["message"], "CBT-I Sleep Application")

	resp, body = doJSON(t, http.MethodGet, srv.URL+"/api/health", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "healthy", body["status"])
}

func TestUserLifecycle(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/users", map[string]interface{}{
		"email":     "ada@example.com",
		"password":  "pw123456",
		"firstName": "Ada",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	userID := body["id"].(string)
	assert.Equal(t, "Ada", body["firstName"])
	assert.Equal(t, "America/New_York", body["timeZone"])
	assert.NotContains(t, body, "hashedPassword")
	assert.NotContains(t, body, "password")

	// duplicate email
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/users", map[string]interface{}{
		"email":    "ada@example.com",
		"password": "pw123456",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// invalid inputs
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/users", map[string]interface{}{
		"email":    "not-an-email",
		"password": "pw123456",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/users", map[string]interface{}{
		"email":    "short@example.com",
		"password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = doJSON(t, http.MethodGet, srv.URL+"/api/users/"+userID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ada@example.com", body["email"])

	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/users/unknown", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = doJSON(t, http.MethodPut, srv.URL+"/api/users/"+userID, map[string]interface{}{
		"lastName": "Lovelace",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Lovelace", body["lastName"])
	assert.Equal(t, "Ada", body["firstName"])

	resp, _ = doJSON(t, http.MethodDelete, srv.URL+"/api/users/"+userID, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp, _ = doJSON(t, http.MethodDelete, srv.URL+"/api/users/"+userID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestLoginEndpoint(t *testing.T) {
	srv := newTestServer(t)
	userID := createUser(t, srv.URL, "login@example.com")

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/auth/login", map[string]interface{}{
		"email":    "login@example.com",
		"password": "pw123456",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body["access_token"])
	assert.Equal(t, "bearer", body["token_type"])
	assert.Equal(t, userID, body["user"].(map[string]interface{})["id"])

	// username accepted as alias for email
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/auth/login", map[string]interface{}{
		"username": "login@example.com",
		"password": "pw123456",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// wrong password and unknown email both yield the same 401
	resp, badBody := doJSON(t, http.MethodPost, srv.URL+"/api/auth/login", map[string]interface{}{
		"email":    "login@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp, unknownBody := doJSON(t, http.MethodPost, srv.URL+"/api/auth/login", map[string]interface{}{
		"email":    "nobody@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, badBody["message"], unknownBody["message"])
}

func TestDiaryLifecycle(t *testing.T) {
	srv := newTestServer(t)
	userID := createUser(t, srv.URL, "diary@example.com")
	base := srv.URL + "/api/sleep-diary/" + userID

	resp, body := doJSON(t, http.MethodPost, base, diaryPayload("2026-03-01"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	diaryID := body["id"].(string)
	assert.Equal(t, float64(480), body["timeInBed"])
	assert.Equal(t, float64(435), body["totalSleepTime"])
	assert.InDelta(t, 90.625, body["sleepEfficiency"].(float64), 1e-9)

	// one entry per date
	resp, _ = doJSON(t, http.MethodPost, base, diaryPayload("2026-03-01"))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// missing required field
	bad := diaryPayload("2026-03-02")
	delete(bad, "bedTime")
	resp, _ = doJSON(t, http.MethodPost, base, bad)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// rating out of range
	bad = diaryPayload("2026-03-02")
	bad["mood"] = 9
	resp, _ = doJSON(t, http.MethodPost, base, bad)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	for day := 2; day <= 4; day++ {
		resp, _ = doJSON(t, http.MethodPost, base, diaryPayload(fmt.Sprintf("2026-03-%02d", day)))
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp, body = doJSON(t, http.MethodGet, base, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	entries := body["diaries"].([]interface{})
	require.Len(t, entries, 4)
	assert.Equal(t, "2026-03-04", entries[0].(map[string]interface{})["date"])

	resp, body = doJSON(t, http.MethodGet, base+"?limit=2&skip=1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	entries = body["diaries"].([]interface{})
	require.Len(t, entries, 2)
	assert.Equal(t, "2026-03-03", entries[0].(map[string]interface{})["date"])

	// rating-only update leaves metrics alone
	resp, body = doJSON(t, http.MethodPut, base+"/"+diaryID, map[string]interface{}{"sleepQuality": 5})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(5), body["sleepQuality"])
	assert.Equal(t, float64(435), body["totalSleepTime"])

	// clock change recomputes metrics
	resp, body = doJSON(t, http.MethodPut, base+"/"+diaryID, map[string]interface{}{"wakeTime": "06:00"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(380), body["totalSleepTime"])
	assert.Equal(t, float64(480), body["timeInBed"])

	// entries are scoped to their owner
	other := createUser(t, srv.URL, "other@example.com")
	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/sleep-diary/"+other+"/"+diaryID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodDelete, base+"/"+diaryID, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp, _ = doJSON(t, http.MethodDelete, base+"/"+diaryID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestWritesScopedToUnknownUserReturn404(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/sleep-diary/no-such-user", diaryPayload("2026-03-01"))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPut, srv.URL+"/api/sleep-goals/no-such-user", map[string]interface{}{
		"bedtime": "22:30",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPut, srv.URL+"/api/notification-preferences/no-such-user", map[string]interface{}{
		"sleepReminders": false,
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/program/no-such-user/weeks/1", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGoalsEndpoints(t *testing.T) {
	srv := newTestServer(t)
	userID := createUser(t, srv.URL, "goals@example.com")
	url := srv.URL + "/api/sleep-goals/" + userID

	resp, _ := doJSON(t, http.MethodGet, url, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body := doJSON(t, http.MethodPut, url, map[string]interface{}{
		"bedtime":       "22:30",
		"sleepDuration": 7.5,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "22:30", body["bedtime"])

	resp, body = doJSON(t, http.MethodPut, url, map[string]interface{}{"wakeTime": "06:30"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "06:30", body["wakeTime"])
	assert.Equal(t, "22:30", body["bedtime"])

	resp, _ = doJSON(t, http.MethodPut, url, map[string]interface{}{"sleepDuration": 30})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestNotificationPreferencesEndpoints(t *testing.T) {
	srv := newTestServer(t)
	userID := createUser(t, srv.URL, "prefs@example.com")
	url := srv.URL + "/api/notification-preferences/" + userID

	// defaults served before anything is saved
	resp, body := doJSON(t, http.MethodGet, url, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["sleepReminders"])
	assert.Equal(t, "daily", body["sleepRemindersFrequency"])

	resp, body = doJSON(t, http.MethodPut, url, map[string]interface{}{
		"sleepReminders":          false,
		"sleepRemindersFrequency": "weekdays",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, body["sleepReminders"])
	assert.Equal(t, "weekdays", body["sleepRemindersFrequency"])
	assert.Equal(t, true, body["journalReminders"])

	resp, _ = doJSON(t, http.MethodPut, url, map[string]interface{}{
		"sleepRemindersFrequency": "hourly",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestProgramEndpoints(t *testing.T) {
	srv := newTestServer(t)
	userID := createUser(t, srv.URL, "program@example.com")
	base := srv.URL + "/api/program/" + userID

	resp, body := doJSON(t, http.MethodGet, base, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, body["weeks"])

	resp, body = doJSON(t, http.MethodPost, base+"/weeks/3", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, float64(3), body["week"])

	// starting a week twice fails
	resp, _ = doJSON(t, http.MethodPost, base+"/weeks/3", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// week-in-program marker follows the furthest started week
	resp, body = doJSON(t, http.MethodGet, srv.URL+"/api/users/"+userID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(3), body["weekInProgram"])

	resp, body = doJSON(t, http.MethodPost, base+"/weeks/3/activities", map[string]interface{}{
		"name": "stimulus control worksheet",
		"kind": "exercise",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.NotEmpty(t, body["id"])

	resp, _ = doJSON(t, http.MethodPost, base+"/weeks/5/activities", map[string]interface{}{
		"name": "worksheet",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = doJSON(t, http.MethodPut, base+"/weeks/3/complete", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body["completedAt"])

	resp, _ = doJSON(t, http.MethodPut, base+"/weeks/7/complete", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = doJSON(t, http.MethodGet, base, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	weeks := body["weeks"].([]interface{})
	require.Len(t, weeks, 1)
	acts := weeks[0].(map[string]interface{})["activities"].([]interface{})
	assert.Len(t, acts, 1)
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/users", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))

	// origins off the allow list get no CORS headers
	req, err = http.NewRequest(http.MethodOptions, srv.URL+"/api/users", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://evil.example.com")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
}
