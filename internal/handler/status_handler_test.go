package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"jumpinbot/internal/app/bot"
	"jumpinbot/internal/app/models"
	"jumpinbot/internal/configs"
	"jumpinbot/internal/pkg/errs"
)

type stubBot struct {
	state   bot.State
	users   []models.User
	banlist []models.BanListItem
	playing *models.PlayVideo
	said    []string
	sayErr  error
}

func (s *stubBot) State() bot.State              { return s.state }
func (s *stubBot) Uptime() time.Duration         { return 90 * time.Second }
func (s *stubBot) Version() string               { return "v0.0.0-test" }
func (s *stubBot) RoomName() string              { return "lounge" }
func (s *stubBot) Topic() string                 { return "welcome" }
func (s *stubBot) Handle() string                { return "botty" }
func (s *stubBot) UserCount() int                { return len(s.users) }
func (s *stubBot) Users() []models.User          { return s.users }
func (s *stubBot) Banlist() []models.BanListItem { return s.banlist }
func (s *stubBot) NowPlaying() *models.PlayVideo { return s.playing }

func (s *stubBot) Say(ctx context.Context, message string) error {
	if s.sayErr != nil {
		return s.sayErr
	}
	s.said = append(s.said, message)
	return nil
}

func newTestRouter(b *stubBot) http.Handler {
	return Router(&AppDeps{
		Bot: b,
		Config: &configs.AppConfig{
			Environment: "development",
			Room:        "lounge",
		},
	})
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v\n%s", err, rec.Body.String())
	}
	return body
}

func TestHandleHealth(t *testing.T) {
	router := newTestRouter(&stubBot{state: bot.StateRunning})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["code"] != float64(0) {
		t.Errorf("code = %v, want 0", body["code"])
	}
}

func TestHandleStatus(t *testing.T) {
	b := &stubBot{
		state:   bot.StateRunning,
		users:   []models.User{{Handle: "alpha"}},
		playing: &models.PlayVideo{Title: "first"},
	}
	router := newTestRouter(b)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/status", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	data, ok := decodeBody(t, rec)["data"].(map[string]any)
	if !ok {
		t.Fatalf("response has no data object: %s", rec.Body.String())
	}
	if data["state"] != "running" || data["room"] != "lounge" || data["userCount"] != float64(1) {
		t.Errorf("status data = %v", data)
	}
	if _, ok := data["nowPlaying"]; !ok {
		t.Error("status data missing nowPlaying while media is active")
	}
}

func TestHandleRoomUsersDerivesRoles(t *testing.T) {
	b := &stubBot{
		state: bot.StateRunning,
		users: []models.User{
			{Handle: "modder", OperatorID: "op-1"},
			{Handle: "golden", IsGold: true, IsAdmin: true},
			{Handle: "pleb"},
		},
	}
	router := newTestRouter(b)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/room/users", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	data := decodeBody(t, rec)["data"].(map[string]any)
	users := data["users"].([]any)
	if len(users) != 3 {
		t.Fatalf("users length = %d, want 3", len(users))
	}

	first := users[0].(map[string]any)
	if first["role"] != "mod" || first["moderator"] != true {
		t.Errorf("first user = %v, want mod", first)
	}

	second := users[1].(map[string]any)
	if second["role"] != "supporter" {
		t.Errorf("second user role = %v, want supporter (gold outranks admin)", second["role"])
	}

	third := users[2].(map[string]any)
	if third["role"] != "guest" {
		t.Errorf("third user role = %v, want guest", third["role"])
	}
}

func TestHandleRoomBanlist(t *testing.T) {
	b := &stubBot{
		state: bot.StateRunning,
		banlist: []models.BanListItem{
			{ID: "b1", Handle: "troll", Timestamp: "2024-01-01T00:00:00Z"},
		},
	}
	router := newTestRouter(b)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/room/banlist", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	data := decodeBody(t, rec)["data"].(map[string]any)
	list := data["list"].([]any)
	if len(list) != 1 || list[0].(map[string]any)["handle"] != "troll" {
		t.Errorf("banlist = %v, want troll", list)
	}
}

func postSay(router http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/room/say", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandleSay(t *testing.T) {
	b := &stubBot{state: bot.StateRunning}
	router := newTestRouter(b)

	rec := postSay(router, `{"message":"hello room"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\n%s", rec.Code, rec.Body.String())
	}
	if len(b.said) != 1 || b.said[0] != "hello room" {
		t.Errorf("said = %v, want [hello room]", b.said)
	}
}

func TestHandleSayLengthIsCharacterBased(t *testing.T) {
	b := &stubBot{state: bot.StateRunning}
	router := newTestRouter(b)

	// 200 two-byte characters: over the cap in bytes, under it in characters.
	rec := postSay(router, `{"message":"`+strings.Repeat("é", 200)+`"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\n%s", rec.Code, rec.Body.String())
	}
	if len(b.said) != 1 {
		t.Fatalf("said = %v, want the multi-byte message relayed", b.said)
	}

	rec = postSay(router, `{"message":"`+strings.Repeat("é", MaxSayLength+1)+`"}`)
	body := decodeBody(t, rec)
	if body["code"] != float64(errs.ErrMessageContentTooLong) {
		t.Errorf("code = %v, want %d", body["code"], errs.ErrMessageContentTooLong)
	}
}

func TestHandleSayValidation(t *testing.T) {
	tests := []struct {
		name     string
		state    bot.State
		body     string
		wantCode int
	}{
		{"empty message", bot.StateRunning, `{"message":""}`, errs.ErrMessageContentEmpty},
		{"too long", bot.StateRunning, `{"message":"` + strings.Repeat("a", MaxSayLength+1) + `"}`, errs.ErrMessageContentTooLong},
		{"malformed json", bot.StateRunning, `{"message":`, errs.ErrInvalidJSONFormat},
		{"unknown field", bot.StateRunning, `{"message":"hi","extra":1}`, errs.ErrInvalidJSONFormat},
		{"not connected", bot.StateDisconnected, `{"message":"hi"}`, errs.ErrRoomNotJoined},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &stubBot{state: tt.state}
			rec := postSay(newTestRouter(b), tt.body)

			body := decodeBody(t, rec)
			if body["code"] != float64(tt.wantCode) {
				t.Errorf("code = %v, want %d\n%s", body["code"], tt.wantCode, rec.Body.String())
			}
			if len(b.said) != 0 {
				t.Errorf("message was relayed despite validation failure: %v", b.said)
			}
		})
	}
}

func TestHandleSayRequiresJSONContentType(t *testing.T) {
	b := &stubBot{state: bot.StateRunning}
	router := newTestRouter(b)

	req := httptest.NewRequest(http.MethodPost, "/api/room/say", strings.NewReader(`{"message":"hi"}`))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	body := decodeBody(t, rec)
	if body["code"] != float64(errs.ErrUnsupportedMediaType) {
		t.Errorf("code = %v, want %d", body["code"], errs.ErrUnsupportedMediaType)
	}
}
