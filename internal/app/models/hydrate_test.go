package models

import (
	"errors"
	"reflect"
	"testing"
)

func sampleUserPayload() Payload {
	return Payload{
		"operator_id": "op-1",
		"assignedBy":  "admin-1",
		"handle":      "roomba",
		"user_id":     "u-42",
		"username":    "roomba",
		"_id":         "5f2a",
		"color":       "green",
		"isAdmin":     false,
		"isSiteMod":   true,
		"timestamp":   "1596061200",
		"userIcon":    nil,
		"settings": map[string]any{
			"playYtVideos":                true,
			"allowPrivateMessages":        true,
			"pushNotificationsEnabled":    false,
			"receiveUpdates":              false,
			"receiveMessageNotifications": true,
			"darkTheme":                   true,
			"videoQuality":                "VIDEO_240",
			"ignoreList":                  map[string]any{},
		},
		"videoQuality": map[string]any{
			"dimensions": map[string]any{"width": float64(320), "height": float64(240)},
			"id":         "VIDEO_240",
			"label":      "240p",
			"frameRate":  float64(15),
			"bitRate":    float64(250000),
		},
	}
}

func TestHydrateUser(t *testing.T) {
	rec, err := Hydrate("user", sampleUserPayload())
	if err != nil {
		t.Fatalf("Hydrate(user) returned error: %v", err)
	}

	u, ok := rec.(*User)
	if !ok {
		t.Fatalf("Hydrate(user) returned %T, want *User", rec)
	}

	if u.Handle != "roomba" || u.UserID != "u-42" || u.ID != "5f2a" {
		t.Errorf("identity fields = (%q, %q, %q), want (roomba, u-42, 5f2a)", u.Handle, u.UserID, u.ID)
	}
	if !u.IsSiteMod || u.IsAdmin {
		t.Errorf("boolean flags = (isAdmin=%v, isSiteMod=%v), want (false, true)", u.IsAdmin, u.IsSiteMod)
	}

	if u.Settings == nil {
		t.Fatal("settings was not hydrated")
	}
	if !u.Settings.PlayYtVideos || u.Settings.VideoQuality != "VIDEO_240" {
		t.Errorf("settings = %+v, want playYtVideos=true videoQuality=VIDEO_240", u.Settings)
	}

	if u.VideoQuality == nil || u.VideoQuality.Dimensions == nil {
		t.Fatal("videoQuality/dimensions were not hydrated")
	}
	if u.VideoQuality.Dimensions.Width != 320 || u.VideoQuality.Dimensions.Height != 240 {
		t.Errorf("dimensions = %dx%d, want 320x240", u.VideoQuality.Dimensions.Width, u.VideoQuality.Dimensions.Height)
	}
}

// Hydration of identical payloads must yield equal graphs, and the input
// payload must never be mutated.
func TestHydrateIsRepeatable(t *testing.T) {
	p := sampleUserPayload()
	witness := sampleUserPayload()

	first, err := Hydrate("user", p)
	if err != nil {
		t.Fatalf("first Hydrate failed: %v", err)
	}

	if !reflect.DeepEqual(p, witness) {
		t.Error("Hydrate mutated the input payload")
	}

	second, err := Hydrate("user", p)
	if err != nil {
		t.Fatalf("second Hydrate failed: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated hydration differed:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestHydrateUnknownKeysIgnored(t *testing.T) {
	p := sampleUserPayload()
	p["surpriseKey"] = "surprise"
	p["anotherOne"] = map[string]any{"nested": true}

	rec, err := Hydrate("user", p)
	if err != nil {
		t.Fatalf("Hydrate with unknown keys returned error: %v", err)
	}
	if rec.(*User).Handle != "roomba" {
		t.Error("declared fields were not hydrated alongside unknown keys")
	}
}

func TestHydrateSchemaMismatch(t *testing.T) {
	tests := []struct {
		name     string
		record   string
		payload  Payload
		wantPath string
	}{
		{
			"topic missing required text",
			"topic",
			Payload{"updatedAt": "1596061200"},
			"topic.text",
		},
		{
			"topic text wrong kind",
			"topic",
			Payload{"text": float64(7), "updatedAt": "1596061200"},
			"topic.text",
		},
		{
			"nested updatedBy missing username",
			"topic",
			Payload{"text": "movie night", "updatedAt": "159", "updatedBy": map[string]any{"_id": "u1"}},
			"topic.updatedBy.username",
		},
		{
			"settings primitive where payload expected",
			"user",
			Payload{"settings": "dark"},
			"user.settings",
		},
		{
			"dimensions missing height",
			"dimensions",
			Payload{"width": float64(320)},
			"dimensions.height",
		},
		{
			"fractional value for integer field",
			"dimensions",
			Payload{"width": float64(319.5), "height": float64(240)},
			"dimensions.width",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := Hydrate(tt.record, tt.payload)
			if rec != nil {
				t.Errorf("Hydrate returned a record alongside an error: %+v", rec)
			}

			var sm *SchemaMismatchError
			if !errors.As(err, &sm) {
				t.Fatalf("Hydrate error = %v, want *SchemaMismatchError", err)
			}
			if sm.Path != tt.wantPath {
				t.Errorf("mismatch path = %q, want %q", sm.Path, tt.wantPath)
			}
		})
	}
}

func TestHydrateBanlist(t *testing.T) {
	p := Payload{
		"list": []any{
			map[string]any{"_id": "b1", "handle": "first", "timestamp": "100"},
			map[string]any{"_id": "b2", "handle": "second", "timestamp": "200"},
			map[string]any{"_id": "b3", "handle": "third", "timestamp": "300"},
		},
	}

	rec, err := Hydrate("banlist", p)
	if err != nil {
		t.Fatalf("Hydrate(banlist) returned error: %v", err)
	}

	bl := rec.(*Banlist)
	if len(bl.List) != 3 {
		t.Fatalf("banlist length = %d, want 3", len(bl.List))
	}

	want := []BanListItem{
		{ID: "b1", Handle: "first", Timestamp: "100"},
		{ID: "b2", Handle: "second", Timestamp: "200"},
		{ID: "b3", Handle: "third", Timestamp: "300"},
	}
	for i := range want {
		if bl.List[i] != want[i] {
			t.Errorf("banlist[%d] = %+v, want %+v", i, bl.List[i], want[i])
		}
	}
}

func TestHydrateBanlistMalformedElement(t *testing.T) {
	p := Payload{
		"list": []any{
			map[string]any{"_id": "b1", "handle": "first", "timestamp": "100"},
			map[string]any{"_id": "b2", "handle": "second", "timestamp": "200"},
			map[string]any{"_id": "b3", "timestamp": "300"},
		},
	}

	_, err := Hydrate("banlist", p)

	var sm *SchemaMismatchError
	if !errors.As(err, &sm) {
		t.Fatalf("Hydrate error = %v, want *SchemaMismatchError", err)
	}
	if sm.Path != "banlist.list[2].handle" {
		t.Errorf("mismatch path = %q, want banlist.list[2].handle", sm.Path)
	}
}

func TestHydrateEmptySequence(t *testing.T) {
	rec, err := Hydrate("banlist", Payload{"list": []any{}})
	if err != nil {
		t.Fatalf("Hydrate of empty banlist returned error: %v", err)
	}
	if got := len(rec.(*Banlist).List); got != 0 {
		t.Errorf("empty input sequence hydrated to %d elements, want 0", got)
	}
}

func TestHydrateList(t *testing.T) {
	payloads := []any{
		map[string]any{"_id": "m1", "title": "first", "mediaType": "yt"},
		map[string]any{"_id": "m2", "title": "second", "mediaType": "yt"},
	}

	recs, err := HydrateList("playlistUpdateItem", payloads)
	if err != nil {
		t.Fatalf("HydrateList returned error: %v", err)
	}
	if len(recs) != len(payloads) {
		t.Fatalf("HydrateList length = %d, want %d", len(recs), len(payloads))
	}

	for i, want := range []string{"first", "second"} {
		item := recs[i].(*PlaylistUpdateItem)
		if item.Title != want {
			t.Errorf("item %d title = %q, want %q", i, item.Title, want)
		}
	}

	empty, err := HydrateList("playlistUpdateItem", []any{})
	if err != nil {
		t.Fatalf("HydrateList of empty sequence returned error: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("empty input hydrated to %d elements, want 0", len(empty))
	}
}

func TestHydrateUnknownRecord(t *testing.T) {
	if _, err := Hydrate("nope", Payload{}); !errors.Is(err, ErrUnknownRecord) {
		t.Errorf("Hydrate(nope) error = %v, want ErrUnknownRecord", err)
	}
	if _, err := HydrateList("nope", nil); !errors.Is(err, ErrUnknownRecord) {
		t.Errorf("HydrateList(nope) error = %v, want ErrUnknownRecord", err)
	}
}

// The "settings" field name is shared by two structurally distinct schemas;
// routing is qualified by the enclosing record.
func TestSettingsRoutingIsContextQualified(t *testing.T) {
	roomSettings := map[string]any{
		"public":           true,
		"modOnlyPlayMedia": false,
		"forcePtt":         false,
		"forceUser":        false,
		"description":      "movie room",
		"display":          "Movies",
		"requiresPassword": false,
	}

	rec, err := Hydrate("userList", Payload{
		"_id":      "r1",
		"name":     "movies",
		"settings": roomSettings,
		"attrs": map[string]any{
			"owner":         "u-1",
			"janus_id":      float64(7),
			"fresh":         false,
			"ageRestricted": false,
		},
		"users": []any{
			map[string]any{"handle": "alpha"},
			map[string]any{"handle": "beta"},
		},
	})
	if err != nil {
		t.Fatalf("Hydrate(userList) returned error: %v", err)
	}

	ul := rec.(*UserList)
	if ul.Settings == nil || ul.Settings.Display != "Movies" {
		t.Errorf("room settings not hydrated: %+v", ul.Settings)
	}
	if ul.Attrs == nil || ul.Attrs.JanusID != 7 {
		t.Errorf("attrs not hydrated: %+v", ul.Attrs)
	}
	if len(ul.Users) != 2 || ul.Users[0].Handle != "alpha" || ul.Users[1].Handle != "beta" {
		t.Errorf("user sequence order not preserved: %+v", ul.Users)
	}

	// The same payload under a User's settings field is the wrong schema.
	if _, err := Hydrate("user", Payload{"settings": roomSettings}); err == nil {
		t.Error("room-shaped settings hydrated under user context, want SchemaMismatch")
	}
}

func TestUserListGet(t *testing.T) {
	ul := &UserList{Users: []User{
		{Handle: "alpha", UserID: "u1"},
		{Handle: "beta", UserID: "u2"},
	}}

	if got := ul.Get("beta"); got == nil || got.UserID != "u2" {
		t.Errorf("Get(beta) = %+v, want user u2", got)
	}
	if got := ul.Get("missing"); got != nil {
		t.Errorf("Get(missing) = %+v, want nil", got)
	}
}

func TestHydrateMessageWithSender(t *testing.T) {
	rec, err := Hydrate("message", Payload{
		"message":   "hello room",
		"handle":    "alpha",
		"timestamp": "1596061200",
		"id":        "m-1",
		"sender":    map[string]any{"handle": "alpha", "isGold": true},
	})
	if err != nil {
		t.Fatalf("Hydrate(message) returned error: %v", err)
	}

	msg := rec.(*Message)
	if msg.Sender == nil {
		t.Fatal("sender was not hydrated")
	}
	if got := msg.Sender.Role(); got != RoleSupporter {
		t.Errorf("sender role = %v, want %v", got, RoleSupporter)
	}
}
