/*
Package models converts the loosely-typed, nested event payloads received from
the chat service into a typed object graph.

This file defines the user-side records: User, the two video quality records,
the user settings schema, and the session record.
*/
package models

// Dimensions describes a video resolution.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (*Dimensions) recordName() string { return "dimensions" }

func decodeDimensions(p Payload, path string) (*Dimensions, error) {
	d := &dec{p: p, path: path}
	rec := &Dimensions{
		Width:  d.num("width", true),
		Height: d.num("height", true),
	}
	if d.err != nil {
		return nil, d.err
	}
	return rec, nil
}

// VideoQuality describes a broadcast quality preset.
type VideoQuality struct {
	Dimensions *Dimensions `json:"dimensions,omitempty"`
	ID         string      `json:"id,omitempty"`
	Label      string      `json:"label,omitempty"`
	FrameRate  int         `json:"frameRate,omitempty"`
	BitRate    int         `json:"bitRate,omitempty"`
}

func (*VideoQuality) recordName() string { return "videoQuality" }

func decodeVideoQuality(p Payload, path string) (*VideoQuality, error) {
	d := &dec{p: p, path: path}
	rec := &VideoQuality{
		Dimensions: nested(d, "dimensions", decodeDimensions),
		ID:         d.str("id", false),
		Label:      d.str("label", false),
		FrameRate:  d.num("frameRate", false),
		BitRate:    d.num("bitRate", false),
	}
	if d.err != nil {
		return nil, d.err
	}
	return rec, nil
}

// UserSettings is the per-account settings schema. It shares the wire field
// name "settings" with RoomSettings; the two are structurally distinct and are
// disambiguated by the enclosing record (User routes here, UserList routes to
// RoomSettings).
type UserSettings struct {
	PlayYtVideos                bool    `json:"playYtVideos"`
	AllowPrivateMessages        bool    `json:"allowPrivateMessages"`
	PushNotificationsEnabled    bool    `json:"pushNotificationsEnabled"`
	ReceiveUpdates              bool    `json:"receiveUpdates"`
	ReceiveMessageNotifications bool    `json:"receiveMessageNotifications"`
	DarkTheme                   bool    `json:"darkTheme"`
	VideoQuality                string  `json:"videoQuality"`
	UserIcon                    any     `json:"userIcon,omitempty"`
	IgnoreList                  Payload `json:"ignoreList"`
}

func (*UserSettings) recordName() string { return "userSettings" }

func decodeUserSettings(p Payload, path string) (*UserSettings, error) {
	d := &dec{p: p, path: path}
	rec := &UserSettings{
		PlayYtVideos:                d.boolean("playYtVideos", true),
		AllowPrivateMessages:        d.boolean("allowPrivateMessages", true),
		PushNotificationsEnabled:    d.boolean("pushNotificationsEnabled", true),
		ReceiveUpdates:              d.boolean("receiveUpdates", true),
		ReceiveMessageNotifications: d.boolean("receiveMessageNotifications", true),
		DarkTheme:                   d.boolean("darkTheme", true),
		VideoQuality:                d.str("videoQuality", true),
		UserIcon:                    d.raw("userIcon"),
		IgnoreList:                  d.payload("ignoreList", true),
	}
	if d.err != nil {
		return nil, d.err
	}
	return rec, nil
}

// User represents a chat participant. All fields are optional on the wire;
// missing booleans default to false at construction time so role resolution
// is total.
type User struct {
	UserIcon       any           `json:"userIcon,omitempty"`
	AssignedBy     string        `json:"assignedBy,omitempty"`
	OperatorID     string        `json:"operator_id,omitempty"`
	Handle         string        `json:"handle,omitempty"`
	UserID         string        `json:"user_id,omitempty"`
	Username       string        `json:"username,omitempty"`
	ID             string        `json:"_id,omitempty"`
	Color          string        `json:"color,omitempty"`
	Settings       *UserSettings `json:"settings,omitempty"`
	VideoQuality   *VideoQuality `json:"videoQuality,omitempty"`
	IsAdmin        bool          `json:"isAdmin"`
	IsSiteMod      bool          `json:"isSiteMod"`
	IsSupporter    bool          `json:"isSupporter"`
	IsBroadcasting bool          `json:"isBroadcasting"`
	IsGold         bool          `json:"isGold"`
	Timestamp      string        `json:"timestamp,omitempty"`
}

func (*User) recordName() string { return "user" }

func decodeUser(p Payload, path string) (*User, error) {
	d := &dec{p: p, path: path}
	rec := &User{
		UserIcon:       d.raw("userIcon"),
		AssignedBy:     d.str("assignedBy", false),
		OperatorID:     d.str("operator_id", false),
		Handle:         d.str("handle", false),
		UserID:         d.str("user_id", false),
		Username:       d.str("username", false),
		ID:             d.str("_id", false),
		Color:          d.str("color", false),
		Settings:       nested(d, "settings", decodeUserSettings),
		VideoQuality:   nested(d, "videoQuality", decodeVideoQuality),
		IsAdmin:        d.boolean("isAdmin", false),
		IsSiteMod:      d.boolean("isSiteMod", false),
		IsSupporter:    d.boolean("isSupporter", false),
		IsBroadcasting: d.boolean("isBroadcasting", false),
		IsGold:         d.boolean("isGold", false),
		Timestamp:      d.str("timestamp", false),
	}
	if d.err != nil {
		return nil, d.err
	}
	return rec, nil
}

// Session pairs the service-issued session token with the bot's own user record.
type Session struct {
	Token string `json:"token"`
	User  *User  `json:"user,omitempty"`
}

func (*Session) recordName() string { return "session" }

func decodeSession(p Payload, path string) (*Session, error) {
	d := &dec{p: p, path: path}
	rec := &Session{
		Token: d.str("token", true),
		User:  nested(d, "user", decodeUser),
	}
	if d.err != nil {
		return nil, d.err
	}
	return rec, nil
}
