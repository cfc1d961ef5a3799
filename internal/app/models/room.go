/*
Package models converts the loosely-typed, nested event payloads received from
the chat service into a typed object graph.

This file defines the room-side records: room attributes, topic, room settings,
the user list, the ban list, and the join/handle-change events.
*/
package models

// Attrs carries the room's fixed attributes.
type Attrs struct {
	Owner         string `json:"owner"`
	JanusID       int    `json:"janus_id"`
	Fresh         bool   `json:"fresh"`
	AgeRestricted bool   `json:"ageRestricted"`
}

func (*Attrs) recordName() string { return "attrs" }

func decodeAttrs(p Payload, path string) (*Attrs, error) {
	d := &dec{p: p, path: path}
	rec := &Attrs{
		Owner:         d.str("owner", true),
		JanusID:       d.num("janus_id", true),
		Fresh:         d.boolean("fresh", true),
		AgeRestricted: d.boolean("ageRestricted", true),
	}
	if d.err != nil {
		return nil, d.err
	}
	return rec, nil
}

// UpdatedBy identifies the user who last changed the room topic.
type UpdatedBy struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
}

func (*UpdatedBy) recordName() string { return "updatedBy" }

func decodeUpdatedBy(p Payload, path string) (*UpdatedBy, error) {
	d := &dec{p: p, path: path}
	rec := &UpdatedBy{
		ID:       d.str("_id", true),
		Username: d.str("username", true),
	}
	if d.err != nil {
		return nil, d.err
	}
	return rec, nil
}

// Topic is the room topic.
type Topic struct {
	Text      string     `json:"text"`
	UpdatedAt string     `json:"updatedAt"`
	UpdatedBy *UpdatedBy `json:"updatedBy,omitempty"`
}

func (*Topic) recordName() string { return "topic" }

func decodeTopic(p Payload, path string) (*Topic, error) {
	d := &dec{p: p, path: path}
	rec := &Topic{
		Text:      d.str("text", true),
		UpdatedAt: d.str("updatedAt", true),
		UpdatedBy: nested(d, "updatedBy", decodeUpdatedBy),
	}
	if d.err != nil {
		return nil, d.err
	}
	return rec, nil
}

// RoomSettings is the room-level settings schema. See UserSettings for the
// disambiguation of the shared "settings" field name.
type RoomSettings struct {
	Public           bool   `json:"public"`
	ModOnlyPlayMedia bool   `json:"modOnlyPlayMedia"`
	ForcePtt         bool   `json:"forcePtt"`
	ForceUser        bool   `json:"forceUser"`
	Description      string `json:"description"`
	Display          string `json:"display"`
	RequiresPassword bool   `json:"requiresPassword"`
	Topic            *Topic `json:"topic,omitempty"`
}

func (*RoomSettings) recordName() string { return "roomSettings" }

func decodeRoomSettings(p Payload, path string) (*RoomSettings, error) {
	d := &dec{p: p, path: path}
	rec := &RoomSettings{
		Public:           d.boolean("public", true),
		ModOnlyPlayMedia: d.boolean("modOnlyPlayMedia", true),
		ForcePtt:         d.boolean("forcePtt", true),
		ForceUser:        d.boolean("forceUser", true),
		Description:      d.str("description", true),
		Display:          d.str("display", true),
		RequiresPassword: d.boolean("requiresPassword", true),
		Topic:            nested(d, "topic", decodeTopic),
	}
	if d.err != nil {
		return nil, d.err
	}
	return rec, nil
}

// UserList is the room snapshot: identity, attributes, settings, and the
// ordered list of present users (join order is significant).
type UserList struct {
	ID       string        `json:"_id,omitempty"`
	Name     string        `json:"name,omitempty"`
	Attrs    *Attrs        `json:"attrs,omitempty"`
	Settings *RoomSettings `json:"settings,omitempty"`
	Users    []User        `json:"users,omitempty"`
}

func (*UserList) recordName() string { return "userList" }

func decodeUserList(p Payload, path string) (*UserList, error) {
	d := &dec{p: p, path: path}
	rec := &UserList{
		ID:       d.str("_id", false),
		Name:     d.str("name", false),
		Attrs:    nested(d, "attrs", decodeAttrs),
		Settings: nested(d, "settings", decodeRoomSettings),
		Users:    sequence(d, "users", false, decodeUser),
	}
	if d.err != nil {
		return nil, d.err
	}
	return rec, nil
}

// Get returns the user with the given handle, or nil when no such user is present.
func (l *UserList) Get(handle string) *User {
	for i := range l.Users {
		if l.Users[i].Handle == handle {
			return &l.Users[i]
		}
	}
	return nil
}

// UpdateUserList carries a single-user update to the room's user list.
type UpdateUserList struct {
	User *User `json:"user"`
}

func (*UpdateUserList) recordName() string { return "updateUserList" }

func decodeUpdateUserList(p Payload, path string) (*UpdateUserList, error) {
	d := &dec{p: p, path: path}
	rec := &UpdateUserList{
		User: nested(d, "user", decodeUser),
	}
	if d.err != nil {
		return nil, d.err
	}
	if rec.User == nil {
		return nil, mismatch(joinPath(path, "user"), "nested payload", "missing")
	}
	return rec, nil
}

// BanListItem is a single entry of the room's ban list.
type BanListItem struct {
	ID        string `json:"_id"`
	Handle    string `json:"handle"`
	Timestamp string `json:"timestamp"`
}

func (*BanListItem) recordName() string { return "banlistItem" }

func decodeBanListItem(p Payload, path string) (*BanListItem, error) {
	d := &dec{p: p, path: path}
	rec := &BanListItem{
		ID:        d.str("_id", true),
		Handle:    d.str("handle", true),
		Timestamp: d.str("timestamp", true),
	}
	if d.err != nil {
		return nil, d.err
	}
	return rec, nil
}

// Banlist is the room's ban list, in chronological order.
type Banlist struct {
	List []BanListItem `json:"list"`
}

func (*Banlist) recordName() string { return "banlist" }

func decodeBanlist(p Payload, path string) (*Banlist, error) {
	d := &dec{p: p, path: path}
	rec := &Banlist{
		List: sequence(d, "list", true, decodeBanListItem),
	}
	if d.err != nil {
		return nil, d.err
	}
	return rec, nil
}

// Join announces a user joining the room.
type Join struct {
	User *User  `json:"user"`
	Room string `json:"room,omitempty"`
}

func (*Join) recordName() string { return "join" }

func decodeJoin(p Payload, path string) (*Join, error) {
	d := &dec{p: p, path: path}
	rec := &Join{
		User: nested(d, "user", decodeUser),
		Room: d.str("room", false),
	}
	if d.err != nil {
		return nil, d.err
	}
	if rec.User == nil {
		return nil, mismatch(joinPath(path, "user"), "nested payload", "missing")
	}
	return rec, nil
}

// HandleChange announces a user's handle change.
type HandleChange struct {
	UserID string `json:"userId,omitempty"`
	Handle string `json:"handle"`
}

func (*HandleChange) recordName() string { return "handleChange" }

func decodeHandleChange(p Payload, path string) (*HandleChange, error) {
	d := &dec{p: p, path: path}
	rec := &HandleChange{
		UserID: d.str("userId", false),
		Handle: d.str("handle", true),
	}
	if d.err != nil {
		return nil, d.err
	}
	return rec, nil
}
