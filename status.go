package authsession

import (
	"encoding/json"
	"reflect"
)

// Wire keys of the session record. Every context reading or writing the
// durable store agrees on these.
const (
	keyLoggedIn       = "loggedIn"
	keyCurrentUser    = "currentUser"
	keyUser           = "user"
	keyFullName       = "full_name"
	keyToken          = "token"
	keyLang           = "lang"
	keyHomePage       = "home_page"
	keyMessage        = "message"
	keyTimestamp      = "timestamp"
	keySessionExpired = "session_expired"
)

// volatileKeys differ incidentally between two semantically identical
// sessions and are excluded from change detection. They are still persisted;
// downstream consumers read home_page and message from storage.
var volatileKeys = []string{keyTimestamp, keyHomePage, keyMessage}

// SessionStatusInfo is the session record: the serialized representation of
// the current login/user/token state. Arbitrary additional backend-supplied
// fields are carried opaquely in Extra and round-trip through JSON.
type SessionStatusInfo struct {
	// LoggedIn reports whether the backend considers this session
	// authenticated.
	LoggedIn bool
	// CurrentUser is the identifier of the logged-in user. Cleared whenever
	// LoggedIn is false.
	CurrentUser string
	// User is the user identifier as supplied by the backend login payload.
	User string
	// FullName is the display name supplied by the backend, if any.
	FullName string
	// Token is the opaque bearer credential, if the backend issued one.
	Token string
	// Lang is the user's language, if the backend reported one.
	Lang string
	// HomePage is a human-readable landing page hint. Volatile: persisted
	// but never compared.
	HomePage string
	// Message is a human-readable status message. Volatile: persisted but
	// never compared.
	Message string
	// Timestamp is seconds since epoch of the last verified session check.
	// Volatile: persisted but never compared.
	Timestamp float64
	// SessionExpired is set only by an expiry notification, never by normal
	// login or logout. nil means the field is absent from the record.
	SessionExpired *bool
	// Extra holds backend-supplied fields this package does not interpret.
	Extra map[string]any
}

// MarshalJSON flattens the record into a single JSON object, folding Extra
// into the top level.
func (s SessionStatusInfo) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(s.Extra)+8)
	for k, v := range s.Extra {
		m[k] = v
	}
	m[keyLoggedIn] = s.LoggedIn
	m[keyTimestamp] = s.Timestamp
	if s.CurrentUser != "" {
		m[keyCurrentUser] = s.CurrentUser
	}
	if s.User != "" {
		m[keyUser] = s.User
	}
	if s.FullName != "" {
		m[keyFullName] = s.FullName
	}
	if s.Token != "" {
		m[keyToken] = s.Token
	}
	if s.Lang != "" {
		m[keyLang] = s.Lang
	}
	if s.HomePage != "" {
		m[keyHomePage] = s.HomePage
	}
	if s.Message != "" {
		m[keyMessage] = s.Message
	}
	if s.SessionExpired != nil {
		m[keySessionExpired] = *s.SessionExpired
	}
	return json.Marshal(m)
}

// UnmarshalJSON lifts the known fields out of the object and keeps the rest
// in Extra.
func (s *SessionStatusInfo) UnmarshalJSON(data []byte) error {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*s = SessionStatusInfo{}
	if v, ok := m[keyLoggedIn].(bool); ok {
		s.LoggedIn = v
	}
	if v, ok := m[keyTimestamp].(float64); ok {
		s.Timestamp = v
	}
	if v, ok := m[keyCurrentUser].(string); ok {
		s.CurrentUser = v
	}
	if v, ok := m[keyUser].(string); ok {
		s.User = v
	}
	if v, ok := m[keyFullName].(string); ok {
		s.FullName = v
	}
	if v, ok := m[keyToken].(string); ok {
		s.Token = v
	}
	if v, ok := m[keyLang].(string); ok {
		s.Lang = v
	}
	if v, ok := m[keyHomePage].(string); ok {
		s.HomePage = v
	}
	if v, ok := m[keyMessage].(string); ok {
		s.Message = v
	}
	if v, ok := m[keySessionExpired].(bool); ok {
		expired := v
		s.SessionExpired = &expired
	}
	for _, k := range []string{
		keyLoggedIn, keyTimestamp, keyCurrentUser, keyUser, keyFullName,
		keyToken, keyLang, keyHomePage, keyMessage, keySessionExpired,
	} {
		delete(m, k)
	}
	if len(m) > 0 {
		s.Extra = m
	}
	return nil
}

// Clone returns a deep copy via a JSON round trip, which also normalizes the
// value types inside Extra.
func (s SessionStatusInfo) Clone() SessionStatusInfo {
	raw, err := json.Marshal(s)
	if err != nil {
		return s
	}
	var out SessionStatusInfo
	if err := json.Unmarshal(raw, &out); err != nil {
		return s
	}
	return out
}

// comparableMap projects the record onto a map with the volatile fields
// removed. session_expired deliberately stays: its presence is a semantic
// difference that must trigger reconciliation exactly once.
func (s SessionStatusInfo) comparableMap() (map[string]any, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	for _, k := range volatileKeys {
		delete(m, k)
	}
	return m, nil
}

// equalIgnoringVolatile reports whether two records are semantically
// identical, ignoring timestamp, home_page, and message.
func equalIgnoringVolatile(a, b SessionStatusInfo) bool {
	am, errA := a.comparableMap()
	bm, errB := b.comparableMap()
	if errA != nil || errB != nil {
		return reflect.DeepEqual(a, b)
	}
	return reflect.DeepEqual(am, bm)
}

// defaultSessionStatus is the logged-out state every context starts from.
func defaultSessionStatus() SessionStatusInfo {
	return SessionStatusInfo{LoggedIn: false, Timestamp: 0}
}
