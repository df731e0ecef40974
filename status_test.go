package authsession

import (
	"encoding/json"
	"testing"
)

func TestSessionStatusJSONRoundTrip(t *testing.T) {
	expired := true
	in := SessionStatusInfo{
		LoggedIn:       true,
		CurrentUser:    "alice",
		User:           "alice",
		FullName:       "Alice Doe",
		Token:          "abc",
		Lang:           "ar",
		HomePage:       "/app",
		Message:        "Logged In",
		Timestamp:      1234567890.5,
		SessionExpired: &expired,
		Extra:          map[string]any{"employee": "EMP-001", "level": float64(3)},
	}

	raw, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatalf("record is not a flat object: %v", err)
	}
	for _, key := range []string{"loggedIn", "currentUser", "full_name", "home_page", "session_expired", "employee"} {
		if _, ok := m[key]; !ok {
			t.Fatalf("record missing %q: %s", key, raw)
		}
	}

	var out SessionStatusInfo
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.CurrentUser != "alice" || out.FullName != "Alice Doe" || out.Timestamp != 1234567890.5 {
		t.Fatalf("round trip lost known fields: %+v", out)
	}
	if out.SessionExpired == nil || !*out.SessionExpired {
		t.Fatalf("round trip lost session_expired: %+v", out)
	}
	if out.Extra["employee"] != "EMP-001" || out.Extra["level"] != float64(3) {
		t.Fatalf("round trip lost opaque fields: %+v", out.Extra)
	}
	if _, ok := out.Extra["loggedIn"]; ok {
		t.Fatalf("known field leaked into Extra: %+v", out.Extra)
	}
}

func TestEqualIgnoringVolatile(t *testing.T) {
	base := SessionStatusInfo{LoggedIn: true, CurrentUser: "alice", User: "alice", Token: "abc"}

	same := base.Clone()
	same.Timestamp = 99
	same.HomePage = "/desk"
	same.Message = "welcome back"
	if !equalIgnoringVolatile(base, same) {
		t.Fatalf("volatile fields treated as semantic change")
	}

	other := base.Clone()
	other.Token = "xyz"
	if equalIgnoringVolatile(base, other) {
		t.Fatalf("token change not detected")
	}

	expired := base.Clone()
	yes := true
	expired.SessionExpired = &yes
	if equalIgnoringVolatile(base, expired) {
		t.Fatalf("session_expired must participate in comparison")
	}

	// The logged-out default and an empty candidate are the same state.
	if !equalIgnoringVolatile(defaultSessionStatus(), SessionStatusInfo{}) {
		t.Fatalf("default and zero value differ")
	}
}

func TestCloneIsDeep(t *testing.T) {
	in := SessionStatusInfo{LoggedIn: true, Extra: map[string]any{"k": "v"}}
	out := in.Clone()
	out.Extra["k"] = "changed"
	if in.Extra["k"] != "v" {
		t.Fatalf("Clone shares the Extra map")
	}
}
