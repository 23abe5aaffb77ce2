package notify

import "testing"

func TestUrgencyValues(t *testing.T) {
	// Verify urgency constants match D-Bus spec
	if UrgencyLow != 0 {
		t.Errorf("UrgencyLow = %d, want 0", UrgencyLow)
	}
	if UrgencyNormal != 1 {
		t.Errorf("UrgencyNormal = %d, want 1", UrgencyNormal)
	}
	if UrgencyCritical != 2 {
		t.Errorf("UrgencyCritical = %d, want 2", UrgencyCritical)
	}
}

func TestNowPlaying(t *testing.T) {
	n := NowPlaying("Battle1", []string{"rpgmvo", "", "01:32"}, "/game/icon/icon.png", 7)

	if n.Title != "Battle1" {
		t.Errorf("Title = %q", n.Title)
	}
	if n.Body != "rpgmvo · 01:32" {
		t.Errorf("Body = %q, want empty details skipped", n.Body)
	}
	if n.Icon != "/game/icon/icon.png" {
		t.Errorf("Icon = %q", n.Icon)
	}
	if n.ReplacesID != 7 {
		t.Errorf("ReplacesID = %d, want 7", n.ReplacesID)
	}
	if n.Timeout <= 0 {
		t.Errorf("Timeout = %d, want a finite timeout", n.Timeout)
	}
}

func TestNop(t *testing.T) {
	var n Notifier = Nop{}
	id, err := n.Notify(Notification{Title: "x"})
	if id != 0 || err != nil {
		t.Errorf("Notify() = %d, %v", id, err)
	}
	if err := n.Close(1); err != nil {
		t.Errorf("Close() = %v", err)
	}
}
