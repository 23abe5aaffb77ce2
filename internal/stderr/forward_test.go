package stderr

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestForward(t *testing.T) {
	logger, hook := test.NewNullLogger()

	orig := Messages
	Messages = make(chan string, 2)
	t.Cleanup(func() { Messages = orig })

	Messages <- "ALSA lib pcm.c: underrun occurred"
	Messages <- "second line"
	done := Forward(logger)
	close(Messages)
	<-done

	entries := hook.AllEntries()
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Message != "ALSA lib pcm.c: underrun occurred" {
		t.Errorf("first message = %q", entries[0].Message)
	}
	if entries[0].Level != logrus.WarnLevel {
		t.Errorf("level = %v, want warn", entries[0].Level)
	}
	if entries[1].Data["source"] != "stderr" {
		t.Errorf("source field = %v, want stderr", entries[1].Data["source"])
	}
}
