package stderr

import "github.com/sirupsen/logrus"

// Messages receives stderr lines captured from C libraries.
// Callers should read from this channel or hand it to Forward.
var Messages = make(chan string, 100)

// Forward logs every captured line at warn level until Stop is called.
// The returned channel is closed once Messages has been drained.
func Forward(logger logrus.FieldLogger) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for line := range Messages {
			logger.WithField("source", "stderr").Warn(line)
		}
	}()
	return done
}
