package dashboard

import (
	"github.com/sirupsen/logrus"

	"github.com/mediapulse/pulse/logging"
)

// Renderer builds one tab's output from a snapshot.
type Renderer func(Snapshot) string

var dispatchLog = logging.NewLogger("dispatch")

// SafeRender invokes a renderer, recovering and logging a panic so one
// broken renderer never takes down its siblings. On panic the previous
// content placeholder (empty string) is returned.
func SafeRender(name string, fn Renderer, snap Snapshot) (out string) {
	defer func() {
		if r := recover(); r != nil {
			dispatchLog.WithFields(logrus.Fields{"renderer": name}).
				Errorf("Renderer panicked: %v", r)
			out = ""
		}
	}()
	return fn(snap)
}

// RenderAll runs a set of renderers in order, isolating each one, and
// returns the per-tab outputs keyed by renderer name.
func RenderAll(renderers map[string]Renderer, snap Snapshot) map[string]string {
	results := make(map[string]string, len(renderers))
	for name, fn := range renderers {
		results[name] = SafeRender(name, fn, snap)
	}
	return results
}
