package events

import "triviabrowse/internal/logging"

type UITracer struct{}

var UI = UITracer{}

func (UITracer) Key(mode, key string) {
	logging.Trace("ui.key", map[string]interface{}{
		"mode": mode,
		"key":  key,
	})
}

func (UITracer) Action(name string) {
	logging.Trace("ui.action", map[string]interface{}{"action": name})
}

func (UITracer) Resize(width, height int) {
	logging.Trace("ui.resize", map[string]interface{}{
		"width":  width,
		"height": height,
	})
}

func (UITracer) Pager(title string, err error) {
	payload := map[string]interface{}{"title": title}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("ui.pager", payload)
}
