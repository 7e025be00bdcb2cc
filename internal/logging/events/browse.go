package events

import "triviabrowse/internal/logging"

type BrowseTracer struct{}

var Browse = BrowseTracer{}

func (BrowseTracer) Intent(name string, payload map[string]interface{}) {
	if payload == nil {
		payload = map[string]interface{}{}
	}
	payload["intent"] = name
	logging.Trace("browse.intent", payload)
}

func (BrowseTracer) Applied(op, filter string, page, count, total int) {
	logging.Trace("browse.applied", map[string]interface{}{
		"op":     op,
		"filter": filter,
		"page":   page,
		"count":  count,
		"total":  total,
	})
}

func (BrowseTracer) Failed(op string, err error) {
	logging.Trace("browse.failed", map[string]interface{}{
		"op":    op,
		"error": err.Error(),
	})
	logging.Error(err)
}

func (BrowseTracer) Stale(op, token string) {
	logging.Trace("browse.stale", map[string]interface{}{
		"op":    op,
		"token": token,
	})
}

func (BrowseTracer) Confirmation(id int, confirmed bool) {
	logging.Trace("browse.confirmation", map[string]interface{}{
		"id":        id,
		"confirmed": confirmed,
	})
}
