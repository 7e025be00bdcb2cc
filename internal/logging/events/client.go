package events

import "triviabrowse/internal/logging"

type ClientTracer struct{}

var Client = ClientTracer{}

func (ClientTracer) Request(op, method, url, requestID string) {
	logging.Trace("client.request", map[string]interface{}{
		"op":        op,
		"method":    method,
		"url":       url,
		"requestId": requestID,
	})
}

func (ClientTracer) Response(op, requestID string, status int) {
	logging.Trace("client.response", map[string]interface{}{
		"op":        op,
		"requestId": requestID,
		"status":    status,
	})
}

func (ClientTracer) Failure(op, requestID string, err error) {
	logging.Trace("client.failure", map[string]interface{}{
		"op":        op,
		"requestId": requestID,
		"error":     err.Error(),
	})
}
