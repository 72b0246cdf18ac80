package mqtt

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrovision/kiosk-go/internal/conf"
)

func TestTransitionMessageJSON(t *testing.T) {
	t.Parallel()

	msg := TransitionMessage{
		Timestamp: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		From:      "READY",
		To:        "SCANNING",
		Event:     "OBJECT_DETECTED",
	}
	data, err := json.Marshal(msg)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"timestamp": "2026-03-01T12:00:00Z",
		"from": "READY",
		"to": "SCANNING",
		"event": "OBJECT_DETECTED"
	}`, string(data))
}

func TestPublisher_SkipsPublishWhenDisconnected(t *testing.T) {
	t.Parallel()

	p := NewPublisher(conf.MQTTSettings{Broker: "tcp://127.0.0.1:1", Topic: "kiosk"})
	// never connected; must be a silent no-op
	p.PublishTransition(TransitionMessage{From: "READY", To: "SCANNING"})
	p.PublishScanSummary(ScanSummaryMessage{SessionID: "s1"})
}
