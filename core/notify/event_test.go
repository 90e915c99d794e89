package notify_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailpush/core/notify"
)

func TestEvent_Encode(t *testing.T) {
	t.Parallel()

	t.Run("wire_format", func(t *testing.T) {
		t.Parallel()
		frame, err := notify.NewMailEvent("alice@x", "Hi").Encode()
		require.NoError(t, err)
		assert.Equal(t, `{"type":"NEW_MAIL","from":"alice@x","subject":"Hi"}`, string(frame))
	})

	t.Run("escapes_quotes_and_control_characters", func(t *testing.T) {
		t.Parallel()
		subject := "say \"hi\"\n\tnow\\"
		frame, err := notify.NewMailEvent("alice@x", subject).Encode()
		require.NoError(t, err)
		assert.Equal(t, `{"type":"NEW_MAIL","from":"alice@x","subject":"say \"hi\"\n\tnow\\"}`, string(frame))

		var decoded notify.Event
		require.NoError(t, json.Unmarshal(frame, &decoded))
		assert.Equal(t, subject, decoded.Subject)
	})

	t.Run("keeps_html_characters", func(t *testing.T) {
		t.Parallel()
		frame, err := notify.NewMailEvent("a&b@x", "<b>sale</b>").Encode()
		require.NoError(t, err)
		assert.Equal(t, `{"type":"NEW_MAIL","from":"a&b@x","subject":"<b>sale</b>"}`, string(frame))
	})

	t.Run("empty_subject", func(t *testing.T) {
		t.Parallel()
		frame, err := notify.NewMailEvent("alice@x", "").Encode()
		require.NoError(t, err)
		assert.Equal(t, `{"type":"NEW_MAIL","from":"alice@x","subject":""}`, string(frame))
	})
}
