package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Formats(t *testing.T) {
	ctx := context.Background()

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		l, err := New(FormatJSON, &buf)
		require.NoError(t, err)
		l.Info(ctx, "hello", "k", "v")

		var rec map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		assert.Equal(t, "hello", rec["msg"])
		assert.Equal(t, "v", rec["k"])
	})

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		l, err := New(FormatText, &buf)
		require.NoError(t, err)
		l.Info(ctx, "hello", "k", "v")
		assert.True(t, strings.Contains(buf.String(), "msg=hello"))
	})

	t.Run("zap", func(t *testing.T) {
		var buf bytes.Buffer
		l, err := New(FormatZap, &buf)
		require.NoError(t, err)
		l.Info(ctx, "hello", "k", "v")
		require.NoError(t, l.(*ZapLogger).Sync())

		var rec map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		assert.Equal(t, "hello", rec["msg"])
		assert.Equal(t, "v", rec["k"])
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := New("xml", &bytes.Buffer{})
		assert.Error(t, err)
	})
}
