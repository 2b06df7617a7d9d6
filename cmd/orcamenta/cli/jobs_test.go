package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTriggerRejectsUnknownJob(t *testing.T) {
	c, err := NewJobsCLI("127.0.0.1:6379")
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	_, err = c.Trigger(context.Background(), "mail:send")
	require.ErrorContains(t, err, "unsupported job")
}

func TestTriggerRequiresClient(t *testing.T) {
	var c *JobsCLI
	_, err := c.Trigger(context.Background(), "backup:snapshot")
	require.ErrorContains(t, err, "not configured")
}
