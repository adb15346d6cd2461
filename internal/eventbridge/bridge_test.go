package eventbridge

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vk/dagseq/internal/sequence"
)

func TestToWireEvent_CarriesTaskFields(t *testing.T) {
	at := time.Unix(100, 0)
	e := sequence.Event{
		Seq:        3,
		Kind:       sequence.EventTaskFailed,
		At:         at,
		TaskID:     "build",
		Attempts:   4,
		Message:    "boom",
		DurationMs: 250,
	}

	w := toWireEvent(e)

	require.Equal(t, int64(3), w.Seq)
	require.Equal(t, "task_failed", w.Kind)
	require.Equal(t, at.UnixMilli(), w.AtUnixMs)
	require.Equal(t, "build", w.TaskID)
	require.Equal(t, 4, w.Attempts)
	require.Equal(t, "boom", w.Message)
	require.Equal(t, int64(250), w.DurationMs)
}

func TestToWireEvent_SequenceFinishedCarriesOKAndFailures(t *testing.T) {
	e := sequence.Event{
		Kind:     sequence.EventSequenceFinished,
		OK:       true,
		Failures: 2,
	}

	w := toWireEvent(e)

	require.Equal(t, "sequence_finished", w.Kind)
	require.True(t, w.OK)
	require.Equal(t, 2, w.Failures)
}
