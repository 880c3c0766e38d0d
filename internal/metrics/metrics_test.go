package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordModeration(t *testing.T) {
	before := map[string]float64{
		OutcomeSuccess:  testutil.ToFloat64(ModerationActions.WithLabelValues("ban", OutcomeSuccess)),
		OutcomeRejected: testutil.ToFloat64(ModerationActions.WithLabelValues("ban", OutcomeRejected)),
		OutcomeError:    testutil.ToFloat64(ModerationActions.WithLabelValues("ban", OutcomeError)),
	}

	RecordModeration("ban", nil, false)
	RecordModeration("ban", errors.New("conflict"), true)
	RecordModeration("ban", errors.New("db down"), false)

	for outcome, prev := range before {
		got := testutil.ToFloat64(ModerationActions.WithLabelValues("ban", outcome))
		assert.Equal(t, prev+1, got, outcome)
	}
}
