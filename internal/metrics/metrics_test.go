package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestOutcome(t *testing.T) {
	assert.Equal(t, "ok", Outcome(nil))
	assert.Equal(t, "error", Outcome(errors.New("boom")))
}

func TestCartOperationsCounter(t *testing.T) {
	before := testutil.ToFloat64(CartOperations.WithLabelValues("add", "ok"))
	CartOperations.WithLabelValues("add", "ok").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(CartOperations.WithLabelValues("add", "ok")))
}
