package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestIncViolationsIncrementsCounter(t *testing.T) {
	before := testutil.ToFloat64(violationsTotal.WithLabelValues("import-organizer", "WARNING"))
	IncViolations("import-organizer", "WARNING")
	after := testutil.ToFloat64(violationsTotal.WithLabelValues("import-organizer", "WARNING"))
	assert.Equal(t, before+1, after)
}

func TestIncFilesProcessedIncrementsCounter(t *testing.T) {
	before := testutil.ToFloat64(filesProcessedTotal.WithLabelValues("formatted"))
	IncFilesProcessed("formatted")
	after := testutil.ToFloat64(filesProcessedTotal.WithLabelValues("formatted"))
	assert.Equal(t, before+1, after)
}

func TestVersionLabelHandlesNonPositiveVersion(t *testing.T) {
	assert.Equal(t, "unknown", versionLabel(0))
	assert.Equal(t, "unknown", versionLabel(-1))
	assert.Equal(t, "17", versionLabel(17))
}

func TestObserveParseDurationDoesNotPanic(t *testing.T) {
	ObserveParseDuration(21, 0.01)
}

func TestObserveRuleDurationDoesNotPanic(t *testing.T) {
	ObserveRuleDuration("import-organizer", "analyze", 0.002)
}
