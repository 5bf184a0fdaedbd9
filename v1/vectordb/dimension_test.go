package vectordb

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcile_ZeroEvidenceIsIgnored(t *testing.T) {
	r := DimensionResolution{Size: 512, Source: SourceConfigured}

	got, err := r.Reconcile(DimensionResolution{Size: 0, Source: SourceObserved})

	require.NoError(t, err)
	assert.Equal(t, r, got)
}

func TestReconcile_EvidenceReplacesDefault(t *testing.T) {
	got, err := DefaultResolution().Reconcile(DimensionResolution{Size: 768, Source: SourceInferred})

	require.NoError(t, err)
	assert.Equal(t, uint64(768), got.Size)
	assert.Equal(t, SourceInferred, got.Source)
}

func TestReconcile_MatchingSizeKeepsStrongerSource(t *testing.T) {
	r := DimensionResolution{Size: 512, Source: SourceInferred}

	got, err := r.Reconcile(DimensionResolution{Size: 512, Source: SourceObserved})
	require.NoError(t, err)
	assert.Equal(t, SourceObserved, got.Source)

	// Weaker evidence of the same size changes nothing.
	got, err = got.Reconcile(DimensionResolution{Size: 512, Source: SourceInferred})
	require.NoError(t, err)
	assert.Equal(t, SourceObserved, got.Source)
}

func TestReconcile_ObservedWinsOverConfiguredConflict(t *testing.T) {
	r := DimensionResolution{Size: 256, Source: SourceConfigured}

	got, err := r.Reconcile(DimensionResolution{Size: 512, Source: SourceObserved})

	var mismatch *DimensionMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, uint64(512), mismatch.Expected)
	assert.Equal(t, uint64(256), mismatch.Actual)

	// The existing collection's dimension wins even though the call failed.
	assert.Equal(t, uint64(512), got.Size)
	assert.Equal(t, SourceObserved, got.Source)
}

func TestReconcile_ConflictAgainstObservedFails(t *testing.T) {
	r := DimensionResolution{Size: 512, Source: SourceObserved}

	got, err := r.Reconcile(DimensionResolution{Size: 256, Source: SourceConfigured})

	var mismatch *DimensionMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, uint64(512), mismatch.Expected)
	assert.Equal(t, uint64(256), mismatch.Actual)
	assert.Equal(t, r, got)
}

func TestReconcile_ConfiguredBeatsInferred(t *testing.T) {
	r := DimensionResolution{Size: 256, Source: SourceInferred}

	got, err := r.Reconcile(DimensionResolution{Size: 512, Source: SourceConfigured})

	require.NoError(t, err)
	assert.Equal(t, uint64(512), got.Size)
	assert.Equal(t, SourceConfigured, got.Source)
}

func TestReconcile_InferredCannotShrinkInferred(t *testing.T) {
	r := DimensionResolution{Size: 512, Source: SourceInferred}

	got, err := r.Reconcile(DimensionResolution{Size: 256, Source: SourceInferred})

	assert.True(t, IsDimensionMismatch(err))
	assert.Equal(t, r, got)
}

func TestConfiguredResolution_ZeroFallsBackToDefault(t *testing.T) {
	assert.Equal(t, DefaultResolution(), ConfiguredResolution(0))

	r := ConfiguredResolution(1024)
	assert.Equal(t, uint64(1024), r.Size)
	assert.Equal(t, SourceConfigured, r.Source)
}
