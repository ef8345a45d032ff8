package advice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cropsight/cropsight/pkg/types"
)

// TestLookupIsTotal enforces the static-configuration invariant: every
// label has a complete, bilingual record. A gap here is a build defect.
func TestLookupIsTotal(t *testing.T) {
	for _, label := range types.AllLabels() {
		record := Lookup(label)

		for _, lang := range []types.Language{types.LangEnglish, types.LangHindi} {
			assert.NotEmpty(t, record.Treatment[lang], "%s treatment (%s)", label, lang)
			assert.NotEmpty(t, record.Prevention[lang], "%s prevention (%s)", label, lang)
		}
	}
}

func TestLookupUnknownLabelPanics(t *testing.T) {
	assert.Panics(t, func() {
		Lookup(types.Label("Imaginary Disease"))
	})
}

func TestHealthyIsLowSeverity(t *testing.T) {
	record := Lookup(types.Healthy)
	require.Equal(t, types.SeverityLow, record.Severity)
	assert.Equal(t, "success", record.Severity.PresentationHint())
}

func TestIncurableDiseasesAreHighSeverity(t *testing.T) {
	for _, label := range []types.Label{types.LateBlight, types.MosaicVirus, types.DownyMildew} {
		assert.Equal(t, types.SeverityHigh, Lookup(label).Severity, string(label))
	}
}
