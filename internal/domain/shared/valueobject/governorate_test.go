package valueobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGovernorate(t *testing.T) {
	t.Run("parses known names case-insensitively", func(t *testing.T) {
		gov, err := ParseGovernorate("Baghdad")
		require.NoError(t, err)
		assert.Equal(t, GovernorateBaghdad, gov)
	})

	t.Run("rejects unknown names", func(t *testing.T) {
		_, err := ParseGovernorate("atlantis")
		assert.Error(t, err)
	})
}

func TestGovernorateCatalog(t *testing.T) {
	all := AllGovernorates()
	assert.Len(t, all, 18)

	for _, gov := range all {
		assert.True(t, gov.IsValid(), "governorate %s should be valid", gov)
		assert.NotEmpty(t, gov.ArabicName(), "governorate %s should have an Arabic name", gov)
	}

	assert.Equal(t, "بغداد", GovernorateBaghdad.ArabicName())
	assert.False(t, Governorate("atlantis").IsValid())
}
