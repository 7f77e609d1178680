// internal/i18n/i18n_test.go
package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslate(t *testing.T) {
	require.NoError(t, Initialize("en"))

	assert.Equal(t, "Product not found", T("en", KeyProductNotFound))
	assert.Equal(t, "找不到商品", T("zh_TW", KeyProductNotFound))
	assert.Equal(t, "Welcome, Alex!", T("en", KeyAuthWelcome, "Alex"))

	// unknown language falls back to the default
	assert.Equal(t, "Cart cleared", T("fr", KeyCartCleared))
	// unknown key is returned as-is
	assert.Equal(t, "nope.missing", T("en", "nope.missing"))

	assert.Equal(t, []string{"en", "zh_TW"}, GetSupportedLanguages())
}

func TestLocalesShareKeys(t *testing.T) {
	require.NoError(t, Initialize("en"))

	en := instance.translations["en"]
	zh := instance.translations["zh_TW"]
	require.NotEmpty(t, en)
	for key := range en {
		assert.Contains(t, zh, key, "zh_TW is missing %s", key)
	}
	assert.Len(t, zh, len(en))
}
