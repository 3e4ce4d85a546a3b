package locale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslator(t *testing.T) {
	b, err := New()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"en", "zh"}, b.Languages())

	en := b.Translator("en")
	assert.Equal(t, "Next", en.T("next"))
	assert.Equal(t, "3 / 10", en.T("progress", map[string]any{"Current": 3, "Total": 10}))

	zh := b.Translator("zh-CN,zh;q=0.9,en;q=0.8")
	assert.Equal(t, "下一页", zh.T("next"))
	assert.Equal(t, "zh", zh.Lang())
	assert.Equal(t, "en", en.Lang())

	fallback := b.Translator("fr")
	assert.Equal(t, "Previous", fallback.T("previous"))
	assert.Equal(t, "en", fallback.Lang())
	assert.Equal(t, "no_such_message", fallback.T("no_such_message"))
}
