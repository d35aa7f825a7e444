package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cleanos-ai/cleanos/internal/aggregate"
	"github.com/cleanos-ai/cleanos/internal/models"
)

func TestSetDark(t *testing.T) {
	t.Cleanup(func() { SetDark(true) })

	assert.True(t, Current().Dark)

	SetDark(false)
	assert.Equal(t, "light", Current().Name)
	assert.Equal(t, LightTheme.Primary, Current().Primary)

	SetDark(true)
	assert.Equal(t, "dark", Current().Name)
}

func TestCategoryColor(t *testing.T) {
	assert.Equal(t, DarkTheme.CategoryMedia, CategoryColor(models.CategoryMedia))
	assert.Equal(t, DarkTheme.TextMuted, CategoryColor(models.CategoryOther))
	assert.Equal(t, DarkTheme.TextMuted, CategoryColor(""))
}

func TestLevelAndSeverityColors(t *testing.T) {
	assert.Equal(t, DarkTheme.Error, LevelColor(aggregate.LevelCritical))
	assert.Equal(t, DarkTheme.Warning, LevelColor(aggregate.LevelWarning))
	assert.Equal(t, DarkTheme.Success, LevelColor(aggregate.LevelNormal))

	assert.Equal(t, DarkTheme.Success, SeverityColor(aggregate.SeverityFavorable))
	assert.Equal(t, DarkTheme.Warning, SeverityColor(aggregate.SeverityCautionary))
	assert.Equal(t, DarkTheme.Error, SeverityColor(aggregate.SeverityBlocking))
}
