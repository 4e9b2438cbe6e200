package styles

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/thenoetrevino/lanes/internal/models"
)

func TestRenderTaskLine(t *testing.T) {
	high := models.PriorityHigh
	line := RenderTaskLine(&models.TaskSummary{
		ID: 12, Title: "Ship it", Position: 2048, Priority: &high,
		Labels: []*models.Label{{Name: "bug", Color: "#EF4444"}},
	})

	assert.Contains(t, line, "#12")
	assert.Contains(t, line, "Ship it")
	assert.Contains(t, line, "[high]")
	assert.Contains(t, line, "bug")
	assert.Contains(t, line, "@2048")
}

func TestRenderColumnView(t *testing.T) {
	limit := 2
	view := &models.ColumnView{
		Column: &models.Column{ID: 3, Name: "Doing", Limit: &limit},
		Tasks: []*models.TaskSummary{
			{ID: 1, Title: "A", Position: 1024},
			{ID: 2, Title: "B", Position: 2048},
		},
	}

	out := RenderColumnView(view)
	assert.Contains(t, out, "Doing")
	assert.Contains(t, out, "(2/2)")
	assert.Less(t, strings.Index(out, "#1"), strings.Index(out, "#2"))
}

func TestRenderColumnView_Empty(t *testing.T) {
	out := RenderColumnView(&models.ColumnView{Column: &models.Column{ID: 1, Name: "Done"}})
	assert.Contains(t, out, "(empty)")
}

func TestRenderActivity(t *testing.T) {
	out := RenderActivity(&models.Activity{
		Type:        models.ActivityTaskMoved,
		Description: `moved "A" from "Todo" to "Doing"`,
		CreatedAt:   time.Now(),
	})
	assert.Contains(t, out, "task.moved")
	assert.Contains(t, out, `moved "A"`)
}
