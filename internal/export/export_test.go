package export_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alloyheat/internal/alloy"
	"alloyheat/internal/export"
)

func sampleSnapshot(t *testing.T) alloy.Snapshot {
	t.Helper()
	g, err := alloy.NewGrid(4, 10, 1, 1, 1)
	require.NoError(t, err)
	for row := 0; row < 4; row++ {
		for col := 0; col < 10; col++ {
			require.NoError(t, g.SetTemperature(float64(row*10+col), row, col))
		}
	}
	return g.Snapshot()
}

func TestWritePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "plate.png")
	require.NoError(t, export.WritePNG(path, sampleSnapshot(t), "plate"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")), "file is not a PNG")
}

func TestWritePNG_FlatField(t *testing.T) {
	g, err := alloy.NewGrid(3, 3, 1, 1, 1)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "flat.png")
	require.NoError(t, export.WritePNG(path, g.Snapshot(), "flat"))
}

func TestWriteHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteHTML(&buf, sampleSnapshot(t), "Alloy after 10 phases"))
	out := buf.String()
	assert.Contains(t, out, "Alloy after 10 phases")
	assert.Contains(t, out, "temperature")
	assert.Contains(t, out, "heatmap")
}

func TestWriteHTMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plate.html")
	require.NoError(t, export.WriteHTMLFile(path, sampleSnapshot(t), "plate"))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestEmptySnapshot(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, export.WriteHTML(&buf, alloy.Snapshot{}, "empty"), export.ErrEmptySnapshot)
	assert.ErrorIs(t, export.WritePNG(filepath.Join(t.TempDir(), "e.png"), alloy.Snapshot{}, "empty"), export.ErrEmptySnapshot)
}
