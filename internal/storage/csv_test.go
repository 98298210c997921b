package storage

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datadesk/scrub/internal/model"
)

func TestWriteClassified(t *testing.T) {
	var buf bytes.Buffer
	rows := []model.ClassifiedRow{
		{Row: model.Row{Filename: "a.jpg", Title: "Juneteenth", URL: "https://example.mil/a"}, Label: "Black"},
	}

	require.NoError(t, WriteClassified(&buf, rows, "theme"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "filename,title,url,theme", lines[0])
	assert.Equal(t, "a.jpg,Juneteenth,https://example.mil/a,Black", lines[1])
}

func TestReadClassified(t *testing.T) {
	t.Run("locates columns by header name", func(t *testing.T) {
		// Column order differs from the writer's; header lookup still works.
		input := "title,filename,theme,url\nJuneteenth,a.jpg,Black,https://example.mil/a\n"

		rows, err := ReadClassified(strings.NewReader(input), "theme")
		require.NoError(t, err)
		require.Len(t, rows, 1)

		assert.Equal(t, "a.jpg", rows[0].Filename)
		assert.Equal(t, "Juneteenth", rows[0].Title)
		assert.Equal(t, "Black", rows[0].Label)
	})

	t.Run("missing label column is an error", func(t *testing.T) {
		input := "filename,title,url\na.jpg,Juneteenth,https://example.mil/a\n"

		_, err := ReadClassified(strings.NewReader(input), "theme")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"theme"`)
	})

	t.Run("round-trips quoted fields", func(t *testing.T) {
		var buf bytes.Buffer
		rows := []model.ClassifiedRow{
			{Row: model.Row{Filename: "b.jpg", Title: `A "Complex", Title`, URL: ""}, Label: "Other"},
		}
		require.NoError(t, WriteClassified(&buf, rows, "type"))

		loaded, err := ReadClassified(&buf, "type")
		require.NoError(t, err)
		assert.Equal(t, rows, loaded)
	})
}

func TestRowsCSV(t *testing.T) {
	t.Run("writes header and round-trips", func(t *testing.T) {
		var buf bytes.Buffer
		rows := []model.Row{
			{Filename: "a.jpg", Title: "Juneteenth", URL: "https://example.mil/a"},
			{Filename: "b.jpg", Title: `A "Complex", Title`, URL: ""},
		}
		require.NoError(t, WriteRows(&buf, rows))
		assert.True(t, strings.HasPrefix(buf.String(), "filename,title,url\n"))

		loaded, err := ReadRows(&buf)
		require.NoError(t, err)
		assert.Equal(t, rows, loaded)
	})

	t.Run("missing column is an error", func(t *testing.T) {
		_, err := ReadRows(strings.NewReader("filename,title\na.jpg,Juneteenth\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"url"`)
	})
}
