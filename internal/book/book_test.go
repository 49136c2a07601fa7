package book

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeItems(t *testing.T, doc string) []Item {
	t.Helper()

	var items []Item
	require.NoError(t, json.Unmarshal([]byte(doc), &items))

	return items
}

// ---------------------------------------------------------------------------
// Items
// ---------------------------------------------------------------------------

func TestItem_Variants(t *testing.T) {
	items := decodeItems(t, `[
		{"Chapter": {"name": "Intro", "content": "# Intro", "number": [1], "sub_items": [], "path": "intro.md", "source_path": "intro.md", "parent_names": []}},
		"Separator",
		{"PartTitle": "Reference"},
		{"Appendix": {"x": 1}}
	]`)
	require.Len(t, items, 4)

	assert.Equal(t, KindChapter, items[0].Kind())
	assert.True(t, items[0].IsChapter())
	assert.Equal(t, "Intro", items[0].Title())

	assert.Equal(t, KindSeparator, items[1].Kind())
	assert.False(t, items[1].IsChapter())
	assert.Nil(t, items[1].Chapter())

	assert.Equal(t, KindPartTitle, items[2].Kind())
	assert.Equal(t, "Reference", items[2].Title())

	assert.Equal(t, "Appendix", items[3].Kind())
	assert.False(t, items[3].IsChapter())
}

func TestItem_RoundTripsVerbatim(t *testing.T) {
	raw := `{"Chapter":{"name":"Draft","content":"über\n","number":null,"sub_items":[{"Chapter":{"name":"Nested","path":"_n.md"}}],"path":"_draft.md","extra":{"k":[1,2]}}}`

	var it Item
	require.NoError(t, json.Unmarshal([]byte(raw), &it))

	out, err := json.Marshal(it)
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(out))
}

func TestItem_Malformed(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"number", `42`},
		{"chapter not object", `{"Chapter": "x"}`},
		{"chapter null", `{"Chapter": null}`},
		{"bad path type", `{"Chapter": {"path": 7}}`},
		{"bad sub items", `{"Chapter": {"sub_items": {}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var it Item
			assert.Error(t, json.Unmarshal([]byte(tt.doc), &it))
		})
	}
}

func TestItem_MarshalZeroValue(t *testing.T) {
	_, err := json.Marshal(Item{})
	assert.Error(t, err)
}

// ---------------------------------------------------------------------------
// Chapter source paths
// ---------------------------------------------------------------------------

func TestChapter_SourcePath(t *testing.T) {
	tests := []struct {
		name   string
		doc    string
		want   string
		wantOK bool
	}{
		{"path only", `{"name": "a", "path": "a.md"}`, "a.md", true},
		{"source path wins", `{"path": "a.md", "source_path": "src/_a.md"}`, "src/_a.md", true},
		{"null source path wins", `{"path": "a.md", "source_path": null}`, "", false},
		{"null path", `{"path": null}`, "", false},
		{"no path", `{"name": "virtual"}`, "", false},
		{"empty path", `{"path": ""}`, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ch Chapter
			require.NoError(t, json.Unmarshal([]byte(tt.doc), &ch))

			got, ok := ch.SourcePath()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestChapter_SubItems(t *testing.T) {
	var ch Chapter
	require.NoError(t, json.Unmarshal([]byte(`{"name": "Parent", "sub_items": [
		{"Chapter": {"name": "Child", "path": "_child.md"}},
		"Separator"
	]}`), &ch))

	require.Len(t, ch.SubItems, 2)
	assert.Equal(t, "Child", ch.SubItems[0].Title())
	assert.Equal(t, KindSeparator, ch.SubItems[1].Kind())
}

// ---------------------------------------------------------------------------
// Book
// ---------------------------------------------------------------------------

func TestBook_KeepsExtraFields(t *testing.T) {
	var b Book
	require.NoError(t, json.Unmarshal([]byte(`{"sections": ["Separator"], "__non_exhaustive": null}`), &b))

	out, err := json.Marshal(b.WithSections(nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"sections": [], "__non_exhaustive": null}`, string(out))
}

func TestBook_RequiresSections(t *testing.T) {
	var b Book
	assert.ErrorContains(t, json.Unmarshal([]byte(`{"items": []}`), &b), "no sections")
	assert.Error(t, json.Unmarshal([]byte(`null`), &b))
	assert.Error(t, json.Unmarshal([]byte(`[]`), &b))
}

func TestContext_MarshalWithoutDecode(t *testing.T) {
	ctx := Context{Root: "/book", MDBookVersion: "0.4.40", Renderer: "html"}

	out, err := json.Marshal(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"root": "/book", "config": null, "renderer": "html", "mdbook_version": "0.4.40"}`, string(out))
}
