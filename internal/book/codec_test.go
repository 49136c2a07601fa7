package book

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testContext = `{"root": "/src/book", "config": {"book": {"title": "Guide"}, "preprocessor": {"private-chapters": {"export-private": true}}}, "renderer": "html", "mdbook_version": "0.4.40"}`

const testBook = `{"sections": [
	{"Chapter": {"name": "Intro", "content": "<b>hi</b> & bye", "number": [1], "sub_items": [], "path": "intro.md", "source_path": "intro.md", "parent_names": []}},
	{"Chapter": {"name": "Draft", "content": "", "number": [2], "sub_items": [], "path": "_draft.md", "source_path": "_draft.md", "parent_names": []}},
	"Separator"
], "__non_exhaustive": null}`

// ---------------------------------------------------------------------------
// Decode
// ---------------------------------------------------------------------------

func TestDecode_Tuple(t *testing.T) {
	req, err := Decode(strings.NewReader("[" + testContext + "," + testBook + "]"))
	require.NoError(t, err)

	assert.Equal(t, FormTuple, req.Form())
	assert.Equal(t, "0.4.40", req.Context.MDBookVersion)
	assert.Equal(t, "html", req.Context.Renderer)
	assert.Equal(t, "/src/book", req.Context.Root)
	assert.Contains(t, req.Context.Config, "preprocessor")
	require.Len(t, req.Book.Sections, 3)
	assert.Equal(t, "Draft", req.Book.Sections[1].Title())
}

func TestDecode_ObjectForms(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"context key", `{"context": ` + testContext + `, "book": ` + testBook + `}`},
		{"root object", `{"root": ` + testContext + `, "book": ` + testBook + `}`},
		{"inline context", `{"root": "/src/book", "config": {}, "renderer": "html", "mdbook_version": "0.4.40", "book": ` + testBook + `}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := Parse([]byte(tt.doc))
			require.NoError(t, err)

			assert.Equal(t, FormObject, req.Form())
			assert.Equal(t, "0.4.40", req.Context.MDBookVersion)
			assert.Equal(t, "/src/book", req.Context.Root)
			assert.Len(t, req.Book.Sections, 3)
		})
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantMsg string
	}{
		{"empty", "", "empty input"},
		{"whitespace", "  \n", "empty input"},
		{"scalar", `"hello"`, "array or object"},
		{"truncated", `[` + testContext + `, {"sections": [`, "unexpected end"},
		{"one element tuple", `[` + testContext + `]`, "got 1 elements"},
		{"missing book", `{"context": ` + testContext + `}`, "missing book"},
		{"book without sections", `[` + testContext + `, {}]`, "no sections"},
		{"bad context", `[42, ` + testBook + `]`, "decoding context"},
		{"bad item", `[` + testContext + `, {"sections": [3]}]`, "decoding sections"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)

			var decodeErr *DecodeError
			require.ErrorAs(t, err, &decodeErr)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("stdin closed") }

func TestDecode_ReadError(t *testing.T) {
	_, err := Decode(failingReader{})

	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Contains(t, err.Error(), "stdin closed")
}

// ---------------------------------------------------------------------------
// Encode
// ---------------------------------------------------------------------------

func TestEncode_TupleWritesBookOnly(t *testing.T) {
	req, err := Parse([]byte("[" + testContext + "," + testBook + "]"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, req))

	assert.JSONEq(t, testBook, buf.String())
	assert.Contains(t, buf.String(), "<b>hi</b> & bye", "HTML must not be escaped")
	assert.True(t, strings.HasSuffix(buf.String(), "\n"))
}

func TestEncode_ObjectMirrorsRequest(t *testing.T) {
	doc := `{"context": ` + testContext + `, "book": ` + testBook + `, "extra": [1, 2]}`

	req, err := Parse([]byte(doc))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, req))
	assert.JSONEq(t, doc, buf.String())
}

func TestEncode_InlineContextPreserved(t *testing.T) {
	doc := `{"root": "/src/book", "config": {"x": {"y": [true]}}, "renderer": "pdf", "mdbook_version": "0.4.40", "book": ` + testBook + `}`

	req, err := Parse([]byte(doc))
	require.NoError(t, err)

	out, err := Marshal(req)
	require.NoError(t, err)
	assert.JSONEq(t, doc, string(out))
}

func TestEncode_FilteredSections(t *testing.T) {
	req, err := Parse([]byte(`{"context": ` + testContext + `, "book": ` + testBook + `}`))
	require.NoError(t, err)

	s := req.Book.Sections
	filtered := req.WithBook(req.Book.WithSections([]Item{s[0], s[2]}))

	out, err := Marshal(filtered)
	require.NoError(t, err)

	var got struct {
		Context json.RawMessage `json:"context"`
		Book    struct {
			Sections []json.RawMessage `json:"sections"`
		} `json:"book"`
	}
	require.NoError(t, json.Unmarshal(out, &got))

	assert.JSONEq(t, testContext, string(got.Context))
	require.Len(t, got.Book.Sections, 2)
	assert.Contains(t, string(got.Book.Sections[0]), `"intro.md"`)
	assert.JSONEq(t, `"Separator"`, string(got.Book.Sections[1]))

	// The original request is untouched.
	assert.Len(t, req.Book.Sections, 3)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestEncode_WriteError(t *testing.T) {
	req, err := Parse([]byte("[" + testContext + "," + testBook + "]"))
	require.NoError(t, err)

	err = Encode(failingWriter{}, req)

	var encodeErr *EncodeError
	require.ErrorAs(t, err, &encodeErr)
	assert.Contains(t, err.Error(), "broken pipe")
}

func TestEncode_MarshalErrorWritesNothing(t *testing.T) {
	req := &Request{Book: Book{Sections: []Item{{}}}}

	var buf bytes.Buffer
	err := Encode(&buf, req)

	var encodeErr *EncodeError
	require.ErrorAs(t, err, &encodeErr)
	assert.Zero(t, buf.Len())
}

func TestForm_String(t *testing.T) {
	assert.Equal(t, "tuple", FormTuple.String())
	assert.Equal(t, "object", FormObject.String())
	assert.Equal(t, "Form(7)", Form(7).String())
}
