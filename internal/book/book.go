package book

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Context is the build metadata mdBook sends alongside the book.
type Context struct {
	// Root is the book's root directory.
	Root string `json:"root"`

	// Config is the parsed book.toml as a generic mapping.
	Config map[string]interface{} `json:"config"`

	// Renderer names the renderer the book is being prepared for.
	Renderer string `json:"renderer"`

	// MDBookVersion is the version of the calling mdbook binary.
	MDBookVersion string `json:"mdbook_version"`

	raw json.RawMessage
}

// UnmarshalJSON decodes the known context fields and remembers the raw
// document so that it can be written back unchanged.
func (c *Context) UnmarshalJSON(data []byte) error {
	type plain Context

	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	*c = Context(p)
	c.raw = append(json.RawMessage(nil), data...)

	return nil
}

// MarshalJSON returns the original document when the context was decoded,
// and the known fields otherwise.
func (c Context) MarshalJSON() ([]byte, error) {
	if len(c.raw) > 0 {
		return c.raw, nil
	}

	type plain Context

	return marshal(plain(c))
}

// Book is the ordered sequence of top-level items.
type Book struct {
	Sections []Item

	// extra holds book-level fields other than sections.
	extra map[string]json.RawMessage
}

// UnmarshalJSON decodes a book object. The sections field is required.
func (b *Book) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	if fields == nil {
		return errors.New("book must be an object")
	}

	raw, ok := fields["sections"]
	if !ok {
		return errors.New("book has no sections field")
	}

	var sections []Item
	if err := json.Unmarshal(raw, &sections); err != nil {
		return fmt.Errorf("decoding sections: %w", err)
	}

	delete(fields, "sections")

	b.Sections = sections
	b.extra = fields

	return nil
}

// MarshalJSON encodes the book with its current sections and any other
// fields it was decoded with.
func (b Book) MarshalJSON() ([]byte, error) {
	fields := make(map[string]interface{}, len(b.extra)+1)
	for k, v := range b.extra {
		fields[k] = v
	}

	sections := b.Sections
	if sections == nil {
		sections = []Item{}
	}

	fields["sections"] = sections

	return marshal(fields)
}

// WithSections returns a copy of b carrying the given sections.
func (b Book) WithSections(sections []Item) Book {
	b.Sections = sections

	return b
}

// Item kinds as tagged by mdBook.
const (
	KindChapter   = "Chapter"
	KindSeparator = "Separator"
	KindPartTitle = "PartTitle"
)

// Item is a single entry of the book: a chapter or a structural marker.
// The raw encoding is kept and written back verbatim.
type Item struct {
	kind    string
	chapter *Chapter
	title   string
	raw     json.RawMessage
}

// UnmarshalJSON decodes an externally tagged item. Unknown variants are
// accepted and kept opaque.
func (it *Item) UnmarshalJSON(data []byte) error {
	*it = Item{raw: append(json.RawMessage(nil), data...)}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return errors.New("empty book item")
	}

	switch trimmed[0] {
	case '"':
		return json.Unmarshal(trimmed, &it.kind)
	case '{':
		var variant map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &variant); err != nil {
			return err
		}

		if len(variant) != 1 {
			it.kind = "unknown"

			return nil
		}

		for k, v := range variant {
			it.kind = k

			switch k {
			case KindChapter:
				var ch Chapter
				if err := json.Unmarshal(v, &ch); err != nil {
					return fmt.Errorf("decoding chapter: %w", err)
				}

				it.chapter = &ch
			case KindPartTitle:
				// A malformed title is not worth rejecting the book over.
				_ = json.Unmarshal(v, &it.title)
			}
		}

		return nil
	default:
		return fmt.Errorf("unexpected book item %s", truncate(trimmed, 32))
	}
}

// MarshalJSON writes the item exactly as it was received.
func (it Item) MarshalJSON() ([]byte, error) {
	if len(it.raw) == 0 {
		return nil, errors.New("book item has no encoding")
	}

	return it.raw, nil
}

// Kind returns the variant tag, e.g. "Chapter" or "Separator".
func (it Item) Kind() string { return it.kind }

// Chapter returns the chapter payload, or nil for non-chapter items.
func (it Item) Chapter() *Chapter { return it.chapter }

// IsChapter reports whether the item is a chapter.
func (it Item) IsChapter() bool { return it.chapter != nil }

// Title returns the text of a part title, or the chapter name.
func (it Item) Title() string {
	if it.chapter != nil {
		return it.chapter.Name
	}

	return it.title
}

// Chapter holds the chapter fields the preprocessor looks at. The rest of
// the chapter stays inside the owning Item's raw encoding.
type Chapter struct {
	Name     string
	SubItems []Item

	path          *string
	sourcePath    *string
	hasSourcePath bool
}

// UnmarshalJSON decodes the inspected chapter fields.
func (c *Chapter) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	if fields == nil {
		return errors.New("chapter must be an object")
	}

	*c = Chapter{}

	if raw, ok := fields["name"]; ok {
		if err := json.Unmarshal(raw, &c.Name); err != nil {
			return fmt.Errorf("decoding chapter name: %w", err)
		}
	}

	if raw, ok := fields["path"]; ok {
		if err := json.Unmarshal(raw, &c.path); err != nil {
			return fmt.Errorf("decoding chapter path: %w", err)
		}
	}

	if raw, ok := fields["source_path"]; ok {
		c.hasSourcePath = true

		if err := json.Unmarshal(raw, &c.sourcePath); err != nil {
			return fmt.Errorf("decoding chapter source_path: %w", err)
		}
	}

	if raw, ok := fields["sub_items"]; ok {
		if err := json.Unmarshal(raw, &c.SubItems); err != nil {
			return fmt.Errorf("decoding sub_items: %w", err)
		}
	}

	return nil
}

// SourcePath returns the path of the file the chapter was loaded from.
// mdBook sends source_path next to path; when source_path is present it
// wins, even if null. Chapters created in memory have no source path.
func (c *Chapter) SourcePath() (string, bool) {
	p := c.path
	if c.hasSourcePath {
		p = c.sourcePath
	}

	if p == nil || *p == "" {
		return "", false
	}

	return *p, true
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}

	return string(b[:n]) + "..."
}
