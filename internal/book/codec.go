package book

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Form describes how a request was framed on the wire.
type Form int

const (
	// FormTuple is mdBook's native [context, book] array. The response is
	// the bare book.
	FormTuple Form = iota
	// FormObject is a JSON object holding the book under "book" and the
	// context under "context", under "root", or inline next to the book.
	// The response mirrors the request object.
	FormObject
)

// String implements fmt.Stringer.
func (f Form) String() string {
	switch f {
	case FormTuple:
		return "tuple"
	case FormObject:
		return "object"
	default:
		return fmt.Sprintf("Form(%d)", int(f))
	}
}

// Request is a decoded preprocessor request.
type Request struct {
	Context Context
	Book    Book

	form   Form
	fields map[string]json.RawMessage
}

// Form returns the framing the request arrived in.
func (r *Request) Form() Form { return r.form }

// WithBook returns a shallow copy of r carrying b. The context and framing
// are shared with r.
func (r *Request) WithBook(b Book) *Request {
	c := *r
	c.Book = b

	return &c
}

// DecodeError reports input that is not a well-formed request.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("unable to parse the input: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// EncodeError reports a failure to produce or write the response.
type EncodeError struct {
	Err error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("unable to write the output: %v", e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }

// Decode reads r to EOF and parses the request.
func Decode(r io.Reader) (*Request, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &DecodeError{Err: fmt.Errorf("reading input: %w", err)}
	}

	return Parse(data)
}

// Parse parses a complete request document.
func Parse(data []byte) (*Request, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, &DecodeError{Err: errors.New("empty input")}
	}

	var (
		req *Request
		err error
	)

	switch trimmed[0] {
	case '[':
		req, err = parseTuple(trimmed)
	case '{':
		req, err = parseObject(trimmed)
	default:
		err = errors.New("expected a JSON array or object")
	}

	if err != nil {
		return nil, &DecodeError{Err: err}
	}

	return req, nil
}

func parseTuple(data []byte) (*Request, error) {
	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return nil, err
	}

	if len(parts) != 2 {
		return nil, fmt.Errorf("expected [context, book], got %d elements", len(parts))
	}

	req := &Request{form: FormTuple}

	if err := json.Unmarshal(parts[0], &req.Context); err != nil {
		return nil, fmt.Errorf("decoding context: %w", err)
	}

	if err := json.Unmarshal(parts[1], &req.Book); err != nil {
		return nil, fmt.Errorf("decoding book: %w", err)
	}

	return req, nil
}

func parseObject(data []byte) (*Request, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}

	rawBook, ok := fields["book"]
	if !ok {
		return nil, errors.New("missing book")
	}

	req := &Request{form: FormObject, fields: fields}

	if err := json.Unmarshal(rawBook, &req.Book); err != nil {
		return nil, fmt.Errorf("decoding book: %w", err)
	}

	rawCtx, err := contextField(fields)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(rawCtx, &req.Context); err != nil {
		return nil, fmt.Errorf("decoding context: %w", err)
	}

	return req, nil
}

// contextField picks the context document out of an object request.
// "context" is preferred, then an object-valued "root"; otherwise the
// context fields are assumed to sit at the top level next to the book.
func contextField(fields map[string]json.RawMessage) (json.RawMessage, error) {
	if raw, ok := fields["context"]; ok {
		return raw, nil
	}

	if raw, ok := fields["root"]; ok {
		if t := bytes.TrimSpace(raw); len(t) > 0 && t[0] == '{' {
			return raw, nil
		}
	}

	inline := make(map[string]json.RawMessage, len(fields))
	for k, v := range fields {
		if k != "book" {
			inline[k] = v
		}
	}

	return marshal(inline)
}

// Encode marshals the response for req in memory and writes it to w in a
// single call, so nothing reaches w if marshaling fails.
func Encode(w io.Writer, req *Request) error {
	data, err := Marshal(req)
	if err != nil {
		return &EncodeError{Err: err}
	}

	if _, err := w.Write(data); err != nil {
		return &EncodeError{Err: err}
	}

	return nil
}

// Marshal returns the response document for req, terminated by a newline.
// HTML characters in chapter content are not escaped.
func Marshal(req *Request) ([]byte, error) {
	var v interface{} = req.Book

	if req.form == FormObject {
		v = envelope(req)
	}

	data, err := marshal(v)
	if err != nil {
		return nil, err
	}

	return append(data, '\n'), nil
}

// marshal is json.Marshal without HTML escaping.
func marshal(v interface{}) ([]byte, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}), nil
}

func envelope(req *Request) map[string]interface{} {
	fields := make(map[string]interface{}, len(req.fields)+1)
	for k, v := range req.fields {
		fields[k] = v
	}

	if len(req.fields) == 0 {
		fields["context"] = req.Context
	}

	fields["book"] = req.Book

	return fields
}
