package api

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
)

// FormData is a multipart/form-data request body. The client encodes it
// with its own boundary and never labels it as JSON.
type FormData struct {
	fields []formField
	files  []formFile
}

type formField struct {
	name  string
	value string
}

type formFile struct {
	field    string
	filename string
	r        io.Reader
}

// NewFormData returns an empty multipart body.
func NewFormData() *FormData {
	return &FormData{}
}

// AddField appends a plain form field.
func (f *FormData) AddField(name, value string) *FormData {
	f.fields = append(f.fields, formField{name: name, value: value})

	return f
}

// AddFile appends a file part. r is read once, when the request is sent.
func (f *FormData) AddFile(field, filename string, r io.Reader) *FormData {
	f.files = append(f.files, formFile{field: field, filename: filename, r: r})

	return f
}

// encode renders the form and returns the body with its content type.
func (f *FormData) encode() (io.Reader, string, error) {
	var buf bytes.Buffer

	w := multipart.NewWriter(&buf)

	for _, fld := range f.fields {
		if err := w.WriteField(fld.name, fld.value); err != nil {
			return nil, "", fmt.Errorf("api: writing form field %s: %w", fld.name, err)
		}
	}

	for _, file := range f.files {
		part, err := w.CreateFormFile(file.field, file.filename)
		if err != nil {
			return nil, "", fmt.Errorf("api: creating form file %s: %w", file.filename, err)
		}

		if _, err := io.Copy(part, file.r); err != nil {
			return nil, "", fmt.Errorf("api: copying form file %s: %w", file.filename, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("api: closing multipart writer: %w", err)
	}

	return &buf, w.FormDataContentType(), nil
}
