package forms

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"campusEvents/internal/api"
)

const (
	maxUploadSize  = 10 << 20
	maxRequestSize = maxUploadSize + 1<<20
	// maxMemory is how much of a multipart body is held in memory before parts spill to disk.
	maxMemory = 1 << 20
)

// FromRequest reads an event form posted by the browser, as multipart or urlencoded data.
// An attached "image" file is buffered into the form. Bodies over maxRequestSize are refused.
func FromRequest(w http.ResponseWriter, r *http.Request) (*EventForm, error) {
	const op = "forms.FromRequest"

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestSize)

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		if err := r.ParseMultipartForm(maxMemory); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		defer func() {
			_ = r.MultipartForm.RemoveAll()
		}()
	} else if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	f := &EventForm{
		Title:       r.FormValue(FieldTitle),
		Description: r.FormValue(FieldDescription),
		Location:    r.FormValue(FieldLocation),
		Capacity:    r.FormValue(FieldCapacity),
		StartAt:     r.FormValue(FieldStartAt),
		EndAt:       r.FormValue(FieldEndAt),
		Tags:        r.FormValue(FieldTags),
		IsPublished: isChecked(r.FormValue(FieldIsPublished)),
	}

	file, header, err := r.FormFile("image")
	switch {
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	case err != nil:
		return nil, fmt.Errorf("%s: image: %w", op, err)
	default:
		defer file.Close()

		b, err := io.ReadAll(file)
		if err != nil {
			return nil, fmt.Errorf("%s: image: %w", op, err)
		}

		f.Image = &api.File{
			Name:        header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Content:     bytes.NewReader(b),
		}
	}

	return f, nil
}

func isChecked(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "on", "1", "yes":
		return true
	default:
		return false
	}
}
