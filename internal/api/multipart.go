package api

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strconv"
	"strings"
	"time"
)

// TimeLayout is the absolute-time form dates are sent in.
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

type File struct {
	Name        string
	ContentType string
	Content     io.Reader
}

// EventInput is the field set of a create or update. Nil fields are left out of the payload.
type EventInput struct {
	Title       *string
	Description *string
	Location    *string
	Capacity    *int
	StartAt     *time.Time
	EndAt       *time.Time
	Tags        []string
	IsPublished *bool
	Image       *File
}

// Fields lists the scalar parts in the order they are written.
func (in EventInput) Fields() [][2]string {
	var fields [][2]string

	add := func(name string, value *string) {
		if value != nil {
			fields = append(fields, [2]string{name, *value})
		}
	}

	add("title", in.Title)
	add("description", in.Description)
	add("location", in.Location)

	if in.Capacity != nil {
		fields = append(fields, [2]string{"capacity", strconv.Itoa(*in.Capacity)})
	}

	if in.StartAt != nil {
		fields = append(fields, [2]string{"startAt", FormatTime(*in.StartAt)})
	}

	if in.EndAt != nil {
		fields = append(fields, [2]string{"endAt", FormatTime(*in.EndAt)})
	}

	for _, tag := range in.Tags {
		fields = append(fields, [2]string{"tags", tag})
	}

	if in.IsPublished != nil {
		fields = append(fields, [2]string{"isPublished", strconv.FormatBool(*in.IsPublished)})
	}

	return fields
}

func (in EventInput) encode() (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	for _, f := range in.Fields() {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", f[0], err)
		}
	}

	if in.Image != nil && in.Image.Content != nil {
		part, err := w.CreatePart(fileHeader("image", in.Image))
		if err != nil {
			return nil, "", fmt.Errorf("create image part: %w", err)
		}

		if _, err = io.Copy(part, in.Image.Content); err != nil {
			return nil, "", fmt.Errorf("write image: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart: %w", err)
	}

	return body, w.FormDataContentType(), nil
}

// FormatTime renders t in TimeLayout, always in UTC.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func fileHeader(field string, f *File) textproto.MIMEHeader {
	contentType := f.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(field), quoteEscaper.Replace(f.Name)))
	h.Set("Content-Type", contentType)

	return h
}
