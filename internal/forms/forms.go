// Package forms implements the create and edit event forms: raw input, client-side
// validation and the conversions between form strings and API values.
package forms

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"campusEvents/internal/api"
	"campusEvents/internal/models"

	"github.com/go-playground/validator/v10"
)

const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldLocation    = "location"
	FieldCapacity    = "capacity"
	FieldStartAt     = "startAt"
	FieldEndAt       = "endAt"
	FieldTags        = "tags"
	FieldIsPublished = "isPublished"
)

// MaxCapacity is the largest capacity a form accepts.
const MaxCapacity = math.MaxInt32

// InputLayout is the local date-time format of the form's date inputs.
const InputLayout = "2006-01-02T15:04"

const (
	msgTitleRequired       = "Title is required"
	msgDescriptionRequired = "Description is required"
	msgStartRequired       = "Start date is required"
	msgStartInPast         = "Start date must be in the future"
	msgEndBeforeStart      = "End date must be after start date"
	msgCapacity            = "Capacity must be a positive number"
	msgInvalidDate         = "Invalid date"
)

type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

// Errors maps a field name to the message shown next to it.
type Errors map[string]string

func (e Errors) Clear(field string) {
	delete(e, field)
}

type EventForm struct {
	Title       string    `json:"title" validate:"notblank"`
	Description string    `json:"description" validate:"notblank"`
	Location    string    `json:"location"`
	Capacity    string    `json:"capacity"`
	StartAt     string    `json:"startAt" validate:"notblank"`
	EndAt       string    `json:"endAt"`
	Tags        string    `json:"tags"`
	IsPublished bool      `json:"isPublished"`
	Image       *api.File `json:"-" validate:"-"`
	Errors      Errors    `json:"errors,omitempty" validate:"-"`
}

// New returns an empty form; events are published unless unticked.
func New() *EventForm {
	return &EventForm{IsPublished: true}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	return v
}

var requiredMessages = map[string]string{
	FieldTitle:       msgTitleRequired,
	FieldDescription: msgDescriptionRequired,
	FieldStartAt:     msgStartRequired,
}

// Set changes one field and drops that field's error, leaving the others in place.
func (f *EventForm) Set(field, value string) error {
	switch field {
	case FieldTitle:
		f.Title = value
	case FieldDescription:
		f.Description = value
	case FieldLocation:
		f.Location = value
	case FieldCapacity:
		f.Capacity = value
	case FieldStartAt:
		f.StartAt = value
	case FieldEndAt:
		f.EndAt = value
	case FieldTags:
		f.Tags = value
	case FieldIsPublished:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("field %s: %w", field, err)
		}
		f.IsPublished = b
	default:
		return fmt.Errorf("unknown field %q", field)
	}

	if f.Errors != nil {
		f.Errors.Clear(field)
	}

	return nil
}

// Validate runs the pre-submit checks and records the result on the form. Any error
// blocks submission. On create the start must lie strictly after now.
func (f *EventForm) Validate(now time.Time, mode Mode, loc *time.Location) Errors {
	errs := Errors{}

	if err := validate.Struct(f); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				errs[fe.Field()] = requiredMessages[fe.Field()]
			}
		}
	}

	var (
		start   time.Time
		startOK bool
	)

	if _, failed := errs[FieldStartAt]; !failed {
		t, err := ParseInput(f.StartAt, loc)
		if err != nil {
			errs[FieldStartAt] = msgInvalidDate
		} else {
			start, startOK = t, true

			if mode == ModeCreate && !t.After(now) {
				errs[FieldStartAt] = msgStartInPast
			}
		}
	}

	if strings.TrimSpace(f.EndAt) != "" {
		end, err := ParseInput(f.EndAt, loc)
		switch {
		case err != nil:
			errs[FieldEndAt] = msgInvalidDate
		case startOK && !end.After(start):
			errs[FieldEndAt] = msgEndBeforeStart
		}
	}

	if c := strings.TrimSpace(f.Capacity); c != "" {
		if _, err := parseCapacity(c); err != nil {
			errs[FieldCapacity] = msgCapacity
		}
	}

	f.Errors = errs

	return errs
}

// ToInput converts a validated form into the API field set. Blank optional fields are
// left nil so they are not sent at all.
func (f *EventForm) ToInput(loc *time.Location) (api.EventInput, error) {
	title, description := f.Title, f.Description
	published := f.IsPublished

	in := api.EventInput{
		Title:       &title,
		Description: &description,
		IsPublished: &published,
		Tags:        SplitTags(f.Tags),
		Image:       f.Image,
	}

	if location := strings.TrimSpace(f.Location); location != "" {
		in.Location = &location
	}

	if c := strings.TrimSpace(f.Capacity); c != "" {
		capacity, err := parseCapacity(c)
		if err != nil {
			return api.EventInput{}, fmt.Errorf("capacity: %w", err)
		}
		in.Capacity = &capacity
	}

	start, err := ParseInput(f.StartAt, loc)
	if err != nil {
		return api.EventInput{}, fmt.Errorf("startAt: %w", err)
	}
	in.StartAt = &start

	if strings.TrimSpace(f.EndAt) != "" {
		end, err := ParseInput(f.EndAt, loc)
		if err != nil {
			return api.EventInput{}, fmt.Errorf("endAt: %w", err)
		}
		in.EndAt = &end
	}

	return in, nil
}

// parseCapacity accepts a finite number between 1 and MaxCapacity. Fractions are truncated.
func parseCapacity(s string) (int, error) {
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}

	if math.IsNaN(n) || math.IsInf(n, 0) || n < 1 || n > MaxCapacity {
		return 0, fmt.Errorf("capacity %q out of range", s)
	}

	return int(n), nil
}

// FromEvent pre-populates an edit form from a stored event.
func FromEvent(e *models.Event, loc *time.Location) *EventForm {
	f := &EventForm{
		Title:       e.Title,
		Description: e.Description,
		Location:    e.Location,
		Tags:        JoinTags(e.Tags),
		IsPublished: e.IsPublished,
	}

	if e.Capacity != nil {
		f.Capacity = strconv.Itoa(*e.Capacity)
	}

	if !e.StartAt.IsZero() {
		f.StartAt = FormatInput(e.StartAt, loc)
	}

	if e.EndAt != nil && !e.EndAt.IsZero() {
		f.EndAt = FormatInput(*e.EndAt, loc)
	}

	return f
}

// SplitTags turns "a, b ,c" into [a b c]: split on commas, trim, drop empties.
func SplitTags(s string) []string {
	var tags []string

	for _, part := range strings.Split(s, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}

	return tags
}

func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}

func FormatInput(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(InputLayout)
}

// ParseInput reads a form date in InputLayout within loc. Absolute RFC 3339 values are
// accepted too.
func ParseInput(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)

	if t, err := time.ParseInLocation(InputLayout, s, loc); err == nil {
		return t, nil
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}

	return t, nil
}
