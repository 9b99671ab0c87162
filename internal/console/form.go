package console

import (
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/odyssey-erp/odyssey-console/internal/lookup"
)

// Input types understood by the form template.
const (
	InputText     = "text"
	InputNumber   = "number"
	InputEmail    = "email"
	InputDate     = "date"
	InputTextarea = "textarea"
	InputSelect   = "select"
	InputStatus   = "status"
)

// Cascade kinds. A select with a cascade fills the fields that name it in Fill.
const (
	CascadeCity    = "city"
	CascadeChannel = "channel"
)

// DateLayout is the wire and form layout of dates.
const DateLayout = "2006-01-02"

// Field describes one form input. Name matches the record's json name.
type Field struct {
	Name  string
	Label string
	Type  string
	// Options names a registered option source; Static lists fixed choices.
	Options  string
	Static   []lookup.Option
	Required bool
	// ReadOnly fields are derived and never typed by the user.
	ReadOnly bool
	// Immutable fields can be set on create only.
	Immutable bool
	Cascade   string
	Fill      string
	// SKU marks the base SKU input feeding the channel cascade.
	SKU bool
}

// FieldView is a Field bound to a value for rendering.
type FieldView struct {
	Field
	Value    string
	Error    string
	Locked   bool
	Choices  []lookup.Option
	Statuses []string
}

// Form reads typed values from submitted form data.
type Form struct {
	values url.Values
}

// NewForm wraps submitted values.
func NewForm(values url.Values) Form {
	return Form{values: values}
}

// String returns the trimmed value of name.
func (f Form) String(name string) string {
	return strings.TrimSpace(f.values.Get(name))
}

// Int returns the value of name, or zero when it is blank or malformed.
func (f Form) Int(name string) int {
	n, _ := strconv.Atoi(f.String(name))
	return n
}

// Decimal returns the value of name, or zero when it is blank or malformed.
func (f Form) Decimal(name string) decimal.Decimal {
	raw := strings.ReplaceAll(f.String(name), ",", "")
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Date returns the value of name as a date string, or "" when malformed.
func (f Form) Date(name string) string {
	raw := f.String(name)
	if _, err := time.Parse(DateLayout, raw); err != nil {
		return ""
	}
	return raw
}

// Status returns the submitted status, defaulting to Active.
func (f Form) Status(name string) string {
	if f.String(name) == "Non-Active" {
		return "Non-Active"
	}
	return "Active"
}

// Choices builds fixed select choices whose value equals their label.
func Choices(values ...string) []lookup.Option {
	out := make([]lookup.Option, len(values))
	for i, v := range values {
		out[i] = lookup.Option{Value: v, Label: v}
	}
	return out
}

// Itoa renders zero as "".
func Itoa(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

// Dec renders a decimal for a form input.
func Dec(d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}
	return d.String()
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// fieldErrors maps validation failures onto form field names.
func fieldErrors(v *validator.Validate, item any, fields []Field) map[string]string {
	errs := make(map[string]string)
	err := v.Struct(item)
	if err == nil {
		return errs
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		errs["general"] = err.Error()
		return errs
	}
	labels := make(map[string]string, len(fields))
	for _, f := range fields {
		labels[f.Name] = f.Label
	}
	for _, fe := range verrs {
		label := labels[fe.Field()]
		if label == "" {
			label = fe.Field()
		}
		errs[fe.Field()] = describe(label, fe)
	}
	return errs
}

func describe(label string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "email":
		return label + " must be a valid email address"
	case "max":
		return label + " must be at most " + fe.Param() + " characters"
	case "min":
		return label + " must be at least " + fe.Param()
	case "gt":
		return label + " must be greater than " + fe.Param()
	case "gte":
		return label + " must be at least " + fe.Param()
	case "oneof":
		return label + " must be one of " + fe.Param()
	case "datetime":
		return label + " must be a valid date"
	}
	return label + " is invalid"
}
