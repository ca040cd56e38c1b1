package post

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	crossvalidator "github.com/thoreinstein/crosspost/internal/validator"
)

// MaxDevToTags is the number of tags Dev.to accepts per article.
const MaxDevToTags = 4

// devtoTagRegex matches tags Dev.to accepts without rewriting.
var devtoTagRegex = regexp.MustCompile(`^[a-z0-9]+$`)

// Validator checks posts for problems that would make a platform reject them.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a Validator. Field names in reported issues use the
// frontmatter keys.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v}
}

// Validate returns every issue found in p. Struct rule violations are
// errors; platform rewrites and skipped posts are reported as warnings
// and info.
func (v *Validator) Validate(p *Post) *crossvalidator.Result {
	result := &crossvalidator.Result{Path: p.Path}

	if err := v.validate.Struct(p); err != nil {
		var fieldErrs validator.ValidationErrors
		if ok := asValidationErrors(err, &fieldErrs); !ok {
			result.AddError("", err.Error(), nil)
			return result
		}
		for _, fe := range fieldErrs {
			result.AddError(fieldName(fe), ruleMessage(fe), fe.Value())
		}
	}

	if !p.Eligible() {
		result.AddInfo("crosspost", "post is not eligible: crosspost and published are both false", nil)
	}

	if len(p.Tags) > MaxDevToTags {
		result.AddWarning("tags", "Dev.to accepts at most 4 tags; extra tags are dropped", len(p.Tags))
	}
	for _, tag := range p.TrimmedTags() {
		if !devtoTagRegex.MatchString(tag) {
			result.AddWarning("tags", "Dev.to tags are lowercase alphanumeric; tag will be rewritten", tag)
		}
	}

	if p.Description == "" && strings.TrimSpace(p.Body) == "" {
		result.AddWarning("description", "no description and empty body", nil)
	}

	return result
}

func asValidationErrors(err error, target *validator.ValidationErrors) bool {
	ve, ok := err.(validator.ValidationErrors) //nolint:errorlint // validator returns the concrete type
	if ok {
		*target = ve
	}
	return ok
}

// fieldName returns the frontmatter key, keeping the slice index for tags.
func fieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return fe.Field()
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "url":
		return "must be an absolute URL"
	default:
		return "failed " + fe.Tag() + " validation"
	}
}
