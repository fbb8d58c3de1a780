package facts

import (
	"errors"
	"net/url"
	"reflect"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// MaxTextLength is the longest fact text accepted on submission
const MaxTextLength = 200

// Draft is the user-editable part of a fact, sent to the store on creation
type Draft struct {
	Text     string `json:"text" validate:"required,max=200"`
	Source   string `json:"source" validate:"required,httpurl"`
	Category string `json:"category" validate:"required"`
}

// RemainingChars returns how many characters are left before the text limit
func (d Draft) RemainingChars() int {
	return MaxTextLength - utf8.RuneCountInString(d.Text)
}

// IsZero reports whether every field of the draft is empty
func (d Draft) IsZero() bool {
	return d == Draft{}
}

// Rule identifies a single submission check
type Rule string

// Rules in the order they are reported
const (
	RuleTextRequired     Rule = "text_required"
	RuleSourceURL        Rule = "source_url"
	RuleCategoryRequired Rule = "category_required"
	RuleTextLength       Rule = "text_length"
)

var ruleOrder = map[Rule]int{
	RuleTextRequired:     0,
	RuleSourceURL:        1,
	RuleCategoryRequired: 2,
	RuleTextLength:       3,
}

var ruleMessages = map[Rule]string{
	RuleTextRequired:     "Write the fact you want to share",
	RuleSourceURL:        "The source must be a full http:// or https:// link",
	RuleCategoryRequired: "Choose a category",
	RuleTextLength:       "The fact must be 200 characters or less",
}

// Violation describes one failed rule
type Violation struct {
	Field   string `json:"field"`
	Rule    Rule   `json:"rule"`
	Message string `json:"message"`
}

// ValidationError is returned when a draft breaks one or more rules
type ValidationError struct {
	Violations []Violation `json:"violations"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.Message
	}
	return "invalid fact: " + strings.Join(msgs, "; ")
}

// Has reports whether the error contains a violation of rule
func (e *ValidationError) Has(rule Rule) bool {
	for _, v := range e.Violations {
		if v.Rule == rule {
			return true
		}
	}
	return false
}

// AsValidationError unwraps err into a *ValidationError when possible
func AsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}

// draftValidate is the shared validator instance for drafts
var draftValidate *validator.Validate

func init() {
	draftValidate = validator.New()

	// Report json names so violations line up with the wire format
	draftValidate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = draftValidate.RegisterValidation("httpurl", validateHTTPURL)
}

// validateHTTPURL accepts absolute URLs with an http or https scheme and a host
func validateHTTPURL(fl validator.FieldLevel) bool {
	return IsHTTPURL(fl.Field().String())
}

// IsHTTPURL reports whether s parses as an absolute http(s) URL
func IsHTTPURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

// ValidateDraft checks a draft against every submission rule. Registry membership of
// the category is not checked here
func ValidateDraft(d Draft) error {
	err := draftValidate.Struct(d)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	verr := &ValidationError{}
	for _, fe := range fieldErrs {
		rule := ruleFor(fe)
		verr.Violations = append(verr.Violations, Violation{
			Field:   fe.Field(),
			Rule:    rule,
			Message: ruleMessages[rule],
		})
	}

	sort.SliceStable(verr.Violations, func(i, j int) bool {
		return ruleOrder[verr.Violations[i].Rule] < ruleOrder[verr.Violations[j].Rule]
	})

	return verr
}

// ruleFor maps a validator failure to a submission rule
func ruleFor(fe validator.FieldError) Rule {
	switch fe.Field() {
	case "text":
		if fe.Tag() == "max" {
			return RuleTextLength
		}
		return RuleTextRequired
	case "source":
		return RuleSourceURL
	default:
		return RuleCategoryRequired
	}
}
