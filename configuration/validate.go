package configuration

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/docker/go-units"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
)

// ValidateOption tunes a single validation pass.
type ValidateOption func(*validateOptions)

type validateOptions struct {
	strict bool
}

// WithStrict rejects unknown top-level keys instead of carrying them in
// [Config.Extra].
func WithStrict(strict bool) ValidateOption {
	return func(o *validateOptions) {
		o.strict = strict
	}
}

// Result is the non-throwing form of [Validate].
type Result struct {
	Config *Config
	Err    *ValidationError
}

// OK reports whether validation succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

// Validate decodes tree onto the schema defaults and checks every rule. All
// violations are collected and returned together as a [*ValidationError].
func Validate(tree Tree, opts ...ValidateOption) (*Config, error) {
	o := &validateOptions{}
	for _, opt := range opts {
		opt(o)
	}

	cfg := DefaultConfig()
	verr := &ValidationError{}

	decodeTree(tree, cfg, verr)
	checkRules(cfg, verr)
	checkReferences(cfg, verr)
	if o.strict {
		checkUnknownKeys(cfg, verr)
	}

	if verr.hasIssues() {
		slices.SortStableFunc(verr.Issues, func(a, b Issue) int {
			return strings.Compare(a.Path, b.Path)
		})
		return nil, verr
	}

	return cfg, nil
}

// SafeValidate never panics and never returns a bare error.
func SafeValidate(tree Tree, opts ...ValidateOption) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Result{Err: &ValidationError{Issues: []Issue{{
				Message: fmt.Sprintf("validation aborted: %v", r),
				Code:    CodeInvalidValue,
			}}}}
		}
	}()

	cfg, err := Validate(tree, opts...)
	if err != nil {
		var verr *ValidationError
		if !errors.As(err, &verr) {
			verr = &ValidationError{Issues: []Issue{{Message: err.Error(), Code: CodeInvalidValue}}}
		}
		return Result{Err: verr}
	}

	return Result{Config: cfg}
}

// IsValid reports whether tree satisfies the schema.
func IsValid(tree Tree, opts ...ValidateOption) bool {
	return SafeValidate(tree, opts...).OK()
}

// ── decoding ──────────────────────────────────────────────────────────────────

func decodeTree(tree Tree, cfg *Config, verr *ValidationError) {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:     cfg,
		TagName:    "mapstructure",
		ZeroFields: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(durationHook, integerHook),
	})
	if err != nil {
		verr.add("", CodeInvalidValue, err.Error())
		return
	}

	// A null leaf keeps the schema default already present in cfg.
	err = decoder.Decode(map[string]any(tree.WithoutNulls()))
	if err == nil {
		return
	}

	var merr *mapstructure.Error
	if !errors.As(err, &merr) {
		verr.add("", CodeInvalidType, err.Error())
		return
	}
	for _, msg := range merr.Errors {
		path, message := splitDecodeError(msg)
		verr.add(path, CodeInvalidType, message)
	}
}

var durationType = reflect.TypeOf(time.Duration(0))

// durationHook accepts Go duration strings ("5s") or integer milliseconds.
func durationHook(from, to reflect.Type, data any) (any, error) {
	if to != durationType || from == durationType {
		return data, nil
	}

	v := reflect.ValueOf(data)
	switch from.Kind() {
	case reflect.String:
		return time.ParseDuration(v.String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return time.Duration(v.Int()) * time.Millisecond, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return time.Duration(v.Uint()) * time.Millisecond, nil
	case reflect.Float32, reflect.Float64:
		return time.Duration(v.Float() * float64(time.Millisecond)), nil
	default:
		return data, nil
	}
}

// integerHook refuses to truncate fractional numbers into integer fields.
func integerHook(from, to reflect.Type, data any) (any, error) {
	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
	default:
		return data, nil
	}

	if from.Kind() != reflect.Float32 && from.Kind() != reflect.Float64 {
		return data, nil
	}

	f := reflect.ValueOf(data).Float()
	if f != math.Trunc(f) {
		return nil, fmt.Errorf("expected integer, received %v", f)
	}

	return data, nil
}

var indexPattern = regexp.MustCompile(`\[([^\]]*)\]`)

// normalizePath turns "core.cors.origins[0]" into "core.cors.origins.0".
func normalizePath(p string) string {
	return strings.TrimPrefix(indexPattern.ReplaceAllString(p, ".$1"), ".")
}

// splitDecodeError extracts the quoted field path from a mapstructure error
// line and returns it with the remaining message.
func splitDecodeError(msg string) (string, string) {
	start := strings.IndexByte(msg, '\'')
	if start < 0 {
		return "", msg
	}
	end := strings.IndexByte(msg[start+1:], '\'')
	if end < 0 {
		return "", msg
	}
	end += start + 1

	path := normalizePath(msg[start+1 : end])
	rest := strings.TrimSpace(msg[end+1:])
	rest = strings.TrimPrefix(rest, ": ")
	rest = strings.TrimPrefix(rest, ":")

	return path, strings.TrimSpace(rest)
}

// ── rules ─────────────────────────────────────────────────────────────────────

var (
	structValidator     *validator.Validate
	structValidatorOnce sync.Once
)

func getStructValidator() *validator.Validate {
	structValidatorOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("mapstructure"), ",", 2)[0]
			if name == "" {
				return "-"
			}
			return name
		})
		// registration only fails on an empty tag or nil func
		_ = v.RegisterValidation("bytesize", func(fl validator.FieldLevel) bool {
			_, err := units.RAMInBytes(fl.Field().String())
			return err == nil
		})
		structValidator = v
	})

	return structValidator
}

var issueCodes = map[string]string{
	"required":   CodeRequired,
	"min":        CodeTooSmall,
	"gte":        CodeTooSmall,
	"gt":         CodeTooSmall,
	"max":        CodeTooBig,
	"lte":        CodeTooBig,
	"oneof":      CodeInvalidEnumValue,
	"url":        CodeInvalidURL,
	"startswith": CodeInvalidValue,
	"bytesize":   CodeInvalidValue,
}

// fieldMessages overrides the generic message for a path and tag.
var fieldMessages = map[string]string{
	"name/required": "Service name is required",
}

func checkRules(cfg *Config, verr *ValidationError) {
	err := getStructValidator().Struct(cfg)
	if err == nil {
		return
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		verr.add("", CodeInvalidValue, err.Error())
		return
	}

	decoded := make(map[string]struct{}, len(verr.Issues))
	for _, issue := range verr.Issues {
		decoded[issue.Path] = struct{}{}
	}

	for _, fe := range fieldErrs {
		path := fe.Namespace()
		if i := strings.IndexByte(path, '.'); i >= 0 {
			path = path[i+1:]
		}
		path = normalizePath(path)

		// a value that failed to decode already has its issue
		if _, ok := decoded[path]; ok {
			continue
		}

		code, ok := issueCodes[fe.Tag()]
		if !ok {
			code = CodeInvalidValue
		}
		verr.add(path, code, ruleMessage(path, fe))
	}
}

func ruleMessage(path string, fe validator.FieldError) string {
	if msg, ok := fieldMessages[path+"/"+fe.Tag()]; ok {
		return msg
	}

	switch fe.Tag() {
	case "required":
		return "Required"
	case "min", "gte":
		return fmt.Sprintf("Must be greater than or equal to %s", fe.Param())
	case "gt":
		return fmt.Sprintf("Must be greater than %s", fe.Param())
	case "max", "lte":
		return fmt.Sprintf("Must be less than or equal to %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("Invalid enum value. Expected %s, received '%v'",
			strings.Join(strings.Fields(fe.Param()), " | "), fe.Value())
	case "url":
		return "Invalid url"
	case "startswith":
		return fmt.Sprintf("Must start with %q", fe.Param())
	case "bytesize":
		return fmt.Sprintf("Invalid size %q", fe.Value())
	default:
		return fmt.Sprintf("Failed on the '%s' rule", fe.Tag())
	}
}

func checkReferences(cfg *Config, verr *ValidationError) {
	if auth := cfg.Core.Auth; auth != nil {
		for i, p := range auth.Paths {
			if p.Strategy == "" {
				continue
			}
			if _, ok := auth.Strategies[p.Strategy]; !ok {
				verr.add(fmt.Sprintf("core.auth.paths.%d.strategy", i), CodeInvalidReference,
					fmt.Sprintf("Unknown strategy '%s'", p.Strategy))
			}
		}
	}

	if cfg.Core.HTTPS.Enabled {
		for _, key := range []string{"certFile", "keyFile"} {
			if s, _ := cfg.Core.HTTPS.Options[key].(string); s == "" {
				verr.add("core.https.options."+key, CodeRequired, "Required when https is enabled")
			}
		}
	}
}

func checkUnknownKeys(cfg *Config, verr *ValidationError) {
	keys := make([]string, 0, len(cfg.Extra))
	for k := range cfg.Extra {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		verr.add(k, CodeUnrecognizedKeys, fmt.Sprintf("Unrecognized key '%s'", k))
	}
}
