package http

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/AmirOssanloo/pkg-sits-node-service/apperr"
	"github.com/AmirOssanloo/pkg-sits-node-service/internal/app"
	"github.com/AmirOssanloo/pkg-sits-node-service/models"
	"github.com/go-chi/chi/v5"
	"github.com/xeipuuv/gojsonschema"
)

const (
	partBody   = "body"
	partQuery  = "query"
	partParams = "params"

	rootField = "(root)"
)

// RequestSchemas holds JSON Schema documents for the parts of a request.
// Empty parts are not validated.
type RequestSchemas struct {
	Body   string
	Query  string
	Params string
}

type compiledSchemas map[string]*gojsonschema.Schema

// ValidateRequest compiles schemas and returns a per-route middleware that
// rejects requests with a 400 grouping every issue by field path, such as
// "body.email". Query values are validated as strings, or arrays of strings
// when repeated.
func ValidateRequest(schemas RequestSchemas) (func(http.Handler) http.Handler, error) {
	compiled := make(compiledSchemas, 3)
	for part, doc := range map[string]string{partBody: schemas.Body, partQuery: schemas.Query, partParams: schemas.Params} {
		if doc == "" {
			continue
		}
		s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(doc))
		if err != nil {
			return nil, fmt.Errorf("%w for %s: %w", ErrInvalidSchema, part, err)
		}
		compiled[part] = s
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r, rc := ensureRequestContext(r)

			inputs := map[string]any{
				partBody:   rc.Body(),
				partQuery:  queryDocument(r.URL.Query()),
				partParams: paramsDocument(r),
			}

			details := make(map[string]any)
			for part, schema := range compiled {
				if err := validatePart(schema, part, inputs[part], details); err != nil {
					ForwardError(w, r, err)
					return
				}
			}
			if len(details) > 0 {
				ForwardError(w, r, apperr.Validation(app.MsgRequestValidationFailed, details))
				return
			}

			validated := ValidatedRequest{Body: inputs[partBody]}
			validated.Query, _ = inputs[partQuery].(map[string]any)
			validated.Params, _ = inputs[partParams].(map[string]any)
			rc.setValidated(validated)

			next.ServeHTTP(w, r)
		})
	}, nil
}

// validatePart appends one FieldIssue per schema violation to details.
func validatePart(schema *gojsonschema.Schema, part string, doc any, details map[string]any) error {
	result, err := schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return apperr.Validation(fmt.Sprintf(app.MsgRequestPartUnvalidated, part), nil).WithCause(err)
	}

	for _, re := range result.Errors() {
		key := part + "." + fieldPath(re)
		if key == part+"."+rootField {
			key = part
		}
		issues, _ := details[key].([]models.FieldIssue)
		details[key] = append(issues, models.FieldIssue{Code: re.Type(), Message: re.Description()})
	}
	return nil
}

// fieldPath points "required" errors at the missing property instead of its
// parent object.
func fieldPath(re gojsonschema.ResultError) string {
	field := re.Field()
	if re.Type() != "required" {
		return field
	}
	prop, ok := re.Details()["property"].(string)
	if !ok {
		return field
	}
	if field == rootField {
		return prop
	}
	return field + "." + prop
}

func queryDocument(values url.Values) map[string]any {
	doc := make(map[string]any, len(values))
	for key, vs := range values {
		if len(vs) == 1 {
			doc[key] = vs[0]
			continue
		}
		list := make([]any, len(vs))
		for i, v := range vs {
			list[i] = v
		}
		doc[key] = list
	}
	return doc
}

func paramsDocument(r *http.Request) map[string]any {
	doc := make(map[string]any)
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return doc
	}
	for i, key := range rctx.URLParams.Keys {
		if key == "*" {
			continue
		}
		doc[key] = rctx.URLParams.Values[i]
	}
	return doc
}
