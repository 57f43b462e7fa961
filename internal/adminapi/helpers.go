package adminapi

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Msg is the body of every non-entity response
type Msg struct {
	Message string `json:"message"`
}

// ValidationFailed is the 422 body, errors are keyed by field
type ValidationFailed struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

func fail(c echo.Context, status int, message string) error {
	return c.JSON(status, Msg{Message: message})
}

func serverError(c echo.Context, action string, err error) error {
	zap.L().Error(action, zap.String("uri", c.Request().RequestURI), zap.Error(err))
	return fail(c, http.StatusInternalServerError, "Server Error")
}

// fieldErrors collects validation messages in rule order
type fieldErrors struct {
	order  []string
	fields map[string][]string
}

func newFieldErrors() *fieldErrors {
	return &fieldErrors{fields: make(map[string][]string)}
}

func (fe *fieldErrors) add(field, message string) {
	if _, ok := fe.fields[field]; !ok {
		fe.order = append(fe.order, field)
	}
	fe.fields[field] = append(fe.fields[field], message)
}

func (fe *fieldErrors) empty() bool {
	return len(fe.order) == 0
}

// summary is the first message plus a count of the remaining ones
func (fe *fieldErrors) summary() string {
	total := 0
	for _, msgs := range fe.fields {
		total += len(msgs)
	}
	first := fe.fields[fe.order[0]][0]
	switch rest := total - 1; {
	case rest == 1:
		return first + " (and 1 more error)"
	case rest > 1:
		return fmt.Sprintf("%s (and %d more errors)", first, rest)
	}
	return first
}

func validationFailed(c echo.Context, fe *fieldErrors) error {
	return c.JSON(http.StatusUnprocessableEntity, ValidationFailed{
		Message: fe.summary(),
		Errors:  fe.fields,
	})
}

// parseIDParam parses a positive integer path parameter
func parseIDParam(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, errors.Errorf("invalid id %d", id)
	}
	return id, nil
}

var payloadJSON = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	UseNumber:              true,
}.Froze()

// readPayload decodes a JSON object or a form body into a generic map.
// JSON numbers stay json.Number so integer checks see the literal.
// An empty body yields an empty map and a non-object JSON document
// yields an empty map as well.
func readPayload(c echo.Context) (map[string]interface{}, error) {
	req := c.Request()
	ctype := req.Header.Get(echo.HeaderContentType)

	if strings.HasPrefix(ctype, echo.MIMEApplicationForm) || strings.HasPrefix(ctype, echo.MIMEMultipartForm) {
		values, err := formValues(c)
		if err != nil {
			return nil, err
		}
		return formPayload(values), nil
	}

	if req.Body == nil {
		return map[string]interface{}{}, nil
	}
	body, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return map[string]interface{}{}, nil
	}

	var doc interface{}
	if err := payloadJSON.Unmarshal(body, &doc); err != nil {
		return nil, err
	}
	raw, ok := doc.(map[string]interface{})
	if !ok {
		return map[string]interface{}{}, nil
	}
	return raw, nil
}

// formValues reads form fields. net/http parses url-encoded bodies only
// for POST, PUT and PATCH, so other methods read the body here.
func formValues(c echo.Context) (url.Values, error) {
	req := c.Request()
	switch req.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return c.FormParams()
	}
	if !strings.HasPrefix(req.Header.Get(echo.HeaderContentType), echo.MIMEApplicationForm) || req.Body == nil {
		return c.FormParams()
	}

	body, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read form body")
	}
	values, err := url.ParseQuery(string(body))
	if err != nil {
		return nil, errors.Wrap(err, "parse form body")
	}
	return values, nil
}

// formPayload turns form values into the payload map. Keys ending in
// "[]" or repeated keys become arrays.
func formPayload(values url.Values) map[string]interface{} {
	raw := make(map[string]interface{}, len(values))
	for key, vals := range values {
		if strings.HasSuffix(key, "[]") || len(vals) > 1 {
			items := make([]interface{}, 0, len(vals))
			for _, v := range vals {
				items = append(items, v)
			}
			raw[strings.TrimSuffix(key, "[]")] = items
			continue
		}
		raw[key] = vals[0]
	}
	return raw
}
