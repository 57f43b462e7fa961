package adminapi

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/talkincode/channelhub/internal/domain"
	"github.com/talkincode/channelhub/internal/repository"
	"github.com/talkincode/channelhub/internal/webserver"
)

const (
	msgNotFound        = "Item not found"
	msgDeleted         = "Item deleted successfully"
	msgBulkDeleted     = "Items deleted successfully"
	msgNoUpdateFields  = "No valid fields provided for update"
	msgInvalidIDs      = "Invalid input. Provide an array of IDs."
	msgNoMatchingItems = "No matching items found."
	msgMalformedBody   = "Malformed request body."
)

// channelRule is the validation applied to one channel field
type channelRule struct {
	field string
	tag   string
}

var channelRules = []channelRule{
	{field: domain.ColumnName, tag: "required,max=255"},
	{field: domain.ColumnNumber, tag: "required,integer"},
}

// BulkDeleteResult is the body of a successful delete-many
type BulkDeleteResult struct {
	Message      string `json:"message"`
	DeletedCount int64  `json:"deletedCount"`
}

// registerChannelRoutes registers channel CRUD routes
func registerChannelRoutes(srv *webserver.AdminServer) {
	srv.ApiGET("/channels", listChannels)
	srv.ApiPOST("/channels", createChannel)
	srv.ApiDELETE("/channels", deleteChannels)
	srv.ApiGET("/channels/:id", showChannel)
	srv.ApiPUT("/channels/:id", updateChannel)
	srv.ApiPATCH("/channels/:id", updateChannel)
	srv.ApiDELETE("/channels/:id", deleteChannel)
}

func listChannels(c echo.Context) error {
	channels, err := GetChannelRepo(c).List(c.Request().Context())
	if err != nil {
		return serverError(c, "failed to list channels", err)
	}
	return c.JSON(http.StatusOK, channels)
}

func createChannel(c echo.Context) error {
	raw, err := readPayload(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, msgMalformedBody)
	}

	upd, fe := parseChannelFields(c, raw, false)
	if !fe.empty() {
		return validationFailed(c, fe)
	}

	ch := domain.Channel{
		Name:   *upd.Name,
		Number: *upd.Number,
	}
	if err := GetChannelRepo(c).Create(c.Request().Context(), &ch); err != nil {
		return serverError(c, "failed to create channel", err)
	}

	zap.L().Info("channel created", zap.Int64("id", ch.ID), zap.String("name", ch.Name))
	return c.JSON(http.StatusCreated, ch)
}

func showChannel(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusNotFound, msgNotFound)
	}

	ch, err := GetChannelRepo(c).GetByID(c.Request().Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		return fail(c, http.StatusNotFound, msgNotFound)
	} else if err != nil {
		return serverError(c, "failed to query channel", err)
	}
	return c.JSON(http.StatusOK, ch)
}

func updateChannel(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusNotFound, msgNotFound)
	}

	repo := GetChannelRepo(c)
	ctx := c.Request().Context()
	if _, err := repo.GetByID(ctx, id); errors.Is(err, repository.ErrNotFound) {
		return fail(c, http.StatusNotFound, msgNotFound)
	} else if err != nil {
		return serverError(c, "failed to query channel", err)
	}

	raw, err := readPayload(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, msgMalformedBody)
	}
	if !hasChannelField(raw) {
		return fail(c, http.StatusBadRequest, msgNoUpdateFields)
	}

	upd, fe := parseChannelFields(c, raw, true)
	if !fe.empty() {
		return validationFailed(c, fe)
	}

	ch, err := repo.Update(ctx, id, upd)
	if errors.Is(err, repository.ErrNotFound) {
		return fail(c, http.StatusNotFound, msgNotFound)
	} else if err != nil {
		return serverError(c, "failed to update channel", err)
	}

	zap.L().Info("channel updated", zap.Int64("id", ch.ID))
	return c.JSON(http.StatusOK, ch)
}

func deleteChannel(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusNotFound, msgNotFound)
	}

	err = GetChannelRepo(c).Delete(c.Request().Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		return fail(c, http.StatusNotFound, msgNotFound)
	} else if err != nil {
		return serverError(c, "failed to delete channel", err)
	}

	zap.L().Info("channel deleted", zap.Int64("id", id))
	return c.JSON(http.StatusOK, Msg{Message: msgDeleted})
}

func deleteChannels(c echo.Context) error {
	raw, err := readPayload(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, msgInvalidIDs)
	}
	ids, ok := parseIDList(raw["ids"])
	if !ok {
		return fail(c, http.StatusBadRequest, msgInvalidIDs)
	}

	deleted, err := GetChannelRepo(c).DeleteMany(c.Request().Context(), ids)
	if err != nil {
		return serverError(c, "failed to delete channels", err)
	}
	if deleted == 0 {
		return fail(c, http.StatusNotFound, msgNoMatchingItems)
	}

	zap.L().Info("channels deleted", zap.Int("requested", len(ids)), zap.Int64("deleted", deleted))
	return c.JSON(http.StatusOK, BulkDeleteResult{Message: msgBulkDeleted, DeletedCount: deleted})
}

func hasChannelField(raw map[string]interface{}) bool {
	for _, rule := range channelRules {
		if _, ok := raw[rule.field]; ok {
			return true
		}
	}
	return false
}

// parseChannelFields validates the channel fields of raw. With partial set,
// absent fields are skipped, otherwise they fail the required rule.
func parseChannelFields(c echo.Context, raw map[string]interface{}, partial bool) (repository.ChannelUpdate, *fieldErrors) {
	var upd repository.ChannelUpdate
	fe := newFieldErrors()

	for _, rule := range channelRules {
		val, present := raw[rule.field]
		if !present && partial {
			continue
		}

		var text string
		switch rule.field {
		case domain.ColumnName:
			s, ok := val.(string)
			if val != nil && !ok {
				fe.add(rule.field, fmt.Sprintf("The %s field must be a string.", rule.field))
				continue
			}
			text = strings.TrimSpace(s)
		case domain.ColumnNumber:
			text = numberLiteral(val)
		}

		if err := webserver.ValidateVar(c, text, rule.tag); err != nil {
			fe.add(rule.field, validationMessage(rule.field, err))
			continue
		}

		switch rule.field {
		case domain.ColumnName:
			upd.Name = &text
		case domain.ColumnNumber:
			n, err := strconv.ParseInt(text, 10, 64)
			if err != nil {
				fe.add(rule.field, validationMessage(rule.field, nil))
				continue
			}
			upd.Number = &n
		}
	}
	return upd, fe
}

// numberLiteral renders a payload value the way the integer rule reads it.
// A JSON number with an integral value (1.0, 1e3) is rendered as that
// integer; strings are taken as written.
func numberLiteral(val interface{}) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return integralNumber(v)
	default:
		return fmt.Sprint(v)
	}
}

// maxIntegralFloat is 2^63, the first float64 past the int64 range
const maxIntegralFloat = 1 << 63

func integralNumber(n json.Number) string {
	lit := n.String()
	if _, err := strconv.ParseInt(lit, 10, 64); err == nil {
		return lit
	}
	f, err := n.Float64()
	if err != nil || f != math.Trunc(f) || f >= maxIntegralFloat || f < -maxIntegralFloat {
		return lit
	}
	return strconv.FormatInt(int64(f), 10)
}

func validationMessage(field string, err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		switch verrs[0].Tag() {
		case "required":
			return fmt.Sprintf("The %s field is required.", field)
		case "max":
			return fmt.Sprintf("The %s field must not be greater than %s characters.", field, verrs[0].Param())
		}
	}
	return fmt.Sprintf("The %s field must be an integer.", field)
}

// parseIDList accepts a non-empty array whose elements are all integers
// (JSON integers or integral numeric strings). Duplicates are collapsed.
func parseIDList(val interface{}) ([]int64, bool) {
	items, ok := val.([]interface{})
	if !ok || len(items) == 0 {
		return nil, false
	}

	seen := make(map[int64]struct{}, len(items))
	ids := make([]int64, 0, len(items))
	for _, item := range items {
		var text string
		switch v := item.(type) {
		case json.Number:
			text = v.String()
		case string:
			text = strings.TrimSpace(v)
		default:
			return nil, false
		}
		id, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return nil, false
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, true
}
