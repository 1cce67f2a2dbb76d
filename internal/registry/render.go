package registry

import (
	"fmt"
	"time"

	"github.com/spf13/cast"

	"github.com/yavemu/bookadmin/internal/schema"
)

// crudEndpoints returns the standard endpoint layout shared by every
// entity: REST paths under the base plus the dedicated search/filter/export
// routes.
func crudEndpoints(base string) schema.Endpoints {
	return schema.Endpoints{
		Base:           base,
		List:           "",
		Create:         "",
		Read:           "/:id",
		Update:         "/:id",
		Delete:         "/:id",
		Search:         "/search",
		Filter:         "/filter",
		AdvancedFilter: "/filter/advanced",
		Export:         "/export/csv",
	}
}

// renderDate formats backend timestamps (RFC 3339) as dd/mm/yyyy hh:mm.
func renderDate(value interface{}, _ map[string]interface{}) string {
	s := cast.ToString(value)
	if s == "" {
		return "-"
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return s
	}
	return t.Format("02/01/2006 15:04")
}

// renderBool returns a render function mapping a boolean to the given labels.
func renderBool(trueLabel, falseLabel string) schema.RenderFunc {
	return func(value interface{}, _ map[string]interface{}) string {
		if cast.ToBool(value) {
			return trueLabel
		}
		return falseLabel
	}
}

// renderPrice formats a numeric value as a currency amount.
func renderPrice(value interface{}, _ map[string]interface{}) string {
	if value == nil {
		return "-"
	}
	return fmt.Sprintf("$ %.2f", cast.ToFloat64(value))
}
