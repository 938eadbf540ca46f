package tools

import (
	"encoding/json"

	"github.com/google/jsonschema-go/jsonschema"
)

// prop is one named property of a tool input schema.
type prop struct {
	name   string
	schema *jsonschema.Schema
}

func object(required []string, props ...prop) *jsonschema.Schema {
	schema := &jsonschema.Schema{
		Type:       "object",
		Properties: make(map[string]*jsonschema.Schema, len(props)),
	}
	for _, p := range props {
		schema.Properties[p.name] = p.schema
	}
	if len(required) > 0 {
		schema.Required = append([]string(nil), required...)
	}
	return schema
}

func req(names ...string) []string {
	return names
}

func str(name, desc string) prop {
	return prop{name: name, schema: &jsonschema.Schema{Type: "string", Description: desc}}
}

func enum(name, desc string, values ...string) prop {
	items := make([]any, 0, len(values))
	for _, v := range values {
		items = append(items, v)
	}
	return prop{name: name, schema: &jsonschema.Schema{Type: "string", Description: desc, Enum: items}}
}

func num(name, desc string) prop {
	return prop{name: name, schema: &jsonschema.Schema{Type: "number", Description: desc}}
}

func boolean(name, desc string) prop {
	return prop{name: name, schema: &jsonschema.Schema{Type: "boolean", Description: desc}}
}

func strs(name, desc string) prop {
	return prop{name: name, schema: &jsonschema.Schema{
		Type:        "array",
		Description: desc,
		Items:       &jsonschema.Schema{Type: "string"},
	}}
}

func anyObject(name, desc string) prop {
	return prop{name: name, schema: &jsonschema.Schema{Type: "object", Description: desc}}
}

func nested(name, desc string, required []string, props ...prop) prop {
	schema := object(required, props...)
	schema.Description = desc
	return prop{name: name, schema: schema}
}

func arrayOf(name, desc string, item *jsonschema.Schema) prop {
	return prop{name: name, schema: &jsonschema.Schema{Type: "array", Description: desc, Items: item}}
}

// def annotates p with a default value. Defaults are advisory metadata for callers.
func def(p prop, value any) prop {
	raw, err := json.Marshal(value)
	if err != nil {
		return p
	}
	p.schema.Default = raw
	return p
}

func idProp(desc string) prop {
	return str("id", desc)
}

func pagination() []prop {
	return []prop{
		num("page", "Page number"),
		num("pageSize", "Items per page"),
	}
}

func sortProps() []prop {
	return []prop{
		str("sortBy", "Field to sort by"),
		enum("sortOrder", "Sort order", "asc", "desc"),
	}
}

// props concatenates property lists into a fresh slice.
func props(groups ...[]prop) []prop {
	var out []prop
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

func addressProps() []prop {
	return []prop{
		str("street1", "Street address line 1"),
		str("street2", "Street address line 2"),
		str("city", "City"),
		str("state", "State"),
		str("zip", "ZIP/postal code"),
		str("country", "Country"),
		num("latitude", "Latitude"),
		num("longitude", "Longitude"),
	}
}

func lineItemSchema() *jsonschema.Schema {
	return object(req("type", "description", "quantity", "unitPrice"),
		enum("type", "Line item type", "service", "part", "equipment", "labor"),
		str("description", "Line item description"),
		num("quantity", "Quantity"),
		num("unitPrice", "Unit price"),
		num("discount", "Discount amount"),
		num("tax", "Tax amount"),
		str("itemId", "Price book or inventory item ID"),
	)
}

var (
	invoiceStatuses  = []string{"draft", "sent", "viewed", "partial", "paid", "overdue", "void"}
	paymentMethods   = []string{"cash", "check", "credit-card", "debit-card", "ach", "wire", "other"}
	jobStatuses      = []string{"scheduled", "dispatched", "in-progress", "on-hold", "completed", "cancelled", "invoiced"}
	jobPriorities    = []string{"low", "normal", "high", "emergency"}
	equipmentStatus  = []string{"active", "inactive", "decommissioned"}
	estimateStatuses = []string{"draft", "sent", "viewed", "approved", "declined", "expired"}
)
