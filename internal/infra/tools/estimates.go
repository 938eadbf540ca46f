package tools

import "fieldedge/internal/domain"

func estimateGroup() Group {
	lineItems := arrayOf("lineItems", "Estimate line items", lineItemSchema())

	return Group{
		Name: "estimates",
		Definitions: []domain.ToolDefinition{
			{
				Name:        "fieldedge_list_estimates",
				Description: "List all estimates with optional filtering",
				InputSchema: object(nil, props([]prop{
					enum("status", "Filter by estimate status", estimateStatuses...),
					str("customerId", "Filter by customer ID"),
				}, pagination(), sortProps())...),
			},
			{
				Name:        "fieldedge_get_estimate",
				Description: "Get a specific estimate by ID",
				InputSchema: object(req("id"), idProp("Estimate ID")),
			},
			{
				Name:        "fieldedge_create_estimate",
				Description: "Create a new estimate/quote",
				InputSchema: object(req("customerId", "issueDate", "expiryDate", "lineItems"),
					str("customerId", "Customer ID"),
					str("locationId", "Service location ID"),
					str("issueDate", "Issue date (ISO 8601)"),
					str("expiryDate", "Expiry date (ISO 8601)"),
					lineItems,
					str("notes", "Estimate notes"),
				),
			},
			{
				Name:        "fieldedge_update_estimate",
				Description: "Update an existing estimate",
				InputSchema: object(req("id"),
					idProp("Estimate ID"),
					enum("status", "Estimate status", estimateStatuses...),
					str("expiryDate", "Expiry date (ISO 8601)"),
					lineItems,
					str("notes", "Estimate notes"),
				),
			},
			{
				Name:        "fieldedge_delete_estimate",
				Description: "Delete an estimate",
				InputSchema: object(req("id"), idProp("Estimate ID")),
			},
			{
				Name:        "fieldedge_send_estimate",
				Description: "Send estimate to customer via email",
				InputSchema: object(req("id"),
					idProp("Estimate ID"),
					str("email", "Override recipient email address"),
					str("subject", "Email subject"),
					str("message", "Email message body"),
				),
			},
			{
				Name:        "fieldedge_approve_estimate",
				Description: "Mark estimate as approved and optionally create a job",
				InputSchema: object(req("id"),
					idProp("Estimate ID"),
					def(boolean("createJob", "Create a job from the approved estimate"), true),
					str("notes", "Approval notes"),
				),
			},
			{
				Name:        "fieldedge_convert_estimate_to_invoice",
				Description: "Convert an approved estimate to an invoice",
				InputSchema: object(req("id"),
					idProp("Estimate ID"),
					str("issueDate", "Invoice issue date (ISO 8601)"),
					str("dueDate", "Invoice due date (ISO 8601)"),
				),
			},
		},
		Handlers: map[string]Handler{
			"fieldedge_list_estimates":              queryAt("/estimates", nil),
			"fieldedge_get_estimate":                getAt("/estimates/{id}"),
			"fieldedge_create_estimate":             createAt("/estimates"),
			"fieldedge_update_estimate":             updateAt("/estimates/{id}"),
			"fieldedge_delete_estimate":             deleteAt("/estimates/{id}"),
			"fieldedge_send_estimate":               postAt("/estimates/{id}/send", only("email", "subject", "message")),
			"fieldedge_approve_estimate":            postAt("/estimates/{id}/approve", defaulted(only("createJob", "notes"), "createJob", true)),
			"fieldedge_convert_estimate_to_invoice": postAt("/estimates/{id}/convert-to-invoice", only("issueDate", "dueDate")),
		},
	}
}
