package tools

import "fieldedge/internal/domain"

func customerGroup() Group {
	customerFields := []prop{
		str("firstName", "Customer first name"),
		str("lastName", "Customer last name"),
		str("companyName", "Company name for commercial customers"),
		enum("customerType", "Customer type", "residential", "commercial"),
		str("email", "Email address"),
		str("phone", "Primary phone number"),
		str("mobilePhone", "Mobile phone number"),
		nested("address", "Service address", nil, addressProps()...),
		nested("billingAddress", "Billing address if different", nil, addressProps()...),
		def(boolean("taxExempt", "Whether the customer is tax exempt"), false),
		num("creditLimit", "Credit limit"),
		str("notes", "Customer notes"),
		strs("tags", "Customer tags"),
		anyObject("customFields", "Custom field values"),
	}
	updateFields := props([]prop{idProp("Customer ID")}, customerFields, []prop{
		enum("status", "Customer status", "active", "inactive", "prospect"),
	})

	return Group{
		Name: "customers",
		Definitions: []domain.ToolDefinition{
			{
				Name:        "fieldedge_list_customers",
				Description: "List all customers with optional filtering and pagination",
				InputSchema: object(nil, props([]prop{
					enum("status", "Filter by customer status", "active", "inactive", "prospect"),
					enum("customerType", "Filter by customer type", "residential", "commercial"),
				}, pagination(), sortProps())...),
			},
			{
				Name:        "fieldedge_get_customer",
				Description: "Get detailed information about a specific customer",
				InputSchema: object(req("id"), idProp("Customer ID")),
			},
			{
				Name:        "fieldedge_create_customer",
				Description: "Create a new customer",
				InputSchema: object(req("firstName", "lastName", "customerType"), customerFields...),
			},
			{
				Name:        "fieldedge_update_customer",
				Description: "Update an existing customer",
				InputSchema: object(req("id"), updateFields...),
			},
			{
				Name:        "fieldedge_delete_customer",
				Description: "Delete a customer",
				InputSchema: object(req("id"), idProp("Customer ID")),
			},
			{
				Name:        "fieldedge_search_customers",
				Description: "Search customers by name, email, phone, or other criteria",
				InputSchema: object(nil, props([]prop{
					str("search", "Search query"),
					enum("status", "Filter by customer status", "active", "inactive", "prospect"),
					enum("customerType", "Filter by customer type", "residential", "commercial"),
					strs("tags", "Filter by tags"),
					def(num("page", "Page number (default: 1)"), 1),
					def(num("pageSize", "Items per page (default: 50)"), 50),
				}, sortProps())...),
			},
			{
				Name:        "fieldedge_get_customer_balance",
				Description: "Get customer account balance and payment history",
				InputSchema: object(req("id"), idProp("Customer ID")),
			},
			{
				Name:        "fieldedge_get_customer_jobs",
				Description: "Get all jobs for a customer",
				InputSchema: object(req("id"), props([]prop{
					idProp("Customer ID"),
					enum("status", "Filter by job status", jobStatuses...),
				}, pagination())...),
			},
			{
				Name:        "fieldedge_get_customer_invoices",
				Description: "Get all invoices for a customer",
				InputSchema: object(req("id"), props([]prop{
					idProp("Customer ID"),
					enum("status", "Filter by invoice status", invoiceStatuses...),
				}, pagination())...),
			},
			{
				Name:        "fieldedge_get_customer_equipment",
				Description: "Get all equipment for a customer",
				InputSchema: object(req("id"),
					idProp("Customer ID"),
					enum("status", "Filter by equipment status", equipmentStatus...),
				),
			},
		},
		Handlers: map[string]Handler{
			"fieldedge_list_customers":         queryAt("/customers", nil),
			"fieldedge_get_customer":           getAt("/customers/{id}"),
			"fieldedge_create_customer":        createAt("/customers"),
			"fieldedge_update_customer":        updateAt("/customers/{id}"),
			"fieldedge_delete_customer":        deleteAt("/customers/{id}"),
			"fieldedge_search_customers":       queryAt("/customers/search", nil),
			"fieldedge_get_customer_balance":   getAt("/customers/{id}/balance"),
			"fieldedge_get_customer_jobs":      queryAt("/customers/{id}/jobs", only("status", "page", "pageSize")),
			"fieldedge_get_customer_invoices":  queryAt("/customers/{id}/invoices", only("status", "page", "pageSize")),
			"fieldedge_get_customer_equipment": queryAt("/customers/{id}/equipment", only("status")),
		},
	}
}
