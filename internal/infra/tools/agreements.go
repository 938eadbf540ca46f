package tools

import "fieldedge/internal/domain"

var (
	agreementStatuses = []string{"active", "expired", "cancelled"}
	agreementTypes    = []string{"maintenance", "warranty", "service-plan"}
)

func serviceAgreementGroup() Group {
	services := arrayOf("services", "Services covered by the agreement", object(nil,
		str("name", "Service name"),
		str("description", "Service description"),
		enum("frequency", "Service frequency", "weekly", "monthly", "quarterly", "semi-annual", "annual"),
	))

	return Group{
		Name: "service-agreements",
		Definitions: []domain.ToolDefinition{
			{
				Name:        "fieldedge_list_service_agreements",
				Description: "List service agreements",
				InputSchema: object(nil, props([]prop{
					str("customerId", "Filter by customer ID"),
					enum("status", "Filter by agreement status", agreementStatuses...),
					enum("type", "Filter by agreement type", agreementTypes...),
				}, pagination())...),
			},
			{
				Name:        "fieldedge_get_service_agreement",
				Description: "Get specific service agreement",
				InputSchema: object(req("id"), idProp("Service agreement ID")),
			},
			{
				Name:        "fieldedge_create_service_agreement",
				Description: "Create new service agreement",
				InputSchema: object(req("customerId", "name", "type", "startDate", "endDate", "billingCycle", "amount"),
					str("customerId", "Customer ID"),
					str("name", "Agreement name"),
					enum("type", "Agreement type", agreementTypes...),
					str("startDate", "Start date (ISO 8601)"),
					str("endDate", "End date (ISO 8601)"),
					enum("billingCycle", "Billing cycle", "monthly", "quarterly", "annual"),
					num("amount", "Amount billed per cycle"),
					def(boolean("autoRenew", "Renew automatically at end date"), false),
					services,
					strs("equipmentIds", "Covered equipment IDs"),
					str("notes", "Agreement notes"),
				),
			},
			{
				Name:        "fieldedge_update_service_agreement",
				Description: "Update service agreement",
				InputSchema: object(req("id"),
					idProp("Service agreement ID"),
					enum("status", "Agreement status", agreementStatuses...),
					str("endDate", "End date (ISO 8601)"),
					num("amount", "Amount billed per cycle"),
					boolean("autoRenew", "Renew automatically at end date"),
					str("notes", "Agreement notes"),
				),
			},
			{
				Name:        "fieldedge_cancel_service_agreement",
				Description: "Cancel a service agreement",
				InputSchema: object(req("id", "reason"),
					idProp("Service agreement ID"),
					str("reason", "Cancellation reason"),
					str("effectiveDate", "Effective date (ISO 8601)"),
				),
			},
			{
				Name:        "fieldedge_renew_service_agreement",
				Description: "Renew an expiring service agreement",
				InputSchema: object(req("id", "newEndDate"),
					idProp("Service agreement ID"),
					str("newEndDate", "New end date (ISO 8601)"),
					num("newAmount", "New amount billed per cycle"),
				),
			},
		},
		Handlers: map[string]Handler{
			"fieldedge_list_service_agreements":  queryAt("/service-agreements", nil),
			"fieldedge_get_service_agreement":    getAt("/service-agreements/{id}"),
			"fieldedge_create_service_agreement": createAt("/service-agreements"),
			"fieldedge_update_service_agreement": updateAt("/service-agreements/{id}"),
			"fieldedge_cancel_service_agreement": postAt("/service-agreements/{id}/cancel", only("reason", "effectiveDate")),
			"fieldedge_renew_service_agreement":  postAt("/service-agreements/{id}/renew", only("newEndDate", "newAmount")),
		},
	}
}
