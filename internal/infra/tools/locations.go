package tools

import "fieldedge/internal/domain"

var locationTypes = []string{"primary", "secondary", "billing", "service"}

func locationGroup() Group {
	return Group{
		Name: "locations",
		Definitions: []domain.ToolDefinition{
			{
				Name:        "fieldedge_list_locations",
				Description: "List customer locations",
				InputSchema: object(nil, props([]prop{
					str("customerId", "Filter by customer ID"),
					enum("status", "Filter by location status", "active", "inactive"),
					enum("type", "Filter by location type", locationTypes...),
				}, pagination())...),
			},
			{
				Name:        "fieldedge_get_location",
				Description: "Get specific location",
				InputSchema: object(req("id"), idProp("Location ID")),
			},
			{
				Name:        "fieldedge_create_location",
				Description: "Create new location for customer",
				InputSchema: object(req("customerId", "name", "type", "address"),
					str("customerId", "Customer ID"),
					str("name", "Location name"),
					enum("type", "Location type", locationTypes...),
					nested("address", "Street address", nil, addressProps()...),
					str("contactName", "On-site contact name"),
					str("contactPhone", "On-site contact phone"),
					str("accessNotes", "Access instructions"),
					str("gateCode", "Gate code"),
				),
			},
			{
				Name:        "fieldedge_update_location",
				Description: "Update location details",
				InputSchema: object(req("id"),
					idProp("Location ID"),
					str("name", "Location name"),
					enum("status", "Location status", "active", "inactive"),
					str("contactName", "On-site contact name"),
					str("contactPhone", "On-site contact phone"),
					str("accessNotes", "Access instructions"),
					str("gateCode", "Gate code"),
				),
			},
			{
				Name:        "fieldedge_delete_location",
				Description: "Delete a location",
				InputSchema: object(req("id"), idProp("Location ID")),
			},
		},
		Handlers: map[string]Handler{
			"fieldedge_list_locations":  queryAt("/locations", nil),
			"fieldedge_get_location":    getAt("/locations/{id}"),
			"fieldedge_create_location": createAt("/locations"),
			"fieldedge_update_location": updateAt("/locations/{id}"),
			"fieldedge_delete_location": deleteAt("/locations/{id}"),
		},
	}
}
