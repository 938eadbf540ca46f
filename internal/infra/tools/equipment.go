package tools

import (
	"context"
	"net/http"

	"fieldedge/internal/domain"
)

func equipmentGroup() Group {
	equipmentFields := []prop{
		str("type", "Equipment type (e.g., furnace, condenser, water heater)"),
		str("manufacturer", "Manufacturer"),
		str("model", "Model number"),
		str("serialNumber", "Serial number"),
		str("installDate", "Install date (ISO 8601)"),
		str("warrantyExpiry", "Warranty expiry date (ISO 8601)"),
		str("notes", "Equipment notes"),
	}

	return Group{
		Name: "equipment",
		Definitions: []domain.ToolDefinition{
			{
				Name:        "fieldedge_list_equipment",
				Description: "List all equipment with optional filtering",
				InputSchema: object(nil, props([]prop{
					str("customerId", "Filter by customer ID"),
					str("locationId", "Filter by location ID"),
					enum("status", "Filter by equipment status", equipmentStatus...),
					str("type", "Filter by equipment type"),
					str("manufacturer", "Filter by manufacturer"),
				}, pagination())...),
			},
			{
				Name:        "fieldedge_get_equipment",
				Description: "Get specific equipment by ID",
				InputSchema: object(req("id"), idProp("Equipment ID")),
			},
			{
				Name:        "fieldedge_create_equipment",
				Description: "Create a new equipment record",
				InputSchema: object(req("customerId", "type", "manufacturer", "model"), props([]prop{
					str("customerId", "Owning customer ID"),
					str("locationId", "Installed location ID"),
				}, equipmentFields, []prop{
					anyObject("customFields", "Custom field values"),
				})...),
			},
			{
				Name:        "fieldedge_update_equipment",
				Description: "Update equipment record",
				InputSchema: object(req("id"), props([]prop{
					idProp("Equipment ID"),
					enum("status", "Equipment status", equipmentStatus...),
				}, equipmentFields, []prop{
					str("lastServiceDate", "Last service date (ISO 8601)"),
					str("nextServiceDue", "Next service due date (ISO 8601)"),
				})...),
			},
			{
				Name:        "fieldedge_delete_equipment",
				Description: "Delete equipment record",
				InputSchema: object(req("id"), idProp("Equipment ID")),
			},
			{
				Name:        "fieldedge_get_equipment_service_history",
				Description: "Get service history for equipment",
				InputSchema: object(req("id"),
					idProp("Equipment ID"),
					str("startDate", "History start date (ISO 8601)"),
					str("endDate", "History end date (ISO 8601)"),
				),
			},
			{
				Name:        "fieldedge_schedule_equipment_maintenance",
				Description: "Schedule preventive maintenance for equipment by creating a maintenance job",
				InputSchema: object(req("equipmentId", "scheduledDate", "maintenanceType"),
					str("equipmentId", "Equipment ID"),
					str("customerId", "Customer ID; looked up from the equipment record when omitted"),
					str("scheduledDate", "Scheduled date (ISO 8601)"),
					str("technicianId", "Technician to assign"),
					str("maintenanceType", "Maintenance type, used as the job description"),
					str("notes", "Job notes"),
				),
			},
		},
		Handlers: map[string]Handler{
			"fieldedge_list_equipment":                 queryAt("/equipment", nil),
			"fieldedge_get_equipment":                  getAt("/equipment/{id}"),
			"fieldedge_create_equipment":               createAt("/equipment"),
			"fieldedge_update_equipment":               updateAt("/equipment/{id}"),
			"fieldedge_delete_equipment":               deleteAt("/equipment/{id}"),
			"fieldedge_get_equipment_service_history":  queryAt("/equipment/{id}/service-history", only("startDate", "endDate")),
			"fieldedge_schedule_equipment_maintenance": scheduleMaintenance,
		},
	}
}

// scheduleMaintenance creates a maintenance job for one piece of equipment. The owning
// customer is read from the equipment record unless the caller names it. Sub-calls run
// in order and a failure stops the sequence; nothing already created is undone.
func scheduleMaintenance(ctx context.Context, env Env, call Call) (any, error) {
	equipmentID, err := call.Args.Identifier(call.Tool, "equipmentId")
	if err != nil {
		return nil, err
	}

	customerID, ok := call.Args.Get("customerId")
	if !ok || customerID == nil || customerID == "" {
		customerID, err = equipmentOwner(ctx, env, call.Tool, equipmentID)
		if err != nil {
			return nil, err
		}
	}

	technicians := []any{}
	if tech, ok := call.Args.Get("technicianId"); ok && tech != nil && tech != "" {
		technicians = append(technicians, tech)
	}

	body := NewArgs(
		"customerId", customerID,
		"equipmentIds", []any{equipmentID},
		"jobType", "maintenance",
	)
	if v, ok := call.Args.Get("maintenanceType"); ok {
		body.Set("description", v)
	}
	if v, ok := call.Args.Get("scheduledDate"); ok {
		body.Set("scheduledStart", v)
	}
	body.Set("assignedTechnicians", technicians)
	body.CopyFrom(call.Args, "notes")

	return env.API.Request(ctx, http.MethodPost, "/jobs", body, nil)
}

func equipmentOwner(ctx context.Context, env Env, op, equipmentID string) (any, error) {
	path, _, err := expandPath(op, "/equipment/{id}", NewArgs("id", equipmentID))
	if err != nil {
		return nil, err
	}
	raw, err := env.API.Request(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}
	record, ok := decodeObject(raw)
	if !ok {
		return nil, domain.InvalidArgument(op, "equipment record is not an object")
	}
	owner, ok := record["customerId"]
	if !ok || owner == nil || owner == "" {
		return nil, domain.InvalidArgument(op, "customerId is required: equipment "+equipmentID+" has no customer")
	}
	return owner, nil
}
