package tools

import "fieldedge/internal/domain"

var technicianStatuses = []string{"active", "inactive", "on-leave"}

func technicianGroup() Group {
	return Group{
		Name: "technicians",
		Definitions: []domain.ToolDefinition{
			{
				Name:        "fieldedge_list_technicians",
				Description: "List all technicians",
				InputSchema: object(nil, props([]prop{
					enum("status", "Filter by technician status", technicianStatuses...),
					strs("skills", "Filter by skills"),
				}, pagination())...),
			},
			{
				Name:        "fieldedge_get_technician",
				Description: "Get specific technician by ID",
				InputSchema: object(req("id"), idProp("Technician ID")),
			},
			{
				Name:        "fieldedge_create_technician",
				Description: "Create a new technician",
				InputSchema: object(req("employeeNumber", "firstName", "lastName", "email", "phone", "role"),
					str("employeeNumber", "Employee number"),
					str("firstName", "First name"),
					str("lastName", "Last name"),
					str("email", "Email address"),
					str("phone", "Phone number"),
					str("role", "Role or title"),
					strs("skills", "Skills and certifications"),
					num("hourlyRate", "Hourly rate"),
					num("overtimeRate", "Overtime rate"),
					num("serviceRadius", "Service radius in miles"),
				),
			},
			{
				Name:        "fieldedge_update_technician",
				Description: "Update technician details",
				InputSchema: object(req("id"),
					idProp("Technician ID"),
					enum("status", "Technician status", technicianStatuses...),
					str("email", "Email address"),
					str("phone", "Phone number"),
					str("role", "Role or title"),
					strs("skills", "Skills and certifications"),
					num("hourlyRate", "Hourly rate"),
					num("overtimeRate", "Overtime rate"),
				),
			},
			{
				Name:        "fieldedge_delete_technician",
				Description: "Delete a technician",
				InputSchema: object(req("id"), idProp("Technician ID")),
			},
			{
				Name:        "fieldedge_get_technician_schedule",
				Description: "Get technician schedule for a date range",
				InputSchema: object(req("id", "startDate", "endDate"),
					idProp("Technician ID"),
					str("startDate", "Range start (ISO 8601)"),
					str("endDate", "Range end (ISO 8601)"),
				),
			},
			{
				Name:        "fieldedge_get_technician_availability",
				Description: "Get technician availability for scheduling",
				InputSchema: object(req("id", "date"),
					idProp("Technician ID"),
					str("date", "Date to check (ISO 8601)"),
				),
			},
			{
				Name:        "fieldedge_clock_in_technician",
				Description: "Clock in technician (start time tracking)",
				InputSchema: object(req("technicianId"),
					str("technicianId", "Technician ID"),
					str("jobId", "Job being worked"),
					str("notes", "Time entry notes"),
				),
			},
			{
				Name:        "fieldedge_clock_out_technician",
				Description: "Clock out technician (end time tracking)",
				InputSchema: object(req("timeEntryId"),
					str("timeEntryId", "Open time entry ID"),
					str("notes", "Time entry notes"),
				),
			},
		},
		Handlers: map[string]Handler{
			"fieldedge_list_technicians":            queryAt("/technicians", nil),
			"fieldedge_get_technician":              getAt("/technicians/{id}"),
			"fieldedge_create_technician":           createAt("/technicians"),
			"fieldedge_update_technician":           updateAt("/technicians/{id}"),
			"fieldedge_delete_technician":           deleteAt("/technicians/{id}"),
			"fieldedge_get_technician_schedule":     queryAt("/technicians/{id}/schedule", only("startDate", "endDate")),
			"fieldedge_get_technician_availability": queryAt("/technicians/{id}/availability", only("date")),
			"fieldedge_clock_in_technician":         postAt("/time-entries", clockIn),
			"fieldedge_clock_out_technician":        patchAt("/time-entries/{timeEntryId}", stamped("endTime", "notes")),
		},
	}
}

// clockIn opens a billable regular time entry starting now.
func clockIn(env Env, args Args) Args {
	body := args.Pick("technicianId", "jobId")
	body.Set("startTime", env.Timestamp())
	body.Set("type", "regular")
	body.Set("billable", true)
	body.CopyFrom(args, "notes")
	return body
}
