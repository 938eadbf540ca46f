package tools

import "fieldedge/internal/domain"

func jobGroup() Group {
	jobFields := []prop{
		str("customerId", "Customer ID"),
		str("locationId", "Service location ID"),
		str("jobType", "Type of job (e.g., repair, maintenance, installation)"),
		def(enum("priority", "Job priority", jobPriorities...), "normal"),
		str("description", "Job description"),
		str("scheduledStart", "Scheduled start time (ISO 8601)"),
		str("scheduledEnd", "Scheduled end time (ISO 8601)"),
		strs("assignedTechnicians", "Technician IDs to assign"),
		strs("equipmentIds", "Related equipment IDs"),
		strs("tags", "Job tags"),
		anyObject("customFields", "Custom field values"),
	}

	return Group{
		Name: "jobs",
		Definitions: []domain.ToolDefinition{
			{
				Name:        "fieldedge_list_jobs",
				Description: "List all jobs with optional filtering by status, customer, technician, or date range",
				InputSchema: object(nil, props([]prop{
					enum("status", "Filter by job status", jobStatuses...),
					enum("priority", "Filter by priority", jobPriorities...),
					str("customerId", "Filter by customer ID"),
					str("technicianId", "Filter by assigned technician ID"),
					str("startDate", "Filter jobs scheduled after this date (ISO 8601)"),
					str("endDate", "Filter jobs scheduled before this date (ISO 8601)"),
				}, pagination(), sortProps())...),
			},
			{
				Name:        "fieldedge_get_job",
				Description: "Get detailed information about a specific job",
				InputSchema: object(req("id"), idProp("Job ID")),
			},
			{
				Name:        "fieldedge_create_job",
				Description: "Create a new job",
				InputSchema: object(req("customerId", "jobType", "description"), jobFields...),
			},
			{
				Name:        "fieldedge_update_job",
				Description: "Update an existing job",
				InputSchema: object(req("id"), props([]prop{
					idProp("Job ID"),
					enum("status", "Job status", jobStatuses...),
				}, jobFields)...),
			},
			{
				Name:        "fieldedge_delete_job",
				Description: "Delete a job",
				InputSchema: object(req("id"), idProp("Job ID")),
			},
			{
				Name:        "fieldedge_start_job",
				Description: "Start a job (set status to in-progress and record actual start time)",
				InputSchema: object(req("id"),
					idProp("Job ID"),
					str("notes", "Notes about starting the job"),
				),
			},
			{
				Name:        "fieldedge_complete_job",
				Description: "Complete a job (set status to completed and record actual end time)",
				InputSchema: object(req("id"),
					idProp("Job ID"),
					str("notes", "Completion notes"),
					def(boolean("createInvoice", "Automatically create invoice"), false),
				),
			},
			{
				Name:        "fieldedge_cancel_job",
				Description: "Cancel a job",
				InputSchema: object(req("id"),
					idProp("Job ID"),
					str("reason", "Cancellation reason"),
				),
			},
			{
				Name:        "fieldedge_assign_technician",
				Description: "Assign one or more technicians to a job",
				InputSchema: object(req("id", "technicianIds"),
					idProp("Job ID"),
					strs("technicianIds", "Technician IDs to assign"),
					def(boolean("replace", "Replace existing technicians or add to them"), false),
				),
			},
		},
		Handlers: map[string]Handler{
			"fieldedge_list_jobs":         queryAt("/jobs", nil),
			"fieldedge_get_job":           getAt("/jobs/{id}"),
			"fieldedge_create_job":        createAt("/jobs"),
			"fieldedge_update_job":        updateAt("/jobs/{id}"),
			"fieldedge_delete_job":        deleteAt("/jobs/{id}"),
			"fieldedge_start_job":         postAt("/jobs/{id}/start", stamped("actualStart", "notes")),
			"fieldedge_complete_job":      postAt("/jobs/{id}/complete", stamped("actualEnd", "notes", "createInvoice")),
			"fieldedge_cancel_job":        postAt("/jobs/{id}/cancel", only("reason")),
			"fieldedge_assign_technician": postAt("/jobs/{id}/assign", only("technicianIds", "replace")),
		},
	}
}
