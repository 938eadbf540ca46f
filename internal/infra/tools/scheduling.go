package tools

import "fieldedge/internal/domain"

var appointmentStatuses = []string{"scheduled", "confirmed", "dispatched", "en-route", "arrived", "completed", "cancelled", "no-show"}

func schedulingGroup() Group {
	return Group{
		Name: "scheduling",
		Definitions: []domain.ToolDefinition{
			{
				Name:        "fieldedge_list_appointments",
				Description: "List appointments with filtering",
				InputSchema: object(nil, props([]prop{
					str("startDate", "Appointments starting after this date (ISO 8601)"),
					str("endDate", "Appointments starting before this date (ISO 8601)"),
					str("technicianId", "Filter by technician ID"),
					str("customerId", "Filter by customer ID"),
					enum("status", "Filter by appointment status", appointmentStatuses...),
				}, pagination())...),
			},
			{
				Name:        "fieldedge_get_appointment",
				Description: "Get specific appointment",
				InputSchema: object(req("id"), idProp("Appointment ID")),
			},
			{
				Name:        "fieldedge_create_appointment",
				Description: "Create a new appointment",
				InputSchema: object(req("jobId", "customerId", "technicianId", "startTime", "endTime", "appointmentType"),
					str("jobId", "Job ID"),
					str("customerId", "Customer ID"),
					str("technicianId", "Technician ID"),
					str("startTime", "Start time (ISO 8601)"),
					str("endTime", "End time (ISO 8601)"),
					str("appointmentType", "Appointment type"),
					nested("arrivalWindow", "Arrival window promised to the customer", nil,
						str("start", "Window start (ISO 8601)"),
						str("end", "Window end (ISO 8601)"),
					),
					str("notes", "Appointment notes"),
				),
			},
			{
				Name:        "fieldedge_update_appointment",
				Description: "Update an appointment",
				InputSchema: object(req("id"),
					idProp("Appointment ID"),
					str("startTime", "Start time (ISO 8601)"),
					str("endTime", "End time (ISO 8601)"),
					str("technicianId", "Technician ID"),
					enum("status", "Appointment status", appointmentStatuses...),
					str("notes", "Appointment notes"),
				),
			},
			{
				Name:        "fieldedge_cancel_appointment",
				Description: "Cancel an appointment",
				InputSchema: object(req("id"),
					idProp("Appointment ID"),
					str("reason", "Cancellation reason"),
					def(boolean("notifyCustomer", "Notify the customer"), true),
				),
			},
			{
				Name:        "fieldedge_get_dispatch_board",
				Description: "Get dispatch board for a specific date",
				InputSchema: object(req("date"),
					str("date", "Date (YYYY-MM-DD)"),
					strs("technicianIds", "Filter by specific technicians"),
				),
			},
			{
				Name:        "fieldedge_dispatch_job",
				Description: "Dispatch a job to technician",
				InputSchema: object(req("jobId", "technicianId", "scheduledTime"),
					str("jobId", "Job ID"),
					str("technicianId", "Technician ID"),
					str("scheduledTime", "Scheduled time (ISO 8601)"),
					def(boolean("notifyTechnician", "Notify the technician"), true),
				),
			},
			{
				Name:        "fieldedge_optimize_routes",
				Description: "Optimize technician routes for a day",
				InputSchema: object(req("date"),
					str("date", "Date (YYYY-MM-DD)"),
					strs("technicianIds", "Technicians to optimize"),
				),
			},
		},
		Handlers: map[string]Handler{
			"fieldedge_list_appointments":  queryAt("/appointments", nil),
			"fieldedge_get_appointment":    getAt("/appointments/{id}"),
			"fieldedge_create_appointment": createAt("/appointments"),
			"fieldedge_update_appointment": updateAt("/appointments/{id}"),
			"fieldedge_cancel_appointment": postAt("/appointments/{id}/cancel",
				defaulted(only("reason", "notifyCustomer"), "notifyCustomer", true)),
			"fieldedge_get_dispatch_board": queryAt("/dispatch/board", only("date", "technicianIds")),
			"fieldedge_dispatch_job": postAt("/dispatch",
				defaulted(only("jobId", "technicianId", "scheduledTime", "notifyTechnician"), "notifyTechnician", true)),
			"fieldedge_optimize_routes": postAt("/dispatch/optimize-routes", only("date", "technicianIds")),
		},
	}
}
