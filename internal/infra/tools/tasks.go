package tools

import "fieldedge/internal/domain"

var (
	taskStatuses   = []string{"pending", "in-progress", "completed", "cancelled"}
	taskPriorities = []string{"low", "normal", "high", "urgent"}
)

func taskGroup() Group {
	return Group{
		Name: "tasks",
		Definitions: []domain.ToolDefinition{
			{
				Name:        "fieldedge_list_tasks",
				Description: "List tasks",
				InputSchema: object(nil, props([]prop{
					enum("status", "Filter by task status", taskStatuses...),
					enum("priority", "Filter by priority", taskPriorities...),
					str("assignedTo", "Filter by assignee"),
					str("customerId", "Filter by customer ID"),
					str("jobId", "Filter by job ID"),
					str("dueDate", "Filter by due date (ISO 8601)"),
				}, pagination())...),
			},
			{
				Name:        "fieldedge_get_task",
				Description: "Get specific task",
				InputSchema: object(req("id"), idProp("Task ID")),
			},
			{
				Name:        "fieldedge_create_task",
				Description: "Create new task",
				InputSchema: object(req("title", "description", "type"),
					str("title", "Task title"),
					str("description", "Task description"),
					enum("type", "Task type", "call", "email", "follow-up", "inspection", "other"),
					def(enum("priority", "Task priority", taskPriorities...), "normal"),
					str("dueDate", "Due date (ISO 8601)"),
					str("assignedTo", "Assignee user ID"),
					str("customerId", "Related customer ID"),
					str("jobId", "Related job ID"),
					str("notes", "Task notes"),
				),
			},
			{
				Name:        "fieldedge_update_task",
				Description: "Update task",
				InputSchema: object(req("id"),
					idProp("Task ID"),
					enum("status", "Task status", taskStatuses...),
					enum("priority", "Task priority", taskPriorities...),
					str("dueDate", "Due date (ISO 8601)"),
					str("assignedTo", "Assignee user ID"),
					str("notes", "Task notes"),
				),
			},
			{
				Name:        "fieldedge_complete_task",
				Description: "Mark task as completed",
				InputSchema: object(req("id"),
					idProp("Task ID"),
					str("notes", "Completion notes"),
				),
			},
			{
				Name:        "fieldedge_delete_task",
				Description: "Delete a task",
				InputSchema: object(req("id"), idProp("Task ID")),
			},
		},
		Handlers: map[string]Handler{
			"fieldedge_list_tasks":    queryAt("/tasks", nil),
			"fieldedge_get_task":      getAt("/tasks/{id}"),
			"fieldedge_create_task":   createAt("/tasks"),
			"fieldedge_update_task":   updateAt("/tasks/{id}"),
			"fieldedge_complete_task": patchAt("/tasks/{id}", completeTask),
			"fieldedge_delete_task":   deleteAt("/tasks/{id}"),
		},
	}
}

func completeTask(env Env, args Args) Args {
	body := NewArgs("status", "completed", "completedDate", env.Timestamp())
	body.CopyFrom(args, "notes")
	return body
}
