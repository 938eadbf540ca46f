package tools

import "fieldedge/internal/domain"

// report describes one read-only report endpoint under /reports.
type report struct {
	slug        string
	description string
	required    []string
	props       []prop
}

func dateRange() []prop {
	return []prop{
		str("startDate", "Start date (YYYY-MM-DD)"),
		str("endDate", "End date (YYYY-MM-DD)"),
	}
}

var reports = []report{
	{
		slug:        "revenue",
		description: "Get revenue report for a period",
		required:    req("startDate", "endDate"),
		props:       props(dateRange(), []prop{def(enum("groupBy", "Grouping interval", "day", "week", "month"), "day")}),
	},
	{
		slug:        "technician-productivity",
		description: "Get technician productivity metrics",
		required:    req("startDate", "endDate"),
		props:       props(dateRange(), []prop{strs("technicianIds", "Limit to these technicians")}),
	},
	{
		slug:        "job-completion",
		description: "Get job completion statistics",
		required:    req("startDate", "endDate"),
		props: props(dateRange(), []prop{
			str("jobType", "Filter by job type"),
			str("status", "Filter by job status"),
		}),
	},
	{
		slug:        "aging-receivables",
		description: "Get accounts receivable aging report",
		props: []prop{
			str("asOfDate", "As of date (YYYY-MM-DD)"),
			str("customerId", "Limit to one customer"),
		},
	},
	{
		slug:        "sales-by-category",
		description: "Get sales breakdown by category",
		required:    req("startDate", "endDate"),
		props:       dateRange(),
	},
	{
		slug:        "equipment-maintenance",
		description: "Get equipment maintenance history and upcoming",
		props: []prop{
			str("customerId", "Limit to one customer"),
			str("equipmentType", "Filter by equipment type"),
			boolean("overdueOnly", "Only include overdue maintenance"),
		},
	},
	{
		slug:        "customer-satisfaction",
		description: "Get customer satisfaction metrics",
		required:    req("startDate", "endDate"),
		props:       dateRange(),
	},
	{
		slug:        "inventory-valuation",
		description: "Get current inventory valuation",
		props: []prop{
			str("warehouse", "Filter by warehouse"),
			str("category", "Filter by category"),
		},
	},
}

// reportToolName maps a report slug such as "aging-receivables" to
// fieldedge_get_aging_receivables_report.
func reportToolName(slug string) string {
	name := []byte(slug)
	for i, c := range name {
		if c == '-' {
			name[i] = '_'
		}
	}
	return domain.ToolPrefix + "get_" + string(name) + "_report"
}

func reportingGroup() Group {
	group := Group{
		Name:     "reporting",
		Handlers: make(map[string]Handler, len(reports)),
	}
	for _, r := range reports {
		name := reportToolName(r.slug)
		group.Definitions = append(group.Definitions, domain.ToolDefinition{
			Name:        name,
			Description: r.description,
			InputSchema: object(r.required, r.props...),
		})
		group.Handlers[name] = queryAt("/reports/"+r.slug, nil)
	}
	return group
}
