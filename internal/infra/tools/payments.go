package tools

import "fieldedge/internal/domain"

func paymentGroup() Group {
	return Group{
		Name: "payments",
		Definitions: []domain.ToolDefinition{
			{
				Name:        "fieldedge_list_payments",
				Description: "List all payments",
				InputSchema: object(nil, props([]prop{
					str("customerId", "Filter by customer ID"),
					str("invoiceId", "Filter by invoice ID"),
					enum("status", "Filter by payment status", "pending", "processed", "failed", "refunded"),
					enum("paymentMethod", "Filter by payment method", paymentMethods...),
					str("startDate", "Payments after this date (ISO 8601)"),
					str("endDate", "Payments before this date (ISO 8601)"),
				}, pagination())...),
			},
			{
				Name:        "fieldedge_get_payment",
				Description: "Get specific payment",
				InputSchema: object(req("id"), idProp("Payment ID")),
			},
			{
				Name:        "fieldedge_process_payment",
				Description: "Process a new payment",
				InputSchema: object(req("invoiceId", "customerId", "amount", "paymentMethod"),
					str("invoiceId", "Invoice ID"),
					str("customerId", "Customer ID"),
					num("amount", "Payment amount"),
					enum("paymentMethod", "Payment method", paymentMethods...),
					str("paymentDate", "Payment date (ISO 8601)"),
					str("reference", "Check number or transaction reference"),
					str("notes", "Payment notes"),
				),
			},
			{
				Name:        "fieldedge_refund_payment",
				Description: "Refund a payment",
				InputSchema: object(req("id", "amount", "reason"),
					idProp("Payment ID"),
					num("amount", "Refund amount"),
					str("reason", "Refund reason"),
				),
			},
			{
				Name:        "fieldedge_void_payment",
				Description: "Void a payment",
				InputSchema: object(req("id", "reason"),
					idProp("Payment ID"),
					str("reason", "Void reason"),
				),
			},
		},
		Handlers: map[string]Handler{
			"fieldedge_list_payments":   queryAt("/payments", nil),
			"fieldedge_get_payment":     getAt("/payments/{id}"),
			"fieldedge_process_payment": createAt("/payments"),
			"fieldedge_refund_payment":  postAt("/payments/{id}/refund", only("amount", "reason")),
			"fieldedge_void_payment":    postAt("/payments/{id}/void", only("reason")),
		},
	}
}
