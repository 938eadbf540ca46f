package tools

import (
	"context"
	"encoding/base64"

	"fieldedge/internal/domain"
)

type pdfDocument struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Size    int    `json:"size"`
	Data    string `json:"data"`
}

func invoiceGroup() Group {
	lineItems := arrayOf("lineItems", "Invoice line items", lineItemSchema())

	return Group{
		Name: "invoices",
		Definitions: []domain.ToolDefinition{
			{
				Name:        "fieldedge_list_invoices",
				Description: "List all invoices with optional filtering",
				InputSchema: object(nil, props([]prop{
					enum("status", "Filter by invoice status", invoiceStatuses...),
					str("customerId", "Filter by customer ID"),
					str("jobId", "Filter by job ID"),
					str("startDate", "Filter invoices issued after this date"),
					str("endDate", "Filter invoices issued before this date"),
				}, pagination(), sortProps())...),
			},
			{
				Name:        "fieldedge_get_invoice",
				Description: "Get detailed information about a specific invoice",
				InputSchema: object(req("id"), idProp("Invoice ID")),
			},
			{
				Name:        "fieldedge_create_invoice",
				Description: "Create a new invoice",
				InputSchema: object(req("customerId", "issueDate", "dueDate", "lineItems"),
					str("customerId", "Customer ID"),
					str("jobId", "Related job ID"),
					str("issueDate", "Issue date (ISO 8601)"),
					str("dueDate", "Due date (ISO 8601)"),
					lineItems,
					str("paymentTerms", "Payment terms"),
					str("notes", "Invoice notes"),
				),
			},
			{
				Name:        "fieldedge_update_invoice",
				Description: "Update an existing invoice",
				InputSchema: object(req("id"),
					idProp("Invoice ID"),
					enum("status", "Invoice status", invoiceStatuses...),
					str("dueDate", "Due date (ISO 8601)"),
					lineItems,
					num("discount", "Invoice level discount"),
					str("paymentTerms", "Payment terms"),
					str("notes", "Invoice notes"),
				),
			},
			{
				Name:        "fieldedge_delete_invoice",
				Description: "Delete an invoice",
				InputSchema: object(req("id"), idProp("Invoice ID")),
			},
			{
				Name:        "fieldedge_send_invoice",
				Description: "Send an invoice to the customer via email",
				InputSchema: object(req("id"),
					idProp("Invoice ID"),
					str("email", "Override recipient email address"),
					str("subject", "Email subject"),
					str("message", "Email message body"),
				),
			},
			{
				Name:        "fieldedge_void_invoice",
				Description: "Void an invoice",
				InputSchema: object(req("id"),
					idProp("Invoice ID"),
					str("reason", "Reason for voiding"),
				),
			},
			{
				Name:        "fieldedge_record_payment",
				Description: "Record a payment against an invoice",
				InputSchema: object(req("invoiceId", "amount", "paymentMethod"),
					str("invoiceId", "Invoice ID"),
					num("amount", "Payment amount"),
					enum("paymentMethod", "Payment method", paymentMethods...),
					str("paymentDate", "Payment date (ISO 8601)"),
					str("reference", "Check number or transaction reference"),
					str("notes", "Payment notes"),
				),
			},
			{
				Name:        "fieldedge_get_invoice_pdf",
				Description: "Download an invoice as a base64 encoded PDF",
				InputSchema: object(req("id"), idProp("Invoice ID")),
			},
		},
		Handlers: map[string]Handler{
			"fieldedge_list_invoices":   queryAt("/invoices", nil),
			"fieldedge_get_invoice":     getAt("/invoices/{id}"),
			"fieldedge_create_invoice":  createAt("/invoices"),
			"fieldedge_update_invoice":  updateAt("/invoices/{id}"),
			"fieldedge_delete_invoice":  deleteAt("/invoices/{id}"),
			"fieldedge_send_invoice":    postAt("/invoices/{id}/send", only("email", "subject", "message")),
			"fieldedge_void_invoice":    postAt("/invoices/{id}/void", only("reason")),
			"fieldedge_record_payment":  createAt("/payments"),
			"fieldedge_get_invoice_pdf": invoicePDF,
		},
	}
}

func invoicePDF(ctx context.Context, env Env, call Call) (any, error) {
	path, _, err := expandPath(call.Tool, "/invoices/{id}/pdf", call.Args)
	if err != nil {
		return nil, err
	}
	data, err := env.API.Download(ctx, path)
	if err != nil {
		return nil, err
	}
	return pdfDocument{
		Success: true,
		Message: "PDF generated successfully",
		Size:    len(data),
		Data:    base64.StdEncoding.EncodeToString(data),
	}, nil
}
