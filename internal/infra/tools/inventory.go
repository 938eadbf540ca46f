package tools

import "fieldedge/internal/domain"

var inventoryTransactionTypes = []string{"receipt", "issue", "adjustment", "transfer", "return"}

func inventoryGroup() Group {
	return Group{
		Name: "inventory",
		Definitions: []domain.ToolDefinition{
			{
				Name:        "fieldedge_list_inventory",
				Description: "List inventory items",
				InputSchema: object(nil, props([]prop{
					str("category", "Filter by category"),
					str("manufacturer", "Filter by manufacturer"),
					str("warehouse", "Filter by warehouse"),
					boolean("lowStock", "Show only low stock items"),
					str("search", "Search by SKU or name"),
				}, pagination())...),
			},
			{
				Name:        "fieldedge_get_inventory_item",
				Description: "Get specific inventory item",
				InputSchema: object(req("id"), idProp("Inventory item ID")),
			},
			{
				Name:        "fieldedge_create_inventory_item",
				Description: "Create new inventory item",
				InputSchema: object(req("sku", "name", "category", "unitOfMeasure", "costPrice", "sellPrice"),
					str("sku", "Stock keeping unit"),
					str("name", "Item name"),
					str("description", "Item description"),
					str("category", "Category"),
					str("manufacturer", "Manufacturer"),
					str("modelNumber", "Model number"),
					str("unitOfMeasure", "Unit of measure"),
					num("costPrice", "Cost price"),
					num("sellPrice", "Sell price"),
					num("reorderPoint", "Quantity that triggers a reorder"),
					num("reorderQuantity", "Quantity to reorder"),
					str("warehouse", "Warehouse"),
					str("binLocation", "Bin location"),
					boolean("taxable", "Whether the item is taxable"),
				),
			},
			{
				Name:        "fieldedge_update_inventory_item",
				Description: "Update inventory item",
				InputSchema: object(req("id"),
					idProp("Inventory item ID"),
					str("name", "Item name"),
					str("description", "Item description"),
					str("category", "Category"),
					num("costPrice", "Cost price"),
					num("sellPrice", "Sell price"),
					num("reorderPoint", "Quantity that triggers a reorder"),
					num("reorderQuantity", "Quantity to reorder"),
				),
			},
			{
				Name:        "fieldedge_adjust_inventory",
				Description: "Adjust inventory quantity",
				InputSchema: object(req("itemId", "quantity", "type"),
					str("itemId", "Inventory item ID"),
					num("quantity", "Adjustment quantity (positive or negative)"),
					enum("type", "Transaction type", inventoryTransactionTypes...),
					str("reference", "Reference document"),
					str("notes", "Adjustment notes"),
				),
			},
			{
				Name:        "fieldedge_get_inventory_transactions",
				Description: "Get inventory transaction history",
				InputSchema: object(nil, props([]prop{
					str("itemId", "Filter by inventory item ID"),
					str("startDate", "Transactions after this date (ISO 8601)"),
					str("endDate", "Transactions before this date (ISO 8601)"),
					enum("type", "Filter by transaction type", inventoryTransactionTypes...),
				}, pagination())...),
			},
			{
				Name:        "fieldedge_get_low_stock_items",
				Description: "Get items below reorder point",
				InputSchema: object(nil, str("warehouse", "Filter by warehouse")),
			},
		},
		Handlers: map[string]Handler{
			"fieldedge_list_inventory":             queryAt("/inventory", nil),
			"fieldedge_get_inventory_item":         getAt("/inventory/{id}"),
			"fieldedge_create_inventory_item":      createAt("/inventory"),
			"fieldedge_update_inventory_item":      updateAt("/inventory/{id}"),
			"fieldedge_adjust_inventory":           createAt("/inventory/transactions"),
			"fieldedge_get_inventory_transactions": queryAt("/inventory/transactions", nil),
			"fieldedge_get_low_stock_items":        queryAt("/inventory/low-stock", only("warehouse")),
		},
	}
}
