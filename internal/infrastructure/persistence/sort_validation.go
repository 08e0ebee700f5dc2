package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// UserSortFields contains allowed sort fields for users
var UserSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"username":      true,
	"display_name":  true,
	"role":          true,
	"status":        true,
	"last_login_at": true,
}

// CustomerSortFields contains allowed sort fields for customers
var CustomerSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"name":         true,
	"phone":        true,
	"is_active":    true,
	"credit_limit": true,
}

// DriverSortFields contains allowed sort fields for drivers
var DriverSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"name":           true,
	"phone":          true,
	"license_number": true,
	"is_active":      true,
}

// VehicleSortFields contains allowed sort fields for vehicles
var VehicleSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"vehicle_number": true,
	"vehicle_type":   true,
	"capacity":       true,
	"is_active":      true,
}

// VendorSortFields contains allowed sort fields for vendors
var VendorSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"phone":      true,
	"is_active":  true,
}

// ProductSortFields contains allowed sort fields for products
var ProductSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"name":          true,
	"category_name": true,
	"is_commercial": true,
	"selling_price": true,
	"is_active":     true,
}

// DailyDeliverySortFields contains allowed sort fields for daily deliveries
var DailyDeliverySortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"delivery_date":  true,
	"vehicle_id":     true,
	"vehicle_number": true,
	"status":         true,
	"start_time":     true,
	"return_time":    true,
	"closed_at":      true,
}

// DeliveryMappingSortFields contains allowed sort fields for delivery mappings
var DeliveryMappingSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"delivery_id":    true,
	"product_name":   true,
	"customer_name":  true,
	"quantity":       true,
	"amount":         true,
	"is_credit_sale": true,
	"invoice_number": true,
}

// CreditAccountSortFields contains allowed sort fields for credit accounts
var CreditAccountSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"customer_name": true,
	"credit_limit":  true,
	"credit_used":   true,
	"total_paid":    true,
	"is_active":     true,
}

// CreditTransactionSortFields contains allowed sort fields for credit ledger entries
var CreditTransactionSortFields = map[string]bool{
	"id":               true,
	"created_at":       true,
	"transaction_date": true,
	"type":             true,
	"amount":           true,
}

// StockEntrySortFields contains allowed sort fields for stock balance rows
var StockEntrySortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"product_name":   true,
	"filled_stock":   true,
	"empty_stock":    true,
	"damaged_stock":  true,
	"in_field_stock": true,
}

// StockTransactionSortFields contains allowed sort fields for stock log entries
var StockTransactionSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"product_name": true,
	"type":         true,
}

// ReconciliationTaskSortFields contains allowed sort fields for reconciliation tasks
var ReconciliationTaskSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"trigger_type": true,
	"product_name": true,
	"status":       true,
	"attempts":     true,
	"resolved_at":  true,
}

// PurchaseEntrySortFields contains allowed sort fields for purchase entries
var PurchaseEntrySortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"vendor_id":      true,
	"vendor_name":    true,
	"invoice_number": true,
	"purchase_date":  true,
	"total_amount":   true,
	"is_active":      true,
}

// IncomeExpenseSortFields contains allowed sort fields for ledger entries
var IncomeExpenseSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"entry_date":    true,
	"type":          true,
	"amount":        true,
	"category_name": true,
}
