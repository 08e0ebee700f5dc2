package partner

import (
	"time"

	"github.com/gasflow/backend/internal/domain/partner"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateCustomerRequest registers a new customer
type CreateCustomerRequest struct {
	Name        string          `json:"name" binding:"required"`
	Phone       string          `json:"phone"`
	Address     string          `json:"address"`
	CreditLimit decimal.Decimal `json:"credit_limit"`
}

// CreateDriverRequest registers a new driver
type CreateDriverRequest struct {
	Name          string `json:"name" binding:"required"`
	Phone         string `json:"phone"`
	LicenseNumber string `json:"license_number"`
}

// CreateVehicleRequest registers a new vehicle
type CreateVehicleRequest struct {
	VehicleNumber string `json:"vehicle_number" binding:"required"`
	VehicleType   string `json:"vehicle_type"`
	Capacity      int    `json:"capacity"`
}

// CreateVendorRequest registers a new vendor
type CreateVendorRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// CustomerListFilter narrows customer listings
type CustomerListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
	Search   string `form:"search"`
}

// CustomerResponse is the public view of a customer
type CustomerResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Phone       string          `json:"phone"`
	Address     string          `json:"address"`
	IsActive    bool            `json:"is_active"`
	CreditLimit decimal.Decimal `json:"credit_limit"`
	CreatedAt   time.Time       `json:"created_at"`
}

// DriverResponse is the public view of a driver
type DriverResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone"`
	LicenseNumber string    `json:"license_number"`
	IsActive      bool      `json:"is_active"`
}

// VehicleResponse is the public view of a vehicle
type VehicleResponse struct {
	ID            uuid.UUID `json:"id"`
	VehicleNumber string    `json:"vehicle_number"`
	VehicleType   string    `json:"vehicle_type"`
	Capacity      int       `json:"capacity"`
	IsActive      bool      `json:"is_active"`
}

// VendorResponse is the public view of a vendor
type VendorResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Phone    string    `json:"phone"`
	Address  string    `json:"address"`
	IsActive bool      `json:"is_active"`
}

// ToCustomerResponse converts the aggregate to its response DTO
func ToCustomerResponse(c *partner.Customer) CustomerResponse {
	return CustomerResponse{
		ID:          c.ID,
		Name:        c.Name,
		Phone:       c.Phone,
		Address:     c.Address,
		IsActive:    c.IsActive,
		CreditLimit: c.CreditLimit,
		CreatedAt:   c.CreatedAt,
	}
}

// ToDriverResponse converts the aggregate to its response DTO
func ToDriverResponse(d *partner.Driver) DriverResponse {
	return DriverResponse{
		ID:            d.ID,
		Name:          d.Name,
		Phone:         d.Phone,
		LicenseNumber: d.LicenseNumber,
		IsActive:      d.IsActive,
	}
}

// ToVehicleResponse converts the aggregate to its response DTO
func ToVehicleResponse(v *partner.Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:            v.ID,
		VehicleNumber: v.VehicleNumber,
		VehicleType:   v.VehicleType,
		Capacity:      v.Capacity,
		IsActive:      v.IsActive,
	}
}

// ToVendorResponse converts the aggregate to its response DTO
func ToVendorResponse(v *partner.Vendor) VendorResponse {
	return VendorResponse{
		ID:       v.ID,
		Name:     v.Name,
		Phone:    v.Phone,
		Address:  v.Address,
		IsActive: v.IsActive,
	}
}
