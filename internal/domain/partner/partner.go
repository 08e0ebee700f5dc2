package partner

import (
	"github.com/gasflow/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Customer is a buyer of cylinders. The core flow consumes customers as
// validated references and as credit-account holders; full CRUD lives
// outside this system's scope.
type Customer struct {
	shared.BaseAggregateRoot
	Name        string          `gorm:"type:varchar(200);not null"`
	Phone       string          `gorm:"type:varchar(20)"`
	Address     string          `gorm:"type:text"`
	IsActive    bool            `gorm:"not null;default:true"`
	CreditLimit decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// Driver operates delivery runs
type Driver struct {
	shared.BaseAggregateRoot
	Name          string `gorm:"type:varchar(100);not null"`
	Phone         string `gorm:"type:varchar(20)"`
	LicenseNumber string `gorm:"type:varchar(50)"`
	IsActive      bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Driver) TableName() string {
	return "drivers"
}

// Vehicle carries cylinders on delivery runs
type Vehicle struct {
	shared.BaseAggregateRoot
	VehicleNumber string `gorm:"type:varchar(20);not null;uniqueIndex"`
	VehicleType   string `gorm:"type:varchar(50)"`
	Capacity      int    `gorm:"not null;default:0"`
	IsActive      bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Vehicle) TableName() string {
	return "vehicles"
}

// Vendor supplies filled cylinders via purchase entries
type Vendor struct {
	shared.BaseAggregateRoot
	Name     string `gorm:"type:varchar(200);not null"`
	Phone    string `gorm:"type:varchar(20)"`
	Address  string `gorm:"type:text"`
	IsActive bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Vendor) TableName() string {
	return "vendors"
}

// NewCustomer creates an active customer
func NewCustomer(name, phone, address string, creditLimit decimal.Decimal) (*Customer, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	if creditLimit.IsNegative() {
		return nil, shared.NewDomainError("INVALID_LIMIT", "Credit limit cannot be negative")
	}
	return &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Phone:             phone,
		Address:           address,
		IsActive:          true,
		CreditLimit:       creditLimit,
	}, nil
}

// NewDriver creates an active driver
func NewDriver(name, phone, licenseNumber string) (*Driver, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Driver name cannot be empty")
	}
	return &Driver{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Phone:             phone,
		LicenseNumber:     licenseNumber,
		IsActive:          true,
	}, nil
}

// NewVehicle creates an active vehicle
func NewVehicle(vehicleNumber, vehicleType string, capacity int) (*Vehicle, error) {
	if vehicleNumber == "" {
		return nil, shared.NewDomainError("INVALID_VEHICLE_NUMBER", "Vehicle number cannot be empty")
	}
	if capacity < 0 {
		return nil, shared.NewDomainError("INVALID_CAPACITY", "Capacity cannot be negative")
	}
	return &Vehicle{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		VehicleNumber:     vehicleNumber,
		VehicleType:       vehicleType,
		Capacity:          capacity,
		IsActive:          true,
	}, nil
}

// NewVendor creates an active vendor
func NewVendor(name, phone, address string) (*Vendor, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Vendor name cannot be empty")
	}
	return &Vendor{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Phone:             phone,
		Address:           address,
		IsActive:          true,
	}, nil
}
