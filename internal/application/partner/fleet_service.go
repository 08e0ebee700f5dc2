package partner

import (
	"context"

	"github.com/gasflow/backend/internal/domain/partner"
	"github.com/google/uuid"
)

// FleetService manages the drivers and vehicles referenced by delivery runs
type FleetService struct {
	driverRepo  partner.DriverRepository
	vehicleRepo partner.VehicleRepository
}

// NewFleetService creates a new fleet service
func NewFleetService(driverRepo partner.DriverRepository, vehicleRepo partner.VehicleRepository) *FleetService {
	return &FleetService{driverRepo: driverRepo, vehicleRepo: vehicleRepo}
}

// CreateDriver registers a new driver
func (s *FleetService) CreateDriver(ctx context.Context, req CreateDriverRequest) (*DriverResponse, error) {
	d, err := partner.NewDriver(req.Name, req.Phone, req.LicenseNumber)
	if err != nil {
		return nil, err
	}
	if err := s.driverRepo.Save(ctx, d); err != nil {
		return nil, err
	}
	resp := ToDriverResponse(d)
	return &resp, nil
}

// ListActiveDrivers returns drivers available for assignment
func (s *FleetService) ListActiveDrivers(ctx context.Context) ([]DriverResponse, error) {
	drivers, err := s.driverRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]DriverResponse, len(drivers))
	for i := range drivers {
		out[i] = ToDriverResponse(&drivers[i])
	}
	return out, nil
}

// SetDriverActive activates or deactivates a driver
func (s *FleetService) SetDriverActive(ctx context.Context, id uuid.UUID, active bool) error {
	d, err := s.driverRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	d.IsActive = active
	return s.driverRepo.Save(ctx, d)
}

// CreateVehicle registers a new vehicle
func (s *FleetService) CreateVehicle(ctx context.Context, req CreateVehicleRequest) (*VehicleResponse, error) {
	v, err := partner.NewVehicle(req.VehicleNumber, req.VehicleType, req.Capacity)
	if err != nil {
		return nil, err
	}
	if err := s.vehicleRepo.Save(ctx, v); err != nil {
		return nil, err
	}
	resp := ToVehicleResponse(v)
	return &resp, nil
}

// ListActiveVehicles returns vehicles available for assignment
func (s *FleetService) ListActiveVehicles(ctx context.Context) ([]VehicleResponse, error) {
	vehicles, err := s.vehicleRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]VehicleResponse, len(vehicles))
	for i := range vehicles {
		out[i] = ToVehicleResponse(&vehicles[i])
	}
	return out, nil
}

// SetVehicleActive activates or deactivates a vehicle
func (s *FleetService) SetVehicleActive(ctx context.Context, id uuid.UUID, active bool) error {
	v, err := s.vehicleRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	v.IsActive = active
	return s.vehicleRepo.Save(ctx, v)
}
