package driver

import (
	"fmt"
	"strings"

	"dispatch/internal/pkg/errs"
)

// VehicleType is the kind of vehicle a driver operates.
type VehicleType int

const (
	UnknownVehicle VehicleType = iota
	Car
	SUV
	Truck
	Van
	Motorcycle
	Bicycle
)

func getVehicleStrings() map[VehicleType]string {
	return map[VehicleType]string{
		UnknownVehicle: "unknown",
		Car:            "car",
		SUV:            "suv",
		Truck:          "truck",
		Van:            "van",
		Motorcycle:     "motorcycle",
		Bicycle:        "bicycle",
	}
}

// ParseVehicleType accepts the lower-case wire names.
func ParseVehicleType(s string) (VehicleType, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for v, name := range getVehicleStrings() {
		if v != UnknownVehicle && name == needle {
			return v, nil
		}
	}
	return UnknownVehicle, errs.NewValueIsInvalidErrorWithCause("vehicle type", fmt.Errorf("%q is not a valid vehicle", s))
}

func (v VehicleType) String() string {
	if str, ok := getVehicleStrings()[v]; ok {
		return str
	}
	return "unknown"
}

func (v VehicleType) Validate() error {
	if v < Car || v > Bicycle {
		return errs.NewValueIsInvalidErrorWithCause("vehicle type", fmt.Errorf("%d is not a valid vehicle", v))
	}
	return nil
}

// CanTowLarge reports whether the vehicle is approved for large items
// (given a trailer).
func (v VehicleType) CanTowLarge() bool {
	return v == Truck || v == SUV
}
