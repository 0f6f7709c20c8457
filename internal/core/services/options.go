package services

import (
	"time"

	"github.com/shopspring/decimal"
)

// ServiceOption is a functional option shared by the services in this package.
type ServiceOption func(*serviceOptions)

type serviceOptions struct {
	now                  func() time.Time
	defaultTolerance     decimal.Decimal
	supplierHintMaxRatio float64
}

func defaultServiceOptions() serviceOptions {
	return serviceOptions{
		defaultTolerance:     decimal.New(1, -2),
		supplierHintMaxRatio: 0.35,
	}
}

func applyOptions(options []ServiceOption) serviceOptions {
	opts := defaultServiceOptions()
	for _, option := range options {
		option(&opts)
	}
	return opts
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) ServiceOption {
	return func(o *serviceOptions) {
		o.now = now
	}
}

// WithDefaultTolerance sets the tolerance given to conciliations created without one.
func WithDefaultTolerance(tolerance decimal.Decimal) ServiceOption {
	return func(o *serviceOptions) {
		o.defaultTolerance = tolerance
	}
}

// WithSupplierHintMaxRatio sets the highest name distance ratio accepted when guessing suppliers.
func WithSupplierHintMaxRatio(ratio float64) ServiceOption {
	return func(o *serviceOptions) {
		o.supplierHintMaxRatio = ratio
	}
}
