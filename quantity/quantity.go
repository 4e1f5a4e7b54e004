package quantity

import (
	"fmt"
	"math"

	"github.com/c360/mechstreams/errors"
	"github.com/c360/mechstreams/types"
)

// Unit is a physical dimension expressed as integer exponents over the
// toolkit's base dimensions, millimeters and seconds. A velocity is
// {Millimeter: 1, Second: -1}.
type Unit struct {
	Millimeter int8 `json:"millimeter"`
	Second     int8 `json:"second"`
}

// Common units.
var (
	Dimensionless              = Unit{}
	Millimeter                 = Unit{Millimeter: 1}
	Second                     = Unit{Second: 1}
	MillimeterPerSecond        = Unit{Millimeter: 1, Second: -1}
	MillimeterPerSecondSquared = Unit{Millimeter: 1, Second: -2}
	SquareMillimeter           = Unit{Millimeter: 2}
	InverseSecond              = Unit{Second: -1}
)

// Mul returns the unit of a product.
func (u Unit) Mul(other Unit) Unit {
	return Unit{Millimeter: u.Millimeter + other.Millimeter, Second: u.Second + other.Second}
}

// Div returns the unit of a quotient.
func (u Unit) Div(other Unit) Unit {
	return Unit{Millimeter: u.Millimeter - other.Millimeter, Second: u.Second - other.Second}
}

// String renders the unit for error messages, e.g. "mm^1*s^-2".
func (u Unit) String() string {
	if u == Dimensionless {
		return "dimensionless"
	}
	return fmt.Sprintf("mm^%d*s^%d", u.Millimeter, u.Second)
}

// AssertEqual returns ErrUnitMismatch when two units differ.
func (u Unit) AssertEqual(other Unit) error {
	if u != other {
		return errors.WrapInvalid(errors.ErrUnitMismatch, "Unit", "AssertEqual",
			fmt.Sprintf("%s vs %s", u, other))
	}
	return nil
}

// Quantity is a numeric value carrying a unit tag.
type Quantity struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

// New constructs a Quantity.
func New(value float64, unit Unit) Quantity {
	return Quantity{Value: value, Unit: unit}
}

// FromFloat wraps a plain number as a dimensionless quantity.
func FromFloat(value float64) Quantity {
	return Quantity{Value: value}
}

// FromTime converts a types.Time to a quantity in seconds.
func FromTime(t types.Time) Quantity {
	return Quantity{Value: t.Seconds(), Unit: Second}
}

// ToTime converts a quantity in seconds back to a types.Time. Any other
// unit is an error.
func (q Quantity) ToTime() (types.Time, error) {
	if q.Unit != Second {
		return 0, errors.WrapInvalid(errors.ErrNotASecond, "Quantity", "ToTime", q.Unit.String())
	}
	return types.FromSeconds(q.Value), nil
}

// Add combines two quantities of equal unit, failing fast on mismatch.
func (q Quantity) Add(other Quantity) (Quantity, error) {
	if err := q.Unit.AssertEqual(other.Unit); err != nil {
		return Quantity{}, err
	}
	return Quantity{Value: q.Value + other.Value, Unit: q.Unit}, nil
}

// Sub subtracts a quantity of equal unit, failing fast on mismatch.
func (q Quantity) Sub(other Quantity) (Quantity, error) {
	if err := q.Unit.AssertEqual(other.Unit); err != nil {
		return Quantity{}, err
	}
	return Quantity{Value: q.Value - other.Value, Unit: q.Unit}, nil
}

// Mul multiplies two quantities, combining units.
func (q Quantity) Mul(other Quantity) Quantity {
	return Quantity{Value: q.Value * other.Value, Unit: q.Unit.Mul(other.Unit)}
}

// Div divides two quantities, combining units.
func (q Quantity) Div(other Quantity) Quantity {
	return Quantity{Value: q.Value / other.Value, Unit: q.Unit.Div(other.Unit)}
}

// Scale multiplies by a dimensionless coefficient.
func (q Quantity) Scale(coefficient float64) Quantity {
	return Quantity{Value: q.Value * coefficient, Unit: q.Unit}
}

// Neg flips the sign.
func (q Quantity) Neg() Quantity {
	return Quantity{Value: -q.Value, Unit: q.Unit}
}

// Abs returns the magnitude with the same unit.
func (q Quantity) Abs() Quantity {
	return Quantity{Value: math.Abs(q.Value), Unit: q.Unit}
}

// String renders the quantity with its unit.
func (q Quantity) String() string {
	if q.Unit == Dimensionless {
		return fmt.Sprintf("%g", q.Value)
	}
	return fmt.Sprintf("%g %s", q.Value, q.Unit)
}
