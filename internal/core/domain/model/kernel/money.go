package kernel

import (
	"fmt"
	"math"
)

// Money is an exact amount in US cents. Arithmetic never goes through
// floating point, so adding and then subtracting the same amount always
// returns the original value.
type Money struct {
	cents int64
}

// Cents builds a Money from an integer number of cents.
func Cents(c int64) Money {
	return Money{cents: c}
}

// Dollars converts a decimal amount, rounding half away from zero to the cent.
func Dollars(d float64) Money {
	return Money{cents: int64(math.Round(d * 100))}
}

// Zero is the additive identity.
func Zero() Money {
	return Money{}
}

func (m Money) Cents() int64 {
	return m.cents
}

// Float is for display and JSON only.
func (m Money) Float() float64 {
	return float64(m.cents) / 100
}

func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

func (m Money) Sub(other Money) Money {
	return Money{cents: m.cents - other.cents}
}

// Times multiplies by a whole quantity.
func (m Money) Times(n int64) Money {
	return Money{cents: m.cents * n}
}

func (m Money) IsNegative() bool {
	return m.cents < 0
}

func (m Money) IsEqual(other Money) bool {
	return m.cents == other.cents
}

// String formats as "32.00" or "-7.05".
func (m Money) String() string {
	sign := ""
	c := m.cents
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s%d.%02d", sign, c/100, c%100)
}
