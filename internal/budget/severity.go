// Package budget evaluates spending against budget limits and progress
// towards saving goals.
package budget

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"fintrack/internal/core"
)

const (
	Normal Tier = iota
	Caution
	Warning
	Critical
)

// Lower bounds, in percent, of each tier above Normal.
const (
	CautionPercent  = 50
	WarningPercent  = 75
	CriticalPercent = 90
)

// ErrDivisionUndefined is returned when a ratio is requested against a zero
// limit or target.
var ErrDivisionUndefined = errors.New("division undefined: limit is zero")

var hundred = decimal.NewFromInt(100)

// Tier is the severity of a budget's spending, from Normal to Critical.
type Tier int

func (t Tier) String() string {
	switch t {
	case Normal:
		return "Normal"
	case Caution:
		return "Caution"
	case Warning:
		return "Warning"
	case Critical:
		return "Critical"
	}
	return fmt.Sprintf("Tier(%d)", int(t))
}

// Color is the progress-bar fill used for the tier.
func (t Tier) Color() string {
	switch t {
	case Caution:
		return "yellow"
	case Warning:
		return "orange"
	case Critical:
		return "red"
	}
	return "green"
}

// MarshalText encodes the tier by name.
func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// SeverityTier maps spent/limit*100 onto a tier using inclusive lower bounds:
// >=90 Critical, >=75 Warning, >=50 Caution, otherwise Normal. The comparison
// is exact, so 90.00% is never rounded below 90 and large amounts cannot
// overflow.
func SeverityTier(spent, limit core.Money) (Tier, error) {
	if limit.Cents == 0 {
		return Normal, ErrDivisionUndefined
	}
	if limit.Cents < 0 {
		return Normal, fmt.Errorf("budget limit %s: %w", limit, core.ErrInvalidAmount)
	}
	// spent/limit*100 >= p  <=>  spent*100 >= p*limit
	scaled := decimal.NewFromInt(spent.Cents).Mul(hundred)
	lim := decimal.NewFromInt(limit.Cents)
	reaches := func(percent int64) bool {
		return scaled.GreaterThanOrEqual(lim.Mul(decimal.NewFromInt(percent)))
	}
	switch {
	case reaches(CriticalPercent):
		return Critical, nil
	case reaches(WarningPercent):
		return Warning, nil
	case reaches(CautionPercent):
		return Caution, nil
	}
	return Normal, nil
}

// Percentage returns spent/limit*100.
func Percentage(spent, limit core.Money) (decimal.Decimal, error) {
	if limit.Cents == 0 {
		return decimal.Zero, ErrDivisionUndefined
	}
	return decimal.NewFromInt(spent.Cents).Mul(hundred).Div(decimal.NewFromInt(limit.Cents)), nil
}

// FillPercent is Percentage clamped to [0, 100] for a progress bar.
func FillPercent(spent, limit core.Money) (decimal.Decimal, error) {
	p, err := Percentage(spent, limit)
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.Min(decimal.Max(p, decimal.Zero), hundred), nil
}
