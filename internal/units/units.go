// ABOUTME: Unit registry with dimensions and exact rational conversions.
// ABOUTME: Provides Parse, Compatible, Convert, and the ordered fallback unit list.
package units

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/shopspring/decimal"
)

// Dimension groups units that can be converted into one another.
type Dimension string

const (
	Mass          Dimension = "mass"
	Length        Dimension = "length"
	Volume        Dimension = "volume"
	Time          Dimension = "time"
	Energy        Dimension = "energy"
	Temperature   Dimension = "temperature"
	Conductance   Dimension = "conductance"
	Frequency     Dimension = "frequency"
	Voltage       Dimension = "voltage"
	Power         Dimension = "power"
	Angle         Dimension = "angle"
	Illuminance   Dimension = "illuminance"
	Count         Dimension = "count"
	Percent       Dimension = "percent"
	Rate          Dimension = "rate"
	Pressure      Dimension = "pressure"
	SoundLevel    Dimension = "sound_level"
	Speed         Dimension = "speed"
	Concentration Dimension = "concentration"
	FlowRate      Dimension = "flow_rate"
	OxygenUptake  Dimension = "oxygen_uptake"
	EnergyRate    Dimension = "energy_rate"
	Pharmacology  Dimension = "pharmacology"
)

// ErrUnknownUnit is returned by Parse for symbols outside the registry.
var ErrUnknownUnit = errors.New("unknown unit")

// ErrIncompatible is returned by Convert when the dimensions differ.
var ErrIncompatible = errors.New("incompatible units")

// ErrNotFinite is returned by Convert for NaN and infinite values.
var ErrNotFinite = errors.New("value is not a finite number")

// Unit is a measurement unit. A value v in this unit equals
// (v + offset) * num / den in the dimension's base unit.
type Unit struct {
	Symbol    string
	Name      string
	Dimension Dimension

	num    decimal.Decimal
	den    decimal.Decimal
	offset decimal.Decimal
}

// String returns the unit symbol.
func (u Unit) String() string {
	return u.Symbol
}

// IsZero reports whether u is the zero Unit.
func (u Unit) IsZero() bool {
	return u.Symbol == ""
}

func linear(symbol, name string, dim Dimension, num, den string) Unit {
	return Unit{
		Symbol:    symbol,
		Name:      name,
		Dimension: dim,
		num:       decimal.RequireFromString(num),
		den:       decimal.RequireFromString(den),
		offset:    decimal.Zero,
	}
}

func affine(symbol, name string, dim Dimension, num, den, offset string) Unit {
	u := linear(symbol, name, dim, num, den)
	u.offset = decimal.RequireFromString(offset)
	return u
}

var all = []Unit{
	// Mass, base gram
	linear("g", "gram", Mass, "1", "1"),
	linear("kg", "kilogram", Mass, "1000", "1"),
	linear("mg", "milligram", Mass, "1", "1000"),
	linear("mcg", "microgram", Mass, "1", "1000000"),
	linear("oz", "ounce", Mass, "28.349523125", "1"),
	linear("lb", "pound", Mass, "453.59237", "1"),
	linear("st", "stone", Mass, "6350.29318", "1"),

	// Length, base meter
	linear("m", "meter", Length, "1", "1"),
	linear("cm", "centimeter", Length, "1", "100"),
	linear("mm", "millimeter", Length, "1", "1000"),
	linear("km", "kilometer", Length, "1000", "1"),
	linear("in", "inch", Length, "0.0254", "1"),
	linear("ft", "foot", Length, "0.3048", "1"),
	linear("yd", "yard", Length, "0.9144", "1"),
	linear("mi", "mile", Length, "1609.344", "1"),

	// Volume, base liter
	linear("L", "liter", Volume, "1", "1"),
	linear("mL", "milliliter", Volume, "1", "1000"),
	linear("fl_oz_us", "fluid ounce (US)", Volume, "0.0295735295625", "1"),
	linear("fl_oz_imp", "fluid ounce (imperial)", Volume, "0.0284130625", "1"),
	linear("pt_us", "pint (US)", Volume, "0.473176473", "1"),
	linear("pt_imp", "pint (imperial)", Volume, "0.56826125", "1"),

	// Time, base second
	linear("s", "second", Time, "1", "1"),
	linear("ms", "millisecond", Time, "1", "1000"),
	linear("min", "minute", Time, "60", "1"),
	linear("hr", "hour", Time, "3600", "1"),
	linear("d", "day", Time, "86400", "1"),

	// Energy, base joule
	linear("J", "joule", Energy, "1", "1"),
	linear("kJ", "kilojoule", Energy, "1000", "1"),
	linear("kcal", "kilocalorie", Energy, "4184", "1"),
	linear("Cal", "large calorie", Energy, "4184", "1"),
	linear("cal", "small calorie", Energy, "4.184", "1"),

	// Temperature, base kelvin
	linear("K", "kelvin", Temperature, "1", "1"),
	affine("degC", "degree Celsius", Temperature, "1", "1", "273.15"),
	affine("degF", "degree Fahrenheit", Temperature, "5", "9", "459.67"),

	linear("S", "siemens", Conductance, "1", "1"),
	linear("mcS", "microsiemens", Conductance, "1", "1000000"),
	linear("Hz", "hertz", Frequency, "1", "1"),
	linear("V", "volt", Voltage, "1", "1"),
	linear("W", "watt", Power, "1", "1"),
	linear("rad", "radian", Angle, "1", "1"),
	linear("deg", "degree", Angle, "0.017453292519943295", "1"),
	linear("lx", "lux", Illuminance, "1", "1"),

	linear("count", "count", Count, "1", "1"),
	linear("%", "percent", Percent, "1", "1"),
	linear("count/min", "count per minute", Rate, "1", "1"),
	linear("count/s", "count per second", Rate, "60", "1"),
	linear("mmHg", "millimeter of mercury", Pressure, "1", "1"),
	linear("cmAq", "centimeter of water", Pressure, "0.73555924", "1"),
	linear("dBASPL", "decibel A-weighted SPL", SoundLevel, "1", "1"),
	linear("m/s", "meter per second", Speed, "1", "1"),
	linear("km/hr", "kilometer per hour", Speed, "1000", "3600"),
	linear("mi/hr", "mile per hour", Speed, "1609.344", "3600"),
	linear("mg/dL", "milligram per deciliter", Concentration, "1", "1"),
	linear("L/min", "liter per minute", FlowRate, "1", "1"),
	linear("mL/(kg*min)", "milliliter per kilogram per minute", OxygenUptake, "1", "1"),
	linear("kcal/(kg*hr)", "kilocalorie per kilogram per hour", EnergyRate, "1", "1"),
	linear("IU", "international unit", Pharmacology, "1", "1"),
}

var (
	registry = map[string]Unit{}
	aliases  = map[string]string{
		"gram":  "g",
		"grams": "g",
		"kgs":   "kg",
		"lbs":   "lb",
		"pound": "lb",
		"ml":    "mL",
		"l":     "L",
		"°C":    "degC",
		"°F":    "degF",
		"bpm":   "count/min",
		"steps": "count",
		"hours": "hr",
		"h":     "hr",
		"sec":   "s",
		"kmh":   "km/hr",
		"mph":   "mi/hr",
	}
)

func init() {
	for _, u := range all {
		if _, dup := registry[u.Symbol]; dup {
			panic(fmt.Sprintf("units: duplicate symbol %q", u.Symbol))
		}
		registry[u.Symbol] = u
	}
}

// Parse looks up a unit by symbol or alias.
func Parse(symbol string) (Unit, error) {
	if u, ok := registry[symbol]; ok {
		return u, nil
	}
	if canonical, ok := aliases[symbol]; ok {
		return registry[canonical], nil
	}
	return Unit{}, fmt.Errorf("%w: %q", ErrUnknownUnit, symbol)
}

// MustParse is like Parse but panics on unknown symbols.
func MustParse(symbol string) Unit {
	u, err := Parse(symbol)
	if err != nil {
		panic(err)
	}
	return u
}

// Symbols returns every registered unit symbol, sorted.
func Symbols() []string {
	out := make([]string, 0, len(registry))
	for s := range registry {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Compatible reports whether a value in a can be expressed in b.
func Compatible(a, b Unit) bool {
	return !a.IsZero() && a.Dimension == b.Dimension
}

// Convert expresses v, measured in from, in the unit to.
func Convert(v float64, from, to Unit) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %v", ErrNotFinite, v)
	}
	if from.Symbol == to.Symbol {
		return v, nil
	}
	if !Compatible(from, to) {
		return 0, fmt.Errorf("%w: %s to %s", ErrIncompatible, from.Symbol, to.Symbol)
	}

	base := decimal.NewFromFloat(v).Add(from.offset).Mul(from.num).Div(from.den)
	out := base.Mul(to.den).Div(to.num).Sub(to.offset)
	return out.InexactFloat64(), nil
}

var fallbackSymbols = []string{
	"g", "oz", "lb", "st",
	"m", "in", "ft", "mi",
	"L", "fl_oz_us", "fl_oz_imp", "pt_us", "pt_imp",
	"s", "min", "hr", "d",
	"J", "kcal",
	"degC", "degF", "K",
	"S",
	"Hz",
	"V",
	"W",
	"rad", "deg",
	"lx",
}

// DefaultFallback returns the ordered list of units tried when a metric
// has no preferred unit. The first compatible entry wins.
func DefaultFallback() []Unit {
	out := make([]Unit, len(fallbackSymbols))
	for i, s := range fallbackSymbols {
		out[i] = MustParse(s)
	}
	return out
}
