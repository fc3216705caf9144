package sim

// Temperature is tracked internally in milli-degrees Celsius, the unit the
// Tilt hardware works in, and converted back to Fahrenheit for reporting.
// The initial conversion truncates to a whole milli-degree; per-tick
// increments stay fractional.

func fahrenheitToMilliCelsius(f float64) float64 {
	return float64(int64((f - 32) * 5 / 9 * 1000))
}

func milliCelsiusToFahrenheit(mc float64) float64 {
	return mc/1000*9/5 + 32
}
