package pvmodel

// referenceCellTemp is the STC cell temperature in °C.
const referenceCellTemp = 25.0

// PVWattsDC returns the DC power in watts of a module with rated power
// pdc0 (W) and temperature coefficient gammaPDC (1/°C, negative for
// silicon) at the given plane-of-array irradiance and cell temperature.
func PVWattsDC(poa, cellTempC, pdc0, gammaPDC float64) float64 {
	if poa <= 0 {
		return 0
	}
	return poa / referenceIrradiance * pdc0 * (1 + gammaPDC*(cellTempC-referenceCellTemp))
}
