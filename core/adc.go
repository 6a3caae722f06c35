// ADC battery and die temperature monitor
package core

// ADCBattery defaults
const (
	DefaultADCRefMilliVolts = 3300
	DefaultADCSamples       = 8

	// RP2040 die sensor: 0.706 V at 27 C, falling 1.721 mV per degree
	tempSensorMicroVoltsAt27 = 706000
	tempSensorMicroVoltsPerC = 1721

	maxFixedVoltage = 0x7FF // 3 integer bits, 8 fraction bits
)

// ADCBattery implements BatteryMonitor from two ADC channels: the supply
// through a resistor divider and the on-die temperature sensor. Each
// reading averages Samples conversions.
type ADCBattery struct {
	driver ADCDriver
	supply ADCChannel
	temp   ADCChannel

	RefMilliVolts uint32 // ADC reference
	Divider       uint32 // supply divider ratio, 3 for VSYS/3
	Samples       uint8  // conversions averaged per reading
}

// NewADCBattery configures both channels
func NewADCBattery(d ADCDriver, supply, temp ADCChannel, divider uint32) (*ADCBattery, error) {
	for _, ch := range []ADCChannel{supply, temp} {
		if err := d.ConfigureChannel(ch); err != nil {
			return nil, err
		}
	}
	if divider == 0 {
		divider = 1
	}
	return &ADCBattery{
		driver:        d,
		supply:        supply,
		temp:          temp,
		RefMilliVolts: DefaultADCRefMilliVolts,
		Divider:       divider,
		Samples:       DefaultADCSamples,
	}, nil
}

// sample averages Samples readings; failed conversions are skipped
func (b *ADCBattery) sample(ch ADCChannel) (uint32, bool) {
	n := uint32(b.Samples)
	if n == 0 {
		n = 1
	}
	var sum, good uint32
	for i := uint32(0); i < n; i++ {
		v, err := b.driver.ReadRaw(ch)
		if err != nil {
			continue
		}
		sum += uint32(v)
		good++
	}
	if good == 0 {
		DebugAsync("adc: channel " + utoa(uint32(ch)) + " unreadable")
		return 0, false
	}
	return sum / good, true
}

// Millivolts returns the supply voltage
func (b *ADCBattery) Millivolts() uint32 {
	raw, ok := b.sample(b.supply)
	if !ok {
		return 0
	}
	return uint32(uint64(raw) * uint64(b.RefMilliVolts) * uint64(b.Divider) / ADCFullScale)
}

// VoltageRaw implements BatteryMonitor
func (b *ADCBattery) VoltageRaw() uint32 {
	return MillivoltsToFixed(b.Millivolts())
}

// TemperatureC implements BatteryMonitor
func (b *ADCBattery) TemperatureC() int32 {
	raw, ok := b.sample(b.temp)
	if !ok {
		return 0
	}
	uv := int64(raw) * int64(b.RefMilliVolts) * 1000 / ADCFullScale
	return int32(270 - (uv-tempSensorMicroVoltsAt27)*10/tempSensorMicroVoltsPerC)
}

// MillivoltsToFixed converts millivolts to the 3.8 fixed point battery
// reading, rounding to nearest. Readings past 7.99 V saturate.
func MillivoltsToFixed(mv uint32) uint32 {
	v := (uint64(mv)*256 + 500) / 1000
	if v > maxFixedVoltage {
		v = maxFixedVoltage
	}
	return uint32(v)
}
