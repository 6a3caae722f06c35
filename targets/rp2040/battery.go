//go:build rp2040

package main

import (
	"device/rp"
	"errors"
	"machine"
	"sync"

	"tinygo.org/x/drivers/ina260"

	"serialmodes/core"
)

// ADC channels on the RP2040
const (
	adcVSYS = 3 // GPIO29, VSYS through a 3:1 divider
	adcTemp = 4 // on-die temperature sensor

	vsysDivider = 3
	ina260Freq  = 400000
)

// RPADCDriver implements core.ADCDriver using TinyGo's machine.ADC.
type RPADCDriver struct {
	mu       sync.Mutex // conversions share one ADC
	channels map[core.ADCChannel]*machine.ADC
}

// NewRPADCDriver powers up the ADC
func NewRPADCDriver() *RPADCDriver {
	machine.InitADC()
	return &RPADCDriver{channels: make(map[core.ADCChannel]*machine.ADC)}
}

// ConfigureChannel sets up a specific ADC channel (pin mux, etc.).
func (d *RPADCDriver) ConfigureChannel(ch core.ADCChannel) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	// The temperature sensor has no pin; rawInternalTemp drives it directly
	if ch == adcTemp {
		return nil
	}
	if _, ok := d.channels[ch]; ok {
		return nil
	}

	var adc machine.ADC
	switch ch {
	case 0:
		adc = machine.ADC{Pin: machine.ADC0}
	case 1:
		adc = machine.ADC{Pin: machine.ADC1}
	case 2:
		adc = machine.ADC{Pin: machine.ADC2}
	case 3:
		adc = machine.ADC{Pin: machine.ADC3}
	default:
		return errors.New("unsupported ADC channel")
	}
	if err := adc.Configure(machine.ADCConfig{}); err != nil {
		return err
	}
	d.channels[ch] = &adc
	return nil
}

// ReadRaw returns a 16-bit scaled sample
func (d *RPADCDriver) ReadRaw(ch core.ADCChannel) (core.ADCValue, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if ch == adcTemp {
		return core.ADCValue(rawInternalTemp() << 4), nil
	}
	adc, ok := d.channels[ch]
	if !ok {
		return 0, errors.New("ADC channel not configured")
	}
	// machine.ADC.Get already scales to 16 bits
	return core.ADCValue(adc.Get()), nil
}

// rawInternalTemp returns the 12-bit raw ADC value from the internal temp sensor (0–4095).
func rawInternalTemp() uint16 {
	// Ensure ADC is initialized
	if rp.ADC.CS.Get()&rp.ADC_CS_EN == 0 {
		machine.InitADC()
	}

	// Enable temperature sensor
	rp.ADC.CS.SetBits(rp.ADC_CS_TS_EN)

	// Select ADC channel 4 (internal temperature sensor)
	rp.ADC.CS.ReplaceBits(
		uint32(adcTemp)<<rp.ADC_CS_AINSEL_Pos,
		rp.ADC_CS_AINSEL_Msk,
		0,
	)

	// Start a single conversion
	rp.ADC.CS.SetBits(rp.ADC_CS_START_ONCE)

	// Wait until conversion is ready
	for !rp.ADC.CS.HasBits(rp.ADC_CS_READY) {
	}

	return uint16(rp.ADC.RESULT.Get())
}

// Battery implements core.BatteryMonitor. Voltage comes from an INA260 on
// I2C0 when one answers, otherwise from the VSYS divider; temperature always
// comes from the on-die sensor.
type Battery struct {
	*core.ADCBattery

	mu  sync.Mutex
	ina *ina260.Device
}

// NewBattery probes for an INA260 and sets up the ADC path
func NewBattery() (*Battery, error) {
	adc, err := core.NewADCBattery(NewRPADCDriver(), adcVSYS, adcTemp, vsysDivider)
	if err != nil {
		return nil, err
	}
	b := &Battery{ADCBattery: adc}

	if err := machine.I2C0.Configure(machine.I2CConfig{Frequency: ina260Freq}); err == nil {
		dev := ina260.New(machine.I2C0)
		if dev.Connected() {
			dev.Configure(ina260.Config{})
			b.ina = &dev
			core.DebugPrintln("battery: using INA260")
		}
	}
	return b, nil
}

// VoltageRaw implements core.BatteryMonitor
func (b *Battery) VoltageRaw() uint32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ina != nil {
		// Voltage is in microvolts
		if uv := b.ina.Voltage(); uv > 0 {
			return core.MillivoltsToFixed(uint32(uv / 1000))
		}
	}
	return b.ADCBattery.VoltageRaw()
}
