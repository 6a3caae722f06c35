package core

import (
	"errors"
	"testing"
)

// fakeADC returns fixed readings per channel
type fakeADC struct {
	values     map[ADCChannel][]ADCValue
	configured []ADCChannel
	reads      int
}

func (a *fakeADC) ConfigureChannel(ch ADCChannel) error {
	if _, ok := a.values[ch]; !ok {
		return errors.New("no such channel")
	}
	a.configured = append(a.configured, ch)
	return nil
}

func (a *fakeADC) ReadRaw(ch ADCChannel) (ADCValue, error) {
	vals := a.values[ch]
	if len(vals) == 0 {
		return 0, errors.New("conversion failed")
	}
	v := vals[a.reads%len(vals)]
	a.reads++
	return v, nil
}

func TestADCBatteryVoltage(t *testing.T) {
	// 3500 mV through a 3:1 divider is 1166.67 mV at the pin
	pin := ADCValue(uint64(1166670) * ADCFullScale / 3300000)
	adc := &fakeADC{values: map[ADCChannel][]ADCValue{3: {pin}, 4: {0}}}

	b, err := NewADCBattery(adc, 3, 4, 3)
	if err != nil {
		t.Fatalf("NewADCBattery: %v", err)
	}
	if len(adc.configured) != 2 {
		t.Errorf("Configured %v, want both channels", adc.configured)
	}

	mv := b.Millivolts()
	if mv < 3495 || mv > 3500 {
		t.Errorf("Millivolts = %d, want about 3500", mv)
	}

	line := string(AppendMonitorLine(nil, SensorReading{VoltageRaw: MillivoltsToFixed(3500)}))
	if line != "00c 3.50v\r\n" {
		t.Errorf("Monitor line = %q", line)
	}
}

func TestADCBatteryAverages(t *testing.T) {
	adc := &fakeADC{values: map[ADCChannel][]ADCValue{0: {1000, 3000}, 4: {0}}}
	b, err := NewADCBattery(adc, 0, 4, 1)
	if err != nil {
		t.Fatalf("NewADCBattery: %v", err)
	}
	b.Samples = 4
	raw, ok := b.sample(0)
	if !ok || raw != 2000 {
		t.Errorf("sample = %d %v, want 2000", raw, ok)
	}
}

func TestADCBatteryTemperature(t *testing.T) {
	// 0.706 V on the sensor is 27.0 C
	sensor := ADCValue(uint64(706000) * ADCFullScale / 3300000)
	adc := &fakeADC{values: map[ADCChannel][]ADCValue{0: {0}, 4: {sensor}}}
	b, err := NewADCBattery(adc, 0, 4, 3)
	if err != nil {
		t.Fatalf("NewADCBattery: %v", err)
	}
	if temp := b.TemperatureC(); temp < 269 || temp > 271 {
		t.Errorf("TemperatureC = %d, want about 270", temp)
	}
}

func TestADCBatteryUnreadable(t *testing.T) {
	adc := &fakeADC{values: map[ADCChannel][]ADCValue{0: {}, 4: {}}}
	b, err := NewADCBattery(adc, 0, 4, 3)
	if err != nil {
		t.Fatalf("NewADCBattery: %v", err)
	}
	if b.VoltageRaw() != 0 || b.TemperatureC() != 0 {
		t.Errorf("Unreadable channels should read as zero")
	}

	if _, err := NewADCBattery(adc, 0, 9, 3); err == nil {
		t.Errorf("Unknown channel should fail to configure")
	}
}

func TestMillivoltsToFixed(t *testing.T) {
	cases := map[uint32]uint32{0: 0, 3500: 3<<8 | 128, 4000: 4 << 8, 7999: 2048 - 1}
	for mv, want := range cases {
		if got := MillivoltsToFixed(mv); got != want {
			t.Errorf("MillivoltsToFixed(%d) = %d, want %d", mv, got, want)
		}
	}
}
