package core

// MaxDecimalDigits is the digit count of the largest uint32, 4294967295
const MaxDecimalDigits = 10

// fails to compile if the buffer cannot hold every uint32
var _ [MaxDecimalDigits - len("4294967295")]byte

// Decimal is a uint32 rendered in base 10, most significant digit first
type Decimal struct {
	digits [MaxDecimalDigits]byte
	n      uint8
}

// FormatU32Decimal renders v without leading zeros; zero renders as "0"
func FormatU32Decimal(v uint32) Decimal {
	// Digits come out least significant first
	var rev [MaxDecimalDigits]byte
	n := 0
	for {
		rev[n] = byte('0' + v%10)
		n++
		v /= 10
		if v == 0 {
			break
		}
	}

	var d Decimal
	for i := 0; i < n; i++ {
		d.digits[i] = rev[n-1-i]
	}
	d.n = uint8(n)
	return d
}

// Bytes returns the digits. The slice aliases d.
func (d *Decimal) Bytes() []byte {
	return d.digits[:d.n]
}

// Len returns the number of digits
func (d Decimal) Len() int {
	return int(d.n)
}

func (d Decimal) String() string {
	return string(d.digits[:d.n])
}

// SensorReading is one monitor sample
type SensorReading struct {
	TemperatureC int32  // scaled by 10
	VoltageRaw   uint32 // 3.8 fixed point, bits 10:8 integer, 7:0 fraction
}

// FormatVoltage splits a 3.8 fixed point battery reading into its integer
// volts and two decimal digits of the fraction (fraction*100/256). Readings
// past 7.99 V saturate.
func FormatVoltage(raw uint32) (intPart, d1, d2 uint8) {
	if raw > maxFixedVoltage {
		raw = maxFixedVoltage
	}
	intPart = uint8(raw >> 8)
	frac := ((raw & 0xFF) * 100) / 256
	return intPart, uint8(frac / 10), uint8(frac % 10)
}

// FormatTemperature splits a temperature scaled by 10 into sign, integer
// part and one fractional digit
func FormatTemperature(raw int32) (neg bool, intPart uint32, frac uint8) {
	mag := uint32(raw)
	if raw < 0 {
		neg = true
		mag = uint32(-int64(raw))
	}
	return neg, mag / 10, uint8(mag % 10)
}

// AppendMonitorLine appends "<int><frac>c <v>.<f1><f2>v\r\n"
func AppendMonitorLine(dst []byte, r SensorReading) []byte {
	neg, ip, frac := FormatTemperature(r.TemperatureC)
	if neg {
		dst = append(dst, '-')
	}
	d := FormatU32Decimal(ip)
	dst = append(dst, d.Bytes()...)
	dst = append(dst, '0'+frac, 'c', ' ')

	vi, v1, v2 := FormatVoltage(r.VoltageRaw)
	dst = append(dst, '0'+vi, '.', '0'+v1, '0'+v2, 'v')
	return append(dst, LineEnd...)
}

// AppendRandomLine appends v in decimal followed by a line end
func AppendRandomLine(dst []byte, v uint32) []byte {
	d := FormatU32Decimal(v)
	dst = append(dst, d.Bytes()...)
	return append(dst, LineEnd...)
}

// itoa converts an integer to a string without using fmt package
// This is a lightweight alternative for embedded systems
func itoa(n int) string {
	if n < 0 {
		return "-" + utoa(uint32(-n))
	}
	return utoa(uint32(n))
}

// utoa converts an unsigned integer to a string
func utoa(n uint32) string {
	return FormatU32Decimal(n).String()
}
