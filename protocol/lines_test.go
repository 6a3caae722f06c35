package protocol

import "testing"

func TestParseLine(t *testing.T) {
	tests := []struct {
		line  string
		kind  ReportKind
		temp  int32
		mv    uint32
		value uint32
	}{
		{line: "25c 3.50v\r\n", kind: ReportMonitor, temp: 25, mv: 3500},
		{line: "-05c 2.99v", kind: ReportMonitor, temp: -5, mv: 2990},
		{line: "123c 0.00v", kind: ReportMonitor, temp: 123, mv: 0},
		{line: "4294967295", kind: ReportRandom, value: 4294967295},
		{line: "0", kind: ReportRandom, value: 0},
		{line: "4294967296", kind: ReportOther},
		{line: "0123", kind: ReportOther},
		{line: "Echo mode on", kind: ReportConfirm},
		{line: "(leds) Operation stopped - waiting for next input", kind: ReportConfirm},
		{line: "LED blinker mode on", kind: ReportConfirm},
		{line: "TRNG not ready", kind: ReportNotReady},
		{line: "Menu for 5 user commands:", kind: ReportMenu},
		{line: "(moni) - runs temperature and battery monitoring", kind: ReportMenuItem},
		{line: "xyzw", kind: ReportOther},
		{line: "", kind: ReportOther},
	}

	for _, test := range tests {
		r := ParseLine(test.line)
		if r.Kind != test.kind {
			t.Errorf("ParseLine(%q): expected kind %s, got %s", test.line, test.kind, r.Kind)
			continue
		}
		if r.TempTenths != test.temp || r.Millivolts != test.mv || r.Value != test.value {
			t.Errorf("ParseLine(%q): got temp=%d mv=%d value=%d", test.line, r.TempTenths, r.Millivolts, r.Value)
		}
	}
}
