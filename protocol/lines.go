package protocol

import (
	"regexp"
	"strconv"
	"strings"
)

// ReportKind classifies one line of console output
type ReportKind uint8

const (
	ReportOther    ReportKind = iota
	ReportMenu                // "Menu for N user commands:"
	ReportMenuItem            // "(name) - help"
	ReportConfirm             // command acknowledgement
	ReportMonitor             // "25c 3.50v"
	ReportRandom              // decimal TRNG word
	ReportNotReady            // TRNG timed out
)

func (k ReportKind) String() string {
	switch k {
	case ReportMenu:
		return "menu"
	case ReportMenuItem:
		return "menu_item"
	case ReportConfirm:
		return "confirm"
	case ReportMonitor:
		return "monitor"
	case ReportRandom:
		return "random"
	case ReportNotReady:
		return "not_ready"
	}
	return "other"
}

// Report is one parsed console line
type Report struct {
	Kind ReportKind
	Line string

	// Monitor readings as printed
	TempTenths int32  // "25c" -> 25, "-05c" -> -5
	Millivolts uint32 // "3.50v" -> 3500

	// Random value
	Value uint32
}

var (
	monitorLine = regexp.MustCompile(`^(-?)(\d+)c (\d)\.(\d)(\d)v$`)
	menuItem    = regexp.MustCompile(`^\(([a-z]{4})\) - .+$`)

	confirmations = map[string]bool{
		strings.TrimSuffix(TextEchoOn, LineEnd):  true,
		strings.TrimSuffix(TextEchoOff, LineEnd): true,
		strings.TrimSuffix(TextStopped, LineEnd): true,
		strings.TrimSuffix(TextMoniOn, LineEnd):  true,
		strings.TrimSuffix(TextTrngOn, LineEnd):  true,
		"LED blinker mode on":                     true,
		"Please use (stop) to safely stop the blinker mode and return to the main menu": true,
	}
)

// ParseLine classifies one line with its line end removed. The blinker
// prompt has no line end of its own, so it is stripped from the front of
// whatever line follows it.
func ParseLine(line string) Report {
	line = strings.TrimRight(line, "\r\n")
	for strings.HasPrefix(line, LedsPrompt) && !strings.HasPrefix(line[len(LedsPrompt):], "- ") {
		line = line[len(LedsPrompt):]
	}
	r := Report{Kind: ReportOther, Line: line}

	switch {
	case line == "":
		return r
	case confirmations[line]:
		r.Kind = ReportConfirm
	case line == strings.TrimSuffix(TextRNGNotReady, LineEnd):
		r.Kind = ReportNotReady
	case strings.HasPrefix(line, MenuHeaderPrefix):
		r.Kind = ReportMenu
	case menuItem.MatchString(line):
		r.Kind = ReportMenuItem
	default:
		if m := monitorLine.FindStringSubmatch(line); m != nil {
			temp, err := strconv.ParseInt(m[2], 10, 32)
			if err != nil {
				return r
			}
			if m[1] == "-" {
				temp = -temp
			}
			r.Kind = ReportMonitor
			r.TempTenths = int32(temp)
			r.Millivolts = uint32(m[3][0]-'0')*1000 + uint32(m[4][0]-'0')*100 + uint32(m[5][0]-'0')*10
			return r
		}
		if isDecimal(line) {
			if v, err := strconv.ParseUint(line, 10, 32); err == nil {
				r.Kind = ReportRandom
				r.Value = uint32(v)
			}
		}
	}
	return r
}

// isDecimal reports whether s is a canonical uint32 rendering: 1 to 10
// digits and no leading zero unless s is "0"
func isDecimal(s string) bool {
	if len(s) == 0 || len(s) > 10 {
		return false
	}
	if len(s) > 1 && s[0] == '0' {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
