package boot

// Stage is one step of bring-up. Stages run in declaration order, once.
type Stage int

const (
	StageWatchdog Stage = iota + 1
	StageClock
	StageRuntime
	StageRadio
	StageSeed
	StageIdentity
	StageRadioParams
	StageRDC
	StageMAC
	StageNetwork
	StageNetProcess
	StageAutostart
)

var stageNames = map[Stage]string{
	StageWatchdog:    "watchdog",
	StageClock:       "clock",
	StageRuntime:     "runtime",
	StageRadio:       "radio",
	StageSeed:        "seed",
	StageIdentity:    "identity",
	StageRadioParams: "radio-params",
	StageRDC:         "rdc",
	StageMAC:         "mac",
	StageNetwork:     "network",
	StageNetProcess:  "net-process",
	StageAutostart:   "autostart",
}

func (s Stage) String() string {
	if n, ok := stageNames[s]; ok {
		return n
	}
	return "unknown"
}
