// internal/status/constants.go
package status

// Node Status Block layout constants.
// These values define the mirror protocol and MUST NOT be configurable.

// ---- BLOCK GEOMETRY ----

// SlotsPerNode is the fixed number of registers per node.
const SlotsPerNode = 24

// ---- LIVE SLOTS (rewritten incrementally) ----

// SlotStatusCode holds the host-link status.
const SlotStatusCode = 0

// SlotLights holds the indicator bitmap: bit 0 rx, 1 tx, 2 serial, 3 status.
const SlotLights = 1

// SlotUptime holds seconds since boot, saturating.
const SlotUptime = 2

// Slots 3-4 are reserved.

// ---- IDENTITY SLOTS (full assert only) ----

// SlotEUIStart is the first of four registers holding the EUI-64, big-endian.
const SlotEUIStart = 5

const SlotEUISlots = 4

const SlotChannel = 9
const SlotPanID = 10
const SlotPanAddr = 11
const SlotTxPower = 12

// Slots 13-15 are reserved.

// ---- HOSTNAME ----

// SlotHostnameStart is the first slot used for the hostname.
// The hostname is always placed at the END of the block.
const SlotHostnameStart = 16

// SlotHostnameSlots is the number of slots reserved for the hostname.
const SlotHostnameSlots = 8

// SlotHostnameEnd is the last slot used for the hostname (inclusive).
const SlotHostnameEnd = SlotHostnameStart + SlotHostnameSlots - 1

// ---- LIMITS ----

// HostnameMaxChars is the maximum number of ASCII characters stored for the hostname.
const HostnameMaxChars = 16

// UptimeMax is where the uptime slot stops counting.
const UptimeMax = 65535

// ---- STATUS CODES ----

// CodeBooting is written before the indicator has rendered anything.
const CodeBooting uint16 = 0

// CodeUnenumerated: the host has not configured the adapter.
const CodeUnenumerated uint16 = 1

// CodeInactive: enumerated, network interface down.
const CodeInactive uint16 = 2

// CodeReady: host interface up.
const CodeReady uint16 = 3
