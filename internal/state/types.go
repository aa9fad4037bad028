package state

// NetworkKind classifies the current uplink.
type NetworkKind string

const (
	KindWired    NetworkKind = "wired"
	KindWiFi     NetworkKind = "wifi"
	KindMobile   NetworkKind = "mobile"
	KindNone     NetworkKind = "none"     // radio on, nothing connected
	KindDisabled NetworkKind = "disabled" // radio off, nothing connected
	KindUnknown  NetworkKind = "unknown"  // query failed
)

// Network glyphs
const (
	IconWired        = "󰈀"
	IconWiFi         = "󰤨"
	IconMobile       = "󰄜"
	IconDisconnected = "󰤭"
	IconWiFiOff      = "󰤮"
)

// NetworkStatus is the uplink summary shown on the network module.
type NetworkStatus struct {
	Connected    bool
	Kind         NetworkKind
	Name         string
	Icon         string
	RadioEnabled bool
	Active       []Connection
}

// Connection is an active NetworkManager connection.
type Connection struct {
	Name string
	Kind NetworkKind
}

// WiFiNetwork is one visible access point.
type WiFiNetwork struct {
	SSID     string
	Signal   int
	Security string
	InUse    bool
}

// BluetoothDevice is a known or connected device.
type BluetoothDevice struct {
	Address   string
	Name      string
	Paired    bool
	Connected bool
}

// Defaults returned when a lookup fails.
const (
	DefaultPowerProfile = "balanced"
	DefaultVolume       = 50
	DefaultBrightness   = 50
	DefaultBattery      = 88
	DefaultColor        = "#000000"
)

// DefaultPowerProfiles is returned when powerprofilesctl cannot be listed.
var DefaultPowerProfiles = []string{"performance", "balanced", "power-saver"}

// UnknownNetwork is the NetworkStatus default.
func UnknownNetwork() NetworkStatus {
	return NetworkStatus{
		Connected: false,
		Kind:      KindUnknown,
		Name:      "Unknown",
		Icon:      IconDisconnected,
	}
}

// Request selects the detail lists a snapshot fetches on top of the
// always-read summary values. Detail lists are only needed while the
// owning section is expanded.
type Request uint8

const (
	WiFiList Request = 1 << iota
	BluetoothList
	ProfileList
	ColorValue

	// Summary fetches no detail lists.
	Summary Request = 0
	// Everything fetches all detail lists.
	Everything = WiFiList | BluetoothList | ProfileList | ColorValue
)

// Has reports whether every bit of o is set in r.
func (r Request) Has(o Request) bool {
	return r&o == o
}

// Snapshot is one consistent read of every facility needed for a rebuild.
// Detail fields are zero unless requested.
type Snapshot struct {
	Network          NetworkStatus
	BluetoothPowered bool
	PowerProfile     string
	NightLight       bool
	DarkStyle        bool
	AirplaneMode     bool
	Volume           int
	Brightness       int
	Battery          int

	WiFiNetworks     []WiFiNetwork
	BluetoothDevices []BluetoothDevice
	PowerProfiles    []string
	LastColor        string

	// Request records which detail lists were fetched.
	Request Request
}
