package mdns

import (
	"fmt"
	"net"
	"sync"

	"github.com/enbility/telemetry-go/api"
	"github.com/enbility/telemetry-go/logging"
)

const (
	telemetryZeroConfServiceType = "_telemetry._tcp"
	telemetryZeroConfDomain      = "local."

	// version of the TXT record layout
	txtVersion = "1"
)

// Announces the websocket endpoint of the service via mDNS
type Announcer struct {
	// the name to be used as the mDNS instance name
	instanceName string

	// the port address of the websocket server
	port int

	// the path of the websocket endpoint
	path string

	// the number of devices served
	deviceCount int

	// Network interface to use for the service
	// Optional, if not set all detected interfaces will be used
	ifaces []string

	isAnnounced bool

	mdnsProvider api.MdnsProviderInterface

	shutdownOnce sync.Once

	mux sync.Mutex
}

// Create a new announcer
//
// Parameters:
//   - instanceName: the name to be used as the mDNS instance name
//   - port: the port address of the websocket server
//   - path: the path of the websocket endpoint
//   - deviceCount: the number of devices in the catalog
//   - ifaces: the network interfaces to use for the service or empty if all to be used
func NewAnnouncer(instanceName string, port int, path string, deviceCount int, ifaces []string) *Announcer {
	return &Announcer{
		instanceName: instanceName,
		port:         port,
		path:         path,
		deviceCount:  deviceCount,
		ifaces:       ifaces,
	}
}

// Return allowed interfaces for mDNS
func (a *Announcer) interfaces() ([]net.Interface, error) {
	if len(a.ifaces) == 0 {
		return nil, nil
	}

	ifaces := make([]net.Interface, len(a.ifaces))
	for i, ifaceName := range a.ifaces {
		iface, err := net.InterfaceByName(ifaceName)
		if err != nil {
			return nil, err
		}
		ifaces[i] = *iface
	}

	return ifaces, nil
}

// Start announcing with the zeroconf provider
func (a *Announcer) Start() error {
	ifaces, err := a.interfaces()
	if err != nil {
		return err
	}

	return a.StartWithProvider(NewZeroconfProvider(ifaces))
}

// Start announcing with the given provider
func (a *Announcer) StartWithProvider(provider api.MdnsProviderInterface) error {
	a.mux.Lock()
	a.mdnsProvider = provider
	a.mux.Unlock()

	return a.Announce()
}

func (a *Announcer) txt() []string {
	return []string{
		"txtvers=" + txtVersion,
		"version=" + txtVersion,
		"path=" + a.path,
		fmt.Sprintf("devices=%d", a.deviceCount),
	}
}

// Announce the service, announcing again updates the entry
func (a *Announcer) Announce() error {
	a.mux.Lock()
	defer a.mux.Unlock()

	if a.mdnsProvider == nil {
		return nil
	}

	logging.Log().Debug("mdns: announce")

	if err := a.mdnsProvider.Announce(a.instanceName, a.port, a.txt()); err != nil {
		logging.Log().Debug("mdns: failure announcing service", err)
		return err
	}

	a.isAnnounced = true

	return nil
}

// Stop the mDNS announcement on the network
func (a *Announcer) Unannounce() {
	a.mux.Lock()
	defer a.mux.Unlock()

	if !a.isAnnounced || a.mdnsProvider == nil {
		return
	}

	a.mdnsProvider.Unannounce()
	logging.Log().Debug("mdns: stop announcement")

	a.isAnnounced = false
}

// IsAnnounced reports if the service is currently announced
func (a *Announcer) IsAnnounced() bool {
	a.mux.Lock()
	defer a.mux.Unlock()

	return a.isAnnounced
}

// Shutdown all of mDNS
func (a *Announcer) Shutdown() {
	a.shutdownOnce.Do(func() {
		a.Unannounce()

		a.mux.Lock()
		defer a.mux.Unlock()

		if a.mdnsProvider == nil {
			return
		}

		a.mdnsProvider.Shutdown()
		a.mdnsProvider = nil
	})
}
