package mdns

import (
	"net"
	"sync"

	"github.com/DerAndereAndi/zeroconf/v2"
	"github.com/enbility/telemetry-go/api"
	"github.com/enbility/telemetry-go/logging"
)

type ZeroconfProvider struct {
	ifaces []net.Interface

	zc *zeroconf.Server

	shutdownOnce sync.Once

	mux sync.Mutex
}

func NewZeroconfProvider(ifaces []net.Interface) *ZeroconfProvider {
	return &ZeroconfProvider{
		ifaces: ifaces,
	}
}

var _ api.MdnsProviderInterface = (*ZeroconfProvider)(nil)

func (z *ZeroconfProvider) Shutdown() {
	z.shutdownOnce.Do(func() {
		z.Unannounce()
	})
}

// Announce registers the service, replacing a previous registration
func (z *ZeroconfProvider) Announce(serviceName string, port int, txt []string) error {
	logging.Log().Debug("mdns: using zeroconf")

	// Set TTL to 2 minutes
	mDNSServer, err := zeroconf.Register(serviceName, telemetryZeroConfServiceType, telemetryZeroConfDomain, port, txt, z.ifaces, zeroconf.TTL(120))
	if err != nil {
		return err
	}

	z.mux.Lock()
	defer z.mux.Unlock()

	if z.zc != nil {
		z.zc.Shutdown()
	}
	z.zc = mDNSServer

	return nil
}

func (z *ZeroconfProvider) Unannounce() {
	z.mux.Lock()
	defer z.mux.Unlock()

	if z.zc == nil {
		return
	}

	z.zc.Shutdown()
	z.zc = nil
}
