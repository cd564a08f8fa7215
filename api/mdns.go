package api

/* Mdns */

// implemented by mdns providers, used by mdns.Announcer
type MdnsProviderInterface interface {
	Announce(serviceName string, port int, txt []string) error
	Unannounce()
	Shutdown()
}
