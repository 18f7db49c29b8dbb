package diag

import (
	"net"
)

// resolveScope classifies whether the target shares a subnet with this host
// and reports the local CIDR the probe would leave from. Printers frequently
// have ACLs that only admit same-subnet managers, so "diff-subnet" is a
// strong hint when SNMP is silent but HTTPS answers.
func resolveScope(target, localAddress string) (scope, from string) {
	scope, from = "unknown", "unknown"

	targetIP := net.ParseIP(target)
	if targetIP == nil {
		addrs, err := net.LookupIP(target)
		if err != nil || len(addrs) == 0 {
			return scope, from
		}
		targetIP = addrs[0]
	}

	if localAddress != "" {
		if cidr := cidrForLocalIP(net.ParseIP(localAddress)); cidr != nil {
			from = cidr.String()
			if cidr.Contains(targetIP) {
				return "same-subnet", from
			}
			return "diff-subnet", from
		}
	}

	interfaces, err := net.Interfaces()
	if err != nil {
		return scope, from
	}
	for _, iface := range interfaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		for _, addr := range addrs {
			ipnet, ok := addr.(*net.IPNet)
			if !ok {
				continue
			}
			if ipnet.Contains(targetIP) {
				return "same-subnet", ipnet.String()
			}
		}
	}

	// No interface covers the target. Report the CIDR of whichever local
	// address the kernel would route the probe from.
	if cidr := cidrForLocalIP(outboundIP(targetIP)); cidr != nil {
		return "diff-subnet", cidr.String()
	}
	return "diff-subnet", from
}

// outboundIP asks the routing table which source address would be used for
// the target. No packet is sent; connecting a UDP socket only selects a
// route.
func outboundIP(target net.IP) net.IP {
	conn, err := net.Dial("udp", net.JoinHostPort(target.String(), "161"))
	if err != nil {
		return nil
	}
	defer conn.Close()
	local, ok := conn.LocalAddr().(*net.UDPAddr)
	if !ok {
		return nil
	}
	return local.IP
}

// cidrForLocalIP finds the interface network containing the given local IP,
// preserving its prefix length for the From field.
func cidrForLocalIP(ip net.IP) *net.IPNet {
	if ip == nil {
		return nil
	}
	interfaces, err := net.Interfaces()
	if err != nil {
		return nil
	}
	for _, iface := range interfaces {
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		for _, addr := range addrs {
			ipnet, ok := addr.(*net.IPNet)
			if !ok {
				continue
			}
			if ipnet.IP.Equal(ip) {
				return &net.IPNet{IP: ip, Mask: ipnet.Mask}
			}
		}
	}
	return nil
}
