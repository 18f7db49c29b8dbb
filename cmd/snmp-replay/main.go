// Command snmp-replay decodes the SNMP traffic in a pcap capture. It exists
// to debug odd agent behaviour offline: capture an exchange with tcpdump,
// then replay it through the same codec the probe uses.
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/davidjspooner/printer-probe/pkg/snmp"
)

func main() {
	hexDump := flag.Bool("hex", false, "dump raw frame bytes as well")
	port := flag.Int("port", snmp.DefaultPort, "only decode frames to or from this UDP port (0 = all)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: snmp-replay [flags] <capture.pcap>")
		os.Exit(2)
	}

	err := DecodeDump(flag.Arg(0), *port, *hexDump)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func DecodeDump(filename string, port int, hexDump bool) error {
	return PlaybackUDPFramesFromFile(filename, UDPFrameHandleFunc(func(frame *UDPFrame) error {
		if frame.IsFragment {
			return ErrReassemblyNeeded
		}
		if port != 0 && int(frame.SrcPort) != port && int(frame.DstPort) != port {
			return nil
		}
		fmt.Printf("Frame: %d Src: %s:%d, Dst: %s:%d\n", frame.FrameNumber, frame.SrcAddr.IP, frame.SrcPort, frame.DstAddr.IP, frame.DstPort)
		if hexDump {
			dump := hex.Dump(frame.Data)
			for _, line := range strings.Split(dump, "\n") {
				fmt.Printf("      %s\n", line)
			}
		}
		message, err := snmp.UnmarshalMessage(frame.Data)
		if err != nil {
			fmt.Printf("      undecodable: %v\n", err)
			return nil
		}
		switch message.PDU.Type {
		case snmp.GET:
			fmt.Printf("      Method: GET\n")
		case snmp.GET_NEXT:
			fmt.Printf("      Method: GET_NEXT\n")
		case snmp.RESPONSE:
			fmt.Printf("      Method: RESPONSE\n")
		default:
			fmt.Printf("      Method: 0x%02X\n", int(message.PDU.Type))
		}
		fmt.Printf("      Community: %s\n", message.Community)
		fmt.Printf("      Version: %d\n", message.Version)
		fmt.Printf("      RequestID: %d\n", message.PDU.RequestID)
		if message.PDU.ErrorStatus > 0 {
			fmt.Printf("      Error: %d\n", message.PDU.ErrorStatus)
		}
		if message.PDU.ErrorIndex > 0 {
			fmt.Printf("      ErrorIndex: %d\n", message.PDU.ErrorIndex)
		}
		for _, vb := range message.PDU.VarBinds {
			fmt.Printf("             OID: %s, Value: %s\n", vb.OID.String(), vb.Value.String())
		}
		return nil
	}))
}
