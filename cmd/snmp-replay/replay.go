package main

import (
	"errors"
	"fmt"
	"net"
	"os"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcap"
)

var ErrReassemblyNeeded = errors.New("reassembly needed")

type UDPFrame struct {
	FrameNumber uint64
	IsFragment  bool
	SrcAddr     net.IPAddr
	DstAddr     net.IPAddr
	SrcPort     uint16
	DstPort     uint16
	Data        []byte
}

type UDPFrameHandler interface {
	HandleUDPFrame(frame *UDPFrame) error
}

type UDPFrameHandleFunc func(frame *UDPFrame) error

func (f UDPFrameHandleFunc) HandleUDPFrame(frame *UDPFrame) error {
	return f(frame)
}

// PlaybackUDPFramesFromFile feeds every UDP datagram in a pcap capture to the
// handler. Other protocols are skipped; fragments are reported so the handler
// can decide whether it cares.
func PlaybackUDPFramesFromFile(filename string, handler UDPFrameHandler) error {
	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	return PlaybackUDPFramesFromStream(f, handler)
}

func PlaybackUDPFramesFromStream(f *os.File, handler UDPFrameHandler) error {
	r, err := pcap.OpenOfflineFile(f)
	if err != nil {
		return fmt.Errorf("failed to create pcap reader: %w", err)
	}

	packetSource := gopacket.NewPacketSource(r, r.LinkType())
	frame := &UDPFrame{}
	for packet := range packetSource.Packets() {
		frame.FrameNumber++
		if ipV4 := packet.Layer(layers.LayerTypeIPv4); ipV4 != nil {
			ip := ipV4.(*layers.IPv4)
			frame.IsFragment = ip.Flags&layers.IPv4MoreFragments != 0
			frame.SrcAddr = net.IPAddr{IP: ip.SrcIP}
			frame.DstAddr = net.IPAddr{IP: ip.DstIP}
		} else if ipV6 := packet.Layer(layers.LayerTypeIPv6); ipV6 != nil {
			ip := ipV6.(*layers.IPv6)
			frame.IsFragment = false
			frame.SrcAddr = net.IPAddr{IP: ip.SrcIP}
			frame.DstAddr = net.IPAddr{IP: ip.DstIP}
		} else {
			continue
		}
		udpLayer := packet.Layer(layers.LayerTypeUDP)
		if udpLayer == nil {
			continue
		}
		udp := udpLayer.(*layers.UDP)
		frame.SrcPort = uint16(udp.SrcPort)
		frame.DstPort = uint16(udp.DstPort)
		frame.Data = udp.Payload

		if err := handler.HandleUDPFrame(frame); err != nil {
			return fmt.Errorf("failed to handle UDP frame: %w", err)
		}
	}

	return nil
}
