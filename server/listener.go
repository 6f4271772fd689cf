package server

import (
	"context"
	"log"
	"net"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
)

// ListenWithIPv6Fallback attempts to bind the gateway on IPv6 first, falling
// back to IPv4 if the host has no IPv6 stack. The IPv6 socket is opened
// dual-stack so managed platforms with IPv6-only private networks and plain
// IPv4 containers both work.
func ListenWithIPv6Fallback(app *fiber.App, port string, startupStart time.Time) error {
	addrIPv6 := "[::]:" + port
	log.Printf("🔵 [IPv6] Attempting to bind gateway on %s", addrIPv6)

	lc := net.ListenConfig{
		Control: func(network, address string, c syscall.RawConn) error {
			if network != "tcp6" {
				return nil
			}

			var sockErr error
			if controlErr := c.Control(func(fd uintptr) {
				sockErr = syscall.SetsockoptInt(int(fd), syscall.IPPROTO_IPV6, syscall.IPV6_V6ONLY, 0)
			}); controlErr != nil {
				return controlErr
			}
			return sockErr
		},
	}

	ln6, err := lc.Listen(context.Background(), "tcp6", addrIPv6)
	if err == nil {
		log.Printf("🚀 Gateway listening on %s (dual-stack) - startup time: %v", addrIPv6, time.Since(startupStart))
		return app.Listener(ln6)
	}

	log.Printf("🔄 [FALLBACK] IPv6 bind failed (%v), attempting IPv4", err)

	addrIPv4 := "0.0.0.0:" + port
	ln4, err := net.Listen("tcp4", addrIPv4)
	if err != nil {
		log.Printf("💥 [FATAL] Both IPv6 and IPv4 binding failed - gateway cannot start")
		return err
	}

	log.Printf("🚀 Gateway listening on %s (IPv4 only) - startup time: %v", addrIPv4, time.Since(startupStart))
	return app.Listener(ln4)
}
