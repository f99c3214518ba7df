package ports

import (
	"fmt"
	"net"
	"strings"
	"testing"
)

// occupyPort binds a listener so the port is busy for the duration of the test
func occupyPort(t *testing.T) (int, net.Listener) {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to bind test listener: %v", err)
	}
	t.Cleanup(func() { l.Close() })
	return l.Addr().(*net.TCPAddr).Port, l
}

func TestAcquirePreferredPort(t *testing.T) {
	// Find a port that is currently free by briefly binding it
	port, l := occupyPort(t)
	l.Close()

	got, err := Acquire(port, 0, "could not acquire required port")
	if err != nil {
		t.Fatalf("Expected to acquire free port %d, got error: %v", port, err)
	}
	if got != port {
		t.Errorf("Expected port %d, got %d", port, got)
	}
}

func TestAcquirePreferredPortBusy(t *testing.T) {
	port, _ := occupyPort(t)

	_, err := Acquire(port, 0, "could not acquire required port")
	if err == nil {
		t.Fatalf("Expected error acquiring busy port %d", port)
	}

	want := fmt.Sprintf("could not acquire required port: '%d'", port)
	if err.Error() != want {
		t.Errorf("Expected error %q, got %q", want, err.Error())
	}
}

func TestAcquireFromFallback(t *testing.T) {
	got, err := Acquire(0, DefaultStaticPort, "could not acquire required port")
	if err != nil {
		t.Fatalf("Expected free port from fallback, got error: %v", err)
	}
	if got < DefaultStaticPort {
		t.Errorf("Expected port >= %d, got %d", DefaultStaticPort, got)
	}
}

func TestAcquireFallbackSkipsBusyPort(t *testing.T) {
	port, _ := occupyPort(t)

	got, err := Acquire(0, port, "could not acquire required port")
	if err != nil {
		t.Fatalf("Expected free port, got error: %v", err)
	}
	if got == port {
		t.Errorf("Expected a port other than busy %d", port)
	}
	if got < port {
		t.Errorf("Expected port >= %d, got %d", port, got)
	}
}

func TestAcquireAnyFree(t *testing.T) {
	got, err := Acquire(0, 0, "could not acquire required port")
	if err != nil {
		t.Fatalf("Expected ephemeral port, got error: %v", err)
	}
	if got <= 0 || got > 65535 {
		t.Errorf("Expected valid port, got %d", got)
	}
}

func TestAcquireErrorMessageCarriesCustomText(t *testing.T) {
	port, _ := occupyPort(t)

	_, err := Acquire(port, 0, "could not acquire the functions port")
	if err == nil {
		t.Fatal("Expected error for busy port")
	}
	if !strings.Contains(err.Error(), "functions port") {
		t.Errorf("Expected custom error text, got %q", err.Error())
	}
}
