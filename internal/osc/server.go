package osc

import (
	"fmt"
	"log"
	"net"

	"github.com/tapelight/ledengine/internal/events"
	"github.com/tapelight/ledengine/internal/model"
)

// DefaultWorkers is the size of the datagram-handling worker pool.
// Each worker serializes its effect on the model through the scene's
// own lock.
const DefaultWorkers = 4

// bufferSize is generous for a single OSC message: grouped JSON
// payloads are small, and no bundles are ever produced or consumed.
const bufferSize = 4096

// Server is the OSC receive task: one goroutine blocking on datagram
// receive, fanning work out to a small worker pool that all serialize
// on the Scene's lock. The pool keeps OSC parsing/coercion (which can
// be comparatively expensive for grouped-dict payloads) from stalling
// datagram receive.
type Server struct {
	scene *model.Scene
	bus   *events.Bus

	conn    *net.UDPConn
	workers int

	datagrams chan datagram
	stopChan  chan struct{}
}

type datagram struct {
	data []byte
	addr *net.UDPAddr
}

// NewServer creates a Server bound to addr:port. workers <= 0 uses
// DefaultWorkers.
func NewServer(scene *model.Scene, bus *events.Bus, addr string, port int, workers int) (*Server, error) {
	if workers <= 0 {
		workers = DefaultWorkers
	}

	udpAddr, err := net.ResolveUDPAddr("udp", fmt.Sprintf("%s:%d", addr, port))
	if err != nil {
		return nil, fmt.Errorf("osc: resolve %s:%d: %w", addr, port, err)
	}
	conn, err := net.ListenUDP("udp", udpAddr)
	if err != nil {
		return nil, fmt.Errorf("osc: bind %s:%d: %w", addr, port, err)
	}

	return &Server{
		scene:     scene,
		bus:       bus,
		conn:      conn,
		workers:   workers,
		datagrams: make(chan datagram, 64),
		stopChan:  make(chan struct{}),
	}, nil
}

// Addr returns the bound local address, useful when port 0 was
// requested (OS-assigned port, handy in tests).
func (s *Server) Addr() *net.UDPAddr {
	return s.conn.LocalAddr().(*net.UDPAddr)
}

// Start launches the receive loop and the worker pool. Safe to call
// once.
func (s *Server) Start() {
	for i := 0; i < s.workers; i++ {
		go s.work()
	}
	go s.receive()
}

// Stop closes the socket and halts the receive loop and worker pool.
func (s *Server) Stop() {
	close(s.stopChan)
	s.conn.Close()
}

func (s *Server) receive() {
	buf := make([]byte, bufferSize)
	for {
		n, addr, err := s.conn.ReadFromUDP(buf)
		if err != nil {
			select {
			case <-s.stopChan:
				return
			default:
				log.Printf("osc: 📡 read error: %v", err)
				continue
			}
		}

		data := make([]byte, n)
		copy(data, buf[:n])

		select {
		case s.datagrams <- datagram{data: data, addr: addr}:
		case <-s.stopChan:
			return
		}
	}
}

func (s *Server) work() {
	for {
		select {
		case <-s.stopChan:
			return
		case dg := <-s.datagrams:
			s.handle(dg)
		}
	}
}

func (s *Server) handle(dg datagram) {
	msg, err := Decode(dg.data)
	if err != nil {
		log.Printf("osc: 📡 malformed datagram from %s: %v", dg.addr, err)
		return
	}

	if msg.Address == "/request/init" {
		s.replyInit(dg.addr)
		return
	}

	Route(s.scene, s.bus, msg)
}

// replyInit assembles and sends the /request/init snapshot: the
// snapshot is gathered under the scene's locks internally (see
// Snapshot), then every reply message is encoded and sent without
// holding any lock.
func (s *Server) replyInit(to *net.UDPAddr) {
	for _, msg := range Snapshot(s.scene) {
		encoded, err := Encode(msg)
		if err != nil {
			log.Printf("osc: 📡 encoding reply %s: %v", msg.Address, err)
			continue
		}
		if _, err := s.conn.WriteToUDP(encoded, to); err != nil {
			log.Printf("osc: 📡 replying to %s: %v", to, err)
			return
		}
	}
}
