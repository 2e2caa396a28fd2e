package netsrv

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	tomb "gopkg.in/tomb.v2"

	"matchbook/internal/venue"
	"matchbook/internal/wire"
)

const (
	maxRecvSize        = 4 * 1024
	defaultNWorkers    = 10
	defaultConnTimeout = time.Second
)

var ErrImproperConversion = errors.New("netsrv: improper type conversion")

// clientMessage links one parsed wire message to the connection it
// arrived on, so the session handler can reply on the right socket.
type clientMessage struct {
	conn        net.Conn
	messageType MessageType
	body        []byte
}

// Server is the daemon front end to a venue.Registry: it accepts TCP
// connections, parses NewOrder/LogBook frames off them, executes them
// against the registry, and writes Report frames back.
type Server struct {
	address  string
	port     int
	registry *venue.Registry
	pool     WorkerPool
	cancel   context.CancelFunc

	sessionsLock sync.Mutex
	sessions     map[string]net.Conn

	messages chan clientMessage
}

func New(address string, port int, registry *venue.Registry) *Server {
	return &Server{
		address:  address,
		port:     port,
		registry: registry,
		pool:     NewWorkerPool(defaultNWorkers),
		sessions: make(map[string]net.Conn),
		messages: make(chan clientMessage, 1),
	}
}

func (s *Server) Shutdown() {
	log.Info().Msg("server shutting down")
	s.registry.Close()
	s.cancel()
}

func (s *Server) Run(ctx context.Context) {
	defer s.Shutdown()

	ctx, s.cancel = context.WithCancel(ctx)
	t, ctx := tomb.WithContext(ctx)

	var lc net.ListenConfig
	listener, err := lc.Listen(ctx, "tcp", fmt.Sprintf("%s:%d", s.address, s.port))
	if err != nil {
		log.Error().Err(err).Msg("unable to start listener")
		return
	}
	defer func() {
		if err := listener.Close(); err != nil {
			log.Error().Err(err).Msg("unable to close listener")
		}
	}()

	t.Go(func() error {
		s.pool.Setup(t, s.handleConnection)
		return nil
	})
	t.Go(func() error {
		return s.sessionHandler(t)
	})

	log.Info().Str("address", s.address).Int("port", s.port).Msg("server running")

	for {
		select {
		case <-ctx.Done():
			return
		default:
			conn, err := listener.Accept()
			if err != nil {
				log.Error().Err(err).Msg("error accepting client")
				continue
			}
			log.Info().Str("address", conn.RemoteAddr().String()).Msg("new client added")
			s.addSession(conn)
			s.pool.AddTask(conn)
		}
	}
}

// sessionHandler drains parsed messages and dispatches each to the
// registry, one at a time, replying on the originating connection.
func (s *Server) sessionHandler(t *tomb.Tomb) error {
	for {
		select {
		case <-t.Dying():
			return nil
		case msg := <-s.messages:
			if err := s.handleMessage(t.Context(nil), msg); err != nil {
				log.Error().
					Err(err).
					Str("address", msg.conn.RemoteAddr().String()).
					Msg("error handling message")
				s.reportError(msg.conn, err)
			}
		}
	}
}

func (s *Server) handleMessage(ctx context.Context, msg clientMessage) error {
	switch msg.messageType {
	case NewOrder:
		order, err := ParseNewOrder(msg.body)
		if err != nil {
			return err
		}
		items, err := s.registry.Submit(ctx, order.Ticker, order.Order)
		if err != nil {
			return err
		}
		for _, item := range items {
			report := Report{Type: ExecutionReport, Ticker: order.Ticker, Text: wire.FormatLogItem(item)}
			if _, err := msg.conn.Write(report.Serialize()); err != nil {
				return err
			}
		}
		return nil
	case LogBook:
		dumps, err := s.registry.DumpAll(ctx)
		if err != nil {
			return err
		}
		for _, dump := range dumps {
			for _, line := range dump.Lines {
				report := Report{Type: BookReport, Ticker: dump.Ticker, Text: line}
				if _, err := msg.conn.Write(report.Serialize()); err != nil {
					return err
				}
			}
		}
		return nil
	default:
		return ErrInvalidMessageType
	}
}

func (s *Server) reportError(conn net.Conn, cause error) {
	report := Report{Type: ErrorReport, Text: cause.Error()}
	if _, err := conn.Write(report.Serialize()); err != nil {
		log.Error().Err(err).Msg("unable to report error back to client")
	}
}

// handleConnection reads one message off conn, forwards it to the
// session handler, and re-queues the connection so the next message on
// the same socket is picked up by the next free worker.
func (s *Server) handleConnection(t *tomb.Tomb, task any) error {
	conn, ok := task.(net.Conn)
	if !ok {
		return ErrImproperConversion
	}

	if err := conn.SetDeadline(time.Now().Add(defaultConnTimeout)); err != nil {
		log.Error().Err(err).Str("address", conn.RemoteAddr().String()).Msg("failed setting deadline")
		s.closeSession(conn)
		return nil
	}

	select {
	case <-t.Dying():
		return nil
	default:
		buffer := make([]byte, maxRecvSize)
		n, err := conn.Read(buffer)
		if err != nil {
			s.closeSession(conn)
			return nil
		}

		messageType, body, err := ParseMessage(buffer[:n])
		if err != nil {
			log.Error().Err(err).Str("address", conn.RemoteAddr().String()).Msg("error parsing message")
			s.reportError(conn, err)
			s.pool.AddTask(conn)
			return nil
		}

		s.messages <- clientMessage{conn: conn, messageType: messageType, body: body}
		s.pool.AddTask(conn)
	}
	return nil
}

func (s *Server) addSession(conn net.Conn) {
	s.sessionsLock.Lock()
	defer s.sessionsLock.Unlock()
	s.sessions[conn.RemoteAddr().String()] = conn
}

func (s *Server) closeSession(conn net.Conn) {
	s.sessionsLock.Lock()
	defer s.sessionsLock.Unlock()
	delete(s.sessions, conn.RemoteAddr().String())
	if err := conn.Close(); err != nil {
		log.Error().Err(err).Str("address", conn.RemoteAddr().String()).Msg("unable to close connection")
	}
}
