package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/harunnryd/statline/pkg/logging"
)

// devsink is a local statsd endpoint for eyeballing what an
// application emits: every datagram is logged, and with -ws a live
// line feed is served to websocket clients.

func main() {
	listen := flag.String("listen", ":8125", "UDP address to receive statsd lines on")
	wsAddr := flag.String("ws", "", "serve a websocket line feed on this address (empty disables)")
	flag.Parse()

	logger := logging.NewComponentLogger(logging.InitTextLogger(slog.LevelInfo), "devsink")

	addr, err := net.ResolveUDPAddr("udp", *listen)
	if err != nil {
		logger.Error("devsink_bad_listen_addr", "error", err.Error())
		os.Exit(1)
	}
	conn, err := net.ListenUDP("udp", addr)
	if err != nil {
		logger.Error("devsink_listen_failed", "error", err.Error())
		os.Exit(1)
	}

	var feed *lineFeed
	var server *http.Server
	if *wsAddr != "" {
		feed = newLineFeed(logger)
		mux := http.NewServeMux()
		mux.Handle("/feed", feed)
		mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		server = &http.Server{
			Addr:              *wsAddr,
			ReadHeaderTimeout: 5 * time.Second,
			Handler:           mux,
		}
		go func() {
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("devsink_server_error", "error", err.Error())
			}
		}()
		logger.Info("devsink_feed_ready", "addr", *wsAddr)
	}

	go func() {
		buf := make([]byte, 64*1024)
		for {
			n, from, err := conn.ReadFromUDP(buf)
			if err != nil {
				return
			}
			line := string(buf[:n])
			logger.Info("statsd_line", "from", from.String(), "line", line)
			if feed != nil {
				feed.Broadcast(line)
			}
		}
	}()
	logger.Info("devsink_ready", "listen", *listen)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	_ = conn.Close()
	if server != nil {
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutCtx)
	}
	if feed != nil {
		feed.CloseAll()
	}
	logger.Info("devsink_stopped")
}

// lineFeed fans received lines out to websocket subscribers.
type lineFeed struct {
	logger   *slog.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[string]*websocket.Conn
}

func newLineFeed(logger *slog.Logger) *lineFeed {
	return &lineFeed{
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		clients: make(map[string]*websocket.Conn),
	}
}

func (f *lineFeed) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	id := uuid.NewString()
	f.mu.Lock()
	f.clients[id] = conn
	f.mu.Unlock()
	f.logger.Info("feed_client_joined", "client_id", id)

	// The feed is one-way; the read loop only notices the client
	// going away.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	f.drop(id)
}

func (f *lineFeed) Broadcast(line string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, conn := range f.clients {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(line)); err != nil {
			delete(f.clients, id)
			_ = conn.Close()
		}
	}
}

func (f *lineFeed) drop(id string) {
	f.mu.Lock()
	conn, ok := f.clients[id]
	if ok {
		delete(f.clients, id)
	}
	f.mu.Unlock()
	if ok {
		_ = conn.Close()
		f.logger.Info("feed_client_left", "client_id", id)
	}
}

func (f *lineFeed) CloseAll() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, conn := range f.clients {
		_ = conn.Close()
		delete(f.clients, id)
	}
}
