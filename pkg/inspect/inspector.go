package inspect

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/lumen-ui/lumen/pkg/dom"
	"github.com/lumen-ui/lumen/pkg/elref"
	"github.com/lumen-ui/lumen/pkg/reactive"
)

// defaultTracerName identifies inspector spans in the global provider.
const defaultTracerName = "lumen/inspect"

// Option configures an Inspector.
type Option func(*Inspector)

// WithLogger sets the structured logger (default: slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(in *Inspector) {
		in.log = l
	}
}

// WithTracerName overrides the OpenTelemetry tracer name.
func WithTracerName(name string) Option {
	return func(in *Inspector) {
		in.tracerName = name
	}
}

// Update is one watched-reference change, pushed to websocket clients.
type Update struct {
	// Name is the watch name given to Watch.
	Name string `json:"name"`

	// Present reports whether the reference currently resolves.
	Present bool `json:"present"`

	// Target describes the resolved element ("div#main.card"), "" if absent.
	Target string `json:"target,omitempty"`

	// Seq increases with every update across all watches.
	Seq uint64 `json:"seq"`
}

// Inspector exposes a document and watched references over HTTP.
type Inspector struct {
	doc        *dom.Document
	log        *slog.Logger
	tracerName string
	tracer     trace.Tracer

	upgrader websocket.Upgrader

	// scope owns the watch effects; Close disposes them.
	scope *reactive.Scope

	mu     sync.Mutex
	seq    uint64
	latest map[string]Update
	conns  map[*wsClient]struct{}
}

// wsClient wraps a websocket connection with a write mutex: gorilla conns
// support at most one concurrent writer, and replay and broadcast writes can
// come from different goroutines.
type wsClient struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *wsClient) writeJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

// New creates an inspector for the given document.
func New(doc *dom.Document, opts ...Option) *Inspector {
	in := &Inspector{
		doc:        doc,
		log:        slog.Default(),
		tracerName: defaultTracerName,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The inspector is a development tool; accept any origin.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		scope:  reactive.NewScope(nil),
		latest: make(map[string]Update),
		conns:  make(map[*wsClient]struct{}),
	}

	for _, opt := range opts {
		opt(in)
	}

	in.tracer = otel.Tracer(in.tracerName)

	return in
}

// Watch subscribes to a reference under the given name. The current
// resolution is recorded immediately and every subsequent change is pushed
// to connected websocket clients.
func (in *Inspector) Watch(name string, ref elref.ElementRef[*dom.Element]) {
	in.scope.Run(func() {
		reactive.CreateEffect(func() reactive.Cleanup {
			el, present := ref.Get().Get()

			target := ""
			if present {
				target = describe(el)
			}
			in.publish(name, present, target)
			return nil
		})
	})
}

// Close stops all watches and disconnects websocket clients.
func (in *Inspector) Close() {
	in.scope.Dispose()

	in.mu.Lock()
	conns := make([]*wsClient, 0, len(in.conns))
	for c := range in.conns {
		conns = append(conns, c)
	}
	in.conns = make(map[*wsClient]struct{})
	in.mu.Unlock()

	for _, c := range conns {
		c.conn.Close()
	}
}

// Router returns the inspector's HTTP surface.
func (in *Inspector) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(in.traced)

	r.Get("/tree", in.handleTree)
	r.Get("/query", in.handleQuery)
	r.Get("/refs", in.handleRefs)
	r.Get("/ws", in.handleWS)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}

// publish records the latest state for a watch and broadcasts it.
func (in *Inspector) publish(name string, present bool, target string) {
	in.mu.Lock()
	in.seq++
	u := Update{Name: name, Present: present, Target: target, Seq: in.seq}
	in.latest[name] = u

	conns := make([]*wsClient, 0, len(in.conns))
	for c := range in.conns {
		conns = append(conns, c)
	}
	in.mu.Unlock()

	for _, c := range conns {
		if err := c.writeJSON(u); err != nil {
			in.log.Warn("inspector: dropping websocket client", "error", err)
			in.removeConn(c)
		}
	}
}

func (in *Inspector) removeConn(c *wsClient) {
	in.mu.Lock()
	delete(in.conns, c)
	in.mu.Unlock()
	c.conn.Close()
}

// describe renders an element as "tag#id.class1.class2".
func describe(el *dom.Element) string {
	s := el.Tag()
	if el.ID() != "" {
		s += "#" + el.ID()
	}
	for _, c := range el.Classes() {
		s += "." + c
	}
	return s
}
