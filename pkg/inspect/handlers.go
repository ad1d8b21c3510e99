package inspect

import (
	"encoding/json"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/lumen-ui/lumen/pkg/dom"
)

// treeNode is the JSON shape of one element in the /tree dump.
type treeNode struct {
	Tag      string            `json:"tag"`
	ID       string            `json:"id,omitempty"`
	Classes  []string          `json:"classes,omitempty"`
	Attrs    map[string]string `json:"attrs,omitempty"`
	Children []treeNode        `json:"children,omitempty"`
}

// queryResult is the JSON shape of a /query response.
type queryResult struct {
	Selector string `json:"selector"`
	Found    bool   `json:"found"`
	Target   string `json:"target,omitempty"`
}

// traced wraps each request in an OpenTelemetry span.
func (in *Inspector) traced(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := in.tracer.Start(r.Context(), "inspect "+r.URL.Path,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", r.Method),
				attribute.String("http.target", r.URL.Path),
			),
		)
		defer span.End()

		start := time.Now()
		next.ServeHTTP(w, r.WithContext(ctx))

		span.SetAttributes(attribute.Int64("http.duration_us", time.Since(start).Microseconds()))
		in.log.Debug("inspector request",
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start),
		)
	})
}

func (in *Inspector) handleTree(w http.ResponseWriter, r *http.Request) {
	// Snapshot under the document's read lock: the mounting layer may be
	// mutating the tree on another goroutine.
	var root treeNode
	in.doc.ReadTree(func(el *dom.Element) {
		root = snapshotTree(el)
	})
	writeJSON(w, http.StatusOK, root)
}

func (in *Inspector) handleQuery(w http.ResponseWriter, r *http.Request) {
	selector := r.URL.Query().Get("selector")
	if selector == "" {
		http.Error(w, "missing selector parameter", http.StatusBadRequest)
		return
	}

	res := queryResult{Selector: selector}
	if el, ok := in.doc.Query(selector); ok {
		res.Found = true
		res.Target = describe(el)
	}
	writeJSON(w, http.StatusOK, res)
}

func (in *Inspector) handleRefs(w http.ResponseWriter, r *http.Request) {
	in.mu.Lock()
	refs := make(map[string]Update, len(in.latest))
	for name, u := range in.latest {
		refs[name] = u
	}
	in.mu.Unlock()

	writeJSON(w, http.StatusOK, refs)
}

// handleWS upgrades the connection, replays the latest state of every
// watch, then streams subsequent updates until the client disconnects.
func (in *Inspector) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := in.upgrader.Upgrade(w, r, nil)
	if err != nil {
		in.log.Warn("inspector: websocket upgrade failed", "error", err)
		return
	}
	client := &wsClient{conn: conn}

	in.mu.Lock()
	replay := make([]Update, 0, len(in.latest))
	for _, u := range in.latest {
		replay = append(replay, u)
	}
	in.conns[client] = struct{}{}
	in.mu.Unlock()

	// Broadcasts may already be racing these writes; the client's write
	// mutex serializes them, and Seq lets readers order what they receive.
	for _, u := range replay {
		if err := client.writeJSON(u); err != nil {
			in.removeConn(client)
			return
		}
	}

	// Drain the read side to detect disconnects.
	go func() {
		defer in.removeConn(client)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func snapshotTree(el *dom.Element) treeNode {
	n := treeNode{
		Tag:     el.Tag(),
		ID:      el.ID(),
		Classes: el.Classes(),
	}
	if attrs := el.Attrs(); len(attrs) > 0 {
		// id and class already have dedicated fields.
		delete(attrs, "id")
		delete(attrs, "class")
		if len(attrs) > 0 {
			n.Attrs = attrs
		}
	}
	for _, c := range el.Children() {
		n.Children = append(n.Children, snapshotTree(c))
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
