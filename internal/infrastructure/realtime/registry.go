package realtime

import (
	"sync"

	"go-chatline/internal/metrics"
)

// Registry is the in-memory mapping from user identity to that user's live
// connections. A user may hold any number of concurrent connections (multiple
// devices or tabs). The registry is the single most contended shared resource
// in the process: every mutation is atomic under one RWMutex, and reads hand
// out snapshot copies so callers never iterate a set that mutates under them.
//
// Nothing here is persisted. A process restart empties the registry and every
// surviving client re-announces by reconnecting.
type Registry struct {
	mu    sync.RWMutex
	conns map[string]*Connection            // connection ID -> connection
	users map[string]map[string]*Connection // user ID -> connection ID -> connection
}

// NewRegistry constructs an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		conns: make(map[string]*Connection),
		users: make(map[string]map[string]*Connection),
	}
}

// Register adds the connection to its owner's live set. Registering the same
// connection twice is a no-op.
func (r *Registry) Register(conn *Connection) {
	if conn == nil || conn.ID == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.conns[conn.ID]; ok {
		return
	}
	r.conns[conn.ID] = conn

	set := r.users[conn.UserID]
	if set == nil {
		set = make(map[string]*Connection)
		r.users[conn.UserID] = set
	}
	set[conn.ID] = conn

	metrics.LiveConnections.Inc()
}

// Unregister removes the connection from whichever user's set contains it.
// No-op if the connection was never registered or already removed.
func (r *Registry) Unregister(conn *Connection) {
	if conn == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.conns[conn.ID]; !ok {
		return
	}
	delete(r.conns, conn.ID)

	if set, ok := r.users[conn.UserID]; ok {
		delete(set, conn.ID)
		if len(set) == 0 {
			delete(r.users, conn.UserID)
		}
	}

	metrics.LiveConnections.Dec()
}

// ConnectionsFor returns a snapshot of the user's live connections. The
// returned slice is owned by the caller; concurrent register/unregister never
// mutates it.
func (r *Registry) ConnectionsFor(userID string) []*Connection {
	r.mu.RLock()
	defer r.mu.RUnlock()

	set := r.users[userID]
	if len(set) == 0 {
		return nil
	}
	out := make([]*Connection, 0, len(set))
	for _, conn := range set {
		out = append(out, conn)
	}
	return out
}

// Len reports the number of registered connections.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}

// Close unregisters and closes every tracked connection.
func (r *Registry) Close() {
	r.mu.Lock()
	conns := make([]*Connection, 0, len(r.conns))
	for _, conn := range r.conns {
		conns = append(conns, conn)
	}
	r.conns = make(map[string]*Connection)
	r.users = make(map[string]map[string]*Connection)
	metrics.LiveConnections.Sub(float64(len(conns)))
	r.mu.Unlock()

	for _, conn := range conns {
		conn.Close(1001, "registry shutdown")
	}
}
