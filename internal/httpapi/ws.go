package httpapi

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"dispatchd/internal/queue"
	"dispatchd/pkg/types"
)

// closeGrace bounds how long a close control frame may take to write.
const closeGrace = time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	// Auth and origin policy belong to the fronting proxy.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsChannel adapts a websocket connection to the queue.Channel contract.
// The connection allows one concurrent writer, so sends are serialized here;
// the dispatcher is the only reader.
type wsChannel struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *wsChannel) Send(msg types.Message) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(msg) == nil
}

func (c *wsChannel) Receive() (json.RawMessage, bool) {
	_, data, err := c.conn.ReadMessage()
	if err != nil {
		return nil, false
	}
	return data, true
}

func (c *wsChannel) Close(code int) {
	deadline := time.Now().Add(closeGrace)
	c.mu.Lock()
	_ = c.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, ""), deadline)
	c.mu.Unlock()
	_ = c.conn.Close()
}

// handleJoin upgrades the request, binds a job to the connection and parks
// the handler until the dispatcher is done with the job. The dispatcher owns
// all messaging on the channel from here on.
func handleJoin(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !svc.Running() {
			writeJSONError(w, http.StatusServiceUnavailable, "queue is not running")
			return
		}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			// Upgrade has already written the error response.
			return
		}
		// The connection is hijacked, so net/http will not reclaim it. The
		// dispatcher only closes channels it delivered to; dropped and
		// canceled jobs leave the fd to us.
		defer conn.Close()
		job := queue.NewJob(&wsChannel{conn: conn})
		if zlog != nil {
			zlog.Info().Str("job_id", job.ID()).Str("remote", r.RemoteAddr).Msg("client joined queue")
		}
		svc.Enqueue(job)
		<-job.Done()
	}
}
