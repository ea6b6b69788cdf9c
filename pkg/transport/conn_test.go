package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

var upgrader = websocket.Upgrader{}

// echoServer upgrades and echoes every text message back, prefixed so the
// test can tell its own sends apart.
func echoServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer ws.Close()
		for {
			_, msg, err := ws.ReadMessage()
			if err != nil {
				return
			}
			if err := ws.WriteMessage(websocket.TextMessage, append([]byte("echo:"), msg...)); err != nil {
				return
			}
		}
	}))
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestDial_SendReceive(t *testing.T) {
	srv := echoServer(t)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, err := Dial(ctx, wsURL(srv), zerolog.Nop())
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.Send(ctx, []byte(`{"TURN_RESPONSE":{"action":"FOLD","amount":0}}`)))

	select {
	case msg := <-conn.Messages():
		require.Equal(t, `echo:{"TURN_RESPONSE":{"action":"FOLD","amount":0}}`, string(msg))
	case <-ctx.Done():
		t.Fatal("timed out waiting for echo")
	}
}

func TestMessages_PreserveOrder(t *testing.T) {
	srv := echoServer(t)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, err := Dial(ctx, wsURL(srv), zerolog.Nop())
	require.NoError(t, err)
	defer conn.Close()

	for _, payload := range []string{"one", "two", "three"} {
		require.NoError(t, conn.Send(ctx, []byte(payload)))
	}
	for _, want := range []string{"echo:one", "echo:two", "echo:three"} {
		select {
		case msg := <-conn.Messages():
			require.Equal(t, want, string(msg))
		case <-ctx.Done():
			t.Fatal("timed out")
		}
	}
}

func TestServerClose_ClosesMessages(t *testing.T) {
	srv := echoServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, err := Dial(ctx, wsURL(srv), zerolog.Nop())
	require.NoError(t, err)
	defer conn.Close()

	srv.CloseClientConnections()

	select {
	case _, open := <-conn.Messages():
		require.False(t, open, "messages channel must close when the connection drops")
	case <-ctx.Done():
		t.Fatal("timed out waiting for channel close")
	}
	srv.Close()
}

func TestSend_AfterCloseFails(t *testing.T) {
	srv := echoServer(t)
	defer srv.Close()

	ctx := context.Background()
	conn, err := Dial(ctx, wsURL(srv), zerolog.Nop())
	require.NoError(t, err)

	require.NoError(t, conn.Close())
	require.Error(t, conn.Send(ctx, []byte("late")))
}

func TestDial_Failure(t *testing.T) {
	_, err := Dial(context.Background(), "ws://127.0.0.1:1/ws", zerolog.Nop())
	require.Error(t, err)
}
