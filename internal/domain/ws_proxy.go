package domain

import (
	"context"
	"net/http"

	"github.com/Ltinterdonato1/BlinkShare/pkg/errorx"
	"github.com/Ltinterdonato1/BlinkShare/pkg/ws"
	"github.com/Ltinterdonato1/BlinkShare/pkg/xcontext"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type WsProxyDomain interface {
	ServeClient(ctx context.Context) error
}

type wsProxyDomain struct {
	hub *ws.Hub
}

func NewWsProxyDomain(hub *ws.Hub) *wsProxyDomain {
	return &wsProxyDomain{hub: hub}
}

// ServeClient upgrades the request to a websocket and keeps the connection
// registered in the hub until the peer goes away. Events addressed to the
// user are pushed by the hub; nothing the client sends is interpreted.
func (d *wsProxyDomain) ServeClient(ctx context.Context) error {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	}

	conn, err := upgrader.Upgrade(xcontext.HTTPWriter(ctx), xcontext.HTTPRequest(ctx), nil)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upgrade to websocket: %v", err)
		return errorx.Unknown
	}

	client := ws.NewClient(conn)
	d.hub.Register(userID, client)
	defer d.hub.Unregister(client)

	for range client.R {
	}

	return nil
}
