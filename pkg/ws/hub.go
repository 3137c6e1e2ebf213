package ws

// Hub tracks the active clients of each user so events addressed to a user
// reach every open connection of that user. All bookkeeping happens on the
// Run goroutine.

type clients map[*Client]bool

type Hub struct {
	clients clients
	users   map[string]clients

	register   chan registration
	unregister chan *Client
	broadcast  chan broadcastMessage
}

type registration struct {
	userID string
	client *Client
}

type broadcastMessage struct {
	userID  string
	message []byte
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(clients),
		users:      make(map[string]clients),
		register:   make(chan registration),
		unregister: make(chan *Client),
		broadcast:  make(chan broadcastMessage, 128),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case reg := <-h.register:
			h.clients[reg.client] = true
			if _, ok := h.users[reg.userID]; !ok {
				h.users[reg.userID] = make(clients)
			}
			h.users[reg.userID][reg.client] = true

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				h.disconnect(client)
			}

		case msg := <-h.broadcast:
			for client := range h.users[msg.userID] {
				if err := client.Write(msg.message, false); err != nil {
					h.disconnect(client)
				}
			}
		}
	}
}

func (h *Hub) Register(userID string, client *Client) {
	h.register <- registration{userID: userID, client: client}
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

func (h *Hub) BroadcastToUser(userID string, message []byte) {
	h.broadcast <- broadcastMessage{userID: userID, message: message}
}

func (h *Hub) disconnect(client *Client) {
	delete(h.clients, client)
	for userID, set := range h.users {
		if set[client] {
			delete(set, client)
			if len(set) == 0 {
				delete(h.users, userID)
			}
		}
	}
	client.Close()
}
