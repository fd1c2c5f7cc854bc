package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"casino-webapp-backend/internal/session"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// EventsHandler pushes session change events over WebSocket so pages
// sharing the session store react to profile updates without polling.
type EventsHandler struct {
	store *session.Store
	hub   *eventHub
}

type eventHub struct {
	clients    map[string]*websocket.Conn
	register   chan *eventClient
	unregister chan *eventClient
	broadcast  chan *eventMessage
}

type eventClient struct {
	ID   string
	Conn *websocket.Conn
}

type eventMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

func NewEventsHandler(store *session.Store) *EventsHandler {
	hub := &eventHub{
		clients:    make(map[string]*websocket.Conn),
		register:   make(chan *eventClient),
		unregister: make(chan *eventClient),
		broadcast:  make(chan *eventMessage, 100),
	}

	go hub.run()

	h := &EventsHandler{
		store: store,
		hub:   hub,
	}

	go h.forwardStoreEvents()

	return h
}

// forwardStoreEvents bridges the store's subscription API onto the hub.
func (h *EventsHandler) forwardStoreEvents() {
	events, cancel := h.store.Subscribe()
	defer cancel()

	for ev := range events {
		h.hub.broadcast <- &eventMessage{
			Type: "PROFILE_UPDATE",
			Data: gin.H{
				"user":      ev.User,
				"timestamp": time.Now().Unix(),
			},
		}
	}
}

func (h *EventsHandler) HandleEvents(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade to WebSocket: %v", err)
		return
	}

	client := &eventClient{
		ID:   uuid.New().String(),
		Conn: conn,
	}

	h.hub.register <- client

	defer func() {
		h.hub.unregister <- client
		conn.Close()
	}()

	for {
		var msg eventMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		if msg.Type == "PING" {
			conn.WriteJSON(eventMessage{
				Type: "PONG",
				Data: gin.H{"timestamp": time.Now().Unix()},
			})
		}
	}
}

func (hub *eventHub) run() {
	for {
		select {
		case client := <-hub.register:
			hub.clients[client.ID] = client.Conn
			log.Printf("Events client registered: %s", client.ID)

		case client := <-hub.unregister:
			if _, ok := hub.clients[client.ID]; ok {
				delete(hub.clients, client.ID)
				log.Printf("Events client unregistered: %s", client.ID)
			}

		case message := <-hub.broadcast:
			for _, conn := range hub.clients {
				conn.WriteJSON(message)
			}
		}
	}
}
