package events

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/stayops/housekeeping-app/models"
)

// Event types
const (
	EventCheckoutReported    = "checkout_reported"
	EventCheckinReported     = "checkin_reported"
	EventSettlementSubmitted = "settlement_submitted"
	EventSettlementApproved  = "settlement_approved"
	EventSettlementRejected  = "settlement_rejected"
	EventPaymentRecorded     = "payment_recorded"
	EventTaskUpdate          = "task_update"
	EventStaffNotif          = "staff_notification"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub holds every connected client (admin, manager, cleaner) and
// fans out event messages to all of them.
type Hub struct {
	clients map[*websocket.Conn]string // conn -> role
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]string),
}

// RegisterClient adds a connection to the set with its role.
func RegisterClient(conn *websocket.Conn, role string) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = role
}

// UnregisterClient removes and closes a connection.
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// BroadcastTaskUpdate pushes the current state of a task to all clients.
func BroadcastTaskUpdate(task models.CleaningTask) {
	broadcast(Message{
		Event: EventTaskUpdate,
		Data:  task,
	})
}

// BroadcastNotification pushes a persisted notification with its
// event name.
func BroadcastNotification(notif models.Notification) {
	broadcast(Message{
		Event: notif.Event,
		Data:  notif,
	})
}

// BroadcastStaffNotification pushes a plain text message.
func BroadcastStaffNotification(message string) {
	broadcast(Message{
		Event: EventStaffNotif,
		Data:  message,
	})
}

func broadcast(msg Message) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling message: %v", err)
		return
	}

	for conn := range hub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("Error sending message to client: %v", err)
			continue
		}
	}
}
