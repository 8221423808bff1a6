package messages

import "context"

// Notifier pushes job lifecycle events through the websocket hub. It
// backs the notification interfaces of the jobs and checklist
// modules; an offline recipient simply misses the push and catches up
// over HTTP.
type Notifier struct {
	hub *Hub
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub}
}

func (n *Notifier) NotifyOfferCreated(ctx context.Context, cleanerID, offerID, jobID int64) error {
	n.hub.Push(cleanerID, Event{Type: "offer", Payload: map[string]int64{"offer_id": offerID, "job_id": jobID}})
	return nil
}

func (n *Notifier) NotifyJobFilled(ctx context.Context, homeownerID, jobID int64) error {
	n.hub.Push(homeownerID, Event{Type: "job_filled", Payload: map[string]int64{"job_id": jobID}})
	return nil
}

func (n *Notifier) NotifyDropout(ctx context.Context, homeownerID, jobID int64, remainingCleaners int) error {
	n.hub.Push(homeownerID, Event{Type: "dropout", Payload: map[string]interface{}{
		"job_id":             jobID,
		"remaining_cleaners": remainingCleaners,
	}})
	return nil
}

func (n *Notifier) NotifySoloOffer(ctx context.Context, cleanerID, soloOfferID, jobID int64) error {
	n.hub.Push(cleanerID, Event{Type: "solo_offer", Payload: map[string]int64{"solo_offer_id": soloOfferID, "job_id": jobID}})
	return nil
}

func (n *Notifier) NotifyRoomCompleted(ctx context.Context, homeownerID, jobID, assignmentID int64) error {
	n.hub.Push(homeownerID, Event{Type: "room_completed", Payload: map[string]int64{"job_id": jobID, "room_id": assignmentID}})
	return nil
}

func (n *Notifier) NotifyJobCompleted(ctx context.Context, homeownerID, jobID int64) error {
	n.hub.Push(homeownerID, Event{Type: "job_completed", Payload: map[string]int64{"job_id": jobID}})
	return nil
}
