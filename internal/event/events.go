package event

import "time"

type CustomerEventPayload struct {
	CustomerID int64  `json:"customerId"`
	KundenNr   string `json:"kundenNr"`
	Vorname    string `json:"vorname"`
	Name       string `json:"name"`
	Ort        string `json:"ort"`
}

type CustomerCreatedEvent struct {
	Timestamp time.Time            `json:"timestamp"`
	Payload   CustomerEventPayload `json:"payload"`
}

type CustomerUpdatedEvent struct {
	Timestamp time.Time            `json:"timestamp"`
	Payload   CustomerEventPayload `json:"payload"`
}

// ImportCompletedEvent is published once per bulk import call, after the
// summary has been assembled. Entity is "customer" or "vehicle".
type ImportCompletedEvent struct {
	Timestamp  time.Time `json:"timestamp"`
	Entity     string    `json:"entity"`
	Imported   int       `json:"imported"`
	ErrorCount int       `json:"errorCount"`
}

type TaskDuePayload struct {
	TaskID       int64  `json:"taskId"`
	CustomerID   int64  `json:"customerId"`
	CustomerName string `json:"customerName"`
	AssignedTo   int64  `json:"assignedTo"`
	DatumKontakt string `json:"datumKontakt"`
}

// TaskDueEvent is published by the morning reminder job for every open
// task whose contact date has arrived.
type TaskDueEvent struct {
	Timestamp time.Time      `json:"timestamp"`
	Payload   TaskDuePayload `json:"payload"`
}
