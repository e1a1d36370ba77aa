package application

import (
	"context"
	"time"
)

// RoutingKeyClassCreated is published once a class enrollment commits.
const RoutingKeyClassCreated = "class.created"

// EventPublisher sends domain events to the message broker.
type EventPublisher interface {
	PublishJSON(ctx context.Context, routingKey string, body any) error
}

// ClassCreated is the payload of RoutingKeyClassCreated.
type ClassCreated struct {
	ClassID   int64          `json:"class_id"`
	UserID    int64          `json:"user_id"`
	UserName  string         `json:"user_name"`
	Avatar    string         `json:"avatar"`
	Whatsapp  string         `json:"whatsapp"`
	Bio       string         `json:"bio"`
	Subject   string         `json:"subject"`
	Cost      float64        `json:"cost"`
	Schedule  []ScheduleItem `json:"schedule"`
	CreatedAt time.Time      `json:"created_at"`
}

// ScheduleItem is a slot as carried by events, in minutes since midnight.
type ScheduleItem struct {
	WeekDay int `json:"week_day"`
	From    int `json:"from"`
	To      int `json:"to"`
}
