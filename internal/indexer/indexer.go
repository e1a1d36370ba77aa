// Package indexer turns class.created events into search documents and
// staff notifications.
package indexer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/Renanf68/nlw2-server/internal/application"
	"github.com/Renanf68/nlw2-server/internal/domain/entity"
	"github.com/Renanf68/nlw2-server/pkg/mailer"
)

// ErrBadMessage marks deliveries that can never be processed.
var ErrBadMessage = errors.New("malformed class event")

// ClassesMapping is the index mapping for class documents.
const ClassesMapping = `{
  "mappings": {
    "properties": {
      "class_id":   {"type": "long"},
      "subject":    {"type": "text", "fields": {"keyword": {"type": "keyword"}}},
      "cost":       {"type": "scaled_float", "scaling_factor": 100},
      "user_id":    {"type": "long"},
      "name":       {"type": "text"},
      "avatar":     {"type": "keyword", "index": false},
      "whatsapp":   {"type": "keyword"},
      "bio":        {"type": "text"},
      "schedule": {
        "type": "nested",
        "properties": {
          "week_day": {"type": "byte"},
          "from":     {"type": "integer"},
          "to":       {"type": "integer"},
          "label":    {"type": "keyword"}
        }
      },
      "created_at": {"type": "date"}
    }
  }
}`

// Notifier delivers a plain text message. *mailer.Mailgun satisfies it.
type Notifier interface {
	Send(ctx context.Context, to, subject, text string) error
}

type Indexer struct {
	ES       *elasticsearch.Client
	Index    string
	Notifier Notifier
	NotifyTo string
	Logger   *logrus.Logger
}

type ClassDocument struct {
	ClassID   int64          `json:"class_id"`
	Subject   string         `json:"subject"`
	Cost      float64        `json:"cost"`
	UserID    int64          `json:"user_id"`
	Name      string         `json:"name"`
	Avatar    string         `json:"avatar"`
	Whatsapp  string         `json:"whatsapp"`
	Bio       string         `json:"bio"`
	Schedule  []SlotDocument `json:"schedule"`
	CreatedAt time.Time      `json:"created_at"`
}

type SlotDocument struct {
	WeekDay int    `json:"week_day"`
	From    int    `json:"from"`
	To      int    `json:"to"`
	Label   string `json:"label"`
}

func dayName(d int) string {
	if d < 0 || d > 6 {
		return "day " + strconv.Itoa(d)
	}
	return time.Weekday(d).String()
}

// BuildDocument maps an event onto the indexed document.
func BuildDocument(ev application.ClassCreated) ClassDocument {
	doc := ClassDocument{
		ClassID:   ev.ClassID,
		Subject:   ev.Subject,
		Cost:      ev.Cost,
		UserID:    ev.UserID,
		Name:      ev.UserName,
		Avatar:    ev.Avatar,
		Whatsapp:  ev.Whatsapp,
		Bio:       ev.Bio,
		Schedule:  make([]SlotDocument, 0, len(ev.Schedule)),
		CreatedAt: ev.CreatedAt,
	}
	for _, s := range ev.Schedule {
		doc.Schedule = append(doc.Schedule, SlotDocument{
			WeekDay: s.WeekDay,
			From:    s.From,
			To:      s.To,
			Label:   fmt.Sprintf("%s %s-%s", dayName(s.WeekDay), entity.Minutes(s.From), entity.Minutes(s.To)),
		})
	}
	return doc
}

// BuildNotice maps an event onto the staff email data.
func BuildNotice(ev application.ClassCreated) mailer.ClassNotice {
	n := mailer.ClassNotice{
		TutorName: ev.UserName,
		Whatsapp:  ev.Whatsapp,
		Subject:   ev.Subject,
		Cost:      ev.Cost,
	}
	for _, s := range ev.Schedule {
		n.Schedule = append(n.Schedule, mailer.NoticeSlot{
			Day:  dayName(s.WeekDay),
			From: entity.Minutes(s.From).String(),
			To:   entity.Minutes(s.To).String(),
		})
	}
	return n
}

// Handle processes one delivery body. Errors wrapping ErrBadMessage must not
// be retried; any other error is transient.
func (ix *Indexer) Handle(ctx context.Context, body []byte) error {
	var ev application.ClassCreated
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("%w: %w", ErrBadMessage, err)
	}
	if ev.ClassID <= 0 {
		return fmt.Errorf("%w: missing class_id", ErrBadMessage)
	}
	log := ix.Logger.WithField("class_id", ev.ClassID)

	if ix.ES != nil {
		if err := ix.index(ctx, BuildDocument(ev)); err != nil {
			return err
		}
		log.Debug("class indexed")
	}

	if ix.Notifier != nil && ix.NotifyTo != "" {
		subject, text, err := mailer.RenderClassCreated(BuildNotice(ev))
		if err != nil {
			log.WithError(err).Error("render class notice failed")
			return nil
		}
		c, cancel := context.WithTimeout(ctx, 15*time.Second)
		defer cancel()
		if err := ix.Notifier.Send(c, ix.NotifyTo, subject, text); err != nil {
			// the document is already indexed; a retry would only resend mail
			log.WithError(err).Warn("class notice not sent")
		}
	}
	return nil
}

func (ix *Indexer) index(ctx context.Context, doc ClassDocument) error {
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{
		Index:      ix.Index,
		DocumentID: strconv.FormatInt(doc.ClassID, 10),
		Body:       strings.NewReader(string(b)),
		Refresh:    "false",
	}
	c, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	res, err := req.Do(c, ix.ES)
	if err != nil {
		return fmt.Errorf("index class %d: %w", doc.ClassID, err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("index class %d: %s", doc.ClassID, res.Status())
	}
	return nil
}
