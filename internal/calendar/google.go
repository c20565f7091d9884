// Package calendar implements the calendar gateway on top of the Google
// Calendar API.
package calendar

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"digestbot/internal/digest"
	logx "digestbot/pkg/logx"
)

type Config struct {
	// Service-account credentials. PrivateKey may contain literal "\n"
	// sequences (common when injected via env); they are unescaped here.
	ClientEmail string
	PrivateKey  string
	CalendarID  string
}

// Client fetches events from one Google calendar. It is constructed once
// at startup and is safe for concurrent use.
type Client struct {
	svc        *gcal.Service
	calendarID string
	log        logx.Logger
}

func New(ctx context.Context, cfg Config, log logx.Logger) (*Client, error) {
	if cfg.ClientEmail == "" || cfg.PrivateKey == "" || cfg.CalendarID == "" {
		return nil, errors.New("missing Google Calendar credentials (client_email, private_key, calendar_id)")
	}
	if log.IsZero() {
		log = logx.Nop()
	}

	conf := &jwt.Config{
		Email:      cfg.ClientEmail,
		PrivateKey: []byte(strings.ReplaceAll(cfg.PrivateKey, `\n`, "\n")),
		Scopes:     []string{gcal.CalendarReadonlyScope},
		TokenURL:   google.JWTTokenURL,
	}

	svc, err := gcal.NewService(ctx, option.WithHTTPClient(conf.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("create calendar service: %w", err)
	}
	return &Client{svc: svc, calendarID: cfg.CalendarID, log: log}, nil
}

// Fetch returns single-instance events overlapping [start, end], ordered
// by start time, following page tokens until the listing is exhausted.
func (c *Client) Fetch(ctx context.Context, start, end time.Time) ([]digest.Event, error) {
	c.log.Info("fetching events",
		logx.Time("time_min", start),
		logx.Time("time_max", end),
	)

	var out []digest.Event
	pageToken := ""
	for {
		call := c.svc.Events.List(c.calendarID).
			TimeMin(start.Format(time.RFC3339)).
			TimeMax(end.Format(time.RFC3339)).
			SingleEvents(true).
			OrderBy("startTime").
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		resp, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("list events for %s: %w", c.calendarID, err)
		}
		for _, item := range resp.Items {
			out = append(out, fromAPI(item))
		}
		if resp.NextPageToken == "" {
			break
		}
		pageToken = resp.NextPageToken
	}

	c.log.Info("events fetched", logx.Int("count", len(out)))
	return out, nil
}
