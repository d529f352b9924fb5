package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"ridewatch/internal/geo"
	"ridewatch/internal/model"
	"ridewatch/internal/parser"
	"ridewatch/internal/store"
)

// Resolver turns a free-text address into coordinates. A nil result covers
// both "address not found" and "geocoder unavailable"; the engine treats
// them identically and fails closed on distance-filtered users.
type Resolver interface {
	Resolve(ctx context.Context, address string) *model.Coordinates
}

// Notifier delivers one formatted message to one user.
type Notifier interface {
	Send(ctx context.Context, userID, text string) error
}

// Engine runs the matching pass for each incoming raw message.
type Engine struct {
	store    store.FilterStore
	resolver Resolver
	notifier Notifier
}

func New(store store.FilterStore, resolver Resolver, notifier Notifier) *Engine {
	return &Engine{store: store, resolver: resolver, notifier: notifier}
}

// ProcessOrder parses raw chat text and notifies every user whose filters
// match. Non-order text is dropped silently. A failure while evaluating one
// user is logged with that user's id and never aborts the remaining users.
func (e *Engine) ProcessOrder(ctx context.Context, raw string) {
	order := parser.Parse(raw)
	if order == nil {
		return
	}

	filters, err := e.store.Load(ctx)
	if err != nil {
		slog.Error("failed to load filters, skipping pass", "error", err)
		return
	}

	for userID, filter := range filters {
		if err := e.evaluateUser(ctx, userID, filter, order); err != nil {
			slog.Error("order evaluation failed for user", "user", userID, "error", err)
		}
	}
}

func (e *Engine) evaluateUser(ctx context.Context, userID string, filter model.UserFilter, order *model.Order) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic during evaluation: %v", r)
		}
	}()

	if order.Price < filter.MinPrice {
		return nil
	}

	var distance *float64
	if filter.MaxDistance != nil {
		from := e.resolver.Resolve(ctx, order.From)
		to := e.resolver.Resolve(ctx, order.To)
		if from == nil || to == nil {
			// Distance cannot be verified, so the order is withheld.
			slog.Debug("geocode miss, skipping user", "user", userID, "from", order.From, "to", order.To)
			return nil
		}

		d := geo.DistanceKm(from.Latitude, from.Longitude, to.Latitude, to.Longitude)
		if d > *filter.MaxDistance {
			return nil
		}
		distance = &d
	}

	if err := e.notifier.Send(ctx, userID, formatNotification(order, distance)); err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	return nil
}

func formatNotification(order *model.Order, distance *float64) string {
	var b strings.Builder
	b.WriteString("💰 *New order!*\n")
	fmt.Fprintf(&b, "Price: %.2f €\n", order.Price)
	fmt.Fprintf(&b, "From: %s\n", order.From)
	fmt.Fprintf(&b, "To: %s", order.To)
	if distance != nil {
		fmt.Fprintf(&b, "\nDistance: %.1f km", *distance)
	}
	return b.String()
}
