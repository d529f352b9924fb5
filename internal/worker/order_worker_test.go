package worker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ridewatch/internal/engine"
	"ridewatch/internal/model"
	"ridewatch/internal/source"
)

type staticStore struct{ filters model.Filters }

func (s *staticStore) Load(context.Context) (model.Filters, error) { return s.filters, nil }
func (s *staticStore) Save(context.Context, model.Filters) error   { return nil }

type noopResolver struct{}

func (noopResolver) Resolve(context.Context, string) *model.Coordinates { return nil }

type chanNotifier struct{ sent chan string }

func (n *chanNotifier) Send(_ context.Context, userID, _ string) error {
	n.sent <- userID
	return nil
}

func TestWorkerProcessesQueuedMessages(t *testing.T) {
	notifier := &chanNotifier{sent: make(chan string, 1)}
	eng := engine.New(&staticStore{filters: model.Filters{"7": {}}}, noopResolver{}, notifier)
	queue := source.NewQueue(4)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := NewOrderWorker(eng, queue)
	go w.Start(ctx)

	require.NoError(t, queue.Offer("9.50 €\nA\n->\nB"))

	select {
	case userID := <-notifier.sent:
		assert.Equal(t, "7", userID)
	case <-time.After(2 * time.Second):
		t.Fatal("no notification within timeout")
	}
}
