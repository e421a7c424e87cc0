package aggregate

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/Aixtrade/Tally/pkg/jsonvalue"
	"github.com/Aixtrade/Tally/pkg/payload"
	"github.com/Aixtrade/Tally/pkg/progress"
)

type completion struct {
	status  string
	message string
	result  string
}

type fakePublisher struct {
	progress    []*progress.Progress
	completions []completion
}

func (f *fakePublisher) Publish(ctx context.Context, prog *progress.Progress) error {
	f.progress = append(f.progress, prog)
	return nil
}

func (f *fakePublisher) PublishCompletion(ctx context.Context, jobID, status, message, result string) error {
	f.completions = append(f.completions, completion{status: status, message: message, result: result})
	return nil
}

func newTask(t *testing.T, values []jsonvalue.Value) *asynq.Task {
	t.Helper()
	b, err := json.Marshal(payload.AggregatePayload{Data: values})
	if err != nil {
		t.Fatalf("failed to encode payload: %v", err)
	}
	return asynq.NewTask("data:aggregate", b)
}

func TestHandlerProcessTaskChunks(t *testing.T) {
	pub := &fakePublisher{}
	h := NewHandler(zap.NewNop(), pub, 2)

	values := []jsonvalue.Value{
		jsonvalue.String("a"), jsonvalue.String("b"), jsonvalue.Int(1), jsonvalue.Int(2), jsonvalue.Int(3),
	}
	if err := h.ProcessTask(context.Background(), newTask(t, values)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(pub.progress) != 3 {
		t.Fatalf("expected 3 progress updates, got %d", len(pub.progress))
	}
	last := pub.progress[len(pub.progress)-1]
	if last.Processed != 5 || last.Percentage != 100 {
		t.Fatalf("unexpected final progress: %+v", last)
	}

	if len(pub.completions) != 1 || pub.completions[0].status != StatusCompleted {
		t.Fatalf("unexpected completions: %+v", pub.completions)
	}
	var res payload.AggregateResult
	if err := json.Unmarshal([]byte(pub.completions[0].result), &res); err != nil {
		t.Fatalf("failed to decode result: %v", err)
	}
	if res.StringLen != 2 || res.IntSum != 6 || res.Elements != 5 {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestHandlerProcessTaskInvalidElementSkipsRetry(t *testing.T) {
	pub := &fakePublisher{}
	h := NewHandler(zap.NewNop(), pub, 10)

	err := h.ProcessTask(context.Background(), newTask(t, []jsonvalue.Value{jsonvalue.Number("1.5")}))
	if !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("expected SkipRetry, got %v", err)
	}
	if len(pub.completions) != 1 || pub.completions[0].status != StatusFailed {
		t.Fatalf("expected failed completion, got %+v", pub.completions)
	}
}

func TestHandlerProcessTaskBadPayload(t *testing.T) {
	h := NewHandler(zap.NewNop(), nil, 10)

	err := h.ProcessTask(context.Background(), asynq.NewTask("data:aggregate", []byte("not json")))
	if !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("expected SkipRetry, got %v", err)
	}
}

func TestHandlerProcessTaskCancelled(t *testing.T) {
	pub := &fakePublisher{}
	h := NewHandler(zap.NewNop(), pub, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := h.ProcessTask(ctx, newTask(t, []jsonvalue.Value{jsonvalue.Int(1)}))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(pub.completions) != 0 {
		t.Fatal("cancelled job must not publish a completion")
	}
}
