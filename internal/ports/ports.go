package ports

import (
	"context"
	"time"

	"github.com/cwu339-pixel/web3-ai-daily-brief/internal/domain"
)

// TextGenerator produces free text for a prompt. The analyzer is the
// only consumer; implementations signal throttling with a typed
// rate-limit error so the retry policy can react.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// MarketData supplies the price snapshot and sentiment index rendered
// at the top of the brief. Either piece may fail independently.
type MarketData interface {
	Snapshot(ctx context.Context) (domain.MarketSnapshot, error)
	FearGreed(ctx context.Context) (int, error)
}

// Notifier delivers the rendered brief to an outbound channel.
type Notifier interface {
	PublishBrief(ctx context.Context, brief string) error
}

// Scheduler controls when pipeline runs execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
