package publisher

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Outcome is the result of one publish attempt against one platform.
type Outcome struct {
	Success    bool
	Message    string
	ExternalID string
}

// Publisher is the capability "attempt to deliver content to platform X".
// Implementations may take per-platform time and fail independently; callers
// own isolating one platform's failure from another's.
type Publisher interface {
	Publish(ctx context.Context, platform, content string, mediaURLs []string) (*Outcome, error)
}

// successRates mirrors observed reliability per platform; unknown platforms
// fall back to defaultSuccessRate.
var successRates = map[string]float64{
	"facebook":  0.95,
	"twitter":   0.90,
	"youtube":   0.85,
	"tiktok":    0.88,
	"pinterest": 0.92,
	"threads":   0.90,
	"snapchat":  0.87,
	"whatsapp":  0.93,
}

const defaultSuccessRate = 0.85

// Simulated stands in for the real social network APIs: a random delay
// followed by a probabilistic success or failure per platform.
type Simulated struct {
	minDelay time.Duration
	maxDelay time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

func NewSimulated(minDelay, maxDelay time.Duration) *Simulated {
	if maxDelay < minDelay {
		maxDelay = minDelay
	}
	return &Simulated{
		minDelay: minDelay,
		maxDelay: maxDelay,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *Simulated) Publish(ctx context.Context, platform, content string, mediaURLs []string) (*Outcome, error) {
	delay := s.minDelay
	if spread := s.maxDelay - s.minDelay; spread > 0 {
		delay += time.Duration(s.randFloat() * float64(spread))
	}

	select {
	case <-time.After(delay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	rate, ok := successRates[platform]
	if !ok {
		rate = defaultSuccessRate
	}

	if s.randFloat() < rate {
		return &Outcome{
			Success:    true,
			Message:    fmt.Sprintf("Successfully posted to %s", platform),
			ExternalID: externalID(platform),
		}, nil
	}

	return &Outcome{
		Success: false,
		Message: fmt.Sprintf("Failed to post to %s: API rate limit exceeded", platform),
	}, nil
}

func (s *Simulated) randFloat() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

func externalID(platform string) string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:9]
	return fmt.Sprintf("%s_%d_%s", platform, time.Now().UnixMilli(), suffix)
}
