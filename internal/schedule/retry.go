package schedule

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"

	"github.com/sirupsen/logrus"
)

// DefaultMaxAttempts is how many greedy attempts are made before giving up.
const DefaultMaxAttempts = 2000

// DefaultProgressEvery is the number of attempts between progress reports.
const DefaultProgressEvery = 10

type fillLimits struct {
	maxAttempts   int
	progressEvery int
	onProgress    func(attempts int)
}

// fill runs independent attempts until one fills every location. Progress
// is reported, the processor yielded and ctx checked only between whole
// attempts, every progressEvery attempts. The successful attempt and the
// 1-indexed number of attempts consumed are returned.
func fill(ctx context.Context, locations []string, players []Player, rules Rules, rng *rand.Rand, limits fillLimits, log logrus.FieldLogger) (*attempt, int, error) {
	lastFailed := -1
	for n := 1; n <= limits.maxAttempts; n++ {
		at := newAttempt(locations, players, rules, rng)
		failedAt := at.run()
		if failedAt < 0 {
			if limits.onProgress != nil {
				limits.onProgress(n)
			}
			return at, n, nil
		}
		lastFailed = failedAt

		if n%limits.progressEvery == 0 {
			if limits.onProgress != nil {
				limits.onProgress(n)
			}
			runtime.Gosched()
			if err := ctx.Err(); err != nil {
				return nil, n, fmt.Errorf("%w after %d attempts: %w", ErrCanceled, n, err)
			}
		}
	}

	if lastFailed >= 0 {
		log.WithField("location", locations[lastFailed]).Debug("last attempt could not fill location")
	}
	return nil, limits.maxAttempts, &RetryError{Attempts: limits.maxAttempts}
}
