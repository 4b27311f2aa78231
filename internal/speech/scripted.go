package speech

import (
	"context"
	"iter"
)

// Scripted replays a fixed transcript. It stands in for a recognizer in demos
// and tests.
type Scripted struct {
	Status Authorization
	// Snapshots are yielded in order.
	Snapshots []string
	// Feed, when set, is drained after Snapshots until it is closed.
	Feed <-chan string
	// Err is yielded once the snapshots (and Feed) are exhausted.
	Err error
	// Hold keeps the stream open until ctx is done instead of ending it.
	Hold bool
}

func (s *Scripted) RequestAuthorization(ctx context.Context) Authorization {
	return s.Status
}

func (s *Scripted) StartTranscription(ctx context.Context, _ Config) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for _, text := range s.Snapshots {
			if ctx.Err() != nil {
				return
			}
			if !yield(text, nil) {
				return
			}
		}

		if s.Feed != nil {
		feed:
			for {
				select {
				case <-ctx.Done():
					return
				case text, ok := <-s.Feed:
					if !ok {
						break feed
					}
					if !yield(text, nil) {
						return
					}
				}
			}
		}

		if s.Err != nil {
			yield("", s.Err)
			return
		}
		if s.Hold {
			<-ctx.Done()
		}
	}
}
