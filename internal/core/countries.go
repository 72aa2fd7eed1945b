package core

import (
	"context"
	"log/slog"
	"time"
)

// LoadCountries fetches the country list once in the background and applies
// it to f. A failed fetch is logged and leaves the list empty; the form stays
// usable. A result arriving after f was closed is discarded.
//
// The returned channel is closed when the fetch has finished.
func (f *Form) LoadCountries(ctx context.Context, provider CountryProvider) <-chan struct{} {
	done := make(chan struct{})
	if provider == nil {
		close(done)
		return done
	}

	go func() {
		defer close(done)

		start := time.Now()
		names, err := provider.FetchCountries(ctx)
		if err != nil {
			if ctx.Err() != nil {
				slog.Debug("country fetch abandoned", "error", err)
				return
			}
			slog.Error("error fetching country list", "error", err)
			return
		}

		if !f.SetCountries(names) {
			slog.Debug("country list discarded, form closed")
			return
		}
		slog.Debug("country list loaded",
			"count", len(names),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}()

	return done
}
