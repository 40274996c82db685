package observability

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/MauroCasarin/SONIDO/internal/logging"
)

// Serve exposes the collector on addr under /metrics until ctx is done.
// It returns once the listener is bound; serve errors are logged.
func Serve(ctx context.Context, addr string, c *FrameCollector, log logging.Logger) (net.Addr, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(ctx, "metrics server stopped", logging.Err(err))
		}
	}()
	log.Info(ctx, "metrics endpoint listening", logging.String("addr", ln.Addr().String()))
	return ln.Addr(), nil
}
