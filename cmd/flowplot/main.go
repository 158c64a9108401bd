// Command flowplot visualizes the thickness of a flow deposit from two
// ESRI ASCII elevation grids taken before and after the flow.
package main

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/sirupsen/logrus"
)

// version is overwritten at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRoot(logger).ExecuteContext(ctx); err != nil {
		logger.WithError(err).Error("flowplot failed")
		stop()
		os.Exit(1)
	}
}
