// Command pagerank computes PageRank over a directed edge list.
//
//	pagerank [input [pagerank-out [topk-out [beta]]]]
//
// Defaults: web-Google.txt, PageRank.txt, Top10PageRank.txt, beta 0.8,
// 100 iterations, top 10. Configuration is also read from .pagerank.yaml
// and PAGERANK_* environment variables.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/viper"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(viper.New()).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
