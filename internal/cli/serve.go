package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/julianstephens/nicolog/internal/constants"
	"github.com/julianstephens/nicolog/internal/instance"
	"github.com/julianstephens/nicolog/internal/server"
)

type ServeCmd struct {
	Addr string `help:"Address to listen on." default:"127.0.0.1:7474"`
}

func (c *ServeCmd) Run(ctx *Context) error {
	lock, err := instance.Acquire(ctx.ConfigDir, "serve")
	if err != nil {
		return err
	}
	defer lock.Release()

	addr := c.Addr
	if addr == "" {
		addr = constants.DefaultListenAddr
	}

	srv := server.New(ctx.Store, server.WithBeforeImport(func() error {
		ctx.PerformAutomaticBackup()
		return nil
	}))

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx.printf("Serving nicolog API on http://%s\n", addr)
	return srv.Run(runCtx, addr)
}
