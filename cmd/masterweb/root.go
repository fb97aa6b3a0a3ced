package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/starsiegeplayers/masterweb"
	"github.com/starsiegeplayers/masterweb/internal/logger"
	"github.com/starsiegeplayers/masterweb/views"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "masterweb",
		Short:         "Web front end for the master server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Serve the site (default)",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runServe(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "routes",
			Short: "Validate and print the route table",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return printRoutes(cmd.OutOrStdout())
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the masterweb version",
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "masterweb %s\n", version)
			},
		},
	)
	return root
}

// bootstrap builds the site config and route table. Either failing is fatal.
func bootstrap() (masterweb.SiteConfig, *masterweb.RouteTable, error) {
	site, err := masterweb.DefaultSiteConfig()
	if err != nil {
		return masterweb.SiteConfig{}, nil, err
	}
	routes, err := masterweb.NewRouteTable(masterweb.DefaultRoutes()...)
	if err != nil {
		return masterweb.SiteConfig{}, nil, fmt.Errorf("route table: %w", err)
	}
	return site, routes, nil
}

func runServe(parent context.Context) error {
	cfg, err := masterweb.LoadServerConfig()
	if err != nil {
		return err
	}
	cfg.Version = version

	log, sync := logger.New(cfg.LogLevel, version)
	defer sync()

	site, routes, err := bootstrap()
	if err != nil {
		log.Error(err, "refusing to start")
		return err
	}

	app, err := masterweb.New(cfg, site, routes, views.Funcs(), masterweb.WithLogger(log))
	if err != nil {
		log.Error(err, "refusing to start")
		return err
	}
	defer app.Close()

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return app.Start(logger.WithLogger(ctx, log))
}

func printRoutes(w io.Writer) error {
	_, routes, err := bootstrap()
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PATH\tLABEL\tVIEW\tEXTRA PADDING")
	for _, e := range routes.All() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%t\n", e.Path, e.Label, e.View, e.ExtraPadding)
	}
	return tw.Flush()
}
