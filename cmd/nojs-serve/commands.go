//go:build !wasm

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vcrobe/nojs-ssr/app"
	"github.com/vcrobe/nojs-ssr/console"
	"github.com/vcrobe/nojs-ssr/importmap"
	"github.com/vcrobe/nojs-ssr/route"
	"github.com/vcrobe/nojs-ssr/server"
)

func newRootCmd() *cobra.Command {
	var configFile string
	v := server.NewViper()

	root := &cobra.Command{
		Use:           "nojs-serve",
		Short:         "Serve the nojs demo application",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "config file (default ./nojs.toml)")

	root.AddCommand(newServeCmd(v, &configFile))
	root.AddCommand(newCheckImportMapCmd(v, &configFile))
	return root
}

func newServeCmd(v *viper.Viper, configFile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Render routes and serve the public directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := server.LoadConfig(v, *configFile)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.String("addr", "", "listen address")
	flags.String("public-dir", "", "directory served as static files")
	flags.String("import-map", "", "import map file placed in every page")
	flags.Bool("watch-import-map", false, "reload the import map when the file changes")
	flags.String("log-level", "", "trace, debug, info, warn or error")
	flags.String("log-format", "", "console or json")

	// Flags override the config file and environment only when set.
	bind := func(key, name string) {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(fmt.Sprintf("bind flag %s: %v", name, err))
		}
	}
	bind("addr", "addr")
	bind("public_dir", "public-dir")
	bind("import_map", "import-map")
	bind("watch_import_map", "watch-import-map")
	bind("logging.level", "log-level")
	bind("logging.format", "log-format")
	return cmd
}

func newCheckImportMapCmd(v *viper.Viper, configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "check-importmap [file]",
		Short: "Validate an import map and print it normalized",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			} else {
				cfg, err := server.LoadConfig(v, *configFile)
				if err != nil {
					return err
				}
				path = cfg.ImportMap
			}

			m, err := importmap.ReadFile(path)
			if err != nil {
				return err
			}
			data, err := m.JSON()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}
}

func serve(ctx context.Context, cfg server.Config) error {
	log := console.New(console.Config{
		Level:      console.ParseLevel(cfg.Logging.Level),
		Format:     cfg.Logging.Format,
		TimeFormat: console.DefaultConfig().TimeFormat,
	})
	console.SetLogger(log)
	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	demo := app.New(app.Options{Environment: route.Server})
	srv, err := server.New(cfg, server.App{
		Router:    demo.Route,
		NewLayout: demo.NewLayout,
	}, log)
	if err != nil {
		return err
	}

	log.Info().Str("addr", cfg.Addr).Str("public_dir", cfg.PublicDir).Msg("serving")
	return srv.Run(ctx)
}
