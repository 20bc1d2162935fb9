package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"meshvr/internal/assets"
	"meshvr/internal/bridge"
	"meshvr/internal/config"
	"meshvr/internal/logging"
	"meshvr/internal/viewer"
	"meshvr/internal/xr"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// options are the command line overrides of the config file.
type options struct {
	configPath string
	listen     string
	serial     string
	baud       int
	logLevel   string
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "meshvr:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "meshvr [mesh-file]",
		Short: "3D mesh viewer with VR controller interaction",
		Long: `meshvr - 3D mesh viewer with VR controller interaction

Loads STL, OBJ, glTF/GLB, IQM, VOX and M3D meshes. Drop a file on the
window or type a path in the side panel to load another.

Desktop:
  Mouse drag  - rotate / pan / zoom / scale, per interaction mode
  1-4         - rotate, scale, translate, inspect mode
  R / F       - reset object, focus camera
  V           - enter or exit the VR session
  Ctrl+Z      - undo

Controllers arrive over the websocket bridge (/ws), a serial tracker,
or the keyboard emulator (Tab, C, T, G, IJKL/UO, Q/E).`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			mesh := ""
			if len(args) == 1 {
				mesh = args[0]
			}
			return run(cmd.Context(), cfg, mesh)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.configPath, "config", "c", "meshvr.toml", "config file (TOML); missing file means defaults")
	f.StringVar(&opts.listen, "listen", "", "websocket bridge address, \"off\" to disable")
	f.StringVar(&opts.serial, "serial", "", "serial tracker port")
	f.IntVar(&opts.baud, "baud", 0, "serial baud rate")
	f.StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error")

	cmd.AddCommand(newInfoCmd(), newInitConfigCmd())
	return cmd
}

// loadConfig reads the config file and applies the flags the user set.
func loadConfig(cmd *cobra.Command, opts options) (config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return cfg, err
	}
	applyFlags(&cfg, opts, cmd.Flags().Changed)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyFlags(cfg *config.Config, opts options, changed func(string) bool) {
	if changed("listen") {
		cfg.Bridge.Listen = opts.listen
		if strings.EqualFold(opts.listen, "off") {
			cfg.Bridge.Listen = ""
		}
	}
	if changed("serial") {
		cfg.Bridge.Serial = opts.serial
	}
	if changed("baud") {
		cfg.Bridge.Baud = opts.baud
	}
	if changed("log-level") {
		cfg.Log.Level = opts.logLevel
	}
}

func run(ctx context.Context, cfg config.Config, mesh string) error {
	log, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var sources []<-chan xr.Event
	if cfg.Bridge.Listen != "" {
		srv := bridge.NewServer(log.Named("bridge"))
		sources = append(sources, srv.Events())
		go func() {
			if err := srv.Run(ctx, cfg.Bridge.Listen); err != nil {
				log.Error("websocket bridge stopped", zap.Error(err))
			}
		}()
		log.Info("websocket bridge", zap.String("addr", "ws://"+cfg.Bridge.Listen+"/ws"))
	}
	if cfg.Bridge.Serial != "" {
		src := bridge.NewSerialSource(cfg.Bridge.Serial, cfg.Bridge.Baud, log.Named("serial"))
		sources = append(sources, src.Events())
		go func() {
			if err := src.Run(ctx); err != nil && ctx.Err() == nil {
				log.Error("serial source stopped", zap.Error(err))
			}
		}()
	}

	return viewer.New(cfg, log.Named("viewer"), sources...).Run(ctx, mesh)
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <model.stl>",
		Short: "Print triangle count and bounds of an STL file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(cmd.OutOrStdout(), args[0])
		},
	}
}

func runInfo(w io.Writer, path string) error {
	if strings.ToLower(filepath.Ext(path)) != ".stl" {
		return fmt.Errorf("%w: info reads STL files only", assets.ErrUnsupportedFormat)
	}
	d, err := assets.ReadSTL(path)
	if err != nil {
		return err
	}
	b := d.Bounds
	fmt.Fprintf(w, "File:      %s\n", filepath.Base(path))
	fmt.Fprintf(w, "Triangles: %d\n", d.Triangles())
	fmt.Fprintf(w, "Min:       %.4g %.4g %.4g\n", b.Min.X, b.Min.Y, b.Min.Z)
	fmt.Fprintf(w, "Max:       %.4g %.4g %.4g\n", b.Max.X, b.Max.Y, b.Max.Z)
	fmt.Fprintf(w, "Size:      %.4g x %.4g x %.4g\n", b.Max.X-b.Min.X, b.Max.Y-b.Min.Y, b.Max.Z-b.Min.Z)
	return nil
}

func newInitConfigCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "Write the default config file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "meshvr.toml"
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s exists, use --force to overwrite", path)
			}
			if err := config.Save(path, config.Default()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}
